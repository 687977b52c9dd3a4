package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"listsync/feature/lists"
	"listsync/feature/lists/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *lists.Repository) {
	app := fiber.New()
	repo := newTestStore(t)
	feature := NewFeature(repo, Config{}, zap.NewNop())
	t.Cleanup(feature.Close)
	require.NoError(t, feature.Load(app))
	return app, repo
}

func TestHandleGetSnapshot(t *testing.T) {
	app, repo := setupTestApp(t)
	seedList(t, repo, "Groceries", 0, models.Item{Title: "Milk", Quantity: 1})

	resp, err := app.Test(httptest.NewRequest("GET", "/sync/snapshot", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var snapshot []ListSyncData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Groceries", snapshot[0].Name)
	require.Len(t, snapshot[0].Items, 1)
	assert.Equal(t, "Milk", snapshot[0].Items[0].Title)
}

func TestHandleApplySnapshot(t *testing.T) {
	app, repo := setupTestApp(t)

	remote := newTestStore(t)
	seedList(t, remote, "Groceries", 0, models.Item{Title: "Milk", Quantity: 1})
	payload, err := EncodeSnapshot(snapshotOf(t, remote))
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/sync/snapshot", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 1, result.ListsCreated)
	assert.Equal(t, 1, result.ItemsCreated)

	merged, err := repo.Lists(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, merged, 1)
}

func TestHandleApplySnapshotMalformed(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/sync/snapshot", bytes.NewReader([]byte(`{"broken`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleApplySnapshotTooLarge(t *testing.T) {
	app, _ := setupTestApp(t)

	oversized := bytes.Repeat([]byte("x"), MaxPayloadBytes+1)
	req := httptest.NewRequest("POST", "/sync/snapshot", bytes.NewReader(oversized))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 413, resp.StatusCode)
}
