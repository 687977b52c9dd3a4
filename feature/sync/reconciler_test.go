package sync

import (
	"context"
	"testing"
	"time"

	"listsync/feature/lists"
	"listsync/feature/lists/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *lists.Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo, err := lists.NewRepository(db, zap.NewNop())
	require.NoError(t, err)
	return repo
}

var baseTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func seedList(t *testing.T, store lists.Store, name string, order int, items ...models.Item) *models.List {
	t.Helper()
	list := &models.List{
		ID:          uuid.NewString(),
		Name:        name,
		OrderNumber: order,
		CreatedAt:   baseTime,
		ModifiedAt:  baseTime,
	}
	require.NoError(t, store.CreateList(context.Background(), list))
	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].ListID = list.ID
		items[i].OrderNumber = i
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = baseTime
		}
		if items[i].ModifiedAt.IsZero() {
			items[i].ModifiedAt = baseTime
		}
		require.NoError(t, store.CreateItem(context.Background(), &items[i]))
	}
	loaded, err := store.ListByID(context.Background(), list.ID)
	require.NoError(t, err)
	return loaded
}

// snapshotOf projects a store's full state the way a peer would transmit it.
func snapshotOf(t *testing.T, store lists.Store) []ListSyncData {
	t.Helper()
	all, err := store.Lists(context.Background(), true)
	require.NoError(t, err)
	return ProjectAll(all)
}

func TestReconcilerCreatesAbsentLists(t *testing.T) {
	local := newTestStore(t)
	remote := newTestStore(t)
	seedList(t, remote, "Groceries", 0,
		models.Item{Title: "Milk", Quantity: 1},
		models.Item{Title: "Eggs", Quantity: 12},
	)

	r := NewReconciler(local, zap.NewNop())
	result, err := r.ApplySnapshot(context.Background(), snapshotOf(t, remote))
	require.NoError(t, err)

	assert.Equal(t, 1, result.ListsCreated)
	assert.Equal(t, 2, result.ItemsCreated)

	merged, err := local.Lists(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Len(t, merged[0].Items, 2)
}

func TestReconcilerItemLastWriterWins(t *testing.T) {
	ctx := context.Background()
	local := newTestStore(t)
	list := seedList(t, local, "Groceries", 0,
		models.Item{Title: "Milk", Quantity: 1},
		models.Item{Title: "Eggs", Quantity: 12},
	)

	snapshot := snapshotOf(t, local)

	t.Run("Strictly Newer Incoming Wins", func(t *testing.T) {
		snapshot[0].Items[0].Title = "Oat Milk"
		snapshot[0].Items[0].ModifiedAt = baseTime.Add(time.Hour)

		r := NewReconciler(local, zap.NewNop())
		result, err := r.ApplySnapshot(ctx, snapshot)
		require.NoError(t, err)
		assert.Equal(t, 1, result.ItemsUpdated)

		loaded, err := local.ItemByID(ctx, list.Items[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Oat Milk", loaded.Title)
	})

	t.Run("Equal Timestamp Keeps Local", func(t *testing.T) {
		snapshot[0].Items[1].Title = "Brown Eggs"
		// ModifiedAt unchanged: same instant as the local row.

		r := NewReconciler(local, zap.NewNop())
		result, err := r.ApplySnapshot(ctx, snapshot)
		require.NoError(t, err)
		assert.Zero(t, result.ItemsUpdated)

		loaded, err := local.ItemByID(ctx, list.Items[1].ID)
		require.NoError(t, err)
		assert.Equal(t, "Eggs", loaded.Title)
	})

	t.Run("Older Incoming Keeps Local", func(t *testing.T) {
		snapshot[0].Items[1].Title = "Brown Eggs"
		snapshot[0].Items[1].ModifiedAt = baseTime.Add(-time.Hour)

		r := NewReconciler(local, zap.NewNop())
		result, err := r.ApplySnapshot(ctx, snapshot)
		require.NoError(t, err)
		assert.Zero(t, result.ItemsUpdated)

		loaded, err := local.ItemByID(ctx, list.Items[1].ID)
		require.NoError(t, err)
		assert.Equal(t, "Eggs", loaded.Title)
	})
}

// An item-only edit leaves the list wrapper's ModifiedAt untouched; the item
// change must still land.
func TestReconcilerItemsSyncDespiteUnchangedListTimestamp(t *testing.T) {
	ctx := context.Background()
	local := newTestStore(t)
	list := seedList(t, local, "Groceries", 0,
		models.Item{Title: "Milk", Quantity: 1},
	)

	snapshot := snapshotOf(t, local)
	snapshot[0].Items[0].IsCrossedOut = true
	snapshot[0].Items[0].ModifiedAt = baseTime.Add(time.Minute)
	// snapshot[0].ModifiedAt stays equal to the local list's.

	r := NewReconciler(local, zap.NewNop())
	result, err := r.ApplySnapshot(ctx, snapshot)
	require.NoError(t, err)
	assert.Zero(t, result.ListsUpdated)
	assert.Equal(t, 1, result.ItemsUpdated)

	loaded, err := local.ItemByID(ctx, list.Items[0].ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsCrossedOut)
}

func TestReconcilerOmissionMeansDeletion(t *testing.T) {
	ctx := context.Background()
	local := newTestStore(t)
	keep := seedList(t, local, "Keep", 0,
		models.Item{Title: "Milk", Quantity: 1},
		models.Item{Title: "Eggs", Quantity: 12},
	)
	seedList(t, local, "Gone", 1, models.Item{Title: "Old", Quantity: 1})

	snapshot := snapshotOf(t, local)
	// Peer deleted the second list and the second item of the first.
	snapshot = snapshot[:1]
	snapshot[0].Items = snapshot[0].Items[:1]

	r := NewReconciler(local, zap.NewNop())
	result, err := r.ApplySnapshot(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ListsDeleted)
	assert.Equal(t, 2, result.ItemsDeleted, "one explicit, one with its list")

	merged, err := local.Lists(ctx, true)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, keep.ID, merged[0].ID)
	assert.Len(t, merged[0].Items, 1)
}

// A peer can move an item to another list between syncs. The snapshot then
// shows the same item id under a different list, and the apply must succeed
// no matter which of the two lists the snapshot orders first.
func TestReconcilerItemMovedBetweenLists(t *testing.T) {
	ctx := context.Background()
	local := newTestStore(t)
	dest := seedList(t, local, "Weekend", 0)
	source := seedList(t, local, "Groceries", 1,
		models.Item{Title: "Milk", Quantity: 1},
	)

	// Destination comes first in the snapshot, so the moved item is created
	// under it before the source list is visited.
	snapshot := snapshotOf(t, local)
	require.Equal(t, dest.ID, snapshot[0].ID)
	moved := snapshot[1].Items[0]
	moved.ModifiedAt = baseTime.Add(time.Minute)
	snapshot[0].Items = append(snapshot[0].Items, moved)
	snapshot[1].Items = nil

	r := NewReconciler(local, zap.NewNop())
	result, err := r.ApplySnapshot(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsDeleted)
	assert.Equal(t, 1, result.ItemsCreated)

	loaded, err := local.ItemByID(ctx, source.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, dest.ID, loaded.ListID)

	emptied, err := local.ListByID(ctx, source.ID)
	require.NoError(t, err)
	assert.Empty(t, emptied.Items)
}

func TestReconcilerIdempotent(t *testing.T) {
	ctx := context.Background()
	local := newTestStore(t)
	remote := newTestStore(t)
	seedList(t, remote, "Groceries", 0,
		models.Item{Title: "Milk", Quantity: 1},
	)

	snapshot := snapshotOf(t, remote)
	r := NewReconciler(local, zap.NewNop())

	_, err := r.ApplySnapshot(ctx, snapshot)
	require.NoError(t, err)

	second, err := r.ApplySnapshot(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, &Result{}, second, "re-applying the same snapshot changes nothing")
}

func TestReconcilerConvergence(t *testing.T) {
	ctx := context.Background()
	deviceA := newTestStore(t)
	deviceB := newTestStore(t)

	shared := seedList(t, deviceA, "Shared", 0,
		models.Item{Title: "Milk", Quantity: 1},
	)

	// B receives A's state, then edits the item.
	rb := NewReconciler(deviceB, zap.NewNop())
	_, err := rb.ApplySnapshot(ctx, snapshotOf(t, deviceA))
	require.NoError(t, err)

	edited, err := deviceB.ItemByID(ctx, shared.Items[0].ID)
	require.NoError(t, err)
	edited.Quantity = 3
	edited.ModifiedAt = baseTime.Add(time.Hour)
	require.NoError(t, deviceB.UpdateItem(ctx, edited))

	// A applies B's snapshot, then B applies A's: both sides settle on the
	// newer edit.
	ra := NewReconciler(deviceA, zap.NewNop())
	_, err = ra.ApplySnapshot(ctx, snapshotOf(t, deviceB))
	require.NoError(t, err)
	_, err = rb.ApplySnapshot(ctx, snapshotOf(t, deviceA))
	require.NoError(t, err)

	finalA, err := deviceA.ItemByID(ctx, shared.Items[0].ID)
	require.NoError(t, err)
	finalB, err := deviceB.ItemByID(ctx, shared.Items[0].ID)
	require.NoError(t, err)

	assert.Equal(t, 3, finalA.Quantity)
	assert.Equal(t, 3, finalB.Quantity)
	assert.True(t, finalA.ModifiedAt.Equal(finalB.ModifiedAt))
}
