package transfer

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
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

// fakeBlobs is an in-memory image payload store.
type fakeBlobs struct {
	data map[string][]byte
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{data: map[string][]byte{}}
}

func (f *fakeBlobs) PutImage(ctx context.Context, imageID string, data []byte) error {
	f.data[imageID] = data
	return nil
}

func (f *fakeBlobs) GetImage(ctx context.Context, imageID string) ([]byte, error) {
	data, ok := f.data[imageID]
	if !ok {
		return nil, fmt.Errorf("no blob for image %s", imageID)
	}
	return data, nil
}

var importTime = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func seedImportList(t *testing.T, store lists.Store, name string, itemTitles ...string) *models.List {
	t.Helper()
	current, err := store.Lists(context.Background(), true)
	require.NoError(t, err)

	list := &models.List{
		ID:          uuid.NewString(),
		Name:        name,
		OrderNumber: len(current),
		CreatedAt:   importTime.Add(-24 * time.Hour),
		ModifiedAt:  importTime.Add(-24 * time.Hour),
	}
	require.NoError(t, store.CreateList(context.Background(), list))
	for i, title := range itemTitles {
		item := &models.Item{
			ID:          uuid.NewString(),
			ListID:      list.ID,
			Title:       title,
			Quantity:    1,
			OrderNumber: i,
			CreatedAt:   list.CreatedAt,
			ModifiedAt:  list.CreatedAt,
		}
		require.NoError(t, store.CreateItem(context.Background(), item))
	}
	loaded, err := store.ListByID(context.Background(), list.ID)
	require.NoError(t, err)
	return loaded
}


func TestDecode(t *testing.T) {
	t.Run("Malformed JSON", func(t *testing.T) {
		_, err := Decode([]byte(`{"version": "1.0"`))
		assert.ErrorIs(t, err, ErrDecodingFailed)
	})

	t.Run("Missing Version", func(t *testing.T) {
		_, err := Decode([]byte(`{"lists": []}`))
		assert.ErrorIs(t, err, ErrDecodingFailed)
	})

	t.Run("Unknown Fields Tolerated", func(t *testing.T) {
		doc, err := Decode([]byte(`{"version": "1.0", "lists": [], "producer": "other app"}`))
		require.NoError(t, err)
		assert.Equal(t, "1.0", doc.Version)
	})
}

func TestValidateDocumentRejectsWholeImport(t *testing.T) {
	doc := &Document{
		Version: DocumentVersion,
		Lists: []DocumentList{
			{Name: "Fine", Items: []DocumentItem{{Title: "Milk", Quantity: 1}}},
			{Name: "Broken", Items: []DocumentItem{{Title: "  ", Quantity: 1}}},
		},
	}

	err := ValidateDocument(doc)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "empty title")
}

func TestValidateDocumentNegativeQuantity(t *testing.T) {
	doc := &Document{
		Version: DocumentVersion,
		Lists: []DocumentList{
			{Name: "Groceries", Items: []DocumentItem{{Title: "Milk", Quantity: -1}}},
		},
	}

	err := ValidateDocument(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative quantity")
}

func TestValidateDocumentLimitsCountRunes(t *testing.T) {
	// 100 runes but 400 bytes; the store accepts names up to 100 runes,
	// so its own export must validate on re-import.
	wideName := strings.Repeat("🥛", models.MaxListNameLength)
	wideTitle := strings.Repeat("ü", models.MaxItemTitleLength)

	t.Run("Multi-Byte At Limit Passes", func(t *testing.T) {
		doc := &Document{
			Version: DocumentVersion,
			Lists: []DocumentList{
				{Name: wideName, Items: []DocumentItem{{Title: wideTitle, Quantity: 1}}},
			},
		}
		assert.NoError(t, ValidateDocument(doc))
	})

	t.Run("One Rune Over Fails", func(t *testing.T) {
		doc := &Document{
			Version: DocumentVersion,
			Lists: []DocumentList{
				{Name: wideName + "🥛", Items: []DocumentItem{{Title: "Milk", Quantity: 1}}},
			},
		}
		err := ValidateDocument(doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maximum name length")
	})
}

func TestImportMergeStrategy(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	existing := seedImportList(t, store, "Groceries", "Milk", "Eggs")

	doc := &Document{
		Version: DocumentVersion,
		Lists: []DocumentList{
			{
				ID:   existing.ID,
				Name: "Groceries",
				Items: []DocumentItem{
					// Existing item with changed quantity.
					{ID: existing.Items[0].ID, Title: "Milk", Quantity: 2},
					// Existing item, identical: must be a no-op.
					{ID: existing.Items[1].ID, Title: "Eggs", Quantity: 1},
					// New item.
					{Title: "Butter", Quantity: 1},
				},
			},
			// New list without an id.
			{Name: "Hardware", Items: []DocumentItem{{Title: "Screws", Quantity: 50}}},
		},
	}

	importer := NewImporter(store, nil, zap.NewNop())
	result, err := importer.Apply(ctx, doc, DefaultOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ListsCreated)
	assert.Zero(t, result.ListsUpdated, "identical list scalars are not rewritten")
	assert.Equal(t, 2, result.ItemsCreated)
	assert.Equal(t, 1, result.ItemsUpdated)
	assert.Zero(t, result.ListsDeleted)
	assert.Zero(t, result.ItemsDeleted)

	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, ConflictItemModified, result.Conflicts[0].Type)
	assert.Equal(t, existing.Items[0].ID, result.Conflicts[0].EntityID)

	merged, err := store.Lists(ctx, true)
	require.NoError(t, err)
	assert.Len(t, merged, 2)

	milk, err := store.ItemByID(ctx, existing.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, milk.Quantity)
}

func TestImportReplaceStrategy(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	kept := seedImportList(t, store, "Keep", "Milk", "Eggs")
	doomed := seedImportList(t, store, "Doomed", "Old")

	doc := &Document{
		Version: DocumentVersion,
		Lists: []DocumentList{
			{
				ID:   kept.ID,
				Name: "Keep",
				Items: []DocumentItem{
					{ID: kept.Items[0].ID, Title: "Milk", Quantity: 1},
					// Eggs omitted: replace deletes it.
				},
			},
		},
	}

	opts := DefaultOptions()
	opts.Strategy = StrategyReplace

	importer := NewImporter(store, nil, zap.NewNop())
	result, err := importer.Apply(ctx, doc, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ListsDeleted)
	assert.Equal(t, 2, result.ItemsDeleted, "one explicit, one with its list")

	types := map[ConflictType]int{}
	for _, c := range result.Conflicts {
		types[c.Type]++
	}
	assert.Equal(t, 1, types[ConflictListDeleted])
	assert.Equal(t, 1, types[ConflictItemDeleted])

	_, err = store.ListByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, lists.ErrListNotFound)
	_, err = store.ItemByID(ctx, kept.Items[1].ID)
	assert.ErrorIs(t, err, lists.ErrItemNotFound)
}

func TestImportAppendStrategy(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	existing := seedImportList(t, store, "Groceries", "Milk")

	// Same ids as local rows: append must ignore them and insert fresh.
	doc := &Document{
		Version: DocumentVersion,
		Lists: []DocumentList{
			{
				ID:   existing.ID,
				Name: "Groceries",
				Items: []DocumentItem{
					{ID: existing.Items[0].ID, Title: "Milk", Quantity: 1},
				},
			},
		},
	}

	opts := DefaultOptions()
	opts.Strategy = StrategyAppend

	importer := NewImporter(store, nil, zap.NewNop())
	result, err := importer.Apply(ctx, doc, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ListsCreated)
	assert.Equal(t, 1, result.ItemsCreated)
	assert.Empty(t, result.Conflicts, "append never conflicts")

	all, err := store.Lists(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.NotEqual(t, all[0].ID, all[1].ID)
}

func TestImportValidationIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seedImportList(t, store, "Untouched", "Milk")

	doc := &Document{
		Version: DocumentVersion,
		Lists: []DocumentList{
			{Name: "Fine", Items: []DocumentItem{{Title: "Bread", Quantity: 1}}},
			{Name: "", Items: nil}, // empty name rejects everything
		},
	}

	importer := NewImporter(store, nil, zap.NewNop())
	_, err := importer.Apply(ctx, doc, DefaultOptions(), nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	all, err := store.Lists(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1, "nothing was written")
	assert.Equal(t, "Untouched", all[0].Name)
}

func TestPreviewMatchesApply(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	existing := seedImportList(t, store, "Groceries", "Milk", "Eggs")

	doc := &Document{
		Version: DocumentVersion,
		Lists: []DocumentList{
			{
				ID:   existing.ID,
				Name: "Renamed Groceries",
				Items: []DocumentItem{
					{ID: existing.Items[0].ID, Title: "Oat Milk", Quantity: 1},
					{Title: "Butter", Quantity: 1},
					// Eggs omitted.
				},
			},
			{Name: "Hardware", Items: []DocumentItem{{Title: "Screws", Quantity: 50}}},
		},
	}

	opts := DefaultOptions()
	opts.Strategy = StrategyReplace

	importer := NewImporter(store, nil, zap.NewNop())

	preview, err := importer.Preview(ctx, doc, opts)
	require.NoError(t, err)
	require.True(t, preview.IsValid)

	result, err := importer.Apply(ctx, doc, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, preview.ListsToCreate, result.ListsCreated)
	assert.Equal(t, preview.ListsToUpdate, result.ListsUpdated)
	assert.Equal(t, preview.ListsToDelete, result.ListsDeleted)
	assert.Equal(t, preview.ItemsToCreate, result.ItemsCreated)
	assert.Equal(t, preview.ItemsToUpdate, result.ItemsUpdated)
	assert.Equal(t, preview.ItemsToDelete, result.ItemsDeleted)
	assert.Equal(t, len(preview.Conflicts), len(result.Conflicts))
	for i := range preview.Conflicts {
		assert.Equal(t, preview.Conflicts[i].Type, result.Conflicts[i].Type)
		assert.Equal(t, preview.Conflicts[i].EntityID, result.Conflicts[i].EntityID)
	}
}

func TestPreviewDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := &Document{
		Version: DocumentVersion,
		Lists:   []DocumentList{{Name: "New", Items: []DocumentItem{{Title: "Milk", Quantity: 1}}}},
	}

	importer := NewImporter(store, nil, zap.NewNop())
	preview, err := importer.Preview(ctx, doc, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, preview.ListsToCreate)

	all, err := store.Lists(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPreviewInvalidDocument(t *testing.T) {
	store := newTestStore(t)
	doc := &Document{
		Version: DocumentVersion,
		Lists:   []DocumentList{{Name: "Bad", Items: []DocumentItem{{Title: "x", Quantity: -2}}}},
	}

	importer := NewImporter(store, nil, zap.NewNop())
	preview, err := importer.Preview(context.Background(), doc, DefaultOptions())
	require.NoError(t, err, "an invalid document is a preview outcome, not an error")
	assert.False(t, preview.IsValid)
	assert.NotEmpty(t, preview.Error)
}

func TestImportProgressEndsComplete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := &Document{
		Version: DocumentVersion,
		Lists: []DocumentList{
			{Name: "A", Items: []DocumentItem{{Title: "One", Quantity: 1}, {Title: "Two", Quantity: 1}}},
			{Name: "B", Items: []DocumentItem{{Title: "Three", Quantity: 1}}},
		},
	}

	var updates []Progress
	importer := NewImporter(store, nil, zap.NewNop())
	_, err := importer.Apply(ctx, doc, DefaultOptions(), func(p Progress) {
		updates = append(updates, p)
	})
	require.NoError(t, err)

	require.NotEmpty(t, updates)
	last := updates[len(updates)-1]
	assert.Equal(t, 100, last.Percentage())
	for i := 1; i < len(updates); i++ {
		assert.GreaterOrEqual(t, updates[i].Percentage(), updates[i-1].Percentage(),
			"progress never moves backwards")
	}
}

func TestImportMaterializesImages(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	blobs := newFakeBlobs()

	payload := []byte("fake png bytes")
	doc := &Document{
		Version: DocumentVersion,
		Lists: []DocumentList{
			{
				Name: "Groceries",
				Items: []DocumentItem{
					{
						Title:    "Milk",
						Quantity: 1,
						Images: []DocumentImage{
							{ImageData: base64.StdEncoding.EncodeToString(payload), OrderNumber: 0},
						},
					},
				},
			},
		},
	}

	importer := NewImporter(store, blobs, zap.NewNop())
	result, err := importer.Apply(ctx, doc, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsCreated)

	all, err := store.Lists(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Items, 1)
	require.Len(t, all[0].Items[0].Images, 1)

	imageID := all[0].Items[0].Images[0].ID
	assert.Equal(t, payload, blobs.data[imageID], "payload stored under the fresh image id")
}

func TestImportSkipsImagesWhenDisabled(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	blobs := newFakeBlobs()

	doc := &Document{
		Version: DocumentVersion,
		Lists: []DocumentList{
			{
				Name: "Groceries",
				Items: []DocumentItem{
					{
						Title:    "Milk",
						Quantity: 1,
						Images: []DocumentImage{
							{ImageData: base64.StdEncoding.EncodeToString([]byte("x")), OrderNumber: 0},
						},
					},
				},
			},
		},
	}

	opts := DefaultOptions()
	opts.IncludeImages = false

	importer := NewImporter(store, blobs, zap.NewNop())
	_, err := importer.Apply(ctx, doc, opts, nil)
	require.NoError(t, err)

	all, err := store.Lists(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all[0].Items[0].Images)
	assert.Empty(t, blobs.data)
}

func TestImportClampsUnexportedQuantity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := &Document{
		Version: DocumentVersion,
		Lists: []DocumentList{
			{Name: "Groceries", Items: []DocumentItem{{Title: "Milk"}}}, // quantity omitted
		},
	}

	importer := NewImporter(store, nil, zap.NewNop())
	_, err := importer.Apply(ctx, doc, DefaultOptions(), nil)
	require.NoError(t, err)

	all, err := store.Lists(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, all[0].Items[0].Quantity)
}
