package lists

import (
	"context"

	"listsync/feature/lists/models"
)

// Store is the record store handle passed to reconcilers and services.
//
// It is a CRUD object store keyed by UUID with a transactional save. All
// reconciliation mutations go through Transaction, which serializes writes;
// callers must not run two reconciliations against the same store
// concurrently.
type Store interface {
	// Lists returns all lists with their items and image records preloaded,
	// ordered by order number. Archived lists are included only when asked.
	Lists(ctx context.Context, includeArchived bool) ([]models.List, error)
	// ListByID fetches a single list with items and image records, or
	// ErrListNotFound.
	ListByID(ctx context.Context, id string) (*models.List, error)
	// CreateList inserts a list (scalar fields only; items are created
	// separately).
	CreateList(ctx context.Context, list *models.List) error
	// UpdateList persists the list's scalar fields.
	UpdateList(ctx context.Context, list *models.List) error
	// DeleteList removes a list and cascades to its items and image records.
	DeleteList(ctx context.Context, id string) error

	// ItemByID fetches a single item with its image records, or
	// ErrItemNotFound.
	ItemByID(ctx context.Context, id string) (*models.Item, error)
	// CreateItem inserts an item together with its image records.
	CreateItem(ctx context.Context, item *models.Item) error
	// UpdateItem persists the item's scalar fields. Image records are never
	// touched by this method; they belong to the owning device.
	UpdateItem(ctx context.Context, item *models.Item) error
	// DeleteItem removes an item and cascades to its image records.
	DeleteItem(ctx context.Context, id string) error
	// ReplaceItemImages swaps an item's image records for the given set.
	// Only records are touched; blob payloads are the caller's concern.
	ReplaceItemImages(ctx context.Context, itemID string, images []models.ItemImage) error

	// RenumberLists rewrites order numbers of non-archived lists into a dense
	// 0..N-1 sequence preserving relative order.
	RenumberLists(ctx context.Context) error
	// RenumberItems does the same for the items of one list.
	RenumberItems(ctx context.Context, listID string) error

	// Transaction runs fn against a store bound to a single transaction.
	// Either every mutation in fn is applied or none of it is.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// Notifier is implemented by stores that can report external mutations.
// Observers are registered explicitly; there is no ambient pub/sub.
type Notifier interface {
	// OnChange registers fn to be called after every committed mutation.
	// fn may be invoked from any goroutine and must be cheap; coalescing
	// bursts is the subscriber's job (see feature/sync.Debouncer).
	OnChange(fn func())
}
