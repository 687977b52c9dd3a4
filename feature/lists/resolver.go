package lists

import (
	"context"
	"fmt"
	"time"

	"listsync/feature/lists/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageCopier duplicates the stored bytes of one image under a new image id.
// It is satisfied by feature/images.Store; a nil copier skips blob
// duplication and copies only the records.
type ImageCopier interface {
	CopyImage(ctx context.Context, srcImageID, dstImageID string) error
}

// Resolver decides what "create an item" actually means: re-adding something
// that already exists on the list must not produce a duplicate row.
type Resolver struct {
	store  Store
	images ImageCopier
	logger *zap.Logger
	now    func() time.Time
}

// NewResolver creates a duplicate resolver over the given store.
func NewResolver(store Store, images ImageCopier, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:  store,
		images: images,
		logger: logger,
		now:    time.Now,
	}
}

// AddItem creates an item with the given fields in the list, unless an item
// with the same normalized identity already exists there:
//
//   - an existing crossed-out match is uncrossed, its ModifiedAt bumped, and
//     returned (re-adding something already bought marks it wanted again);
//   - an existing uncrossed match is returned unchanged;
//   - otherwise a new item is created with a fresh id, uncrossed, and the
//     next sequential order number.
//
// The returned bool is true only when a new row was created.
func (r *Resolver) AddItem(ctx context.Context, listID, title, description string, quantity int) (*models.Item, bool, error) {
	title = models.NormalizeTitle(title)
	description = models.NormalizeDescription(description)

	if title == "" || len([]rune(title)) > models.MaxItemTitleLength {
		return nil, false, ErrInvalidTitle
	}
	if quantity < models.MinItemQuantity || quantity > models.MaxItemQuantity {
		return nil, false, ErrInvalidQuantity
	}

	list, err := r.store.ListByID(ctx, listID)
	if err != nil {
		return nil, false, err
	}

	for idx := range list.Items {
		existing := &list.Items[idx]
		if !existing.SameIdentity(title, description, quantity) {
			continue
		}

		if !existing.IsCrossedOut {
			// Already wanted; nothing to do.
			return existing, false, nil
		}

		existing.IsCrossedOut = false
		existing.ModifiedAt = r.now()
		if err := r.store.UpdateItem(ctx, existing); err != nil {
			return nil, false, err
		}
		r.logger.Debug("Uncrossed existing item on re-add",
			zap.String("list_id", listID),
			zap.String("item_id", existing.ID),
		)
		return existing, false, nil
	}

	now := r.now()
	item := &models.Item{
		ID:           uuid.NewString(),
		ListID:       listID,
		Title:        title,
		Description:  description,
		Quantity:     quantity,
		OrderNumber:  nextItemOrder(list),
		IsCrossedOut: false,
		CreatedAt:    now,
		ModifiedAt:   now,
	}
	if err := r.store.CreateItem(ctx, item); err != nil {
		return nil, false, err
	}
	return item, true, nil
}

// CopyAsSuggestion copies an existing item into another list as a new item.
//
// Suggestion application always creates: the copy gets a fresh id, is always
// uncrossed regardless of the source's crossed state, and every image is
// duplicated under a new id. The source item is never mutated, and the
// dedup-uncross rule of AddItem does not apply here.
func (r *Resolver) CopyAsSuggestion(ctx context.Context, sourceItemID, targetListID string) (*models.Item, error) {
	source, err := r.store.ItemByID(ctx, sourceItemID)
	if err != nil {
		return nil, err
	}

	target, err := r.store.ListByID(ctx, targetListID)
	if err != nil {
		return nil, err
	}

	now := r.now()
	copyItem := &models.Item{
		ID:           uuid.NewString(),
		ListID:       targetListID,
		Title:        source.Title,
		Description:  source.Description,
		Quantity:     source.Quantity,
		OrderNumber:  nextItemOrder(target),
		IsCrossedOut: false,
		CreatedAt:    now,
		ModifiedAt:   now,
	}

	for _, img := range source.Images {
		newImage := models.ItemImage{
			ID:          uuid.NewString(),
			ItemID:      copyItem.ID,
			OrderNumber: img.OrderNumber,
			CreatedAt:   now,
		}
		if r.images != nil {
			if err := r.images.CopyImage(ctx, img.ID, newImage.ID); err != nil {
				return nil, fmt.Errorf("failed to copy image %s: %w", img.ID, err)
			}
		}
		copyItem.Images = append(copyItem.Images, newImage)
	}

	if err := r.store.CreateItem(ctx, copyItem); err != nil {
		return nil, err
	}
	return copyItem, nil
}

// nextItemOrder returns the next sequential order number for a list whose
// items hold a dense 0..N-1 sequence.
func nextItemOrder(list *models.List) int {
	next := 0
	for _, item := range list.Items {
		if item.OrderNumber >= next {
			next = item.OrderNumber + 1
		}
	}
	return next
}
