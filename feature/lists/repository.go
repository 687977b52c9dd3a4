package lists

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"listsync/feature/lists/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the gorm-backed record store.
type Repository struct {
	db        *gorm.DB
	logger    *zap.Logger
	observers *observerSet
	inTx      bool
}

// observerSet is shared between the root repository and its transaction
// clones so that registration survives tx scoping.
type observerSet struct {
	mu  sync.RWMutex
	fns []func()
}

func (o *observerSet) add(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fns = append(o.fns, fn)
}

func (o *observerSet) notify() {
	o.mu.RLock()
	fns := make([]func(), len(o.fns))
	copy(fns, o.fns)
	o.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// NewRepository migrates the schema and returns a ready record store.
func NewRepository(db *gorm.DB, logger *zap.Logger) (*Repository, error) {
	if err := db.AutoMigrate(&models.List{}, &models.Item{}, &models.ItemImage{}); err != nil {
		return nil, fmt.Errorf("failed to migrate record store schema: %w", err)
	}
	return &Repository{
		db:        db,
		logger:    logger,
		observers: &observerSet{},
	}, nil
}

// OnChange registers fn to be called after every committed mutation.
func (r *Repository) OnChange(fn func()) {
	r.observers.add(fn)
}

// changed fires observers unless we are inside a transaction; Transaction
// notifies once at commit instead, so a multi-statement save produces a
// single burst of signals rather than one per row.
func (r *Repository) changed() {
	if !r.inTx {
		r.observers.notify()
	}
}

func preloadAll(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_number")
		}).
		Preload("Items.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_number")
		})
}

// Lists returns all lists with items and image records preloaded.
func (r *Repository) Lists(ctx context.Context, includeArchived bool) ([]models.List, error) {
	q := preloadAll(r.db.WithContext(ctx)).Order("order_number")
	if !includeArchived {
		q = q.Where("is_archived = ?", false)
	}

	var lists []models.List
	if err := q.Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to load lists: %w", err)
	}
	return lists, nil
}

// ListByID fetches a single list with items and image records.
func (r *Repository) ListByID(ctx context.Context, id string) (*models.List, error) {
	var list models.List
	err := preloadAll(r.db.WithContext(ctx)).First(&list, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load list %s: %w", id, err)
	}
	return &list, nil
}

// CreateList inserts the list's scalar fields. Items are created separately
// so reconcilers control item identity and ordering explicitly.
func (r *Repository) CreateList(ctx context.Context, list *models.List) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(list).Error; err != nil {
		return fmt.Errorf("failed to create list %s: %w", list.ID, err)
	}
	r.changed()
	return nil
}

// UpdateList persists the list's scalar fields.
func (r *Repository) UpdateList(ctx context.Context, list *models.List) error {
	res := r.db.WithContext(ctx).Model(&models.List{}).Where("id = ?", list.ID).
		Updates(map[string]any{
			"name":         list.Name,
			"order_number": list.OrderNumber,
			"is_archived":  list.IsArchived,
			"modified_at":  list.ModifiedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update list %s: %w", list.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrListNotFound
	}
	r.changed()
	return nil
}

// DeleteList removes a list, its items, and their image records.
// The cascade is explicit so it behaves the same on sqlite and mysql
// regardless of foreign key enforcement.
func (r *Repository) DeleteList(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)

	var itemIDs []string
	if err := db.Model(&models.Item{}).Where("list_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
		return fmt.Errorf("failed to collect items of list %s: %w", id, err)
	}
	if len(itemIDs) > 0 {
		if err := db.Where("item_id IN ?", itemIDs).Delete(&models.ItemImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete image records of list %s: %w", id, err)
		}
		if err := db.Where("list_id = ?", id).Delete(&models.Item{}).Error; err != nil {
			return fmt.Errorf("failed to delete items of list %s: %w", id, err)
		}
	}

	res := db.Where("id = ?", id).Delete(&models.List{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete list %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrListNotFound
	}
	r.changed()
	return nil
}

// ItemByID fetches a single item with its image records.
func (r *Repository) ItemByID(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_number")
		}).
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load item %s: %w", id, err)
	}
	return &item, nil
}

// CreateItem inserts an item together with its image records.
func (r *Repository) CreateItem(ctx context.Context, item *models.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item %s: %w", item.ID, err)
	}
	r.changed()
	return nil
}

// UpdateItem persists the item's scalar fields. Image records and the owning
// list are never changed here.
func (r *Repository) UpdateItem(ctx context.Context, item *models.Item) error {
	res := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", item.ID).
		Updates(map[string]any{
			"title":          item.Title,
			"description":    item.Description,
			"quantity":       item.Quantity,
			"order_number":   item.OrderNumber,
			"is_crossed_out": item.IsCrossedOut,
			"modified_at":    item.ModifiedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update item %s: %w", item.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	r.changed()
	return nil
}

// DeleteItem removes an item and its image records.
func (r *Repository) DeleteItem(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("item_id = ?", id).Delete(&models.ItemImage{}).Error; err != nil {
		return fmt.Errorf("failed to delete image records of item %s: %w", id, err)
	}

	res := db.Where("id = ?", id).Delete(&models.Item{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	r.changed()
	return nil
}

// ReplaceItemImages swaps an item's image records for the given set.
func (r *Repository) ReplaceItemImages(ctx context.Context, itemID string, imgs []models.ItemImage) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("item_id = ?", itemID).Delete(&models.ItemImage{}).Error; err != nil {
		return fmt.Errorf("failed to clear image records of item %s: %w", itemID, err)
	}
	for i := range imgs {
		imgs[i].ItemID = itemID
		if err := db.Create(&imgs[i]).Error; err != nil {
			return fmt.Errorf("failed to create image record %s: %w", imgs[i].ID, err)
		}
	}
	r.changed()
	return nil
}

// RenumberLists rewrites order numbers of non-archived lists into a dense
// 0..N-1 sequence preserving relative order.
func (r *Repository) RenumberLists(ctx context.Context) error {
	db := r.db.WithContext(ctx)

	var lists []models.List
	if err := db.Where("is_archived = ?", false).Order("order_number").Find(&lists).Error; err != nil {
		return fmt.Errorf("failed to load lists for renumbering: %w", err)
	}

	for i, list := range lists {
		if list.OrderNumber == i {
			continue
		}
		if err := db.Model(&models.List{}).Where("id = ?", list.ID).
			Update("order_number", i).Error; err != nil {
			return fmt.Errorf("failed to renumber list %s: %w", list.ID, err)
		}
	}
	r.changed()
	return nil
}

// RenumberItems rewrites order numbers of a list's items into a dense
// sequence preserving relative order.
func (r *Repository) RenumberItems(ctx context.Context, listID string) error {
	db := r.db.WithContext(ctx)

	var items []models.Item
	if err := db.Where("list_id = ?", listID).Order("order_number").Find(&items).Error; err != nil {
		return fmt.Errorf("failed to load items for renumbering: %w", err)
	}

	for i, item := range items {
		if item.OrderNumber == i {
			continue
		}
		if err := db.Model(&models.Item{}).Where("id = ?", item.ID).
			Update("order_number", i).Error; err != nil {
			return fmt.Errorf("failed to renumber item %s: %w", item.ID, err)
		}
	}
	r.changed()
	return nil
}

// Transaction runs fn against a transaction-bound store. Observers fire once
// after commit, never for rolled-back work.
func (r *Repository) Transaction(ctx context.Context, fn func(tx Store) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{
			db:        tx,
			logger:    r.logger,
			observers: r.observers,
			inTx:      true,
		})
	})
	if err != nil {
		return err
	}
	if !r.inTx {
		r.observers.notify()
	}
	return nil
}
