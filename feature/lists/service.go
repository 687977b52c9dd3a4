package lists

import (
	"context"
	"time"

	"listsync/feature/lists/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles list and item operations for the UI/API layer.
type Service struct {
	store    Store
	resolver *Resolver
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new lists service.
func NewService(store Store, resolver *Resolver, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

// GetLists returns all lists, optionally including archived ones.
func (s *Service) GetLists(ctx context.Context, includeArchived bool) ([]models.List, error) {
	return s.store.Lists(ctx, includeArchived)
}

// CreateList creates a new list at the end of the active ordering.
func (s *Service) CreateList(ctx context.Context, name string) (*models.List, error) {
	name = models.NormalizeTitle(name)
	if name == "" || len([]rune(name)) > models.MaxListNameLength {
		return nil, ErrInvalidName
	}

	active, err := s.store.Lists(ctx, false)
	if err != nil {
		return nil, err
	}

	now := s.now()
	list := &models.List{
		ID:          uuid.NewString(),
		Name:        name,
		OrderNumber: len(active),
		CreatedAt:   now,
		ModifiedAt:  now,
	}
	if err := s.store.CreateList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ArchiveList removes a list from the active set and closes the resulting
// gap in the active ordering.
func (s *Service) ArchiveList(ctx context.Context, id string) error {
	return s.store.Transaction(ctx, func(tx Store) error {
		list, err := tx.ListByID(ctx, id)
		if err != nil {
			return err
		}
		list.IsArchived = true
		list.ModifiedAt = s.now()
		if err := tx.UpdateList(ctx, list); err != nil {
			return err
		}
		return tx.RenumberLists(ctx)
	})
}

// DeleteList removes a list with all its items and renumbers the remainder.
func (s *Service) DeleteList(ctx context.Context, id string) error {
	return s.store.Transaction(ctx, func(tx Store) error {
		if err := tx.DeleteList(ctx, id); err != nil {
			return err
		}
		return tx.RenumberLists(ctx)
	})
}

// AddItem adds an item to a list through the duplicate resolver.
func (s *Service) AddItem(ctx context.Context, listID, title, description string, quantity int) (*models.Item, bool, error) {
	return s.resolver.AddItem(ctx, listID, title, description, quantity)
}

// SetCrossedOut marks an item bought or wanted and bumps its timestamp.
func (s *Service) SetCrossedOut(ctx context.Context, itemID string, crossedOut bool) (*models.Item, error) {
	item, err := s.store.ItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.IsCrossedOut == crossedOut {
		return item, nil
	}
	item.IsCrossedOut = crossedOut
	item.ModifiedAt = s.now()
	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item and keeps the list's ordering dense.
func (s *Service) DeleteItem(ctx context.Context, itemID string) error {
	item, err := s.store.ItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx Store) error {
		if err := tx.DeleteItem(ctx, itemID); err != nil {
			return err
		}
		return tx.RenumberItems(ctx, item.ListID)
	})
}

// ApplySuggestion copies an existing item into another list as a fresh,
// uncrossed item with newly-id'd image copies.
func (s *Service) ApplySuggestion(ctx context.Context, sourceItemID, targetListID string) (*models.Item, error) {
	return s.resolver.CopyAsSuggestion(ctx, sourceItemID, targetListID)
}
