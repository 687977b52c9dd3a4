package sync

import (
	"context"

	"listsync/feature/lists"
	"listsync/feature/lists/models"

	"go.uber.org/zap"
)

// Result summarizes what a snapshot application changed locally.
type Result struct {
	ListsCreated int `json:"lists_created"`
	ListsUpdated int `json:"lists_updated"`
	ListsDeleted int `json:"lists_deleted"`
	ItemsCreated int `json:"items_created"`
	ItemsUpdated int `json:"items_updated"`
	ItemsDeleted int `json:"items_deleted"`
}

// Reconciler applies a peer's full snapshot to the local store.
//
// The snapshot is authoritative for membership: lists and items it omits are
// deleted locally. Item fields resolve by last-writer-wins on ModifiedAt,
// local winning ties. Applying the same snapshot twice is a no-op the second
// time, and application order of increasingly newer snapshots converges.
type Reconciler struct {
	store  lists.Store
	logger *zap.Logger
}

// NewReconciler creates a device-sync reconciler over the given store.
func NewReconciler(store lists.Store, logger *zap.Logger) *Reconciler {
	return &Reconciler{store: store, logger: logger}
}

// ApplySnapshot merges the snapshot into the local store atomically: either
// the whole snapshot is applied or local state is left completely intact.
func (r *Reconciler) ApplySnapshot(ctx context.Context, snapshot []ListSyncData) (*Result, error) {
	result := &Result{}

	err := r.store.Transaction(ctx, func(tx lists.Store) error {
		local, err := tx.Lists(ctx, true)
		if err != nil {
			return err
		}

		localByID := make(map[string]*models.List, len(local))
		for i := range local {
			localByID[local[i].ID] = &local[i]
		}

		incomingIDs := make(map[string]struct{}, len(snapshot))
		for _, incoming := range snapshot {
			incomingIDs[incoming.ID] = struct{}{}
		}

		// The snapshot is the peer's complete state: local lists and items it
		// does not mention were deleted on the peer. Deletions run before
		// creates so an item the peer moved to another list is removed from
		// its old list before it is created under the new one, whatever order
		// the snapshot lists the two in.
		for _, localList := range local {
			if _, ok := incomingIDs[localList.ID]; ok {
				continue
			}
			if err := tx.DeleteList(ctx, localList.ID); err != nil {
				return err
			}
			result.ListsDeleted++
			result.ItemsDeleted += len(localList.Items)
		}
		for _, incoming := range snapshot {
			localList, exists := localByID[incoming.ID]
			if !exists {
				continue
			}
			if err := r.deleteOmittedItems(ctx, tx, localList, incoming, result); err != nil {
				return err
			}
		}

		for _, incoming := range snapshot {
			localList, exists := localByID[incoming.ID]
			if !exists {
				if err := r.createList(ctx, tx, incoming, result); err != nil {
					return err
				}
				continue
			}

			if listFieldsDiffer(localList, incoming) {
				updated := *localList
				updated.Name = incoming.Name
				updated.OrderNumber = incoming.OrderNumber
				updated.IsArchived = incoming.IsArchived
				updated.ModifiedAt = incoming.ModifiedAt
				if err := tx.UpdateList(ctx, &updated); err != nil {
					return err
				}
				result.ListsUpdated++
			}

			// Items are reconciled regardless of the list wrapper's
			// ModifiedAt; an unchanged list timestamp must never cause item
			// changes to be dropped.
			if err := r.upsertItems(ctx, tx, localList, incoming, result); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Applied device snapshot",
		zap.Int("lists_created", result.ListsCreated),
		zap.Int("lists_updated", result.ListsUpdated),
		zap.Int("lists_deleted", result.ListsDeleted),
		zap.Int("items_created", result.ItemsCreated),
		zap.Int("items_updated", result.ItemsUpdated),
		zap.Int("items_deleted", result.ItemsDeleted),
	)
	return result, nil
}

func (r *Reconciler) createList(ctx context.Context, tx lists.Store, incoming ListSyncData, result *Result) error {
	list := Materialize(incoming)
	items := list.Items
	list.Items = nil

	if err := tx.CreateList(ctx, &list); err != nil {
		return err
	}
	result.ListsCreated++

	for i := range items {
		if err := tx.CreateItem(ctx, &items[i]); err != nil {
			return err
		}
		result.ItemsCreated++
	}
	return nil
}

// deleteOmittedItems removes local items the peer's copy of the list no
// longer carries.
func (r *Reconciler) deleteOmittedItems(ctx context.Context, tx lists.Store, localList *models.List, incoming ListSyncData, result *Result) error {
	incomingIDs := make(map[string]struct{}, len(incoming.Items))
	for _, incomingItem := range incoming.Items {
		incomingIDs[incomingItem.ID] = struct{}{}
	}

	for i := range localList.Items {
		if _, ok := incomingIDs[localList.Items[i].ID]; ok {
			continue
		}
		if err := tx.DeleteItem(ctx, localList.Items[i].ID); err != nil {
			return err
		}
		result.ItemsDeleted++
	}
	return nil
}

func (r *Reconciler) upsertItems(ctx context.Context, tx lists.Store, localList *models.List, incoming ListSyncData, result *Result) error {
	localByID := make(map[string]*models.Item, len(localList.Items))
	for i := range localList.Items {
		localByID[localList.Items[i].ID] = &localList.Items[i]
	}

	for _, incomingItem := range incoming.Items {
		localItem, exists := localByID[incomingItem.ID]
		if !exists {
			item := MaterializeItem(incomingItem, localList.ID)
			if err := tx.CreateItem(ctx, &item); err != nil {
				return err
			}
			result.ItemsCreated++
			continue
		}

		// Strictly newer incoming wins; equal timestamps keep local, since
		// unsynchronized clocks give no sub-millisecond ordering guarantee.
		if !incomingItem.ModifiedAt.After(localItem.ModifiedAt) {
			continue
		}

		updated := MaterializeItem(incomingItem, localList.ID)
		updated.CreatedAt = localItem.CreatedAt
		if err := tx.UpdateItem(ctx, &updated); err != nil {
			return err
		}
		result.ItemsUpdated++
	}
	return nil
}

// listFieldsDiffer reports whether the incoming list's scalar fields differ
// from local. Writes are skipped when nothing changed so re-applying a
// snapshot stays a no-op.
func listFieldsDiffer(local *models.List, incoming ListSyncData) bool {
	return local.Name != incoming.Name ||
		local.OrderNumber != incoming.OrderNumber ||
		local.IsArchived != incoming.IsArchived ||
		!local.ModifiedAt.Equal(incoming.ModifiedAt)
}
