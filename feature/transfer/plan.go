package transfer

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"listsync/feature/lists/models"
)

// plannedImage is an image record to materialize together with its decoded
// payload. Records always get fresh ids; an imported image is never assumed
// to exist in blob storage.
type plannedImage struct {
	record models.ItemImage
	data   []byte
}

// plannedItem is the fully resolved target state of one item.
type plannedItem struct {
	item      models.Item
	images    []plannedImage
	setImages bool
}

// plannedList groups every decided operation for one list. updateList is
// set only when the list's own scalar state changes; a list whose items
// change but whose fields do not is left untouched as a record.
type plannedList struct {
	list          models.List
	create        bool
	updateList    bool
	itemsToCreate []plannedItem
	itemsToUpdate []plannedItem
	itemsToDelete []models.Item
}

// plan is the complete set of decided operations for an import. Preview
// reads its counts; Apply executes it. Both paths share buildPlan, so a
// preview's counts and conflicts always match the apply that follows it.
type plan struct {
	lists         []plannedList
	listsToDelete []models.List
	conflicts     []Conflict
}

func (p *plan) counts() (listsCreated, listsUpdated, itemsCreated, itemsUpdated, listsDeleted, itemsDeleted int) {
	for _, pl := range p.lists {
		if pl.create {
			listsCreated++
		} else if pl.updateList {
			listsUpdated++
		}
		itemsCreated += len(pl.itemsToCreate)
		itemsUpdated += len(pl.itemsToUpdate)
		itemsDeleted += len(pl.itemsToDelete)
	}
	listsDeleted = len(p.listsToDelete)
	for _, l := range p.listsToDelete {
		itemsDeleted += len(l.Items)
	}
	return
}

// buildPlan resolves a validated document against current local state into
// an executable plan. It performs no store access and no mutation; every
// decision (ids, timestamps, conflicts) is made here so that preview and
// apply cannot diverge.
func buildPlan(local []models.List, doc *Document, opts Options, now time.Time) (*plan, error) {
	p := &plan{}

	localByID := make(map[string]*models.List, len(local))
	maxOrder := -1
	for i := range local {
		localByID[local[i].ID] = &local[i]
		if !local[i].IsArchived && local[i].OrderNumber > maxOrder {
			maxOrder = local[i].OrderNumber
		}
	}

	seenLists := make(map[string]bool, len(doc.Lists))
	for li := range doc.Lists {
		dl := &doc.Lists[li]

		var match *models.List
		if opts.Strategy != StrategyAppend && dl.ID != "" {
			match = localByID[dl.ID]
		}

		if match == nil {
			pl, err := planListCreate(dl, opts, now, maxOrder+1+len(p.lists))
			if err != nil {
				return nil, err
			}
			p.lists = append(p.lists, *pl)
			continue
		}

		seenLists[match.ID] = true
		pl, err := planListUpdate(match, dl, opts, now, p)
		if err != nil {
			return nil, err
		}
		p.lists = append(p.lists, *pl)
	}

	if opts.Strategy == StrategyReplace {
		for i := range local {
			if seenLists[local[i].ID] {
				continue
			}
			p.listsToDelete = append(p.listsToDelete, local[i])
			p.conflicts = append(p.conflicts, Conflict{
				Type:         ConflictListDeleted,
				EntityID:     local[i].ID,
				EntityName:   local[i].Name,
				CurrentValue: local[i].Name,
				Message:      fmt.Sprintf("list %q is not in the imported document and will be deleted", local[i].Name),
			})
		}
	}

	return p, nil
}

func planListCreate(dl *DocumentList, opts Options, now time.Time, orderNumber int) (*plannedList, error) {
	id := dl.ID
	if id == "" || opts.Strategy == StrategyAppend {
		id = uuid.NewString()
	}
	pl := &plannedList{
		create: true,
		list: models.List{
			ID:          id,
			Name:        models.NormalizeTitle(dl.Name),
			OrderNumber: orderNumber,
			IsArchived:  dl.IsArchived,
			CreatedAt:   importedTime(dl.CreatedAt, opts, now),
			ModifiedAt:  importedTime(dl.ModifiedAt, opts, now),
		},
	}
	for ii := range dl.Items {
		pi, err := planItemCreate(&dl.Items[ii], pl.list.ID, ii, opts, now)
		if err != nil {
			return nil, err
		}
		pl.itemsToCreate = append(pl.itemsToCreate, *pi)
	}
	return pl, nil
}

func planListUpdate(match *models.List, dl *DocumentList, opts Options, now time.Time, p *plan) (*plannedList, error) {
	target := *match
	target.Items = nil
	incomingName := models.NormalizeTitle(dl.Name)
	changed := target.Name != incomingName || target.IsArchived != dl.IsArchived
	if changed {
		p.conflicts = append(p.conflicts, Conflict{
			Type:          ConflictListModified,
			EntityID:      match.ID,
			EntityName:    match.Name,
			CurrentValue:  match.Name,
			IncomingValue: incomingName,
			Message:       fmt.Sprintf("list %q will be overwritten by the imported document", match.Name),
		})
		target.Name = incomingName
		target.IsArchived = dl.IsArchived
		target.ModifiedAt = importedTime(dl.ModifiedAt, opts, now)
	}

	pl := &plannedList{create: false, updateList: changed, list: target}

	localItems := make(map[string]*models.Item, len(match.Items))
	for i := range match.Items {
		localItems[match.Items[i].ID] = &match.Items[i]
	}

	seenItems := make(map[string]bool, len(dl.Items))
	for ii := range dl.Items {
		di := &dl.Items[ii]
		var itemMatch *models.Item
		if di.ID != "" {
			itemMatch = localItems[di.ID]
		}

		if itemMatch == nil {
			pi, err := planItemCreate(di, match.ID, len(match.Items)+len(pl.itemsToCreate), opts, now)
			if err != nil {
				return nil, err
			}
			pl.itemsToCreate = append(pl.itemsToCreate, *pi)
			continue
		}

		seenItems[itemMatch.ID] = true
		pi, differs, err := planItemUpdate(itemMatch, di, opts, now)
		if err != nil {
			return nil, err
		}
		if !differs {
			continue
		}
		p.conflicts = append(p.conflicts, Conflict{
			Type:          ConflictItemModified,
			EntityID:      itemMatch.ID,
			EntityName:    itemMatch.Title,
			CurrentValue:  itemMatch.Title,
			IncomingValue: pi.item.Title,
			Message:       fmt.Sprintf("item %q in list %q will be overwritten by the imported document", itemMatch.Title, match.Name),
		})
		pl.itemsToUpdate = append(pl.itemsToUpdate, *pi)
	}

	if opts.Strategy == StrategyReplace {
		for i := range match.Items {
			if seenItems[match.Items[i].ID] {
				continue
			}
			pl.itemsToDelete = append(pl.itemsToDelete, match.Items[i])
			p.conflicts = append(p.conflicts, Conflict{
				Type:         ConflictItemDeleted,
				EntityID:     match.Items[i].ID,
				EntityName:   match.Items[i].Title,
				CurrentValue: match.Items[i].Title,
				Message:      fmt.Sprintf("item %q in list %q is not in the imported document and will be deleted", match.Items[i].Title, match.Name),
			})
		}
	}

	return pl, nil
}

func planItemCreate(di *DocumentItem, listID string, orderNumber int, opts Options, now time.Time) (*plannedItem, error) {
	pi := &plannedItem{
		item: models.Item{
			ID:           freshOrGivenItemID(di, opts),
			ListID:       listID,
			Title:        models.NormalizeTitle(di.Title),
			Description:  models.NormalizeDescription(di.Description),
			Quantity:     models.ClampQuantity(di.Quantity),
			OrderNumber:  orderNumber,
			IsCrossedOut: di.IsCrossedOut,
			CreatedAt:    importedTime(di.CreatedAt, opts, now),
			ModifiedAt:   importedTime(di.ModifiedAt, opts, now),
		},
	}
	if err := planImages(pi, di, opts, now); err != nil {
		return nil, err
	}
	return pi, nil
}

func planItemUpdate(match *models.Item, di *DocumentItem, opts Options, now time.Time) (*plannedItem, bool, error) {
	target := *match
	target.Images = nil
	target.Title = models.NormalizeTitle(di.Title)
	target.Description = models.NormalizeDescription(di.Description)
	target.Quantity = models.ClampQuantity(di.Quantity)
	target.IsCrossedOut = di.IsCrossedOut

	differs := target.Title != match.Title ||
		target.Description != match.Description ||
		target.Quantity != match.Quantity ||
		target.IsCrossedOut != match.IsCrossedOut
	if !differs {
		return nil, false, nil
	}
	target.ModifiedAt = importedTime(di.ModifiedAt, opts, now)

	pi := &plannedItem{item: target}
	if err := planImages(pi, di, opts, now); err != nil {
		return nil, false, err
	}
	pi.setImages = len(pi.images) > 0
	return pi, true, nil
}

func planImages(pi *plannedItem, di *DocumentItem, opts Options, now time.Time) error {
	if !opts.IncludeImages {
		return nil
	}
	for oi, img := range di.Images {
		if img.ImageData == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(img.ImageData)
		if err != nil {
			return &ValidationError{Message: fmt.Sprintf("image %d of item %q is not valid base64", oi, pi.item.Title)}
		}
		pi.images = append(pi.images, plannedImage{
			record: models.ItemImage{
				ID:          uuid.NewString(),
				ItemID:      pi.item.ID,
				OrderNumber: img.OrderNumber,
				CreatedAt:   now,
			},
			data: data,
		})
	}
	return nil
}

func freshOrGivenItemID(di *DocumentItem, opts Options) string {
	if di.ID == "" || opts.Strategy == StrategyAppend {
		return uuid.NewString()
	}
	return di.ID
}

// importedTime resolves an optional document timestamp: the document's value
// when dates are imported and present, otherwise the import time.
func importedTime(t *time.Time, opts Options, now time.Time) time.Time {
	if opts.IncludeDates && t != nil {
		return *t
	}
	return now
}
