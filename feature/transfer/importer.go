package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"listsync/feature/lists"
	"listsync/feature/lists/models"
)

// ImageWriter persists image payloads materialized from a document. A nil
// writer skips blob writes; image records are still created.
type ImageWriter interface {
	PutImage(ctx context.Context, imageID string, data []byte) error
}

// Importer reconciles an external document into the local store.
type Importer struct {
	store  lists.Store
	images ImageWriter
	logger *zap.Logger
	now    func() time.Time
}

// NewImporter creates an importer over the given store. images may be nil
// when no blob storage is configured.
func NewImporter(store lists.Store, images ImageWriter, logger *zap.Logger) *Importer {
	return &Importer{store: store, images: images, logger: logger, now: time.Now}
}

// Decode parses raw bytes into a document. Anything that is not JSON of the
// expected shape fails with ErrDecodingFailed.
func Decode(data []byte) (*Document, error) {
	var doc Document
	// Unknown fields are tolerated so documents from newer exporters still
	// import; only malformed JSON or a missing version is terminal.
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodingFailed, err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("%w: missing document version", ErrDecodingFailed)
	}
	return &doc, nil
}

// Preview reports what applying the document would do, without touching the
// store. A document that fails validation yields an invalid preview, not an
// error.
func (im *Importer) Preview(ctx context.Context, doc *Document, opts Options) (*Preview, error) {
	if opts.ValidateData {
		if err := ValidateDocument(doc); err != nil {
			return &Preview{IsValid: false, Error: err.Error()}, nil
		}
	}

	local, err := im.store.Lists(ctx, true)
	if err != nil {
		return nil, err
	}
	p, err := buildPlan(local, doc, opts, im.now())
	if err != nil {
		return nil, err
	}

	preview := &Preview{IsValid: true, Conflicts: p.conflicts}
	preview.ListsToCreate, preview.ListsToUpdate,
		preview.ItemsToCreate, preview.ItemsToUpdate,
		preview.ListsToDelete, preview.ItemsToDelete = p.counts()
	return preview, nil
}

// Apply reconciles the document into the store atomically. Either the whole
// plan is executed or local state is left completely intact. Progress is
// reported through onProgress when non-nil, ending at 100% on success.
func (im *Importer) Apply(ctx context.Context, doc *Document, opts Options, onProgress ProgressFunc) (*Result, error) {
	if opts.ValidateData {
		if err := ValidateDocument(doc); err != nil {
			return nil, err
		}
	}

	result := &Result{}
	err := im.store.Transaction(ctx, func(tx lists.Store) error {
		local, err := tx.Lists(ctx, true)
		if err != nil {
			return err
		}
		p, err := buildPlan(local, doc, opts, im.now())
		if err != nil {
			return err
		}
		result.Conflicts = p.conflicts

		progress := Progress{TotalLists: len(p.lists) + len(p.listsToDelete)}
		for _, pl := range p.lists {
			progress.TotalItems += len(pl.itemsToCreate) + len(pl.itemsToUpdate) + len(pl.itemsToDelete)
		}
		report := func(op string) {
			if onProgress == nil {
				return
			}
			progress.CurrentOperation = op
			onProgress(progress)
		}

		for i := range p.lists {
			if err := im.applyList(ctx, tx, &p.lists[i], result, &progress, report); err != nil {
				return err
			}
		}

		for _, l := range p.listsToDelete {
			if err := tx.DeleteList(ctx, l.ID); err != nil {
				return err
			}
			result.ListsDeleted++
			result.ItemsDeleted += len(l.Items)
			progress.ProcessedLists++
			report(fmt.Sprintf("deleting list %q", l.Name))
		}

		if err := tx.RenumberLists(ctx); err != nil {
			return err
		}
		for i := range p.lists {
			if err := tx.RenumberItems(ctx, p.lists[i].list.ID); err != nil {
				return err
			}
		}

		report("finished")
		return nil
	})
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result, err
	}

	im.logger.Info("Applied import",
		zap.String("strategy", string(opts.Strategy)),
		zap.Int("lists_created", result.ListsCreated),
		zap.Int("lists_updated", result.ListsUpdated),
		zap.Int("lists_deleted", result.ListsDeleted),
		zap.Int("items_created", result.ItemsCreated),
		zap.Int("items_updated", result.ItemsUpdated),
		zap.Int("items_deleted", result.ItemsDeleted),
		zap.Int("conflicts", len(result.Conflicts)),
	)
	return result, nil
}

func (im *Importer) applyList(ctx context.Context, tx lists.Store, pl *plannedList, result *Result, progress *Progress, report func(string)) error {
	if pl.create {
		list := pl.list
		list.Items = nil
		if err := tx.CreateList(ctx, &list); err != nil {
			return err
		}
		result.ListsCreated++
	} else if pl.updateList {
		list := pl.list
		if err := tx.UpdateList(ctx, &list); err != nil {
			return err
		}
		result.ListsUpdated++
	}
	progress.ProcessedLists++
	report(fmt.Sprintf("importing list %q", pl.list.Name))

	for i := range pl.itemsToCreate {
		pi := &pl.itemsToCreate[i]
		item := pi.item
		for _, img := range pi.images {
			item.Images = append(item.Images, img.record)
		}
		if err := tx.CreateItem(ctx, &item); err != nil {
			return err
		}
		if err := im.writeImages(ctx, pi.images); err != nil {
			return err
		}
		result.ItemsCreated++
		progress.ProcessedItems++
		report(fmt.Sprintf("importing item %q", item.Title))
	}

	for i := range pl.itemsToUpdate {
		pi := &pl.itemsToUpdate[i]
		if err := tx.UpdateItem(ctx, &pi.item); err != nil {
			return err
		}
		if pi.setImages {
			records := make([]models.ItemImage, 0, len(pi.images))
			for _, img := range pi.images {
				records = append(records, img.record)
			}
			if err := tx.ReplaceItemImages(ctx, pi.item.ID, records); err != nil {
				return err
			}
			if err := im.writeImages(ctx, pi.images); err != nil {
				return err
			}
		}
		result.ItemsUpdated++
		progress.ProcessedItems++
		report(fmt.Sprintf("updating item %q", pi.item.Title))
	}

	for _, it := range pl.itemsToDelete {
		if err := tx.DeleteItem(ctx, it.ID); err != nil {
			return err
		}
		result.ItemsDeleted++
		progress.ProcessedItems++
		report(fmt.Sprintf("deleting item %q", it.Title))
	}
	return nil
}

func (im *Importer) writeImages(ctx context.Context, images []plannedImage) error {
	if im.images == nil {
		return nil
	}
	for _, img := range images {
		if err := im.images.PutImage(ctx, img.record.ID, img.data); err != nil {
			return err
		}
	}
	return nil
}
