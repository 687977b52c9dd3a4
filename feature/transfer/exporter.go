package transfer

import (
	"context"
	"encoding/base64"
	"time"

	"go.uber.org/zap"

	"listsync/feature/lists"
	"listsync/feature/lists/models"
)

// ImageReader loads image payloads for embedding into an export. A nil
// reader exports image records with empty payloads omitted.
type ImageReader interface {
	GetImage(ctx context.Context, imageID string) ([]byte, error)
}

// Exporter writes local state out as a document.
type Exporter struct {
	store  lists.Store
	images ImageReader
	logger *zap.Logger
	now    func() time.Time
}

// NewExporter creates an exporter over the given store. images may be nil.
func NewExporter(store lists.Store, images ImageReader, logger *zap.Logger) *Exporter {
	return &Exporter{store: store, images: images, logger: logger, now: time.Now}
}

// Export builds a document from the current store contents, shaped by the
// options' content filters. Filtered-out fields are zeroed so they are
// dropped from the JSON entirely rather than exported empty.
func (ex *Exporter) Export(ctx context.Context, opts Options) (*Document, error) {
	local, err := ex.store.Lists(ctx, opts.IncludeArchived)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Version:    DocumentVersion,
		ExportDate: ex.now(),
	}
	itemCount := 0
	for i := range local {
		dl, err := ex.exportList(ctx, &local[i], opts)
		if err != nil {
			return nil, err
		}
		itemCount += len(dl.Items)
		doc.Lists = append(doc.Lists, *dl)
	}

	ex.logger.Info("Exported document",
		zap.Int("lists", len(doc.Lists)),
		zap.Int("items", itemCount),
	)
	return doc, nil
}

func (ex *Exporter) exportList(ctx context.Context, list *models.List, opts Options) (*DocumentList, error) {
	dl := &DocumentList{
		ID:          list.ID,
		Name:        list.Name,
		OrderNumber: list.OrderNumber,
		IsArchived:  list.IsArchived,
	}
	if opts.IncludeDates {
		created, modified := list.CreatedAt, list.ModifiedAt
		dl.CreatedAt, dl.ModifiedAt = &created, &modified
	}

	for i := range list.Items {
		item := &list.Items[i]
		if item.IsCrossedOut && !opts.IncludeCrossedOut {
			continue
		}
		di, err := ex.exportItem(ctx, item, opts)
		if err != nil {
			return nil, err
		}
		dl.Items = append(dl.Items, *di)
	}
	return dl, nil
}

func (ex *Exporter) exportItem(ctx context.Context, item *models.Item, opts Options) (*DocumentItem, error) {
	di := &DocumentItem{
		ID:           item.ID,
		Title:        item.Title,
		IsCrossedOut: item.IsCrossedOut,
	}
	if opts.IncludeDescriptions {
		di.Description = item.Description
	}
	if opts.IncludeQuantities {
		di.Quantity = item.Quantity
	}
	if opts.IncludeDates {
		created, modified := item.CreatedAt, item.ModifiedAt
		di.CreatedAt, di.ModifiedAt = &created, &modified
	}
	if !opts.IncludeImages || ex.images == nil {
		return di, nil
	}

	for _, img := range item.Images {
		data, err := ex.images.GetImage(ctx, img.ID)
		if err != nil {
			// An unreadable blob degrades the export, it does not abort it:
			// the record is skipped and the rest of the document still ships.
			ex.logger.Warn("Skipping unreadable image",
				zap.String("image_id", img.ID),
				zap.Error(err),
			)
			continue
		}
		di.Images = append(di.Images, DocumentImage{
			ImageData:   base64.StdEncoding.EncodeToString(data),
			OrderNumber: img.OrderNumber,
		})
	}
	return di, nil
}
