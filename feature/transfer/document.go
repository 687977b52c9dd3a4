package transfer

import (
	"encoding/json"
	"fmt"
	"time"
)

// DocumentVersion is the only supported document format version.
const DocumentVersion = "1.0"

// Document is the externally supplied export format: a hand-exported or
// out-of-band transmitted description of lists. Unlike sync snapshots it may
// carry image payloads and may omit ids, dates, or quantities depending on
// the exporting side's content filters.
type Document struct {
	Version    string         `json:"version" validate:"required"`
	ExportDate time.Time      `json:"export_date"`
	Lists      []DocumentList `json:"lists" validate:"dive"`
}

// DocumentList describes one list in a document. ID is optional: documents
// produced by other apps or edited by hand may not carry ids, in which case
// the list is always treated as new.
type DocumentList struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	OrderNumber int            `json:"order_number,omitempty"`
	IsArchived  bool           `json:"is_archived,omitempty"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
	ModifiedAt  *time.Time     `json:"modified_at,omitempty"`
	Items       []DocumentItem `json:"items" validate:"dive"`
}

// DocumentItem describes one item. Quantity zero means "not exported" and
// is clamped to 1 on import.
type DocumentItem struct {
	ID           string          `json:"id,omitempty"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Quantity     int             `json:"quantity,omitempty"`
	IsCrossedOut bool            `json:"is_crossed_out,omitempty"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
	ModifiedAt   *time.Time      `json:"modified_at,omitempty"`
	Images       []DocumentImage `json:"images,omitempty"`
}

// DocumentImage carries an image payload as base64.
type DocumentImage struct {
	ImageData   string `json:"image_data"`
	OrderNumber int    `json:"order_number"`
}

// EncodeDocument serializes a document for export.
func EncodeDocument(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}
