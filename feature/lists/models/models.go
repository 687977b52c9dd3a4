package models

import (
	"strings"
	"time"
)

// Field limits enforced on lists and items.
const (
	MaxListNameLength  = 100
	MaxItemTitleLength = 200
	MinItemQuantity    = 1
	MaxItemQuantity    = 9999
)

// List is a shopping/to-do list. It exclusively owns its items: deleting the
// list cascades to every item (and through items, to their images).
type List struct {
	// ID is the stable UUID of the list; never reused.
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	// Name is the display name, non-empty and at most 100 chars after trim.
	Name string `gorm:"size:100;not null" json:"name"`

	// OrderNumber defines display order. Among non-archived lists the values
	// form a dense 0..N-1 sequence after any mutation.
	OrderNumber int `json:"order_number"`

	// IsArchived removes the list from the active set without deleting it.
	IsArchived bool `json:"is_archived"`

	CreatedAt time.Time `json:"created_at"`

	// ModifiedAt drives last-writer-wins reconciliation. It is always set
	// explicitly by callers, never auto-updated by the ORM.
	ModifiedAt time.Time `json:"modified_at"`

	// Items are ordered by OrderNumber within the list.
	Items []Item `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"items"`
}

// Item is a single entry in a list.
type Item struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	// ListID is the owning list's id. It may be unset only during transient
	// construction before insertion.
	ListID string `gorm:"type:uuid;index;not null" json:"list_id"`

	// Title is non-empty and at most 200 chars after trim.
	Title string `gorm:"size:200;not null" json:"title"`

	// Description is optional; the empty string means absent.
	Description string `json:"description,omitempty"`

	// Quantity is between 1 and 9999.
	Quantity int `json:"quantity"`

	// OrderNumber is a dense per-list sequence.
	OrderNumber int `json:"order_number"`

	IsCrossedOut bool `json:"is_crossed_out"`

	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`

	// Images are owned exclusively by this item and are never transmitted by
	// the sync path; only their count travels.
	Images []ItemImage `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"images"`
}

// ItemImage is an opaque image record. The bytes live in blob storage keyed
// by the image id; the record only carries identity and ordering.
type ItemImage struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID      string    `gorm:"type:uuid;index;not null" json:"item_id"`
	OrderNumber int       `json:"order_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// NormalizeTitle trims surrounding whitespace for comparison and storage.
func NormalizeTitle(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeDescription trims whitespace; an all-whitespace description
// collapses to the empty string, which means absent.
func NormalizeDescription(s string) string {
	return strings.TrimSpace(s)
}

// ClampQuantity forces a quantity into the valid 1..9999 range.
func ClampQuantity(q int) int {
	if q < MinItemQuantity {
		return MinItemQuantity
	}
	if q > MaxItemQuantity {
		return MaxItemQuantity
	}
	return q
}

// SameIdentity reports whether the item matches the given normalized
// identity: equal title, equal description (empty and absent are the same
// thing), and equal quantity. Identity is scoped to a single list by the
// caller; two lists can hold independent items with identical fields.
func (i *Item) SameIdentity(title, description string, quantity int) bool {
	return NormalizeTitle(i.Title) == NormalizeTitle(title) &&
		NormalizeDescription(i.Description) == NormalizeDescription(description) &&
		i.Quantity == quantity
}
