package lists

import "errors"

var (
	// ErrListNotFound is returned when a list id has no record.
	ErrListNotFound = errors.New("list not found")
	// ErrItemNotFound is returned when an item id has no record.
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidName is returned for empty or oversized list names.
	ErrInvalidName = errors.New("list name must be non-empty and at most 100 characters")
	// ErrInvalidTitle is returned for empty or oversized item titles.
	ErrInvalidTitle = errors.New("item title must be non-empty and at most 200 characters")
	// ErrInvalidQuantity is returned for quantities outside 1..9999.
	ErrInvalidQuantity = errors.New("item quantity must be between 1 and 9999")
)
