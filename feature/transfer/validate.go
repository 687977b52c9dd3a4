package transfer

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"listsync/feature/lists/models"
)

var validate = validator.New()

// ValidateDocument checks a decoded document against both the structural
// rules (required fields, nesting) and the semantic rules that guard the
// store. One bad entity rejects the whole document; imports are
// all-or-nothing.
func ValidateDocument(doc *Document) error {
	if err := validate.Struct(doc); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	for li, list := range doc.Lists {
		if strings.TrimSpace(list.Name) == "" {
			return &ValidationError{Message: fmt.Sprintf("list %d has an empty name", li)}
		}
		// Length limits count runes, not bytes, matching the store's own
		// checks so multi-byte names survive an export and re-import.
		if utf8.RuneCountInString(strings.TrimSpace(list.Name)) > models.MaxListNameLength {
			return &ValidationError{Message: fmt.Sprintf("list %q exceeds the maximum name length", list.Name)}
		}
		for ii, item := range list.Items {
			if strings.TrimSpace(item.Title) == "" {
				return &ValidationError{Message: fmt.Sprintf("item %d in list %q has an empty title", ii, list.Name)}
			}
			if utf8.RuneCountInString(strings.TrimSpace(item.Title)) > models.MaxItemTitleLength {
				return &ValidationError{Message: fmt.Sprintf("item %q in list %q exceeds the maximum title length", item.Title, list.Name)}
			}
			if item.Quantity < 0 {
				return &ValidationError{Message: fmt.Sprintf("item %q in list %q has a negative quantity", item.Title, list.Name)}
			}
			for oi, img := range item.Images {
				if img.ImageData == "" {
					continue
				}
				if _, err := base64.StdEncoding.DecodeString(img.ImageData); err != nil {
					return &ValidationError{Message: fmt.Sprintf("image %d of item %q in list %q is not valid base64", oi, item.Title, list.Name)}
				}
			}
		}
	}
	return nil
}
