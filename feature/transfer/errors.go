package transfer

import (
	"errors"
	"fmt"
)

var (
	// ErrDecodingFailed means the document is not a recognizable format.
	ErrDecodingFailed = errors.New("document is not a recognizable format")
	// ErrImportInProgress means another import is being applied; callers
	// must serialize reconciliations against the same store.
	ErrImportInProgress = errors.New("an import operation is already in progress")
)

// ValidationError reports the specific rule a document violates. It is
// terminal for the whole operation; no store mutation happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// IsValidationError reports whether err is a validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
