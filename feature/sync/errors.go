package sync

import "errors"

var (
	// ErrPayloadTooLarge means the encoded snapshot exceeds the transport
	// budget and must not be transmitted.
	ErrPayloadTooLarge = errors.New("snapshot payload exceeds transport budget")
	// ErrDecodeSnapshot means the payload is not a recognizable snapshot.
	ErrDecodeSnapshot = errors.New("snapshot payload could not be decoded")
	// ErrSyncInProgress means another snapshot is being applied; callers must
	// serialize reconciliations against the same store.
	ErrSyncInProgress = errors.New("a sync operation is already in progress")
)
