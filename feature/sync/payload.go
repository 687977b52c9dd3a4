package sync

import (
	"encoding/json"
	"fmt"
)

// MaxPayloadBytes is the hard transport budget for a snapshot payload.
// The transport delivers opaque payloads up to this size; anything larger
// must be rejected before transmission.
const MaxPayloadBytes = 256 * 1024

// EncodeSnapshot serializes a snapshot and enforces the transport budget.
func EncodeSnapshot(snapshot []ListSyncData) ([]byte, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if len(data) > MaxPayloadBytes {
		return nil, fmt.Errorf("%w: %d bytes (budget %d)", ErrPayloadTooLarge, len(data), MaxPayloadBytes)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot payload. Malformed payloads fail the whole
// snapshot; nothing is partially decoded.
func DecodeSnapshot(data []byte) ([]ListSyncData, error) {
	var snapshot []ListSyncData
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeSnapshot, err)
	}
	return snapshot, nil
}
