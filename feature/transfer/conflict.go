package transfer

// ConflictType classifies what a reconciliation did to existing data.
type ConflictType string

const (
	// ConflictListModified records an existing list overwritten by the
	// incoming document.
	ConflictListModified ConflictType = "list-modified"
	// ConflictItemModified records an existing item overwritten by the
	// incoming document.
	ConflictItemModified ConflictType = "item-modified"
	// ConflictListDeleted records a local list removed because the document
	// does not contain it (replace strategy).
	ConflictListDeleted ConflictType = "list-deleted"
	// ConflictItemDeleted records a local item removed because the document
	// does not contain it (replace strategy).
	ConflictItemDeleted ConflictType = "item-deleted"
)

// Conflict is an informational record of overwritten or deleted data.
// Conflicts are not errors: an import with conflicts is still successful.
type Conflict struct {
	Type          ConflictType `json:"type"`
	EntityID      string       `json:"entity_id"`
	EntityName    string       `json:"entity_name"`
	CurrentValue  string       `json:"current_value"`
	IncomingValue string       `json:"incoming_value,omitempty"`
	Message       string       `json:"message"`
}
