// Package transfer imports and exports lists as JSON documents.
//
// A document is the hand-exported counterpart of the sync snapshot: it may
// embed image payloads as base64, omit ids or dates, and originate from
// other applications entirely. Importing is all-or-nothing: the document is
// validated up front, a plan is built against current local state, and the
// plan executes inside a single transaction. Preview runs the same plan
// without executing it, so its counts and conflicts always match the apply
// that follows.
//
// Three merge strategies are supported: merge (update matches, create the
// rest), replace (local state becomes the document's state, deletions
// included), and append (everything inserted fresh with new ids).
// Overwrites and deletions of existing data are reported as conflicts;
// conflicts are informational, not errors.
package transfer
