// Package sync implements device-to-device synchronization.
//
// Synchronization is full-snapshot based: a device projects its complete
// state into transfer-safe ListSyncData (image bytes stripped, counts
// preserved) and the receiving device merges the snapshot into its store
// with last-writer-wins semantics at item granularity. There is no operation
// log or CRDT machinery; correctness depends on at-least-once delivery of
// full snapshots, because omission from a snapshot means deletion.
//
// # Components
//
//   - Projection: Project/Materialize between domain entities and their
//     flat, binary-free transfer shape; EncodeSnapshot enforces the 256 KiB
//     transport budget before transmission.
//   - Debouncer: collapses bursts of storage change signals into one reload
//     event delivered on a serial dispatcher (the main-context analog).
//   - Reconciler: applies a peer snapshot atomically; idempotent and
//     convergent under re-delivery and reordering of newer snapshots.
//
// Reconciliations must not interleave; Service rejects a second concurrent
// application with ErrSyncInProgress.
package sync
