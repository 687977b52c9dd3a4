// Package lists implements the record store and the list/item domain.
//
// It provides:
//  1. Store: the CRUD object store keyed by UUID with transactional save,
//     backed by GORM (sqlite for device-local stores, mysql for shared
//     deployments). Committed mutations fire explicitly registered change
//     observers; feature/sync coalesces those bursts.
//  2. Resolver: duplicate detection at item-creation time ("uncross on
//     re-add") and suggestion copies between lists.
//  3. Service and Handler: the operations the UI/API layer calls, keeping
//     the dense ordering invariants intact after every mutation.
//
// Reconcilers (feature/sync, feature/transfer) depend only on the Store
// interface, never on ambient global state, so each test constructs its own
// isolated store.
package lists
