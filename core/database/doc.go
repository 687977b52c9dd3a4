// Package database establishes the connection to the record store database.
//
// The record store is the single shared mutable resource of the application:
// every reconciliation path (device sync, import) mutates it through a
// transactional save, and the UI observes its published state. This package
// only opens the connection; the schema and access layer live in
// feature/lists.
package database
