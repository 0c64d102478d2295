// Package runlog persists a small SQLite ledger of organize and undo runs.
// The ledger backs the stats view; it is advisory and safe to delete.
package runlog
