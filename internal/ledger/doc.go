// Package ledger persists the mapping from local problem folders to the
// external problem numbers they correspond to.
//
// It currently supports:
//   - A single JSON document (compatible with the historical tracking file)
//   - SQLite (optional build tag)
package ledger
