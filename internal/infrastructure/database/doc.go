// Package database provides SQLite connectivity for Homeboard's local
// snapshot cache.
//
// This package manages:
//   - Database connection with WAL mode for concurrent access
//   - Connection pooling and lifecycle management
//
// The cache holds only last-known backend state, so the schema is a single
// key/payload table applied idempotently at open; there is no migration
// framework. Dropping the cache file loses nothing the next successful
// refresh cannot rebuild.
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Performance Characteristics:
//   - WAL mode allows concurrent reads during writes
//   - Busy timeout prevents lock contention errors
//
// Usage:
//
//	db, err := database.Open(cfg.Snapshot.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
package database
