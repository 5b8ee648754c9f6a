// Package snapshot persists the store's last-known backend state to a local
// SQLite cache. On startup the cache seeds the dashboard before the first
// refresh; when the gateway is unreachable the dashboard keeps rendering
// from it.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sideduran/homeboard/internal/infrastructure/database"
	"github.com/sideduran/homeboard/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshot (
	collection TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// Cache reads and writes store snapshots against one SQLite database.
type Cache struct {
	db *database.DB
}

// Open connects to (creating if necessary) the snapshot database and
// ensures its schema.
func Open(cfg database.Config) (*Cache, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("creating snapshot schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Save writes every collection of the snapshot in one transaction, so a
// crash mid-write never leaves the cache half old, half new.
func (c *Cache) Save(ctx context.Context, snap store.Snapshot) error {
	collections := map[string]any{
		"devices":     snap.Devices,
		"rooms":       snap.Rooms,
		"scenes":      snap.Scenes,
		"automations": snap.Automations,
		"activities":  snap.Activities,
		"security":    snap.Security,
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot write: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op if committed

	now := time.Now().UTC().Format(time.RFC3339)
	for name, v := range collections {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", name, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO snapshot (collection, payload, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(collection) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
			name, string(payload), now)
		if err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Load reads the cached snapshot. ok is false when the cache is empty
// (first run); a decode failure on any collection is an error, not a
// partial load.
func (c *Cache) Load(ctx context.Context) (snap store.Snapshot, ok bool, err error) {
	rows, err := c.db.QueryContext(ctx, "SELECT collection, payload FROM snapshot")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Snapshot{}, false, nil
		}
		return store.Snapshot{}, false, fmt.Errorf("reading snapshot: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	for rows.Next() {
		var name, payload string
		if err := rows.Scan(&name, &payload); err != nil {
			return store.Snapshot{}, false, fmt.Errorf("scanning snapshot row: %w", err)
		}

		var decodeErr error
		switch name {
		case "devices":
			decodeErr = json.Unmarshal([]byte(payload), &snap.Devices)
		case "rooms":
			decodeErr = json.Unmarshal([]byte(payload), &snap.Rooms)
		case "scenes":
			decodeErr = json.Unmarshal([]byte(payload), &snap.Scenes)
		case "automations":
			decodeErr = json.Unmarshal([]byte(payload), &snap.Automations)
		case "activities":
			decodeErr = json.Unmarshal([]byte(payload), &snap.Activities)
		case "security":
			decodeErr = json.Unmarshal([]byte(payload), &snap.Security)
		default:
			continue // Unknown collection from a newer version; skip
		}
		if decodeErr != nil {
			return store.Snapshot{}, false, fmt.Errorf("decoding %s: %w", name, decodeErr)
		}
		ok = true
	}
	if err := rows.Err(); err != nil {
		return store.Snapshot{}, false, fmt.Errorf("iterating snapshot rows: %w", err)
	}
	return snap, ok, nil
}
