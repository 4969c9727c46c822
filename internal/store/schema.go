// Package store exports a single run's co-occurrence graph to SQLite and JSONL.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 holds one run. Every export replaces the previous content.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS run (
    run_id TEXT PRIMARY KEY,
    seed TEXT NOT NULL,  -- uint64 as decimal text
    status TEXT NOT NULL,
    num_community_users INTEGER NOT NULL,
    num_other_users INTEGER NOT NULL,
    num_resources INTEGER NOT NULL,
    num_tags INTEGER NOT NULL,
    community_activity INTEGER NOT NULL,
    other_activity INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    community INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL  -- insertion order
);

CREATE TABLE IF NOT EXISTS edges (
    source TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    target TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    weight INTEGER NOT NULL CHECK (weight >= 1),
    PRIMARY KEY (source, target),
    CHECK (source < target)
);
CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// InitSchema creates the tables if needed and records the schema version.
func InitSchema(ctx context.Context, db *sql.DB) error {
	version, err := getSchemaVersion(ctx, db)
	if err == nil && version >= SchemaVersion {
		return nil
	}

	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
		SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return nil
}

// getSchemaVersion returns the current schema version.
// Returns 0 and an error if the schema_version table doesn't exist.
func getSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version sql.NullInt64
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return int(version.Int64), nil
}
