package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// additions tolerate re-runs via the duplicate-column check.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS reagents (
		id                  TEXT PRIMARY KEY,
		name                TEXT NOT NULL,
		type                TEXT NOT NULL
		                    CHECK(type IN ('primary','opal','dapi','amplifier','secondary','polymer','other')),
		initial_stock_ul    REAL NOT NULL DEFAULT 0 CHECK(initial_stock_ul >= 0),
		volume_per_slide_ul REAL NOT NULL DEFAULT 0 CHECK(volume_per_slide_ul >= 0),
		dead_volume_ul      REAL CHECK(dead_volume_ul IS NULL OR dead_volume_ul >= 0),
		slides_override     INTEGER CHECK(slides_override IS NULL OR slides_override >= 0),
		position            INTEGER NOT NULL DEFAULT 0,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reagents_type ON reagents(type)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_reagents_name ON reagents(name COLLATE NOCASE)`,

	`CREATE TABLE IF NOT EXISTS run_setup (
		id                INTEGER PRIMARY KEY CHECK(id = 1),
		instrument        TEXT NOT NULL
		                  CHECK(instrument IN ('bond_rx','bond_iii')),
		dead_volume_ul    REAL NOT NULL CHECK(dead_volume_ul > 0),
		plexes            INTEGER NOT NULL CHECK(plexes BETWEEN 1 AND 8),
		test_slides       INTEGER NOT NULL CHECK(test_slides >= 0),
		neg_controls      INTEGER NOT NULL CHECK(neg_controls >= 0),
		warn_threshold_ul REAL NOT NULL CHECK(warn_threshold_ul > 0),
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plex_assignments (
		plex       INTEGER NOT NULL CHECK(plex >= 1),
		reagent_id TEXT NOT NULL REFERENCES reagents(id) ON DELETE CASCADE,
		position   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		PRIMARY KEY (plex, reagent_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plex_assignments_reagent ON plex_assignments(reagent_id)`,
}
