// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// Schema is the catalog's SQLite schema.
const Schema = `
-- Metadata table for schema version and index state
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Themes table: one row per theme file
CREATE TABLE IF NOT EXISTS themes (
    name TEXT PRIMARY KEY,
    path TEXT NOT NULL UNIQUE,
    luma TEXT NOT NULL,          -- light, dark
    min_support INTEGER NOT NULL, -- styling.ColorSupport ordinal
    description TEXT,
    mod_time INTEGER NOT NULL,   -- Unix timestamp
    indexed_at INTEGER NOT NULL  -- Unix timestamp
);

CREATE INDEX IF NOT EXISTS idx_themes_luma ON themes(luma, min_support);

-- Backgrounds table: declared backgrounds, normalized to #rrggbb
CREATE TABLE IF NOT EXISTS backgrounds (
    theme_name TEXT NOT NULL,
    hex TEXT NOT NULL,
    r INTEGER NOT NULL,
    g INTEGER NOT NULL,
    b INTEGER NOT NULL,
    FOREIGN KEY(theme_name) REFERENCES themes(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_backgrounds_hex ON backgrounds(hex);
CREATE INDEX IF NOT EXISTS idx_backgrounds_theme ON backgrounds(theme_name);
`

// InitMetadata initializes the metadata table with default values
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
INSERT OR IGNORE INTO metadata (key, value) VALUES ('last_full_index', '0');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('theme_dir', '');
`
