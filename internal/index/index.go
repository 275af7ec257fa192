// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/thagstyle/internal/logging"
	"github.com/jeranaias/thagstyle/internal/styling"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotIndexed    = errors.New("theme catalog not indexed")
	ErrIndexing      = errors.New("indexing in progress")
	ErrDatabaseError = errors.New("database error")
	ErrInvalidPath   = errors.New("invalid theme directory")
)

// =============================================================================
// CATALOG
// =============================================================================

// Catalog indexes a theme directory into SQLite.
type Catalog struct {
	db      *sql.DB
	watcher FileWatcher
	mu      sync.RWMutex

	// Indexing state
	indexing    bool
	indexingMu  sync.Mutex
	lastIndexed time.Time
	themeCount  int

	config  *Config
	changes chan Change
}

// Config holds catalog configuration
type Config struct {
	// ThemeDir is the directory holding *.toml theme files
	ThemeDir string

	// DatabasePath is where to store the SQLite database
	DatabasePath string

	// MaxFileSize is the largest theme file that will be parsed (bytes)
	MaxFileSize int64

	// IgnorePatterns are glob patterns matched against base names
	IgnorePatterns []string

	// WatchDebounce is the quiet period before a changed file is reindexed
	WatchDebounce time.Duration
}

// DefaultDatabasePath is ~/.thag/themes.db, or a file under the theme
// directory when there is no home directory.
func DefaultDatabasePath(themeDir string) string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".thag", "themes.db")
	}
	return filepath.Join(themeDir, ".thag", "themes.db")
}

// DefaultConfig returns default configuration
func DefaultConfig(themeDir string) *Config {
	return &Config{
		ThemeDir:       themeDir,
		DatabasePath:   DefaultDatabasePath(themeDir),
		MaxFileSize:    1024 * 1024,
		IgnorePatterns: []string{".git", ".thag", "*~", ".#*"},
		WatchDebounce:  500 * time.Millisecond,
	}
}

// NewCatalog opens (creating if needed) the catalog database.
func NewCatalog(config *Config) (*Catalog, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	info, err := os.Stat(config.ThemeDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory", ErrInvalidPath)
	}
	if abs, err := filepath.Abs(config.ThemeDir); err == nil {
		config.ThemeDir = abs
	}
	if config.WatchDebounce <= 0 {
		config.WatchDebounce = 500 * time.Millisecond
	}

	if err := os.MkdirAll(filepath.Dir(config.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=-8000", // 8MB cache
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
		"PRAGMA wal_autocheckpoint=1000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	c := &Catalog{
		db:      db,
		config:  config,
		changes: make(chan Change, 32),
	}

	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := c.loadStats(); err != nil {
		logging.Debugf("INDEX | load stats: %v", err)
	}

	return c, nil
}

// initSchema creates the database schema
func (c *Catalog) initSchema() error {
	if _, err := c.db.Exec(Schema); err != nil {
		return err
	}
	if _, err := c.db.Exec(InitMetadata); err != nil {
		return err
	}

	var stored string
	if err := c.db.QueryRow("SELECT value FROM metadata WHERE key = 'theme_dir'").Scan(&stored); err != nil {
		return err
	}
	if stored == c.config.ThemeDir {
		return nil
	}

	// A different directory invalidates everything indexed so far.
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if stored != "" {
		logging.Verbosef("INDEX | theme dir changed from %s to %s, clearing catalog", stored, c.config.ThemeDir)
	}
	for _, stmt := range []string{
		"DELETE FROM backgrounds",
		"DELETE FROM themes",
		"UPDATE metadata SET value = '0' WHERE key = 'last_full_index'",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("UPDATE metadata SET value = ? WHERE key = 'theme_dir'", c.config.ThemeDir); err != nil {
		return err
	}
	return tx.Commit()
}

// Close stops any watcher and closes the database.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher != nil {
		c.watcher.Close()
		c.watcher = nil
	}

	// Watcher goroutines may still be draining; they see sql.ErrConnDone
	return c.db.Close()
}

// ThemeDir returns the indexed directory.
func (c *Catalog) ThemeDir() string { return c.config.ThemeDir }

// DatabasePath is the SQLite file backing the catalog.
func (c *Catalog) DatabasePath() string { return c.config.DatabasePath }

// =============================================================================
// INDEXING
// =============================================================================

// Index rebuilds the catalog from the theme directory. Files that fail to
// parse are logged and skipped.
func (c *Catalog) Index(ctx context.Context) error {
	c.indexingMu.Lock()
	if c.indexing {
		c.indexingMu.Unlock()
		return ErrIndexing
	}
	c.indexing = true
	c.indexingMu.Unlock()

	defer func() {
		c.indexingMu.Lock()
		c.indexing = false
		c.indexingMu.Unlock()
	}()

	startTime := time.Now()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM backgrounds"); err != nil {
		return fmt.Errorf("failed to clear backgrounds: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM themes"); err != nil {
		return fmt.Errorf("failed to clear themes: %w", err)
	}

	themeCount := 0
	err = filepath.WalkDir(c.config.ThemeDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if path != c.config.ThemeDir && c.shouldIgnore(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !c.isThemeFile(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if _, err := c.indexFile(tx, path, info); err != nil {
			logging.Warnf("INDEX | skip %s: %v", path, err)
			return nil
		}
		themeCount++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk theme directory: %w", err)
	}

	if _, err := tx.Exec("UPDATE metadata SET value = ? WHERE key = 'last_full_index'", startTime.Unix()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	c.mu.Lock()
	c.lastIndexed = startTime
	c.mu.Unlock()
	if err := c.loadStats(); err != nil {
		logging.Debugf("INDEX | load stats: %v", err)
	}

	logging.Verbosef("INDEX | dir=%s themes=%d files=%d duration=%s",
		c.config.ThemeDir, c.ThemeCount(), themeCount, time.Since(startTime).Round(time.Millisecond))
	return nil
}

// indexFile parses one theme file and stores it, replacing any row with the
// same name or path. Returns the theme name.
func (c *Catalog) indexFile(tx *sql.Tx, path string, info fs.FileInfo) (string, error) {
	if info.Size() > c.config.MaxFileSize {
		return "", fmt.Errorf("file exceeds %d bytes", c.config.MaxFileSize)
	}

	theme, err := styling.LoadFromFile(path)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	var existing string
	err = tx.QueryRow("SELECT path FROM themes WHERE name = ?", theme.Name).Scan(&existing)
	if err == nil && existing != absPath {
		logging.Warnf("INDEX | theme %q in %s replaces %s", theme.Name, absPath, existing)
	}

	if err := deleteWhere(tx, "name = ? OR path = ?", theme.Name, absPath); err != nil {
		return "", err
	}

	_, err = tx.Exec(`
		INSERT INTO themes (name, path, luma, min_support, description, mod_time, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, theme.Name, absPath, theme.TermBgLuma.String(), int(theme.MinColorSupport),
		theme.Description, info.ModTime().Unix(), time.Now().Unix())
	if err != nil {
		return "", err
	}

	for i, rgb := range theme.BgRGBs {
		_, err := tx.Exec(`
			INSERT INTO backgrounds (theme_name, hex, r, g, b)
			VALUES (?, ?, ?, ?, ?)
		`, theme.Name, theme.Backgrounds[i], rgb[0], rgb[1], rgb[2])
		if err != nil {
			return "", err
		}
	}

	return theme.Name, nil
}

// deleteWhere removes matching themes and their backgrounds.
func deleteWhere(tx *sql.Tx, cond string, args ...any) error {
	if _, err := tx.Exec("DELETE FROM backgrounds WHERE theme_name IN (SELECT name FROM themes WHERE "+cond+")", args...); err != nil {
		return err
	}
	_, err := tx.Exec("DELETE FROM themes WHERE "+cond, args...)
	return err
}

// shouldIgnore checks if a file/directory should be ignored
func (c *Catalog) shouldIgnore(name string) bool {
	for _, pattern := range c.config.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// isThemeFile reports whether path looks like a theme the catalog indexes.
func (c *Catalog) isThemeFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml") && !c.shouldIgnore(filepath.Base(path))
}

// loadStats loads statistics from the database
func (c *Catalog) loadStats() error {
	var lastIndexed int64
	if err := c.db.QueryRow("SELECT value FROM metadata WHERE key = 'last_full_index'").Scan(&lastIndexed); err != nil {
		return err
	}

	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM themes").Scan(&count); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if lastIndexed > 0 {
		c.lastIndexed = time.Unix(lastIndexed, 0)
	}
	c.themeCount = count
	return nil
}

// =============================================================================
// STATISTICS
// =============================================================================

// Stats describes the catalog.
type Stats struct {
	ThemeDir        string
	ThemeCount      int
	LightCount      int
	DarkCount       int
	BackgroundCount int
	LastIndexed     time.Time
	IsIndexing      bool
	DatabaseSize    int64
}

// Stats returns current catalog statistics.
func (c *Catalog) Stats() (Stats, error) {
	c.indexingMu.Lock()
	indexing := c.indexing
	c.indexingMu.Unlock()

	c.mu.RLock()
	s := Stats{
		ThemeDir:    c.config.ThemeDir,
		LastIndexed: c.lastIndexed,
		IsIndexing:  indexing,
	}
	c.mu.RUnlock()

	row := c.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN luma = 'light' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN luma = 'dark' THEN 1 ELSE 0 END), 0),
			(SELECT COUNT(*) FROM backgrounds)
		FROM themes
	`)
	if err := row.Scan(&s.ThemeCount, &s.LightCount, &s.DarkCount, &s.BackgroundCount); err != nil {
		return s, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	if info, err := os.Stat(c.config.DatabasePath); err == nil {
		s.DatabaseSize = info.Size()
	}
	return s, nil
}

// ThemeCount is the number of themes at the last full index or update.
func (c *Catalog) ThemeCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.themeCount
}

// IsIndexed returns true once a full index has completed.
func (c *Catalog) IsIndexed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.lastIndexed.IsZero()
}
