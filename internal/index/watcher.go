// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/thagstyle/internal/logging"
)

// =============================================================================
// CHANGE NOTIFICATIONS
// =============================================================================

// ChangeOp says what happened to a theme file.
type ChangeOp int

const (
	// ChangeUpdated means a file was created or rewritten and reindexed.
	ChangeUpdated ChangeOp = iota
	// ChangeRemoved means a file was removed or renamed away.
	ChangeRemoved
)

// String returns "updated" or "removed".
func (op ChangeOp) String() string {
	if op == ChangeRemoved {
		return "removed"
	}
	return "updated"
}

// Change is sent on Changes after the catalog applies a file event.
type Change struct {
	Op   ChangeOp
	Path string
	// Name is the theme name; empty when a removed file held no theme.
	Name string
}

// Changes delivers watcher notifications. Sends never block, so a slow
// reader can miss events; reread the catalog on any change.
func (c *Catalog) Changes() <-chan Change {
	return c.changes
}

func (c *Catalog) notify(ch Change) {
	select {
	case c.changes <- ch:
	default:
		logging.Debugf("INDEX | change dropped op=%s path=%s", ch.Op, ch.Path)
	}
}

// =============================================================================
// INCREMENTAL UPDATES
// =============================================================================

// UpdateFile reindexes a single theme file. A missing file is removed.
func (c *Catalog) UpdateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return c.RemoveFile(path)
	}

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	name, err := c.indexFile(tx, path, info)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	if err := c.loadStats(); err != nil {
		logging.Debugf("INDEX | load stats: %v", err)
	}

	logging.Verbosef("INDEX | updated theme=%s path=%s", name, path)
	c.notify(Change{Op: ChangeUpdated, Path: path, Name: name})
	return nil
}

// RemoveFile drops the theme recorded for path.
func (c *Catalog) RemoveFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	var name string
	_ = c.db.QueryRow("SELECT name FROM themes WHERE path = ?", absPath).Scan(&name)

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteWhere(tx, "path = ?", absPath); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	if err := c.loadStats(); err != nil {
		logging.Debugf("INDEX | load stats: %v", err)
	}

	if name != "" {
		logging.Verbosef("INDEX | removed theme=%s path=%s", name, absPath)
	}
	c.notify(Change{Op: ChangeRemoved, Path: absPath, Name: name})
	return nil
}

// =============================================================================
// FILE WATCHER INTERFACE
// =============================================================================

// FileWatcher is the interface for file watching implementations
type FileWatcher interface {
	// Watch starts watching for file changes
	Watch(ctx context.Context) error

	// Close stops watching and releases resources
	Close() error
}

// Watch starts keeping the catalog in step with the theme directory. It uses
// fsnotify and falls back to polling when notifications are unavailable.
// Watching stops when ctx is done or the catalog is closed.
func (c *Catalog) Watch(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.watcher != nil {
		return errors.New("catalog is already being watched")
	}

	fw, err := NewFsnotifyWatcher(c, c.config.WatchDebounce)
	if err == nil {
		if err := fw.Watch(ctx); err == nil {
			c.watcher = fw
			return nil
		}
		fw.Close()
	}
	logging.Warnf("INDEX | fsnotify unavailable, polling %s", c.config.ThemeDir)

	pw := NewPollingWatcher(c, 5*time.Second)
	if err := pw.Watch(ctx); err != nil {
		return err
	}
	c.watcher = pw
	return nil
}

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// FsnotifyWatcher implements FileWatcher using fsnotify
type FsnotifyWatcher struct {
	cat      *Catalog
	watcher  *fsnotify.Watcher
	debounce time.Duration
	mu       sync.Mutex
	pending  map[string]time.Time // File path -> last change time
	cancel   context.CancelFunc
}

// NewFsnotifyWatcher creates a new fsnotify-based watcher
func NewFsnotifyWatcher(cat *Catalog, debounce time.Duration) (*FsnotifyWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FsnotifyWatcher{
		cat:      cat,
		watcher:  watcher,
		debounce: debounce,
		pending:  make(map[string]time.Time),
	}, nil
}

// Watch starts watching for file changes
func (fw *FsnotifyWatcher) Watch(ctx context.Context) error {
	if err := fw.addRecursive(fw.cat.config.ThemeDir); err != nil {
		return err
	}

	ctx, fw.cancel = context.WithCancel(ctx)
	go fw.processEvents(ctx)
	go fw.processPending(ctx)
	return nil
}

// addRecursive adds a directory and all its subdirectories to the watch list
func (fw *FsnotifyWatcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && fw.cat.shouldIgnore(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			if path == dir {
				return err
			}
			logging.Debugf("INDEX | watch %s: %v", path, err)
		}
		return nil
	})
}

// processEvents processes file system events
func (fw *FsnotifyWatcher) processEvents(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warnf("INDEX | watcher stopped: %v", r)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.queue(event.Name)
			}

			// A rename reports the old name; the new name arrives as Create
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				if fw.cat.isThemeFile(event.Name) {
					fw.unqueue(event.Name)
					if err := fw.cat.RemoveFile(event.Name); err != nil {
						logging.Warnf("INDEX | remove %s: %v", event.Name, err)
					}
				}
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.addRecursive(event.Name); err != nil {
						logging.Debugf("INDEX | watch %s: %v", event.Name, err)
					}
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Warnf("INDEX | watcher error: %v", err)
		}
	}
}

// queue records a change to be applied after the debounce period.
func (fw *FsnotifyWatcher) queue(path string) {
	if !fw.cat.isThemeFile(path) {
		return
	}
	fw.mu.Lock()
	fw.pending[path] = time.Now()
	fw.mu.Unlock()
}

func (fw *FsnotifyWatcher) unqueue(path string) {
	fw.mu.Lock()
	delete(fw.pending, path)
	fw.mu.Unlock()
}

// processPending applies changes that have been quiet for the debounce period.
func (fw *FsnotifyWatcher) processPending(ctx context.Context) {
	tick := fw.debounce / 5
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			fw.mu.Lock()
			var ready []string
			for path, changed := range fw.pending {
				if now.Sub(changed) >= fw.debounce {
					ready = append(ready, path)
					delete(fw.pending, path)
				}
			}
			fw.mu.Unlock()

			for _, path := range ready {
				if err := fw.cat.UpdateFile(path); err != nil {
					logging.Warnf("INDEX | reindex %s: %v", path, err)
				}
			}
		}
	}
}

// Close stops watching and releases resources
func (fw *FsnotifyWatcher) Close() error {
	if fw.cancel != nil {
		fw.cancel()
	}
	if fw.watcher != nil {
		return fw.watcher.Close()
	}
	return nil
}

// =============================================================================
// POLLING WATCHER (FALLBACK)
// =============================================================================

// PollingWatcher implements FileWatcher using periodic polling
type PollingWatcher struct {
	cat      *Catalog
	interval time.Duration
	cancel   context.CancelFunc
	files    map[string]time.Time // File path -> mod time
	mu       sync.Mutex
}

// NewPollingWatcher creates a new polling-based watcher
func NewPollingWatcher(cat *Catalog, interval time.Duration) *PollingWatcher {
	return &PollingWatcher{
		cat:      cat,
		interval: interval,
		files:    make(map[string]time.Time),
	}
}

// Watch starts watching for file changes
func (pw *PollingWatcher) Watch(ctx context.Context) error {
	files, err := pw.scan()
	if err != nil {
		return err
	}
	pw.mu.Lock()
	pw.files = files
	pw.mu.Unlock()

	ctx, pw.cancel = context.WithCancel(ctx)
	go pw.poll(ctx)
	return nil
}

// scan records the modification time of every theme file.
func (pw *PollingWatcher) scan() (map[string]time.Time, error) {
	files := make(map[string]time.Time)
	err := filepath.WalkDir(pw.cat.config.ThemeDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != pw.cat.config.ThemeDir && pw.cat.shouldIgnore(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !pw.cat.isThemeFile(path) {
			return nil
		}
		if info, err := d.Info(); err == nil {
			files[path] = info.ModTime()
		}
		return nil
	})
	return files, err
}

// poll periodically checks for file changes
func (pw *PollingWatcher) poll(ctx context.Context) {
	ticker := time.NewTicker(pw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pw.checkChanges()
		}
	}
}

// checkChanges diffs the directory against the last scan.
func (pw *PollingWatcher) checkChanges() {
	current, err := pw.scan()
	if err != nil {
		return
	}

	pw.mu.Lock()
	previous := pw.files
	pw.files = current
	pw.mu.Unlock()

	for path, modTime := range current {
		if old, ok := previous[path]; !ok || !old.Equal(modTime) {
			if err := pw.cat.UpdateFile(path); err != nil {
				logging.Warnf("INDEX | reindex %s: %v", path, err)
			}
		}
	}
	for path := range previous {
		if _, ok := current[path]; !ok {
			if err := pw.cat.RemoveFile(path); err != nil {
				logging.Warnf("INDEX | remove %s: %v", path, err)
			}
		}
	}
}

// Close stops watching
func (pw *PollingWatcher) Close() error {
	if pw.cancel != nil {
		pw.cancel()
	}
	return nil
}
