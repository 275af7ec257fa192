// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// Entry is one indexed theme.
type Entry struct {
	Name        string
	Path        string
	Luma        styling.TermBgLuma
	MinSupport  styling.ColorSupport
	Description string
	Backgrounds []string
	ModTime     time.Time
	IndexedAt   time.Time
}

var _ styling.ThemeSource = (*Catalog)(nil)

func unknownTheme(name string) error {
	return &styling.Error{Kind: styling.KindUnknownTheme, Message: name + " (not in catalog)"}
}

// =============================================================================
// LOOKUPS
// =============================================================================

// Lookup returns the catalog entry for name.
func (c *Catalog) Lookup(name string) (*Entry, error) {
	var (
		e              Entry
		luma           string
		support        int
		modAt, indexAt int64
	)
	err := c.db.QueryRow(`
		SELECT name, path, luma, min_support, COALESCE(description, ''), mod_time, indexed_at
		FROM themes WHERE name = ?
	`, name).Scan(&e.Name, &e.Path, &luma, &support, &e.Description, &modAt, &indexAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, unknownTheme(name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	e.Luma, _ = styling.ParseTermBgLuma(luma)
	e.MinSupport = styling.ColorSupport(support)
	e.ModTime = time.Unix(modAt, 0)
	e.IndexedAt = time.Unix(indexAt, 0)

	bgs, err := c.backgrounds(name)
	if err != nil {
		return nil, err
	}
	for _, bg := range bgs {
		e.Backgrounds = append(e.Backgrounds, styling.RGBToHex(bg))
	}
	return &e, nil
}

// ByBackground returns the names of themes declaring exactly this background,
// sorted by name.
func (c *Catalog) ByBackground(hex string) ([]string, error) {
	rgb, err := styling.HexToRGB(hex)
	if err != nil {
		return nil, err
	}
	rows, err := c.db.Query(`
		SELECT DISTINCT theme_name FROM backgrounds WHERE hex = ? ORDER BY theme_name
	`, styling.RGBToHex(rgb))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return scanNames(rows)
}

// Candidates returns themes for luma needing no more than support.
func (c *Catalog) Candidates(luma styling.TermBgLuma, support styling.ColorSupport) ([]styling.ThemeSummary, error) {
	rows, err := c.db.Query(`
		SELECT t.name, t.min_support, b.r, b.g, b.b
		FROM themes t
		LEFT JOIN backgrounds b ON b.theme_name = t.name
		WHERE t.luma = ? AND t.min_support <= ?
		ORDER BY t.name, b.rowid
	`, luma.String(), int(support))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []styling.ThemeSummary
	for rows.Next() {
		var (
			name    string
			minSup  int
			r, g, b sql.NullInt64
		)
		if err := rows.Scan(&name, &minSup, &r, &g, &b); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		if len(out) == 0 || out[len(out)-1].Name != name {
			out = append(out, styling.ThemeSummary{
				Name:       name,
				Luma:       luma,
				MinSupport: styling.ColorSupport(minSup),
			})
		}
		if r.Valid {
			last := &out[len(out)-1]
			last.BgRGBs = append(last.BgRGBs, [3]uint8{uint8(r.Int64), uint8(g.Int64), uint8(b.Int64)})
		}
	}
	return out, rows.Err()
}

// Names lists every catalog theme, sorted.
func (c *Catalog) Names() ([]string, error) {
	rows, err := c.db.Query("SELECT name FROM themes ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return scanNames(rows)
}

// Entries lists every catalog entry, sorted by name.
func (c *Catalog) Entries() ([]*Entry, error) {
	names, err := c.Names()
	if err != nil {
		return nil, err
	}
	out := make([]*Entry, 0, len(names))
	for _, n := range names {
		e, err := c.Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Search returns themes whose name or description contains query,
// case-insensitively.
func (c *Catalog) Search(query string) ([]string, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	rows, err := c.db.Query(`
		SELECT name FROM themes
		WHERE lower(name) LIKE ? OR lower(COALESCE(description, '')) LIKE ?
		ORDER BY name
	`, like, like)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return scanNames(rows)
}

// Load parses the theme file recorded for name.
func (c *Catalog) Load(name string) (*styling.Theme, error) {
	var path string
	err := c.db.QueryRow("SELECT path FROM themes WHERE name = ?", name).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, unknownTheme(name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return styling.LoadFromFile(path)
}

func (c *Catalog) backgrounds(name string) ([][3]uint8, error) {
	rows, err := c.db.Query("SELECT r, g, b FROM backgrounds WHERE theme_name = ? ORDER BY rowid", name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out [][3]uint8
	for rows.Next() {
		var rgb [3]uint8
		if err := rows.Scan(&rgb[0], &rgb[1], &rgb[2]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		out = append(out, rgb)
	}
	return out, rows.Err()
}

func scanNames(rows *sql.Rows) ([]string, error) {
	defer rows.Close()
	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
