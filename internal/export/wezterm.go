// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// WezTermExporter writes a WezTerm color scheme file.
type WezTermExporter struct{}

type weztermFile struct {
	Metadata weztermMetadata `toml:"metadata"`
	Colors   weztermColors   `toml:"colors"`
}

type weztermMetadata struct {
	Name    string   `toml:"name"`
	Author  string   `toml:"author"`
	Aliases []string `toml:"aliases"`
}

type weztermColors struct {
	Background   string   `toml:"background"`
	Foreground   string   `toml:"foreground"`
	CursorBg     string   `toml:"cursor_bg"`
	CursorFg     string   `toml:"cursor_fg"`
	CursorBorder string   `toml:"cursor_border"`
	SelectionBg  string   `toml:"selection_bg"`
	SelectionFg  string   `toml:"selection_fg"`
	ANSI         []string `toml:"ansi"`
	Brights      []string `toml:"brights"`
}

// Export implements Exporter.
func (WezTermExporter) Export(theme *styling.Theme) ([]byte, error) {
	s := newScheme(theme)
	file := weztermFile{
		Metadata: weztermMetadata{
			Name:    s.Name,
			Author:  "thag",
			Aliases: []string{},
		},
		Colors: weztermColors{
			Background:   hexLower(s.Background),
			Foreground:   hexLower(s.Foreground),
			CursorBg:     hexLower(s.Cursor),
			CursorFg:     hexLower(s.CursorText),
			CursorBorder: hexLower(s.Cursor),
			SelectionBg:  hexLower(s.SelectionBg),
			SelectionFg:  hexLower(s.SelectionFg),
		},
	}
	for i := 0; i < 8; i++ {
		file.Colors.ANSI = append(file.Colors.ANSI, hexLower(s.ANSI[i]))
		file.Colors.Brights = append(file.Colors.Brights, hexLower(s.ANSI[i+8]))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# WezTerm Color Scheme: %s\n# %s\n\n", s.Name, s.description())
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("encode wezterm toml: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension implements Exporter.
func (WezTermExporter) FileExtension() string { return ".toml" }

// FormatName implements Exporter.
func (WezTermExporter) FormatName() string { return "WezTerm" }
