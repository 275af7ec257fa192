// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// AlacrittyExporter writes Alacritty's TOML color scheme.
type AlacrittyExporter struct{}

type alacrittyFile struct {
	Colors alacrittyColors `toml:"colors"`
}

type alacrittyColors struct {
	Primary   alacrittyPrimary `toml:"primary"`
	Cursor    alacrittyPair    `toml:"cursor"`
	Selection alacrittyPair    `toml:"selection"`
	Normal    alacrittyPalette `toml:"normal"`
	Bright    alacrittyPalette `toml:"bright"`
	Dim       alacrittyPalette `toml:"dim"`
}

type alacrittyPrimary struct {
	Background       string `toml:"background"`
	Foreground       string `toml:"foreground"`
	BrightForeground string `toml:"bright_foreground"`
	DimForeground    string `toml:"dim_foreground"`
}

// alacrittyPair holds cursor and selection colors. Alacritty names the
// second color "cursor" in one table and "background" in the other, so both
// are present and the unused one is omitted.
type alacrittyPair struct {
	Text       string `toml:"text"`
	Cursor     string `toml:"cursor,omitempty"`
	Background string `toml:"background,omitempty"`
}

type alacrittyPalette struct {
	Black   string `toml:"black"`
	Red     string `toml:"red"`
	Green   string `toml:"green"`
	Yellow  string `toml:"yellow"`
	Blue    string `toml:"blue"`
	Magenta string `toml:"magenta"`
	Cyan    string `toml:"cyan"`
	White   string `toml:"white"`
}

func alacrittyPaletteOf(c func(i int) [3]uint8) alacrittyPalette {
	return alacrittyPalette{
		Black:   hexLower(c(0)),
		Red:     hexLower(c(1)),
		Green:   hexLower(c(2)),
		Yellow:  hexLower(c(3)),
		Blue:    hexLower(c(4)),
		Magenta: hexLower(c(5)),
		Cyan:    hexLower(c(6)),
		White:   hexLower(c(7)),
	}
}

// Export implements Exporter.
func (AlacrittyExporter) Export(theme *styling.Theme) ([]byte, error) {
	s := newScheme(theme)
	file := alacrittyFile{Colors: alacrittyColors{
		Primary: alacrittyPrimary{
			Background:       hexLower(s.Background),
			Foreground:       hexLower(s.Foreground),
			BrightForeground: hexLower(s.Bright),
			DimForeground:    hexLower(s.DimFg),
		},
		Cursor:    alacrittyPair{Text: hexLower(s.CursorText), Cursor: hexLower(s.Cursor)},
		Selection: alacrittyPair{Text: hexLower(s.SelectionFg), Background: hexLower(s.SelectionBg)},
		Normal:    alacrittyPaletteOf(func(i int) [3]uint8 { return s.ANSI[i] }),
		Bright:    alacrittyPaletteOf(func(i int) [3]uint8 { return s.ANSI[i+8] }),
		Dim:       alacrittyPaletteOf(s.dim),
	}}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Alacritty Color Scheme: %s\n# Generated from thag theme\n# %s\n\n", s.Name, s.description())
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("encode alacritty toml: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension implements Exporter.
func (AlacrittyExporter) FileExtension() string { return ".toml" }

// FormatName implements Exporter.
func (AlacrittyExporter) FormatName() string { return "Alacritty" }
