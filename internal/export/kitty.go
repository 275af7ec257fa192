// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// KittyExporter writes a kitty.conf color include.
type KittyExporter struct{}

// Export implements Exporter.
func (KittyExporter) Export(theme *styling.Theme) ([]byte, error) {
	s := newScheme(theme)
	var buf bytes.Buffer
	line := func(key string, rgb [3]uint8) {
		fmt.Fprintf(&buf, "%s %s\n", key, hexLower(rgb))
	}

	fmt.Fprintf(&buf, "# Kitty Color Scheme: %s\n# Generated from thag theme\n# %s\n\n", s.Name, s.description())

	buf.WriteString("# Basic colors\n")
	line("background", s.Background)
	line("foreground", s.Foreground)

	buf.WriteString("\n# Selection colors\n")
	line("selection_background", s.SelectionBg)
	line("selection_foreground", s.SelectionFg)

	buf.WriteString("\n# Cursor colors\n")
	line("cursor", s.Cursor)
	line("cursor_text_color", s.CursorText)

	buf.WriteString("\n# URL underline color when hovering with mouse\n")
	line("url_color", theme.RoleRGB(styling.RoleLink))

	buf.WriteString("\n# Border colors\n")
	line("active_border_color", s.Cursor)
	line("inactive_border_color", s.DimFg)

	buf.WriteString("\n# Tab bar colors\n")
	line("tab_bar_background", s.Background)
	line("active_tab_foreground", s.Background)
	line("active_tab_background", s.Cursor)
	line("inactive_tab_foreground", s.Foreground)
	line("inactive_tab_background", s.SelectionBg)

	buf.WriteString("\n# The color table\n")
	for i, name := range ansiNames {
		fmt.Fprintf(&buf, "\n# %s\n", name)
		line(fmt.Sprintf("color%d", i), s.ANSI[i])
		line(fmt.Sprintf("color%d", i+8), s.ANSI[i+8])
	}
	return buf.Bytes(), nil
}

// FileExtension implements Exporter.
func (KittyExporter) FileExtension() string { return ".conf" }

// FormatName implements Exporter.
func (KittyExporter) FormatName() string { return "Kitty" }
