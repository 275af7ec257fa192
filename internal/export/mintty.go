// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// MinttyExporter writes a mintty theme file (Git Bash, Cygwin).
type MinttyExporter struct{}

var minttyNames = [8]string{"Black", "Red", "Green", "Yellow", "Blue", "Magenta", "Cyan", "White"}

// Export implements Exporter.
func (MinttyExporter) Export(theme *styling.Theme) ([]byte, error) {
	s := newScheme(theme)
	var buf bytes.Buffer
	kv := func(key string, rgb [3]uint8) {
		fmt.Fprintf(&buf, "%s=%s\n", key, triple(rgb))
	}

	fmt.Fprintf(&buf, "# Mintty Color Scheme: %s\n# Generated from thag theme\n\n", strings.ReplaceAll(s.Name, "\n", " "))

	kv("BackgroundColour", s.Background)
	kv("ForegroundColour", s.Foreground)
	kv("CursorColour", s.Cursor)
	kv("SelectionBackgroundColour", s.SelectionBg)
	kv("HighlightBackgroundColour", s.SelectionBg)
	kv("SelectionForegroundColour", s.SelectionFg)
	kv("BoldColour", s.Bright)

	for i, name := range minttyNames {
		kv(name, s.ANSI[i])
	}
	for i, name := range minttyNames {
		kv("Bold"+name, s.ANSI[i+8])
	}
	return buf.Bytes(), nil
}

// FileExtension implements Exporter.
func (MinttyExporter) FileExtension() string { return "" }

// FormatName implements Exporter.
func (MinttyExporter) FormatName() string { return "Mintty" }
