// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// KonsoleExporter writes a KDE Konsole .colorscheme file.
type KonsoleExporter struct{}

// Export implements Exporter.
func (KonsoleExporter) Export(theme *styling.Theme) ([]byte, error) {
	s := newScheme(theme)
	var buf bytes.Buffer
	section := func(name string, rgb [3]uint8) {
		fmt.Fprintf(&buf, "[%s]\nColor=%s\n\n", name, triple(rgb))
	}

	fmt.Fprintf(&buf, "# Konsole Color Scheme: %s\n# Generated from thag theme\n\n", s.Name)

	section("Background", s.Background)
	section("BackgroundIntense", styling.Brighten(s.Background))
	section("BackgroundFaint", s.Background)
	section("Foreground", s.Foreground)
	section("ForegroundIntense", s.Bright)
	section("ForegroundFaint", s.DimFg)

	for i := 0; i < 8; i++ {
		section(fmt.Sprintf("Color%d", i), s.ANSI[i])
		section(fmt.Sprintf("Color%dIntense", i), s.ANSI[i+8])
		section(fmt.Sprintf("Color%dFaint", i), s.dim(i))
	}

	fmt.Fprintf(&buf, "[General]\nDescription=%s\nOpacity=1\nWallpaper=\n", s.Name)
	return buf.Bytes(), nil
}

// FileExtension implements Exporter.
func (KonsoleExporter) FileExtension() string { return ".colorscheme" }

// FormatName implements Exporter.
func (KonsoleExporter) FormatName() string { return "Konsole" }
