// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// ITerm2Exporter writes an .itermcolors property list.
type ITerm2Exporter struct{}

const plistHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
`

// Export implements Exporter.
func (ITerm2Exporter) Export(theme *styling.Theme) ([]byte, error) {
	s := newScheme(theme)

	var buf bytes.Buffer
	buf.WriteString(plistHeader)
	buf.WriteString("<!-- ")
	if err := xml.EscapeText(&buf, []byte(commentText(s.Name))); err != nil {
		return nil, fmt.Errorf("escape theme name: %w", err)
	}
	buf.WriteString(" -->\n<dict>\n")

	for i := 0; i < 16; i++ {
		writePlistColor(&buf, fmt.Sprintf("Ansi %d Color", i), s.ANSI[i])
	}
	writePlistColor(&buf, "Background Color", s.Background)
	writePlistColor(&buf, "Foreground Color", s.Foreground)
	writePlistColor(&buf, "Bold Color", s.Bright)
	writePlistColor(&buf, "Cursor Color", s.Cursor)
	writePlistColor(&buf, "Cursor Text Color", s.CursorText)
	writePlistColor(&buf, "Selection Color", s.SelectionBg)
	writePlistColor(&buf, "Selected Text Color", s.SelectionFg)

	buf.WriteString("</dict>\n</plist>\n")
	return buf.Bytes(), nil
}

// commentText makes s legal inside an XML comment, which may not contain
// "--" or end with "-".
func commentText(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.TrimRight(s, "-")
}

// writePlistColor writes one color dict with components in 0..1.
func writePlistColor(buf *bytes.Buffer, key string, rgb [3]uint8) {
	component := func(v uint8) string {
		return strconv.FormatFloat(float64(v)/255.0, 'f', -1, 64)
	}
	fmt.Fprintf(buf, "\t<key>%s</key>\n\t<dict>\n", key)
	fmt.Fprintf(buf, "\t\t<key>Blue Component</key>\n\t\t<real>%s</real>\n", component(rgb[2]))
	fmt.Fprintf(buf, "\t\t<key>Green Component</key>\n\t\t<real>%s</real>\n", component(rgb[1]))
	fmt.Fprintf(buf, "\t\t<key>Red Component</key>\n\t\t<real>%s</real>\n", component(rgb[0]))
	buf.WriteString("\t</dict>\n")
}

// FileExtension implements Exporter.
func (ITerm2Exporter) FileExtension() string { return ".itermcolors" }

// FormatName implements Exporter.
func (ITerm2Exporter) FormatName() string { return "iTerm2" }
