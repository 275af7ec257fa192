// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package integrations

import (
	"strconv"

	"github.com/muesli/termenv"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// ProfileFor maps a color support level onto a termenv profile.
func ProfileFor(s styling.ColorSupport) termenv.Profile {
	switch s {
	case styling.TrueColor:
		return termenv.TrueColor
	case styling.Color256:
		return termenv.ANSI256
	case styling.Basic:
		return termenv.ANSI
	default:
		return termenv.Ascii
	}
}

// TermenvColor converts c for profile. The result is nil on Ascii.
func TermenvColor(p termenv.Profile, c styling.ColorInfo) termenv.Color {
	if p == termenv.Ascii {
		return nil
	}
	if c.Value.Kind == styling.ValueTrueColor {
		return p.Color(c.Hex())
	}
	return p.Color(strconv.Itoa(int(c.Value.Index)))
}

// TermenvStyle renders text with s under profile.
func TermenvStyle(p termenv.Profile, s styling.Style, text string) string {
	out := p.String(text)
	if s.Foreground != nil {
		if c := TermenvColor(p, *s.Foreground); c != nil {
			out = out.Foreground(c)
		}
	}
	if p == termenv.Ascii {
		return out.String()
	}
	if s.Bold {
		out = out.Bold()
	}
	if s.Italic {
		out = out.Italic()
	}
	if s.Dim {
		out = out.Faint()
	}
	if s.Underline {
		out = out.Underline()
	}
	return out.String()
}
