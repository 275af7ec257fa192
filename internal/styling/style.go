// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import (
	"strings"
)

const ansiReset = "\x1b[0m"

// Style is a foreground color plus text attributes.
type Style struct {
	Foreground *ColorInfo
	Bold       bool
	Italic     bool
	Dim        bool
	Underline  bool
}

// StyleFg returns a plain style with the given foreground.
func StyleFg(c ColorInfo) Style {
	return Style{Foreground: &c}
}

// FromFgHex builds a true color style from "#rrggbb".
func FromFgHex(hex string) (Style, error) {
	c, err := NewHex(hex)
	if err != nil {
		return Style{}, err
	}
	return StyleFg(c), nil
}

// WithColorIndex builds a 256-palette style.
func WithColorIndex(index uint8) Style {
	return StyleFg(NewColor256(index))
}

// Bolded returns a copy with bold set.
func (s Style) Bolded() Style { s.Bold = true; return s }

// Italicized returns a copy with italic set.
func (s Style) Italicized() Style { s.Italic = true; return s }

// Dimmed returns a copy with dim set.
func (s Style) Dimmed() Style { s.Dim = true; return s }

// Underlined returns a copy with underline set.
func (s Style) Underlined() Style { s.Underline = true; return s }

// Reset returns a copy with every attribute cleared and the foreground kept.
// It builds a style; the escape sequence that ends painted text is
// ResetSequence.
func (s Style) Reset() Style {
	s.Bold, s.Italic, s.Dim, s.Underline = false, false, false, false
	return s
}

// HasAttributes reports whether any text attribute is set.
func (s Style) HasAttributes() bool {
	return s.Bold || s.Italic || s.Dim || s.Underline
}

// Paint wraps text in escape codes using the process color support.
func (s Style) Paint(text string) string {
	return s.PaintFor(text, currentSupport())
}

// PaintFor wraps text in escape codes suitable for the given support level.
// Styles without a foreground, and unstyled index-0 foregrounds, leave the
// text untouched.
func (s Style) PaintFor(text string, support ColorSupport) string {
	if s.Foreground == nil {
		return text
	}
	if !s.HasAttributes() && s.Foreground.Index == 0 {
		return text
	}
	open := s.ansiCodesFor(support)
	if open == "" {
		return text
	}
	var b strings.Builder
	b.Grow(len(open) + len(text) + len(ansiReset))
	b.WriteString(open)
	b.WriteString(text)
	b.WriteString(ansiReset)
	return b.String()
}

// ANSICodes returns the opening escape sequence for the process color support.
func (s Style) ANSICodes() string {
	return s.ansiCodesFor(currentSupport())
}

func (s Style) ansiCodesFor(support ColorSupport) string {
	if support == None {
		return ""
	}
	var b strings.Builder
	if s.Foreground != nil {
		b.WriteString(s.Foreground.ToANSIForSupport(support))
	}
	if s.Bold {
		b.WriteString("\x1b[1m")
	}
	if s.Italic {
		b.WriteString("\x1b[3m")
	}
	if s.Dim {
		b.WriteString("\x1b[2m")
	}
	if s.Underline {
		b.WriteString("\x1b[4m")
	}
	return b.String()
}

// ResetSequence closes what ANSICodes opened. A style without a foreground
// only turns off its own attributes so an enclosing color survives.
func (s Style) ResetSequence() string {
	if s.Foreground != nil {
		return ansiReset
	}
	var b strings.Builder
	if s.Bold {
		b.WriteString("\x1b[22m")
	}
	if s.Italic {
		b.WriteString("\x1b[23m")
	}
	if s.Dim {
		b.WriteString("\x1b[22m")
	}
	if s.Underline {
		b.WriteString("\x1b[24m")
	}
	return b.String()
}

// styleNames are the attribute names accepted in theme files.
var styleNames = []string{"bold", "italic", "dim", "underline"}

func (s *Style) applyNamed(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bold":
		s.Bold = true
	case "italic":
		s.Italic = true
	case "dim":
		s.Dim = true
	case "underline":
		s.Underline = true
	default:
		return parseError("unknown style %q (want one of %s)", name, strings.Join(styleNames, ", "))
	}
	return nil
}

// attributeNames lists the set attributes in theme-file order.
func (s Style) attributeNames() []string {
	var out []string
	if s.Bold {
		out = append(out, "bold")
	}
	if s.Italic {
		out = append(out, "italic")
	}
	if s.Dim {
		out = append(out, "dim")
	}
	if s.Underline {
		out = append(out, "underline")
	}
	return out
}
