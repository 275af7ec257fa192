// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import (
	"strings"
)

// =============================================================================
// COLOR SUPPORT
// =============================================================================

// ColorSupport is the color capability of a terminal. Values are ordered, so
// comparisons like support >= Color256 are meaningful.
type ColorSupport int

const (
	Undetermined ColorSupport = iota
	None
	Basic
	Color256
	TrueColor
)

// DefaultColorSupport is used when nothing better is known.
const DefaultColorSupport = Basic

// String returns the snake_case name used in TOML and config files.
func (c ColorSupport) String() string {
	switch c {
	case Undetermined:
		return "undetermined"
	case None:
		return "none"
	case Basic:
		return "basic"
	case Color256:
		return "color256"
	case TrueColor:
		return "true_color"
	default:
		return "undetermined"
	}
}

// ParseColorSupport accepts canonical names and the common aliases
// (ansi16, xterm256, 256, truecolor, 24bit).
func ParseColorSupport(s string) (ColorSupport, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "undetermined":
		return Undetermined, nil
	case "none":
		return None, nil
	case "basic", "ansi16":
		return Basic, nil
	case "color256", "xterm256", "256":
		return Color256, nil
	case "true_color", "truecolor", "24bit":
		return TrueColor, nil
	}
	return Undetermined, &Error{Kind: KindFromStr, Message: "color support " + s}
}

// MarshalText implements encoding.TextMarshaler.
func (c ColorSupport) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ColorSupport) UnmarshalText(text []byte) error {
	v, err := ParseColorSupport(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// =============================================================================
// BACKGROUND LUMA
// =============================================================================

// TermBgLuma says whether the terminal background is light or dark.
type TermBgLuma int

const (
	LumaUndetermined TermBgLuma = iota
	Light
	Dark
)

// DefaultTermBgLuma is assumed when the background cannot be queried.
const DefaultTermBgLuma = Dark

func (l TermBgLuma) String() string {
	switch l {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return "undetermined"
	}
}

// ParseTermBgLuma parses "light", "dark" or "undetermined".
func ParseTermBgLuma(s string) (TermBgLuma, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	case "undetermined":
		return LumaUndetermined, nil
	}
	return LumaUndetermined, &Error{Kind: KindFromStr, Message: "term_bg_luma " + s}
}

// MarshalText implements encoding.TextMarshaler.
func (l TermBgLuma) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *TermBgLuma) UnmarshalText(text []byte) error {
	v, err := ParseTermBgLuma(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// LumaFor returns Light for a light background color and Dark otherwise.
func LumaFor(rgb [3]uint8) TermBgLuma {
	if IsLightColor(rgb) {
		return Light
	}
	return Dark
}
