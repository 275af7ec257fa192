// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import (
	"fmt"
)

// ValueKind distinguishes the three ways a theme can specify a color.
type ValueKind int

const (
	ValueBasic ValueKind = iota
	ValueColor256
	ValueTrueColor
)

func (k ValueKind) String() string {
	switch k {
	case ValueBasic:
		return "basic"
	case ValueColor256:
		return "color256"
	case ValueTrueColor:
		return "true_color"
	default:
		return "unknown"
	}
}

// ColorValue is a color as written in a theme: a basic index (0-15), a
// 256-palette index, or an RGB triple. Only the field matching Kind is meaningful.
type ColorValue struct {
	Kind  ValueKind
	Index uint8
	RGB   [3]uint8
}

// ColorInfo pairs a ColorValue with its nearest 256-palette index, which is
// what lower color support levels fall back to.
type ColorInfo struct {
	Value ColorValue
	Index uint8
}

// NewBasic returns a basic 16-color value.
func NewBasic(index uint8) ColorInfo {
	return ColorInfo{Value: ColorValue{Kind: ValueBasic, Index: index}, Index: index}
}

// NewColor256 returns a 256-palette value.
func NewColor256(index uint8) ColorInfo {
	return ColorInfo{Value: ColorValue{Kind: ValueColor256, Index: index}, Index: index}
}

// NewRGB returns a true color value with its closest 256-palette index precomputed.
func NewRGB(r, g, b uint8) ColorInfo {
	rgb := [3]uint8{r, g, b}
	return ColorInfo{Value: ColorValue{Kind: ValueTrueColor, RGB: rgb}, Index: FindClosestColor(rgb)}
}

// NewHex parses a hex color into a true color value.
func NewHex(hex string) (ColorInfo, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return ColorInfo{}, err
	}
	return NewRGB(rgb[0], rgb[1], rgb[2]), nil
}

// WithSupport re-expresses c in the richest form the support level can show.
func (c ColorInfo) WithSupport(s ColorSupport) ColorInfo {
	rgb := c.RGB()
	switch s {
	case TrueColor:
		return NewRGB(rgb[0], rgb[1], rgb[2])
	case Color256:
		return NewColor256(FindClosestColor(rgb))
	default:
		return NewBasic(FindClosestBasicColor(rgb))
	}
}

// RGB returns the color as RGB regardless of how it was specified.
func (c ColorInfo) RGB() [3]uint8 {
	switch c.Value.Kind {
	case ValueTrueColor:
		return c.Value.RGB
	case ValueColor256:
		return IndexToRGB(c.Value.Index)
	default:
		return basicColors[c.Value.Index%16]
	}
}

// Hex returns the color as "#rrggbb".
func (c ColorInfo) Hex() string {
	return RGBToHex(c.RGB())
}

// ToANSI returns the foreground escape sequence assuming the value's own
// support level is available.
func (c ColorInfo) ToANSI() string {
	switch c.Value.Kind {
	case ValueTrueColor:
		return c.ToANSIForSupport(TrueColor)
	case ValueColor256:
		return c.ToANSIForSupport(Color256)
	default:
		return c.ToANSIForSupport(Basic)
	}
}

// ToANSIForSupport returns the foreground escape sequence to use on a
// terminal with the given support. None yields an empty string.
func (c ColorInfo) ToANSIForSupport(s ColorSupport) string {
	if s == None {
		return ""
	}
	switch c.Value.Kind {
	case ValueTrueColor:
		switch s {
		case TrueColor:
			rgb := c.Value.RGB
			return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", rgb[0], rgb[1], rgb[2])
		case Color256:
			return fmt.Sprintf("\x1b[38;5;%dm", c.Index)
		default:
			return basicCode(FindClosestBasicColor(c.Value.RGB))
		}
	case ValueColor256:
		if s >= Color256 {
			return fmt.Sprintf("\x1b[38;5;%dm", c.Value.Index)
		}
		return basicCode(c.Value.Index)
	default:
		return basicCode(c.Value.Index)
	}
}

// basicCode renders a 16-color foreground. Indices above 15 wrap.
func basicCode(index uint8) string {
	i := index
	if i > 15 {
		i %= 16
	}
	if i <= 7 {
		return fmt.Sprintf("\x1b[%dm", 30+int(i))
	}
	return fmt.Sprintf("\x1b[%dm", 90+int(i)-8)
}
