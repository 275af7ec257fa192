// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// ansiNames are the conventional names of palette slots 0-7.
var ansiNames = [8]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// scheme is the emulator-neutral color set every exporter renders.
type scheme struct {
	Name        string
	Description string
	Background  [3]uint8
	Foreground  [3]uint8
	Bright      [3]uint8 // emphasis, else foreground
	DimFg       [3]uint8 // subtle, else dimmed foreground
	Cursor      [3]uint8
	CursorText  [3]uint8
	SelectionBg [3]uint8
	SelectionFg [3]uint8
	ANSI        [16][3]uint8
}

func newScheme(t *styling.Theme) scheme {
	s := scheme{
		Name:        t.Name,
		Description: t.Description,
		Background:  t.DefaultBackground(),
		Foreground:  t.RoleRGB(styling.RoleNormal),
		ANSI:        t.ANSIColorMap(),
	}
	s.CursorText = s.Background
	s.SelectionFg = s.Foreground

	s.Cursor = t.CursorRGB()
	s.Bright = s.Cursor
	s.DimFg = styling.Dim(s.Foreground)
	if rgb, ok := t.Palette.RGB(styling.RoleSubtle); ok {
		s.DimFg = rgb
	}
	s.SelectionBg = t.SelectionRGB()
	return s
}

// dim returns the faint variant of ANSI slot i.
func (s scheme) dim(i int) [3]uint8 {
	return styling.Dim(s.ANSI[i])
}

func hexLower(rgb [3]uint8) string {
	return styling.RGBToHex(rgb)
}

func hexUpper(rgb [3]uint8) string {
	return strings.ToUpper(styling.RGBToHex(rgb))
}

func triple(rgb [3]uint8) string {
	return fmt.Sprintf("%d,%d,%d", rgb[0], rgb[1], rgb[2])
}

// description returns the theme description or a generated one.
func (s scheme) description() string {
	if s.Description != "" {
		return s.Description
	}
	return "Generated from thag theme " + s.Name
}
