// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package integrations

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// LipglossColor converts a theme color. True color values become hex strings
// and indexed values become their palette number, so lipgloss downsamples
// exactly as the terminal profile requires.
func LipglossColor(c styling.ColorInfo) lipgloss.TerminalColor {
	if c.Value.Kind == styling.ValueTrueColor {
		return lipgloss.Color(c.Hex())
	}
	return lipgloss.Color(strconv.Itoa(int(c.Value.Index)))
}

// LipglossStyle converts a Style. A style without a foreground keeps the
// terminal default color.
func LipglossStyle(s styling.Style) lipgloss.Style {
	ls := lipgloss.NewStyle()
	if s.Foreground != nil {
		ls = ls.Foreground(LipglossColor(*s.Foreground))
	}
	if s.Bold {
		ls = ls.Bold(true)
	}
	if s.Italic {
		ls = ls.Italic(true)
	}
	if s.Dim {
		ls = ls.Faint(true)
	}
	if s.Underline {
		ls = ls.Underline(true)
	}
	return ls
}

// RoleStyle returns the lipgloss style for one role of theme.
func RoleStyle(theme *styling.Theme, r styling.Role) lipgloss.Style {
	if theme == nil {
		return lipgloss.NewStyle()
	}
	return LipglossStyle(theme.StyleFor(r))
}

// Styles holds ready-made lipgloss styles for CLI output.
type Styles struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Subhead  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Success  lipgloss.Style
	Info     lipgloss.Style
	Emphasis lipgloss.Style
	Code     lipgloss.Style
	Normal   lipgloss.Style
	Subtle   lipgloss.Style
	Hint     lipgloss.Style
	Link     lipgloss.Style
	Quote    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style

	// Box frames panels with a rounded border in the heading3 color.
	Box lipgloss.Style

	// Swatch is a two cell block; set its Background per color.
	Swatch lipgloss.Style
}

// ThemeStyles builds the CLI style set for theme.
func ThemeStyles(theme *styling.Theme) Styles {
	role := func(r styling.Role) lipgloss.Style { return RoleStyle(theme, r) }

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if theme != nil {
		if fg := theme.Palette.StyleFor(styling.RoleHeading3).Foreground; fg != nil {
			border = border.BorderForeground(LipglossColor(*fg))
		}
	}

	return Styles{
		Title:    role(styling.RoleHeading1).Bold(true).MarginBottom(1),
		Heading:  role(styling.RoleHeading2).Bold(true),
		Subhead:  role(styling.RoleHeading3),
		Error:    role(styling.RoleError),
		Warning:  role(styling.RoleWarning),
		Success:  role(styling.RoleSuccess),
		Info:     role(styling.RoleInfo),
		Emphasis: role(styling.RoleEmphasis),
		Code:     role(styling.RoleCode),
		Normal:   role(styling.RoleNormal),
		Subtle:   role(styling.RoleSubtle),
		Hint:     role(styling.RoleHint),
		Link:     role(styling.RoleLink).Underline(true),
		Quote:    role(styling.RoleQuote),
		Label:    role(styling.RoleSubtle).Width(18),
		Value:    role(styling.RoleNormal),
		Box:      border,
		Swatch:   lipgloss.NewStyle().Width(2),
	}
}

// SwatchFor renders a colored block for rgb.
func (s Styles) SwatchFor(rgb [3]uint8) string {
	return s.Swatch.Background(lipgloss.Color(styling.RGBToHex(rgb))).Render("  ")
}
