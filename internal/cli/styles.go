// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared output styles, painted from the active theme.
//
// Until ApplyTheme runs the styles carry attributes but no colors, so
// early errors still print sensibly.

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/thagstyle/internal/integrations"
	"github.com/jeranaias/thagstyle/internal/styling"
)

// =============================================================================
// SHARED STYLES FOR ALL CLI COMMANDS
// =============================================================================

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	// SectionStyle is used for section headers within commands
	SectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

	// LabelStyle is used for field labels, 20 cells wide
	LabelStyle = lipgloss.NewStyle().Width(20)

	// ValueStyle is used for regular values and text
	ValueStyle = lipgloss.NewStyle()

	SuccessStyle = lipgloss.NewStyle().Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Bold(true)
	WarningStyle = lipgloss.NewStyle()
	DimStyle     = lipgloss.NewStyle().Faint(true)
	InfoStyle    = lipgloss.NewStyle()
)

// ApplyTheme repaints the shared styles from theme at the given support.
func ApplyTheme(theme *styling.Theme, support styling.ColorSupport) {
	lipgloss.SetColorProfile(integrations.ProfileFor(support))
	if theme == nil {
		return
	}
	s := integrations.ThemeStyles(theme)
	TitleStyle = s.Title
	SectionStyle = s.Heading.MarginTop(1)
	LabelStyle = s.Label.Width(20)
	ValueStyle = s.Value
	SuccessStyle = s.Success.Bold(true)
	ErrorStyle = s.Error.Bold(true)
	WarningStyle = s.Warning
	DimStyle = s.Hint
	InfoStyle = s.Info
}

// =============================================================================
// HELPER FUNCTIONS FOR COMMON PATTERNS
// =============================================================================

// RenderSeparator renders a horizontal separator line, 70 cells by default.
func RenderSeparator(width ...int) string {
	w := 70
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	return DimStyle.Render(strings.Repeat("=", w))
}

// RenderStatus renders an [OK], [FAIL] or [WARN] marker.
func RenderStatus(status string) string {
	switch strings.ToLower(status) {
	case "ok", "success", "pass", "valid":
		return SuccessStyle.Render("[OK]")
	case "error", "fail", "failed", "invalid":
		return ErrorStyle.Render("[FAIL]")
	case "warning", "warn":
		return WarningStyle.Render("[WARN]")
	default:
		return DimStyle.Render("[" + strings.ToUpper(status) + "]")
	}
}

// RenderLabel renders a label with consistent width.
func RenderLabel(label string, width ...int) string {
	if len(width) > 0 && width[0] > 0 {
		return LabelStyle.Width(width[0]).Render(label)
	}
	return LabelStyle.Render(label)
}
