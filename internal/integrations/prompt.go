// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package integrations

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// roleColor is the lipgloss color of a role, or NoColor when the theme
// leaves it unset.
func roleColor(theme *styling.Theme, r styling.Role) lipgloss.TerminalColor {
	if theme == nil {
		return lipgloss.NoColor{}
	}
	if fg := theme.Palette.StyleFor(r).Foreground; fg != nil {
		return LipglossColor(*fg)
	}
	return lipgloss.NoColor{}
}

// PromptStyles styles interactive prompts.
type PromptStyles struct {
	Prompt      lipgloss.Style
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Cursor      lipgloss.Style
	Help        lipgloss.Style
	Error       lipgloss.Style
	Selected    lipgloss.Style
	Option      lipgloss.Style
}

// NewPromptStyles derives prompt styles from theme:
// prompt from heading2, typed text from normal, placeholder from hint,
// cursor from emphasis, help from subtle, selected option from emphasis.
func NewPromptStyles(theme *styling.Theme) PromptStyles {
	return PromptStyles{
		Prompt:      RoleStyle(theme, styling.RoleHeading2).Bold(true),
		Text:        RoleStyle(theme, styling.RoleNormal),
		Placeholder: RoleStyle(theme, styling.RoleHint),
		Cursor:      lipgloss.NewStyle().Foreground(roleColor(theme, styling.RoleEmphasis)),
		Help:        RoleStyle(theme, styling.RoleSubtle),
		Error:       RoleStyle(theme, styling.RoleError),
		Selected:    RoleStyle(theme, styling.RoleEmphasis).Bold(true),
		Option:      RoleStyle(theme, styling.RoleNormal),
	}
}

// ApplyTextInput styles a bubbles text input.
func (p PromptStyles) ApplyTextInput(m *textinput.Model) {
	m.PromptStyle = p.Prompt
	m.TextStyle = p.Text
	m.PlaceholderStyle = p.Placeholder
	m.CompletionStyle = p.Placeholder
	m.Cursor.Style = p.Cursor
	m.Cursor.TextStyle = p.Text
}

// ListStyles returns bubbles list chrome styled from theme.
func ListStyles(theme *styling.Theme) list.Styles {
	s := list.DefaultStyles()
	subtle := roleColor(theme, styling.RoleSubtle)
	hint := roleColor(theme, styling.RoleHint)

	s.Title = s.Title.
		Background(roleColor(theme, styling.RoleHeading1)).
		Foreground(backgroundColor(theme)).
		Bold(true)
	s.Spinner = s.Spinner.Foreground(roleColor(theme, styling.RoleInfo))
	s.FilterPrompt = s.FilterPrompt.Foreground(roleColor(theme, styling.RoleSuccess))
	s.FilterCursor = s.FilterCursor.Foreground(roleColor(theme, styling.RoleEmphasis))
	s.StatusBar = s.StatusBar.Foreground(subtle)
	s.StatusEmpty = s.StatusEmpty.Foreground(hint)
	s.StatusBarActiveFilter = s.StatusBarActiveFilter.Foreground(roleColor(theme, styling.RoleNormal))
	s.StatusBarFilterCount = s.StatusBarFilterCount.Foreground(hint)
	s.NoItems = s.NoItems.Foreground(hint)
	s.ArabicPagination = s.ArabicPagination.Foreground(subtle)
	s.ActivePaginationDot = s.ActivePaginationDot.Foreground(roleColor(theme, styling.RoleNormal))
	s.InactivePaginationDot = s.InactivePaginationDot.Foreground(hint)
	s.DividerDot = s.DividerDot.Foreground(hint)
	return s
}

// ListItemStyles returns list item styles: normal items in normal, the
// selection in emphasis with a heading2 bar, dimmed items in hint.
func ListItemStyles(theme *styling.Theme) list.DefaultItemStyles {
	s := list.NewDefaultItemStyles()
	s.NormalTitle = s.NormalTitle.Foreground(roleColor(theme, styling.RoleNormal))
	s.NormalDesc = s.NormalDesc.Foreground(roleColor(theme, styling.RoleSubtle))
	s.SelectedTitle = s.SelectedTitle.
		Foreground(roleColor(theme, styling.RoleEmphasis)).
		BorderForeground(roleColor(theme, styling.RoleHeading2)).
		Bold(true)
	s.SelectedDesc = s.SelectedDesc.
		Foreground(roleColor(theme, styling.RoleCommentary)).
		BorderForeground(roleColor(theme, styling.RoleHeading2))
	s.DimmedTitle = s.DimmedTitle.Foreground(roleColor(theme, styling.RoleHint))
	s.DimmedDesc = s.DimmedDesc.Foreground(roleColor(theme, styling.RoleHint))
	s.FilterMatch = s.FilterMatch.Foreground(roleColor(theme, styling.RoleWarning))
	return s
}

func backgroundColor(theme *styling.Theme) lipgloss.TerminalColor {
	if theme == nil {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(styling.RGBToHex(theme.DefaultBackground()))
}
