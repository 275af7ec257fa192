// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package integrations converts theme roles into the style types of the
// terminal UI libraries thag renders with.
//
// Each adapter reads colors through the theme's palette, so code that
// styles with a role keeps working when the theme changes:
//
//   - lipgloss: LipglossColor, LipglossStyle, RoleStyle and ThemeStyles
//   - termenv: TermenvColor and TermenvStyle
//   - bubbles: PromptStyles, ListStyles and ListItemStyles
//   - glamour: MarkdownStyle and RenderMarkdown
//   - chroma: ChromaStyle and Highlight
//
// Usage:
//
//	theme := styling.GetOrInit().Theme
//	st := integrations.ThemeStyles(theme)
//	fmt.Println(st.Heading.Render("Results"))
package integrations
