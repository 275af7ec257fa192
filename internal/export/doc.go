// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes thagstyle themes as terminal emulator color schemes.
//
// Every format is derived from the same color scheme: the theme background,
// the normal role as foreground, cursor and selection colors, and the 16-entry
// ANSI map. Roles without a color fall back to #808080.
//
// # Supported Formats
//
//   - Alacritty (TOML)
//   - WezTerm (TOML)
//   - iTerm2 (.itermcolors property list)
//   - Kitty (.conf)
//   - Konsole (.colorscheme)
//   - Mintty (key=r,g,b, no extension)
//   - Windows Terminal (JSON scheme, settings merge, fragment)
//
// # Usage
//
//	theme, _ := styling.Builtin("dracula")
//	path, err := export.ExportToFile(theme, export.FormatKitty, export.DefaultOptions())
//
// Write every format at once:
//
//	paths, err := export.ExportAll(theme, "out", "dracula")
package export
