// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styling is the color model and theme engine behind thagstyle.
//
// It covers:
//   - ColorSupport and TermBgLuma, the two terminal facts everything else is keyed on
//   - ColorValue / ColorInfo / Style, with ANSI rendering for each support level
//   - Role and Palette, the sixteen semantic roles a theme assigns colors to
//   - Theme and ThemeDefinition, loaded from TOML (embedded builtins or user directories)
//   - AutoDetect, which picks a theme matching the terminal background
//   - TermAttributes, the process-wide resolved state, with context-scoped overrides
//
// Basic usage:
//
//	attrs := styling.GetOrInit(styling.HowMatch)
//	fmt.Println(attrs.StyleFor(styling.RoleError).Paint("something broke"))
package styling
