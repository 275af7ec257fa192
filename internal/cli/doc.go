// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the thag command line.
//
// Main parses the arguments, builds an App and runs one command. The App
// lazily loads configuration, runs terminal detection, opens the theme
// catalog and resolves the theme, so each command pays only for what it
// uses. Tests construct an App directly and inject Stdout, Config, Getenv
// and Detect.
//
// # Commands
//
//   - detect: color support, background, luma and the chosen theme
//   - list, show: browse builtin and catalog themes
//   - export: write Alacritty, WezTerm, iTerm2, Kitty, Konsole, Mintty and
//     Windows Terminal color schemes
//   - sync: set the terminal's 16-color palette with OSC sequences
//   - convert: downgrade a theme to a lower color support level
//   - image: generate a theme from an image
//   - browse, pick: choose a theme interactively
//   - markdown, highlight: render text with the current theme
//   - config, index: manage configuration and the theme catalog
//
// # Exit Codes
//
// Errors map to exit codes through GetExitCode: 2 for usage errors, 3 for
// configuration errors, 4 for theme errors, 5 for I/O errors and 7 when a
// theme, file or key is not found. With --json, errors are printed to
// stdout as a JSON response.
package cli
