// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export_test

import (
	"fmt"

	"github.com/jeranaias/thagstyle/internal/export"
	"github.com/jeranaias/thagstyle/internal/styling"
)

// ExampleFormat_Filename shows the file names ExportAll produces.
func ExampleFormat_Filename() {
	for _, f := range export.AllFormats() {
		fmt.Printf("%-16s %s\n", f, f.Filename("nord"))
	}
	// Output:
	// alacritty        nord_alacritty.toml
	// wezterm          nord_wezterm.toml
	// iterm2           nord.itermcolors
	// kitty            nord.conf
	// konsole          nord.colorscheme
	// mintty           nord_mintty
	// windows-terminal nord_windows_terminal.json
}

// ExampleNewWindowsTerminalScheme demonstrates the uppercase hex colors
// Windows Terminal expects.
func ExampleNewWindowsTerminalScheme() {
	theme, err := styling.Builtin("dracula")
	if err != nil {
		fmt.Println(err)
		return
	}
	scheme := export.NewWindowsTerminalScheme(theme)
	fmt.Println(scheme.Name, scheme.Background)
	// Output:
	// dracula #282A36
}
