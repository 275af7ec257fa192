// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"strings"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// Diagnose explains results that are likely worse than the terminal can do.
func Diagnose(r Result, env Env) []string {
	if env == nil {
		env = OSEnv
	}
	var hints []string

	if env("TEST_ENV") != "" {
		hints = append(hints, "TEST_ENV is set: detection is forced to basic colors")
	}
	if env("NO_COLOR") != "" {
		hints = append(hints, "NO_COLOR is set: all color output is disabled")
	}
	if !r.IsTTY {
		hints = append(hints, "stdout is not a terminal: live queries were skipped")
	}
	if r.Support < styling.TrueColor && env("COLORTERM") == "" {
		hints = append(hints, "COLORTERM is unset: set COLORTERM=truecolor if your terminal supports 24-bit color")
	}
	if r.Support < styling.Color256 && !strings.Contains(env("TERM"), "256") {
		hints = append(hints, "TERM does not advertise 256 colors: try TERM=xterm-256color")
	}
	if r.IsTTY && !r.BgDetected {
		hints = append(hints, "terminal did not answer the OSC 11 background query: set term_bg_rgb in config to pick matching themes")
	}
	if env("TMUX") != "" && !r.BgDetected {
		hints = append(hints, "inside tmux: enable 'set -g allow-passthrough on' for background queries")
	}
	return hints
}
