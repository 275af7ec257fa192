// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"context"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jeranaias/thagstyle/internal/logging"
	"github.com/jeranaias/thagstyle/internal/styling"
)

// Env looks up an environment variable. Tests substitute a map.
type Env func(string) string

// OSEnv reads the process environment.
func OSEnv(key string) string { return os.Getenv(key) }

// MapEnv returns an Env backed by m.
func MapEnv(m map[string]string) Env {
	return func(key string) string { return m[key] }
}

// DetectColorSupport classifies the terminal's color capability. Explicit
// environment settings win; live probing only happens on a TTY; the termenv
// profile is the last resort.
func DetectColorSupport(ctx context.Context, env Env, term Terminal) styling.ColorSupport {
	if env == nil {
		env = OSEnv
	}

	if env("TEST_ENV") != "" {
		return styling.Basic
	}
	if env("NO_COLOR") != "" {
		return styling.None
	}
	if s, ok := parseThagColorMode(env("THAG_COLOR_MODE")); ok {
		logging.Debugf("DETECT | source=THAG_COLOR_MODE support=%s", s)
		return s
	}
	if v := strings.TrimSpace(env("FORCE_COLOR")); v != "" {
		switch v {
		case "0", "false":
			return styling.None
		case "2":
			return styling.Color256
		case "3":
			return styling.TrueColor
		default:
			return styling.Basic
		}
	}
	if v := env("CLICOLOR_FORCE"); v != "" && v != "0" {
		return styling.Basic
	}

	switch env("TERM_PROGRAM") {
	case "mintty":
		return styling.TrueColor
	case "Apple_Terminal":
		return styling.Color256
	}

	switch strings.ToLower(env("COLORTERM")) {
	case "truecolor", "24bit":
		return styling.TrueColor
	}

	if term != nil && term.IsTTY() && term.ProbeTrueColor(ctx) {
		logging.Debugf("DETECT | source=probe support=true_color")
		return styling.TrueColor
	}

	t := env("TERM")
	if strings.HasSuffix(t, "256color") || strings.HasSuffix(t, "256") {
		return styling.Color256
	}

	if term == nil {
		return styling.DefaultColorSupport
	}
	return SupportFromProfile(term.Profile())
}

// SupportFromProfile maps a termenv profile onto ColorSupport.
func SupportFromProfile(p termenv.Profile) styling.ColorSupport {
	switch p {
	case termenv.TrueColor:
		return styling.TrueColor
	case termenv.ANSI256:
		return styling.Color256
	case termenv.ANSI:
		return styling.Basic
	default:
		return styling.None
	}
}

// ProfileFor is the reverse of SupportFromProfile.
func ProfileFor(s styling.ColorSupport) termenv.Profile {
	switch s {
	case styling.TrueColor:
		return termenv.TrueColor
	case styling.Color256:
		return termenv.ANSI256
	case styling.Basic, styling.Undetermined:
		return termenv.ANSI
	default:
		return termenv.Ascii
	}
}

func parseThagColorMode(v string) (styling.ColorSupport, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none", "off", "0":
		return styling.None, true
	case "basic", "16", "1":
		return styling.Basic, true
	case "256", "2":
		return styling.Color256, true
	case "truecolor", "24bit", "rgb", "3":
		return styling.TrueColor, true
	}
	return styling.Undetermined, false
}
