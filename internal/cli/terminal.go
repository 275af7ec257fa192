// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - TTY checks and color output control for the CLI.

package cli

import (
	"context"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/jeranaias/thagstyle/internal/detect"
	"github.com/jeranaias/thagstyle/internal/logging"
	"github.com/jeranaias/thagstyle/internal/styling"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// TERMINAL WIDTH DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the minimum width we'll use for wrapping
	MinTerminalWidth = 40
)

// GetTerminalWidth returns the current terminal width.
// Returns DefaultTerminalWidth (80) if width cannot be determined.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

var (
	colorsEnabled     bool
	colorsEnabledOnce sync.Once
)

// ColorsEnabled returns true if colored output should be used.
// NO_COLOR wins over FORCE_COLOR, which wins over TTY detection.
// See https://no-color.org/ for the NO_COLOR specification.
func ColorsEnabled() bool {
	colorsEnabledOnce.Do(func() {
		colorsEnabled = colorsWanted(detect.OSEnv, IsStdoutTTY())
	})
	return colorsEnabled
}

func colorsWanted(env detect.Env, tty bool) bool {
	if env("NO_COLOR") != "" {
		return false
	}
	if env("FORCE_COLOR") != "" {
		return true
	}
	return tty
}

// ForceColorsEnabled allows overriding color detection (for testing).
func ForceColorsEnabled(enabled bool) {
	colorsEnabledOnce = sync.Once{}
	colorsEnabledOnce.Do(func() {
		colorsEnabled = enabled
	})
}

// outputSupport is the support level used for painting CLI output: the
// detected level, or None when colors are off.
func outputSupport(detected styling.ColorSupport) styling.ColorSupport {
	if !ColorsEnabled() {
		return styling.None
	}
	return detected
}

// =============================================================================
// INTERACTIVE INPUT HELPERS
// =============================================================================

// RequiresTTY returns an error if stdin is not a terminal.
func RequiresTTY(operation string) error {
	if !IsTTY() {
		return &TTYRequiredError{Operation: operation}
	}
	return nil
}

// TTYRequiredError is returned when an operation requires a TTY but none is available.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	if e.Operation != "" {
		return "stdin is not a terminal; cannot " + e.Operation + " interactively"
	}
	return "stdin is not a terminal; interactive input not available"
}

// settleTerminal waits out detection queries that may still be reading
// stdin, so interactive input is not swallowed.
func settleTerminal(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, detect.SettleTimeout)
	defer cancel()
	if !detect.Settle(ctx) {
		logging.Warnf("DETECT | terminal query still pending; input may be delayed")
	}
}
