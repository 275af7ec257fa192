// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides verbosity-gated diagnostic output for thagstyle.
//
// Lines follow the "TAG | key=value" layout used across the project, e.g.
//
//	THEME_SELECT | luma=dark support=true_color bg=#282a36 theme=dracula
//
// Output goes to stderr so it never mixes with themed stdout or exported files.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Verbosity controls how much diagnostic output is written.
type Verbosity int

const (
	// Quiet suppresses everything, including warnings.
	Quiet Verbosity = iota
	// Normal prints warnings only.
	Normal
	// Verbose adds progress information.
	Verbose
	// Debug adds detection and selection traces.
	Debug
)

// String returns the config name of the verbosity.
func (v Verbosity) String() string {
	switch v {
	case Quiet:
		return "quiet"
	case Verbose:
		return "verbose"
	case Debug:
		return "debug"
	default:
		return "normal"
	}
}

// ParseVerbosity parses a verbosity name as used in config and THAG_VERBOSITY.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet", "q":
		return Quiet, nil
	case "", "normal", "n":
		return Normal, nil
	case "verbose", "v":
		return Verbose, nil
	case "debug", "vv":
		return Debug, nil
	}
	return Normal, fmt.Errorf("unknown verbosity %q, must be one of: quiet, normal, verbose, debug", s)
}

var (
	mu     sync.RWMutex
	level  = Normal
	logger = log.New(os.Stderr, "", 0)
)

// SetVerbosity sets the global verbosity.
func SetVerbosity(v Verbosity) {
	mu.Lock()
	defer mu.Unlock()
	level = v
}

// GetVerbosity returns the global verbosity.
func GetVerbosity() Verbosity {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetOutput redirects log output. Tests use this to capture lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// Enabled reports whether messages at v would be written.
func Enabled(v Verbosity) bool {
	return GetVerbosity() >= v
}

func logAt(v Verbosity, format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if level < v {
		return
	}
	logger.Printf(format, args...)
}

// Warnf logs a warning. Suppressed only in quiet mode.
func Warnf(format string, args ...interface{}) {
	logAt(Normal, "WARN | "+format, args...)
}

// Verbosef logs progress information.
func Verbosef(format string, args ...interface{}) {
	logAt(Verbose, format, args...)
}

// Debugf logs detection and selection traces.
func Debugf(format string, args ...interface{}) {
	logAt(Debug, format, args...)
}
