// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import (
	"errors"
	"fmt"
)

// ErrorKind classifies styling failures.
type ErrorKind int

const (
	// KindParse covers malformed colors, style names, support levels and theme TOML.
	KindParse ErrorKind = iota
	// KindIO covers theme files that could not be read.
	KindIO
	// KindInvalidTheme is a structurally broken theme (missing roles, bad values).
	KindInvalidTheme
	// KindColorSupportMismatch means the terminal cannot show the theme's colors.
	KindColorSupportMismatch
	// KindTermBgLumaMismatch means the theme targets the other background luma.
	KindTermBgLumaMismatch
	// KindUnknownTheme means no builtin or user theme has the requested name.
	KindUnknownTheme
	// KindFromStr is a string that does not name any known enum value.
	KindFromStr
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindIO:
		return "io"
	case KindInvalidTheme:
		return "invalid theme"
	case KindColorSupportMismatch:
		return "color support mismatch"
	case KindTermBgLumaMismatch:
		return "background luma mismatch"
	case KindUnknownTheme:
		return "unknown theme"
	case KindFromStr:
		return "unrecognized value"
	default:
		return "unknown"
	}
}

// Error is the error type returned by this package.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error

	// Set for KindColorSupportMismatch.
	Required  ColorSupport
	Available ColorSupport

	// Set for KindTermBgLumaMismatch.
	ThemeLuma    TermBgLuma
	TerminalLuma TermBgLuma
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindColorSupportMismatch:
		return fmt.Sprintf("theme requires %s color support, terminal has %s", e.Required, e.Available)
	case KindTermBgLumaMismatch:
		return fmt.Sprintf("theme is for %s backgrounds, terminal background is %s", e.ThemeLuma, e.TerminalLuma)
	}
	msg := e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrParse                = &Error{Kind: KindParse}
	ErrIO                   = &Error{Kind: KindIO}
	ErrInvalidTheme         = &Error{Kind: KindInvalidTheme}
	ErrColorSupportMismatch = &Error{Kind: KindColorSupportMismatch}
	ErrTermBgLumaMismatch   = &Error{Kind: KindTermBgLumaMismatch}
	ErrUnknownTheme         = &Error{Kind: KindUnknownTheme}
	ErrFromStr              = &Error{Kind: KindFromStr}
)

func parseError(format string, args ...any) error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf(format, args...)}
}

func invalidTheme(format string, args ...any) error {
	return &Error{Kind: KindInvalidTheme, Message: fmt.Sprintf(format, args...)}
}

func unknownTheme(name string) error {
	return &Error{Kind: KindUnknownTheme, Message: name}
}

func ioError(path string, err error) error {
	return &Error{Kind: KindIO, Message: path, Err: err}
}
