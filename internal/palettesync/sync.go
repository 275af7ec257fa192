// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package palettesync rewrites the running terminal's palette to match a
// theme using OSC escape sequences. Changes last for the terminal session.
//
// Most emulators honor these sequences, including WezTerm, Alacritty, iTerm2,
// Kitty, GNOME Terminal and Windows Terminal.
package palettesync

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// OSC codes for the dynamic colors.
const (
	oscPalette     = 4
	oscForeground  = 10
	oscBackground  = 11
	oscCursor      = 12
	oscSelectionBg = 17
	oscSelectionFg = 19
)

// resetCodes restore palette, fg, bg, cursor and both selection colors.
var resetCodes = []int{104, 110, 111, 112, 117, 119}

// Sync writes palette sequences to a terminal.
type Sync struct {
	w io.Writer
}

// NewSync returns a Sync writing to w, or to stdout when w is nil.
func NewSync(w io.Writer) *Sync {
	if w == nil {
		w = os.Stdout
	}
	return &Sync{w: w}
}

func setColor(code int, rgb [3]uint8) string {
	return fmt.Sprintf("%s%d;rgb:%02x/%02x/%02x%c", termenv.OSC, code, rgb[0], rgb[1], rgb[2], termenv.BEL)
}

func setPaletteEntry(index int, rgb [3]uint8) string {
	return fmt.Sprintf("%s%d;%d;rgb:%02x/%02x/%02x%c", termenv.OSC, oscPalette, index, rgb[0], rgb[1], rgb[2], termenv.BEL)
}

// Sequences returns the sequences Apply writes, in order: 16 palette
// entries, background, foreground, cursor, selection background and
// selection foreground.
func Sequences(theme *styling.Theme) []string {
	colors := theme.ANSIColorMap()
	seqs := make([]string, 0, len(colors)+5)
	for i, rgb := range colors {
		seqs = append(seqs, setPaletteEntry(i, rgb))
	}

	fg := theme.RoleRGB(styling.RoleNormal)
	return append(seqs,
		setColor(oscBackground, theme.DefaultBackground()),
		setColor(oscForeground, fg),
		setColor(oscCursor, theme.CursorRGB()),
		setColor(oscSelectionBg, theme.SelectionRGB()),
		setColor(oscSelectionFg, fg),
	)
}

// ResetSequences returns the sequences Reset writes.
func ResetSequences() []string {
	seqs := make([]string, len(resetCodes))
	for i, code := range resetCodes {
		seqs[i] = fmt.Sprintf("%s%d%c", termenv.OSC, code, termenv.BEL)
	}
	return seqs
}

// Apply updates the terminal palette to match theme.
func (s *Sync) Apply(theme *styling.Theme) error {
	if theme == nil {
		return fmt.Errorf("palette sync: nil theme")
	}
	return s.write(Sequences(theme))
}

// Reset restores the terminal's configured colors.
func (s *Sync) Reset() error {
	return s.write(ResetSequences())
}

func (s *Sync) write(seqs []string) error {
	if _, err := io.WriteString(s.w, strings.Join(seqs, "")); err != nil {
		return fmt.Errorf("write palette sequences: %w", err)
	}
	if f, ok := s.w.(interface{ Sync() error }); ok {
		// Terminals that are not files (pipes, buffers) need no flush
		_ = f.Sync()
	}
	return nil
}

var ansiNames = [8]string{"Black", "Red", "Green", "Yellow", "Blue", "Magenta", "Cyan", "White"}

// Demonstrate prints the 16 palette slots and the role each one carries, so
// the effect of Apply can be checked by eye.
func Demonstrate(w io.Writer) {
	for i := 0; i < 8; i++ {
		fmt.Fprintf(w, "\x1b[3%d;40m  %-14s\x1b[0m", i, ansiNames[i])
	}
	fmt.Fprintln(w)
	for i := 0; i < 8; i++ {
		fmt.Fprintf(w, "\x1b[9%d;40m  %-14s\x1b[0m", i, "Bright "+ansiNames[i])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)
	for i := 1; i < 16; i++ {
		role, _ := styling.ANSIRole(i)
		code := 30 + i
		if i >= 8 {
			code = 90 + i - 8
		}
		fmt.Fprintf(w, "\x1b[%dm● %-10s %s (ANSI %d)\x1b[0m\n", code, role, role.Description(), i)
	}
}
