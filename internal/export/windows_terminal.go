// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/tailscale/hujson"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// WindowsTerminalExporter writes a Windows Terminal color scheme object.
type WindowsTerminalExporter struct{}

// WindowsTerminalScheme is one entry of the "schemes" array in settings.json.
// Field order matches the order Windows Terminal itself writes.
type WindowsTerminalScheme struct {
	Name                string `json:"name"`
	Background          string `json:"background"`
	Foreground          string `json:"foreground"`
	CursorColor         string `json:"cursorColor"`
	SelectionBackground string `json:"selectionBackground"`
	Black               string `json:"black"`
	Red                 string `json:"red"`
	Green               string `json:"green"`
	Yellow              string `json:"yellow"`
	Blue                string `json:"blue"`
	Purple              string `json:"purple"`
	Cyan                string `json:"cyan"`
	White               string `json:"white"`
	BrightBlack         string `json:"brightBlack"`
	BrightRed           string `json:"brightRed"`
	BrightGreen         string `json:"brightGreen"`
	BrightYellow        string `json:"brightYellow"`
	BrightBlue          string `json:"brightBlue"`
	BrightPurple        string `json:"brightPurple"`
	BrightCyan          string `json:"brightCyan"`
	BrightWhite         string `json:"brightWhite"`
}

// NewWindowsTerminalScheme builds the scheme for theme. Colors are
// uppercase #RRGGBB.
func NewWindowsTerminalScheme(theme *styling.Theme) WindowsTerminalScheme {
	s := newScheme(theme)
	a := s.ANSI
	return WindowsTerminalScheme{
		Name:                s.Name,
		Background:          hexUpper(s.Background),
		Foreground:          hexUpper(s.Foreground),
		CursorColor:         hexUpper(s.Cursor),
		SelectionBackground: hexUpper(s.SelectionBg),
		Black:               hexUpper(a[0]),
		Red:                 hexUpper(a[1]),
		Green:               hexUpper(a[2]),
		Yellow:              hexUpper(a[3]),
		Blue:                hexUpper(a[4]),
		Purple:              hexUpper(a[5]),
		Cyan:                hexUpper(a[6]),
		White:               hexUpper(a[7]),
		BrightBlack:         hexUpper(a[8]),
		BrightRed:           hexUpper(a[9]),
		BrightGreen:         hexUpper(a[10]),
		BrightYellow:        hexUpper(a[11]),
		BrightBlue:          hexUpper(a[12]),
		BrightPurple:        hexUpper(a[13]),
		BrightCyan:          hexUpper(a[14]),
		BrightWhite:         hexUpper(a[15]),
	}
}

// Export implements Exporter.
func (WindowsTerminalExporter) Export(theme *styling.Theme) ([]byte, error) {
	out, err := json.MarshalIndent(NewWindowsTerminalScheme(theme), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode windows terminal scheme: %w", err)
	}
	return append(out, '\n'), nil
}

// FileExtension implements Exporter.
func (WindowsTerminalExporter) FileExtension() string { return ".json" }

// FormatName implements Exporter.
func (WindowsTerminalExporter) FormatName() string { return "Windows Terminal" }

// =============================================================================
// SETTINGS MERGE
// =============================================================================

type patchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// MergeWindowsTerminalSettings adds the theme's scheme to a settings.json
// document. A scheme with the same name is replaced in place, otherwise the
// scheme is appended. Comments and trailing commas in the input survive.
// settings is not modified.
func MergeWindowsTerminalSettings(settings []byte, theme *styling.Theme) ([]byte, error) {
	// hujson formats and packs in place over the parsed buffer.
	v, err := hujson.Parse(bytes.Clone(settings))
	if err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if _, ok := v.Value.(*hujson.Object); !ok {
		return nil, errors.New("parse settings: top level value is not an object")
	}

	scheme := NewWindowsTerminalScheme(theme)
	var op patchOp
	schemes := v.Find("/schemes")
	switch {
	case schemes == nil:
		op = patchOp{Op: "add", Path: "/schemes", Value: []WindowsTerminalScheme{scheme}}
	default:
		arr, ok := schemes.Value.(*hujson.Array)
		if !ok {
			return nil, errors.New("settings: \"schemes\" is not an array")
		}
		op = patchOp{Op: "add", Path: "/schemes/-", Value: scheme}
		for i := range arr.Elements {
			name := arr.Elements[i].Find("/name")
			if name == nil {
				continue
			}
			if lit, ok := name.Value.(hujson.Literal); ok && lit.String() == scheme.Name {
				op = patchOp{Op: "replace", Path: "/schemes/" + strconv.Itoa(i), Value: scheme}
				break
			}
		}
	}

	patch, err := json.Marshal([]patchOp{op})
	if err != nil {
		return nil, fmt.Errorf("encode settings patch: %w", err)
	}
	if err := v.Patch(patch); err != nil {
		return nil, fmt.Errorf("apply settings patch: %w", err)
	}
	v.Format()
	return v.Pack(), nil
}

// =============================================================================
// FRAGMENT
// =============================================================================

// fragmentNamespace scopes generated profile GUIDs to this tool.
var fragmentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/jeranaias/thagstyle"))

// WindowsTerminalProfile is a profile entry in a fragment extension.
type WindowsTerminalProfile struct {
	GUID        string `json:"guid"`
	Name        string `json:"name"`
	ColorScheme string `json:"colorScheme"`
	Commandline string `json:"commandline"`
}

// WindowsTerminalFragmentFile is the document Windows Terminal loads from
// its Fragments directory.
type WindowsTerminalFragmentFile struct {
	Profiles []WindowsTerminalProfile `json:"profiles"`
	Schemes  []WindowsTerminalScheme  `json:"schemes"`
}

// ProfileGUID returns the stable profile GUID for a theme name.
func ProfileGUID(themeName string) uuid.UUID {
	return uuid.NewSHA1(fragmentNamespace, []byte(themeName))
}

// WindowsTerminalFragment renders a fragment with the scheme and a profile
// that uses it. The GUID is derived from the theme name, so regenerating a
// fragment updates the same profile.
func WindowsTerminalFragment(theme *styling.Theme) ([]byte, error) {
	scheme := NewWindowsTerminalScheme(theme)
	frag := WindowsTerminalFragmentFile{
		Profiles: []WindowsTerminalProfile{{
			GUID:        "{" + ProfileGUID(theme.Name).String() + "}",
			Name:        "thag " + theme.Name,
			ColorScheme: scheme.Name,
			Commandline: "cmd.exe",
		}},
		Schemes: []WindowsTerminalScheme{scheme},
	}
	out, err := json.MarshalIndent(frag, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode fragment: %w", err)
	}
	return append(out, '\n'), nil
}
