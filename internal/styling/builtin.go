// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed themes/*.toml
var builtinFS embed.FS

var (
	builtinOnce   sync.Once
	builtinThemes map[string]*Theme
	builtinErr    error
	builtinBgs    map[string][]string
)

func loadBuiltins() {
	builtinOnce.Do(func() {
		entries, err := builtinFS.ReadDir("themes")
		if err != nil {
			builtinErr = err
			return
		}
		builtinThemes = make(map[string]*Theme, len(entries))
		builtinBgs = make(map[string][]string)
		for _, e := range entries {
			data, err := builtinFS.ReadFile(path.Join("themes", e.Name()))
			if err != nil {
				builtinErr = err
				return
			}
			name := strings.TrimSuffix(e.Name(), ".toml")
			t, err := FromTOML(name, data)
			if err != nil {
				builtinErr = fmt.Errorf("builtin theme %s: %w", name, err)
				return
			}
			t.IsBuiltin = true
			t.Filename = e.Name()
			builtinThemes[t.Name] = t
			for _, bg := range t.Backgrounds {
				builtinBgs[bg] = append(builtinBgs[bg], t.Name)
			}
		}
		for _, names := range builtinBgs {
			sort.Strings(names)
		}
	})
}

// Builtin returns a copy of a bundled theme.
func Builtin(name string) (*Theme, error) {
	loadBuiltins()
	if builtinErr != nil {
		return nil, builtinErr
	}
	t, ok := builtinThemes[name]
	if !ok {
		return nil, unknownTheme(name)
	}
	return t.Clone(), nil
}

// BuiltinNames lists the bundled themes, sorted.
func BuiltinNames() []string {
	loadBuiltins()
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtins is a ThemeSource over the bundled themes.
var Builtins ThemeSource = builtinSource{}

type builtinSource struct{}

func (builtinSource) ByBackground(hex string) ([]string, error) {
	loadBuiltins()
	if builtinErr != nil {
		return nil, builtinErr
	}
	return append([]string(nil), builtinBgs[normalizeHex(hex)]...), nil
}

func (builtinSource) Candidates(luma TermBgLuma, support ColorSupport) ([]ThemeSummary, error) {
	loadBuiltins()
	if builtinErr != nil {
		return nil, builtinErr
	}
	var out []ThemeSummary
	for _, name := range BuiltinNames() {
		t := builtinThemes[name]
		if t.TermBgLuma == luma && t.MinColorSupport <= support {
			out = append(out, t.Summary())
		}
	}
	return out, nil
}

func (builtinSource) Load(name string) (*Theme, error) {
	return Builtin(name)
}

func (builtinSource) Names() ([]string, error) {
	return BuiltinNames(), nil
}

// normalizeHex lowercases and ensures a leading '#'.
func normalizeHex(hex string) string {
	h := strings.ToLower(strings.TrimSpace(hex))
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}
	return h
}
