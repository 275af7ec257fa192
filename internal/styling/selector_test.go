// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import (
	"testing"
)

// memSource is an in-memory ThemeSource.
type memSource struct {
	themes map[string]*Theme
}

func newMemSource(t *testing.T, specs ...[3]string) *memSource {
	t.Helper()
	m := &memSource{themes: make(map[string]*Theme)}
	for _, s := range specs {
		th, err := FromTOML(s[0], []byte(themeTOML(s[0], s[1], s[2], "#eeeeee")))
		if err != nil {
			t.Fatalf("building %s: %v", s[0], err)
		}
		m.themes[s[0]] = th
	}
	return m
}

func (m *memSource) ByBackground(hex string) ([]string, error) {
	var out []string
	for name, th := range m.themes {
		for _, bg := range th.Backgrounds {
			if bg == normalizeHex(hex) {
				out = append(out, name)
			}
		}
	}
	return out, nil
}

func (m *memSource) Candidates(luma TermBgLuma, support ColorSupport) ([]ThemeSummary, error) {
	var out []ThemeSummary
	for _, th := range m.themes {
		if th.TermBgLuma == luma && th.MinColorSupport <= support {
			out = append(out, th.Summary())
		}
	}
	return out, nil
}

func (m *memSource) Load(name string) (*Theme, error) {
	if th, ok := m.themes[name]; ok {
		return th.Clone(), nil
	}
	return nil, unknownTheme(name)
}

func (m *memSource) Names() ([]string, error) {
	var out []string
	for name := range m.themes {
		out = append(out, name)
	}
	return out, nil
}

// purple is far from every builtin background, so only test themes compete.
var purple = [3]uint8{0x7f, 0x00, 0x7f}

func TestAutoDetectWithoutBackground(t *testing.T) {
	th, err := AutoDetect(TrueColor, Dark, nil, Preferences{})
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "basic_dark" {
		t.Errorf("dark without bg = %s", th.Name)
	}
	th, err = AutoDetect(TrueColor, Light, nil, Preferences{})
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "basic_light" {
		t.Errorf("light without bg = %s", th.Name)
	}
}

func TestAutoDetectBuiltinExactMatch(t *testing.T) {
	bg := [3]uint8{0x28, 0x2a, 0x36}
	th, err := AutoDetect(TrueColor, Dark, &bg, Preferences{PreferredDark: []string{"nord"}})
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "dracula" {
		t.Errorf("got %s, want dracula", th.Name)
	}

	th, err = AutoDetect(Color256, Dark, &bg, Preferences{})
	if err != nil {
		t.Fatal(err)
	}
	if th.MinColorSupport != Color256 {
		t.Errorf("theme not converted for 256 colors: %s", th.MinColorSupport)
	}
}

func TestAutoDetectOrdering(t *testing.T) {
	src := newMemSource(t,
		[3]string{"exact_a", "dark", "#7f007f"},
		[3]string{"exact_z", "dark", "#7f007f"},
		[3]string{"near_pref", "dark", "#75007a"},
		[3]string{"nearer", "dark", "#7e007e"},
		[3]string{"far", "dark", "#3f003f"},
	)

	tests := []struct {
		name  string
		bg    [3]uint8
		prefs Preferences
		want  string
	}{
		{"preferred exact wins", purple, Preferences{PreferredDark: []string{"near_pref", "exact_z"}}, "exact_z"},
		{"fallback exact", purple, Preferences{FallbackDark: []string{"exact_z"}}, "exact_z"},
		{"any exact sorted", purple, Preferences{}, "exact_a"},
		{"exact beats closer preferred", purple, Preferences{PreferredDark: []string{"nearer"}}, "exact_a"},
		{"closest preferred", [3]uint8{0x7e, 0x00, 0x7d}, Preferences{PreferredDark: []string{"near_pref"}}, "near_pref"},
		{"closest fallback", [3]uint8{0x7e, 0x00, 0x7d}, Preferences{FallbackDark: []string{"near_pref"}}, "near_pref"},
		{"closest overall", [3]uint8{0x7e, 0x00, 0x7d}, Preferences{}, "nearer"},
		{"preferred out of range ignored", [3]uint8{0x7e, 0x00, 0x7d}, Preferences{PreferredDark: []string{"far"}}, "nearer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg := tt.bg
			th, err := NewSelector(tt.prefs, src).AutoDetect(TrueColor, Dark, &bg)
			if err != nil {
				t.Fatal(err)
			}
			if th.Name != tt.want {
				t.Errorf("got %s, want %s", th.Name, tt.want)
			}
		})
	}
}

func TestAutoDetectThreshold(t *testing.T) {
	src := newMemSource(t, [3]string{"far", "dark", "#3f003f"})
	bg := purple
	th, err := NewSelector(Preferences{}, src).AutoDetect(TrueColor, Dark, &bg)
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "basic_dark" {
		t.Errorf("got %s, want basic_dark", th.Name)
	}
}

func TestAutoDetectRespectsSupportAndLuma(t *testing.T) {
	src := newMemSource(t, [3]string{"nearer", "dark", "#7e007e"})
	bg := [3]uint8{0x7e, 0x00, 0x7f}

	th, err := NewSelector(Preferences{}, src).AutoDetect(Color256, Dark, &bg)
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "basic_dark" {
		t.Errorf("true color theme chosen for 256 colors: %s", th.Name)
	}

	th, err = NewSelector(Preferences{}, src).AutoDetect(TrueColor, Light, &bg)
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "basic_light" {
		t.Errorf("dark theme chosen for light luma: %s", th.Name)
	}
}

func TestSelectorNamesAndShadowing(t *testing.T) {
	src := newMemSource(t, [3]string{"nord", "dark", "#000002"}, [3]string{"mine", "dark", "#000003"})
	sel := NewSelector(Preferences{}, src)

	names := sel.Names()
	count := 0
	for _, n := range names {
		if n == "nord" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("nord listed %d times", count)
	}
	if !containsString(names, "mine") || !containsString(names, "espresso") {
		t.Errorf("names missing entries: %v", names)
	}

	th, err := sel.Load("nord")
	if err != nil {
		t.Fatal(err)
	}
	if th.BgHex() != "#000002" {
		t.Errorf("user source should shadow builtin, got bg %s", th.BgHex())
	}
}
