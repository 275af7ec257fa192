// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestConfigureThemeChoice(t *testing.T) {
	tests := []struct {
		name    string
		support ColorSupport
		luma    TermBgLuma
		prefs   Preferences
		want    string
	}{
		{"light", TrueColor, Light, Preferences{}, "github"},
		{"basic dark", Basic, Dark, Preferences{}, "basic_dark"},
		{"none dark", None, Dark, Preferences{}, "basic_dark"},
		{"truecolor dark", TrueColor, Dark, Preferences{}, "espresso"},
		{"256 dark", Color256, Dark, Preferences{}, "espresso"},
		{"preferred", TrueColor, Dark, Preferences{PreferredDark: []string{"nord"}}, "nord"},
		{"preferred wrong luma skipped", TrueColor, Dark, Preferences{PreferredDark: []string{"github", "gruvbox_dark"}}, "gruvbox_dark"},
		{"preferred needs more support", Color256, Dark, Preferences{PreferredDark: []string{"nord"}}, "espresso"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Configure(tt.support, tt.luma, nil, tt.prefs)
			require.NotNil(t, a.Theme)
			assert.Equal(t, tt.want, a.Theme.Name)
			assert.Equal(t, Configured, a.HowInitialized)
			assert.LessOrEqual(t, int(a.Theme.MinColorSupport), int(maxSupport(tt.support, Basic)))
		})
	}
}

func maxSupport(a, b ColorSupport) ColorSupport {
	if a > b {
		return a
	}
	return b
}

func TestInitializeDefaultUnderTestEnv(t *testing.T) {
	ResetForTesting()
	defer ResetForTesting()

	detected := false
	a := Initialize(InitOptions{
		Strategy: StrategyMatch,
		Detect: func() (ColorSupport, *[3]uint8, TermBgLuma) {
			detected = true
			return TrueColor, nil, Dark
		},
		Getenv: fakeEnv(map[string]string{"TEST_ENV": "1"}),
	})
	assert.False(t, detected)
	assert.Equal(t, Defaulted, a.HowInitialized)
	assert.Equal(t, "basic_dark", a.Theme.Name)
	assert.Equal(t, Basic, a.ColorSupport)
}

func TestInitializeMatch(t *testing.T) {
	ResetForTesting()
	defer ResetForTesting()

	bg := [3]uint8{0x28, 0x2a, 0x36}
	a := Initialize(InitOptions{
		Strategy: StrategyMatch,
		Detect: func() (ColorSupport, *[3]uint8, TermBgLuma) {
			return TrueColor, &bg, Dark
		},
		Getenv: fakeEnv(nil),
	})
	assert.Equal(t, Detected, a.HowInitialized)
	assert.Equal(t, "dracula", a.Theme.Name)

	again := Initialize(InitOptions{Strategy: StrategyDefault})
	assert.Same(t, a, again, "Initialize runs once")
	assert.Same(t, a, GetOrInit())
}

func TestInitializeHonorsThagTheme(t *testing.T) {
	ResetForTesting()
	defer ResetForTesting()

	a := Initialize(InitOptions{
		Strategy: StrategyMatch,
		Detect: func() (ColorSupport, *[3]uint8, TermBgLuma) {
			return Color256, nil, Dark
		},
		Getenv: fakeEnv(map[string]string{"THAG_THEME": "gruvbox_dark"}),
	})
	assert.Equal(t, "gruvbox_dark", a.Theme.Name)
	assert.Equal(t, Color256, a.Theme.MinColorSupport)
}

func TestInitializeIgnoresUnknownThagTheme(t *testing.T) {
	ResetForTesting()
	defer ResetForTesting()

	a := Initialize(InitOptions{
		Strategy: StrategyMatch,
		Detect: func() (ColorSupport, *[3]uint8, TermBgLuma) {
			return TrueColor, nil, Light
		},
		Getenv: fakeEnv(map[string]string{"THAG_THEME": "nonexistent"}),
	})
	assert.Equal(t, "basic_light", a.Theme.Name)
}

func TestAttributesBuilders(t *testing.T) {
	nord, err := Builtin("nord")
	require.NoError(t, err)
	a := ForTesting(TrueColor, Dark, nil, nord)

	b, err := a.WithTheme("dracula")
	require.NoError(t, err)
	assert.Equal(t, "dracula", b.Theme.Name)
	assert.Equal(t, "nord", a.Theme.Name)

	_, err = a.WithTheme("missing")
	assert.Error(t, err)

	c := a.WithColorSupport(Basic)
	assert.Equal(t, Basic, c.ColorSupport)
	assert.Equal(t, Basic, c.Theme.MinColorSupport)
	assert.Equal(t, TrueColor, a.Theme.MinColorSupport)

	want := nord.StyleFor(RoleError).PaintFor("boom", TrueColor)
	assert.Equal(t, want, a.Paint(RoleError, "boom"))
}

func TestContextOverride(t *testing.T) {
	ResetForTesting()
	defer ResetForTesting()
	t.Setenv("THAG_THEME", "")

	nord, err := Builtin("nord")
	require.NoError(t, err)
	override := ForTesting(TrueColor, Dark, nil, nord)

	ctx := WithContext(context.Background(), override)
	assert.Same(t, override, FromContext(ctx))
	assert.Equal(t, nord.StyleFor(RoleLink), RoleStyle(ctx, RoleLink))

	global := FromContext(context.Background())
	require.NotNil(t, global)
	assert.Equal(t, "basic_dark", global.Theme.Name)
	assert.Equal(t, override.Paint(RoleInfo, "x"), PaintRole(ctx, RoleInfo, "x"))
}
