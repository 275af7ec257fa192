// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/thagstyle/internal/export"
	"github.com/jeranaias/thagstyle/internal/styling"
)

// isolate points HOME at a temp dir and clears THAG_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, k := range []string{"THAG_COLOR_SUPPORT", "THAG_TERM_BG_LUMA", "THAG_TERM_BG_RGB", "THAG_THEME_DIR", "THAG_VERBOSITY"} {
		t.Setenv(k, "")
	}
	return home
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, styling.Undetermined, cfg.ColorSupport())
	assert.Equal(t, styling.LumaUndetermined, cfg.TermBgLuma())
	assert.Nil(t, cfg.TermBgRGB())
	assert.Equal(t, export.AllFormats(), cfg.ExportFormats())
	assert.Equal(t, []string{"dracula", "basic_dark"}, cfg.Preferences().FallbackDark)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad support", func(c *Config) { c.Styling.ColorSupport = "millions" }, "styling.color_support"},
		{"bad luma", func(c *Config) { c.Styling.TermBgLuma = "dim" }, "styling.term_bg_luma"},
		{"undetermined luma", func(c *Config) { c.Styling.TermBgLuma = "undetermined" }, "styling.term_bg_luma"},
		{"short rgb", func(c *Config) { c.Styling.TermBgRGB = []int{1, 2} }, "styling.term_bg_rgb"},
		{"rgb range", func(c *Config) { c.Styling.TermBgRGB = []int{1, 2, 300} }, "styling.term_bg_rgb"},
		{"bad format", func(c *Config) { c.Export.Formats = []string{"kitty", "xterm"} }, "export.formats"},
		{"bad verbosity", func(c *Config) { c.UI.Verbosity = "loud" }, "ui.verbosity"},
		{"negative debounce", func(c *Config) { c.Index.WatchDebounceMs = -1 }, "index.watch_debounce_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}

	t.Run("aliases accepted", func(t *testing.T) {
		cfg := Default()
		cfg.Styling.ColorSupport = "truecolor"
		cfg.Styling.TermBgLuma = "light"
		cfg.Styling.TermBgRGB = []int{250, 250, 250}
		cfg.Export.Formats = []string{"wt", "iterm"}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, styling.TrueColor, cfg.ColorSupport())
		assert.Equal(t, styling.Light, cfg.TermBgLuma())
		assert.Equal(t, &[3]uint8{250, 250, 250}, cfg.TermBgRGB())
		assert.Equal(t, []export.Format{export.FormatWindowsTerminal, export.FormatITerm2}, cfg.ExportFormats())
	})
}

func TestLoadPrecedence(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "normal", cfg.UI.Verbosity)

	dir := filepath.Join(home, ".thag")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"ui": {"verbosity": "debug"}}`), 0644))

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.UI.Verbosity)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[styling]
color_support = "color256"
preferred_dark = ["nord"]

[ui]
verbosity = "verbose"
`), 0644))

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "verbose", cfg.UI.Verbosity, "TOML wins over JSON")
	assert.Equal(t, styling.Color256, cfg.ColorSupport())
	assert.Equal(t, []string{"nord"}, cfg.Preferences().PreferredDark)
	assert.Equal(t, []string{"dracula", "basic_dark"}, cfg.Styling.FallbackDark, "defaults survive")

	t.Setenv("THAG_VERBOSITY", "quiet")
	t.Setenv("THAG_TERM_BG_RGB", "#1e1e2e")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "quiet", cfg.UI.Verbosity, "env wins over file")
	assert.Equal(t, []int{30, 30, 46}, cfg.Styling.TermBgRGB)
}

func TestLoadBrokenFileFallsBack(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".thag")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[styling\n"), 0644))

	cfg, err := Load()
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, Default().UI.Verbosity, cfg.UI.Verbosity)
}

func TestSaveAndLoadFromPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	cfg := Default()
	cfg.Styling.ThemeDir = "~/themes"
	cfg.Styling.TermBgRGB = []int{40, 42, 54}
	cfg.Export.Formats = []string{"kitty"}
	cfg.Index.WatchDebounceMs = 250

	for _, name := range []string{"config.toml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if filepath.Ext(name) == ".json" {
				require.NoError(t, SaveJSON(cfg, path))
			} else {
				require.NoError(t, SaveTOML(cfg, path))
			}

			got, err := LoadFromPath(path)
			require.NoError(t, err)
			assert.Equal(t, cfg.Styling.ThemeDir, got.Styling.ThemeDir)
			assert.Equal(t, cfg.Styling.TermBgRGB, got.Styling.TermBgRGB)
			assert.Equal(t, cfg.Export.Formats, got.Export.Formats)
			assert.Equal(t, 250, got.Index.WatchDebounceMs)
		})
	}

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "themes"), cfg.ThemeDir())
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	tests := []struct {
		key   string
		value interface{}
		want  interface{}
	}{
		{"ui.verbosity", "debug", "debug"},
		{"ui.watch_theme_dir", "false", false},
		{"index.watch_debounce_ms", "750", 750},
		{"styling.preferred_dark", "nord, dracula", []string{"nord", "dracula"}},
		{"styling.term_bg_rgb", "#282a36", []int{40, 42, 54}},
		{"styling.term_bg_rgb", "1,2,3", []int{1, 2, 3}},
		{"styling.term_bg_rgb", "", []int{}},
		{"export.open_after_export", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, cfg.Set(tt.key, tt.value))
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := cfg.Get("styling.nope")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("ui", "x"), "sections cannot be set")
	assert.Error(t, cfg.Set("ui.verbosity.deep", "x"))
	assert.Error(t, cfg.Set("index.watch_debounce_ms", "soon"))
	assert.Error(t, cfg.Set("", "x"))

	// Every advertised key resolves.
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestClone(t *testing.T) {
	cfg := Default()
	cfg.Styling.PreferredDark = []string{"nord"}
	clone := cfg.Clone()
	clone.Styling.PreferredDark[0] = "dracula"
	clone.UI.Verbosity = "debug"

	assert.Equal(t, "nord", cfg.Styling.PreferredDark[0])
	assert.Equal(t, "normal", cfg.UI.Verbosity)
	assert.Contains(t, cfg.String(), `"verbosity": "normal"`)
}

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			c := Default()
			c.UI.Verbosity = "verbose"
			SetGlobal(c)
		}()
		go func() {
			defer wg.Done()
			if cfg := Global(); cfg == nil {
				t.Error("Global returned nil")
			}
		}()
		go func() {
			defer wg.Done()
			_ = ReloadGlobal()
		}()
	}
	wg.Wait()
	assert.NotNil(t, Global())
}
