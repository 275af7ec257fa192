// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailscale/hujson"

	"github.com/jeranaias/thagstyle/internal/config"
	"github.com/jeranaias/thagstyle/internal/detect"
	"github.com/jeranaias/thagstyle/internal/styling"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"rebuild"},
			wantSub: "rebuild",
		},
		{
			name:    "subcommand with flag",
			args:    []string{"dracula", "--format", "kitty"},
			wantSub: "dracula",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("format") != "kitty" {
					t.Errorf("Flag(format) = %q, want %q", p.Flag("format"), "kitty")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"dracula", "--output=./schemes"},
			wantSub: "dracula",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("output") != "./schemes" {
					t.Errorf("Flag(output) = %q, want %q", p.Flag("output"), "./schemes")
				}
			},
		},
		{
			name:    "trailing boolean flag",
			args:    []string{"dracula", "--fragment"},
			wantSub: "dracula",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("fragment") {
					t.Error("BoolFlag(fragment) should be true")
				}
			},
		},
		{
			name:    "declared boolean keeps next arg positional",
			args:    []string{"--dry-run", "nord"},
			bools:   []string{"dry-run"},
			wantSub: "nord",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("dry-run") {
					t.Error("BoolFlag(dry-run) should be true")
				}
				if p.Flag("dry-run") != "" {
					t.Errorf("Flag(dry-run) = %q, want empty", p.Flag("dry-run"))
				}
			},
		},
		{
			name:    "multiple positional args",
			args:    []string{"set", "styling.preferred_dark", "nord,dracula"},
			wantSub: "set",
			validate: func(t *testing.T, p *ArgParser) {
				if p.PositionalCount() != 3 {
					t.Errorf("PositionalCount() = %d, want 3", p.PositionalCount())
				}
				joined := strings.Join(p.PositionalFrom(1), " ")
				if joined != "styling.preferred_dark nord,dracula" {
					t.Errorf("PositionalFrom(1) joined = %q", joined)
				}
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"--", "--weird-name"},
			wantSub: "--weird-name",
		},
		{
			name:    "lone dash is stdin",
			args:    []string{"-", "--lang", "go"},
			wantSub: "-",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("lang") != "go" {
					t.Errorf("Flag(lang) = %q, want go", p.Flag("lang"))
				}
			},
		},
		{
			name:    "empty",
			args:    nil,
			wantSub: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			if got := p.Subcommand(); got != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", got, tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_FlagHelpers(t *testing.T) {
	p := NewArgParser([]string{"--colors", "8", "--width", "wide"})

	if got := p.FlagIntOrDefault("colors", 16); got != 8 {
		t.Errorf("FlagIntOrDefault(colors) = %d, want 8", got)
	}
	if got := p.FlagIntOrDefault("width", 80); got != 80 {
		t.Errorf("FlagIntOrDefault(width) = %d, want 80 for a non-number", got)
	}
	if got := p.FlagOrDefault("format", "all"); got != "all" {
		t.Errorf("FlagOrDefault(format) = %q, want all", got)
	}
	if !p.HasFlag("--colors") || p.HasFlag("missing") {
		t.Error("HasFlag mismatch")
	}
}

func TestParseIntWithValidation(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"16", 16, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"many", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIntWithValidation(tt.in, "colors")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

// =============================================================================
// COMMAND PARSING TESTS (cli.go)
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
		check   func(*testing.T, Args)
	}{
		{name: "no args is help", argv: nil, wantCmd: CmdHelp},
		{name: "long help", argv: []string{"--help"}, wantCmd: CmdHelp},
		{name: "version flag", argv: []string{"--version"}, wantCmd: CmdVersion},
		{name: "unknown", argv: []string{"frobnicate"}, wantCmd: CmdUnknown},
		{name: "alias", argv: []string{"ls", "--dark"}, wantCmd: CmdList, check: func(t *testing.T, a Args) {
			assert.Equal(t, []string{"--dark"}, a.Raw)
		}},
		{name: "case insensitive", argv: []string{"DETECT"}, wantCmd: CmdDetect},
		{name: "globals before command", argv: []string{"--json", "-q", "detect"}, wantCmd: CmdDetect, check: func(t *testing.T, a Args) {
			assert.True(t, a.JSON)
			assert.True(t, a.Quiet)
			assert.Empty(t, a.Raw)
		}},
		{name: "globals after command", argv: []string{"show", "dracula", "--theme", "nord", "--support=basic", "--no-color"}, wantCmd: CmdShow, check: func(t *testing.T, a Args) {
			assert.Equal(t, "nord", a.Theme)
			assert.Equal(t, "basic", a.Support)
			assert.True(t, a.NoColor)
			assert.Equal(t, []string{"dracula"}, a.Raw)
		}},
		{name: "command flags kept", argv: []string{"export", "nord", "--format", "kitty", "-v"}, wantCmd: CmdExport, check: func(t *testing.T, a Args) {
			assert.True(t, a.Verbose)
			assert.Equal(t, []string{"nord", "--format", "kitty"}, a.Raw)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := Parse(tt.argv)
			assert.Equal(t, tt.wantCmd, cmd)
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "list", CmdList.String())
	assert.Equal(t, "markdown", CmdMarkdown.String())
	assert.Equal(t, "unknown", CmdUnknown.String())
}

func TestPrintUsageListsFormats(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf)
	assert.Contains(t, buf.String(), "windows-terminal")
	assert.Contains(t, buf.String(), "Version: "+Version)
	assert.NotContains(t, buf.String(), "%!")
}

// =============================================================================
// ERROR TESTS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"validation", NewValidationError("x", "y", "bad"), ExitUsageError},
		{"not found", NewNotFoundError("theme", "nope"), ExitNotFoundError},
		{"config", &ConfigError{Err: errors.New("bad toml")}, ExitConfigError},
		{"wrapped not found", fmt.Errorf("wrap: %w", NewNotFoundError("file", "x")), ExitNotFoundError},
		{"unknown theme", &styling.Error{Kind: styling.KindUnknownTheme}, ExitNotFoundError},
		{"io", &styling.Error{Kind: styling.KindIO}, ExitIOError},
		{"from str", &styling.Error{Kind: styling.KindFromStr}, ExitUsageError},
		{"invalid theme", &styling.Error{Kind: styling.KindInvalidTheme}, ExitThemeError},
		{"command wrapping styling", NewCommandError("show", "x", "y", &styling.Error{Kind: styling.KindParse}), ExitThemeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestDisplayErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, NewNotFoundError("theme", "nope"), true)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "not_found_error", got["error_type"])
	assert.Equal(t, "nope", got["id"])
}

// =============================================================================
// TERMINAL TESTS (terminal.go)
// =============================================================================

func TestColorsWanted(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		tty  bool
		want bool
	}{
		{"tty", nil, true, true},
		{"pipe", nil, false, false},
		{"no color wins", map[string]string{"NO_COLOR": "1", "FORCE_COLOR": "1"}, true, false},
		{"force color on pipe", map[string]string{"FORCE_COLOR": "1"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, colorsWanted(detect.MapEnv(tt.env), tt.tty))
		})
	}
}

func TestOutputSupport(t *testing.T) {
	ForceColorsEnabled(false)
	assert.Equal(t, styling.None, outputSupport(styling.TrueColor))
	ForceColorsEnabled(true)
	assert.Equal(t, styling.Color256, outputSupport(styling.Color256))
	ForceColorsEnabled(false)
}

// =============================================================================
// APP TESTS
// =============================================================================

// draculaTerminal reports a true-color terminal with dracula's background.
func draculaTerminal(context.Context, detect.Options) detect.Result {
	return detect.Result{
		Support:    styling.TrueColor,
		BgRGB:      [3]uint8{0x28, 0x2a, 0x36},
		BgDetected: true,
		Luma:       styling.Dark,
		Width:      100,
		Height:     40,
	}
}

type testApp struct {
	*App
	cmd Command
	out *bytes.Buffer
}

func newTestApp(t *testing.T, argv ...string) *testApp {
	t.Helper()
	ForceColorsEnabled(false)
	cmd, args := Parse(argv)
	cfg := config.Default()
	cfg.Export.OutputDir = t.TempDir()
	out := &bytes.Buffer{}
	app := &App{
		Stdout: out,
		Stderr: io.Discard,
		Stdin:  strings.NewReader(""),
		Args:   args,
		Config: cfg,
		Getenv: detect.MapEnv(nil),
		Detect: draculaTerminal,
	}
	t.Cleanup(app.Close)
	return &testApp{App: app, cmd: cmd, out: out}
}

func (ta *testApp) run(t *testing.T) error {
	t.Helper()
	return ta.Run(context.Background(), ta.cmd)
}

// jsonData runs the command and decodes the data field of its response.
func (ta *testApp) jsonData(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, ta.run(t))
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(ta.out.Bytes(), &resp), ta.out.String())
	require.True(t, resp.Success)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

// writeUserTheme writes a copy of a builtin under a new name.
func writeUserTheme(t *testing.T, dir, base, name string) {
	t.Helper()
	theme, err := styling.Builtin(base)
	require.NoError(t, err)
	theme.Name = name
	theme.Description = "user copy of " + base
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".toml"), theme.ToTOML(), 0644))
}

func withCatalog(t *testing.T, ta *testApp) string {
	t.Helper()
	dir := t.TempDir()
	ta.Config.Styling.ThemeDir = dir
	ta.Config.Index.DatabasePath = filepath.Join(t.TempDir(), "themes.db")
	return dir
}

func TestDetectJSON(t *testing.T) {
	ta := newTestApp(t, "detect", "--json")
	var data DetectData
	ta.jsonData(t, &data)

	assert.Equal(t, "true_color", data.ColorSupport)
	assert.Equal(t, "#282a36", data.Background)
	assert.True(t, data.BgDetected)
	assert.Equal(t, "dark", data.TermBgLuma)
	assert.Equal(t, "dracula", data.Theme)
	assert.Equal(t, 100, data.Width)
}

func TestDetectText(t *testing.T) {
	ta := newTestApp(t, "detect")
	require.NoError(t, ta.run(t))
	assert.Contains(t, ta.out.String(), "#282a36")
	assert.Contains(t, ta.out.String(), "dracula")
}

func TestThemeFlag(t *testing.T) {
	ta := newTestApp(t, "detect", "--json", "--theme", "nord")
	var data DetectData
	ta.jsonData(t, &data)
	assert.Equal(t, "nord", data.Theme)

	ta = newTestApp(t, "detect", "--theme", "no_such_theme")
	err := ta.run(t)
	require.Error(t, err)
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

func TestThagThemeEnv(t *testing.T) {
	ta := newTestApp(t, "detect", "--json")
	ta.Getenv = detect.MapEnv(map[string]string{"THAG_THEME": "github"})
	var data DetectData
	ta.jsonData(t, &data)
	assert.Equal(t, "github", data.Theme)
}

func TestListFilters(t *testing.T) {
	ta := newTestApp(t, "list", "--light", "--json")
	var entries []ThemeListEntry
	ta.jsonData(t, &entries)
	require.NotEmpty(t, entries)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		assert.Equal(t, "light", e.TermBgLuma, e.Name)
		assert.True(t, e.Builtin)
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "github")

	ta = newTestApp(t, "list", "--support", "basic", "--json")
	entries = nil
	ta.jsonData(t, &entries)
	for _, e := range entries {
		assert.Equal(t, "basic", e.MinSupport, e.Name)
	}

	ta = newTestApp(t, "list", "--light", "--dark")
	err := ta.run(t)
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestListMarksCurrentTheme(t *testing.T) {
	ta := newTestApp(t, "list", "--dark")
	require.NoError(t, ta.run(t))
	assert.Contains(t, ta.out.String(), "* dracula")
	assert.Contains(t, ta.out.String(), "#282a36")
}

func TestShowFormats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"text", "Background"},
		{"toml", "[palette]"},
		{"yaml", "name: dracula"},
		{"json", `"name": "dracula"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			ta := newTestApp(t, "show", "dracula", "--format", tt.format)
			require.NoError(t, ta.run(t))
			assert.Contains(t, ta.out.String(), tt.want)
		})
	}
}

func TestShowText(t *testing.T) {
	ta := newTestApp(t, "show", "nord")
	require.NoError(t, ta.run(t))
	out := ta.out.String()
	for _, r := range styling.AllRoles() {
		assert.Contains(t, out, r.String())
	}
	assert.Contains(t, out, "#2e3440")
	assert.NotContains(t, out, "\x1b[", "colors are disabled")
}

func TestShowErrors(t *testing.T) {
	ta := newTestApp(t, "show", "dracula", "--format", "xml")
	err := ta.run(t)
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	ta = newTestApp(t, "show", "no_such_theme")
	err = ta.run(t)
	require.Error(t, err)
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

func TestExportSingleFormat(t *testing.T) {
	ta := newTestApp(t, "export", "dracula", "--format", "kitty")
	require.NoError(t, ta.run(t))

	path := filepath.Join(ta.Config.Export.OutputDir, "dracula.conf")
	assert.FileExists(t, path)
	assert.Contains(t, ta.out.String(), path)
	assert.Contains(t, ta.out.String(), "1 file(s) for dracula")
}

func TestExportAllFormats(t *testing.T) {
	ta := newTestApp(t, "export", "nord")
	require.NoError(t, ta.run(t))
	files, err := os.ReadDir(ta.Config.Export.OutputDir)
	require.NoError(t, err)
	assert.Len(t, files, 7)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	ta := newTestApp(t, "export", "nord", "--format", "kitty,xterm")
	err := ta.run(t)
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestExportFragment(t *testing.T) {
	ta := newTestApp(t, "export", "nord", "--fragment")
	require.NoError(t, ta.run(t))
	data, err := os.ReadFile(filepath.Join(ta.Config.Export.OutputDir, "nord_fragment.json"))
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestExportInstallWindowsTerminal(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.json")
	original := []byte("{\n    // user comment\n    \"profiles\": {\"list\": []},\n    \"schemes\": [\n        {\"name\": \"Campbell\"}\n    ]\n}\n")
	require.NoError(t, os.WriteFile(settings, original, 0644))

	ta := newTestApp(t, "export", "nord", "--install-wt", settings)
	require.NoError(t, ta.run(t))

	backup, err := os.ReadFile(settings + ".bak")
	require.NoError(t, err)
	assert.Equal(t, original, backup)
	merged, err := os.ReadFile(settings)
	require.NoError(t, err)
	assert.Contains(t, string(merged), `"nord"`)
	assert.Contains(t, string(merged), "// user comment")
	std, err := hujson.Standardize(merged)
	require.NoError(t, err)
	assert.True(t, json.Valid(std))
}

func TestSyncDryRun(t *testing.T) {
	ta := newTestApp(t, "sync", "dracula", "--dry-run")
	require.NoError(t, ta.run(t))
	lines := strings.Split(strings.TrimSpace(ta.out.String()), "\n")
	require.NotEmpty(t, lines)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, `"\x1b]`), l)
	}

	ta = newTestApp(t, "sync", "reset", "--dry-run")
	require.NoError(t, ta.run(t))
	assert.Contains(t, ta.out.String(), `\x1b]`)
}

func TestSyncApplyWritesSequences(t *testing.T) {
	ta := newTestApp(t, "sync", "nord")
	require.NoError(t, ta.run(t))
	assert.Contains(t, ta.out.String(), "\x1b]")

	ta = newTestApp(t, "sync")
	assert.Equal(t, ExitUsageError, GetExitCode(ta.run(t)))
}

func TestConvert(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dracula_basic.toml")
	ta := newTestApp(t, "convert", "dracula", "--support", "basic", "--output", out)
	require.NoError(t, ta.run(t))

	theme, err := styling.LoadFromFile(out)
	require.NoError(t, err)
	assert.Equal(t, styling.Basic, theme.MinColorSupport)
	for _, r := range styling.AllRoles() {
		fg := theme.StyleFor(r).Foreground
		require.NotNil(t, fg, r.String())
		assert.Equal(t, styling.ValueBasic, fg.Value.Kind, r.String())
	}

	ta = newTestApp(t, "convert", "dracula")
	assert.Equal(t, ExitUsageError, GetExitCode(ta.run(t)))
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := color.RGBA{R: 20, G: 24, B: 40, A: 255}
			switch {
			case x > 28:
				c = color.RGBA{R: 220, G: 80, B: 60, A: 255}
			case y > 28:
				c = color.RGBA{R: 90, G: 200, B: 120, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "wallpaper.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestImage(t *testing.T) {
	src := writeTestImage(t)
	out := filepath.Join(t.TempDir(), "wallpaper.toml")

	ta := newTestApp(t, "image", src, "--light", "--output", out)
	require.NoError(t, ta.run(t))
	theme, err := styling.LoadFromFile(out)
	require.NoError(t, err)
	assert.Equal(t, styling.Light, theme.TermBgLuma)

	ta = newTestApp(t, "image", src, "--colors", "500")
	assert.Equal(t, ExitUsageError, GetExitCode(ta.run(t)))

	ta = newTestApp(t, "image", filepath.Join(t.TempDir(), "missing.png"))
	assert.Equal(t, ExitNotFoundError, GetExitCode(ta.run(t)))
}

func TestHighlightStdin(t *testing.T) {
	code := "package main\n\nfunc main() {}\n"
	ta := newTestApp(t, "highlight", "--lang", "go")
	ta.Stdin = strings.NewReader(code)
	require.NoError(t, ta.run(t))
	assert.Equal(t, code, ta.out.String(), "no color means unchanged source")
}

func TestMarkdownFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Palette\n\nSome *text*.\n"), 0644))

	ta := newTestApp(t, "markdown", path, "--width", "60")
	require.NoError(t, ta.run(t))
	assert.Contains(t, ta.out.String(), "Palette")

	ta = newTestApp(t, "markdown", filepath.Join(t.TempDir(), "gone.md"))
	assert.Equal(t, ExitNotFoundError, GetExitCode(ta.run(t)))
}

func TestInteractiveCommandsNeedTTY(t *testing.T) {
	if IsTTY() {
		t.Skip("stdin is a terminal")
	}
	for _, cmd := range []string{"browse", "pick"} {
		ta := newTestApp(t, cmd)
		var ttyErr *TTYRequiredError
		assert.ErrorAs(t, ta.run(t), &ttyErr, cmd)
	}
}

func TestConfigCommands(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	ta := newTestApp(t, "config", "get", "ui.verbosity")
	require.NoError(t, ta.run(t))
	assert.Equal(t, "normal\n", ta.out.String())

	ta = newTestApp(t, "config", "get", "styling.fallback_dark")
	require.NoError(t, ta.run(t))
	assert.Equal(t, "dracula,basic_dark\n", ta.out.String())

	ta = newTestApp(t, "config", "get", "ui.nope")
	assert.Equal(t, ExitNotFoundError, GetExitCode(ta.run(t)))

	ta = newTestApp(t, "config", "set", "styling.preferred_dark", "nord,dracula")
	require.NoError(t, ta.run(t))
	assert.Equal(t, []string{"nord", "dracula"}, ta.Config.Styling.PreferredDark)

	path, err := config.ConfigPathTOML()
	require.NoError(t, err)
	saved, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"nord", "dracula"}, saved.Styling.PreferredDark)

	ta = newTestApp(t, "config", "keys")
	require.NoError(t, ta.run(t))
	assert.Contains(t, ta.out.String(), "styling.theme_dir")

	ta = newTestApp(t, "config", "frob")
	assert.Equal(t, ExitUsageError, GetExitCode(ta.run(t)))
}

func TestIndexNeedsThemeDir(t *testing.T) {
	ta := newTestApp(t, "index", "stats")
	err := ta.run(t)
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
}

func TestCatalogThemes(t *testing.T) {
	ta := newTestApp(t, "index", "stats", "--json")
	dir := withCatalog(t, ta)
	writeUserTheme(t, dir, "nord", "aurora")
	writeUserTheme(t, dir, "github", "paperwhite")

	var stats IndexStatsData
	ta.jsonData(t, &stats)
	assert.Equal(t, 2, stats.ThemeCount)
	assert.Equal(t, 1, stats.LightCount)
	assert.Equal(t, 1, stats.DarkCount)
	assert.NotEmpty(t, stats.LastIndexed)

	t.Run("list includes user themes", func(t *testing.T) {
		lt := newTestApp(t, "list", "--dark", "--json")
		lt.Config = ta.Config
		var entries []ThemeListEntry
		lt.jsonData(t, &entries)
		var found bool
		for _, e := range entries {
			if e.Name == "aurora" {
				found = true
				assert.False(t, e.Builtin)
				assert.Equal(t, "user copy of nord", e.Description)
			}
		}
		assert.True(t, found)
	})

	t.Run("search", func(t *testing.T) {
		st := newTestApp(t, "index", "search", "paper")
		st.Config = ta.Config
		require.NoError(t, st.run(t))
		assert.Equal(t, "paperwhite\n", st.out.String())
	})

	t.Run("rebuild", func(t *testing.T) {
		writeUserTheme(t, dir, "dracula", "vampire")
		rt := newTestApp(t, "index", "rebuild")
		rt.Config = ta.Config
		require.NoError(t, rt.run(t))
		assert.Contains(t, rt.out.String(), "Indexed 3 themes")
	})
}

func TestCatalogFollowsThemeDirChange(t *testing.T) {
	first := newTestApp(t, "index", "search", "aurora")
	dir := withCatalog(t, first)
	writeUserTheme(t, dir, "nord", "aurora")
	require.NoError(t, first.run(t))
	assert.Equal(t, "aurora\n", first.out.String())
	first.Close()

	other := t.TempDir()
	writeUserTheme(t, other, "nord", "borealis")
	second := newTestApp(t, "list", "--json")
	second.Config = first.Config.Clone()
	second.Config.Styling.ThemeDir = other

	var entries []ThemeListEntry
	second.jsonData(t, &entries)
	var names []string
	for _, e := range entries {
		if !e.Builtin {
			names = append(names, e.Name)
		}
	}
	assert.Equal(t, []string{"borealis"}, names)
}

func TestListTruncatesLongNames(t *testing.T) {
	ta := newTestApp(t, "list", "--dark")
	dir := withCatalog(t, ta)
	long := "midnight_harbor_after_the_storm_extended_edition"
	writeUserTheme(t, dir, "nord", long)

	require.NoError(t, ta.run(t))
	out := ta.out.String()
	assert.NotContains(t, out, long)
	assert.Contains(t, out, long[:maxNameColumn-3]+"...")
	assert.Contains(t, out, "(user)")
}

func TestUnknownCommandExitCode(t *testing.T) {
	ta := newTestApp(t, "frobnicate")
	err := ta.run(t)
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestCompleteNames(t *testing.T) {
	names := []string{"dracula", "Dark_Mode", "nord", "dawn"}
	assert.Equal(t, []string{"Dark_Mode", "dawn", "dracula"}, completeNames(names, "d"))
	assert.Equal(t, []string{"nord"}, completeNames(names, "NO"))
	assert.Empty(t, completeNames(names, "x"))
}

func TestFormatConfigValue(t *testing.T) {
	assert.Equal(t, "-", formatConfigValue(""))
	assert.Equal(t, "a,b", formatConfigValue([]string{"a", "b"}))
	assert.Equal(t, "1,2,3", formatConfigValue([]int{1, 2, 3}))
	assert.Equal(t, "true", formatConfigValue(true))
}
