// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Shared command state: config, detection, catalog and theme.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jeranaias/thagstyle/internal/config"
	"github.com/jeranaias/thagstyle/internal/detect"
	"github.com/jeranaias/thagstyle/internal/index"
	"github.com/jeranaias/thagstyle/internal/logging"
	"github.com/jeranaias/thagstyle/internal/styling"
)

// App carries what every command needs. Zero-valued fields are filled from
// the process environment on first use, so tests inject only what they
// care about.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	Args   Args
	Config *config.Config
	Getenv detect.Env

	// Detect defaults to detect.DetectCached.
	Detect func(ctx context.Context, opts detect.Options) detect.Result

	detected *detect.Result
	catalog  *index.Catalog
	attrs    *styling.TermAttributes
}

// Main parses argv, runs the command and returns the process exit code.
func Main(ctx context.Context, argv []string) int {
	cmd, args := Parse(argv)
	app := &App{Args: args}
	defer app.Close()

	err := app.Run(ctx, cmd)
	if err != nil {
		if args.JSON {
			DisplayError(app.stdout(), err, true)
		} else {
			DisplayError(app.stderr(), err, false)
		}
	}
	return GetExitCode(err)
}

// Run executes cmd.
func (a *App) Run(ctx context.Context, cmd Command) error {
	switch cmd {
	case CmdHelp:
		PrintUsage(a.stdout())
		return nil
	case CmdVersion:
		return a.HandleVersion()
	case CmdUnknown:
		return NewValidationErrorWithExample("command", a.Args.Name, "unknown command", "thag help")
	}

	if err := a.setup(); err != nil {
		return err
	}

	switch cmd {
	case CmdDetect:
		return a.HandleDetect(ctx)
	case CmdList:
		return a.HandleList(ctx)
	case CmdShow:
		return a.HandleShow(ctx)
	case CmdExport:
		return a.HandleExport(ctx)
	case CmdSync:
		return a.HandleSync(ctx)
	case CmdConvert:
		return a.HandleConvert(ctx)
	case CmdImage:
		return a.HandleImage(ctx)
	case CmdBrowse:
		return a.HandleBrowse(ctx)
	case CmdMarkdown:
		return a.HandleMarkdown(ctx)
	case CmdHighlight:
		return a.HandleHighlight(ctx)
	case CmdPick:
		return a.HandlePick(ctx)
	case CmdConfig:
		return a.HandleConfig(ctx)
	case CmdIndex:
		return a.HandleIndex(ctx)
	}
	return NewValidationError("command", cmd.String(), "not implemented")
}

// Close releases the catalog.
func (a *App) Close() {
	if a.catalog != nil {
		a.catalog.Close()
		a.catalog = nil
	}
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads configuration and applies verbosity and color settings.
func (a *App) setup() error {
	if a.Config == nil {
		cfg, err := config.Load()
		switch {
		case cfg == nil:
			return &ConfigError{Err: err}
		case err != nil:
			logging.Warnf("CONFIG | %v; using defaults", err)
		}
		a.Config = cfg
		config.SetGlobal(cfg)
	}

	v, err := logging.ParseVerbosity(a.Config.UI.Verbosity)
	if err != nil {
		v = logging.Normal
	}
	switch {
	case a.Args.Debug:
		v = logging.Debug
	case a.Args.Verbose:
		v = logging.Verbose
	case a.Args.Quiet:
		v = logging.Quiet
	}
	logging.SetVerbosity(v)

	if a.Args.NoColor {
		ForceColorsEnabled(false)
	}
	return nil
}

func (a *App) stdout() io.Writer {
	if a.Stdout == nil {
		return os.Stdout
	}
	return a.Stdout
}

func (a *App) stderr() io.Writer {
	if a.Stderr == nil {
		return os.Stderr
	}
	return a.Stderr
}

func (a *App) stdin() io.Reader {
	if a.Stdin == nil {
		return os.Stdin
	}
	return a.Stdin
}

func (a *App) getenv(key string) string {
	if a.Getenv == nil {
		return os.Getenv(key)
	}
	return a.Getenv(key)
}

// =============================================================================
// DETECTION AND THEME RESOLUTION
// =============================================================================

// supportOverride is --support, then config.
func (a *App) supportOverride() (styling.ColorSupport, error) {
	if a.Args.Support != "" {
		s, err := styling.ParseColorSupport(a.Args.Support)
		if err != nil {
			return styling.Undetermined, NewValidationErrorWithExample("support", a.Args.Support, "unknown color support", "true_color")
		}
		return s, nil
	}
	return a.Config.ColorSupport(), nil
}

// detection runs terminal detection once per App.
func (a *App) detection(ctx context.Context) (detect.Result, error) {
	if a.detected != nil {
		return *a.detected, nil
	}
	support, err := a.supportOverride()
	if err != nil {
		return detect.Result{}, err
	}
	opts := detect.Options{
		Env: a.getenv,
		Overrides: detect.Overrides{
			Support: support,
			BgRGB:   a.Config.TermBgRGB(),
			Luma:    a.Config.TermBgLuma(),
		},
	}
	run := a.Detect
	if run == nil {
		run = detect.DetectCached
	}
	res := run(ctx, opts)
	a.detected = &res
	return res, nil
}

// Catalog opens and indexes the user theme directory. It returns nil
// without error when no theme_dir is configured.
func (a *App) Catalog(ctx context.Context) (*index.Catalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}
	dir := a.Config.ThemeDir()
	if dir == "" {
		return nil, nil
	}

	cfg := index.DefaultConfig(dir)
	if a.Config.Index.DatabasePath != "" {
		cfg.DatabasePath = a.Config.Index.DatabasePath
	}
	if a.Config.Index.WatchDebounceMs > 0 {
		cfg.WatchDebounce = time.Duration(a.Config.Index.WatchDebounceMs) * time.Millisecond
	}
	cat, err := index.NewCatalog(cfg)
	if err != nil {
		return nil, NewCommandError("index", "open", dir, err)
	}
	if !cat.IsIndexed() {
		if err := cat.Index(ctx); err != nil {
			cat.Close()
			return nil, NewCommandError("index", "build", dir, err)
		}
	}
	a.catalog = cat
	return cat, nil
}

// sources lists the catalog, when there is one, ahead of the builtins.
func (a *App) sources(ctx context.Context) []styling.ThemeSource {
	cat, err := a.Catalog(ctx)
	if err != nil {
		logging.Warnf("INDEX | %v; using builtin themes only", err)
		return nil
	}
	if cat == nil {
		return nil
	}
	return []styling.ThemeSource{cat}
}

// Selector returns a selector over the catalog and builtins.
func (a *App) Selector(ctx context.Context) *styling.Selector {
	return styling.NewSelector(a.Config.Preferences(), a.sources(ctx)...)
}

// Attributes resolves the terminal attributes and theme. The theme is
// --theme, then THAG_THEME, then the best match for the terminal.
func (a *App) Attributes(ctx context.Context) (*styling.TermAttributes, error) {
	if a.attrs != nil {
		return a.attrs, nil
	}
	res, err := a.detection(ctx)
	if err != nil {
		return nil, err
	}
	sources := a.sources(ctx)

	attrs := styling.Resolve(styling.InitOptions{
		Strategy: styling.StrategyMatch,
		Detect:   res.AsDetectFunc(),
		Prefs:    a.Config.Preferences(),
		Sources:  sources,
		Getenv:   a.getenv,
	})
	if a.Args.Theme != "" {
		attrs, err = attrs.WithTheme(a.Args.Theme, sources...)
		if err != nil {
			return nil, err
		}
	}

	ApplyTheme(attrs.Theme, outputSupport(attrs.ColorSupport))
	logging.Debugf("CLI | theme=%s support=%s luma=%s how=%s",
		themeName(attrs.Theme), attrs.ColorSupport, attrs.TermBgLuma, attrs.HowInitialized)
	a.attrs = attrs
	return attrs, nil
}

// paintSupport is the level output should be painted at.
func (a *App) paintSupport(ctx context.Context) styling.ColorSupport {
	attrs, err := a.Attributes(ctx)
	if err != nil {
		return styling.None
	}
	return outputSupport(attrs.ColorSupport)
}

// loadTheme resolves a theme argument. An empty name means the current
// theme. The full-fidelity theme is returned; callers convert as needed.
func (a *App) loadTheme(ctx context.Context, name string) (*styling.Theme, error) {
	if name == "" {
		attrs, err := a.Attributes(ctx)
		if err != nil {
			return nil, err
		}
		name = attrs.Theme.Name
	}
	t, err := a.Selector(ctx).Load(name)
	if err != nil {
		var se *styling.Error
		if errors.As(err, &se) && se.Kind == styling.KindUnknownTheme {
			return nil, NewNotFoundError("theme", name)
		}
		return nil, err
	}
	return t, nil
}

func themeName(t *styling.Theme) string {
	if t == nil {
		return "none"
	}
	return t.Name
}

// requireArg returns positional i or a usage error.
func requireArg(p *ArgParser, i int, name, usage string) (string, error) {
	if v := p.Positional(i); v != "" {
		return v, nil
	}
	return "", ErrMissingArgument(name, usage)
}

// readInput reads a file argument, with "-" meaning stdin.
func (a *App) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(a.stdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewNotFoundError("file", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
