// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/thagstyle/internal/export"
	"github.com/jeranaias/thagstyle/internal/util"
)

// HandleExport writes terminal emulator color schemes for a theme.
func (a *App) HandleExport(ctx context.Context) error {
	p := NewArgParser(a.Args.Raw, "fragment", "open")
	name, err := requireArg(p, 0, "theme", "thag export dracula --format all --output ./schemes")
	if err != nil {
		return err
	}
	theme, err := a.loadTheme(ctx, name)
	if err != nil {
		return err
	}

	dir := p.FlagOrDefault("output", a.Config.Export.OutputDir)
	w := a.stdout()

	if settings := p.Flag("install-wt"); settings != "" {
		return a.installWindowsTerminal(settings, theme.Name, func(data []byte) ([]byte, error) {
			return export.MergeWindowsTerminalSettings(data, theme)
		})
	}

	if p.BoolFlag("fragment") {
		data, err := export.WindowsTerminalFragment(theme)
		if err != nil {
			return NewCommandError("export", "fragment", theme.Name, err)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return NewCommandError("export", "fragment", "create output directory", err)
		}
		path := filepath.Join(dir, export.SanitizeFilename(theme.Name)+"_fragment.json")
		if err := util.AtomicWriteFile(path, data, 0644); err != nil {
			return NewCommandError("export", "fragment", path, err)
		}
		fmt.Fprintln(w, SuccessStyle.Render("Wrote")+" "+path)
		fmt.Fprintln(w, DimStyle.Render("Copy it to %LOCALAPPDATA%\\Microsoft\\Windows Terminal\\Fragments\\thag\\"))
		return nil
	}

	formats, err := a.exportFormats(p.FlagOrDefault("format", "all"))
	if err != nil {
		return err
	}

	var written int
	for _, f := range formats {
		path, err := export.ExportToFile(theme, f, &export.Options{
			OutputDir:       dir,
			OpenAfterExport: p.BoolFlag("open") || a.Config.Export.OpenAfterExport,
		})
		if err != nil {
			return NewCommandError("export", f.String(), theme.Name, err)
		}
		written++
		fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("Wrote"), path)
		if len(formats) == 1 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, export.InstallationInstructions(f, filepath.Base(path)))
		}
	}
	fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("%d file(s) for %s", written, theme.Name)))
	return nil
}

// exportFormats resolves --format. "all" means the configured list.
func (a *App) exportFormats(spec string) ([]export.Format, error) {
	if strings.EqualFold(spec, "all") {
		return a.Config.ExportFormats(), nil
	}
	var out []export.Format
	for _, id := range strings.Split(spec, ",") {
		f, err := export.ParseFormat(id)
		if err != nil {
			return nil, ErrUnsupportedFormat(id, append(export.FormatIDs(), "all"))
		}
		out = append(out, f)
	}
	return out, nil
}

// installWindowsTerminal rewrites settings in place, keeping a backup.
func (a *App) installWindowsTerminal(settings, theme string, merge func([]byte) ([]byte, error)) error {
	data, err := os.ReadFile(settings)
	if err != nil {
		if os.IsNotExist(err) {
			return NewNotFoundError("settings file", settings)
		}
		return NewCommandError("export", "install", settings, err)
	}
	backup := settings + ".bak"
	if err := util.AtomicWriteFile(backup, data, 0644); err != nil {
		return NewCommandError("export", "install", "write backup", err)
	}
	merged, err := merge(data)
	if err != nil {
		return NewCommandError("export", "install", "merge scheme", err)
	}
	if err := util.AtomicWriteFile(settings, merged, 0644); err != nil {
		return NewCommandError("export", "install", settings, err)
	}
	fmt.Fprintf(a.stdout(), "%s %s into %s (backup: %s)\n",
		SuccessStyle.Render("Installed"), theme, settings, backup)
	return nil
}
