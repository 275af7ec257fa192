// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jeranaias/thagstyle/internal/imagetheme"
	"github.com/jeranaias/thagstyle/internal/styling"
	"github.com/jeranaias/thagstyle/internal/util"
)

// HandleImage generates a theme from the dominant colors of an image.
func (a *App) HandleImage(ctx context.Context) error {
	p := NewArgParser(a.Args.Raw, "light", "dark", "preview")
	path, err := requireArg(p, 0, "image", "thag image wallpaper.png --dark --output wallpaper.toml")
	if err != nil {
		return err
	}

	cfg := imagetheme.DefaultConfig()
	cfg.Name = p.Flag("name")
	switch {
	case p.BoolFlag("light") && p.BoolFlag("dark"):
		return NewValidationError("--light/--dark", "both", "choose one")
	case p.BoolFlag("light"):
		cfg.ForceLuma = styling.Light
	case p.BoolFlag("dark"):
		cfg.ForceLuma = styling.Dark
	}
	if p.HasFlag("colors") {
		n, err := ParseIntWithValidation(p.Flag("colors"), "colors")
		if err != nil {
			return err
		}
		if n < 4 || n > 64 {
			return NewValidationError("colors", p.Flag("colors"), "must be between 4 and 64")
		}
		cfg.ColorCount = n
	}

	theme, err := imagetheme.GenerateFromFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewNotFoundError("image", path)
		}
		return NewCommandError("image", path, "generate theme", err)
	}

	if p.BoolFlag("preview") {
		a.renderTheme(a.stdout(), theme, a.paintSupport(ctx))
	}

	data := theme.ToTOML()
	out := p.Flag("output")
	if out == "" {
		if p.BoolFlag("preview") {
			return nil
		}
		_, err := a.stdout().Write(data)
		return err
	}
	if err := util.AtomicWriteFile(out, data, 0644); err != nil {
		return NewCommandError("image", theme.Name, out, err)
	}
	fmt.Fprintf(a.stdout(), "%s %s (%s, %s)\n", SuccessStyle.Render("Wrote"), out, theme.Name, theme.TermBgLuma)
	return nil
}
