// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/thagstyle/internal/styling"
	"github.com/jeranaias/thagstyle/internal/util"
)

// HandleConvert writes a theme reduced to a lower color support level.
func (a *App) HandleConvert(ctx context.Context) error {
	p := NewArgParser(a.Args.Raw)
	name, err := requireArg(p, 0, "theme", "thag convert dracula --support color256 --output dracula_256.toml")
	if err != nil {
		return err
	}
	if a.Args.Support == "" {
		return ErrMissingArgument("--support", "thag convert dracula --support basic")
	}
	target, err := styling.ParseColorSupport(a.Args.Support)
	if err != nil || target == styling.Undetermined {
		return NewValidationErrorWithExample("support", a.Args.Support, "unknown color support", "color256")
	}

	theme, err := a.loadTheme(ctx, name)
	if err != nil {
		return err
	}
	converted := theme.WithColorSupport(target)
	data := converted.ToTOML()

	out := p.Flag("output")
	if out == "" {
		_, err := a.stdout().Write(data)
		return err
	}
	if err := util.AtomicWriteFile(out, data, 0644); err != nil {
		return NewCommandError("convert", theme.Name, out, err)
	}
	fmt.Fprintf(a.stdout(), "%s %s (%s)\n", SuccessStyle.Render("Wrote"), out, converted.MinColorSupport)
	return nil
}
