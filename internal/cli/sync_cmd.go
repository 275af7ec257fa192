// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jeranaias/thagstyle/internal/palettesync"
)

// HandleSync rewrites the terminal's 16-color palette to match a theme, or
// restores the terminal's own palette with "sync reset".
func (a *App) HandleSync(ctx context.Context) error {
	p := NewArgParser(a.Args.Raw, "dry-run", "demo")
	target, err := requireArg(p, 0, "theme", "thag sync dracula | thag sync reset")
	if err != nil {
		return err
	}
	w := a.stdout()
	sync := palettesync.NewSync(w)

	if target == "reset" {
		if p.BoolFlag("dry-run") {
			printQuoted(a, palettesync.ResetSequences())
			return nil
		}
		if err := sync.Reset(); err != nil {
			return NewCommandError("sync", "reset", "write sequences", err)
		}
		return nil
	}

	theme, err := a.loadTheme(ctx, target)
	if err != nil {
		return err
	}
	if p.BoolFlag("dry-run") {
		printQuoted(a, palettesync.Sequences(theme))
		return nil
	}
	if err := sync.Apply(theme); err != nil {
		return NewCommandError("sync", theme.Name, "write sequences", err)
	}
	if p.BoolFlag("demo") {
		palettesync.Demonstrate(w)
	}
	return nil
}

func printQuoted(a *App, seqs []string) {
	for _, s := range seqs {
		fmt.Fprintln(a.stdout(), strconv.Quote(s))
	}
}
