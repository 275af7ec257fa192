// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/thagstyle/internal/logging"
	"github.com/jeranaias/thagstyle/internal/styling"
	"github.com/jeranaias/thagstyle/internal/util"
)

// listFilter narrows list output.
type listFilter struct {
	luma    styling.TermBgLuma
	support styling.ColorSupport
}

func (f listFilter) keep(t *styling.Theme) bool {
	if f.luma != styling.LumaUndetermined && t.TermBgLuma != f.luma {
		return false
	}
	if f.support != styling.Undetermined && t.MinColorSupport > f.support {
		return false
	}
	return true
}

// HandleList lists every theme the selector can load.
func (a *App) HandleList(ctx context.Context) error {
	p := NewArgParser(a.Args.Raw, "light", "dark")

	var f listFilter
	switch {
	case p.BoolFlag("light") && p.BoolFlag("dark"):
		return NewValidationError("flags", "--light --dark", "choose one of --light or --dark")
	case p.BoolFlag("light"):
		f.luma = styling.Light
	case p.BoolFlag("dark"):
		f.luma = styling.Dark
	}
	if a.Args.Support != "" {
		s, err := a.supportOverride()
		if err != nil {
			return err
		}
		f.support = s
	}

	entries, err := a.themeEntries(ctx, f)
	if err != nil {
		return err
	}
	if a.Args.JSON {
		return NewJSONResponse("list", entries).Print(a.stdout())
	}

	current := ""
	if attrs, err := a.Attributes(ctx); err == nil {
		current = themeName(attrs.Theme)
	}

	nameWidth := len("NAME")
	for _, e := range entries {
		if w := util.StringWidth(e.Name); w > nameWidth {
			nameWidth = w
		}
	}
	if nameWidth > maxNameColumn {
		nameWidth = maxNameColumn
	}

	w := a.stdout()
	fmt.Fprintln(w, DimStyle.Render("  "+util.PadRight("NAME", nameWidth)+"  "+util.PadRight("LUMA", 6)+util.PadRight("SUPPORT", 12)+"BACKGROUNDS"))
	for _, e := range entries {
		marker := "  "
		name := util.PadRight(util.TruncateWidth(e.Name, nameWidth), nameWidth)
		if e.Name == current {
			marker = SuccessStyle.Render("*") + " "
			name = InfoStyle.Render(name)
		}
		source := ""
		if !e.Builtin {
			source = DimStyle.Render(" (user)")
		}
		fmt.Fprintf(w, "%s%s  %s%s%s%s\n", marker, name,
			util.PadRight(e.TermBgLuma, 6), util.PadRight(e.MinSupport, 12),
			strings.Join(e.Backgrounds, " "), source)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, DimStyle.Render("no themes match"))
	}
	return nil
}

// maxNameColumn caps the NAME column so long file-derived names stay on one line.
const maxNameColumn = 32

// themeEntries loads and filters every known theme.
func (a *App) themeEntries(ctx context.Context, f listFilter) ([]ThemeListEntry, error) {
	sel := a.Selector(ctx)
	var out []ThemeListEntry
	for _, name := range sel.Names() {
		t, err := sel.Load(name)
		if err != nil {
			logging.Warnf("CLI | skip theme %s: %v", name, err)
			continue
		}
		if !f.keep(t) {
			continue
		}
		bgs := t.Backgrounds
		if bgs == nil {
			bgs = []string{}
		}
		out = append(out, ThemeListEntry{
			Name:        t.Name,
			TermBgLuma:  t.TermBgLuma.String(),
			MinSupport:  t.MinColorSupport.String(),
			Backgrounds: bgs,
			Builtin:     t.IsBuiltin,
			Description: t.Description,
		})
	}
	return out, nil
}
