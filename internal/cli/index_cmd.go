// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/thagstyle/internal/index"
)

// HandleIndex manages the catalog of user themes in theme_dir.
//
//	thag index rebuild
//	thag index stats
//	thag index search <query>
func (a *App) HandleIndex(ctx context.Context) error {
	p := NewArgParser(a.Args.Raw)
	sub := p.Subcommand()
	if sub == "" {
		sub = "stats"
	}

	cat, err := a.Catalog(ctx)
	if err != nil {
		return err
	}
	if cat == nil {
		return &ConfigError{Err: fmt.Errorf("styling.theme_dir is not set; try: thag config set styling.theme_dir ~/.config/thag/themes")}
	}
	w := a.stdout()

	switch sub {
	case "rebuild":
		start := time.Now()
		if err := cat.Index(ctx); err != nil {
			return NewCommandError("index", "rebuild", cat.ThemeDir(), err)
		}
		if a.Args.JSON {
			return a.printIndexStats(cat)
		}
		fmt.Fprintf(w, "%s %d themes from %s in %s\n", SuccessStyle.Render("Indexed"),
			cat.ThemeCount(), cat.ThemeDir(), time.Since(start).Round(time.Millisecond))
		return nil

	case "stats":
		return a.printIndexStats(cat)

	case "search":
		query, err := requireArg(p, 1, "query", "thag index search nord")
		if err != nil {
			return err
		}
		names, err := cat.Search(query)
		if err != nil {
			return NewCommandError("index", "search", query, err)
		}
		if a.Args.JSON {
			return NewJSONResponse("index search", names).Print(w)
		}
		for _, n := range names {
			fmt.Fprintln(w, n)
		}
		return nil
	}
	return NewValidationErrorWithExample("index", sub, "unknown subcommand", "rebuild, stats, search")
}

func (a *App) printIndexStats(cat *index.Catalog) error {
	s, err := cat.Stats()
	if err != nil {
		return NewCommandError("index", "stats", cat.ThemeDir(), err)
	}
	data := IndexStatsData{
		ThemeDir:        s.ThemeDir,
		DatabasePath:    cat.DatabasePath(),
		ThemeCount:      s.ThemeCount,
		LightCount:      s.LightCount,
		DarkCount:       s.DarkCount,
		BackgroundCount: s.BackgroundCount,
		DatabaseSize:    s.DatabaseSize,
	}
	if !s.LastIndexed.IsZero() {
		data.LastIndexed = s.LastIndexed.Format(time.RFC3339)
	}

	w := a.stdout()
	if a.Args.JSON {
		return NewJSONResponse("index stats", data).Print(w)
	}
	last := data.LastIndexed
	if last == "" {
		last = "never"
	}
	fmt.Fprintln(w, TitleStyle.Render("Theme catalog"))
	fmt.Fprintln(w, RenderLabel("Directory")+ValueStyle.Render(data.ThemeDir))
	fmt.Fprintln(w, RenderLabel("Database")+ValueStyle.Render(data.DatabasePath))
	fmt.Fprintln(w, RenderLabel("Themes")+ValueStyle.Render(fmt.Sprintf("%d (%d light, %d dark)", data.ThemeCount, data.LightCount, data.DarkCount)))
	fmt.Fprintln(w, RenderLabel("Backgrounds")+ValueStyle.Render(fmt.Sprint(data.BackgroundCount)))
	fmt.Fprintln(w, RenderLabel("Database size")+ValueStyle.Render(fmt.Sprintf("%d bytes", data.DatabaseSize)))
	fmt.Fprintln(w, RenderLabel("Last indexed")+ValueStyle.Render(last))
	return nil
}
