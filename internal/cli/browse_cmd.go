// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/thagstyle/internal/index"
	"github.com/jeranaias/thagstyle/internal/logging"
	"github.com/jeranaias/thagstyle/internal/ui/browser"
)

// HandleBrowse opens the interactive theme browser and prints the chosen
// theme name.
func (a *App) HandleBrowse(ctx context.Context) error {
	if err := RequiresTTY("browse"); err != nil {
		return err
	}
	attrs, err := a.Attributes(ctx)
	if err != nil {
		return err
	}
	settleTerminal(ctx)

	var changes <-chan index.Change
	cat, err := a.Catalog(ctx)
	if err != nil {
		logging.Warnf("INDEX | %v", err)
	}
	if cat != nil && a.Config.UI.WatchThemeDir {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := cat.Watch(watchCtx); err != nil {
			logging.Warnf("INDEX | watch %s: %v", cat.ThemeDir(), err)
		} else {
			changes = cat.Changes()
		}
	}

	choice, err := browser.Run(ctx, browser.Options{
		Attrs:     attrs,
		Selector:  a.Selector(ctx),
		Changes:   changes,
		OutputDir: a.Config.Export.OutputDir,
	})
	if err != nil {
		return NewCommandError("browse", "run", "theme browser", err)
	}
	if choice != "" {
		fmt.Fprintln(a.stdout(), choice)
	}
	return nil
}
