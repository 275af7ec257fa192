// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/thagstyle/internal/config"
	"github.com/jeranaias/thagstyle/internal/logging"
)

// themePicker is a line-editing prompt with tab completion over theme names.
type themePicker struct {
	line        *liner.State
	historyFile string
}

func newThemePicker(names []string) *themePicker {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		return completeNames(names, prefix)
	})

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	p := &themePicker{line: line, historyFile: filepath.Join(dir, "pick_history")}
	if f, err := os.Open(p.historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	return p
}

func (p *themePicker) prompt(text string) (string, error) {
	in, err := p.line.Prompt(text)
	if err != nil {
		return "", err
	}
	in = strings.TrimSpace(in)
	if in != "" {
		p.line.AppendHistory(in)
	}
	return in, nil
}

func (p *themePicker) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(p.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			p.line.WriteHistory(f)
			f.Close()
		}
	}
	p.line.Close()
}

// completeNames returns the names starting with prefix, case-insensitively.
func completeNames(names []string, prefix string) []string {
	prefix = strings.ToLower(prefix)
	var out []string
	for _, n := range names {
		if strings.HasPrefix(strings.ToLower(n), prefix) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// HandlePick prompts for theme names, previewing each one. An empty line
// accepts the last previewed theme and prints its name.
func (a *App) HandlePick(ctx context.Context) error {
	if err := RequiresTTY("pick a theme"); err != nil {
		return err
	}
	sel := a.Selector(ctx)
	names := sel.Names()
	support := a.paintSupport(ctx)
	settleTerminal(ctx)

	picker := newThemePicker(names)
	defer picker.Close()

	w := a.stdout()
	fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("%d themes. Tab completes, enter on an empty line accepts, ctrl+c quits.", len(names))))

	var current string
	for {
		in, err := picker.prompt("theme> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(w)
				return nil
			}
			return NewCommandError("pick", "prompt", "read input", err)
		}
		if in == "" {
			if current == "" {
				continue
			}
			fmt.Fprintln(w, current)
			return nil
		}

		theme, err := sel.Load(in)
		if err != nil {
			if matches := completeNames(names, in); len(matches) > 0 {
				fmt.Fprintln(w, WarningStyle.Render("no theme "+in+"; did you mean: "+strings.Join(matches, ", ")))
			} else {
				fmt.Fprintln(w, ErrorStyle.Render("no theme "+in))
			}
			logging.Debugf("PICK | load %s: %v", in, err)
			continue
		}
		a.renderTheme(w, theme, support)
		current = theme.Name
	}
}
