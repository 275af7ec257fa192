// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jeranaias/thagstyle/internal/integrations"
	"github.com/jeranaias/thagstyle/internal/logging"
)

// HandleMarkdown renders a markdown file, or stdin, in the current theme.
func (a *App) HandleMarkdown(ctx context.Context) error {
	p := NewArgParser(a.Args.Raw)
	src := p.Positional(0)
	if src == "" {
		src = "-"
	}
	data, err := a.readInput(src)
	if err != nil {
		return err
	}
	attrs, err := a.Attributes(ctx)
	if err != nil {
		return err
	}

	width := p.FlagIntOrDefault("width", GetTerminalWidth())
	support := a.paintSupport(ctx)
	out, err := integrations.RenderMarkdown(attrs.Theme.WithColorSupport(support), string(data), width, support)
	if err != nil {
		return NewCommandError("markdown", src, "render", err)
	}
	fmt.Fprint(a.stdout(), out)
	return nil
}

// HandleHighlight syntax-highlights a source file, or stdin, in the
// current theme. The language comes from --lang, then the file name, then
// the content.
func (a *App) HandleHighlight(ctx context.Context) error {
	p := NewArgParser(a.Args.Raw)
	src := p.Positional(0)
	if src == "" {
		src = "-"
	}
	data, err := a.readInput(src)
	if err != nil {
		return err
	}
	attrs, err := a.Attributes(ctx)
	if err != nil {
		return err
	}

	lang := p.Flag("lang")
	if lang == "" && src != "-" {
		lang = filepath.Base(src)
	}
	if lang == "" {
		lang = integrations.LanguageOf(string(data))
		logging.Debugf("HIGHLIGHT | guessed language %q", lang)
	}

	out, err := integrations.Highlight(attrs.Theme, string(data), lang, a.paintSupport(ctx))
	if err != nil {
		return NewCommandError("highlight", src, "format", err)
	}
	fmt.Fprint(a.stdout(), out)
	return nil
}
