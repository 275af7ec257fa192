// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/thagstyle/internal/integrations"
	"github.com/jeranaias/thagstyle/internal/styling"
	"github.com/jeranaias/thagstyle/internal/util"
)

var showFormats = []string{"text", "toml", "yaml", "json"}

// HandleShow paints every role of a theme, or prints its definition.
func (a *App) HandleShow(ctx context.Context) error {
	p := NewArgParser(a.Args.Raw)
	format := strings.ToLower(p.Flag("format"))
	if format == "" {
		format = "text"
		if a.Args.JSON {
			format = "json"
		}
	}

	theme, err := a.loadTheme(ctx, p.Positional(0))
	if err != nil {
		return err
	}

	w := a.stdout()
	switch format {
	case "text":
		a.renderTheme(w, theme, a.paintSupport(ctx))
		return nil
	case "toml":
		_, err := w.Write(theme.ToTOML())
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(theme.ToDefinition()); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(theme.ToDefinition())
	default:
		return ErrUnsupportedFormat(format, showFormats)
	}
}

// renderTheme prints a role table painted at support.
func (a *App) renderTheme(w io.Writer, theme *styling.Theme, support styling.ColorSupport) {
	shown := theme.WithColorSupport(support)
	profile := integrations.ProfileFor(support)

	fmt.Fprintln(w, TitleStyle.Render(theme.Name))
	if theme.Description != "" {
		fmt.Fprintln(w, DimStyle.Render(util.TruncateWidth(theme.Description, GetTerminalWidth())))
	}
	bg := theme.BgHex()
	if bg == "" {
		bg = "none"
	}
	fmt.Fprintln(w, RenderLabel("Background")+ValueStyle.Render(bg))
	fmt.Fprintln(w, RenderLabel("Luma")+ValueStyle.Render(theme.TermBgLuma.String()))
	fmt.Fprintln(w, RenderLabel("Min support")+ValueStyle.Render(theme.MinColorSupport.String()))
	fmt.Fprintln(w)

	for _, r := range styling.AllRoles() {
		hex := styling.RGBToHex(theme.RoleRGB(r))
		label := util.PadRight(r.String(), 12)
		fmt.Fprintf(w, "  %s %s  %s\n", DimStyle.Render(label), DimStyle.Render(hex),
			integrations.TermenvStyle(profile, shown.StyleFor(r), r.Description()))
	}

	if profile == termenv.Ascii {
		return
	}
	fmt.Fprintln(w)
	ansi := theme.ANSIColorMap()
	for row := 0; row < 2; row++ {
		var b strings.Builder
		b.WriteString("  ")
		for i := row * 8; i < row*8+8; i++ {
			b.WriteString(profile.String("   ").Background(profile.Color(styling.RGBToHex(ansi[i]))).String())
		}
		fmt.Fprintln(w, b.String())
	}
}
