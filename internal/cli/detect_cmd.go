// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jeranaias/thagstyle/internal/detect"
)

// HandleDetect prints what detection learned and the theme it picked.
func (a *App) HandleDetect(ctx context.Context) error {
	res, err := a.detection(ctx)
	if err != nil {
		return err
	}
	attrs, err := a.Attributes(ctx)
	if err != nil {
		return err
	}

	data := DetectData{
		ColorSupport:   res.Support.String(),
		Background:     res.BgHex(),
		BgDetected:     res.BgDetected,
		TermBgLuma:     res.Luma.String(),
		IsTTY:          res.IsTTY,
		Width:          res.Width,
		Height:         res.Height,
		Theme:          themeName(attrs.Theme),
		HowInitialized: attrs.HowInitialized.String(),
		Hints:          detect.Diagnose(res, a.getenv),
	}
	if a.Args.JSON {
		return NewJSONResponse("detect", data).Print(a.stdout())
	}

	w := a.stdout()
	bg := data.Background
	if bg == "" {
		bg = "unknown"
	}
	fmt.Fprintln(w, TitleStyle.Render("Terminal"))
	fmt.Fprintln(w, RenderLabel("Color support")+ValueStyle.Render(data.ColorSupport))
	fmt.Fprintln(w, RenderLabel("Background")+ValueStyle.Render(bg))
	fmt.Fprintln(w, RenderLabel("Background luma")+ValueStyle.Render(data.TermBgLuma))
	fmt.Fprintln(w, RenderLabel("TTY")+ValueStyle.Render(fmt.Sprintf("%t (%dx%d)", data.IsTTY, data.Width, data.Height)))
	fmt.Fprintln(w, RenderLabel("Theme")+InfoStyle.Render(data.Theme)+DimStyle.Render(" ("+data.HowInitialized+")"))

	if len(data.Hints) > 0 {
		fmt.Fprintln(w, SectionStyle.Render("Hints"))
		for _, h := range data.Hints {
			fmt.Fprintln(w, "  "+WarningStyle.Render("•")+" "+h)
		}
	}
	return nil
}

// HandleVersion prints version information.
func (a *App) HandleVersion() error {
	if a.Args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print(a.stdout())
	}
	PrintVersion(a.stdout())
	return nil
}
