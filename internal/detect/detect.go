// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/muesli/termenv"

	"github.com/jeranaias/thagstyle/internal/logging"
	"github.com/jeranaias/thagstyle/internal/styling"
)

// DefaultQueryTimeout bounds the OSC background query and the true color probe.
const DefaultQueryTimeout = 500 * time.Millisecond

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Overrides are configured values that replace detection. Zero values mean
// "detect it".
type Overrides struct {
	Support styling.ColorSupport
	BgRGB   *[3]uint8
	Luma    styling.TermBgLuma
}

// Options configures Detect.
type Options struct {
	Env       Env
	Terminal  Terminal
	Timeout   time.Duration
	Overrides Overrides
	// SkipQueries disables the OSC probe and background query.
	SkipQueries bool
}

// Result is everything detection learned about the terminal.
type Result struct {
	Support    styling.ColorSupport
	BgRGB      [3]uint8
	BgDetected bool
	Luma       styling.TermBgLuma
	Profile    termenv.Profile
	IsTTY      bool
	Width      int
	Height     int
}

// BgHex returns the background as "#rrggbb", or empty when unknown.
func (r Result) BgHex() string {
	if !r.BgDetected {
		return ""
	}
	return styling.RGBToHex(r.BgRGB)
}

// BgPtr returns the background for APIs that take an optional color.
func (r Result) BgPtr() *[3]uint8 {
	if !r.BgDetected {
		return nil
	}
	bg := r.BgRGB
	return &bg
}

// AsDetectFunc adapts the result for styling.InitOptions.
func (r Result) AsDetectFunc() styling.DetectFunc {
	return func() (styling.ColorSupport, *[3]uint8, styling.TermBgLuma) {
		return r.Support, r.BgPtr(), r.Luma
	}
}

// String is a one-line summary for logs.
func (r Result) String() string {
	bg := r.BgHex()
	if bg == "" {
		bg = "unknown"
	}
	return fmt.Sprintf("support=%s bg=%s luma=%s tty=%t", r.Support, bg, r.Luma, r.IsTTY)
}

// =============================================================================
// DETECTION
// =============================================================================

// LumaFromRGB classifies a background color.
func LumaFromRGB(rgb [3]uint8) styling.TermBgLuma {
	return styling.LumaFor(rgb)
}

// DetectBackground queries the terminal background with OSC 11.
func DetectBackground(ctx context.Context, t Terminal, timeout time.Duration) ([3]uint8, bool) {
	if t == nil || !t.IsTTY() {
		return [3]uint8{}, false
	}
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return t.Background(ctx)
}

// Detect runs the full detection pass. Overrides replace the matching
// detected values; luma is derived from the background unless overridden.
func Detect(ctx context.Context, opts Options) Result {
	env := opts.Env
	if env == nil {
		env = OSEnv
	}
	t := opts.Terminal
	if t == nil {
		t = NewTTY(nil, env)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}

	res := Result{
		IsTTY:   t.IsTTY(),
		Profile: t.Profile(),
		Luma:    styling.DefaultTermBgLuma,
	}
	res.Width, res.Height = t.Size()

	probeTerm := t
	if opts.SkipQueries {
		probeTerm = noProbe{t}
	}

	if opts.Overrides.Support != styling.Undetermined {
		res.Support = opts.Overrides.Support
	} else {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		res.Support = DetectColorSupport(pctx, env, probeTerm)
		cancel()
	}

	switch {
	case opts.Overrides.BgRGB != nil:
		res.BgRGB, res.BgDetected = *opts.Overrides.BgRGB, true
	case !opts.SkipQueries && env("TEST_ENV") == "":
		res.BgRGB, res.BgDetected = DetectBackground(ctx, t, timeout)
	}

	switch {
	case opts.Overrides.Luma != styling.LumaUndetermined:
		res.Luma = opts.Overrides.Luma
	case res.BgDetected:
		res.Luma = LumaFromRGB(res.BgRGB)
	}

	logging.Verbosef("DETECT | %s", res)
	return res
}

// noProbe hides live queries from DetectColorSupport.
type noProbe struct{ Terminal }

func (noProbe) ProbeTrueColor(context.Context) bool { return false }

// =============================================================================
// CACHE
// =============================================================================

var (
	cache         *Result
	cacheTime     time.Time
	cacheMu       sync.Mutex
	cacheDuration = 5 * time.Minute
)

// DetectCached returns a recent detection result when one exists. Querying
// the terminal is slow and visible, so repeat callers should use this.
func DetectCached(ctx context.Context, opts Options) Result {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cache != nil && time.Since(cacheTime) < cacheDuration {
		return *cache
	}
	res := Detect(ctx, opts)
	cache = &res
	cacheTime = time.Now()
	return res
}

// ClearCache forces the next DetectCached to query again.
func ClearCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = nil
	cacheTime = time.Time{}
}
