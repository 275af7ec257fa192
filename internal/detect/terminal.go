// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// probeRGB is written with OSC 10 and read back to test for 24-bit color.
var probeRGB = [3]uint8{0x7b, 0xea, 0x2d}

// probeTolerance is the per-channel slack allowed in the read-back.
const probeTolerance = 50

// Terminal is the live side of detection.
type Terminal interface {
	IsTTY() bool
	Profile() termenv.Profile
	// ProbeTrueColor sets an unusual foreground, reads it back and restores
	// the original. A faithful read-back means 24-bit color works.
	ProbeTrueColor(ctx context.Context) bool
	// Background queries the background color with OSC 11.
	Background(ctx context.Context) ([3]uint8, bool)
	// Size returns columns and rows, or zeros when unknown.
	Size() (int, int)
}

// TTY is a Terminal on a real file descriptor.
type TTY struct {
	f   *os.File
	out *termenv.Output
}

// envAdapter lets termenv read our Env instead of the process environment.
type envAdapter struct{ env Env }

func (e envAdapter) Environ() []string { return os.Environ() }
func (e envAdapter) Getenv(key string) string { return e.env(key) }

// NewTTY wraps f (usually os.Stdout).
func NewTTY(f *os.File, env Env) *TTY {
	if f == nil {
		f = os.Stdout
	}
	if env == nil {
		env = OSEnv
	}
	return &TTY{
		f:   f,
		out: termenv.NewOutput(f, termenv.WithEnvironment(envAdapter{env}), termenv.WithColorCache(false)),
	}
}

// Output exposes the termenv output for callers that render through it.
func (t *TTY) Output() *termenv.Output { return t.out }

// IsTTY reports whether f is a terminal.
func (t *TTY) IsTTY() bool {
	return term.IsTerminal(int(t.f.Fd()))
}

// Profile is termenv's environment-based color profile.
func (t *TTY) Profile() termenv.Profile {
	return t.out.EnvColorProfile()
}

// Size returns the terminal dimensions.
func (t *TTY) Size() (int, int) {
	w, h, err := term.GetSize(int(t.f.Fd()))
	if err != nil {
		return 0, 0
	}
	return w, h
}

// Background queries OSC 11. termenv falls back to COLORFGBG or black when
// the terminal stays silent, so only an RGB answer counts as detected.
func (t *TTY) Background(ctx context.Context) ([3]uint8, bool) {
	if !t.IsTTY() {
		return [3]uint8{}, false
	}
	c, ok := withTimeout(ctx, t.out.BackgroundColor)
	if !ok {
		return [3]uint8{}, false
	}
	return rgbFromTermenv(c)
}

// ProbeTrueColor implements Terminal.
func (t *TTY) ProbeTrueColor(ctx context.Context) bool {
	if !t.IsTTY() {
		return false
	}
	result, ok := withTimeout(ctx, func() bool {
		orig, origOK := rgbFromTermenv(t.out.ForegroundColor())

		_, _ = t.out.WriteString(oscSet(10, probeRGB))
		got, gotOK := rgbFromTermenv(t.out.ForegroundColor())

		if origOK {
			_, _ = t.out.WriteString(oscSet(10, orig))
		} else {
			_, _ = t.out.WriteString("\x1b]110\x07")
		}
		return gotOK && withinTolerance(got, probeRGB, probeTolerance)
	})
	return ok && result
}

func rgbFromTermenv(c termenv.Color) ([3]uint8, bool) {
	rgb, isRGB := c.(termenv.RGBColor)
	if !isRGB {
		return [3]uint8{}, false
	}
	v, err := ParseOSCColor(string(rgb))
	if err != nil {
		return [3]uint8{}, false
	}
	return v, true
}

func oscSet(code int, rgb [3]uint8) string {
	return fmt.Sprintf("\x1b]%d;rgb:%02x%02x/%02x%02x/%02x%02x\x07", code,
		rgb[0], rgb[0], rgb[1], rgb[1], rgb[2], rgb[2])
}

func withinTolerance(a, b [3]uint8, tol int) bool {
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		if d > tol {
			return false
		}
	}
	return true
}

var (
	// queryMu keeps OSC exchanges from interleaving on the terminal.
	queryMu sync.Mutex
	// inflight counts queries, including ones a caller stopped waiting for.
	inflight sync.WaitGroup
)

// withTimeout runs fn in the background and gives up when ctx ends. The
// goroutine is not interrupted: it stays blocked in termenv's read, which
// times out after oscReadTimeout, and may consume a late reply from
// stdin until then. Call Settle before handing stdin to another reader.
func withTimeout[T any](ctx context.Context, fn func() T) (T, bool) {
	ch := make(chan T, 1)
	inflight.Add(1)
	go func() {
		defer inflight.Done()
		queryMu.Lock()
		defer queryMu.Unlock()
		ch <- fn()
	}()
	select {
	case v := <-ch:
		return v, true
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}

// Settle waits for abandoned terminal queries to finish reading. It reports
// false when ctx ends first.
func Settle(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

// oscReadTimeout mirrors termenv's unix OSCTimeout, which bounds each read.
const oscReadTimeout = 5 * time.Second

// SettleTimeout is the longest Settle needs to wait for a silent terminal.
const SettleTimeout = oscReadTimeout + 100*time.Millisecond
