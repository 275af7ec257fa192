// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import (
	"os"
	"sync"

	"github.com/jeranaias/thagstyle/internal/logging"
)

// HowInitialized records which strategy produced a TermAttributes.
type HowInitialized int

const (
	// Configured means support and luma came from configuration.
	Configured HowInitialized = iota
	// Defaulted means nothing was known and safe defaults were used.
	Defaulted
	// Detected means the terminal was queried.
	Detected
)

func (h HowInitialized) String() string {
	switch h {
	case Configured:
		return "configured"
	case Defaulted:
		return "defaulted"
	case Detected:
		return "detected"
	default:
		return "unknown"
	}
}

// Strategy selects how Initialize resolves terminal attributes.
type Strategy int

const (
	// StrategyConfigure uses the Support, Luma and BgRGB given in InitOptions.
	StrategyConfigure Strategy = iota
	// StrategyDefault uses basic_dark at Basic support.
	StrategyDefault
	// StrategyMatch detects the terminal and auto-selects a matching theme.
	StrategyMatch
)

// DetectFunc reports what detection found: color support, background color
// (nil when unknown) and background luma.
type DetectFunc func() (ColorSupport, *[3]uint8, TermBgLuma)

// InitOptions configures Initialize.
type InitOptions struct {
	Strategy Strategy

	// Used by StrategyConfigure.
	Support ColorSupport
	Luma    TermBgLuma
	BgRGB   *[3]uint8

	// Used by StrategyMatch. Without it Match degrades to Default.
	Detect DetectFunc

	Prefs   Preferences
	Sources []ThemeSource

	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// TermAttributes is the resolved terminal state plus the theme in use.
type TermAttributes struct {
	HowInitialized HowInitialized
	ColorSupport   ColorSupport
	TermBgLuma     TermBgLuma
	TermBgRGB      *[3]uint8
	Theme          *Theme
}

var (
	attrsOnce sync.Once
	attrsMu   sync.RWMutex
	attrs     *TermAttributes
)

// Initialize resolves the process-wide attributes. Only the first call has
// any effect; later calls return the existing value.
func Initialize(opts InitOptions) *TermAttributes {
	attrsOnce.Do(func() {
		a := Resolve(opts)
		attrsMu.Lock()
		attrs = a
		attrsMu.Unlock()
	})
	return Get()
}

// Get returns the process-wide attributes, or nil before Initialize.
func Get() *TermAttributes {
	attrsMu.RLock()
	defer attrsMu.RUnlock()
	return attrs
}

// GetOrInit returns the attributes, initializing with StrategyMatch and no
// detector if nothing has run yet.
func GetOrInit() *TermAttributes {
	if a := Get(); a != nil {
		return a
	}
	return Initialize(InitOptions{Strategy: StrategyMatch})
}

// ResetForTesting clears the process-wide attributes.
func ResetForTesting() {
	attrsMu.Lock()
	defer attrsMu.Unlock()
	attrs = nil
	attrsOnce = sync.Once{}
}

// currentSupport is the support level Paint uses. It never triggers
// initialization.
func currentSupport() ColorSupport {
	if a := Get(); a != nil {
		return a.ColorSupport
	}
	return DefaultColorSupport
}

// ForTesting builds attributes without touching process state.
func ForTesting(support ColorSupport, luma TermBgLuma, bg *[3]uint8, theme *Theme) *TermAttributes {
	return &TermAttributes{
		HowInitialized: Configured,
		ColorSupport:   support,
		TermBgLuma:     luma,
		TermBgRGB:      bg,
		Theme:          theme,
	}
}

// DefaultAttributes is basic_dark on a Basic terminal with a dark background.
func DefaultAttributes() *TermAttributes {
	t, err := Builtin("basic_dark")
	if err != nil {
		logging.Warnf("STYLING | builtin basic_dark unavailable: %v", err)
		t = &Theme{Name: "basic_dark", TermBgLuma: Dark, MinColorSupport: Basic}
	}
	return &TermAttributes{
		HowInitialized: Defaulted,
		ColorSupport:   Basic,
		TermBgLuma:     Dark,
		Theme:          t,
	}
}

// Resolve computes attributes for opts without touching process state.
func Resolve(opts InitOptions) *TermAttributes {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	sel := NewSelector(opts.Prefs, opts.Sources...)

	switch opts.Strategy {
	case StrategyConfigure:
		return configure(sel, opts.Support, opts.Luma, opts.BgRGB)
	case StrategyMatch:
		if getenv("TEST_ENV") != "" {
			return DefaultAttributes()
		}
		support, bg, luma := DefaultColorSupport, (*[3]uint8)(nil), DefaultTermBgLuma
		how := Defaulted
		if opts.Detect != nil {
			support, bg, luma = opts.Detect()
			how = Detected
		}
		if name := getenv("THAG_THEME"); name != "" {
			t, err := sel.LoadWithSupport(name, support)
			if err == nil {
				return &TermAttributes{HowInitialized: how, ColorSupport: support, TermBgLuma: luma, TermBgRGB: bg, Theme: t}
			}
			logging.Warnf("STYLING | THAG_THEME=%s ignored: %v", name, err)
		}
		if opts.Detect == nil {
			return DefaultAttributes()
		}
		t, err := sel.AutoDetect(support, luma, bg)
		if err != nil {
			logging.Warnf("STYLING | theme auto-detect failed: %v", err)
			return DefaultAttributes()
		}
		return &TermAttributes{HowInitialized: Detected, ColorSupport: support, TermBgLuma: luma, TermBgRGB: bg, Theme: t}
	default:
		return DefaultAttributes()
	}
}

// Configure builds attributes from known values. A light background gets
// github, a Basic-or-less terminal gets basic_dark, anything else espresso,
// unless the preferred list for the luma names a theme that fits.
func Configure(support ColorSupport, luma TermBgLuma, bg *[3]uint8, prefs Preferences, sources ...ThemeSource) *TermAttributes {
	return configure(NewSelector(prefs, sources...), support, luma, bg)
}

func configure(sel *Selector, support ColorSupport, luma TermBgLuma, bg *[3]uint8) *TermAttributes {
	a := &TermAttributes{HowInitialized: Configured, ColorSupport: support, TermBgLuma: luma, TermBgRGB: bg}
	for _, name := range sel.Prefs.Preferred(luma) {
		t, err := sel.Load(name)
		if err != nil || t.MinColorSupport > support || t.TermBgLuma != luma {
			continue
		}
		if support != TrueColor {
			t.ConvertToColorSupport(support)
		}
		a.Theme = t
		return a
	}
	name := "espresso"
	switch {
	case luma == Light:
		name = "github"
	case support <= Basic:
		name = "basic_dark"
	}
	t, err := sel.LoadWithSupport(name, support)
	if err != nil {
		logging.Warnf("STYLING | theme %s unavailable: %v", name, err)
		return DefaultAttributes()
	}
	a.Theme = t
	return a
}

// WithTheme returns a copy using the named theme, downgraded to a's support.
// An unknown name leaves the theme unchanged and reports the error.
func (a *TermAttributes) WithTheme(name string, sources ...ThemeSource) (*TermAttributes, error) {
	t, err := NewSelector(Preferences{}, sources...).LoadWithSupport(name, a.ColorSupport)
	if err != nil {
		return a, err
	}
	c := *a
	c.Theme = t
	return &c, nil
}

// WithColorSupport returns a copy at a different support level.
func (a *TermAttributes) WithColorSupport(s ColorSupport) *TermAttributes {
	c := *a
	c.ColorSupport = s
	if a.Theme != nil {
		c.Theme = a.Theme.WithColorSupport(s)
	}
	return &c
}

// StyleFor returns the current theme's style for a role.
func (a *TermAttributes) StyleFor(r Role) Style {
	if a == nil || a.Theme == nil {
		return Style{}
	}
	return a.Theme.StyleFor(r)
}

// Paint renders text in a role's style at a's support level.
func (a *TermAttributes) Paint(r Role, text string) string {
	support := DefaultColorSupport
	if a != nil {
		support = a.ColorSupport
	}
	return a.StyleFor(r).PaintFor(text, support)
}
