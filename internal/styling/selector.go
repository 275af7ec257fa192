// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import (
	"math"
	"sort"

	"github.com/jeranaias/thagstyle/internal/logging"
)

// ThemeSummary is what selection needs to know about a theme without loading it.
type ThemeSummary struct {
	Name       string
	Luma       TermBgLuma
	MinSupport ColorSupport
	BgRGBs     [][3]uint8
}

// Summary returns the selection view of t.
func (t *Theme) Summary() ThemeSummary {
	return ThemeSummary{
		Name:       t.Name,
		Luma:       t.TermBgLuma,
		MinSupport: t.MinColorSupport,
		BgRGBs:     append([][3]uint8(nil), t.BgRGBs...),
	}
}

// minDistance is the distance from rgb to the nearest background of s.
func (s ThemeSummary) minDistance(rgb [3]uint8) float64 {
	best := math.MaxFloat64
	for _, bg := range s.BgRGBs {
		if d := ColorDistance(rgb, bg); d < best {
			best = d
		}
	}
	return best
}

// ThemeSource is anything that can offer themes for selection: the builtins,
// or a catalog of user theme files.
type ThemeSource interface {
	// ByBackground returns the names of themes with exactly this background.
	ByBackground(hex string) ([]string, error)
	// Candidates returns themes for the luma that need no more than support.
	Candidates(luma TermBgLuma, support ColorSupport) ([]ThemeSummary, error)
	// Load returns a theme by name.
	Load(name string) (*Theme, error)
	// Names lists every theme the source knows.
	Names() ([]string, error)
}

// Preferences are the user's preferred and fallback theme lists per luma.
type Preferences struct {
	PreferredLight []string
	PreferredDark  []string
	FallbackLight  []string
	FallbackDark   []string
}

// Preferred returns the preferred list for a luma.
func (p Preferences) Preferred(luma TermBgLuma) []string {
	if luma == Light {
		return p.PreferredLight
	}
	return p.PreferredDark
}

// Fallback returns the fallback list for a luma.
func (p Preferences) Fallback(luma TermBgLuma) []string {
	if luma == Light {
		return p.FallbackLight
	}
	return p.FallbackDark
}

// FallbackThemeName is the basic theme for a luma.
func FallbackThemeName(luma TermBgLuma) string {
	if luma == Light {
		return "basic_light"
	}
	return "basic_dark"
}

// Selector chooses themes from an ordered list of sources. Earlier sources
// shadow later ones on name clashes.
type Selector struct {
	Sources []ThemeSource
	Prefs   Preferences
}

// NewSelector returns a selector over the given sources followed by the builtins.
func NewSelector(prefs Preferences, sources ...ThemeSource) *Selector {
	all := make([]ThemeSource, 0, len(sources)+1)
	for _, s := range sources {
		if s != nil {
			all = append(all, s)
		}
	}
	all = append(all, Builtins)
	return &Selector{Sources: all, Prefs: prefs}
}

// Load finds a theme by name in the first source that has it.
func (s *Selector) Load(name string) (*Theme, error) {
	for _, src := range s.Sources {
		t, err := src.Load(name)
		if err == nil {
			return t, nil
		}
	}
	return nil, unknownTheme(name)
}

// LoadWithSupport loads a theme and downgrades it for the support level.
func (s *Selector) LoadWithSupport(name string, support ColorSupport) (*Theme, error) {
	t, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	if support != TrueColor {
		t.ConvertToColorSupport(support)
	}
	return t, nil
}

// Names lists every theme name across sources, deduplicated and sorted.
func (s *Selector) Names() []string {
	seen := make(map[string]bool)
	var out []string
	for _, src := range s.Sources {
		names, err := src.Names()
		if err != nil {
			logging.Warnf("STYLING | list themes failed: %v", err)
			continue
		}
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out
}

// AutoDetect picks a theme for a terminal with the given support, luma and
// (optionally known) background color, using only the builtins.
func AutoDetect(support ColorSupport, luma TermBgLuma, bg *[3]uint8, prefs Preferences) (*Theme, error) {
	return NewSelector(prefs).AutoDetect(support, luma, bg)
}

// AutoDetect picks a theme. An exact background match wins over a closer
// non-exact preferred theme. Without a background it returns the basic
// theme for the luma.
func (s *Selector) AutoDetect(support ColorSupport, luma TermBgLuma, bg *[3]uint8) (*Theme, error) {
	fallback := FallbackThemeName(luma)
	if bg == nil {
		return s.LoadWithSupport(fallback, support)
	}
	rgb := *bg
	hex := RGBToHex(rgb)

	exact := s.exactMatches(hex)
	logging.Debugf("STYLING | bg=%s exact=%v", hex, exact)

	preferred := s.Prefs.Preferred(luma)
	fallbacks := s.Prefs.Fallback(luma)

	for _, list := range [][]string{preferred, fallbacks} {
		for _, name := range list {
			if containsString(exact, name) {
				return s.LoadWithSupport(name, support)
			}
		}
	}
	if len(exact) > 0 {
		return s.LoadWithSupport(exact[0], support)
	}

	eligible := s.eligible(luma, support, rgb)
	logging.Debugf("STYLING | eligible=%d", len(eligible))

	for _, list := range [][]string{preferred, fallbacks} {
		if len(list) == 0 {
			continue
		}
		if name, ok := closestIn(eligible, list, rgb); ok {
			return s.LoadWithSupport(name, support)
		}
	}
	if name, ok := closestIn(eligible, nil, rgb); ok {
		return s.LoadWithSupport(name, support)
	}
	return s.LoadWithSupport(fallback, support)
}

func (s *Selector) exactMatches(hex string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, src := range s.Sources {
		names, err := src.ByBackground(hex)
		if err != nil {
			logging.Warnf("STYLING | background lookup failed: %v", err)
			continue
		}
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out
}

// eligible returns themes matching luma and support whose nearest background
// is within BackgroundMatchThreshold of rgb.
func (s *Selector) eligible(luma TermBgLuma, support ColorSupport, rgb [3]uint8) []ThemeSummary {
	seen := make(map[string]bool)
	var out []ThemeSummary
	for _, src := range s.Sources {
		cands, err := src.Candidates(luma, support)
		if err != nil {
			logging.Warnf("STYLING | candidate lookup failed: %v", err)
			continue
		}
		for _, c := range cands {
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			if c.Luma == luma && c.MinSupport <= support && c.minDistance(rgb) < BackgroundMatchThreshold {
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// closestIn returns the eligible theme nearest to rgb. When names is non-nil
// only those themes count, and ties go to the earlier name in the list.
func closestIn(eligible []ThemeSummary, names []string, rgb [3]uint8) (string, bool) {
	if names != nil {
		byName := make(map[string]ThemeSummary, len(eligible))
		for _, e := range eligible {
			byName[e.Name] = e
		}
		ordered := make([]ThemeSummary, 0, len(names))
		for _, n := range names {
			if e, ok := byName[n]; ok {
				ordered = append(ordered, e)
			}
		}
		eligible = ordered
	}
	best, bestDist := "", math.MaxFloat64
	for _, e := range eligible {
		if d := e.minDistance(rgb); d < bestDist {
			best, bestDist = e.Name, d
		}
	}
	return best, best != ""
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
