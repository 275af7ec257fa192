// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package imagetheme generates a true color theme from the dominant colors
// of an image.
//
// Pixels are sampled on a stride and grouped into 4-bit-per-channel
// buckets. The heaviest buckets become the candidate palette. The
// background is the darkest (dark themes) or lightest (light themes)
// candidate, pushed further toward black or white when it is not extreme
// enough. Roles are then filled by hue, and any role the image cannot
// supply is derived. Every text color is lifted to at least MinContrast
// Lab lightness away from the background.
package imagetheme

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoders
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/thagstyle/internal/logging"
	"github.com/jeranaias/thagstyle/internal/styling"
)

// maxSamples bounds how many pixels are read from large images.
const maxSamples = 40000

// ErrNoColors is returned for images without any opaque pixel.
var ErrNoColors = errors.New("image has no opaque pixels")

// Config controls generation. The zero value is usable.
type Config struct {
	// ColorCount is how many dominant colors to keep. Default 16.
	ColorCount int

	// ForceLuma makes a Light or Dark theme regardless of the image.
	ForceLuma styling.TermBgLuma

	// MinContrast is the minimum Lab lightness difference (0-1) between
	// text and background. Default 0.45.
	MinContrast float64

	// Name overrides the generated theme name.
	Name string
}

// DefaultConfig returns the defaults.
func DefaultConfig() Config {
	return Config{ColorCount: 16, MinContrast: 0.45}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ColorCount <= 0 {
		c.ColorCount = d.ColorCount
	}
	if c.MinContrast <= 0 {
		c.MinContrast = d.MinContrast
	}
	if c.MinContrast > 0.9 {
		c.MinContrast = 0.9
	}
	return c
}

// GenerateFromFile decodes a PNG, JPEG or GIF and generates a theme named
// after the file.
func GenerateFromFile(path string, cfg Config) (*styling.Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &styling.Error{Kind: styling.KindIO, Message: path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, &styling.Error{Kind: styling.KindParse, Message: "decode " + path, Err: err}
	}
	logging.Debugf("IMAGE | decoded %s format=%s bounds=%v", path, format, img.Bounds())

	if cfg.Name == "" {
		cfg.Name = NameFromPath(path)
	}
	theme, err := Generate(img, cfg)
	if err != nil {
		return nil, err
	}
	theme.Description = "Generated from " + filepath.Base(path)
	return theme, nil
}

// NameFromPath title-cases a file stem: "sunset_beach.png" is "Sunset Beach".
func NameFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.Join(strings.FieldsFunc(stem, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	}), " ")
	if stem == "" {
		return "Generated"
	}
	return cases.Title(language.English).String(stem)
}

// Generate builds a theme from img.
func Generate(img image.Image, cfg Config) (*styling.Theme, error) {
	cfg = cfg.withDefaults()

	swatches := dominantColors(img, cfg.ColorCount)
	if len(swatches) == 0 {
		return nil, ErrNoColors
	}

	luma := cfg.ForceLuma
	if luma != styling.Light && luma != styling.Dark {
		luma = majorityLuma(swatches)
	}

	p := newPicker(swatches, luma, cfg.MinContrast)
	theme := p.build()
	theme.Name = cfg.Name
	if theme.Name == "" {
		theme.Name = "Generated"
	}
	theme.Description = "Generated from an image"

	logging.Verbosef("IMAGE | theme=%q luma=%s bg=%s colors=%d", theme.Name, luma, theme.Backgrounds[0], len(swatches))
	return theme, nil
}

// =============================================================================
// COLOR EXTRACTION
// =============================================================================

// swatch is one dominant color.
type swatch struct {
	rgb    [3]uint8
	c      colorful.Color
	weight float64 // share of sampled pixels
	h, s   float64
	l      float64 // Lab lightness, 0-1
}

func newSwatch(rgb [3]uint8, weight float64) swatch {
	c := colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}
	h, s, _ := c.Hsl()
	l, _, _ := c.Lab()
	return swatch{rgb: rgb, c: c, weight: weight, h: h, s: s, l: l}
}

type bucket struct {
	key   int
	count int
	sum   [3]int
}

// dominantColors quantizes sampled pixels into 4096 buckets and returns the
// n heaviest as the average color of each bucket.
func dominantColors(img image.Image, n int) []swatch {
	b := img.Bounds()
	stride := 1
	for (b.Dx()/stride)*(b.Dy()/stride) > maxSamples {
		stride++
	}

	buckets := make(map[int]*bucket)
	total := 0
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			r, g, bl, a := img.At(x, y).RGBA()
			if a < 0x8000 {
				continue
			}
			// Undo premultiplication so translucent pixels keep their hue.
			r8 := uint8(r * 0xffff / a >> 8)
			g8 := uint8(g * 0xffff / a >> 8)
			b8 := uint8(bl * 0xffff / a >> 8)

			key := int(r8>>4)<<8 | int(g8>>4)<<4 | int(b8>>4)
			bk, ok := buckets[key]
			if !ok {
				bk = &bucket{key: key}
				buckets[key] = bk
			}
			bk.count++
			bk.sum[0] += int(r8)
			bk.sum[1] += int(g8)
			bk.sum[2] += int(b8)
			total++
		}
	}
	if total == 0 {
		return nil
	}

	sorted := make([]*bucket, 0, len(buckets))
	for _, bk := range buckets {
		sorted = append(sorted, bk)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].key < sorted[j].key
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]swatch, len(sorted))
	for i, bk := range sorted {
		rgb := [3]uint8{
			uint8(bk.sum[0] / bk.count),
			uint8(bk.sum[1] / bk.count),
			uint8(bk.sum[2] / bk.count),
		}
		out[i] = newSwatch(rgb, float64(bk.count)/float64(total))
	}
	return out
}

// majorityLuma weighs the swatches by pixel share and reports which side of
// mid lightness dominates.
func majorityLuma(swatches []swatch) styling.TermBgLuma {
	var light, dark float64
	for _, s := range swatches {
		if s.l > 0.5 {
			light += s.weight
		} else {
			dark += s.weight
		}
	}
	if light > dark {
		return styling.Light
	}
	return styling.Dark
}

// =============================================================================
// ROLE ASSIGNMENT
// =============================================================================

// hueRange is a span of hue in degrees. from may exceed to to wrap past 0.
type hueRange struct {
	from, to float64
	center   float64
}

func (r hueRange) contains(h float64) bool {
	if r.from <= r.to {
		return h >= r.from && h < r.to
	}
	return h >= r.from || h < r.to
}

var (
	hueRed     = hueRange{345, 20, 0}
	hueOrange  = hueRange{20, 70, 38}
	hueGreen   = hueRange{75, 165, 120}
	hueBlue    = hueRange{180, 250, 210}
	huePurple  = hueRange{250, 300, 275}
	hueMagenta = hueRange{300, 345, 325}
)

// minAccentSaturation keeps grays from being chosen for hue-keyed roles.
const minAccentSaturation = 0.25

type picker struct {
	swatches    []swatch
	luma        styling.TermBgLuma
	minContrast float64
	bg          colorful.Color
	bgL         float64
	used        map[[3]uint8]bool
}

func newPicker(swatches []swatch, luma styling.TermBgLuma, minContrast float64) *picker {
	p := &picker{
		swatches:    swatches,
		luma:        luma,
		minContrast: minContrast,
		used:        make(map[[3]uint8]bool),
	}
	p.bg = p.background()
	p.bgL, _, _ = p.bg.Lab()
	return p
}

// background picks the most extreme swatch for the luma and pushes it to at
// most 0.15 Lab lightness (dark) or at least 0.92 (light), keeping its hue
// but muting it.
func (p *picker) background() colorful.Color {
	best := p.swatches[0]
	for _, s := range p.swatches[1:] {
		if (p.luma == styling.Dark && s.l < best.l) || (p.luma == styling.Light && s.l > best.l) {
			best = s
		}
	}
	p.used[best.rgb] = true

	l, a, b := best.c.Lab()
	switch {
	case p.luma == styling.Dark && l > 0.15:
		l = 0.12
	case p.luma == styling.Light && l < 0.92:
		l = 0.95
	default:
		return best.c
	}
	return colorful.Lab(l, a*0.4, b*0.4).Clamped()
}

// contrasted returns c adjusted so its Lab lightness is at least want away
// from the background, moving away from it in steps.
func (p *picker) contrasted(c colorful.Color, want float64) colorful.Color {
	l, a, b := c.Lab()
	dir := 1.0
	if p.luma == styling.Light {
		dir = -1.0
	}
	for i := 0; i < 40; i++ {
		got, _, _ := c.Lab()
		if (got-p.bgL)*dir >= want {
			return c
		}
		l += 0.025 * dir
		if l < 0 || l > 1 {
			break
		}
		c = colorful.Lab(l, a, b).Clamped()
	}
	if p.luma == styling.Light {
		return colorful.Color{}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}

// byHue picks the heaviest unused saturated swatch in r, or derives one at
// the range's center hue.
func (p *picker) byHue(r hueRange) colorful.Color {
	var (
		best  *swatch
		score float64
	)
	for i := range p.swatches {
		s := &p.swatches[i]
		if p.used[s.rgb] || s.s < minAccentSaturation || !r.contains(s.h) {
			continue
		}
		if sc := s.weight * s.s; best == nil || sc > score {
			best, score = s, sc
		}
	}
	if best != nil {
		p.used[best.rgb] = true
		return p.contrasted(best.c, p.minContrast)
	}
	return p.contrasted(p.derived(r.center), p.minContrast)
}

func (p *picker) derived(hue float64) colorful.Color {
	if p.luma == styling.Light {
		return colorful.Hsl(hue, 0.7, 0.38)
	}
	return colorful.Hsl(hue, 0.7, 0.65)
}

// accents returns the n most vivid unused swatches.
func (p *picker) accents(n int) []colorful.Color {
	var cands []swatch
	for _, s := range p.swatches {
		if !p.used[s.rgb] && s.s >= minAccentSaturation {
			cands = append(cands, s)
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].s*(0.5+cands[i].weight) > cands[j].s*(0.5+cands[j].weight)
	})
	var out []colorful.Color
	for _, s := range cands {
		if len(out) == n {
			break
		}
		p.used[s.rgb] = true
		out = append(out, p.contrasted(s.c, p.minContrast))
	}
	return out
}

// normal is a near-neutral text color tinted by the background hue.
func (p *picker) normal() colorful.Color {
	h, _, _ := p.bg.Hsl()
	base := colorful.Hsl(h, 0.1, 0.88)
	if p.luma == styling.Light {
		base = colorful.Hsl(h, 0.1, 0.15)
	}
	return p.contrasted(base, p.minContrast+0.25)
}

func (p *picker) build() *styling.Theme {
	normal := p.normal()

	errC := p.byHue(hueRed)
	warn := p.byHue(hueOrange)
	success := p.byHue(hueGreen)
	info := p.byHue(hueBlue)
	code := p.byHue(huePurple)
	emphasis := p.byHue(hueMagenta)

	headings := p.accents(3)
	fallback := []colorful.Color{emphasis, info, code}
	for len(headings) < 3 {
		headings = append(headings, fallback[len(headings)])
	}

	subtle := p.contrasted(normal.BlendLab(p.bg, 0.3), p.minContrast*0.8)
	hint := p.contrasted(normal.BlendLab(p.bg, 0.5), p.minContrast*0.6)

	bg := rgbOf(p.bg)
	t := &styling.Theme{
		TermBgLuma:      p.luma,
		MinColorSupport: styling.TrueColor,
		Backgrounds:     []string{styling.RGBToHex(bg)},
		BgRGBs:          [][3]uint8{bg},
	}

	set := func(r styling.Role, c colorful.Color, attrs ...func(styling.Style) styling.Style) {
		rgb := rgbOf(c)
		s := styling.StyleFg(styling.NewRGB(rgb[0], rgb[1], rgb[2]))
		for _, a := range attrs {
			s = a(s)
		}
		t.Palette.Set(r, s)
	}
	bold := styling.Style.Bolded
	italic := styling.Style.Italicized

	set(styling.RoleHeading1, headings[0], bold)
	set(styling.RoleHeading2, headings[1], bold)
	set(styling.RoleHeading3, headings[2], bold)
	set(styling.RoleError, errC, bold)
	set(styling.RoleWarning, warn)
	set(styling.RoleSuccess, success)
	set(styling.RoleInfo, info)
	set(styling.RoleEmphasis, emphasis, bold)
	set(styling.RoleCode, code)
	set(styling.RoleNormal, normal)
	set(styling.RoleSubtle, subtle)
	set(styling.RoleHint, hint, italic)
	set(styling.RoleDebug, hint, styling.Style.Dimmed)
	set(styling.RoleLink, info, styling.Style.Underlined)
	set(styling.RoleQuote, subtle, italic)
	set(styling.RoleCommentary, hint, italic)
	return t
}

func rgbOf(c colorful.Color) [3]uint8 {
	r, g, b := c.Clamped().RGB255()
	return [3]uint8{r, g, b}
}

// Swatches reports the dominant colors of img as hex strings with their
// share of the image, heaviest first.
func Swatches(img image.Image, n int) []string {
	if n <= 0 {
		n = DefaultConfig().ColorCount
	}
	var out []string
	for _, s := range dominantColors(img, n) {
		out = append(out, fmt.Sprintf("%s %4.1f%%", styling.RGBToHex(s.rgb), s.weight*100))
	}
	return out
}
