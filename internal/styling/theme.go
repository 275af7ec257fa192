// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// THEME FILE SCHEMA
// =============================================================================

// StyleConfig is one palette entry as written in a theme file. Exactly one of
// Index, Color256 or RGB should be set; if several are, that is also the
// order of precedence.
type StyleConfig struct {
	Index    *int     `toml:"index,omitempty" json:"index,omitempty" yaml:"index,omitempty"`
	Color256 *int     `toml:"color256,omitempty" json:"color256,omitempty" yaml:"color256,omitempty"`
	RGB      []int    `toml:"rgb,omitempty" json:"rgb,omitempty" yaml:"rgb,omitempty,flow"`
	Style    []string `toml:"style,omitempty" json:"style,omitempty" yaml:"style,omitempty,flow"`
}

// ThemeDefinition is the on-disk TOML form of a theme.
type ThemeDefinition struct {
	Name            string                 `toml:"name" json:"name" yaml:"name"`
	Description     string                 `toml:"description" json:"description" yaml:"description"`
	TermBgLuma      string                 `toml:"term_bg_luma" json:"term_bg_luma" yaml:"term_bg_luma"`
	MinColorSupport string                 `toml:"min_color_support" json:"min_color_support" yaml:"min_color_support"`
	Backgrounds     []string               `toml:"backgrounds" json:"backgrounds" yaml:"backgrounds,flow"`
	BaseColors      [][]int                `toml:"base_colors,omitempty" json:"base_colors,omitempty" yaml:"base_colors,omitempty"`
	Palette         map[string]StyleConfig `toml:"palette" json:"palette" yaml:"palette"`
}

func (sc StyleConfig) toStyle() (Style, error) {
	var s Style
	switch {
	case sc.Index != nil:
		if *sc.Index < 0 || *sc.Index > 15 {
			return s, parseError("basic color index %d out of range 0-15", *sc.Index)
		}
		c := NewBasic(uint8(*sc.Index))
		s.Foreground = &c
	case sc.Color256 != nil:
		if *sc.Color256 < 0 || *sc.Color256 > 255 {
			return s, parseError("color256 index %d out of range 0-255", *sc.Color256)
		}
		c := NewColor256(uint8(*sc.Color256))
		s.Foreground = &c
	case sc.RGB != nil:
		if len(sc.RGB) != 3 {
			return s, parseError("rgb needs 3 components, got %d", len(sc.RGB))
		}
		var rgb [3]uint8
		for i, v := range sc.RGB {
			if v < 0 || v > 255 {
				return s, parseError("rgb component %d out of range 0-255", v)
			}
			rgb[i] = uint8(v)
		}
		c := NewRGB(rgb[0], rgb[1], rgb[2])
		s.Foreground = &c
	default:
		return s, parseError("palette entry has no index, color256 or rgb")
	}
	for _, name := range sc.Style {
		if err := s.applyNamed(name); err != nil {
			return s, err
		}
	}
	return s, nil
}

func styleConfigFor(s Style) StyleConfig {
	var sc StyleConfig
	if fg := s.Foreground; fg != nil {
		switch fg.Value.Kind {
		case ValueBasic:
			v := int(fg.Value.Index)
			sc.Index = &v
		case ValueColor256:
			v := int(fg.Value.Index)
			sc.Color256 = &v
		case ValueTrueColor:
			rgb := fg.Value.RGB
			sc.RGB = []int{int(rgb[0]), int(rgb[1]), int(rgb[2])}
		}
	}
	sc.Style = s.attributeNames()
	return sc
}

// =============================================================================
// THEME
// =============================================================================

// Theme is a resolved, ready-to-use color theme.
type Theme struct {
	Name            string
	Filename        string
	IsBuiltin       bool
	TermBgLuma      TermBgLuma
	MinColorSupport ColorSupport
	Palette         Palette
	Backgrounds     []string
	BgRGBs          [][3]uint8
	Description     string
	BaseColors      [][3]uint8
}

// FromDefinition validates a parsed theme file and builds a Theme.
func FromDefinition(def *ThemeDefinition) (*Theme, error) {
	luma, err := ParseTermBgLuma(def.TermBgLuma)
	if err != nil || luma == LumaUndetermined {
		return nil, invalidTheme("term_bg_luma must be light or dark, got %q", def.TermBgLuma)
	}
	support, err := ParseColorSupport(def.MinColorSupport)
	if err != nil || support < Basic {
		return nil, invalidTheme("min_color_support must be basic, color256 or true_color, got %q", def.MinColorSupport)
	}

	t := &Theme{
		Name:            def.Name,
		Description:     def.Description,
		TermBgLuma:      luma,
		MinColorSupport: support,
	}

	for _, hex := range def.Backgrounds {
		rgb, err := HexToRGB(hex)
		if err != nil {
			return nil, fmt.Errorf("backgrounds: %w", err)
		}
		t.Backgrounds = append(t.Backgrounds, RGBToHex(rgb))
		t.BgRGBs = append(t.BgRGBs, rgb)
	}

	if len(def.BaseColors) > 0 {
		if len(def.BaseColors) != 16 {
			return nil, invalidTheme("base_colors needs 16 entries, got %d", len(def.BaseColors))
		}
		for i, c := range def.BaseColors {
			if len(c) != 3 {
				return nil, invalidTheme("base_colors[%d] needs 3 components", i)
			}
			var rgb [3]uint8
			for j, v := range c {
				if v < 0 || v > 255 {
					return nil, invalidTheme("base_colors[%d] component %d out of range", i, v)
				}
				rgb[j] = uint8(v)
			}
			t.BaseColors = append(t.BaseColors, rgb)
		}
	}

	for key := range def.Palette {
		if _, err := ParseRole(key); err != nil {
			return nil, invalidTheme("unknown palette role %q", key)
		}
	}
	for _, r := range AllRoles() {
		sc, ok := def.Palette[r.String()]
		if !ok {
			return nil, invalidTheme("palette is missing role %q", r)
		}
		s, err := sc.toStyle()
		if err != nil {
			return nil, fmt.Errorf("palette.%s: %w", r, err)
		}
		t.Palette.Set(r, s)
	}
	return t, nil
}

// FromTOML parses theme TOML. name is used when the file does not set one.
func FromTOML(name string, data []byte) (*Theme, error) {
	var def ThemeDefinition
	if _, err := toml.Decode(string(data), &def); err != nil {
		return nil, &Error{Kind: KindParse, Message: name, Err: err}
	}
	if def.Name == "" {
		def.Name = name
	}
	return FromDefinition(&def)
}

// LoadFromFile loads a theme file. The file stem names the theme when the
// file itself does not.
func LoadFromFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError(path, err)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t, err := FromTOML(stem, data)
	if err != nil {
		return nil, err
	}
	t.Filename = path
	return t, nil
}

// LoadFromDirectory finds a theme by name in dir. It tries "name.toml",
// then "thag-name.toml", then for unsuffixed names "thag-name-light.toml"
// and "thag-name-dark.toml".
func LoadFromDirectory(dir, name string) (*Theme, error) {
	candidates := []string{name + ".toml", "thag-" + name + ".toml"}
	if !strings.HasSuffix(name, "-light") && !strings.HasSuffix(name, "-dark") {
		candidates = append(candidates, "thag-"+name+"-light.toml", "thag-"+name+"-dark.toml")
	}
	for _, c := range candidates {
		path := filepath.Join(dir, c)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFromFile(path)
	}
	return nil, unknownTheme(fmt.Sprintf("%s (not found in %s)", name, dir))
}

// Runtime looks for a user theme in $THAG_THEME_DIR, then each of dirs, and
// finally falls back to the builtins.
func Runtime(name string, dirs ...string) (*Theme, error) {
	search := dirs
	if env := os.Getenv("THAG_THEME_DIR"); env != "" {
		search = append([]string{env}, dirs...)
	}
	for _, dir := range search {
		if dir == "" {
			continue
		}
		t, err := LoadFromDirectory(dir, name)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, ErrUnknownTheme) {
			return nil, err
		}
	}
	return Builtin(name)
}

// Clone returns a deep copy.
func (t *Theme) Clone() *Theme {
	c := *t
	c.Palette = t.Palette.clone()
	c.Backgrounds = append([]string(nil), t.Backgrounds...)
	c.BgRGBs = append([][3]uint8(nil), t.BgRGBs...)
	c.BaseColors = append([][3]uint8(nil), t.BaseColors...)
	return &c
}

// StyleFor returns the style of a role.
func (t *Theme) StyleFor(r Role) Style {
	return t.Palette.StyleFor(r)
}

// Paint renders text in the role's style.
func (t *Theme) Paint(r Role, text string) string {
	return t.StyleFor(r).Paint(text)
}

// BgRGB returns the theme's primary background.
func (t *Theme) BgRGB() ([3]uint8, bool) {
	if len(t.BgRGBs) == 0 {
		return [3]uint8{}, false
	}
	return t.BgRGBs[0], true
}

// BgHex is BgRGB as "#rrggbb", or empty when the theme has no background.
func (t *Theme) BgHex() string {
	if rgb, ok := t.BgRGB(); ok {
		return RGBToHex(rgb)
	}
	return ""
}

// Validate checks the theme can be shown on a terminal with the given
// support and background luma.
func (t *Theme) Validate(support ColorSupport, luma TermBgLuma) error {
	if support < t.MinColorSupport {
		return &Error{Kind: KindColorSupportMismatch, Required: t.MinColorSupport, Available: support}
	}
	if t.TermBgLuma != luma {
		return &Error{Kind: KindTermBgLumaMismatch, ThemeLuma: t.TermBgLuma, TerminalLuma: luma}
	}
	return t.validatePalette()
}

func (t *Theme) validatePalette() error {
	var err error
	t.Palette.Each(func(r Role, s Style) {
		if err != nil || s.Foreground == nil {
			return
		}
		switch s.Foreground.Value.Kind {
		case ValueColor256:
			if t.MinColorSupport < Color256 {
				err = invalidTheme("%s: 256-color value in a theme declared %s", r, t.MinColorSupport)
			}
		case ValueTrueColor:
			if t.MinColorSupport < TrueColor {
				err = invalidTheme("%s: true color value in a theme declared %s", r, t.MinColorSupport)
			}
		}
	})
	return err
}

// ConvertToColorSupport downgrades the palette in place so every color can
// be shown at the target support level.
func (t *Theme) ConvertToColorSupport(target ColorSupport) {
	switch target {
	case TrueColor:
		return
	case Color256:
		for _, r := range AllRoles() {
			s := t.Palette.StyleFor(r)
			if s.Foreground != nil && s.Foreground.Value.Kind == ValueTrueColor {
				c := NewColor256(FindClosestColor(s.Foreground.Value.RGB))
				s.Foreground = &c
				t.Palette.Set(r, s)
			}
		}
	case Basic, Undetermined:
		for _, r := range AllRoles() {
			s := t.Palette.StyleFor(r)
			if s.Foreground == nil {
				continue
			}
			var c ColorInfo
			switch s.Foreground.Value.Kind {
			case ValueTrueColor:
				c = NewBasic(ConvertRGBToANSI(s.Foreground.Value.RGB))
			case ValueColor256:
				c = NewBasic(s.Foreground.Value.Index % 16)
			default:
				continue
			}
			s.Foreground = &c
			t.Palette.Set(r, s)
		}
		target = Basic
	case None:
		for _, r := range AllRoles() {
			t.Palette.Set(r, StyleFg(NewBasic(0)))
		}
	}
	if target < t.MinColorSupport {
		t.MinColorSupport = target
	}
}

// WithColorSupport returns a converted copy, leaving t untouched.
func (t *Theme) WithColorSupport(s ColorSupport) *Theme {
	c := t.Clone()
	c.ConvertToColorSupport(s)
	return c
}

// =============================================================================
// ANSI COLOR MAP
// =============================================================================

// ansiRoles maps ANSI slots 1-15 to palette roles. Slot 0 is the background.
var ansiRoles = [16]Role{
	1:  RoleEmphasis,
	2:  RoleSuccess,
	3:  RoleCommentary,
	4:  RoleInfo,
	5:  RoleHeading1,
	6:  RoleCode,
	7:  RoleNormal,
	8:  RoleSubtle,
	9:  RoleError,
	10: RoleDebug,
	11: RoleWarning,
	12: RoleLink,
	13: RoleHeading2,
	14: RoleHint,
	15: RoleQuote,
}

// ANSIRole returns the role that feeds ANSI slot i (1-15). Slot 0 is the
// background and reports false.
func ANSIRole(i int) (Role, bool) {
	if i <= 0 || i > 15 {
		return 0, false
	}
	return ansiRoles[i], true
}

var (
	fallbackGray    = [3]uint8{128, 128, 128}
	fallbackDarkBg  = [3]uint8{16, 16, 16}
	fallbackLightBg = [3]uint8{255, 255, 255}
)

// DefaultBackground is the background assumed for a theme that declares none.
func (t *Theme) DefaultBackground() [3]uint8 {
	if bg, ok := t.BgRGB(); ok {
		return bg
	}
	if t.TermBgLuma == Light {
		return fallbackLightBg
	}
	return fallbackDarkBg
}

// ANSIColorMap returns the 16 terminal palette colors for this theme.
// Explicit base_colors win over the role mapping.
func (t *Theme) ANSIColorMap() [16][3]uint8 {
	var out [16][3]uint8
	if len(t.BaseColors) == 16 {
		copy(out[:], t.BaseColors)
		return out
	}
	out[0] = t.DefaultBackground()
	for i := 1; i < 16; i++ {
		if rgb, ok := t.Palette.RGB(ansiRoles[i]); ok {
			out[i] = rgb
		} else {
			out[i] = fallbackGray
		}
	}
	return out
}

// RoleRGB returns a role's RGB, or mid gray when the role has no color.
func (t *Theme) RoleRGB(r Role) [3]uint8 {
	if rgb, ok := t.Palette.RGB(r); ok {
		return rgb
	}
	return fallbackGray
}

// CursorRGB is the terminal cursor color: emphasis, else normal text.
func (t *Theme) CursorRGB() [3]uint8 {
	if rgb, ok := t.Palette.RGB(RoleEmphasis); ok {
		return rgb
	}
	return t.RoleRGB(RoleNormal)
}

// SelectionRGB is the selection background: commentary, else a lifted
// default background.
func (t *Theme) SelectionRGB() [3]uint8 {
	if rgb, ok := t.Palette.RGB(RoleCommentary); ok {
		return rgb
	}
	return AdjustBrightness(t.DefaultBackground(), 1.4)
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// ToDefinition converts back to the file schema.
func (t *Theme) ToDefinition() *ThemeDefinition {
	def := &ThemeDefinition{
		Name:            t.Name,
		Description:     t.Description,
		TermBgLuma:      t.TermBgLuma.String(),
		MinColorSupport: t.MinColorSupport.String(),
		Backgrounds:     append([]string{}, t.Backgrounds...),
		Palette:         make(map[string]StyleConfig, roleCount),
	}
	for _, rgb := range t.BaseColors {
		def.BaseColors = append(def.BaseColors, []int{int(rgb[0]), int(rgb[1]), int(rgb[2])})
	}
	t.Palette.Each(func(r Role, s Style) {
		def.Palette[r.String()] = styleConfigFor(s)
	})
	return def
}

// ToTOML renders the theme in the same layout as the bundled theme files,
// one inline table per role.
func (t *Theme) ToTOML() []byte {
	def := t.ToDefinition()
	var b bytes.Buffer
	fmt.Fprintf(&b, "name = %s\n", tomlString(def.Name))
	fmt.Fprintf(&b, "description = %s\n", tomlString(def.Description))
	fmt.Fprintf(&b, "term_bg_luma = %s\n", tomlString(def.TermBgLuma))
	fmt.Fprintf(&b, "min_color_support = %s\n", tomlString(def.MinColorSupport))
	quoted := make([]string, len(def.Backgrounds))
	for i, bg := range def.Backgrounds {
		quoted[i] = tomlString(bg)
	}
	fmt.Fprintf(&b, "backgrounds = [%s]\n", strings.Join(quoted, ", "))
	if len(def.BaseColors) > 0 {
		b.WriteString("base_colors = [\n")
		for _, c := range def.BaseColors {
			fmt.Fprintf(&b, "    %s,\n", intList(c))
		}
		b.WriteString("]\n")
	}
	b.WriteString("\n[palette]\n")
	for _, r := range AllRoles() {
		k := r.String()
		sc := def.Palette[k]
		var parts []string
		switch {
		case sc.Index != nil:
			parts = append(parts, "index = "+strconv.Itoa(*sc.Index))
		case sc.Color256 != nil:
			parts = append(parts, "color256 = "+strconv.Itoa(*sc.Color256))
		case sc.RGB != nil:
			parts = append(parts, "rgb = "+intList(sc.RGB))
		}
		if len(sc.Style) > 0 {
			names := make([]string, len(sc.Style))
			for i, n := range sc.Style {
				names[i] = tomlString(n)
			}
			parts = append(parts, "style = ["+strings.Join(names, ", ")+"]")
		}
		fmt.Fprintf(&b, "%s = { %s }\n", k, strings.Join(parts, ", "))
	}
	return b.Bytes()
}

func intList(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// tomlString quotes s as a TOML basic string.
func tomlString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// SortThemes orders themes by name.
func SortThemes(themes []*Theme) {
	sort.Slice(themes, func(i, j int) bool { return themes[i].Name < themes[j].Name })
}
