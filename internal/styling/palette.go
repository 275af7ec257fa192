// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

// Palette assigns a Style to every Role.
type Palette struct {
	styles [roleCount]Style
}

// StyleFor returns the style for a role. Unknown roles get an empty style.
func (p *Palette) StyleFor(r Role) Style {
	if !r.valid() {
		return Style{}
	}
	return p.styles[r]
}

// Set replaces the style for a role.
func (p *Palette) Set(r Role, s Style) {
	if r.valid() {
		p.styles[r] = s
	}
}

// Each calls fn for every role in order.
func (p *Palette) Each(fn func(Role, Style)) {
	for i := range p.styles {
		fn(Role(i), p.styles[i])
	}
}

// Foreground returns the role's color, if it has one.
func (p *Palette) Foreground(r Role) (ColorInfo, bool) {
	s := p.StyleFor(r)
	if s.Foreground == nil {
		return ColorInfo{}, false
	}
	return *s.Foreground, true
}

// RGB returns the role's color as RGB.
func (p *Palette) RGB(r Role) ([3]uint8, bool) {
	c, ok := p.Foreground(r)
	if !ok {
		return [3]uint8{}, false
	}
	return c.RGB(), true
}

// clone deep-copies foreground pointers so conversions never alias.
func (p Palette) clone() Palette {
	for i, s := range p.styles {
		if s.Foreground != nil {
			fg := *s.Foreground
			p.styles[i].Foreground = &fg
		}
	}
	return p
}
