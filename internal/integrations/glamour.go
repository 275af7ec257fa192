// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package integrations

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// glamourColor is the color string glamour expects for a role, or nil when
// the role is unset.
func glamourColor(theme *styling.Theme, r styling.Role) *string {
	if theme == nil {
		return nil
	}
	fg := theme.Palette.StyleFor(r).Foreground
	if fg == nil {
		return nil
	}
	var s string
	if fg.Value.Kind == styling.ValueTrueColor {
		s = fg.Hex()
	} else {
		s = strconv.Itoa(int(fg.Value.Index))
	}
	return &s
}

func boolPtr(b bool) *bool { return &b }

// primitive styles a markdown element from a role, carrying the role's
// attributes along with its color.
func primitive(theme *styling.Theme, r styling.Role, base ansi.StylePrimitive) ansi.StylePrimitive {
	base.Color = glamourColor(theme, r)
	if theme == nil {
		return base
	}
	s := theme.StyleFor(r)
	if s.Bold {
		base.Bold = boolPtr(true)
	}
	if s.Italic {
		base.Italic = boolPtr(true)
	}
	if s.Dim {
		base.Faint = boolPtr(true)
	}
	if s.Underline {
		base.Underline = boolPtr(true)
	}
	return base
}

// MarkdownStyle builds a glamour style config from theme. Layout comes from
// glamour's dark or light style to match the theme; colors come from roles:
// headings from heading1-3, inline and block code from code, links from
// link, block quotes from quote, emphasis from emphasis and body text from
// normal.
func MarkdownStyle(theme *styling.Theme) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if theme != nil && theme.TermBgLuma == styling.Light {
		cfg = styles.LightStyleConfig
	}

	cfg.Document.StylePrimitive = primitive(theme, styling.RoleNormal, cfg.Document.StylePrimitive)
	cfg.Text = primitive(theme, styling.RoleNormal, cfg.Text)
	cfg.Paragraph.StylePrimitive = primitive(theme, styling.RoleNormal, cfg.Paragraph.StylePrimitive)

	cfg.Heading.StylePrimitive = primitive(theme, styling.RoleHeading3, cfg.Heading.StylePrimitive)
	cfg.Heading.Bold = boolPtr(true)
	h1 := primitive(theme, styling.RoleHeading1, cfg.H1.StylePrimitive)
	h1.BackgroundColor = nil
	h1.Prefix, h1.Suffix = "# ", ""
	h1.Bold = boolPtr(true)
	cfg.H1.StylePrimitive = h1
	cfg.H2.StylePrimitive = primitive(theme, styling.RoleHeading2, cfg.H2.StylePrimitive)
	cfg.H3.StylePrimitive = primitive(theme, styling.RoleHeading3, cfg.H3.StylePrimitive)
	for _, h := range []*ansi.StyleBlock{&cfg.H4, &cfg.H5, &cfg.H6} {
		h.StylePrimitive = primitive(theme, styling.RoleHeading3, h.StylePrimitive)
	}

	cfg.Emph = primitive(theme, styling.RoleEmphasis, cfg.Emph)
	cfg.Emph.Italic = boolPtr(true)
	cfg.Strong = primitive(theme, styling.RoleEmphasis, cfg.Strong)
	cfg.Strong.Bold = boolPtr(true)

	cfg.Link = primitive(theme, styling.RoleLink, cfg.Link)
	cfg.LinkText = primitive(theme, styling.RoleLink, cfg.LinkText)
	cfg.Image = primitive(theme, styling.RoleLink, cfg.Image)
	cfg.ImageText = primitive(theme, styling.RoleSubtle, cfg.ImageText)

	cfg.BlockQuote.StylePrimitive = primitive(theme, styling.RoleQuote, cfg.BlockQuote.StylePrimitive)
	cfg.HorizontalRule = primitive(theme, styling.RoleSubtle, cfg.HorizontalRule)
	cfg.Item = primitive(theme, styling.RoleNormal, cfg.Item)
	cfg.Enumeration = primitive(theme, styling.RoleInfo, cfg.Enumeration)

	code := primitive(theme, styling.RoleCode, cfg.Code.StylePrimitive)
	code.BackgroundColor = nil
	cfg.Code.StylePrimitive = code
	cfg.CodeBlock.StylePrimitive = primitive(theme, styling.RoleCode, cfg.CodeBlock.StylePrimitive)
	cfg.CodeBlock.Theme = ""
	cfg.CodeBlock.Chroma = markdownChroma(theme)

	return cfg
}

// markdownChroma colors fenced code blocks with the same role mapping as
// ChromaStyle.
func markdownChroma(theme *styling.Theme) *ansi.Chroma {
	p := func(r styling.Role) ansi.StylePrimitive {
		return ansi.StylePrimitive{Color: glamourColor(theme, r)}
	}
	return &ansi.Chroma{
		Text:              p(styling.RoleNormal),
		Error:             p(styling.RoleError),
		Comment:           p(styling.RoleCommentary),
		CommentPreproc:    p(styling.RoleSubtle),
		Keyword:           p(styling.RoleHeading1),
		KeywordReserved:   p(styling.RoleHeading1),
		KeywordNamespace:  p(styling.RoleHeading1),
		KeywordType:       p(styling.RoleHeading3),
		Operator:          p(styling.RoleEmphasis),
		Punctuation:       p(styling.RoleNormal),
		Name:              p(styling.RoleNormal),
		NameBuiltin:       p(styling.RoleInfo),
		NameTag:           p(styling.RoleHeading1),
		NameAttribute:     p(styling.RoleHeading3),
		NameClass:         p(styling.RoleHeading2),
		NameConstant:      p(styling.RoleWarning),
		NameDecorator:     p(styling.RoleLink),
		NameException:     p(styling.RoleError),
		NameFunction:      p(styling.RoleHeading2),
		LiteralNumber:     p(styling.RoleWarning),
		LiteralString:     p(styling.RoleSuccess),
		GenericDeleted:    p(styling.RoleError),
		GenericInserted:   p(styling.RoleSuccess),
		GenericSubheading: p(styling.RoleHeading3),
	}
}

// RenderMarkdown renders md with theme's colors, wrapping at width and
// emitting no more color than support allows.
func RenderMarkdown(theme *styling.Theme, md string, width int, support styling.ColorSupport) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(MarkdownStyle(theme)),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(ProfileFor(support)),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
