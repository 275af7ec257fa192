// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package integrations

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// chromaRoles maps token types onto roles. Subtypes inherit from their
// parent, so String covers every string literal kind.
var chromaRoles = []struct {
	token chroma.TokenType
	role  styling.Role
}{
	{chroma.Text, styling.RoleNormal},
	{chroma.Keyword, styling.RoleHeading1},
	{chroma.KeywordType, styling.RoleHeading3},
	{chroma.NameFunction, styling.RoleHeading2},
	{chroma.NameClass, styling.RoleHeading2},
	{chroma.NameBuiltin, styling.RoleInfo},
	{chroma.NameDecorator, styling.RoleLink},
	{chroma.NameConstant, styling.RoleWarning},
	{chroma.LiteralString, styling.RoleSuccess},
	{chroma.LiteralNumber, styling.RoleWarning},
	{chroma.Comment, styling.RoleCommentary},
	{chroma.CommentPreproc, styling.RoleSubtle},
	{chroma.Operator, styling.RoleEmphasis},
	{chroma.Punctuation, styling.RoleNormal},
	{chroma.Error, styling.RoleError},
	{chroma.GenericError, styling.RoleError},
	{chroma.GenericDeleted, styling.RoleError},
	{chroma.GenericInserted, styling.RoleSuccess},
	{chroma.GenericHeading, styling.RoleHeading1},
	{chroma.GenericSubheading, styling.RoleHeading3},
	{chroma.GenericEmph, styling.RoleEmphasis},
	{chroma.GenericStrong, styling.RoleEmphasis},
}

// chromaEntry is a chroma style entry for a role, e.g. "#ff79c6 bold".
func chromaEntry(theme *styling.Theme, r styling.Role) string {
	s := theme.StyleFor(r)
	var parts []string
	if s.Foreground != nil {
		parts = append(parts, s.Foreground.Hex())
	}
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.Underline {
		parts = append(parts, "underline")
	}
	return strings.Join(parts, " ")
}

// ChromaStyle builds a chroma style named after theme. Keywords use heading1,
// functions heading2, strings success, numbers warning, comments commentary,
// operators emphasis, builtins info and errors error. The background is the
// theme's background.
func ChromaStyle(theme *styling.Theme) (*chroma.Style, error) {
	if theme == nil {
		return nil, &styling.Error{Kind: styling.KindInvalidTheme, Message: "nil theme"}
	}
	b := chroma.NewStyleBuilder("thag-" + theme.Name)

	bg := "bg:" + styling.RGBToHex(theme.DefaultBackground())
	if fg, ok := theme.Palette.RGB(styling.RoleNormal); ok {
		bg += " " + styling.RGBToHex(fg)
	}
	b.Add(chroma.Background, bg)

	for _, m := range chromaRoles {
		if entry := chromaEntry(theme, m.role); entry != "" {
			b.Add(m.token, entry)
		}
	}
	return b.Build()
}

// FormatterFor picks the chroma terminal formatter for a support level.
func FormatterFor(s styling.ColorSupport) chroma.Formatter {
	switch s {
	case styling.TrueColor:
		return formatters.TTY16m
	case styling.Color256:
		return formatters.TTY256
	case styling.Basic:
		return formatters.TTY16
	default:
		return formatters.NoOp
	}
}

// Highlight colors code with theme. lang may be a language name, alias or
// file name; when it is empty or unknown the language is guessed from the
// code. On a terminal without color the code comes back unchanged.
func Highlight(theme *styling.Theme, code, lang string, support styling.ColorSupport) (string, error) {
	if support <= styling.None {
		return code, nil
	}

	lexer := lexers.Get(lang)
	if lexer == nil && lang != "" {
		lexer = lexers.Match(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style, err := ChromaStyle(theme)
	if err != nil {
		return "", err
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := FormatterFor(support).Format(&buf, style, iterator); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// LanguageOf names the language chroma detects in code, or "" when unsure.
func LanguageOf(code string) string {
	if lexer := lexers.Analyse(code); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}
