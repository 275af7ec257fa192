// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package integrations

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/thagstyle/internal/styling"
)

func builtin(t *testing.T, name string) *styling.Theme {
	t.Helper()
	theme, err := styling.Builtin(name)
	require.NoError(t, err)
	return theme
}

// =============================================================================
// LIPGLOSS
// =============================================================================

func TestLipglossColor(t *testing.T) {
	tests := []struct {
		name  string
		color styling.ColorInfo
		want  lipgloss.TerminalColor
	}{
		{"true color", styling.NewRGB(255, 121, 198), lipgloss.Color("#ff79c6")},
		{"color256", styling.NewColor256(208), lipgloss.Color("208")},
		{"basic", styling.NewBasic(9), lipgloss.Color("9")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LipglossColor(tt.color))
		})
	}
}

func TestLipglossStyleCarriesAttributes(t *testing.T) {
	s := styling.StyleFg(styling.NewRGB(1, 2, 3)).Bolded().Italicized().Dimmed().Underlined()
	ls := LipglossStyle(s)
	assert.Equal(t, lipgloss.Color("#010203"), ls.GetForeground())
	assert.True(t, ls.GetBold())
	assert.True(t, ls.GetItalic())
	assert.True(t, ls.GetFaint())
	assert.True(t, ls.GetUnderline())

	plain := LipglossStyle(styling.Style{})
	assert.Equal(t, lipgloss.NoColor{}, plain.GetForeground())
	assert.False(t, plain.GetBold())
}

func TestThemeStyles(t *testing.T) {
	theme := builtin(t, "dracula")
	st := ThemeStyles(theme)

	assert.Equal(t, lipgloss.Color("#ff79c6"), st.Title.GetForeground())
	assert.True(t, st.Title.GetBold())
	assert.Equal(t, lipgloss.Color("#bd93f9"), st.Heading.GetForeground())
	assert.Equal(t, lipgloss.Color("#ff5555"), st.Error.GetForeground())
	assert.Equal(t, lipgloss.Color("#50fa7b"), st.Success.GetForeground())
	assert.True(t, st.Link.GetUnderline())
	assert.Equal(t, lipgloss.Color("#8be9fd"), st.Box.GetBorderTopForeground())

	// A nil theme still yields usable styles.
	empty := ThemeStyles(nil)
	assert.Equal(t, lipgloss.NoColor{}, empty.Title.GetForeground())
	assert.Equal(t, lipgloss.NoColor{}, RoleStyle(nil, styling.RoleError).GetForeground())
}

// =============================================================================
// TERMENV
// =============================================================================

func TestProfileFor(t *testing.T) {
	assert.Equal(t, termenv.TrueColor, ProfileFor(styling.TrueColor))
	assert.Equal(t, termenv.ANSI256, ProfileFor(styling.Color256))
	assert.Equal(t, termenv.ANSI, ProfileFor(styling.Basic))
	assert.Equal(t, termenv.Ascii, ProfileFor(styling.None))
	assert.Equal(t, termenv.Ascii, ProfileFor(styling.Undetermined))
}

func TestTermenvStyle(t *testing.T) {
	s := styling.StyleFg(styling.NewRGB(255, 121, 198)).Bolded()

	t.Run("true color", func(t *testing.T) {
		out := TermenvStyle(termenv.TrueColor, s, "hi")
		assert.Contains(t, out, "38;2;255;121;198")
		assert.Contains(t, out, ";1m")
		assert.True(t, strings.HasSuffix(out, "hi\x1b[0m"))
	})

	t.Run("downsampled", func(t *testing.T) {
		out := TermenvStyle(termenv.ANSI256, s, "hi")
		assert.Contains(t, out, "38;5;")
		assert.NotContains(t, out, "38;2;")
	})

	t.Run("ascii is plain", func(t *testing.T) {
		assert.Equal(t, "hi", TermenvStyle(termenv.Ascii, s, "hi"))
	})

	t.Run("indexed color", func(t *testing.T) {
		c := TermenvColor(termenv.ANSI, styling.NewBasic(9))
		require.NotNil(t, c)
		assert.Equal(t, termenv.ANSIColor(9), c)
		assert.Nil(t, TermenvColor(termenv.Ascii, styling.NewBasic(9)))
	})
}

// =============================================================================
// PROMPTS
// =============================================================================

func TestPromptStylesApplyTextInput(t *testing.T) {
	theme := builtin(t, "dracula")
	ps := NewPromptStyles(theme)
	ti := textinput.New()
	ps.ApplyTextInput(&ti)

	assert.Equal(t, lipgloss.Color("#bd93f9"), ti.PromptStyle.GetForeground())
	assert.Equal(t, lipgloss.Color("#f8f8f2"), ti.TextStyle.GetForeground())
	assert.Equal(t, lipgloss.Color("#6272a4"), ti.PlaceholderStyle.GetForeground())
	assert.Equal(t, lipgloss.Color("#ff79c6"), ti.Cursor.Style.GetForeground())
	assert.Equal(t, lipgloss.Color("#ff5555"), ps.Error.GetForeground())
}

func TestListStyles(t *testing.T) {
	theme := builtin(t, "dracula")

	ls := ListStyles(theme)
	assert.Equal(t, lipgloss.Color("#ff79c6"), ls.Title.GetBackground())
	assert.Equal(t, lipgloss.Color("#282a36"), ls.Title.GetForeground())
	assert.Equal(t, lipgloss.Color("#50fa7b"), ls.FilterPrompt.GetForeground())

	items := ListItemStyles(theme)
	assert.Equal(t, lipgloss.Color("#f8f8f2"), items.NormalTitle.GetForeground())
	assert.Equal(t, lipgloss.Color("#ff79c6"), items.SelectedTitle.GetForeground())
	assert.Equal(t, lipgloss.Color("#bd93f9"), items.SelectedTitle.GetBorderLeftForeground())
	assert.Equal(t, lipgloss.Color("#6272a4"), items.DimmedTitle.GetForeground())
}

// =============================================================================
// GLAMOUR
// =============================================================================

func TestMarkdownStyle(t *testing.T) {
	tests := []struct {
		theme   string
		h1, h2  string
		code    string
		link    string
		quote   string
		text    string
		lightBg bool
	}{
		{"dracula", "#ff79c6", "#bd93f9", "#f1fa8c", "#8be9fd", "#e6e6e6", "#f8f8f2", false},
		{"basic_dark", "12", "14", "", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.theme, func(t *testing.T) {
			cfg := MarkdownStyle(builtin(t, tt.theme))
			require.NotNil(t, cfg.H1.Color)
			assert.Equal(t, tt.h1, *cfg.H1.Color)
			assert.Nil(t, cfg.H1.BackgroundColor)
			require.NotNil(t, cfg.H2.Color)
			assert.Equal(t, tt.h2, *cfg.H2.Color)
			if tt.code != "" {
				assert.Equal(t, tt.code, *cfg.Code.Color)
				assert.Equal(t, tt.link, *cfg.Link.Color)
				assert.Equal(t, tt.quote, *cfg.BlockQuote.Color)
				assert.Equal(t, tt.text, *cfg.Text.Color)
			}
			require.NotNil(t, cfg.CodeBlock.Chroma)
			assert.Equal(t, *cfg.H1.Color, *cfg.CodeBlock.Chroma.Keyword.Color)
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	theme := builtin(t, "dracula")
	md := "# Title\n\nSome *emphasis* and `code`.\n"

	colored, err := RenderMarkdown(theme, md, 60, styling.TrueColor)
	require.NoError(t, err)
	assert.Contains(t, colored, "Title")
	assert.Contains(t, colored, "38;2;255;121;198")

	plain, err := RenderMarkdown(theme, md, 0, styling.None)
	require.NoError(t, err)
	assert.Contains(t, plain, "Title")
	assert.NotContains(t, plain, "\x1b[38;2")
}

// =============================================================================
// CHROMA
// =============================================================================

func TestChromaStyle(t *testing.T) {
	style, err := ChromaStyle(builtin(t, "dracula"))
	require.NoError(t, err)
	assert.Equal(t, "thag-dracula", style.Name)

	tests := []struct {
		token chroma.TokenType
		want  string
	}{
		{chroma.Keyword, "#ff79c6"},
		{chroma.KeywordDeclaration, "#ff79c6"},
		{chroma.NameFunction, "#bd93f9"},
		{chroma.LiteralString, "#50fa7b"},
		{chroma.LiteralStringDouble, "#50fa7b"},
		{chroma.LiteralNumber, "#ffb86c"},
		{chroma.Comment, "#6272a4"},
		{chroma.Operator, "#ff79c6"},
		{chroma.NameBuiltin, "#8be9fd"},
		{chroma.GenericError, "#ff5555"},
	}
	for _, tt := range tests {
		t.Run(tt.token.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, style.Get(tt.token).Colour.String())
		})
	}

	bg := style.Get(chroma.Background)
	assert.Equal(t, "#282a36", bg.Background.String())
	assert.Equal(t, "#f8f8f2", bg.Colour.String())
	assert.Equal(t, chroma.Yes, style.Get(chroma.Keyword).Bold)

	_, err = ChromaStyle(nil)
	assert.Error(t, err)
}

func TestHighlight(t *testing.T) {
	theme := builtin(t, "dracula")
	code := "package main\n\nfunc main() {\n\tprintln(\"hi\", 42)\n}\n"

	tests := []struct {
		name     string
		support  styling.ColorSupport
		contains []string
		absent   []string
	}{
		{"true color", styling.TrueColor, []string{"\x1b[38;2;255;121;198m", "\x1b[38;2;80;250;123m"}, nil},
		{"color256", styling.Color256, []string{"\x1b[38;5;"}, []string{"38;2;"}},
		{"basic", styling.Basic, []string{"\x1b["}, []string{"38;2;", "38;5;"}},
		{"none", styling.None, nil, []string{"\x1b["}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Highlight(theme, code, "go", tt.support)
			require.NoError(t, err)
			assert.Contains(t, out, "func")
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}

	t.Run("file name and unknown language", func(t *testing.T) {
		out, err := Highlight(theme, code, "main.go", styling.TrueColor)
		require.NoError(t, err)
		assert.Contains(t, out, "\x1b[38;2;255;121;198m")

		out, err = Highlight(theme, "just words", "no-such-language", styling.TrueColor)
		require.NoError(t, err)
		assert.Contains(t, out, "just")
		assert.Contains(t, out, "words")
	})
}
