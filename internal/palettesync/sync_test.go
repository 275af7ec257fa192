// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package palettesync

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/thagstyle/internal/styling"
)

func TestSequencesCounts(t *testing.T) {
	theme, err := styling.Builtin("dracula")
	require.NoError(t, err)

	seqs := Sequences(theme)
	require.Len(t, seqs, 21)

	osc4 := 0
	for _, s := range seqs {
		if strings.HasPrefix(s, "\x1b]4;") {
			osc4++
		}
		assert.True(t, strings.HasSuffix(s, "\x07"), "sequence %q must end in BEL", s)
	}
	assert.Equal(t, 16, osc4)

	assert.Equal(t, "\x1b]4;0;rgb:28/2a/36\x07", seqs[0])
	assert.Equal(t, "\x1b]11;rgb:28/2a/36\x07", seqs[16])
	for i, code := range []string{"10", "12", "17", "19"} {
		assert.True(t, strings.HasPrefix(seqs[17+i], "\x1b]"+code+";rgb:"), "sequence %d", 17+i)
	}
	assert.Equal(t, setColor(oscCursor, theme.CursorRGB()), seqs[18])
	assert.Equal(t, setColor(oscSelectionBg, theme.SelectionRGB()), seqs[19])
}

func TestSequencesFallbacks(t *testing.T) {
	bare := &styling.Theme{Name: "bare", TermBgLuma: styling.Light}
	seqs := Sequences(bare)

	// No background declared: light themes assume white
	assert.Equal(t, "\x1b]11;rgb:ff/ff/ff\x07", seqs[16])
	assert.Equal(t, "\x1b]10;rgb:80/80/80\x07", seqs[17])
	assert.Equal(t, "\x1b]12;rgb:80/80/80\x07", seqs[18])
}

func TestApplyAndReset(t *testing.T) {
	theme, err := styling.Builtin("nord")
	require.NoError(t, err)

	var buf bytes.Buffer
	s := NewSync(&buf)
	require.NoError(t, s.Apply(theme))
	assert.Equal(t, strings.Join(Sequences(theme), ""), buf.String())

	buf.Reset()
	require.NoError(t, s.Reset())
	assert.Equal(t, "\x1b]104\x07\x1b]110\x07\x1b]111\x07\x1b]112\x07\x1b]117\x07\x1b]119\x07", buf.String())
	assert.Len(t, ResetSequences(), 6)

	assert.Error(t, s.Apply(nil))
}

func TestDemonstrate(t *testing.T) {
	var buf bytes.Buffer
	Demonstrate(&buf)
	out := buf.String()
	assert.Contains(t, out, "Bright White")
	assert.Contains(t, out, "(ANSI 15)")
	assert.Contains(t, out, "\x1b[97m")
}
