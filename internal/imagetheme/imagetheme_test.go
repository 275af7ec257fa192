// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package imagetheme

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/thagstyle/internal/styling"
)

type band struct {
	c    color.RGBA
	rows int
}

// striped builds a 100-pixel-wide image of horizontal bands.
func striped(bands ...band) *image.RGBA {
	h := 0
	for _, b := range bands {
		h += b.rows
	}
	img := image.NewRGBA(image.Rect(0, 0, 100, h))
	y := 0
	for _, b := range bands {
		for i := 0; i < b.rows; i++ {
			for x := 0; x < 100; x++ {
				img.SetRGBA(x, y, b.c)
			}
			y++
		}
	}
	return img
}

var (
	red    = color.RGBA{220, 40, 40, 255}
	green  = color.RGBA{40, 200, 60, 255}
	blue   = color.RGBA{50, 100, 230, 255}
	yellow = color.RGBA{230, 200, 40, 255}
)

func darkImage() *image.RGBA {
	return striped(
		band{color.RGBA{16, 16, 24, 255}, 60},
		band{red, 10}, band{green, 10}, band{blue, 10}, band{yellow, 10},
	)
}

func lightImage() *image.RGBA {
	return striped(
		band{color.RGBA{250, 250, 250, 255}, 70},
		band{red, 10}, band{green, 10}, band{blue, 10},
	)
}

func labL(t *testing.T, theme *styling.Theme, r styling.Role) float64 {
	t.Helper()
	rgb, ok := theme.Palette.RGB(r)
	require.True(t, ok, "role %s unset", r)
	l, _, _ := colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}.Lab()
	return l
}

func hueOf(t *testing.T, theme *styling.Theme, r styling.Role) float64 {
	t.Helper()
	rgb, ok := theme.Palette.RGB(r)
	require.True(t, ok)
	h, _, _ := colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}.Hsl()
	return h
}

func TestDominantColors(t *testing.T) {
	sw := dominantColors(darkImage(), 16)
	require.Len(t, sw, 5)
	assert.Equal(t, [3]uint8{16, 16, 24}, sw[0].rgb)
	assert.InDelta(t, 0.6, sw[0].weight, 0.001)

	sw = dominantColors(darkImage(), 2)
	assert.Len(t, sw, 2)

	lines := Swatches(darkImage(), 1)
	assert.Equal(t, []string{"#101018 60.0%"}, lines)
}

func TestGenerateDark(t *testing.T) {
	theme, err := Generate(darkImage(), Config{Name: "Night"})
	require.NoError(t, err)

	assert.Equal(t, "Night", theme.Name)
	assert.Equal(t, styling.Dark, theme.TermBgLuma)
	assert.Equal(t, styling.TrueColor, theme.MinColorSupport)
	assert.Equal(t, []string{"#101018"}, theme.Backgrounds)

	bgL, _, _ := colorful.Color{R: 16.0 / 255, G: 16.0 / 255, B: 24.0 / 255}.Lab()

	for _, r := range styling.AllRoles() {
		assert.GreaterOrEqual(t, labL(t, theme, r)-bgL, 0.27, "role %s too close to background", r)
	}
	assert.GreaterOrEqual(t, labL(t, theme, styling.RoleNormal)-bgL, 0.7)

	assert.True(t, hueRed.contains(hueOf(t, theme, styling.RoleError)), "error hue")
	assert.True(t, hueGreen.contains(hueOf(t, theme, styling.RoleSuccess)), "success hue")
	assert.True(t, hueBlue.contains(hueOf(t, theme, styling.RoleInfo)), "info hue")
	assert.True(t, hueOrange.contains(hueOf(t, theme, styling.RoleWarning)), "warning hue")

	assert.True(t, theme.StyleFor(styling.RoleHeading1).Bold)
	assert.True(t, theme.StyleFor(styling.RoleLink).Underline)

	// The generated theme survives a round trip through TOML.
	back, err := styling.FromTOML("night", theme.ToTOML())
	require.NoError(t, err)
	assert.Equal(t, theme.Backgrounds, back.Backgrounds)
}

func TestGenerateLight(t *testing.T) {
	theme, err := Generate(lightImage(), Config{})
	require.NoError(t, err)
	assert.Equal(t, styling.Light, theme.TermBgLuma)
	assert.Equal(t, "Generated", theme.Name)

	bg := theme.DefaultBackground()
	assert.True(t, styling.IsLightColor(bg))
	assert.Less(t, labL(t, theme, styling.RoleNormal), 0.35)
}

func TestForceLuma(t *testing.T) {
	theme, err := Generate(darkImage(), Config{ForceLuma: styling.Light})
	require.NoError(t, err)
	assert.Equal(t, styling.Light, theme.TermBgLuma)
	assert.True(t, styling.IsLightColor(theme.DefaultBackground()))
}

func TestGenerateTransparent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	_, err := Generate(img, Config{})
	assert.ErrorIs(t, err, ErrNoColors)
}

func TestGenerateFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sunset_beach.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, darkImage()))
	require.NoError(t, f.Close())

	theme, err := GenerateFromFile(path, Config{})
	require.NoError(t, err)
	assert.Equal(t, "Sunset Beach", theme.Name)
	assert.Equal(t, "Generated from sunset_beach.png", theme.Description)

	_, err = GenerateFromFile(filepath.Join(dir, "missing.png"), Config{})
	assert.True(t, errors.Is(err, styling.ErrIO))

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))
	_, err = GenerateFromFile(bad, Config{})
	assert.True(t, errors.Is(err, styling.ErrParse))
}

func TestNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"sunset_beach.png", "Sunset Beach"},
		{"/tmp/my-photo.final.jpg", "My Photo Final"},
		{"forest", "Forest"},
		{"___.png", "Generated"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, NameFromPath(tt.path))
		})
	}
}

func TestHueRangeWraps(t *testing.T) {
	assert.True(t, hueRed.contains(350))
	assert.True(t, hueRed.contains(5))
	assert.False(t, hueRed.contains(40))
	assert.True(t, hueGreen.contains(120))
}
