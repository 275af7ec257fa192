// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styling

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// BackgroundMatchThreshold is the largest Euclidean RGB distance at which a
// theme background still counts as matching the terminal background.
const BackgroundMatchThreshold = 30.0

// cubeSteps are the channel levels of the xterm 6x6x6 color cube.
var cubeSteps = [6]uint8{0, 95, 135, 175, 215, 255}

// basicColors is the 128-based table used for indices 0-15.
var basicColors = [16][3]uint8{
	{0, 0, 0},
	{128, 0, 0},
	{0, 128, 0},
	{128, 128, 0},
	{0, 0, 128},
	{128, 0, 128},
	{0, 128, 128},
	{192, 192, 192},
	{128, 128, 128},
	{255, 0, 0},
	{0, 255, 0},
	{255, 255, 0},
	{0, 0, 255},
	{255, 0, 255},
	{0, 255, 255},
	{255, 255, 255},
}

// vgaColors is the 170/85-based table used when downgrading true color to 16 colors.
var vgaColors = [16][3]uint8{
	{0, 0, 0},
	{170, 0, 0},
	{0, 170, 0},
	{170, 85, 0},
	{0, 0, 170},
	{170, 0, 170},
	{0, 170, 170},
	{170, 170, 170},
	{85, 85, 85},
	{255, 85, 85},
	{85, 255, 85},
	{255, 255, 85},
	{85, 85, 255},
	{255, 85, 255},
	{85, 255, 255},
	{255, 255, 255},
}

// IndexToRGB returns the RGB value of a 256-color palette index.
func IndexToRGB(index uint8) [3]uint8 {
	switch {
	case index < 16:
		return basicColors[index]
	case index >= 232:
		g := (index-232)*10 + 8
		return [3]uint8{g, g, g}
	}
	n := index - 16
	return [3]uint8{(n / 36) * 51, ((n % 36) / 6) * 51, (n % 6) * 51}
}

// CubeRGB is like IndexToRGB but uses the real xterm cube levels for 16-231.
func CubeRGB(index uint8) [3]uint8 {
	if index < 16 || index >= 232 {
		return IndexToRGB(index)
	}
	n := index - 16
	return [3]uint8{cubeSteps[(n/36)%6], cubeSteps[(n/6)%6], cubeSteps[n%6]}
}

// FindClosestColor maps an RGB value to the nearest xterm 256-color index,
// preferring the grayscale ramp for neutral colors.
func FindClosestColor(rgb [3]uint8) uint8 {
	if rgb[0] == rgb[1] && rgb[1] == rgb[2] {
		r := rgb[0]
		if r < 4 {
			return 16
		}
		if r > 238 {
			return 231
		}
		idx := math.Round((float64(r) - 8) / 10)
		if idx < 24 {
			return 232 + uint8(idx)
		}
	}
	return 16 + 36*closestStep(rgb[0]) + 6*closestStep(rgb[1]) + closestStep(rgb[2])
}

func closestStep(v uint8) uint8 {
	best, bestDist := 0, math.MaxInt
	for i, s := range cubeSteps {
		d := int(s) - int(v)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// baseDistance is a luminance-weighted squared distance, truncated.
func baseDistance(a, b [3]uint8) uint32 {
	dr := float64(int(a[0])-int(b[0])) * 0.3
	dg := float64(int(a[1])-int(b[1])) * 0.59
	db := float64(int(a[2])-int(b[2])) * 0.11
	return uint32(dr*dr + dg*dg + db*db)
}

// FindClosestBasicColor returns the 0-15 index whose 128-based RGB is
// perceptually nearest to rgb.
func FindClosestBasicColor(rgb [3]uint8) uint8 {
	best := 0
	bestDist := uint32(math.MaxUint32)
	for i, c := range basicColors {
		if d := baseDistance(rgb, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// ConvertRGBToANSI returns the 0-15 index of the nearest VGA color.
func ConvertRGBToANSI(rgb [3]uint8) uint8 {
	best := 0
	bestDist := math.MaxFloat64
	for i, c := range vgaColors {
		if d := ColorDistance(rgb, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// ColorDistance is the Euclidean distance between two RGB values.
func ColorDistance(a, b [3]uint8) float64 {
	dr := float64(a[0]) - float64(b[0])
	dg := float64(a[1]) - float64(b[1])
	db := float64(a[2]) - float64(b[2])
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// IsLightColor reports whether perceived brightness is above the midpoint.
func IsLightColor(rgb [3]uint8) bool {
	l := (0.299*float64(rgb[0]) + 0.587*float64(rgb[1]) + 0.114*float64(rgb[2])) / 255
	return l > 0.5
}

// HexToRGB parses "#rrggbb" or "rrggbb".
func HexToRGB(s string) ([3]uint8, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return [3]uint8{}, parseError("hex color %q: need 6 hex digits", s)
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return [3]uint8{}, parseError("hex color %q: %v", s, err)
	}
	r, g, b := c.RGB255()
	return [3]uint8{r, g, b}, nil
}

// RGBToHex formats lowercase "#rrggbb".
func RGBToHex(rgb [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}

// AdjustBrightness scales each channel by factor. Very dark colors get an
// additive boost when brightening so the result stays visible.
func AdjustBrightness(rgb [3]uint8, factor float64) [3]uint8 {
	add := 0.0
	if rgb[0] < 50 && rgb[1] < 50 && rgb[2] < 50 && factor > 1 {
		add = 80
	}
	var out [3]uint8
	for i, v := range rgb {
		out[i] = uint8(clamp(float64(v)*factor+add, 0, 255))
	}
	return out
}

// Brighten scales by 1.3.
func Brighten(rgb [3]uint8) [3]uint8 { return AdjustBrightness(rgb, 1.3) }

// Dim scales by 0.6.
func Dim(rgb [3]uint8) [3]uint8 { return AdjustBrightness(rgb, 0.6) }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
