// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/thagstyle/internal/styling"
)

// ParseOSCColor parses a terminal color report. It accepts a full OSC
// response ("\x1b]11;rgb:1e1e/1e1e/2e2e\x07"), the bare "rgb:R/G/B" body
// with 1-4 hex digits per channel, or "#rrggbb".
func ParseOSCColor(resp string) ([3]uint8, error) {
	s := strings.TrimSpace(resp)
	s = strings.TrimSuffix(s, "\x07")
	s = strings.TrimSuffix(s, "\x1b\\")

	if i := strings.Index(s, "rgb:"); i >= 0 {
		return parseRGBSpec(s[i+len("rgb:"):])
	}
	if i := strings.LastIndex(s, "#"); i >= 0 {
		return styling.HexToRGB(s[i:])
	}
	return [3]uint8{}, fmt.Errorf("unrecognized color report %q", resp)
}

func parseRGBSpec(body string) ([3]uint8, error) {
	parts := strings.Split(body, "/")
	if len(parts) != 3 {
		return [3]uint8{}, fmt.Errorf("color report %q: want 3 channels", body)
	}
	var out [3]uint8
	for i, p := range parts {
		if len(p) == 0 || len(p) > 4 {
			return [3]uint8{}, fmt.Errorf("color report %q: bad channel %q", body, p)
		}
		v, err := strconv.ParseUint(p, 16, 16)
		if err != nil {
			return [3]uint8{}, fmt.Errorf("color report %q: %w", body, err)
		}
		switch len(p) {
		case 1:
			v *= 17
		case 3:
			v >>= 4
		case 4:
			v >>= 8
		}
		out[i] = uint8(v)
	}
	return out, nil
}
