// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package detect works out what the terminal can display.
//
// It classifies color support from the environment and, when attached to a
// TTY, from live OSC queries: a true color probe through OSC 10 and a
// background query through OSC 11. The background color then gives the
// light/dark luma that theme selection keys on.
//
// # Key Types
//
//   - Result: everything detection learned, ready for styling.Initialize
//   - Terminal: the live terminal operations, faked in tests
//   - Overrides: configured values that win over detection
//
// # Usage
//
//	res := detect.Detect(ctx, detect.Options{})
//	fmt.Println(res.Support, res.Luma, res.BgHex())
//
//	attrs := styling.Initialize(styling.InitOptions{
//		Strategy: styling.StrategyMatch,
//		Detect:   res.AsDetectFunc(),
//	})
package detect
