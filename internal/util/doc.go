// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the thagstyle packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync, used for config
//     files and exported terminal themes
//
// Display Width:
//   - StringWidth: Column width of a string (East Asian wide aware)
//   - TruncateWidth: Width-bounded truncation with ellipsis
//   - PadRight: Pad a string to a column width for table output
//
// # Usage
//
//	// Write an exported theme atomically
//	err := util.AtomicWriteFile(path, data, 0644)
//
//	// Align theme names in `thagstyle list`
//	cell := util.PadRight(util.TruncateWidth(name, 24), 24)
package util
