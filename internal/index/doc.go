// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index keeps a SQLite catalog of user theme files.
//
// The catalog records each theme's name, luma, minimum color support and
// declared backgrounds so background matching can run as a query instead of
// parsing every file. A Catalog implements styling.ThemeSource and can be
// handed to styling.NewSelector alongside the builtins.
//
// # Key Types
//
//   - Catalog: SQLite-backed theme catalog
//   - Entry: one indexed theme
//   - Change: a watcher notification
//
// # Usage
//
// Build a catalog over a theme directory:
//
//	cat, err := index.NewCatalog(index.DefaultConfig("~/.config/thag/themes"))
//	err = cat.Index(ctx)
//
// Let selection consider catalog themes:
//
//	sel := styling.NewSelector(prefs, cat)
//
// Keep the catalog current while the directory changes:
//
//	err = cat.Watch(ctx)
//	for ch := range cat.Changes() {
//	    fmt.Println(ch.Op, ch.Name)
//	}
package index
