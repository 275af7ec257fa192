// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for thag.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - StylingConfig: detection overrides and theme preferences
//   - ExportConfig: exporter output directory and formats
//   - UIConfig: verbosity and browser behavior
//   - IndexConfig: theme catalog database settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (THAG_*)
//   - ~/.thag/config.toml
//   - ~/.thag/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	attrs := styling.Configure(cfg.ColorSupport(), cfg.TermBgLuma(), cfg.TermBgRGB(), cfg.Preferences())
package config
