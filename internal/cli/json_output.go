// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output support for scripting.

package cli

import (
	"encoding/json"
	"io"
	"time"
)

// JSONResponse is the standardized response format for --json output.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response, indented, to w.
func (r *JSONResponse) Print(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// DetectData is returned by detect.
type DetectData struct {
	ColorSupport   string   `json:"color_support"`
	Background     string   `json:"background,omitempty"`
	BgDetected     bool     `json:"background_detected"`
	TermBgLuma     string   `json:"term_bg_luma"`
	IsTTY          bool     `json:"is_tty"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	Theme          string   `json:"theme"`
	HowInitialized string   `json:"how_initialized"`
	Hints          []string `json:"hints,omitempty"`
}

// ThemeListEntry is one row of list.
type ThemeListEntry struct {
	Name        string   `json:"name"`
	TermBgLuma  string   `json:"term_bg_luma"`
	MinSupport  string   `json:"min_color_support"`
	Backgrounds []string `json:"backgrounds"`
	Builtin     bool     `json:"builtin"`
	Description string   `json:"description,omitempty"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// IndexStatsData is returned by index stats.
type IndexStatsData struct {
	ThemeDir        string `json:"theme_dir"`
	DatabasePath    string `json:"database_path"`
	ThemeCount      int    `json:"theme_count"`
	LightCount      int    `json:"light_count"`
	DarkCount       int    `json:"dark_count"`
	BackgroundCount int    `json:"background_count"`
	DatabaseSize    int64  `json:"database_size"`
	LastIndexed     string `json:"last_indexed,omitempty"`
}
