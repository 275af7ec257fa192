// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	large := make([]byte, 1<<20)
	for i := range large {
		large[i] = byte(i % 251)
	}

	tests := []struct {
		name string
		rel  string
		data []byte
	}{
		{"theme file", "nord.toml", []byte("name = \"nord\"\n")},
		{"creates parent dirs", filepath.Join("schemes", "kitty", "nord.conf"), []byte("background #2e3440\n")},
		{"empty", "empty.json", []byte{}},
		{"large", "large.bin", large},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.rel)
			if err := AtomicWriteFile(path, tt.data, 0644); err != nil {
				t.Fatalf("AtomicWriteFile: %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read back: %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("content mismatch: %d bytes, want %d", len(got), len(tt.data))
			}
		})
	}
}

func TestAtomicWriteFileReplacesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	for _, content := range []string{`{"schemes": []}`, `{"schemes": [{"name": "nord"}]}`} {
		if err := AtomicWriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("AtomicWriteFile: %v", err)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(got), "nord") {
		t.Errorf("second write not visible: %s", got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only settings.json, found %d entries", len(entries))
	}
}

func TestAtomicWriteFileWithDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private", "history")
	if err := AtomicWriteFileWithDir(path, []byte("dracula\n"), 0600, 0700); err != nil {
		t.Fatalf("AtomicWriteFileWithDir: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file not created: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

// =============================================================================
// DISPLAY WIDTH TESTS
// =============================================================================

func TestStringWidth(t *testing.T) {
	testCases := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"dracula", 7},
		{"日本", 4},
		{"ab日", 4},
	}

	for _, tc := range testCases {
		if got := StringWidth(tc.input); got != tc.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	testCases := []struct {
		input    string
		maxWidth int
		want     string
	}{
		{"espresso", 20, "espresso"},
		{"catppuccin_mocha", 10, "catppuc..."},
		{"solarized", 3, "sol"},
		{"anything", 0, ""},
	}

	for _, tc := range testCases {
		if got := TruncateWidth(tc.input, tc.maxWidth); got != tc.want {
			t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tc.input, tc.maxWidth, got, tc.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("nord", 6); got != "nord  " {
		t.Errorf("PadRight = %q, want %q", got, "nord  ")
	}
	if got := PadRight("日本", 5); got != "日本 " {
		t.Errorf("PadRight wide = %q, want %q", got, "日本 ")
	}
	if got := PadRight("toolong", 3); got != "toolong" {
		t.Errorf("PadRight should not cut, got %q", got)
	}
}
