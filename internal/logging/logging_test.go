// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		input   string
		want    Verbosity
		wantErr bool
	}{
		{"quiet", Quiet, false},
		{"", Normal, false},
		{"Normal", Normal, false},
		{"verbose", Verbose, false},
		{"debug", Debug, false},
		{"vv", Debug, false},
		{"loud", Normal, true},
	}

	for _, tc := range tests {
		got, err := ParseVerbosity(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseVerbosity(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseVerbosity(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestVerbosityGate(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetVerbosity(Normal)

	SetVerbosity(Normal)
	Warnf("THEME_LOAD | name=%s", "missing")
	Verbosef("THEME_LOAD | name=%s", "dracula")
	Debugf("DETECT | support=%s", "basic")

	out := buf.String()
	if !strings.Contains(out, "WARN | THEME_LOAD | name=missing") {
		t.Errorf("warning not written, got %q", out)
	}
	if strings.Contains(out, "dracula") || strings.Contains(out, "DETECT") {
		t.Errorf("verbose/debug output leaked at normal level: %q", out)
	}

	buf.Reset()
	SetVerbosity(Debug)
	Debugf("DETECT | support=%s", "basic")
	if !strings.Contains(buf.String(), "DETECT | support=basic") {
		t.Errorf("debug output missing at debug level: %q", buf.String())
	}

	buf.Reset()
	SetVerbosity(Quiet)
	Warnf("nothing")
	if buf.Len() != 0 {
		t.Errorf("quiet level should suppress warnings, got %q", buf.String())
	}
}
