// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jeranaias/thagstyle/internal/logging"
	"github.com/jeranaias/thagstyle/internal/styling"
	"github.com/jeranaias/thagstyle/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a theme into one terminal emulator's scheme format.
type Exporter interface {
	// Export renders the theme and returns the file content.
	Export(theme *styling.Theme) ([]byte, error)

	// FileExtension returns the extension including the dot, or "" when the
	// format has none.
	FileExtension() string

	// FormatName returns the human readable emulator name.
	FormatName() string
}

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown export format")

// Format identifies a supported emulator format.
type Format int

const (
	FormatAlacritty Format = iota
	FormatWezTerm
	FormatITerm2
	FormatKitty
	FormatKonsole
	FormatMintty
	FormatWindowsTerminal

	formatCount
)

var formatIDs = [formatCount]string{
	"alacritty", "wezterm", "iterm2", "kitty", "konsole", "mintty", "windows-terminal",
}

// AllFormats returns every format in declaration order.
func AllFormats() []Format {
	out := make([]Format, 0, formatCount)
	for f := Format(0); f < formatCount; f++ {
		out = append(out, f)
	}
	return out
}

// FormatIDs returns the command line ids of every format.
func FormatIDs() []string {
	return append([]string{}, formatIDs[:]...)
}

// String returns the format id used on the command line and in config.
func (f Format) String() string {
	if f < 0 || f >= formatCount {
		return fmt.Sprintf("format(%d)", int(f))
	}
	return formatIDs[f]
}

// ParseFormat parses a format id. Underscores and case are ignored, and
// "wt" is accepted for Windows Terminal.
func ParseFormat(s string) (Format, error) {
	id := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	switch id {
	case "wt", "windowsterminal":
		return FormatWindowsTerminal, nil
	case "iterm", "itermcolors":
		return FormatITerm2, nil
	}
	for i, name := range formatIDs {
		if name == id {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q, must be one of: %s", ErrUnknownFormat, s, strings.Join(formatIDs[:], ", "))
}

// Exporter returns the implementation for f.
func (f Format) Exporter() Exporter {
	switch f {
	case FormatAlacritty:
		return AlacrittyExporter{}
	case FormatWezTerm:
		return WezTermExporter{}
	case FormatITerm2:
		return ITerm2Exporter{}
	case FormatKitty:
		return KittyExporter{}
	case FormatKonsole:
		return KonsoleExporter{}
	case FormatMintty:
		return MinttyExporter{}
	default:
		return WindowsTerminalExporter{}
	}
}

// Filename returns the file name ExportAll uses for base.
func (f Format) Filename(base string) string {
	ext := f.Exporter().FileExtension()
	switch f {
	case FormatAlacritty:
		return base + "_alacritty" + ext
	case FormatWezTerm:
		return base + "_wezterm" + ext
	case FormatWindowsTerminal:
		return base + "_windows_terminal" + ext
	case FormatMintty:
		return base + "_mintty" + ext
	default:
		return base + ext
	}
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures file export.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// Filename overrides the generated file name.
	Filename string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{OutputDir: "."}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders theme in format and writes it atomically.
// Returns the output file path.
func ExportToFile(theme *styling.Theme, format Format, opts *Options) (string, error) {
	if theme == nil {
		return "", errors.New("export: nil theme")
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	exp := format.Exporter()
	content, err := exp.Export(theme)
	if err != nil {
		return "", fmt.Errorf("export %s failed: %w", exp.FormatName(), err)
	}

	filename := opts.Filename
	if filename == "" {
		filename = format.Filename(SanitizeFilename(theme.Name))
	}
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}

	outputPath := filepath.Join(dir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	logging.Verbosef("EXPORT | format=%s theme=%s path=%s bytes=%d", format, theme.Name, outputPath, len(content))

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			// The file exists either way
			logging.Warnf("could not open %s: %v", outputPath, err)
		}
	}

	return outputPath, nil
}

// ExportAll writes every format into dir using base for the file names.
// A format that fails is logged and skipped. The written paths are returned.
func ExportAll(theme *styling.Theme, dir, base string) ([]string, error) {
	if theme == nil {
		return nil, errors.New("export: nil theme")
	}
	if base == "" {
		base = SanitizeFilename(theme.Name)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var written []string
	for _, f := range AllFormats() {
		path, err := ExportToFile(theme, f, &Options{OutputDir: dir, Filename: f.Filename(base)})
		if err != nil {
			logging.Warnf("failed to export %s theme: %v", f.Exporter().FormatName(), err)
			continue
		}
		written = append(written, path)
	}
	if len(written) == 0 {
		return nil, fmt.Errorf("export %s: no format could be written", theme.Name)
	}
	return written, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// SanitizeFilename removes or replaces characters that are invalid in filenames.
func SanitizeFilename(s string) string {
	maxLen := 50
	runes := []rune(strings.TrimSpace(s))
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	// Windows and Unix
	replacer := map[rune]rune{
		'/':  '-',
		'\\': '-',
		':':  '-',
		'*':  '-',
		'?':  '-',
		'"':  '-',
		'<':  '-',
		'>':  '-',
		'|':  '-',
		' ':  '_',
		'\t': '_',
	}

	result := make([]rune, 0, len(runes))
	for _, r := range runes {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "theme"
	}
	return string(result)
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		// Empty quoted title, path last
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
