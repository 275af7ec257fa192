// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and help text for thag.

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/jeranaias/thagstyle/internal/export"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdHelp Command = iota
	CmdVersion
	CmdDetect
	CmdList
	CmdShow
	CmdExport
	CmdSync
	CmdConvert
	CmdImage
	CmdBrowse
	CmdMarkdown
	CmdHighlight
	CmdPick
	CmdConfig
	CmdIndex
	CmdUnknown
)

var commandNames = map[string]Command{
	"help":      CmdHelp,
	"version":   CmdVersion,
	"detect":    CmdDetect,
	"list":      CmdList,
	"ls":        CmdList,
	"show":      CmdShow,
	"export":    CmdExport,
	"sync":      CmdSync,
	"convert":   CmdConvert,
	"image":     CmdImage,
	"browse":    CmdBrowse,
	"markdown":  CmdMarkdown,
	"md":        CmdMarkdown,
	"highlight": CmdHighlight,
	"pick":      CmdPick,
	"config":    CmdConfig,
	"index":     CmdIndex,
}

// String returns the canonical command name.
func (c Command) String() string {
	for _, name := range []string{
		"help", "version", "detect", "list", "show", "export", "sync", "convert",
		"image", "browse", "markdown", "highlight", "pick", "config", "index",
	} {
		if commandNames[name] == c {
			return name
		}
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Debug   bool
	JSON    bool
	NoColor bool
	Theme   string // --theme NAME
	Support string // --support LEVEL

	// Name is the command word as typed.
	Name string
	// Raw holds the arguments after the command, global flags removed.
	Raw []string
}

const usageText = `thag - terminal color detection and theming

Usage:
  thag <command> [arguments] [flags]

Commands:
  detect                         Show color support, background, luma and chosen theme
  list                           List builtin and catalog themes
    --light | --dark             Only themes for that background
    --support LEVEL              Only themes that fit the support level
  show [theme]                   Paint every role with a theme
    --format text|toml|yaml|json Output format (default: text)
  export <theme>                 Write terminal emulator color schemes
    --format FORMAT|all          One of %s (default: all)
    --output DIR                 Output directory (default: export.output_dir)
    --install-wt SETTINGS        Merge the scheme into a Windows Terminal settings.json
    --fragment                   Write a Windows Terminal fragment instead
  sync <theme>                   Set the terminal palette with OSC sequences
  sync reset                     Restore the terminal palette
    --dry-run                    Print the sequences escaped instead of applying them
    --demo                       Print a color sample after applying
  convert <theme> --support S    Downgrade a theme and print its TOML
    --output FILE                Write to FILE instead of stdout
  image <file>                   Generate a theme from an image
    --light | --dark             Force the background luma
    --colors N                   Dominant colors to sample (default: 16)
    --name NAME                  Theme name (default: from the file name)
    --preview                    Paint the generated theme
    --output FILE                Write the theme TOML to FILE
  browse                         Browse themes interactively
  markdown [file|-]              Render markdown with the current theme
    --width N                    Wrap width (default: terminal width)
  highlight [file|-]             Syntax highlight source with the current theme
    --lang LANG                  Lexer name (default: from file name)
  pick                           Choose a theme at a prompt with tab completion
  config [show|get|set|path|keys] Manage ~/.thag/config.toml
  index [rebuild|stats|search]   Manage the theme catalog
  version                        Show version information
  help                           Show this help

Global Flags:
  -q, --quiet       Only print errors
  -v, --verbose     Verbose logging
  --debug           Debug logging
  --json            JSON output (detect, list, show, config, index)
  --no-color        Disable colored output
  --theme NAME      Use this theme (overrides THAG_THEME and detection)
  --support LEVEL   Assume this color support: none, basic, color256, true_color

Environment:
  THAG_THEME, THAG_COLOR_SUPPORT, THAG_TERM_BG_LUMA, THAG_TERM_BG_RGB,
  THAG_THEME_DIR, THAG_VERBOSITY, NO_COLOR, FORCE_COLOR

Examples:
  thag detect --json
  thag show dracula --format yaml
  thag export nord --format all --output ./schemes
  thag export nord --format wt --install-wt ~/settings.json
  thag image wallpaper.png --dark --output ~/.thag/themes/wallpaper.toml
  thag highlight main.go --theme gruvbox_dark

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, strings.Join(export.FormatIDs(), ", "), Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "thag version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s\n", runtime.Version())
}

// Parse parses command-line arguments (without the program name) and
// returns the command and args.
func Parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdHelp, parsedArgs
	}

	name := strings.ToLower(remaining[0])
	parsedArgs.Name = name
	parsedArgs.Raw = remaining[1:]

	switch name {
	case "-h", "--help":
		return CmdHelp, parsedArgs
	case "--version":
		return CmdVersion, parsedArgs
	}
	if cmd, ok := commandNames[name]; ok {
		return cmd, parsedArgs
	}
	return CmdUnknown, parsedArgs
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--debug":
			parsedArgs.Debug = true
		case "--json":
			parsedArgs.JSON = true
		case "--no-color":
			parsedArgs.NoColor = true
		case "--theme", "--support":
			if i+1 < len(args) {
				i++
				if arg == "--theme" {
					parsedArgs.Theme = args[i]
				} else {
					parsedArgs.Support = args[i]
				}
			}
		case "--":
			remaining = append(remaining, args[i:]...)
			return remaining, parsedArgs
		default:
			switch {
			case strings.HasPrefix(arg, "--theme="):
				parsedArgs.Theme = strings.TrimPrefix(arg, "--theme=")
			case strings.HasPrefix(arg, "--support="):
				parsedArgs.Support = strings.TrimPrefix(arg, "--support=")
			default:
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs
}
