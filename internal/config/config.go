// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/thagstyle/internal/export"
	"github.com/jeranaias/thagstyle/internal/logging"
	"github.com/jeranaias/thagstyle/internal/styling"
	"github.com/jeranaias/thagstyle/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete thag configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Styling controls detection overrides and theme preferences
	Styling StylingConfig `toml:"styling" json:"styling"`

	// Export controls where and how exporters write
	Export ExportConfig `toml:"export" json:"export"`

	// UI controls output verbosity and the theme browser
	UI UIConfig `toml:"ui" json:"ui"`

	// Index controls the theme catalog database
	Index IndexConfig `toml:"index" json:"index"`
}

// StylingConfig overrides terminal detection and orders theme choices.
type StylingConfig struct {
	// ColorSupport forces a support level: "", "none", "basic", "color256", "true_color"
	ColorSupport string `toml:"color_support" json:"color_support"`
	// TermBgLuma forces the background luma: "", "light", "dark"
	TermBgLuma string `toml:"term_bg_luma" json:"term_bg_luma"`
	// TermBgRGB forces the background color; empty means query the terminal
	TermBgRGB []int `toml:"term_bg_rgb" json:"term_bg_rgb"`
	// ThemeDir holds user theme files indexed into the catalog
	ThemeDir string `toml:"theme_dir" json:"theme_dir"`

	PreferredLight []string `toml:"preferred_light" json:"preferred_light"`
	PreferredDark  []string `toml:"preferred_dark" json:"preferred_dark"`
	FallbackLight  []string `toml:"fallback_light" json:"fallback_light"`
	FallbackDark   []string `toml:"fallback_dark" json:"fallback_dark"`
}

// ExportConfig contains exporter defaults.
type ExportConfig struct {
	OutputDir string `toml:"output_dir" json:"output_dir"`
	// Formats lists format ids written by "export --format all"; empty means every format
	Formats         []string `toml:"formats" json:"formats"`
	OpenAfterExport bool     `toml:"open_after_export" json:"open_after_export"`
}

// UIConfig contains output settings.
type UIConfig struct {
	// Verbosity is "quiet", "normal", "verbose" or "debug"
	Verbosity string `toml:"verbosity" json:"verbosity"`
	// WatchThemeDir keeps the catalog in step with theme_dir while browsing
	WatchThemeDir bool `toml:"watch_theme_dir" json:"watch_theme_dir"`
}

// IndexConfig contains theme catalog settings.
type IndexConfig struct {
	// DatabasePath is the SQLite file; empty means ~/.thag/themes.db
	DatabasePath    string `toml:"database_path" json:"database_path"`
	WatchDebounceMs int    `toml:"watch_debounce_ms" json:"watch_debounce_ms"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Styling: StylingConfig{
			PreferredLight: []string{},
			PreferredDark:  []string{},
			FallbackLight:  []string{"github", "basic_light"},
			FallbackDark:   []string{"dracula", "basic_dark"},
		},

		Export: ExportConfig{
			OutputDir: ".",
			Formats:   []string{},
		},

		UI: UIConfig{
			Verbosity:     "normal",
			WatchThemeDir: true,
		},

		Index: IndexConfig{
			WatchDebounceMs: 500,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the thag configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".thag"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	for _, candidate := range []struct {
		path func() (string, error)
		load func(*Config, string) error
		kind string
	}{
		{ConfigPathTOML, LoadTOML, "TOML"},
		{ConfigPathJSON, LoadJSON, "JSON"},
	} {
		path, err := candidate.path()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		if err := candidate.load(cfg, path); err != nil {
			loadErr = fmt.Errorf("failed to load %s config: %w", candidate.kind, err)
			cfg = Default()
			continue
		}
		return finish(cfg)
	}

	cfg, err := finish(cfg)
	if err != nil {
		return nil, err
	}
	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// finish applies environment overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	for _, key := range md.Undecoded() {
		logging.Warnf("CONFIG | unknown key %s in %s", key, path)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# thag configuration file")
	fmt.Fprintln(&buf, "# Generated by thag - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Styling.ColorSupport != "" {
		if _, err := styling.ParseColorSupport(c.Styling.ColorSupport); err != nil {
			add("styling.color_support", "must be one of: none, basic, color256, true_color (got %q)", c.Styling.ColorSupport)
		}
	}
	if c.Styling.TermBgLuma != "" {
		if l, err := styling.ParseTermBgLuma(c.Styling.TermBgLuma); err != nil || l == styling.LumaUndetermined {
			add("styling.term_bg_luma", "must be light or dark (got %q)", c.Styling.TermBgLuma)
		}
	}
	switch len(c.Styling.TermBgRGB) {
	case 0:
	case 3:
		for _, v := range c.Styling.TermBgRGB {
			if v < 0 || v > 255 {
				add("styling.term_bg_rgb", "components must be 0-255 (got %d)", v)
				break
			}
		}
	default:
		add("styling.term_bg_rgb", "must have 3 components (got %d)", len(c.Styling.TermBgRGB))
	}
	if c.Styling.ThemeDir != "" {
		if info, err := os.Stat(expandHome(c.Styling.ThemeDir)); err == nil && !info.IsDir() {
			add("styling.theme_dir", "%s is not a directory", c.Styling.ThemeDir)
		}
	}

	for _, f := range c.Export.Formats {
		if _, err := export.ParseFormat(f); err != nil {
			add("export.formats", "unknown format %q (valid: %s)", f, strings.Join(export.FormatIDs(), ", "))
		}
	}

	if _, err := logging.ParseVerbosity(c.UI.Verbosity); err != nil {
		add("ui.verbosity", "must be one of: quiet, normal, verbose, debug (got %q)", c.UI.Verbosity)
	}

	if c.Index.WatchDebounceMs < 0 {
		add("index.watch_debounce_ms", "must be >= 0 (got %d)", c.Index.WatchDebounceMs)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value configuration fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Styling.FallbackLight == nil {
		c.Styling.FallbackLight = defaults.Styling.FallbackLight
	}
	if c.Styling.FallbackDark == nil {
		c.Styling.FallbackDark = defaults.Styling.FallbackDark
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = defaults.Export.OutputDir
	}
	if c.UI.Verbosity == "" {
		c.UI.Verbosity = defaults.UI.Verbosity
	}
}

// ApplyEnvOverrides applies THAG_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	// THAG_COLOR_SUPPORT
	if v := os.Getenv("THAG_COLOR_SUPPORT"); v != "" {
		c.Styling.ColorSupport = v
	}

	// THAG_TERM_BG_LUMA
	if v := os.Getenv("THAG_TERM_BG_LUMA"); v != "" {
		c.Styling.TermBgLuma = v
	}

	// THAG_TERM_BG_RGB accepts "r,g,b" or "#rrggbb"
	if v := os.Getenv("THAG_TERM_BG_RGB"); v != "" {
		if rgb, err := parseRGB(v); err == nil {
			c.Styling.TermBgRGB = rgb
		} else {
			logging.Warnf("CONFIG | ignoring THAG_TERM_BG_RGB=%q: %v", v, err)
		}
	}

	// THAG_THEME_DIR
	if v := os.Getenv("THAG_THEME_DIR"); v != "" {
		c.Styling.ThemeDir = v
	}

	// THAG_VERBOSITY
	if v := os.Getenv("THAG_VERBOSITY"); v != "" {
		c.UI.Verbosity = v
	}
}

// parseRGB parses "r,g,b" or a hex color.
func parseRGB(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("need 3 components, got %d", len(parts))
		}
		out := make([]int, 3)
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > 255 {
				return nil, fmt.Errorf("invalid component %q", p)
			}
			out[i] = v
		}
		return out, nil
	}
	rgb, err := styling.HexToRGB(s)
	if err != nil {
		return nil, err
	}
	return []int{int(rgb[0]), int(rgb[1]), int(rgb[2])}, nil
}

// =============================================================================
// TYPED ACCESSORS
// =============================================================================

// ColorSupport returns the forced support level, or Undetermined to detect.
func (c *Config) ColorSupport() styling.ColorSupport {
	s, err := styling.ParseColorSupport(c.Styling.ColorSupport)
	if err != nil {
		return styling.Undetermined
	}
	return s
}

// TermBgLuma returns the forced luma, or LumaUndetermined to detect.
func (c *Config) TermBgLuma() styling.TermBgLuma {
	l, err := styling.ParseTermBgLuma(c.Styling.TermBgLuma)
	if err != nil {
		return styling.LumaUndetermined
	}
	return l
}

// TermBgRGB returns the forced background, or nil to query the terminal.
func (c *Config) TermBgRGB() *[3]uint8 {
	if len(c.Styling.TermBgRGB) != 3 {
		return nil
	}
	var rgb [3]uint8
	for i, v := range c.Styling.TermBgRGB {
		rgb[i] = uint8(v)
	}
	return &rgb
}

// Preferences returns the theme preference lists for selection.
func (c *Config) Preferences() styling.Preferences {
	return styling.Preferences{
		PreferredLight: c.Styling.PreferredLight,
		PreferredDark:  c.Styling.PreferredDark,
		FallbackLight:  c.Styling.FallbackLight,
		FallbackDark:   c.Styling.FallbackDark,
	}
}

// ThemeDir returns theme_dir with a leading ~ expanded.
func (c *Config) ThemeDir() string {
	return expandHome(c.Styling.ThemeDir)
}

// ExportFormats returns the configured formats, or every format when none
// are listed.
func (c *Config) ExportFormats() []export.Format {
	if len(c.Export.Formats) == 0 {
		return export.AllFormats()
	}
	var out []export.Format
	for _, id := range c.Export.Formats {
		if f, err := export.ParseFormat(id); err == nil {
			out = append(out, f)
		}
	}
	return out
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "styling.theme_dir").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.verbosity").
// String values are converted to the field's type; lists are comma separated.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if field.Kind() == reflect.Struct {
		return fmt.Errorf("cannot set section %s", key)
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strVal)
			if err != nil {
				boolVal = strings.EqualFold(strVal, "yes")
			}
			field.SetBool(boolVal)
			return nil
		case reflect.Slice:
			return setSliceFromString(field, strVal)
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// setSliceFromString fills a []string from "a,b,c" and an []int from
// "r,g,b" or "#rrggbb". An empty string clears the list.
func setSliceFromString(field reflect.Value, s string) error {
	s = strings.TrimSpace(s)
	switch field.Type().Elem().Kind() {
	case reflect.String:
		out := []string{}
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		field.Set(reflect.ValueOf(out))
		return nil
	case reflect.Int:
		if s == "" {
			field.Set(reflect.ValueOf([]int{}))
			return nil
		}
		rgb, err := parseRGB(s)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(rgb))
		return nil
	}
	return fmt.Errorf("cannot set list of %s", field.Type().Elem())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"styling.color_support",
		"styling.term_bg_luma",
		"styling.term_bg_rgb",
		"styling.theme_dir",
		"styling.preferred_light",
		"styling.preferred_dark",
		"styling.fallback_light",
		"styling.fallback_dark",
		"export.output_dir",
		"export.formats",
		"export.open_after_export",
		"ui.verbosity",
		"ui.watch_theme_dir",
		"index.database_path",
		"index.watch_debounce_ms",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Styling.TermBgRGB = cloneSlice(c.Styling.TermBgRGB)
	clone.Styling.PreferredLight = cloneSlice(c.Styling.PreferredLight)
	clone.Styling.PreferredDark = cloneSlice(c.Styling.PreferredDark)
	clone.Styling.FallbackLight = cloneSlice(c.Styling.FallbackLight)
	clone.Styling.FallbackDark = cloneSlice(c.Styling.FallbackDark)
	clone.Export.Formats = cloneSlice(c.Export.Formats)
	return &clone
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

// String returns a string representation of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			logging.Warnf("CONFIG | %v (using defaults)", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
