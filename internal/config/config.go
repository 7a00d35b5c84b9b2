// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/authfront-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete authfront configuration.
type Config struct {
	Version string `toml:"version" json:"version" yaml:"version"`

	// Backend is the remote authentication API.
	Backend BackendConfig `toml:"backend" json:"backend" yaml:"backend"`

	// Log controls the zap file logger.
	Log LogConfig `toml:"log" json:"log" yaml:"log"`

	// UI controls terminal presentation.
	UI UIConfig `toml:"ui" json:"ui" yaml:"ui"`
}

// BackendConfig describes the auth API.
type BackendConfig struct {
	// URL is the API base URL; endpoint paths are appended to it.
	URL string `toml:"url" json:"url" yaml:"url"`
	// TimeoutSecs bounds each request.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs" yaml:"timeout_secs"`
	// RequestsPerSecond paces outbound requests. 0 disables pacing.
	RequestsPerSecond float64 `toml:"requests_per_second" json:"requests_per_second" yaml:"requests_per_second"`
	// Burst is the token bucket size used with RequestsPerSecond.
	Burst int `toml:"burst" json:"burst" yaml:"burst"`
}

// LogConfig describes where logs go.
type LogConfig struct {
	// Path is the log file (empty = ~/.authfront/authfront.log).
	Path string `toml:"path" json:"path" yaml:"path"`
	// Level is debug, info, warn or error.
	Level string `toml:"level" json:"level" yaml:"level"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is "dark", "light" or "auto".
	Theme string `toml:"theme" json:"theme" yaml:"theme"`
	// ToastSecs is how long success toasts stay on screen.
	ToastSecs int `toml:"toast_secs" json:"toast_secs" yaml:"toast_secs"`
	// AltScreen runs the TUI in the terminal's alternate screen buffer.
	AltScreen bool `toml:"alt_screen" json:"alt_screen" yaml:"alt_screen"`
}

// Timeout returns the backend timeout as a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Backend: BackendConfig{
			URL:               "http://localhost:4000",
			TimeoutSecs:       15,
			RequestsPerSecond: 5,
			Burst:             5,
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			Theme:     "auto",
			ToastSecs: 4,
			AltScreen: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the authfront configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".authfront"), nil
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

// DefaultLogPath returns ~/.authfront/authfront.log.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "authfront.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file locations.
// Tries TOML first, then JSON, and falls back to defaults. Environment
// overrides are applied last.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		return LoadFromPath(path)
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file. The decoder is chosen
// by extension: .json, .yaml/.yml, anything else is TOML.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := Decode(cfg, data, formatFor(path)); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Format is a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Decode decodes data in the given format on top of cfg.
func Decode(cfg *Config, data []byte, format Format) error {
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to decode TOML: %w", err)
		}
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to ~/.authfront/config.toml.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes cfg atomically with 0600 permissions, encoded according
// to the file extension.
func SaveToPath(cfg *Config, path string) error {
	var buf bytes.Buffer

	switch formatFor(path) {
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		buf.Write(data)
	case FormatYAML:
		if err := yaml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	default:
		fmt.Fprintln(&buf, "# authfront configuration file")
		fmt.Fprintln(&buf, "")
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
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
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Backend.URL == "" {
		errs = append(errs, ValidationError{Field: "backend.url", Message: "must not be empty"})
	} else if u, err := url.Parse(c.Backend.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "backend.url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.Backend.URL),
		})
	}

	if c.Backend.TimeoutSecs < 1 || c.Backend.TimeoutSecs > 300 {
		errs = append(errs, ValidationError{
			Field:   "backend.timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 300, got %d", c.Backend.TimeoutSecs),
		})
	}
	if c.Backend.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{Field: "backend.requests_per_second", Message: "must not be negative"})
	}
	if c.Backend.RequestsPerSecond > 0 && c.Backend.Burst < 1 {
		errs = append(errs, ValidationError{Field: "backend.burst", Message: "must be at least 1 when pacing is enabled"})
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light", "auto":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values left by a partial config file.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	c.Backend.URL = strings.TrimSuffix(strings.TrimSpace(c.Backend.URL), "/")
	if c.Backend.TimeoutSecs == 0 {
		c.Backend.TimeoutSecs = defaults.Backend.TimeoutSecs
	}
	if c.Backend.RequestsPerSecond > 0 && c.Backend.Burst == 0 {
		c.Backend.Burst = defaults.Backend.Burst
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.ToastSecs <= 0 {
		c.UI.ToastSecs = defaults.UI.ToastSecs
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - AUTHFRONT_BACKEND_URL: overrides backend.url
//   - AUTHFRONT_TIMEOUT: overrides backend.timeout_secs
//   - AUTHFRONT_LOG_LEVEL: overrides log.level
//   - AUTHFRONT_LOG_PATH: overrides log.path
//   - AUTHFRONT_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("AUTHFRONT_BACKEND_URL"); u != "" {
		c.Backend.URL = u
	}
	if t := os.Getenv("AUTHFRONT_TIMEOUT"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil {
			c.Backend.TimeoutSecs = secs
		}
	}
	if lvl := os.Getenv("AUTHFRONT_LOG_LEVEL"); lvl != "" {
		c.Log.Level = lvl
	}
	if p := os.Getenv("AUTHFRONT_LOG_PATH"); p != "" {
		c.Log.Path = p
	}
	if theme := os.Getenv("AUTHFRONT_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Keys lists the settable keys in dot notation.
func Keys() []string {
	return []string{
		"backend.url",
		"backend.timeout_secs",
		"backend.requests_per_second",
		"backend.burst",
		"log.path",
		"log.level",
		"ui.theme",
		"ui.toast_secs",
		"ui.alt_screen",
	}
}

// Get returns the string form of a setting.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "backend.url":
		return c.Backend.URL, nil
	case "backend.timeout_secs":
		return strconv.Itoa(c.Backend.TimeoutSecs), nil
	case "backend.requests_per_second":
		return strconv.FormatFloat(c.Backend.RequestsPerSecond, 'f', -1, 64), nil
	case "backend.burst":
		return strconv.Itoa(c.Backend.Burst), nil
	case "log.path":
		return c.Log.Path, nil
	case "log.level":
		return c.Log.Level, nil
	case "ui.theme":
		return c.UI.Theme, nil
	case "ui.toast_secs":
		return strconv.Itoa(c.UI.ToastSecs), nil
	case "ui.alt_screen":
		return strconv.FormatBool(c.UI.AltScreen), nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

// Set parses value and stores it under key. The result is not validated;
// call Validate before saving.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "backend.url":
		c.Backend.URL = value
	case "backend.timeout_secs":
		c.Backend.TimeoutSecs, err = strconv.Atoi(value)
	case "backend.requests_per_second":
		c.Backend.RequestsPerSecond, err = strconv.ParseFloat(value, 64)
	case "backend.burst":
		c.Backend.Burst, err = strconv.Atoi(value)
	case "log.path":
		c.Log.Path = value
	case "log.level":
		c.Log.Level = value
	case "ui.theme":
		c.UI.Theme = value
	case "ui.toast_secs":
		c.UI.ToastSecs, err = strconv.Atoi(value)
	case "ui.alt_screen":
		c.UI.AltScreen, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
