// Package config provides configuration types and defaults for bindery.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emilford/bindery/internal/log"
	"github.com/emilford/bindery/surface"
)

// Config holds all configuration options for the bindery demo.
type Config struct {
	// Platform selects the surface capability profile.
	// Valid values: "modern" (default), "legacy", "mac-term"
	Platform string `mapstructure:"platform"`

	// ReadOnly starts the editor with every mutation path disabled.
	ReadOnly bool `mapstructure:"read_only"`

	// Placeholder is shown while the document is empty.
	Placeholder string `mapstructure:"placeholder"`

	// AutoReload re-reads the config file when it changes on disk.
	AutoReload bool `mapstructure:"auto_reload"`

	Theme     ThemeConfig     `mapstructure:"theme"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     text:
	//       primary: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "text.primary": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// ClipboardConfig holds system clipboard bridge options.
type ClipboardConfig struct {
	// MirrorToSystem copies the plain-text payload of every copy/cut to the
	// OS clipboard.
	MirrorToSystem bool `mapstructure:"mirror_to_system"`
}

// TracingConfig holds command tracing configuration.
type TracingConfig struct {
	// Enabled wraps the command engine so every canonical command becomes a
	// span on stdout.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Platform:    surface.PlatformModern,
		ReadOnly:    false,
		Placeholder: "Start typing...",
		AutoReload:  true,
		Theme: ThemeConfig{
			Mode: "",
		},
		Clipboard: ClipboardConfig{
			MirrorToSystem: true,
		},
		Tracing: TracingConfig{
			Enabled:    false,
			SampleRate: 1.0,
		},
	}
}

// Validate checks the whole configuration for errors.
func Validate(c Config) error {
	if err := ValidatePlatform(c.Platform); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidatePlatform checks the platform name.
// Returns nil for empty (will use defaults).
func ValidatePlatform(platform string) error {
	switch platform {
	case "", surface.PlatformModern, surface.PlatformLegacy, surface.PlatformMacTerm:
		return nil
	default:
		return fmt.Errorf("platform must be %q, %q, or %q, got %q",
			surface.PlatformModern, surface.PlatformLegacy, surface.PlatformMacTerm, platform)
	}
}

// ValidateTheme checks theme configuration for errors.
func ValidateTheme(theme ThemeConfig) error {
	switch theme.Mode {
	case "", "light", "dark":
		return nil
	default:
		return fmt.Errorf("theme.mode must be \"light\", \"dark\", or empty, got %q", theme.Mode)
	}
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Bindery Configuration

# Surface capability profile
#   modern   - low-level input events, focus follows selection (default)
#   legacy   - key chord fallback path
#   mac-term - input events without reliable composition inserts
platform: modern

# Start with every mutation path disabled
read_only: false

# Shown while the document is empty
placeholder: "Start typing..."

# Re-read this file when it changes on disk
auto_reload: true

# Theme configuration
theme:
  # Force light or dark mode; empty uses terminal detection
  # mode: dark
  #
  # Override specific colors:
  # colors:
  #   text.primary: "#FFFFFF"
  #   selection.background: "#264F78"

# System clipboard bridge
clipboard:
  mirror_to_system: true   # Mirror copy/cut plain text to the OS clipboard

# Command tracing
# Emits one span per canonical command on stdout
# tracing:
#   enabled: true
#   sample_rate: 1.0   # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
