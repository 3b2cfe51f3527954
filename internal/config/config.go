// Package config handles the client configuration file and the service
// environment for folio.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`             // "dark", "light", "notty" or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
}

// Config represents the user configuration
type Config struct {
	// Endpoint is the base URL of the assistant service; "/chat" is appended.
	Endpoint string `json:"endpoint"`
	// TimeoutSeconds bounds one chat round trip. Zero disables the timeout.
	TimeoutSeconds int `json:"timeout_seconds"`
	// TypingIntervalMS is the delay between characters of the hero typing effect.
	TypingIntervalMS int  `json:"typing_interval_ms"`
	CopyToClipboard  bool `json:"copy_to_clipboard"`
	Verbose          bool `json:"verbose"`
	// Theme names the interface palette; unknown names fall back to "folio".
	Theme    string         `json:"theme"`
	Markdown MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultEndpoint is where `folio serve` listens by default
const DefaultEndpoint = "http://127.0.0.1:8000"

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Endpoint:         DefaultEndpoint,
		TimeoutSeconds:   60,
		TypingIntervalMS: 100,
		CopyToClipboard:  false,
		Verbose:          false,
		Theme:            "folio",
		Markdown:         DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".folio"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration values
func (c Config) Validate() error {
	if err := ValidateEndpoint(c.Endpoint); err != nil {
		return err
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	if c.TypingIntervalMS < 0 {
		return fmt.Errorf("typing_interval_ms must not be negative")
	}
	return nil
}

// ValidateEndpoint checks that endpoint is an absolute http(s) URL
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}
	return nil
}

// setters maps the keys accepted by `folio config set` to their parsers
var setters = map[string]func(*Config, string) error{
	"endpoint": func(c *Config, v string) error {
		if err := ValidateEndpoint(v); err != nil {
			return err
		}
		c.Endpoint = strings.TrimSpace(v)
		return nil
	},
	"timeout_seconds": func(c *Config, v string) error {
		n, err := parseNonNegative(v)
		if err != nil {
			return err
		}
		c.TimeoutSeconds = n
		return nil
	},
	"typing_interval_ms": func(c *Config, v string) error {
		n, err := parseNonNegative(v)
		if err != nil {
			return err
		}
		c.TypingIntervalMS = n
		return nil
	},
	"copy_to_clipboard": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		c.CopyToClipboard = b
		return nil
	},
	"verbose": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		c.Verbose = b
		return nil
	},
	"theme": func(c *Config, v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("theme cannot be empty")
		}
		c.Theme = strings.TrimSpace(v)
		return nil
	},
	"markdown.style": func(c *Config, v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("style cannot be empty")
		}
		c.Markdown.Style = v
		return nil
	},
}

func parseNonNegative(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("expected an integer, got %q", v)
	}
	if n < 0 {
		return 0, fmt.Errorf("value must not be negative")
	}
	return n, nil
}

// Set updates the value named by key
func (c *Config) Set(key, value string) error {
	setter, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := setter(c, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

// Keys returns the keys accepted by Set, sorted
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
