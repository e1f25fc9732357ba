package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Filter policies for the invoice list projection
const (
	FilterPolicyGTE = "gte" // keep invoices with price >= threshold
	FilterPolicyLTE = "lte" // keep invoices with price <= threshold
)

type Config struct {
	// Remote API settings
	API APIConfig `yaml:"api"`

	// Invoice list settings
	List ListConfig `yaml:"list"`

	// Session behavior
	Session SessionConfig `yaml:"session"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`        // Root of the invoice API
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-request timeout
}

type ListConfig struct {
	FilterPolicy string `yaml:"filter_policy"` // "gte" or "lte"
}

type SessionConfig struct {
	// When true, a successful email change clears the stored token and
	// forces a fresh sign-in with the new address.
	ReloginOnEmailChange bool `yaml:"relogin_on_email_change"`
}

// DefaultConfigPath returns ~/.config/billfold/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "billfold", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "billfold", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://backside-71fi.onrender.com",
			TimeoutSeconds: 15,
		},
		List: ListConfig{
			FilterPolicy: FilterPolicyGTE,
		},
		Session: SessionConfig{
			ReloginOnEmailChange: false,
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate returns an error on unusable settings
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive")
	}
	switch c.List.FilterPolicy {
	case FilterPolicyGTE, FilterPolicyLTE:
	default:
		return fmt.Errorf("list.filter_policy must be %q or %q", FilterPolicyGTE, FilterPolicyLTE)
	}
	return nil
}
