// Package config loads and saves the dials TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all dials configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Advice     AdviceConfig     `toml:"advice"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig controls where and how the budget is stored.
type GeneralConfig struct {
	DataDir string `toml:"data_dir,omitempty"`
	Backend string `toml:"backend"` // file, sqlite or memory
	Format  string `toml:"format"`  // json or cbor
}

// AdviceConfig holds the advice generator settings.
type AdviceConfig struct {
	APIKey     string `toml:"api_key,omitempty"`
	BaseURL    string `toml:"base_url,omitempty"`
	Model      string `toml:"model"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// AppearanceConfig holds theme and money formatting settings.
type AppearanceConfig struct {
	Theme          string `toml:"theme"`
	Locale         string `toml:"locale"`
	CurrencySymbol string `toml:"currency_symbol"`
}

// ServerConfig holds the read-only HTTP service settings.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	IntervalSec int    `toml:"interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Backend: "file",
			Format:  "json",
		},
		Advice: AdviceConfig{
			Model:      "gemini-2.5-flash",
			TimeoutSec: 20,
		},
		Appearance: AppearanceConfig{
			Theme:          "flexoki-dark",
			Locale:         "es-CO",
			CurrencySymbol: "$",
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8797",
			IntervalSec: 5,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dials")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dials")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultDataDir returns the XDG data directory used when data_dir is unset.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "dials")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "dials")
}

// DataDir returns the configured data directory, or the default one.
func (c Config) DataDir() string {
	if c.General.DataDir == "" {
		return DefaultDataDir()
	}
	if strings.HasPrefix(c.General.DataDir, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, c.General.DataDir[2:])
	}
	return c.General.DataDir
}

// AdviceTimeout returns the advice request timeout.
func (c Config) AdviceTimeout() time.Duration {
	if c.Advice.TimeoutSec <= 0 {
		return 20 * time.Second
	}
	return time.Duration(c.Advice.TimeoutSec) * time.Second
}

// ServerInterval returns the service poll interval.
func (c Config) ServerInterval() time.Duration {
	if c.Server.IntervalSec <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Server.IntervalSec) * time.Second
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	return f.Close()
}

// GetAdviceKey returns the advice API key from env vars or config, in that order.
func GetAdviceKey(cfg Config) string {
	for _, env := range []string{"DIALS_ADVICE_KEY", "GEMINI_API_KEY"} {
		if key := strings.TrimSpace(os.Getenv(env)); key != "" {
			return key
		}
	}
	return strings.TrimSpace(cfg.Advice.APIKey)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
