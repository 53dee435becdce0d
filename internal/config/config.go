// Package config loads the monitor's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sdpower/ccwatch-go/internal/source"
	"github.com/sdpower/ccwatch-go/internal/types"
)

type RefreshConfig struct {
	// IntervalMinutes is the refresh period, bounded to 1-60.
	IntervalMinutes int `koanf:"interval-minutes"`
}

type RemoteConfig struct {
	// Enabled gates the remote usage endpoint entirely.
	Enabled bool `koanf:"enabled"`
	// TimeoutSeconds bounds one request, 5-120.
	TimeoutSeconds int `koanf:"timeout-seconds"`
}

type LocalConfig struct {
	// Command is the accounting CLI template: program plus fixed flags.
	Command string `koanf:"command"`
	// TimeoutSeconds bounds one invocation, 5-120.
	TimeoutSeconds int `koanf:"timeout-seconds"`
}

type DisplayConfig struct {
	ShowPercentage    bool `koanf:"show-percentage"`
	ShowRemainingTime bool `koanf:"show-remaining-time"`
	// FallbackLimitUSD is shown as plan context when a cycle produces
	// nothing at all. 0 disables it.
	FallbackLimitUSD float64 `koanf:"fallback-limit-usd"`
}

type Config struct {
	Refresh RefreshConfig `koanf:"refresh"`
	Remote  RemoteConfig  `koanf:"remote"`
	Local   LocalConfig   `koanf:"local"`
	Display DisplayConfig `koanf:"display"`
}

func Default() Config {
	return Config{
		Refresh: RefreshConfig{IntervalMinutes: 3},
		Remote:  RemoteConfig{Enabled: true, TimeoutSeconds: 15},
		Local:   LocalConfig{Command: source.DefaultLocalCommand, TimeoutSeconds: 30},
		Display: DisplayConfig{ShowPercentage: true, ShowRemainingTime: true},
	}
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "ccwatch", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error;
// the defaults simply apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return cfg, fmt.Errorf("load %s: %w", path, err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate enforces the documented bounds.
func (c Config) Validate() error {
	if c.Refresh.IntervalMinutes < 1 || c.Refresh.IntervalMinutes > 60 {
		return fmt.Errorf("%w: refresh interval %d min, want 1-60", types.ErrInvalidConfig, c.Refresh.IntervalMinutes)
	}
	for name, secs := range map[string]int{
		"remote": c.Remote.TimeoutSeconds,
		"local":  c.Local.TimeoutSeconds,
	} {
		if secs < 5 || secs > 120 {
			return fmt.Errorf("%w: %s timeout %ds, want 5-120", types.ErrInvalidConfig, name, secs)
		}
	}
	if c.Local.Command == "" {
		return fmt.Errorf("%w: local command is empty", types.ErrInvalidConfig)
	}
	return nil
}

func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.Refresh.IntervalMinutes) * time.Minute
}

func (c Config) RemoteTimeout() time.Duration {
	return time.Duration(c.Remote.TimeoutSeconds) * time.Second
}

func (c Config) LocalTimeout() time.Duration {
	return time.Duration(c.Local.TimeoutSeconds) * time.Second
}
