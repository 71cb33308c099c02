// Package config loads fable's TOML configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	ManifestURL string `koanf:"manifest_url"` // where the book manifest is hosted

	SkipSeconds       int    `koanf:"skip_seconds"`        // rewind/forward step (default: 30)
	FlushIntervalSecs int    `koanf:"flush_interval_secs"` // position flush cadence while playing (default: 3)
	ToastLifetimeSecs int    `koanf:"toast_lifetime_secs"` // notification visible lifetime (default: 3)
	DataDir           string `koanf:"data_dir"`            // override for the state database location
}

const (
	defaultSkipSeconds       = 30
	defaultFlushIntervalSecs = 3
	defaultToastLifetimeSecs = 3
)

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.SkipSeconds <= 0 {
		cfg.SkipSeconds = defaultSkipSeconds
	}
	if cfg.FlushIntervalSecs <= 0 {
		cfg.FlushIntervalSecs = defaultFlushIntervalSecs
	}
	if cfg.ToastLifetimeSecs <= 0 {
		cfg.ToastLifetimeSecs = defaultToastLifetimeSecs
	}
	cfg.DataDir = expandPath(cfg.DataDir)

	return cfg, nil
}

// FlushInterval returns the persistence flush cadence.
func (c *Config) FlushInterval() time.Duration {
	return time.Duration(c.FlushIntervalSecs) * time.Second
}

// ToastLifetime returns how long a notification stays visible.
func (c *Config) ToastLifetime() time.Duration {
	return time.Duration(c.ToastLifetimeSecs) * time.Second
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/fable/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "fable", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
