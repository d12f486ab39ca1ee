// Package config loads client and dev-server settings from defaults, TOML
// files and the environment. Command-line flags are applied last by the CLI.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultEndpoint = "http://localhost:3000/todos"
	FileName        = "config.toml"
	ProjectFileName = "tada.toml"
)

type Config struct {
	Endpoint string        `toml:"endpoint"`
	Timeout  time.Duration `toml:"timeout"`
	Theme    string        `toml:"theme"`
	Live     bool          `toml:"live"`
	Log      LogConfig     `toml:"log"`
	Serve    ServeConfig   `toml:"serve"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text | json | logfmt
	File   string `toml:"file"`
}

type ServeConfig struct {
	Addr    string `toml:"addr"`
	DB      string `toml:"db"`
	Backend string `toml:"backend"` // json | sqlite
	Watch   bool   `toml:"watch"`
}

// Default returns the built-in settings: a json-server on localhost:3000.
func Default() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Timeout:  30 * time.Second,
		Theme:    "classic",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Serve: ServeConfig{
			Addr:    "localhost:3000",
			DB:      "db.json",
			Backend: "json",
			Watch:   true,
		},
	}
}

// Load applies, in order: defaults, the user config file, ./tada.toml, the
// file at explicit (when non-empty; it must exist), and TADA_* variables.
func Load(explicit string) (Config, error) {
	cfg := Default()

	for _, p := range []string{userConfigPath(), ProjectFileName} {
		if p == "" {
			continue
		}
		if err := loadFile(&cfg, p, false); err != nil {
			return Config{}, err
		}
	}
	if explicit != "" {
		if err := loadFile(&cfg, explicit, true); err != nil {
			return Config{}, err
		}
	}

	loadFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an http(s) URL, got %q", c.Endpoint)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	switch strings.ToLower(c.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("theme must be classic, neon or mono, got %q", c.Theme)
	}
	switch c.Serve.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("serve.backend must be json or sqlite, got %q", c.Serve.Backend)
	}
	return nil
}

func userConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tada", FileName)
}

func loadFile(cfg *Config, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TADA_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("TADA_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TADA_LIVE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Live = b
		}
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TADA_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
