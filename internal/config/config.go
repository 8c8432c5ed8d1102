// Package config loads settings for the calc command.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// Config holds the complete command configuration.
type Config struct {
	Domain   Domain `toml:"domain" yaml:"domain"`
	Rewrite  string `toml:"rewrite" yaml:"rewrite"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// Domain is the inclusive integer range functions are swept over.
type Domain struct {
	Start int64 `toml:"start" yaml:"start"`
	Stop  int64 `toml:"stop" yaml:"stop"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Domain:   Domain{Start: 0, Stop: 24},
		Rewrite:  calc.RewriteAll.String(),
		LogLevel: "warn",
	}
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
// Settings absent from the file keep their defaults. An empty path gives the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	path = os.ExpandEnv(path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(b), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unknown config format %q", ext)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Domain.Start > c.Domain.Stop {
		return fmt.Errorf("domain start %d is after stop %d", c.Domain.Start, c.Domain.Stop)
	}
	if _, err := c.RewriteMode(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// RewriteMode returns the configured implicit multiplication mode.
func (c *Config) RewriteMode() (calc.RewriteMode, error) {
	m, ok := calc.ParseRewriteMode(c.Rewrite)
	if !ok {
		return 0, fmt.Errorf("unknown rewrite mode %q", c.Rewrite)
	}
	return m, nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return l, nil
}
