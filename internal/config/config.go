// Package config carries the run configuration: output path, look-ahead
// window, HTTP timeout, and the venue selection. Values are layered from
// defaults, an optional YAML file, and BOSTONSHOWS_-prefixed environment
// variables; command-line flags override all of them.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the explicit configuration value handed to the CLI run; there
// is no implicit module state beyond it.
type Config struct {
	// Output is the path of the JSON file the run writes.
	Output string `koanf:"output"`

	// Months bounds how far forward date-range venues look.
	Months int `koanf:"months"`

	// Timeout bounds every outbound HTTP request.
	Timeout time.Duration `koanf:"timeout"`

	// UserAgent overrides the default request User-Agent when set.
	UserAgent string `koanf:"user_agent"`

	// Venues restricts the run to the named handler keys; empty means all.
	Venues []string `koanf:"venues"`

	// Parallel fetches venues concurrently instead of one at a time.
	Parallel bool `koanf:"parallel"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output:  "events.json",
		Months:  12,
		Timeout: 30 * time.Second,
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// env vars. Order of precedence (low -> high):
//  1. defaults (Default())
//  2. file (YAML), from path or BOSTONSHOWS_CONFIG when path is empty
//  3. env (prefix BOSTONSHOWS_)
func Load(path string) (*Config, error) {
	cfg := *Default()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("BOSTONSHOWS_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: BOSTONSHOWS_OUTPUT, BOSTONSHOWS_USER_AGENT, ...
	// Keys keep their underscores to match the koanf tags above.
	envProvider := env.Provider("BOSTONSHOWS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "BOSTONSHOWS_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations no run could honor.
func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.New("output path must not be empty")
	}
	if c.Months < 1 {
		return errors.New("months must be at least 1")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}
