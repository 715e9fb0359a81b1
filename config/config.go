// Package config loads the merge tools' YAML configuration: tool defaults
// (log destination, debug, purge) and named environment profiles supplying
// DOR service connection settings. Settings resolve by merging the
// immutable file defaults with the parsed command-line flags; flags win.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// DefaultFile is the config file name looked up in the user's home
// directory when no --config flag is given.
const DefaultFile = ".dormerge.yaml"

// Environment names recognized without a config file.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Config is the parsed configuration file.
type Config struct {
	Defaults     Defaults               `yaml:"defaults"`
	Environments map[string]Environment `yaml:"environments"`
}

// Defaults supplies default values for flags the user may omit. Pointer
// fields distinguish "not set in the file" from an explicit false/empty.
type Defaults struct {
	Log   string `yaml:"log,omitempty"`
	Debug *bool  `yaml:"debug,omitempty"`
	Purge *bool  `yaml:"purge,omitempty"`
}

// Environment is one named DOR service connection profile.
type Environment struct {
	ServiceURL string `yaml:"service_url"`
	Token      string `yaml:"token,omitempty"`
}

// Load reads the configuration from name. If name is empty, the default
// file in the user's home directory is used. A missing file is not an
// error: built-in defaults apply.
func Load(name string) (*Config, error) {
	if name == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return builtin(), nil
		}
		name = filepath.Join(home, DefaultFile)
	}
	f, err := os.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return builtin(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", name, err)
	}
	defer f.Close()
	cfg := &Config{}
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", name, err)
	}
	if cfg.Environments == nil {
		cfg.Environments = builtin().Environments
	}
	return cfg, nil
}

// Env returns the named environment profile. Profiles from the config file
// take precedence over built-ins.
func (c *Config) Env(name string) (Environment, error) {
	env, ok := c.Environments[name]
	if !ok {
		return Environment{}, fmt.Errorf("environment %q is not configured", name)
	}
	if env.ServiceURL == "" {
		return Environment{}, fmt.Errorf("environment %q has no service_url", name)
	}
	return env, nil
}

// builtin returns the configuration used when no config file exists.
// Production has no built-in profile: it must be configured explicitly.
func builtin() *Config {
	return &Config{
		Environments: map[string]Environment{
			EnvDevelopment: {ServiceURL: "http://localhost:3003"},
			EnvTest:        {ServiceURL: "http://localhost:3003"},
		},
	}
}

// Overrides carries the flag values that may override file defaults. Nil
// pointer fields mean the flag was not given.
type Overrides struct {
	Log   *string
	Debug *bool
	Purge *bool
}

// Settings is a resolved option set, immutable once built.
type Settings struct {
	Log   string // log destination; empty means stderr
	Debug bool
	Purge bool
}

// Settings merges the file defaults with flag overrides. A flag that was
// given always wins; otherwise the file default applies, then the zero
// value.
func (c *Config) Settings(o Overrides) Settings {
	s := Settings{Log: c.Defaults.Log}
	if c.Defaults.Debug != nil {
		s.Debug = *c.Defaults.Debug
	}
	if c.Defaults.Purge != nil {
		s.Purge = *c.Defaults.Purge
	}
	if o.Log != nil {
		s.Log = *o.Log
	}
	if o.Debug != nil {
		s.Debug = *o.Debug
	}
	if o.Purge != nil {
		s.Purge = *o.Purge
	}
	return s
}
