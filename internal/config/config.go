/*
Copyright © 2026 efibootkit authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config assembles the runtime configuration of the efibootctl
// CLI: which VariableStore backend to use, the DevicePathCodec's default
// rendering flags, and logging. The devpath CLI does not use it.
package config

import (
	"github.com/spf13/viper"

	"github.com/elemental-efi/efibootkit/internal/log"
	"github.com/elemental-efi/efibootkit/pkg/variables"
)

// Config carries everything a CLI front-end needs to construct a
// Manager: the selected VariableStore, a Logger, and the codec's
// default rendering flags.
type Config struct {
	Store  variables.Store
	Logger log.Logger

	AllowImplausible bool
	DisplayOnly      bool
	AllowShortcuts   bool
}

// Option mutates a Config during construction.
type Option func(*Config) error

// WithStore overrides the VariableStore backend.
func WithStore(store variables.Store) Option {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

// WithLogger overrides the Logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithAllowImplausible overrides the plausibility-check default.
func WithAllowImplausible(allow bool) Option {
	return func(c *Config) error {
		c.AllowImplausible = allow
		return nil
	}
}

// WithDisplayOnly overrides the to_text display_only default.
func WithDisplayOnly(displayOnly bool) Option {
	return func(c *Config) error {
		c.DisplayOnly = displayOnly
		return nil
	}
}

// WithAllowShortcuts overrides the to_text allow_shortcuts default.
func WithAllowShortcuts(allowShortcuts bool) Option {
	return func(c *Config) error {
		c.AllowShortcuts = allowShortcuts
		return nil
	}
}

// New builds a Config from EFIBOOTKIT_-prefixed environment variables
// and an optional config.yaml found on configDir (both via viper),
// then applies opts on top. A nil Store or Logger left over from
// viper's defaults is resolved to variables.NewStore and
// log.NewLogger respectively.
func New(configDir string, opts ...Option) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EFIBOOTKIT")
	v.AutomaticEnv()

	v.SetDefault("allow_implausible", false)
	v.SetDefault("display_only", false)
	v.SetDefault("allow_shortcuts", false)

	if configDir != "" {
		v.AddConfigPath(configDir)
		v.SetConfigType("yaml")
		v.SetConfigName("config")
		_ = v.ReadInConfig()
	}

	cfg := &Config{
		AllowImplausible: v.GetBool("allow_implausible"),
		DisplayOnly:      v.GetBool("display_only"),
		AllowShortcuts:   v.GetBool("allow_shortcuts"),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = log.NewLogger()
	}
	if cfg.Store == nil {
		cfg.Store = variables.NewStore(cfg.Logger)
	}

	return cfg, nil
}
