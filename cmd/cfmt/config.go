package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/bjaus/cfmt/internal/render"
)

// Config holds the settings shared by every subcommand.
type Config struct {
	Capacity int    `mapstructure:"capacity"`  // printf output bound in bytes
	Output   string `mapstructure:"output"`    // scanf record format
	LogLevel string `mapstructure:"log_level"` // zerolog level name
	Strict   bool   `mapstructure:"strict"`    // strict scanning
}

func DefaultConfig() *Config {
	return &Config{
		Capacity: 4096,
		Output:   string(render.Plain),
		LogLevel: "warn",
	}
}

// LoadConfig reads cfmt.yaml and CFMT_* environment variables over the
// defaults. An explicit path must exist; the default search path may not.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetDefault("capacity", cfg.Capacity)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("strict", cfg.Strict)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cfmt")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/cfmt")
	}
	v.SetEnvPrefix("CFMT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that the subcommands depend on.
func (c *Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative, got %d", c.Capacity)
	}
	if _, err := render.ParseFormat(c.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}
