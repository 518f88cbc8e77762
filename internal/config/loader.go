package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names that steer loading itself.
const (
	EnvPrefix  = "SALARYSCOPE_"
	EnvConfig  = "SALARYSCOPE_CONFIG"
	EnvDotFile = "SALARYSCOPE_ENV_FILE"

	defaultDotFile = ".env"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SALARYSCOPE_CONFIG is set
//  3. env (prefix SALARYSCOPE_), including values from an optional .env file
func Load(_ context.Context) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// SALARYSCOPE_PLOT_WIDTH -> plot_width (flat keys matching koanf tags).
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	// A comma separated env value overrides the list.
	if raw := os.Getenv(EnvPrefix + "FALLBACK_TITLES"); raw != "" {
		_ = k.Set("fallback_titles", splitList(raw))
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges the rest of the service relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PlotWidth <= 0 || c.PlotHeight <= 0:
		return fmt.Errorf("%w: plot size must be positive", ErrInvalidConfig)
	case c.PlotWidth > c.MaxSurfacePX || c.PlotHeight > c.MaxSurfacePX:
		return fmt.Errorf("%w: plot size must not exceed max_surface_px (%d)", ErrInvalidConfig, c.MaxSurfacePX)
	case c.PadFraction < 0:
		return fmt.Errorf("%w: pad_fraction must not be negative", ErrInvalidConfig)
	case c.ZoomMin <= 0 || c.ZoomMax < c.ZoomMin:
		return fmt.Errorf("%w: zoom bounds must satisfy 0 < zoom_min <= zoom_max", ErrInvalidConfig)
	case c.TickSpacingPX <= 0:
		return fmt.Errorf("%w: tick_spacing_px must be positive", ErrInvalidConfig)
	case c.RateLimitRPS < 0:
		return fmt.Errorf("%w: rate_limit_rps must not be negative", ErrInvalidConfig)
	}
	return nil
}

// loadDotEnv reads SALARYSCOPE_ENV_FILE (or ./.env) into the process
// environment without overriding variables that are already set.
func loadDotEnv() error {
	path := os.Getenv(EnvDotFile)
	explicit := path != ""
	if !explicit {
		path = defaultDotFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
