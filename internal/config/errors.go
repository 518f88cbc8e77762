package config

import "errors"

// Config errors. Validate wraps ErrInvalidConfig; Load wraps ErrLoadConfig
// for unreadable YAML files, .env files and unmarshal failures.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
