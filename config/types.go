package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Token   TokenConfig   `mapstructure:"token"`
	Errors  ErrorsConfig  `mapstructure:"errors"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the What-to-Watch API connection details
type APIConfig struct {
	URL         string        `mapstructure:"url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	TokenHeader string        `mapstructure:"token_header"`
	UserAgent   string        `mapstructure:"user_agent"`
}

// TokenConfig controls where the session token is persisted
type TokenConfig struct {
	Path string `mapstructure:"path"`
	Key  string `mapstructure:"key"`
}

// ErrorsConfig controls how long errors stay visible
type ErrorsConfig struct {
	ClearDelay time.Duration `mapstructure:"clear_delay"`
}

// FilterConfig contains the default film filter and named presets
type FilterConfig struct {
	Default string            `mapstructure:"default"`
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
