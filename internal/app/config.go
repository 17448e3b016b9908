package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/toolchaingo/internal/describe"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Root        string // declaration file or directory
	BuildConfig string // relative to Root unless absolute

	LogFormat    string
	LogLevel     string
	OutputFormat string
	Workers      int
	Verbose      bool
	Trace        bool
}

// NewConfig validates cfg, fills defaults and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Root == "" {
		return nil, errors.New("Root is a required configuration field and cannot be empty")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.OutputFormat == "" {
		cfg.OutputFormat = string(describe.FormatYAML)
	}
	format, err := describe.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	cfg.OutputFormat = string(format)

	if cfg.Workers < 0 {
		return nil, fmt.Errorf("invalid workers %d: must not be negative", cfg.Workers)
	}

	return &cfg, nil
}
