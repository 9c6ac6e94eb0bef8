// Package logger builds hclog loggers from the configuration.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/fwojciec/lintview/config"
	"github.com/hashicorp/go-hclog"
)

// EnvLevel overrides the configured log level when set.
const EnvLevel = "LINTVIEW_LOG_LEVEL"

// New creates a logger writing to stderr.
func New(cfg *config.Config, name string) hclog.Logger {
	return NewWithOutput(cfg, name, os.Stderr)
}

// NewWithOutput creates a logger writing to w.
func NewWithOutput(cfg *config.Config, name string, w io.Writer) hclog.Logger {
	if cfg == nil {
		cfg = config.Default()
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		Level:       determineLevel(cfg),
		JSONFormat:  cfg.Logger.JSONFormat,
		DisableTime: config.BoolValue(cfg.Logger.DisableTime, true),
		Output:      w,
	})
}

// determineLevel prefers the environment over the configuration and falls
// back to INFO.
func determineLevel(cfg *config.Config) hclog.Level {
	if env := os.Getenv(EnvLevel); env != "" {
		return ParseLevel(env)
	}
	return ParseLevel(cfg.Logger.Level)
}

// ParseLevel converts a level name to an hclog level. Unknown names map to
// INFO.
func ParseLevel(s string) hclog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	case "OFF":
		return hclog.Off
	default:
		return hclog.Info
	}
}
