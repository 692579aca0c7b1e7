package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger from the logging section. Level
// is debug|info|warn|error, format console|json; a non-empty file path
// adds a second output target alongside stderr.
func NewLogger(lc LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}

	var cfg zap.Config
	switch lc.Format {
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q: must be \"console\" or \"json\"", lc.Format)
	}

	cfg.Level = zap.NewAtomicLevelAt(level)
	if lc.File != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, lc.File)
	}

	return cfg.Build()
}
