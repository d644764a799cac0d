// Package logging builds the zap loggers used by the CLI, the TUI and the
// generator service.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger flavour and destination.
type Options struct {
	// Production selects JSON output and sampling; otherwise the console
	// encoder is used.
	Production bool

	// Level is a zap level name ("debug", "info", ...). Empty means info.
	Level string

	// File receives log output. Empty means stderr, unless Discard is set.
	File string

	// Discard returns a no-op logger when File is empty. The TUI sets it
	// because stderr output would corrupt the screen.
	Discard bool
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	if opts.File == "" && opts.Discard {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	if opts.Production {
		cfg = zap.NewProductionConfig()
	}

	if opts.Level != "" {
		lvl, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	if opts.File != "" {
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
