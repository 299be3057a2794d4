// Package logging builds the zap logger. The terminal is owned by the
// reader, so logs go to a file rather than stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultFile returns ~/.cache/genesis-tui/genesis-tui.log.
func DefaultFile() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "genesis-tui", "genesis-tui.log"), nil
}

// New returns a production JSON logger writing to file. verbose lowers the
// level to debug.
func New(file string, verbose bool) (*zap.Logger, error) {
	if file == "" {
		f, err := DefaultFile()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve log file: %w", err)
		}
		file = f
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{file}
	config.ErrorOutputPaths = []string{file}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
