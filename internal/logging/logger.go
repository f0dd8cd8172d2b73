// Package logging builds the process-wide zap logger.
package logging

import "go.uber.org/zap"

// New returns a zap logger. When debug is true, uses development config
// (human-readable, debug level); otherwise production config (JSON, info
// level). The TUI owns the terminal, so non-debug logs go to a file when
// logPath is set.
func New(debug bool, logPath string) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if logPath != "" {
		cfg.OutputPaths = []string{logPath}
		cfg.ErrorOutputPaths = []string{logPath}
	}
	return cfg.Build()
}
