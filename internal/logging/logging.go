package logging

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"apptcal/internal/config"
)

// New builds a file-backed logger under the apptcal config directory.
// The TUI owns stdout, so all diagnostics go to the log file.
func New() (*zap.Logger, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, "apptcal.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
