// Package logging builds the zap logger. The chat UI owns the
// terminal, so logs go to a file when one is configured and are
// discarded otherwise.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a production logger writing to path, or a no-op logger
// when path is empty.
func New(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
