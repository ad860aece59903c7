// Package audit holds the crawl's paper trail: the visited-URL log every
// navigation writes to, and the selector auditor that measures how well
// the configured SIC selectors still fit the live registry markup.
package audit

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// NewURLLogger opens an append-only visited-URL trail at path. Every
// navigation and enrichment fetch logs one line through the returned
// logger. The closer must be closed at the end of the run.
func NewURLLogger(path string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	logger := zerolog.New(file).With().Timestamp().Logger()
	return logger, file, nil
}
