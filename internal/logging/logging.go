// Package logging builds the process logger. Everything logs through
// log/slog; the handler is a charmbracelet/log logger so terminal output
// stays readable while files get logfmt.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"

	"github.com/1broseidon/dpizoom/internal/config"
)

const prefix = "dpizoom"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger for cfg. Without a file it writes to stderr, which
// must never be stdout while the native messaging host runs. The returned
// closer releases the log file, if any.
func New(cfg config.LoggingConfig, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := charmlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	if cfg.File == "" {
		return NewWithWriter(stderr, level, charmlog.TextFormatter), nopCloser{}, nil
	}

	dir := filepath.Dir(cfg.File)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
	}
	return NewWithWriter(f, level, charmlog.LogfmtFormatter), f, nil
}

// NewWithWriter returns a slog logger backed by a charm logger on w.
func NewWithWriter(w io.Writer, level charmlog.Level, formatter charmlog.Formatter) *slog.Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Prefix:          prefix,
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
	})
	return slog.New(handler)
}
