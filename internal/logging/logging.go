// Package logging builds the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

// Options controls where log records go.
type Options struct {
	Level   slog.Level
	Stderr  io.Writer // defaults to os.Stderr
	LogFile string    // optional JSON log destination
}

// New returns a logger that writes text records to stderr and, when
// LogFile is set, JSON records to that file. The returned close function
// releases the file and is safe to call when no file was opened.
func New(opts Options) (*slog.Logger, func() error, error) {
	out := opts.Stderr
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	handlers := []slog.Handler{slog.NewTextHandler(out, handlerOpts)}
	closeFn := func() error { return nil }

	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file %s: %w", opts.LogFile, err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, handlerOpts))
		closeFn = f.Close
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closeFn, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
