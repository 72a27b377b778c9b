package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Setup configures the default slog logger. Output goes to stderr
// (stdout carries the stdio transport) and, when logFile is non-empty,
// is mirrored to that file as well. The returned closer flushes and
// closes the log file, if any.
func Setup(debug bool, logFile string) (func() error, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closer := func() error { return nil }

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", logFile, err)
		}
		w = io.MultiWriter(os.Stderr, f)
		closer = f.Close
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	return closer, nil
}
