package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup returns a slog.Logger with JSON structured output written to w.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// SetupDefault installs a JSON structured logger as the global default.
// When running as an MCP server the logs must go to stderr, since stdout
// carries the protocol stream.
func SetupDefault(w io.Writer, level slog.Level) {
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(Setup(w, level))
}
