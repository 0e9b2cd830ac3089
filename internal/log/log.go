// Package log configures structured logging for bigo using log/slog.
package log

import (
	"io"
	"log/slog"
	"os"

	"github.com/davetashner/bigo/internal/redact"
)

// Setup configures the default slog logger based on verbosity flags.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Output is written to stderr using slog.TextHandler.
func Setup(verbose, quiet bool) {
	SetupWriter(os.Stderr, verbose, quiet)
}

// SetupWriter is Setup with an explicit destination. String attribute
// values have API keys redacted.
func SetupWriter(w io.Writer, verbose, quiet bool) {
	var level slog.Level
	switch {
	case quiet:
		level = slog.LevelWarn
	case verbose:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	})
	slog.SetDefault(slog.New(handler))
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, redact.String(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, redact.String(err.Error()))
		}
	}
	return a
}
