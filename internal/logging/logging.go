package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup returns an info-level logger on stderr in the requested format.
func Setup(format string) zerolog.Logger {
	return New(os.Stderr, format, zerolog.InfoLevel)
}

// New builds a timestamped logger writing to w. format "text" selects the
// human-friendly console writer; anything else emits JSON lines.
func New(w io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if format == "text" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
