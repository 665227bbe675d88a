// Package logger builds the zerolog logger used by the server and CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/marketsim/config"
)

// New returns a logger writing to w (os.Stderr when nil) at cfg's level.
// Format "console" is human readable, anything else is JSON.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
		}
		level = l
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
