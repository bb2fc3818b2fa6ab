package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/suspsim/internal/config"
)

// New builds a logger tagged with component. Output goes to w, or to
// cfg.File / stderr when w is nil. The returned closer releases the file.
func New(cfg config.LogConfig, component string, w io.Writer) (zerolog.Logger, io.Closer, error) {
	lvl, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var closer io.Closer = nopCloser{}
	if w == nil {
		if cfg.File != "" {
			f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
			}
			w, closer = f, f
		} else {
			w = os.Stderr
		}
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	z := zerolog.New(w).Level(lvl).With().Timestamp().Str("component", component).Logger()
	return z, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
