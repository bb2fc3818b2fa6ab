package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to zerolog; the empty string is info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %s", s)
	}
	return lvl, nil
}
