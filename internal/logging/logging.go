// Package logging routes the process log to stderr or a rotating file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/mcuadros/go-defaults"
)

// Config selects the log destination. An empty Path logs to stderr.
type Config struct {
	Path          string `toml:"path" yaml:"path" json:"path"`
	MaxAgeHours   int    `toml:"max_age_hours" yaml:"maxAgeHours" json:"maxAgeHours" default:"168"`
	RotationHours int    `toml:"rotation_hours" yaml:"rotationHours" json:"rotationHours" default:"24"`
	Prefix        string `toml:"prefix" yaml:"prefix" json:"prefix"`
}

// DefaultConfig logs to stderr, keeping a week of daily files once a path
// is set.
func DefaultConfig() Config {
	var c Config
	defaults.SetDefaults(&c)
	return c
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Setup points the standard logger at the configured destination and
// returns the writer so request logging can share it. Close it on exit.
func Setup(cfg Config) (io.WriteCloser, error) {
	var w io.WriteCloser = nopCloser{os.Stderr}
	if cfg.Path != "" {
		rl, err := rotatelogs.New(
			cfg.Path+".%Y%m%d",
			rotatelogs.WithLinkName(cfg.Path),
			rotatelogs.WithMaxAge(hours(cfg.MaxAgeHours, 168)),
			rotatelogs.WithRotationTime(hours(cfg.RotationHours, 24)),
		)
		if err != nil {
			return nil, fmt.Errorf("opening log %s: %w", cfg.Path, err)
		}
		w = rl
	}

	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetPrefix(cfg.Prefix)
	return w, nil
}

func hours(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Hour
}
