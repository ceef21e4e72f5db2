package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/flagx"
)

// parseFlags overlays cfg with the flags it owns; other arguments are left
// for other parsers.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-l", "-f", "-b", "-m"})

	fs := flag.NewFlagSet("classkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text or json)")
	busy := fs.Int("b", int(cfg.BusyTimeout/time.Second), "busy timeout (in seconds)")
	fs.IntVar(&cfg.MaxOpenConns, "m", cfg.MaxOpenConns, "max open connections")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "b" {
			set = true
		}
	})
	if set {
		cfg.BusyTimeout = time.Duration(*busy) * time.Second
	}
	return nil
}
