package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/casiec/internal/flagx"
)

// parseFlags overlays the flags the console owns. Other flags in args are
// ignored.
//
//	-a string   API base URL
//	-d string   session database path
//	-i int      dashboard refresh interval in seconds
//	-l string   log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("console", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the CASIEC API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local session database")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "dashboard refresh interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *pollInterval <= 0 {
		return fmt.Errorf("parse flags: refresh interval must be positive, got %d", *pollInterval)
	}
	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
	return nil
}
