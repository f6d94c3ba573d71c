package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   REST API base URL
//	-d string   local storage file
//	-i int      notification poll interval (seconds)
//	-l string   log level
//	-t int      request timeout (seconds)
//
// Other arguments (such as -c) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-i", "-l", "-t"})

	fs := flag.NewFlagSet("wealthwise", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "REST API base URL")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "local storage file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	poll := fs.Int("i", int(cfg.NotificationPollInterval.Seconds()), "notification poll interval (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.NotificationPollInterval = time.Duration(*poll) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
