package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "WEALTHWISE_"

// loadDotEnv copies variables from the given .env files into the process
// environment. Variables that are already set win; missing files are skipped.
func loadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// parseEnv overlays cfg with WEALTHWISE_* variables.
//
//	WEALTHWISE_API_URL            base URL of the REST API
//	WEALTHWISE_STORAGE_PATH       SQLite file for tokens and the cached user
//	WEALTHWISE_POLL_INTERVAL      notification poll interval ("30s")
//	WEALTHWISE_REQUEST_TIMEOUT    per-request timeout ("15s")
//	WEALTHWISE_LOG_LEVEL          debug|info|warn|error
//	WEALTHWISE_GOOGLE_CLIENT_ID   OAuth client id shown by the google command
func parseEnv(cfg *Config) error {
	str := map[string]*string{
		"API_URL":          &cfg.APIBaseURL,
		"STORAGE_PATH":     &cfg.StoragePath,
		"LOG_LEVEL":        &cfg.LogLevel,
		"GOOGLE_CLIENT_ID": &cfg.GoogleClientID,
	}
	for name, dst := range str {
		if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	dur := map[string]*time.Duration{
		"POLL_INTERVAL":   &cfg.NotificationPollInterval,
		"REQUEST_TIMEOUT": &cfg.RequestTimeout,
	}
	for name, dst := range dur {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}
	return nil
}
