package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/wealthwise/internal/flagx"
	"github.com/dmitrijs2005/wealthwise/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration so they can be written as "30s" or as integer nanoseconds.
// Absent keys leave the current value untouched.
type JsonConfig struct {
	APIBaseURL               *string         `json:"api_base_url"`
	StoragePath              *string         `json:"storage_path"`
	LogLevel                 *string         `json:"log_level"`
	GoogleClientID           *string         `json:"google_client_id"`
	NotificationPollInterval *timex.Duration `json:"notification_poll_interval"`
	RequestTimeout           *timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the JSON file named by -c or -config.
// Without either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.StoragePath != nil {
		cfg.StoragePath = *jc.StoragePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.GoogleClientID != nil {
		cfg.GoogleClientID = *jc.GoogleClientID
	}
	if jc.NotificationPollInterval != nil {
		cfg.NotificationPollInterval = jc.NotificationPollInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
