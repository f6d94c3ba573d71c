package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds runtime settings for the WealthWise terminal client.
//
// Units: NotificationPollInterval and RequestTimeout are time.Duration values.
type Config struct {
	APIBaseURL               string
	StoragePath              string
	LogLevel                 string
	GoogleClientID           string
	NotificationPollInterval time.Duration
	RequestTimeout           time.Duration
}

const (
	DefaultAPIBaseURL     = "http://127.0.0.1:8000/api"
	DefaultGoogleClientID = "386101218880-k70o0oo8o1hd80arli5h97hnf098ssne.apps.googleusercontent.com"
)

var errInvalidConfig = errors.New("invalid config")

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.StoragePath = defaultStoragePath()
	c.LogLevel = "info"
	c.GoogleClientID = DefaultGoogleClientID
	c.NotificationPollInterval = 30 * time.Second
	c.RequestTimeout = 15 * time.Second
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "wealthwise.db"
	}
	return filepath.Join(dir, "wealthwise", "client.db")
}

// LoadConfig builds a Config from defaults, then .env and the environment,
// then the JSON file named by -c/-config, then command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], ".env")
}

func load(args []string, dotenv ...string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(dotenv...); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var problems []string

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("api url %q must be an absolute http(s) URL", c.APIBaseURL))
	}
	if strings.TrimSpace(c.StoragePath) == "" {
		problems = append(problems, "storage path is empty")
	}
	if c.NotificationPollInterval <= 0 {
		problems = append(problems, fmt.Sprintf("notification poll interval %s must be positive", c.NotificationPollInterval))
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("request timeout %s must be positive", c.RequestTimeout))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", errInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
