// Package config loads runtime configuration for the WealthWise CLI.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and WEALTHWISE_* variables.
//  3. A JSON file selected with -c or -config.
//  4. Command-line flags -a, -d, -i, -l and -t.
//
// The JSON file uses snake_case keys and accepts durations as strings:
//
//	{
//	  "api_base_url": "https://wealthwise.example/api",
//	  "storage_path": "/home/me/.config/wealthwise/client.db",
//	  "notification_poll_interval": "1m",
//	  "request_timeout": "10s",
//	  "log_level": "debug"
//	}
package config
