// Package config loads runtime configuration for the Ishara CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. ISHARA_* environment variables, with an optional .env file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "data_dir": "data",
//	  "slot_backend": "sqlite",
//	  "redis_addr": "127.0.0.1:6379",
//	  "auth_latency": "1s",
//	  "auth_timeout": "5s",
//	  "auth_retries": 2,
//	  "health_endpoint_addr": "",
//	  "online_check_interval": "3s",
//	  "log_level": "info",
//	  "metrics_file": ""
//	}
package config
