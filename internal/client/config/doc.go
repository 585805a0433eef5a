// Package config loads runtime configuration for the Nearby Connect CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables NC_*, optionally read from a dotenv file given
//     with -env (see parseEnv).
//  3. Optional JSON file selected via -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string    backend base URL, e.g. http://127.0.0.1:8001
//	-t int       per-request timeout (seconds)
//	-d string    path of the local SQLite database
//	-lat float   device latitude (enables the device location provider)
//	-lon float   device longitude
//	-r float     initial scan radius in miles
//	-i int       auto-refresh interval (seconds, 0 disables)
//	-l string    log level: debug, info, warn, error
//	-log string  log file path ("" logs to stderr)
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8001",
//	  "request_timeout": "10s",
//	  "database_path": "nearby.db",
//	  "device_latitude": 37.7749,
//	  "device_longitude": -122.4194,
//	  "radius_miles": 1.0,
//	  "refresh_interval": "0s",
//	  "log_level": "info"
//	}
package config
