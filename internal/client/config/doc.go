// Package config loads runtime configuration for the CASIEC console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment variables prefixed with CASIEC_.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the CASIEC API
//	-d string   path of the local session database
//	-i int      dashboard refresh interval (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # File schema
//
// Durations accept strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.casiec.ng",
//	  "data_dir": "~/.casiec",
//	  "poll_interval": "10s",
//	  "toast_ttl": "5s",
//	  "log_level": "warn"
//	}
package config
