// Package config loads runtime settings for classkeeper.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file, ".env" unless -e/-env names another; a missing file is skipped.
//  3. Process environment (CLASSKEEPER_DB, CLASSKEEPER_LOG_LEVEL,
//     CLASSKEEPER_LOG_FORMAT, CLASSKEEPER_BUSY_TIMEOUT, CLASSKEEPER_MAX_OPEN_CONNS).
//  4. A JSON file named by -c/-config.
//  5. Command-line flags.
//
// Flags
//
//	-d string   database file
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (text, json)
//	-b int      busy timeout in seconds
//	-m int      max open connections
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "5s" or integer
// nanoseconds. Absent keys leave the earlier value in place:
//
//	{
//	  "database_path": "classkeeper.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "busy_timeout": "5s",
//	  "max_open_conns": 1
//	}
package config
