// Package config loads runtime configuration for eventreg.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with EVENTREG_.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   storage driver: sqlite, postgres, redis, memory
//	-s string   storage DSN (file path, postgres:// or redis:// URL)
//	-p string   key prefix namespacing the stored records
//	-e string   JSON file with the event catalog
//	-l string   log format: text, json, zap
//	-v string   log level: debug, info, warn, error
//	-seed bool  seed the demo user into an empty directory
//
// # JSON schema
//
//	{
//	  "storage_driver": "sqlite",
//	  "storage_dsn": "eventreg.db",
//	  "key_prefix": "ev_",
//	  "catalog_file": "",
//	  "log_format": "text",
//	  "log_level": "info",
//	  "seed_demo_user": true
//	}
//
// Missing JSON fields leave the previous value in place.
package config
