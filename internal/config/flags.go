package config

import (
	"flag"

	"github.com/dmitrijs2005/eventreg/internal/flagx"
)

var knownFlags = []string{"-d", "-s", "-p", "-e", "-l", "-v", "-seed"}

// parseFlags overlays cfg with the flags this package owns; other
// arguments are filtered out first. A malformed value panics.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("eventreg", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageDriver, "d", cfg.StorageDriver, "storage driver (sqlite, postgres, redis, memory)")
	fs.StringVar(&cfg.StorageDSN, "s", cfg.StorageDSN, "storage DSN")
	fs.StringVar(&cfg.KeyPrefix, "p", cfg.KeyPrefix, "key prefix for stored records")
	fs.StringVar(&cfg.CatalogFile, "e", cfg.CatalogFile, "event catalog JSON file")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format (text, json, zap)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.SeedDemoUser, "seed", cfg.SeedDemoUser, "seed the demo user into an empty directory")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}
}
