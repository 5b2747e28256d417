package config

import "os"

// Config holds runtime settings for the eventreg CLI.
type Config struct {
	StorageDriver string `env:"STORAGE_DRIVER"`
	StorageDSN    string `env:"STORAGE_DSN"`
	KeyPrefix     string `env:"KEY_PREFIX"`
	CatalogFile   string `env:"CATALOG_FILE"`
	LogFormat     string `env:"LOG_FORMAT"`
	LogLevel      string `env:"LOG_LEVEL"`
	SeedDemoUser  bool   `env:"SEED_DEMO_USER"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = "sqlite"
	c.StorageDSN = "eventreg.db"
	c.KeyPrefix = "ev_"
	c.CatalogFile = ""
	c.LogFormat = "text"
	c.LogLevel = "info"
	c.SeedDemoUser = true
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and the command line, in that order. It panics on malformed input.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	if err := parseEnv(cfg); err != nil {
		panic(err)
	}
	parseFlags(cfg, args)
	return cfg
}
