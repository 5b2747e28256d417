package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/eventreg/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from "set to the zero value".
type JsonConfig struct {
	StorageDriver *string `json:"storage_driver"`
	StorageDSN    *string `json:"storage_dsn"`
	KeyPrefix     *string `json:"key_prefix"`
	CatalogFile   *string `json:"catalog_file"`
	LogFormat     *string `json:"log_format"`
	LogLevel      *string `json:"log_level"`
	SeedDemoUser  *bool   `json:"seed_demo_user"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without such a flag it does nothing. Read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.StorageDriver, jc.StorageDriver)
	setString(&cfg.StorageDSN, jc.StorageDSN)
	setString(&cfg.KeyPrefix, jc.KeyPrefix)
	setString(&cfg.CatalogFile, jc.CatalogFile)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.SeedDemoUser != nil {
		cfg.SeedDemoUser = *jc.SeedDemoUser
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
