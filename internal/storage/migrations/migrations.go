// Package migrations embeds the goose migrations that create the kv_store
// table, one directory per SQL dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
