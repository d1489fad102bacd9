// Package migrations embeds the SQL migrations for the record store.
package migrations

import "embed"

//go:embed *.sql
var MigrationsFS embed.FS
