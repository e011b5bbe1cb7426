// Package migrations embeds the SQL schema migrations applied by goose.
package migrations

import "embed"

// FS holds the migration files at its root.
//
//go:embed *.sql
var FS embed.FS
