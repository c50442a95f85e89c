package migrations

import "embed"

// FS holds the SQL migrations applied by database.Migrate and love-cli.
//
//go:embed *.sql
var FS embed.FS
