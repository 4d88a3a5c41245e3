// Package migrations embeds the goose SQL migrations for the server schema.
// The goose version table is the schema version of the database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
