// Package migrations embeds goose SQL migrations of the bot server schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
