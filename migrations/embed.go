// Package migrations embeds the PostgreSQL schema so migrate runs from any working directory.
package migrations

import "embed"

// FS holds the forward-only *.sql migrations, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
