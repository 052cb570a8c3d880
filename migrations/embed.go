// Package migrations embeds the SQL schema migrations into the server binary.
package migrations

import "embed"

// Files holds every migration in this directory.
//
//go:embed *.sql
var Files embed.FS
