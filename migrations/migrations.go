// Package migrations embeds the SQL schema migrations for each database backend.
package migrations

import "embed"

// FS holds the sqlite/ and postgres/ migration directories
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
