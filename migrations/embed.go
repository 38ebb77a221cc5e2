// Package migrations holds the SQL schema files for the database backends.
package migrations

import "embed"

// FS contains the sqlite/ and postgres/ migration directories
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
