// Package schemas provides embedded SQL schema files.
package schemas

import "embed"

// Migrations contains the SQL files applied at startup, in lexical order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
