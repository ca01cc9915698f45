// Package schemas embeds the SQL migrations for the challenge history store.
package schemas

import "embed"

// Migrations holds one statement per file, applied in file name order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
