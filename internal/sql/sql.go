// Package sql embeds the schema DDL applied before seeding.
package sql

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
