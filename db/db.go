package db

import "embed"

// Migrations holds the SQLite schema, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// PostgresMigrations holds the same schema for the Postgres store.
//
//go:embed postgres/*.sql
var PostgresMigrations embed.FS
