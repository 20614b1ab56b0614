package assets

import "embed"

const (
	SqliteMigrationDir   = "migrations/sqlite"
	PostgresMigrationDir = "migrations/postgres"
	MySQLMigrationDir    = "migrations/mysql"
)

//go:embed migrations/*
var EmbedMigrations embed.FS

// MigrationDir returns the embedded migration directory of a datastore engine.
func MigrationDir(engine string) (string, bool) {
	switch engine {
	case "sqlite":
		return SqliteMigrationDir, true
	case "postgres":
		return PostgresMigrationDir, true
	case "mysql":
		return MySQLMigrationDir, true
	default:
		return "", false
	}
}
