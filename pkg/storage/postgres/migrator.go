package postgres

import (
	"github.com/indexsync/indexsync/pkg/storage"
	"github.com/indexsync/indexsync/pkg/storage/sqlcommon"
)

// NewMigrationProvider creates a new PostgreSQL migration provider.
func NewMigrationProvider() *sqlcommon.MigrationProvider {
	return sqlcommon.NewMigrationProvider("postgres", "pgx", "postgres", func(config storage.MigrationConfig) (string, error) {
		return PrepareURI(config.URI, config.Username, config.Password)
	})
}
