package sqlite

import (
	"github.com/indexsync/indexsync/pkg/storage"
	"github.com/indexsync/indexsync/pkg/storage/sqlcommon"
)

// NewMigrationProvider creates a new SQLite migration provider.
func NewMigrationProvider() *sqlcommon.MigrationProvider {
	return sqlcommon.NewMigrationProvider("sqlite", "sqlite", "sqlite", func(config storage.MigrationConfig) (string, error) {
		return PrepareDSN(config.URI)
	})
}
