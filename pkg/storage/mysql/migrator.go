package mysql

import (
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/indexsync/indexsync/pkg/storage"
	"github.com/indexsync/indexsync/pkg/storage/sqlcommon"
)

// NewMigrationProvider creates a new MySQL migration provider.
func NewMigrationProvider() *sqlcommon.MigrationProvider {
	return sqlcommon.NewMigrationProvider("mysql", "mysql", "mysql", prepareMigrationURI)
}

func prepareMigrationURI(config storage.MigrationConfig) (string, error) {
	dsn, err := mysql.ParseDSN(config.URI)
	if err != nil {
		return "", fmt.Errorf("invalid mysql database uri: %v", err)
	}

	if config.Username != "" {
		dsn.User = config.Username
	}
	if config.Password != "" {
		dsn.Passwd = config.Password
	}

	// goose reads its version table with time columns.
	dsn.ParseTime = true

	return dsn.FormatDSN(), nil
}
