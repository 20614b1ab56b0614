package sqlite_test

import (
	"time"

	"github.com/indexsync/indexsync/pkg/storage"
)

func storageMigrationConfig(uri string, target uint) storage.MigrationConfig {
	return storage.MigrationConfig{
		Engine:        "sqlite",
		URI:           uri,
		TargetVersion: target,
		Timeout:       5 * time.Second,
	}
}
