package migrate

import (
	"context"
	"fmt"
	"sync"

	"github.com/indexsync/indexsync/pkg/storage"
	"github.com/indexsync/indexsync/pkg/storage/mysql"
	"github.com/indexsync/indexsync/pkg/storage/postgres"
	"github.com/indexsync/indexsync/pkg/storage/sqlite"
)

// MigrationConfig contains the configuration needed for running migrations
type MigrationConfig = storage.MigrationConfig

var (
	// defaultRegistry is the global migration provider registry
	defaultRegistry *storage.MigratorRegistry
	registryOnce    sync.Once
)

func initDefaultRegistry() {
	registryOnce.Do(func() {
		defaultRegistry = storage.NewMigratorRegistry()

		defaultRegistry.RegisterProvider("postgres", postgres.NewMigrationProvider())
		defaultRegistry.RegisterProvider("mysql", mysql.NewMigrationProvider())
		defaultRegistry.RegisterProvider("sqlite", sqlite.NewMigrationProvider())
	})
}

// GetDefaultRegistry returns the registry of the built-in migration providers.
func GetDefaultRegistry() *storage.MigratorRegistry {
	initDefaultRegistry()
	return defaultRegistry
}

// RunMigrationsWithRegistry runs migrations using a specific migration registry.
func RunMigrationsWithRegistry(ctx context.Context, registry *storage.MigratorRegistry, cfg storage.MigrationConfig) error {
	provider, exists := registry.GetProvider(cfg.Engine)
	if !exists {
		return fmt.Errorf("no migration provider registered for engine: %s", cfg.Engine)
	}

	return provider.RunMigrations(ctx, cfg)
}

// RunMigrations runs the migrations for the given config using the default registry.
// It supports both upgrading and downgrading to a specific version.
func RunMigrations(ctx context.Context, cfg storage.MigrationConfig) error {
	return RunMigrationsWithRegistry(ctx, GetDefaultRegistry(), cfg)
}
