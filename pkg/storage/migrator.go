package storage

import (
	"context"
	"slices"
	"time"

	"github.com/indexsync/indexsync/pkg/logger"
)

// MigrationProvider runs the schema migrations of one datastore engine.
type MigrationProvider interface {
	// RunMigrations migrates the schema up, or up or down to config.TargetVersion when set.
	RunMigrations(ctx context.Context, config MigrationConfig) error

	// GetCurrentVersion returns the current migration version of the database.
	GetCurrentVersion(ctx context.Context, config MigrationConfig) (int64, error)

	// GetSupportedEngine returns the database engine this provider supports.
	GetSupportedEngine() string
}

// MigrationConfig contains the configuration needed for running migrations.
type MigrationConfig struct {
	Engine        string
	URI           string
	TargetVersion uint
	Timeout       time.Duration
	Verbose       bool
	Username      string
	Password      string
	Logger        logger.Logger
}

// MigratorRegistry manages migration providers for different database engines.
type MigratorRegistry struct {
	providers map[string]MigrationProvider
}

// NewMigratorRegistry creates a new migration provider registry.
func NewMigratorRegistry() *MigratorRegistry {
	return &MigratorRegistry{
		providers: make(map[string]MigrationProvider),
	}
}

// RegisterProvider registers a migration provider for a specific database engine.
func (r *MigratorRegistry) RegisterProvider(engine string, provider MigrationProvider) {
	r.providers[engine] = provider
}

// GetProvider returns the migration provider for the specified engine.
func (r *MigratorRegistry) GetProvider(engine string) (MigrationProvider, bool) {
	provider, exists := r.providers[engine]
	return provider, exists
}

// GetSupportedEngines returns the sorted list of registered database engines.
func (r *MigratorRegistry) GetSupportedEngines() []string {
	engines := make([]string, 0, len(r.providers))
	for engine := range r.providers {
		engines = append(engines, engine)
	}
	slices.Sort(engines)
	return engines
}
