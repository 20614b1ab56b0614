package sqlcommon

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/indexsync/indexsync/assets"
	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/storage"
)

// MigrationProvider runs the embedded goose migrations of one SQL engine.
type MigrationProvider struct {
	engine     string
	driver     string
	dialect    string
	prepareURI func(config storage.MigrationConfig) (string, error)
}

var _ storage.MigrationProvider = (*MigrationProvider)(nil)

// NewMigrationProvider returns a provider opening driver connections with the URI
// returned by prepareURI.
func NewMigrationProvider(
	engine, driver, dialect string,
	prepareURI func(config storage.MigrationConfig) (string, error),
) *MigrationProvider {
	return &MigrationProvider{
		engine:     engine,
		driver:     driver,
		dialect:    dialect,
		prepareURI: prepareURI,
	}
}

// GetSupportedEngine returns the database engine this provider supports.
func (p *MigrationProvider) GetSupportedEngine() string {
	return p.engine
}

func (p *MigrationProvider) open(config storage.MigrationConfig) (*sql.DB, string, error) {
	dir, ok := assets.MigrationDir(p.engine)
	if !ok {
		return nil, "", fmt.Errorf("no embedded migrations for engine %s", p.engine)
	}

	uri, err := p.prepareURI(config)
	if err != nil {
		return nil, "", err
	}

	db, err := goose.OpenDBWithDriver(p.driver, uri)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s connection: %w", p.engine, err)
	}

	goose.SetBaseFS(assets.EmbedMigrations)
	return db, dir, nil
}

// RunMigrations executes the database migrations.
func (p *MigrationProvider) RunMigrations(ctx context.Context, config storage.MigrationConfig) error {
	log := config.Logger
	if log == nil {
		log = logger.NewNoopLogger()
	}
	log = log.With(zap.String("engine", p.engine))

	goose.SetLogger(goose.NopLogger())
	goose.SetVerbose(config.Verbose)

	if err := goose.SetDialect(p.dialect); err != nil {
		return fmt.Errorf("failed to set %s dialect: %w", p.engine, err)
	}

	db, dir, err := p.open(config)
	if err != nil {
		return err
	}
	defer db.Close()

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = config.Timeout
	err = backoff.Retry(func() error {
		return db.PingContext(ctx)
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return fmt.Errorf("failed to initialize %s connection: %w", p.engine, err)
	}

	currentVersion, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get %s db version: %w", p.engine, err)
	}
	log.Info("current schema version", zap.Int64("version", currentVersion))

	if config.TargetVersion == 0 {
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", p.engine, err)
		}
		log.Info("migration done")
		return nil
	}

	target := int64(config.TargetVersion)
	switch {
	case target < currentVersion:
		if err := goose.DownToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("failed to run %s migrations down to %v: %w", p.engine, target, err)
		}
	case target > currentVersion:
		if err := goose.UpToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("failed to run %s migrations up to %v: %w", p.engine, target, err)
		}
	default:
		log.Info("nothing to migrate")
		return nil
	}

	log.Info("migration done", zap.Int64("version", target))
	return nil
}

// GetCurrentVersion returns the current migration version.
func (p *MigrationProvider) GetCurrentVersion(ctx context.Context, config storage.MigrationConfig) (int64, error) {
	db, _, err := p.open(config)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	return goose.GetDBVersionContext(ctx, db)
}
