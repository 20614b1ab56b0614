package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/pkg/storage/sqlcommon"
	"github.com/indexsync/indexsync/pkg/storage/sqlite"
	"github.com/indexsync/indexsync/pkg/storage/test"
	storagefixtures "github.com/indexsync/indexsync/pkg/testfixtures/storage"
)

func TestSQLiteDatastore(t *testing.T) {
	ds := storagefixtures.MustBootstrapDatastore(t, "sqlite")
	test.RunAllTests(t, ds)
}

func TestSQLiteDatastoreLargeInputs(t *testing.T) {
	const maxParams = 7
	ds := storagefixtures.MustBootstrapDatastore(t, "sqlite", sqlcommon.WithMaxParametersPerQuery(maxParams))
	test.RunLargeInputTests(t, ds, maxParams)
}

func TestSQLiteDatastoreAfterCloseIsNotReady(t *testing.T) {
	testDatastore := storagefixtures.RunDatastoreTestContainer(t, "sqlite")

	uri := testDatastore.GetConnectionURI(true)
	ds, err := sqlite.New(uri, sqlcommon.NewConfig())
	require.NoError(t, err)
	ds.Close()

	status, err := ds.IsReady(context.Background())
	require.Error(t, err)
	require.False(t, status.IsReady)
}

func TestSQLiteMigrationProvider(t *testing.T) {
	testDatastore := storagefixtures.RunDatastoreTestContainer(t, "sqlite")
	provider := sqlite.NewMigrationProvider()
	require.Equal(t, "sqlite", provider.GetSupportedEngine())

	ctx := context.Background()
	uri := testDatastore.GetConnectionURI(true)

	version, err := provider.GetCurrentVersion(ctx, storageMigrationConfig(uri, 0))
	require.NoError(t, err)
	require.Equal(t, testDatastore.GetDatabaseSchemaVersion(), version)

	// migrating to the current version is a no-op
	require.NoError(t, provider.RunMigrations(ctx, storageMigrationConfig(uri, uint(version))))
	require.NoError(t, provider.RunMigrations(ctx, storageMigrationConfig(uri, 0)))
}
