package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/pkg/storage"
	"github.com/indexsync/indexsync/pkg/storage/mysql"
	"github.com/indexsync/indexsync/pkg/storage/postgres"
	"github.com/indexsync/indexsync/pkg/storage/sqlcommon"
	"github.com/indexsync/indexsync/pkg/storage/sqlite"
)

// DatastoreTestContainer represents a migrated database for testing a specific datastore engine.
type DatastoreTestContainer interface {
	// GetConnectionURI returns a connection string to the database.
	GetConnectionURI(includeCredentials bool) string

	// GetDatabaseSchemaVersion returns the last migration applied when the database was prepared.
	GetDatabaseSchemaVersion() int64

	GetUsername() string
	GetPassword() string
}

// RunDatastoreTestContainer prepares a migrated database for the provided engine. SQLite
// databases are created in a temporary directory; server engines are reached through
// the INDEXSYNC_TEST_<ENGINE>_URI environment variables and the test is skipped when
// the variable is not set.
func RunDatastoreTestContainer(t testing.TB, engine string) DatastoreTestContainer {
	switch engine {
	case "sqlite":
		return NewSqliteTestContainer().RunSqliteTestDatabase(t)
	case "postgres":
		return NewPostgresTestContainer().RunPostgresTestContainer(t)
	case "mysql":
		return NewMySQLTestContainer().RunMySQLTestContainer(t)
	default:
		t.Fatalf("'%s' engine is not supported by RunDatastoreTestContainer", engine)
		return nil
	}
}

// MustBootstrapDatastore returns a datastore of the given engine backed by a migrated
// database. It is closed when the test finishes.
func MustBootstrapDatastore(t testing.TB, engine string, opts ...sqlcommon.DatastoreOption) storage.Datastore {
	testDatastore := RunDatastoreTestContainer(t, engine)

	uri := testDatastore.GetConnectionURI(true)
	cfg := sqlcommon.NewConfig(opts...)

	var ds storage.Datastore
	var err error

	switch engine {
	case "sqlite":
		ds, err = sqlite.New(uri, cfg)
	case "postgres":
		ds, err = postgres.New(uri, cfg)
	case "mysql":
		ds, err = mysql.New(uri, cfg)
	default:
		t.Fatalf("'%s' is not a supported datastore engine", engine)
	}
	require.NoError(t, err)
	t.Cleanup(ds.Close)

	return ds
}
