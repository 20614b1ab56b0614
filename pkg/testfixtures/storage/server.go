package storage

import (
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/go-sql-driver/mysql" // MySQL driver.
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver.
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/assets"
)

// serverTestContainer is a database server provisioned outside of the test run.
type serverTestContainer struct {
	engine string
	driver string
	envVar string
	dir    string
	uri    string
	// mysql URIs are DSNs rather than URLs.
	dsn     bool
	version int64
}

// NewPostgresTestContainer returns an implementation of the DatastoreTestContainer interface
// for Postgres.
func NewPostgresTestContainer() *serverTestContainer {
	return &serverTestContainer{
		engine: "postgres",
		driver: "pgx",
		envVar: "INDEXSYNC_TEST_POSTGRES_URI",
		dir:    assets.PostgresMigrationDir,
	}
}

// NewMySQLTestContainer returns an implementation of the DatastoreTestContainer interface
// for MySQL.
func NewMySQLTestContainer() *serverTestContainer {
	return &serverTestContainer{
		engine: "mysql",
		driver: "mysql",
		envVar: "INDEXSYNC_TEST_MYSQL_URI",
		dir:    assets.MySQLMigrationDir,
		dsn:    true,
	}
}

func (s *serverTestContainer) GetDatabaseSchemaVersion() int64 {
	return s.version
}

// RunPostgresTestContainer migrates the Postgres database named by INDEXSYNC_TEST_POSTGRES_URI.
func (s *serverTestContainer) RunPostgresTestContainer(t testing.TB) DatastoreTestContainer {
	return s.run(t)
}

// RunMySQLTestContainer migrates the MySQL database named by INDEXSYNC_TEST_MYSQL_URI.
func (s *serverTestContainer) RunMySQLTestContainer(t testing.TB) DatastoreTestContainer {
	return s.run(t)
}

func (s *serverTestContainer) run(t testing.TB) DatastoreTestContainer {
	s.uri = os.Getenv(s.envVar)
	if s.uri == "" {
		t.Skipf("%s not set, skipping %s tests", s.envVar, s.engine)
	}

	goose.SetLogger(goose.NopLogger())
	require.NoError(t, goose.SetDialect(s.engine))

	db, err := goose.OpenDBWithDriver(s.driver, s.uri)
	require.NoError(t, err)
	defer db.Close()

	backoffPolicy := backoff.NewExponentialBackOff()
	backoffPolicy.MaxElapsedTime = 30 * time.Second
	err = backoff.Retry(db.Ping, backoffPolicy)
	require.NoError(t, err, "failed to connect to %s", s.engine)

	goose.SetBaseFS(assets.EmbedMigrations)

	require.NoError(t, goose.Up(db, s.dir))
	s.version, err = goose.GetDBVersion(db)
	require.NoError(t, err)

	return s
}

// GetConnectionURI returns the connection uri, stripping the user info when
// includeCredentials is false.
func (s *serverTestContainer) GetConnectionURI(includeCredentials bool) string {
	if includeCredentials || s.dsn {
		return s.uri
	}
	u, err := url.Parse(s.uri)
	if err != nil {
		return s.uri
	}
	u.User = nil
	return u.String()
}

func (s *serverTestContainer) GetUsername() string {
	if u, err := url.Parse(s.uri); err == nil && u.User != nil {
		return u.User.Username()
	}
	return ""
}

func (s *serverTestContainer) GetPassword() string {
	if u, err := url.Parse(s.uri); err == nil && u.User != nil {
		p, _ := u.User.Password()
		return p
	}
	return ""
}
