package storage

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/assets"
)

type sqliteTestContainer struct {
	path    string
	version int64
}

// NewSqliteTestContainer returns an implementation of the DatastoreTestContainer interface
// for SQLite.
func NewSqliteTestContainer() *sqliteTestContainer {
	return &sqliteTestContainer{}
}

func (m *sqliteTestContainer) GetDatabaseSchemaVersion() int64 {
	return m.version
}

// RunSqliteTestDatabase creates a migrated sqlite database file that is removed
// when the test finishes.
func (m *sqliteTestContainer) RunSqliteTestDatabase(t testing.TB) DatastoreTestContainer {
	m.path = filepath.Join(t.TempDir(), "database.db")

	uri := m.GetConnectionURI(true)

	goose.SetLogger(goose.NopLogger())

	db, err := goose.OpenDBWithDriver("sqlite", uri)
	require.NoError(t, err)
	defer db.Close()

	goose.SetBaseFS(assets.EmbedMigrations)

	err = goose.Up(db, assets.SqliteMigrationDir)
	require.NoError(t, err)
	version, err := goose.GetDBVersion(db)
	require.NoError(t, err)
	m.version = version

	return m
}

// GetConnectionURI returns the sqlite connection uri of the test database.
func (m *sqliteTestContainer) GetConnectionURI(includeCredentials bool) string {
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(100)", m.path)
}

func (m *sqliteTestContainer) GetUsername() string {
	return ""
}

func (m *sqliteTestContainer) GetPassword() string {
	return ""
}
