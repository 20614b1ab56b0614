package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver.
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/indexsync/indexsync/internal/build"
	"github.com/indexsync/indexsync/pkg/storage"
	"github.com/indexsync/indexsync/pkg/storage/sqlcommon"
)

// Datastore provides a PostgreSQL based implementation of [storage.Datastore].
type Datastore struct {
	*sqlcommon.Datastore
	db               *sql.DB
	dbStatsCollector prometheus.Collector
}

// Ensures that Datastore implements the Datastore interface.
var _ storage.Datastore = (*Datastore)(nil)

// PrepareURI overrides the credentials of uri with username and password when set.
func PrepareURI(uri, username, password string) (string, error) {
	if username == "" && password == "" {
		return uri, nil
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse postgres connection uri: %w", err)
	}

	if username == "" && parsed.User != nil {
		username = parsed.User.Username()
	}

	switch {
	case password != "":
		parsed.User = url.UserPassword(username, password)
	case parsed.User != nil:
		if password, ok := parsed.User.Password(); ok {
			parsed.User = url.UserPassword(username, password)
		} else {
			parsed.User = url.User(username)
		}
	default:
		parsed.User = url.User(username)
	}

	return parsed.String(), nil
}

// New creates a new [Datastore] storage.
func New(uri string, cfg *sqlcommon.Config) (*Datastore, error) {
	uri, err := PrepareURI(uri, cfg.Username, cfg.Password)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("initialize postgres connection: %w", err)
	}

	return NewWithDB(db, cfg)
}

// NewWithDB creates a new [Datastore] storage with the provided database connection.
func NewWithDB(db *sql.DB, cfg *sqlcommon.Config) (*Datastore, error) {
	sqlcommon.ConfigurePool(db, cfg)

	if err := sqlcommon.WaitReady(context.Background(), db, cfg, "postgres"); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	var collector prometheus.Collector
	if cfg.ExportMetrics {
		collector = collectors.NewDBStatsCollector(db, build.ProjectName)
		if err := prometheus.Register(collector); err != nil {
			return nil, fmt.Errorf("initialize metrics: %w", err)
		}
	}

	stbl := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(db)

	return &Datastore{
		Datastore:        sqlcommon.NewDatastore(db, stbl, cfg, sqlcommon.HandleSQLError, nil),
		db:               db,
		dbStatsCollector: collector,
	}, nil
}

// Close see [storage.Datastore].Close.
func (s *Datastore) Close() {
	if s.dbStatsCollector != nil {
		prometheus.Unregister(s.dbStatsCollector)
	}
	s.db.Close()
}
