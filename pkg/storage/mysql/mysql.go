package mysql

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/indexsync/indexsync/internal/build"
	"github.com/indexsync/indexsync/pkg/storage"
	"github.com/indexsync/indexsync/pkg/storage/sqlcommon"
)

// MySQL provides a MySQL based implementation of [storage.Datastore].
type MySQL struct {
	*sqlcommon.Datastore
	db               *sql.DB
	dbStatsCollector prometheus.Collector
}

// Ensures that MySQL implements the Datastore interface.
var _ storage.Datastore = (*MySQL)(nil)

// PrepareDSN overrides the credentials of uri with username and password when set.
func PrepareDSN(uri, username, password string) (string, error) {
	if username == "" && password == "" {
		return uri, nil
	}

	dsnCfg, err := mysql.ParseDSN(uri)
	if err != nil {
		return "", fmt.Errorf("failed to parse mysql connection dsn: %w", err)
	}

	if username != "" {
		dsnCfg.User = username
	}
	if password != "" {
		dsnCfg.Passwd = password
	}

	return dsnCfg.FormatDSN(), nil
}

// New creates a new [MySQL] storage.
func New(uri string, cfg *sqlcommon.Config) (*MySQL, error) {
	uri, err := PrepareDSN(uri, cfg.Username, cfg.Password)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mysql connection: %w", err)
	}
	sqlcommon.ConfigurePool(db, cfg)

	if err := sqlcommon.WaitReady(context.Background(), db, cfg, "mysql"); err != nil {
		return nil, fmt.Errorf("failed to initialize mysql connection: %w", err)
	}

	var collector prometheus.Collector
	if cfg.ExportMetrics {
		collector = collectors.NewDBStatsCollector(db, build.ProjectName)
		if err := prometheus.Register(collector); err != nil {
			return nil, fmt.Errorf("initialize metrics: %w", err)
		}
	}

	stbl := sq.StatementBuilder.RunWith(db)

	return &MySQL{
		Datastore:        sqlcommon.NewDatastore(db, stbl, cfg, sqlcommon.HandleSQLError, nil),
		db:               db,
		dbStatsCollector: collector,
	}, nil
}

// Close see [storage.Datastore].Close.
func (m *MySQL) Close() {
	if m.dbStatsCollector != nil {
		prometheus.Unregister(m.dbStatsCollector)
	}
	m.db.Close()
}
