package sqlcommon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-sql-driver/mysql"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/storage"
)

var tracer = otel.Tracer("indexsync/pkg/storage/sqlcommon")

func startTrace(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "sqlcommon."+name)
}

// Config defines the configuration parameters
// for setting up and managing a sql connection.
type Config struct {
	Username string
	Password string
	Logger   logger.Logger

	// MaxParametersPerQuery is the partition size of chunked IN queries.
	MaxParametersPerQuery int

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration

	ExportMetrics bool
}

// DatastoreOption defines a function type
// used for configuring a Config object.
type DatastoreOption func(*Config)

// WithUsername returns a DatastoreOption that sets the username in the Config.
func WithUsername(username string) DatastoreOption {
	return func(config *Config) {
		config.Username = username
	}
}

// WithPassword returns a DatastoreOption that sets the password in the Config.
func WithPassword(password string) DatastoreOption {
	return func(config *Config) {
		config.Password = password
	}
}

// WithLogger returns a DatastoreOption that sets the Logger in the Config.
func WithLogger(l logger.Logger) DatastoreOption {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// WithMaxParametersPerQuery returns a DatastoreOption that sets the
// number of identifiers bound by a single chunked query.
func WithMaxParametersPerQuery(n int) DatastoreOption {
	return func(cfg *Config) {
		cfg.MaxParametersPerQuery = n
	}
}

// WithMaxOpenConns returns a DatastoreOption that sets the
// maximum number of open connections in the Config.
func WithMaxOpenConns(c int) DatastoreOption {
	return func(cfg *Config) {
		cfg.MaxOpenConns = c
	}
}

// WithMaxIdleConns returns a DatastoreOption that sets the
// maximum number of idle connections in the Config.
func WithMaxIdleConns(c int) DatastoreOption {
	return func(cfg *Config) {
		cfg.MaxIdleConns = c
	}
}

// WithConnMaxIdleTime returns a DatastoreOption that sets
// the maximum idle time for a connection in the Config.
func WithConnMaxIdleTime(d time.Duration) DatastoreOption {
	return func(cfg *Config) {
		cfg.ConnMaxIdleTime = d
	}
}

// WithConnMaxLifetime returns a DatastoreOption that sets
// the maximum lifetime for a connection in the Config.
func WithConnMaxLifetime(d time.Duration) DatastoreOption {
	return func(cfg *Config) {
		cfg.ConnMaxLifetime = d
	}
}

// WithMetrics returns a DatastoreOption that
// enables the export of metrics in the Config.
func WithMetrics() DatastoreOption {
	return func(cfg *Config) {
		cfg.ExportMetrics = true
	}
}

// NewConfig creates a new Config instance with default values
// and applies any provided DatastoreOption modifications.
func NewConfig(opts ...DatastoreOption) *Config {
	cfg := &Config{}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoopLogger()
	}

	if cfg.MaxParametersPerQuery <= 0 {
		cfg.MaxParametersPerQuery = storage.DefaultMaxParametersPerQuery
	}

	return cfg
}

// ConfigurePool applies the connection pool settings of cfg to db.
func ConfigurePool(db *sql.DB, cfg *Config) {
	if cfg.MaxOpenConns != 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns != 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxIdleTime != 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	if cfg.ConnMaxLifetime != 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

// ErrorHandlerFn maps a driver error to a storage error.
type ErrorHandlerFn func(error, ...interface{}) error

// RetryFn runs fn, possibly more than once, until it stops failing transiently.
type RetryFn func(fn func() error) error

func noRetry(fn func() error) error {
	return fn()
}

// Datastore implements the storage.Datastore operations shared by every SQL engine.
// Engines embed it and provide their statement builder, error mapping and retry policy.
type Datastore struct {
	db        *sql.DB
	stbl      sq.StatementBuilderType
	handleErr ErrorHandlerFn
	retry     RetryFn
	maxParams int
	logger    logger.Logger
}

// NewDatastore constructs the shared SQL datastore. A nil retry runs statements once.
func NewDatastore(db *sql.DB, stbl sq.StatementBuilderType, cfg *Config, errorHandler ErrorHandlerFn, retry RetryFn) *Datastore {
	if retry == nil {
		retry = noRetry
	}

	return &Datastore{
		db:        db,
		stbl:      stbl,
		handleErr: errorHandler,
		retry:     retry,
		maxParams: cfg.MaxParametersPerQuery,
		logger:    cfg.Logger,
	}
}

// DB returns the underlying connection pool.
func (s *Datastore) DB() *sql.DB {
	return s.db
}

// IsReady reports whether the database answers a ping.
func (s *Datastore) IsReady(ctx context.Context) (storage.ReadinessStatus, error) {
	if err := s.db.PingContext(ctx); err != nil {
		return storage.ReadinessStatus{Message: err.Error()}, err
	}
	return storage.ReadinessStatus{IsReady: true}, nil
}

// inTx runs fn in a transaction that is committed when fn succeeds.
func (s *Datastore) inTx(ctx context.Context, fn func(txn *sql.Tx) error) error {
	var txn *sql.Tx
	err := s.retry(func() error {
		var err error
		txn, err = s.db.BeginTx(ctx, nil)
		return err
	})
	if err != nil {
		return s.handleErr(err)
	}
	defer func() {
		_ = txn.Rollback()
	}()

	if err := fn(txn); err != nil {
		return err
	}

	if err := s.retry(txn.Commit); err != nil {
		return s.handleErr(err)
	}
	return nil
}

// exec runs a statement and returns the number of affected rows. args are handed to
// the error handler to describe the subject of a failed write.
func (s *Datastore) exec(run func() (sql.Result, error), args ...interface{}) (int64, error) {
	var res sql.Result
	err := s.retry(func() error {
		var err error
		res, err = run()
		return err
	})
	if err != nil {
		return 0, s.handleErr(err, args...)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, s.handleErr(err)
	}
	return n, nil
}

// queryRows runs sb and calls scan for each row. Rows are closed before returning.
func (s *Datastore) queryRows(ctx context.Context, sb sq.SelectBuilder, scan func(rows *sql.Rows) error) error {
	rows, err := sb.QueryContext(ctx)
	if err != nil {
		return s.handleErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return s.handleErr(err)
		}
	}
	if err := rows.Err(); err != nil {
		return s.handleErr(err)
	}
	return nil
}

// HandleSQLError processes an SQL error and converts it into a more
// specific error type based on the nature of the SQL error.
func HandleSQLError(err error, args ...interface{}) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}

	var me *mysql.MySQLError
	if strings.Contains(err.Error(), "duplicate key value") ||
		(errors.As(err, &me) && me.Number == 1062) {
		if len(args) > 0 {
			if subject, ok := args[0].(string); ok {
				return fmt.Errorf("%s: %w", subject, storage.ErrCollision)
			}
		}
		return storage.ErrCollision
	}

	return fmt.Errorf("sql error: %w", err)
}

// WaitReady pings db with an exponential backoff until it answers or a minute elapses.
func WaitReady(ctx context.Context, db *sql.DB, cfg *Config, engine string) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 1 * time.Minute
	attempt := 1
	return backoff.Retry(func() error {
		err := db.PingContext(ctx)
		if err != nil {
			cfg.Logger.Info("waiting for database", zap.String("engine", engine), zap.Int("attempt", attempt))
			attempt++
			return err
		}
		return nil
	}, backoff.WithContext(policy, ctx))
}
