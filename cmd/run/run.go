// Package run contains the command to run the indexsync daemon.
package run

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/indexsync/indexsync/internal/build"
	"github.com/indexsync/indexsync/internal/config"
	"github.com/indexsync/indexsync/pkg/indexer"
	"github.com/indexsync/indexsync/pkg/indexer/families"
	"github.com/indexsync/indexsync/pkg/indexer/recovery"
	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/search/elastic"
	"github.com/indexsync/indexsync/pkg/search/memory"
	"github.com/indexsync/indexsync/pkg/storage"
	"github.com/indexsync/indexsync/pkg/storage/mysql"
	"github.com/indexsync/indexsync/pkg/storage/postgres"
	"github.com/indexsync/indexsync/pkg/storage/sqlcommon"
	"github.com/indexsync/indexsync/pkg/storage/sqlite"
	"github.com/indexsync/indexsync/pkg/telemetry"
)

const searchReadyTimeout = time.Minute

func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the indexsync daemon",
		Long:  "Run the indexsync daemon. Uninitialized indices are fully indexed on startup, then the recovery sweep drains the change queue periodically.",
		Run:   run,
		Args:  cobra.NoArgs,
	}

	addConfigFlags(cmd)
	cmd.PreRun = bindConfigFlags

	return cmd
}

// ReadConfig returns the default config overridden by the config file, the
// environment and the flags.
func ReadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	viper.SetTypeByDefaultValue(true)
	err := viper.ReadInConfig()
	if err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func run(_ *cobra.Command, _ []string) {
	cfg, serverCtx, err := newServerContext()
	if err != nil {
		panic(err)
	}

	if err := serverCtx.Run(context.Background(), cfg); err != nil {
		panic(err)
	}
}

// newServerContext reads and verifies the config and builds its logger.
func newServerContext() (*config.Config, *ServerContext, error) {
	cfg, err := ReadConfig()
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.Verify(); err != nil {
		return nil, nil, err
	}

	logger, err := logger.NewLogger(cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	return cfg, &ServerContext{Logger: logger}, nil
}

// ServerContext holds the components built from a config. They are set by Prepare.
type ServerContext struct {
	Logger logger.Logger

	Datastore storage.Datastore
	Index     search.Index
	Indexers  *indexer.Indexers
}

func (s *ServerContext) telemetryConfig(ctx context.Context, cfg *config.Config) (func() error, error) {
	if !cfg.Trace.Enabled {
		otel.SetTracerProvider(telemetry.Noop())
		return func() error { return nil }, nil
	}

	s.Logger.Info(fmt.Sprintf("tracing enabled: sampling ratio is %v and sending traces to '%s', tls: %t", cfg.Trace.SampleRatio, cfg.Trace.OTLP.Endpoint, cfg.Trace.OTLP.TLS.Enabled))

	tp, err := telemetry.NewTracerProvider(ctx,
		telemetry.WithOTLPEndpoint(cfg.Trace.OTLP.Endpoint),
		telemetry.WithOTLPTLS(cfg.Trace.OTLP.TLS.Enabled),
		telemetry.WithServiceName(cfg.Trace.ServiceName),
		telemetry.WithSamplingRatio(cfg.Trace.SampleRatio),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	return func() error {
		// the batch span processor can take up to 5 seconds to flush
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		return tp.Close(ctx)
	}, nil
}

func (s *ServerContext) datastoreConfig(cfg *config.Config) (storage.Datastore, error) {
	dsCfg := cfg.Datastore

	datastoreOptions := []sqlcommon.DatastoreOption{
		sqlcommon.WithUsername(dsCfg.Username),
		sqlcommon.WithPassword(dsCfg.Password),
		sqlcommon.WithLogger(s.Logger),
		sqlcommon.WithMaxParametersPerQuery(dsCfg.MaxParametersPerQuery),
		sqlcommon.WithMaxOpenConns(dsCfg.MaxOpenConns),
		sqlcommon.WithMaxIdleConns(dsCfg.MaxIdleConns),
		sqlcommon.WithConnMaxIdleTime(dsCfg.ConnMaxIdleTime),
		sqlcommon.WithConnMaxLifetime(dsCfg.ConnMaxLifetime),
	}
	if dsCfg.Metrics.Enabled {
		datastoreOptions = append(datastoreOptions, sqlcommon.WithMetrics())
	}
	dsc := sqlcommon.NewConfig(datastoreOptions...)

	var (
		ds  storage.Datastore
		err error
	)
	switch dsCfg.Engine {
	case "sqlite":
		ds, err = sqlite.New(dsCfg.URI, dsc)
	case "postgres":
		ds, err = postgres.New(dsCfg.URI, dsc)
	case "mysql":
		ds, err = mysql.New(dsCfg.URI, dsc)
	default:
		return nil, fmt.Errorf("storage engine '%s' is unsupported", dsCfg.Engine)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s datastore: %w", dsCfg.Engine, err)
	}

	s.Logger.Info(fmt.Sprintf("using '%v' datastore", dsCfg.Engine))
	return ds, nil
}

func (s *ServerContext) searchConfig(ctx context.Context, cfg *config.Config) (search.Index, error) {
	switch cfg.Search.Engine {
	case "memory":
		s.Logger.Warn("using the in-memory search backend, documents are lost on restart")
		return memory.New(), nil
	case "elasticsearch":
		idx, err := elastic.New(elastic.Config{
			Addresses:  cfg.Search.Addresses,
			Username:   cfg.Search.Username,
			Password:   cfg.Search.Password,
			APIKey:     cfg.Search.APIKey,
			Timeout:    cfg.Search.Timeout,
			MaxRetries: cfg.Search.MaxRetries,
			Replicas:   cfg.Search.Replicas,
			Logger:     s.Logger,
		})
		if err != nil {
			return nil, err
		}
		if err := idx.WaitReady(ctx, searchReadyTimeout); err != nil {
			return nil, fmt.Errorf("elasticsearch is not reachable: %w", err)
		}
		s.Logger.Info("using 'elasticsearch' search backend", zap.Strings("addresses", cfg.Search.Addresses))
		return idx, nil
	default:
		return nil, fmt.Errorf("search engine '%s' is unsupported", cfg.Search.Engine)
	}
}

// Prepare connects the datastore and the search backend, creates missing indices
// and registers the indexers. The returned function releases them.
func (s *ServerContext) Prepare(ctx context.Context, cfg *config.Config) (func(), error) {
	ds, err := s.datastoreConfig(cfg)
	if err != nil {
		return nil, err
	}

	idx, err := s.searchConfig(ctx, cfg)
	if err != nil {
		ds.Close()
		return nil, err
	}

	defs := families.Definitions(cfg.Search.Shards, cfg.Search.Replicas)
	if _, err := search.EnsureIndices(ctx, idx, s.Logger, defs...); err != nil {
		ds.Close()
		return nil, fmt.Errorf("failed to create indices: %w", err)
	}

	indexers, err := families.NewIndexers(ds, idx, defs, s.Logger,
		indexer.WithBatchSizes(cfg.Indexing.RegularBatchSize, cfg.Indexing.LargeBatchSize),
	)
	if err != nil {
		ds.Close()
		return nil, err
	}

	s.Datastore = ds
	s.Index = idx
	s.Indexers = indexers

	return ds.Close, nil
}

// healthHandler reports whether both the datastore and the search backend answer.
func (s *ServerContext) healthHandler(w http.ResponseWriter, r *http.Request) {
	status, err := s.Datastore.IsReady(r.Context())
	if err != nil || !status.IsReady {
		http.Error(w, fmt.Sprintf("datastore not ready: %s", status.Message), http.StatusServiceUnavailable)
		return
	}
	if err := s.Index.Ping(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("search backend not ready: %v", err), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Run prepares the components, indexes the uninitialized families and serves
// until ctx is done or the process is signaled.
func (s *ServerContext) Run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracerProviderCloser, err := s.telemetryConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := tracerProviderCloser(); err != nil {
			s.Logger.Error("failed to shutdown tracing", zap.Error(err))
		}
	}()

	closeComponents, err := s.Prepare(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeComponents()

	if err := s.Indexers.IndexOnStartup(ctx); err != nil {
		return fmt.Errorf("failed to index on startup: %w", err)
	}

	var sweep *recovery.Indexer
	if cfg.Recovery.Enabled {
		sweep = recovery.New(s.Datastore, s.Indexers,
			recovery.WithConfig(cfg.Recovery.Recovery()),
			recovery.WithLogger(s.Logger),
		)
		sweep.Start(ctx)
		s.Logger.Info("recovery sweep started",
			zap.Duration("initialDelay", cfg.Recovery.InitialDelay),
			zap.Duration("delay", cfg.Recovery.Delay))
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/healthz", otelhttp.NewHandler(http.HandlerFunc(s.healthHandler), "healthz"))
		metricsServer = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		go func() {
			s.Logger.Info(fmt.Sprintf("starting prometheus metrics server on '%s'", cfg.Metrics.Addr))
			if err := metricsServer.ListenAndServe(); err != nil {
				if !errors.Is(err, http.ErrServerClosed) {
					s.Logger.Error("failed to start prometheus metrics server", zap.Error(err))
					stop()
				}
			}
			s.Logger.Info("metrics server shut down.")
		}()
	}

	s.Logger.Info("indexsync started", zap.String("version", build.Version), zap.Strings("families", s.Indexers.Families()))

	// wait for cancellation signal
	<-ctx.Done()
	s.Logger.Info("attempting to shutdown gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if sweep != nil {
		sweep.Close()
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			s.Logger.Info("failed to shutdown the prometheus metrics server", zap.Error(err))
		}
	}

	s.Logger.Info("indexsync exited. goodbye")

	return nil
}
