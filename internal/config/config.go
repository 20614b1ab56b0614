// Package config contains all knobs and defaults used to configure indexsync when
// running as a daemon.
package config

import (
	"errors"
	"fmt"
	"net"
	"slices"
	"time"

	"github.com/indexsync/indexsync/pkg/indexer"
	"github.com/indexsync/indexsync/pkg/indexer/recovery"
	"github.com/indexsync/indexsync/pkg/storage"
)

const (
	DefaultSearchReplicas       = 1
	DefaultSearchShards         = 1
	DefaultSearchTimeout        = 30 * time.Second
	DefaultSearchMaxRetries     = 3
	DefaultPrincipalCacheLimit  = 10000
	DefaultPrincipalCacheTTL    = time.Minute
	DefaultDatastoreMaxOpenConn = 30
	DefaultDatastoreMaxIdleConn = 10
)

var (
	datastoreEngines = []string{"sqlite", "postgres", "mysql"}
	searchEngines    = []string{"memory", "elasticsearch"}
	logLevels        = []string{"none", "debug", "info", "warn", "error"}
)

type DatastoreMetricsConfig struct {
	// Enabled enables export of the Datastore metrics.
	Enabled bool
}

// DatastoreConfig defines the relational store settings.
type DatastoreConfig struct {
	// Engine is the datastore engine to use (e.g. 'sqlite', 'postgres', 'mysql')
	Engine   string
	URI      string
	Username string
	Password string

	// MaxOpenConns is the maximum number of open connections to the database.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of connections to the datastore in the idle connection
	// pool.
	MaxIdleConns int

	// ConnMaxIdleTime is the maximum amount of time a connection to the datastore may be idle.
	ConnMaxIdleTime time.Duration

	// ConnMaxLifetime is the maximum amount of time a connection to the datastore may be reused.
	ConnMaxLifetime time.Duration

	// MaxParametersPerQuery is the number of identifiers bound by one chunked read.
	MaxParametersPerQuery int

	// Metrics is configuration for the Datastore metrics.
	Metrics DatastoreMetricsConfig
}

// SearchConfig defines the search backend settings.
type SearchConfig struct {
	// Engine is the search backend to use (e.g. 'memory', 'elasticsearch')
	Engine     string
	Addresses  []string
	Username   string
	Password   string
	APIKey     string `mapstructure:"apiKey"`
	Timeout    time.Duration
	MaxRetries int
	Shards     int
	Replicas   int
}

type IndexingConfig struct {
	RegularBatchSize int
	LargeBatchSize   int
}

type RecoveryConfig struct {
	Enabled             bool
	InitialDelay        time.Duration
	Delay               time.Duration
	MinAge              time.Duration
	LoopLimit           int
	CircuitBreakerRatio float64
}

// Recovery returns the sweep settings.
func (c RecoveryConfig) Recovery() recovery.Config {
	return recovery.Config{
		InitialDelay:        c.InitialDelay,
		Delay:               c.Delay,
		MinAge:              c.MinAge,
		LoopLimit:           c.LoopLimit,
		CircuitBreakerRatio: c.CircuitBreakerRatio,
	}
}

// PrincipalCacheConfig bounds the cache of user groups used by query-time filters.
type PrincipalCacheConfig struct {
	Limit int64
	TTL   time.Duration
}

// LogConfig defines log specific settings. For production we recommend using the
// 'json' log format.
type LogConfig struct {
	// Format is the log format to use in the log output (e.g. 'text' or 'json')
	Format string

	// Level is the log level to use in the log output (e.g. 'none', 'debug', or 'info')
	Level string
}

type TraceConfig struct {
	Enabled     bool
	OTLP        OTLPTraceConfig `mapstructure:"otlp"`
	SampleRatio float64
	ServiceName string
}

type OTLPTraceConfig struct {
	Endpoint string
	TLS      OTLPTraceTLSConfig
}

type OTLPTraceTLSConfig struct {
	Enabled bool
}

// MetricConfig defines the address serving /metrics and /healthz.
type MetricConfig struct {
	Enabled bool
	Addr    string
}

type Config struct {
	Datastore      DatastoreConfig
	Search         SearchConfig
	Indexing       IndexingConfig
	Recovery       RecoveryConfig
	PrincipalCache PrincipalCacheConfig
	Log            LogConfig
	Trace          TraceConfig
	Metrics        MetricConfig
}

func (cfg *Config) Verify() error {
	if !slices.Contains(datastoreEngines, cfg.Datastore.Engine) {
		return fmt.Errorf("config 'datastore.engine' must be one of %v", datastoreEngines)
	}

	if cfg.Datastore.MaxParametersPerQuery <= 0 {
		return errors.New("config 'datastore.maxParametersPerQuery' must be a positive integer")
	}

	if !slices.Contains(searchEngines, cfg.Search.Engine) {
		return fmt.Errorf("config 'search.engine' must be one of %v", searchEngines)
	}

	if cfg.Search.Engine == "elasticsearch" && len(cfg.Search.Addresses) == 0 {
		return errors.New("config 'search.addresses' must be set for the elasticsearch engine")
	}

	if cfg.Search.Shards <= 0 || cfg.Search.Replicas < 0 {
		return errors.New("config 'search.shards' must be positive and 'search.replicas' non-negative")
	}

	if cfg.Indexing.RegularBatchSize <= 0 || cfg.Indexing.LargeBatchSize <= 0 {
		return errors.New("indexing batch sizes must be positive integers")
	}

	if cfg.Recovery.Enabled {
		if cfg.Recovery.Delay <= 0 {
			return errors.New("config 'recovery.delay' must be a positive duration")
		}
		if cfg.Recovery.LoopLimit <= 0 {
			return errors.New("config 'recovery.loopLimit' must be a positive integer")
		}
		if cfg.Recovery.CircuitBreakerRatio < 0 || cfg.Recovery.CircuitBreakerRatio > 1 {
			return errors.New("config 'recovery.circuitBreakerRatio' must be between 0 and 1")
		}
	}

	if cfg.PrincipalCache.Limit <= 0 {
		return errors.New("config 'principalCache.limit' must be a positive integer")
	}

	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("config 'log.format' must be one of ['text', 'json']")
	}

	if !slices.Contains(logLevels, cfg.Log.Level) {
		return fmt.Errorf("config 'log.level' must be one of %v", logLevels)
	}

	if cfg.Trace.Enabled && (cfg.Trace.SampleRatio < 0 || cfg.Trace.SampleRatio > 1) {
		return errors.New("config 'trace.sampleRatio' must be between 0 and 1")
	}

	return nil
}

// DefaultConfig is the indexsync default configuration.
func DefaultConfig() *Config {
	rc := recovery.DefaultConfig()

	return &Config{
		Datastore: DatastoreConfig{
			Engine:                "sqlite",
			URI:                   "file:indexsync.db",
			MaxIdleConns:          DefaultDatastoreMaxIdleConn,
			MaxOpenConns:          DefaultDatastoreMaxOpenConn,
			MaxParametersPerQuery: storage.DefaultMaxParametersPerQuery,
		},
		Search: SearchConfig{
			Engine:     "memory",
			Addresses:  []string{},
			Timeout:    DefaultSearchTimeout,
			MaxRetries: DefaultSearchMaxRetries,
			Shards:     DefaultSearchShards,
			Replicas:   DefaultSearchReplicas,
		},
		Indexing: IndexingConfig{
			RegularBatchSize: indexer.DefaultRegularBatchSize,
			LargeBatchSize:   indexer.DefaultLargeBatchSize,
		},
		Recovery: RecoveryConfig{
			Enabled:             true,
			InitialDelay:        rc.InitialDelay,
			Delay:               rc.Delay,
			MinAge:              rc.MinAge,
			LoopLimit:           rc.LoopLimit,
			CircuitBreakerRatio: rc.CircuitBreakerRatio,
		},
		PrincipalCache: PrincipalCacheConfig{
			Limit: DefaultPrincipalCacheLimit,
			TTL:   DefaultPrincipalCacheTTL,
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Trace: TraceConfig{
			Enabled: false,
			OTLP: OTLPTraceConfig{
				Endpoint: "0.0.0.0:4317",
				TLS: OTLPTraceTLSConfig{
					Enabled: false,
				},
			},
			SampleRatio: 0.2,
			ServiceName: "indexsync",
		},
		Metrics: MetricConfig{
			Enabled: true,
			Addr:    "0.0.0.0:2112",
		},
	}
}

// MustDefaultConfig returns the default config with metrics and recovery turned off.
func MustDefaultConfig() *Config {
	config := DefaultConfig()

	config.Metrics.Enabled = false
	config.Recovery.Enabled = false

	return config
}

// TCPRandomPort tries to find a random TCP Port. If it can't find one, it panics. Else, it returns the port and a function that releases the port.
// It is the responsibility of the caller to call the release function right before trying to listen on the given port.
func TCPRandomPort() (int, func()) {
	l, err := net.Listen("tcp", "")
	if err != nil {
		panic(err)
	}
	return l.Addr().(*net.TCPAddr).Port, func() {
		l.Close()
	}
}
