package run

import (
	"github.com/spf13/cobra"

	"github.com/indexsync/indexsync/cmd/util"
	"github.com/indexsync/indexsync/internal/config"
)

// addConfigFlags declares one flag per config key, defaulting to the default config.
func addConfigFlags(command *cobra.Command) {
	defaultConfig := config.DefaultConfig()
	flags := command.Flags()

	flags.String("datastore-engine", defaultConfig.Datastore.Engine, "the datastore engine that will be used for persistence ('sqlite', 'postgres' or 'mysql')")

	flags.String("datastore-uri", defaultConfig.Datastore.URI, "the connection uri to use to connect to the datastore")

	flags.String("datastore-username", "", "the connection username to use to connect to the datastore (overwrites any username provided in the connection uri)")

	flags.String("datastore-password", "", "the connection password to use to connect to the datastore (overwrites any password provided in the connection uri)")

	flags.Int("datastore-max-open-conns", defaultConfig.Datastore.MaxOpenConns, "the maximum number of open connections to the datastore")

	flags.Int("datastore-max-idle-conns", defaultConfig.Datastore.MaxIdleConns, "the maximum number of connections to the datastore in the idle connection pool")

	flags.Duration("datastore-conn-max-idle-time", defaultConfig.Datastore.ConnMaxIdleTime, "the maximum amount of time a connection to the datastore may be idle")

	flags.Duration("datastore-conn-max-lifetime", defaultConfig.Datastore.ConnMaxLifetime, "the maximum amount of time a connection to the datastore may be reused")

	flags.Int("datastore-max-parameters-per-query", defaultConfig.Datastore.MaxParametersPerQuery, "the number of identifiers bound by a single chunked read")

	flags.Bool("datastore-metrics-enabled", defaultConfig.Datastore.Metrics.Enabled, "enable/disable sql metrics")

	flags.String("search-engine", defaultConfig.Search.Engine, "the search backend documents are indexed into ('memory' or 'elasticsearch')")

	flags.StringSlice("search-addresses", defaultConfig.Search.Addresses, "the addresses of the elasticsearch nodes")

	flags.String("search-username", "", "the username of the elasticsearch basic authentication")

	flags.String("search-password", "", "the password of the elasticsearch basic authentication")

	flags.String("search-api-key", "", "the elasticsearch api key, used instead of the basic authentication")

	flags.Duration("search-timeout", defaultConfig.Search.Timeout, "the timeout of every request to the search backend")

	flags.Int("search-max-retries", defaultConfig.Search.MaxRetries, "the number of retries of connection errors and 5xx responses")

	flags.Int("search-shards", defaultConfig.Search.Shards, "the number of primary shards of the created indices")

	flags.Int("search-replicas", defaultConfig.Search.Replicas, "the number of replicas of the created indices")

	flags.Int("indexing-regular-batch-size", defaultConfig.Indexing.RegularBatchSize, "the number of requests per bulk call when draining the change queue")

	flags.Int("indexing-large-batch-size", defaultConfig.Indexing.LargeBatchSize, "the number of requests per bulk call of full indexations")

	flags.Bool("recovery-enabled", defaultConfig.Recovery.Enabled, "enable/disable the periodic recovery of the change queue")

	flags.Duration("recovery-initial-delay", defaultConfig.Recovery.InitialDelay, "the delay before the first recovery run")

	flags.Duration("recovery-delay", defaultConfig.Recovery.Delay, "the delay between the end of a recovery run and the start of the next one")

	flags.Duration("recovery-min-age", defaultConfig.Recovery.MinAge, "the minimum age of the change queue items a recovery run picks up")

	flags.Int("recovery-loop-limit", defaultConfig.Recovery.LoopLimit, "the maximum number of items indexed by one recovery loop")

	flags.Float64("recovery-circuit-breaker-ratio", defaultConfig.Recovery.CircuitBreakerRatio, "a recovery run stops when the success ratio of a loop is at or below this ratio")

	flags.Int64("principal-cache-limit", defaultConfig.PrincipalCache.Limit, "the maximum number of users whose groups are cached by search filters")

	flags.Duration("principal-cache-ttl", defaultConfig.PrincipalCache.TTL, "how long the groups of a user are cached by search filters")

	flags.String("log-format", defaultConfig.Log.Format, "the log format to output logs in ('text' or 'json')")

	flags.String("log-level", defaultConfig.Log.Level, "the log level to use ('none', 'debug', 'info', 'warn' or 'error')")

	flags.Bool("trace-enabled", defaultConfig.Trace.Enabled, "enable tracing")

	flags.String("trace-otlp-endpoint", defaultConfig.Trace.OTLP.Endpoint, "the endpoint of the trace collector")

	flags.Bool("trace-otlp-tls-enabled", defaultConfig.Trace.OTLP.TLS.Enabled, "use TLS connection for trace collector")

	flags.Float64("trace-sample-ratio", defaultConfig.Trace.SampleRatio, "the fraction of traces to sample. 1 means all, 0 means none")

	flags.String("trace-service-name", defaultConfig.Trace.ServiceName, "the service name included in sampled traces")

	flags.Bool("metrics-enabled", defaultConfig.Metrics.Enabled, "enable/disable the prometheus metrics and health server")

	flags.String("metrics-addr", defaultConfig.Metrics.Addr, "the host:port address to serve the prometheus metrics and health server on")

	command.MarkFlagsMutuallyExclusive("search-api-key", "search-username")
}

// bindConfigFlags binds the cobra cmd flags to the equivalent config value being managed
// by viper. This bridges the config between cobra flags and viper flags. Flags are
// bound when the command runs since several commands declare the same keys.
func bindConfigFlags(command *cobra.Command, _ []string) {
	flags := command.Flags()

	util.MustBindPFlag("datastore.engine", flags.Lookup("datastore-engine"))
	util.MustBindEnv("datastore.engine", "INDEXSYNC_DATASTORE_ENGINE")

	util.MustBindPFlag("datastore.uri", flags.Lookup("datastore-uri"))
	util.MustBindEnv("datastore.uri", "INDEXSYNC_DATASTORE_URI")

	util.MustBindPFlag("datastore.username", flags.Lookup("datastore-username"))
	util.MustBindEnv("datastore.username", "INDEXSYNC_DATASTORE_USERNAME")

	util.MustBindPFlag("datastore.password", flags.Lookup("datastore-password"))
	util.MustBindEnv("datastore.password", "INDEXSYNC_DATASTORE_PASSWORD")

	util.MustBindPFlag("datastore.maxOpenConns", flags.Lookup("datastore-max-open-conns"))
	util.MustBindEnv("datastore.maxOpenConns", "INDEXSYNC_DATASTORE_MAX_OPEN_CONNS", "INDEXSYNC_DATASTORE_MAXOPENCONNS")

	util.MustBindPFlag("datastore.maxIdleConns", flags.Lookup("datastore-max-idle-conns"))
	util.MustBindEnv("datastore.maxIdleConns", "INDEXSYNC_DATASTORE_MAX_IDLE_CONNS", "INDEXSYNC_DATASTORE_MAXIDLECONNS")

	util.MustBindPFlag("datastore.connMaxIdleTime", flags.Lookup("datastore-conn-max-idle-time"))
	util.MustBindEnv("datastore.connMaxIdleTime", "INDEXSYNC_DATASTORE_CONN_MAX_IDLE_TIME", "INDEXSYNC_DATASTORE_CONNMAXIDLETIME")

	util.MustBindPFlag("datastore.connMaxLifetime", flags.Lookup("datastore-conn-max-lifetime"))
	util.MustBindEnv("datastore.connMaxLifetime", "INDEXSYNC_DATASTORE_CONN_MAX_LIFETIME", "INDEXSYNC_DATASTORE_CONNMAXLIFETIME")

	util.MustBindPFlag("datastore.maxParametersPerQuery", flags.Lookup("datastore-max-parameters-per-query"))
	util.MustBindEnv("datastore.maxParametersPerQuery", "INDEXSYNC_DATASTORE_MAX_PARAMETERS_PER_QUERY", "INDEXSYNC_DATASTORE_MAXPARAMETERSPERQUERY")

	util.MustBindPFlag("datastore.metrics.enabled", flags.Lookup("datastore-metrics-enabled"))
	util.MustBindEnv("datastore.metrics.enabled", "INDEXSYNC_DATASTORE_METRICS_ENABLED")

	util.MustBindPFlag("search.engine", flags.Lookup("search-engine"))
	util.MustBindEnv("search.engine", "INDEXSYNC_SEARCH_ENGINE")

	util.MustBindPFlag("search.addresses", flags.Lookup("search-addresses"))
	util.MustBindEnv("search.addresses", "INDEXSYNC_SEARCH_ADDRESSES")

	util.MustBindPFlag("search.username", flags.Lookup("search-username"))
	util.MustBindEnv("search.username", "INDEXSYNC_SEARCH_USERNAME")

	util.MustBindPFlag("search.password", flags.Lookup("search-password"))
	util.MustBindEnv("search.password", "INDEXSYNC_SEARCH_PASSWORD")

	util.MustBindPFlag("search.apiKey", flags.Lookup("search-api-key"))
	util.MustBindEnv("search.apiKey", "INDEXSYNC_SEARCH_API_KEY", "INDEXSYNC_SEARCH_APIKEY")

	util.MustBindPFlag("search.timeout", flags.Lookup("search-timeout"))
	util.MustBindEnv("search.timeout", "INDEXSYNC_SEARCH_TIMEOUT")

	util.MustBindPFlag("search.maxRetries", flags.Lookup("search-max-retries"))
	util.MustBindEnv("search.maxRetries", "INDEXSYNC_SEARCH_MAX_RETRIES", "INDEXSYNC_SEARCH_MAXRETRIES")

	util.MustBindPFlag("search.shards", flags.Lookup("search-shards"))
	util.MustBindEnv("search.shards", "INDEXSYNC_SEARCH_SHARDS")

	util.MustBindPFlag("search.replicas", flags.Lookup("search-replicas"))
	util.MustBindEnv("search.replicas", "INDEXSYNC_SEARCH_REPLICAS")

	util.MustBindPFlag("indexing.regularBatchSize", flags.Lookup("indexing-regular-batch-size"))
	util.MustBindEnv("indexing.regularBatchSize", "INDEXSYNC_INDEXING_REGULAR_BATCH_SIZE", "INDEXSYNC_INDEXING_REGULARBATCHSIZE")

	util.MustBindPFlag("indexing.largeBatchSize", flags.Lookup("indexing-large-batch-size"))
	util.MustBindEnv("indexing.largeBatchSize", "INDEXSYNC_INDEXING_LARGE_BATCH_SIZE", "INDEXSYNC_INDEXING_LARGEBATCHSIZE")

	util.MustBindPFlag("recovery.enabled", flags.Lookup("recovery-enabled"))
	util.MustBindEnv("recovery.enabled", "INDEXSYNC_RECOVERY_ENABLED")

	util.MustBindPFlag("recovery.initialDelay", flags.Lookup("recovery-initial-delay"))
	util.MustBindEnv("recovery.initialDelay", "INDEXSYNC_RECOVERY_INITIAL_DELAY", "INDEXSYNC_RECOVERY_INITIALDELAY")

	util.MustBindPFlag("recovery.delay", flags.Lookup("recovery-delay"))
	util.MustBindEnv("recovery.delay", "INDEXSYNC_RECOVERY_DELAY")

	util.MustBindPFlag("recovery.minAge", flags.Lookup("recovery-min-age"))
	util.MustBindEnv("recovery.minAge", "INDEXSYNC_RECOVERY_MIN_AGE", "INDEXSYNC_RECOVERY_MINAGE")

	util.MustBindPFlag("recovery.loopLimit", flags.Lookup("recovery-loop-limit"))
	util.MustBindEnv("recovery.loopLimit", "INDEXSYNC_RECOVERY_LOOP_LIMIT", "INDEXSYNC_RECOVERY_LOOPLIMIT")

	util.MustBindPFlag("recovery.circuitBreakerRatio", flags.Lookup("recovery-circuit-breaker-ratio"))
	util.MustBindEnv("recovery.circuitBreakerRatio", "INDEXSYNC_RECOVERY_CIRCUIT_BREAKER_RATIO", "INDEXSYNC_RECOVERY_CIRCUITBREAKERRATIO")

	util.MustBindPFlag("principalCache.limit", flags.Lookup("principal-cache-limit"))
	util.MustBindEnv("principalCache.limit", "INDEXSYNC_PRINCIPAL_CACHE_LIMIT", "INDEXSYNC_PRINCIPALCACHE_LIMIT")

	util.MustBindPFlag("principalCache.ttl", flags.Lookup("principal-cache-ttl"))
	util.MustBindEnv("principalCache.ttl", "INDEXSYNC_PRINCIPAL_CACHE_TTL", "INDEXSYNC_PRINCIPALCACHE_TTL")

	util.MustBindPFlag("log.format", flags.Lookup("log-format"))
	util.MustBindEnv("log.format", "INDEXSYNC_LOG_FORMAT")

	util.MustBindPFlag("log.level", flags.Lookup("log-level"))
	util.MustBindEnv("log.level", "INDEXSYNC_LOG_LEVEL")

	util.MustBindPFlag("trace.enabled", flags.Lookup("trace-enabled"))
	util.MustBindEnv("trace.enabled", "INDEXSYNC_TRACE_ENABLED")

	util.MustBindPFlag("trace.otlp.endpoint", flags.Lookup("trace-otlp-endpoint"))
	util.MustBindEnv("trace.otlp.endpoint", "INDEXSYNC_TRACE_OTLP_ENDPOINT")

	util.MustBindPFlag("trace.otlp.tls.enabled", flags.Lookup("trace-otlp-tls-enabled"))
	util.MustBindEnv("trace.otlp.tls.enabled", "INDEXSYNC_TRACE_OTLP_TLS_ENABLED")

	util.MustBindPFlag("trace.sampleRatio", flags.Lookup("trace-sample-ratio"))
	util.MustBindEnv("trace.sampleRatio", "INDEXSYNC_TRACE_SAMPLE_RATIO", "INDEXSYNC_TRACE_SAMPLERATIO")

	util.MustBindPFlag("trace.serviceName", flags.Lookup("trace-service-name"))
	util.MustBindEnv("trace.serviceName", "INDEXSYNC_TRACE_SERVICE_NAME", "INDEXSYNC_TRACE_SERVICENAME")

	util.MustBindPFlag("metrics.enabled", flags.Lookup("metrics-enabled"))
	util.MustBindEnv("metrics.enabled", "INDEXSYNC_METRICS_ENABLED")

	util.MustBindPFlag("metrics.addr", flags.Lookup("metrics-addr"))
	util.MustBindEnv("metrics.addr", "INDEXSYNC_METRICS_ADDR")
}
