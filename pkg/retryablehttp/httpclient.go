// Package retryablehttp builds HTTP transports that retry transient failures with an
// exponential backoff.
package retryablehttp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/indexsync/indexsync/pkg/logger"
)

const backOffMaxDuration = 3 * time.Second

// leveledLogger adapts a logger.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger logger.Logger
}

var _ retryablehttp.LeveledLogger = (*leveledLogger)(nil)

func fields(keysAndValues []interface{}) []zap.Field {
	result := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		result = append(result, zap.Any(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1]))
	}
	return result
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fields(keysAndValues)...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues)...)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues)...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fields(keysAndValues)...)
}

// NewClient returns a client retrying connection errors and 5xx responses up to
// maxRetries times.
func NewClient(maxRetries int, base http.RoundTripper, log logger.Logger) *retryablehttp.Client {
	if log == nil {
		log = logger.NewNoopLogger()
	}

	client := retryablehttp.NewClient()
	client.RetryMax = maxRetries
	client.RetryWaitMin = 50 * time.Millisecond
	client.RetryWaitMax = backOffMaxDuration
	client.Logger = &leveledLogger{logger: log}
	if base != nil {
		client.HTTPClient.Transport = base
	}
	// Hand the last response back to the caller instead of an error, so that
	// error bodies stay readable.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return client
}

// NewTransport returns a RoundTripper retrying through NewClient. Every request,
// retries included, is traced as one client span.
func NewTransport(maxRetries int, base http.RoundTripper, log logger.Logger) http.RoundTripper {
	return otelhttp.NewTransport(&retryablehttp.RoundTripper{Client: NewClient(maxRetries, base, log)})
}
