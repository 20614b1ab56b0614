// Package recovery periodically drains the change queue. Items stay queued when their
// drain fails after commit, or when the process stops before draining them; the sweep
// picks them up once they are older than a minimum age.
package recovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/indexsync/indexsync/internal/build"
	"github.com/indexsync/indexsync/pkg/indexer"
	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/storage"
	"github.com/indexsync/indexsync/pkg/telemetry"
)

var tracer = otel.Tracer("indexsync/pkg/indexer/recovery")

const (
	DefaultInitialDelay        = 5 * time.Minute
	DefaultDelay               = 5 * time.Minute
	DefaultMinAge              = 5 * time.Minute
	DefaultLoopLimit           = 10000
	DefaultCircuitBreakerRatio = 0.7

	outcomeDrained       = "drained"
	outcomeCircuitBroken = "circuit_broken"
	outcomeError         = "error"
)

var recoveryLoopsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: build.ProjectName,
	Name:      "recovery_loops_total",
	Help:      "The total number of recovery runs, by outcome.",
}, []string{"outcome"})

// Dispatcher indexes queue items. It is implemented by *indexer.Indexers.
type Dispatcher interface {
	Index(ctx context.Context, items []storage.QueueItem) (indexer.IndexingResult, error)
}

var _ Dispatcher = (*indexer.Indexers)(nil)

// Config tunes the sweep.
type Config struct {
	InitialDelay time.Duration
	Delay        time.Duration
	// MinAge leaves recent items to the drain that follows their mutation.
	MinAge time.Duration
	// LoopLimit is the number of items selected by each loop of a run.
	LoopLimit int
	// CircuitBreakerRatio stops a run when the success ratio of a loop is at or below it.
	CircuitBreakerRatio float64
}

// DefaultConfig returns the default sweep configuration.
func DefaultConfig() Config {
	return Config{
		InitialDelay:        DefaultInitialDelay,
		Delay:               DefaultDelay,
		MinAge:              DefaultMinAge,
		LoopLimit:           DefaultLoopLimit,
		CircuitBreakerRatio: DefaultCircuitBreakerRatio,
	}
}

type Option func(*Indexer)

func WithConfig(cfg Config) Option {
	return func(r *Indexer) {
		r.cfg = cfg
	}
}

func WithLogger(l logger.Logger) Option {
	return func(r *Indexer) {
		r.logger = l
	}
}

// WithClock sets the source of the current time used to compute the age of items.
func WithClock(now func() time.Time) Option {
	return func(r *Indexer) {
		r.now = now
	}
}

// Indexer is the recovery sweep.
type Indexer struct {
	queue      storage.QueueStore
	dispatcher Dispatcher
	cfg        Config
	logger     logger.Logger
	now        func() time.Time

	mu      sync.Mutex
	running bool
	done    chan struct{}
	wg      sync.WaitGroup
}

func New(queue storage.QueueStore, dispatcher Dispatcher, opts ...Option) *Indexer {
	r := &Indexer{
		queue:      queue,
		dispatcher: dispatcher,
		cfg:        DefaultConfig(),
		logger:     logger.NewNoopLogger(),
		now:        time.Now,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cfg.LoopLimit <= 0 {
		r.cfg.LoopLimit = DefaultLoopLimit
	}
	return r
}

// Start runs the sweep in the background until ctx is done or Close is called.
// The first run happens after the initial delay. Calling Start twice is a no-op.
func (r *Indexer) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}
	r.running = true

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.loop(ctx)
	}()
}

func (r *Indexer) loop(ctx context.Context) {
	timer := time.NewTimer(r.cfg.InitialDelay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.done:
			return
		case <-timer.C:
			// errors are logged and counted by Recover; the next run retries
			_, _ = r.Recover(ctx)
			timer.Reset(r.cfg.Delay)
		}
	}
}

// Close stops the background sweep and waits for the current run to finish.
func (r *Indexer) Close() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.done)
	r.mu.Unlock()

	r.wg.Wait()
}

// Recover drains the items older than the minimum age, loop after loop, until the
// queue holds no such item or a loop trips the circuit breaker.
func (r *Indexer) Recover(ctx context.Context) (indexer.IndexingResult, error) {
	ctx, span := tracer.Start(ctx, "recovery.Recover")
	defer span.End()

	createdBefore := r.now().Add(-r.cfg.MinAge)
	var total indexer.IndexingResult

	for {
		items, err := r.queue.SelectQueueItems(ctx, createdBefore, r.cfg.LoopLimit)
		if err != nil {
			recoveryLoopsCounter.WithLabelValues(outcomeError).Inc()
			r.logger.ErrorWithContext(ctx, "recovery failed", zap.Error(err))
			telemetry.TraceError(span, err)
			return total, fmt.Errorf("select queue items: %w", err)
		}
		if len(items) == 0 {
			break
		}

		result, err := r.dispatcher.Index(ctx, items)
		total.Add(result)
		if err != nil {
			recoveryLoopsCounter.WithLabelValues(outcomeError).Inc()
			r.logger.ErrorWithContext(ctx, "recovery failed", zap.Error(err))
			telemetry.TraceError(span, err)
			return total, err
		}

		if result.Total > 0 && result.SuccessRatio() <= r.cfg.CircuitBreakerRatio {
			recoveryLoopsCounter.WithLabelValues(outcomeCircuitBroken).Inc()
			r.logger.ErrorWithContext(ctx, "too many recovery failures, waiting for next run",
				zap.Int("failures", result.Failures),
				zap.Int("total", result.Total))
			span.SetAttributes(attribute.Bool("circuit_broken", true))
			return total, nil
		}
		if len(items) < r.cfg.LoopLimit {
			break
		}
	}

	span.SetAttributes(attribute.Int("total", total.Total), attribute.Int("failures", total.Failures))
	recoveryLoopsCounter.WithLabelValues(outcomeDrained).Inc()
	if total.Total > 0 {
		r.logger.InfoWithContext(ctx, "recovery drained queue items",
			zap.Int("successes", total.Successes),
			zap.Int("failures", total.Failures))
	}
	return total, nil
}
