package indexer

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/storage"
)

// ItemOutcome is the outcome of one request of a bulk session. Origins are the ids of
// the queue items the request was derived from.
type ItemOutcome struct {
	Index   string
	ID      string
	Origins []string
	Err     error
}

// Listener observes a bulk session.
type Listener interface {
	// OnResults is called after every flush.
	OnResults(outcomes []ItemOutcome)
	// OnFinish is called once when the session stops. Its error is returned by Stop.
	OnFinish(ctx context.Context, result IndexingResult) error
}

// RecoveryListener dequeues the items whose every request succeeded. Items are removed
// when the session finishes since a single item may be spread over several flushes.
// Items with a failed request stay in the queue for the next drain.
type RecoveryListener struct {
	queue  storage.QueueStore
	family string
	logger logger.Logger

	succeeded map[string]struct{}
	failed    map[string]struct{}
}

var _ Listener = (*RecoveryListener)(nil)

func NewRecoveryListener(queue storage.QueueStore, family string, log logger.Logger) *RecoveryListener {
	return &RecoveryListener{
		queue:     queue,
		family:    family,
		logger:    log,
		succeeded: map[string]struct{}{},
		failed:    map[string]struct{}{},
	}
}

func (l *RecoveryListener) OnResults(outcomes []ItemOutcome) {
	for _, outcome := range outcomes {
		for _, origin := range outcome.Origins {
			if outcome.Err != nil {
				l.failed[origin] = struct{}{}
				continue
			}
			l.succeeded[origin] = struct{}{}
		}
	}
}

// Dequeued returns the ids of the items removed by OnFinish, sorted.
func (l *RecoveryListener) Dequeued() []string {
	ids := make([]string, 0, len(l.succeeded))
	for id := range l.succeeded {
		if _, ok := l.failed[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (l *RecoveryListener) OnFinish(ctx context.Context, result IndexingResult) error {
	ids := l.Dequeued()
	if len(ids) > 0 {
		if err := l.queue.DeleteQueueItems(ctx, ids...); err != nil {
			return fmt.Errorf("dequeue %d items of %s: %w", len(ids), l.family, err)
		}
		queueItemsRemovedCounter.WithLabelValues(l.family, reasonIndexed).Add(float64(len(ids)))
	}

	if len(l.failed) > 0 {
		l.logger.WarnWithContext(ctx, "queue items left for recovery",
			zap.String("family", l.family),
			zap.Int("items", len(l.failed)),
			zap.Int("failures", result.Failures),
			zap.Int("requests", result.Total))
	}
	return nil
}

// FailOnErrorListener fails the session when any request failed. Full passes use it
// since they are not backed by queue items.
type FailOnErrorListener struct {
	family string
	errors map[string]error
}

var _ Listener = (*FailOnErrorListener)(nil)

func NewFailOnErrorListener(family string) *FailOnErrorListener {
	return &FailOnErrorListener{family: family, errors: map[string]error{}}
}

func (l *FailOnErrorListener) OnResults(outcomes []ItemOutcome) {
	for _, outcome := range outcomes {
		if outcome.Err != nil && len(l.errors) < 10 {
			l.errors[outcome.Index+"/"+outcome.ID] = outcome.Err
		}
	}
}

func (l *FailOnErrorListener) OnFinish(_ context.Context, result IndexingResult) error {
	if result.IsSuccess() {
		return nil
	}
	first := slices.Sorted(maps.Keys(l.errors))
	return fmt.Errorf("%s: %d errors among %d requests, first on %v: %w",
		l.family, result.Failures, result.Total, first, ErrUnrecoverable)
}
