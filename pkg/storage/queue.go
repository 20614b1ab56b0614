package storage

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// MaxDocIDLength matches the width of the es_queue.doc_id column.
const MaxDocIDLength = 4000

// QueueItem is a pending index operation. Its effect is idempotent: the subject is
// re-read from the datastore when the item is processed, so applying an item twice
// converges to the same index state.
type QueueItem struct {
	ID        string
	DocFamily string
	DocID     string
	DocIDKind string
	Routing   string
	CreatedAt time.Time
}

// NewQueueItem returns an item with a fresh ULID created now.
func NewQueueItem(family, docID, kind, routing string) QueueItem {
	now := time.Now().UTC()
	return QueueItem{
		ID:        ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		DocFamily: family,
		DocID:     docID,
		DocIDKind: kind,
		Routing:   routing,
		CreatedAt: now.Truncate(time.Millisecond),
	}
}

// Validate reports malformed identifiers. An invalid item can never be processed.
func (i QueueItem) Validate() error {
	if strings.TrimSpace(i.DocID) == "" {
		return InvalidWriteInputError("doc_id", i.DocID)
	}
	if len(i.DocID) > MaxDocIDLength {
		return InvalidWriteInputError("doc_id", i.DocID[:32]+"...")
	}
	return nil
}

// QueueItemIDs returns the ids of items in order.
func QueueItemIDs(items []QueueItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
