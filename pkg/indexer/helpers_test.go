package indexer

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/search/memory"
	"github.com/indexsync/indexsync/pkg/storage"
)

const (
	testFamily     = "notes/note"
	testIndex      = "notes"
	kindNote       = "noteUuid"
	kindNotebook   = "notebookUuid"
	fieldNotebook  = "notebook"
	testReadFailed = "read failed"
)

// fakeQueue is an in-memory storage.QueueStore.
type fakeQueue struct {
	mu    sync.Mutex
	items map[string]storage.QueueItem
	err   error
}

var _ storage.QueueStore = (*fakeQueue)(nil)

func newFakeQueue(items ...storage.QueueItem) *fakeQueue {
	q := &fakeQueue{items: map[string]storage.QueueItem{}}
	_ = q.InsertQueueItems(context.Background(), items...)
	return q
}

func (q *fakeQueue) InsertQueueItems(_ context.Context, items ...storage.QueueItem) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, item := range items {
		q.items[item.ID] = item
	}
	return nil
}

func (q *fakeQueue) SelectQueueItems(_ context.Context, createdBefore time.Time, limit int) ([]storage.QueueItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var result []storage.QueueItem
	for _, id := range slices.Sorted(maps.Keys(q.items)) {
		if len(result) == limit {
			break
		}
		if q.items[id].CreatedAt.Before(createdBefore) {
			result = append(result, q.items[id])
		}
	}
	return result, nil
}

func (q *fakeQueue) DeleteQueueItems(_ context.Context, ids ...string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	for _, id := range ids {
		delete(q.items, id)
	}
	return nil
}

func (q *fakeQueue) CountQueueItems(context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items), nil
}

func (q *fakeQueue) IDs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Sorted(maps.Keys(q.items))
}

type note struct {
	UUID     string
	Notebook string
	Text     string
}

// noteFamily indexes notes. Items name a note or a whole notebook.
type noteFamily struct {
	mu      sync.Mutex
	notes   map[string]note
	readErr error
}

var _ Family[note] = (*noteFamily)(nil)

func newNoteFamily(notes ...note) *noteFamily {
	f := &noteFamily{notes: map[string]note{}}
	for _, n := range notes {
		f.notes[n.UUID] = n
	}
	return f
}

func (f *noteFamily) set(n note) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes[n.UUID] = n
}

func (f *noteFamily) remove(uuid string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.notes, uuid)
}

func (f *noteFamily) Name() string { return testFamily }

func (f *noteFamily) Indices() []string { return []string{testIndex} }

func (f *noteFamily) Kinds() map[string]Resolution {
	return map[string]Resolution{kindNote: ResolveEntity, kindNotebook: ResolveScope}
}

func (f *noteFamily) rows(match func(note) bool, fn func(note) error) error {
	f.mu.Lock()
	if f.readErr != nil {
		f.mu.Unlock()
		return f.readErr
	}
	var rows []note
	for _, uuid := range slices.Sorted(maps.Keys(f.notes)) {
		if match(f.notes[uuid]) {
			rows = append(rows, f.notes[uuid])
		}
	}
	f.mu.Unlock()

	for _, row := range rows {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

func (f *noteFamily) ReadAll(_ context.Context, fn func(note) error) error {
	return f.rows(func(note) bool { return true }, fn)
}

func (f *noteFamily) Read(_ context.Context, kind string, ids []string, fn func(note) error) error {
	return f.rows(func(n note) bool {
		if kind == kindNotebook {
			return slices.Contains(ids, n.Notebook)
		}
		return slices.Contains(ids, n.UUID)
	}, fn)
}

func (f *noteFamily) Subject(kind string, row note) string {
	if kind == kindNotebook {
		return row.Notebook
	}
	return row.UUID
}

func (f *noteFamily) MapRow(row note) []search.Document {
	return []search.Document{{
		Index:   testIndex,
		ID:      row.UUID,
		Routing: row.Notebook,
		Fields:  map[string]any{"text": row.Text, fieldNotebook: row.Notebook},
	}}
}

func (f *noteFamily) ResolveMissing(item storage.QueueItem) []DeletionQuery {
	return []DeletionQuery{{Index: testIndex, Query: search.Term(fieldNotebook, item.DocID)}}
}

func (f *noteFamily) BuildDeletion(item storage.QueueItem) []search.BulkRequest {
	return []search.BulkRequest{search.DeleteRequest(testIndex, item.DocID, item.Routing)}
}

// failingIndex rejects the writes of the listed document ids.
type failingIndex struct {
	*memory.Index

	mu       sync.Mutex
	failing  map[string]bool
	bulkErr  error
	bulkRuns int
}

func newFailingIndex(idx *memory.Index, ids ...string) *failingIndex {
	f := &failingIndex{Index: idx, failing: map[string]bool{}}
	for _, id := range ids {
		f.failing[id] = true
	}
	return f
}

func (f *failingIndex) heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = map[string]bool{}
	f.bulkErr = nil
}

func (f *failingIndex) Bulk(ctx context.Context, reqs []search.BulkRequest, refresh bool) ([]search.ItemResult, error) {
	f.mu.Lock()
	f.bulkRuns++
	bulkErr := f.bulkErr
	failing := maps.Clone(f.failing)
	f.mu.Unlock()

	if bulkErr != nil {
		return nil, bulkErr
	}

	var accepted []search.BulkRequest
	for _, req := range reqs {
		if !failing[req.ID] {
			accepted = append(accepted, req)
		}
	}
	written, err := f.Index.Bulk(ctx, accepted, refresh)
	if err != nil {
		return nil, err
	}

	results := make([]search.ItemResult, 0, len(reqs))
	for _, req := range reqs {
		if failing[req.ID] {
			results = append(results, search.ItemResult{Index: req.Index, ID: req.ID, Err: errors.New("es_rejected_execution_exception")})
			continue
		}
		results = append(results, written[0])
		written = written[1:]
	}
	return results, nil
}

func newNotesIndex() *memory.Index {
	idx := memory.New()
	_ = idx.CreateIndex(context.Background(), search.IndexDefinition{Name: testIndex, Families: []string{testFamily}})
	return idx
}

func noteItem(uuid, notebook string) storage.QueueItem {
	return storage.NewQueueItem(testFamily, uuid, kindNote, notebook)
}

func notebookItem(notebook string) storage.QueueItem {
	return storage.NewQueueItem(testFamily, notebook, kindNotebook, "")
}

func indexedIDs(t *testing.T, idx search.Index) []string {
	t.Helper()

	hits, err := idx.Search(context.Background(), testIndex, nil, nil)
	require.NoError(t, err)
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ID)
	}
	return ids
}
