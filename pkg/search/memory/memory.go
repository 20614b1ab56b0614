// Package memory provides an in-process search.Index.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"

	"github.com/indexsync/indexsync/pkg/search"
)

var tracer = otel.Tracer("indexsync/pkg/search/memory")

type index struct {
	def  search.IndexDefinition
	docs map[string]search.Document
}

// Index is a search.Index held in memory. Bulk sessions are recorded so that tests
// can assert how the indexers prepared them.
type Index struct {
	mu       sync.RWMutex
	indices  map[string]*index
	metadata map[string]string
	sessions []Session
}

// Session records a PrepareBulk call.
type Session struct {
	Indices  []string
	Large    bool
	Restored bool
}

var _ search.Index = (*Index)(nil)

// New returns an empty in-memory index.
func New() *Index {
	return &Index{
		indices:  map[string]*index{},
		metadata: map[string]string{},
	}
}

func (m *Index) Ping(context.Context) error {
	return nil
}

func (m *Index) Exists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.indices[name]
	return ok, nil
}

func (m *Index) CreateIndex(_ context.Context, def search.IndexDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.indices[def.Name]; ok {
		return fmt.Errorf("index %s already exists", def.Name)
	}
	m.indices[def.Name] = &index{def: def, docs: map[string]search.Document{}}
	return nil
}

func (m *Index) DeleteIndex(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.indices, name)
	return nil
}

func (m *Index) Metadata(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.metadata[key]
	return value, ok, nil
}

func (m *Index) SetMetadata(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.metadata[key] = value
	return nil
}

func (m *Index) Bulk(ctx context.Context, reqs []search.BulkRequest, _ bool) ([]search.ItemResult, error) {
	_, span := tracer.Start(ctx, "memory.Bulk")
	defer span.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]search.ItemResult, 0, len(reqs))
	for _, req := range reqs {
		result := search.ItemResult{Index: req.Index, ID: req.ID}

		idx, ok := m.indices[req.Index]
		switch {
		case !ok:
			result.Err = fmt.Errorf("%s: %w", req.Index, search.ErrIndexNotFound)
		case req.Op == search.OpIndex && req.Document == nil:
			result.Err = fmt.Errorf("%s/%s: missing document: %w", req.Index, req.ID, search.ErrDocumentRejected)
		case req.Op == search.OpIndex:
			doc := *req.Document
			doc.Fields = maps.Clone(doc.Fields)
			idx.docs[req.ID] = doc
		case req.Op == search.OpDelete:
			delete(idx.docs, req.ID)
		default:
			result.Err = fmt.Errorf("unsupported operation %s: %w", req.Op, search.ErrDocumentRejected)
		}

		results = append(results, result)
	}
	return results, nil
}

func matches(doc search.Document, q *search.TermQuery) bool {
	if q == nil {
		return true
	}
	value, ok := doc.Fields[q.Field]
	if !ok {
		return false
	}
	switch v := value.(type) {
	case string:
		return v == q.Value
	case []string:
		return slices.Contains(v, q.Value)
	default:
		return fmt.Sprint(v) == q.Value
	}
}

func (m *Index) DeleteByQuery(ctx context.Context, name string, q *search.TermQuery) (int64, error) {
	_, span := tracer.Start(ctx, "memory.DeleteByQuery")
	defer span.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.indices[name]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, search.ErrIndexNotFound)
	}

	var deleted int64
	for id, doc := range idx.docs {
		if matches(doc, q) {
			delete(idx.docs, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *Index) PrepareBulk(_ context.Context, indices []string, large bool) (func(context.Context) error, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range indices {
		if _, ok := m.indices[name]; !ok {
			return nil, fmt.Errorf("%s: %w", name, search.ErrIndexNotFound)
		}
	}

	m.sessions = append(m.sessions, Session{Indices: slices.Clone(indices), Large: large})
	pos := len(m.sessions) - 1

	return func(context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		m.sessions[pos].Restored = true
		return nil
	}, nil
}

// Sessions returns the bulk sessions prepared so far.
func (m *Index) Sessions() []Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.sessions)
}

func (m *Index) Get(_ context.Context, name, id, _ string) (search.Document, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.indices[name]
	if !ok {
		return search.Document{}, false, fmt.Errorf("%s: %w", name, search.ErrIndexNotFound)
	}
	doc, ok := idx.docs[id]
	if ok {
		doc.Fields = maps.Clone(doc.Fields)
	}
	return doc, ok, nil
}

func (m *Index) Search(ctx context.Context, name string, q *search.TermQuery, filter search.ParentFilter) ([]search.Hit, error) {
	_, span := tracer.Start(ctx, "memory.Search")
	defer span.End()

	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.indices[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, search.ErrIndexNotFound)
	}

	hits := []search.Hit{}
	for _, id := range slices.Sorted(maps.Keys(idx.docs)) {
		doc := idx.docs[id]
		if doc.Relation == search.RelationAuth || !matches(doc, q) {
			continue
		}
		if filter != nil && !filter.MatchAll() {
			parent, ok := idx.docs[doc.Parent]
			// a document without authorization document is visible to nobody
			if doc.Parent == "" || !ok || !filter.Match(parent.Fields) {
				continue
			}
		}
		hits = append(hits, search.Hit{
			Index:   name,
			ID:      doc.ID,
			Routing: doc.Routing,
			Fields:  maps.Clone(doc.Fields),
		})
	}
	return hits, nil
}

func (m *Index) Count(_ context.Context, name string, q *search.TermQuery) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.indices[name]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, search.ErrIndexNotFound)
	}

	var count int64
	for _, doc := range idx.docs {
		if matches(doc, q) {
			count++
		}
	}
	return count, nil
}
