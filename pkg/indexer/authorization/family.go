package authorization

import (
	"context"

	"github.com/indexsync/indexsync/pkg/indexer"
	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/storage"
)

// Family writes the authorization document of each project into every
// access-controlled index.
type Family struct {
	store   storage.ProjectStore
	indices []string
}

var _ indexer.Family[Document] = (*Family)(nil)

// NewFamily returns the authorization family of the access-controlled indices.
func NewFamily(store storage.ProjectStore, indices ...string) *Family {
	return &Family{store: store, indices: indices}
}

// NewIndexer returns the resilient indexer of the authorization family.
func NewIndexer(store storage.ProjectStore, idx search.Index, queue storage.QueueStore, indices []string, opts ...indexer.Option) *indexer.ResilientIndexer[Document] {
	return indexer.New[Document](NewFamily(store, indices...), idx, queue, opts...)
}

func (f *Family) Name() string {
	return storage.FamilyAuthorization
}

func (f *Family) Indices() []string {
	return f.indices
}

func (f *Family) Kinds() map[string]indexer.Resolution {
	return map[string]indexer.Resolution{
		"":                  indexer.ResolveEntity,
		storage.KindProject: indexer.ResolveEntity,
	}
}

func (f *Family) ReadAll(ctx context.Context, fn func(Document) error) error {
	return ReadDocuments(ctx, f.store, nil, fn)
}

func (f *Family) Read(ctx context.Context, _ string, ids []string, fn func(Document) error) error {
	return ReadDocuments(ctx, f.store, ids, fn)
}

func (f *Family) Subject(_ string, doc Document) string {
	return doc.ProjectID
}

func (f *Family) MapRow(doc Document) []search.Document {
	docs := make([]search.Document, 0, len(f.indices))
	for _, index := range f.indices {
		docs = append(docs, search.Document{
			Index:    index,
			ID:       DocID(doc.ProjectID),
			Routing:  doc.ProjectID,
			Relation: search.RelationAuth,
			Fields:   doc.Fields(),
		})
	}
	return docs
}

func (f *Family) ResolveMissing(storage.QueueItem) []indexer.DeletionQuery {
	return nil
}

func (f *Family) BuildDeletion(item storage.QueueItem) []search.BulkRequest {
	reqs := make([]search.BulkRequest, 0, len(f.indices))
	for _, index := range f.indices {
		reqs = append(reqs, search.DeleteRequest(index, DocID(item.DocID), item.DocID))
	}
	return reqs
}
