// Package search defines the narrow interface the indexers use to write to and query
// a search backend, and the index definitions they write into.
//
//go:generate mockgen -source search.go -destination ./mocks/mock_search.go -package mocks Index
package search

import (
	"context"
	"errors"
)

// RelationAuth names the parent side of the join between an authorization document
// and the documents it protects.
const RelationAuth = "auth"

var (
	// ErrIndexNotFound if an operation addresses an index that was never created.
	ErrIndexNotFound = errors.New("index not found")

	// ErrDocumentRejected if the backend refused a single document.
	ErrDocumentRejected = errors.New("document rejected")
)

// Document is a search document built from relational state. It is never patched:
// a newer mapping of the same subject replaces it wholesale.
type Document struct {
	Index   string
	ID      string
	Routing string

	// Relation is the join relation of the document: RelationAuth for authorization
	// documents, the child relation of its index for protected documents, and empty
	// for documents outside of any join.
	Relation string
	// Parent is the id of the authorization document protecting this document.
	Parent string

	Fields map[string]any
}

// OpType is the kind of a bulk operation.
type OpType int

const (
	OpIndex OpType = iota
	OpDelete
)

func (o OpType) String() string {
	switch o {
	case OpIndex:
		return "index"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// BulkRequest is one operation of a bulk call. Document is set for OpIndex only.
type BulkRequest struct {
	Op       OpType
	Index    string
	ID       string
	Routing  string
	Document *Document
}

// IndexRequest returns the request upserting doc.
func IndexRequest(doc Document) BulkRequest {
	return BulkRequest{Op: OpIndex, Index: doc.Index, ID: doc.ID, Routing: doc.Routing, Document: &doc}
}

// DeleteRequest returns the request deleting a document by id. Deleting a missing
// document succeeds.
func DeleteRequest(index, id, routing string) BulkRequest {
	return BulkRequest{Op: OpDelete, Index: index, ID: id, Routing: routing}
}

// ItemResult is the outcome of the bulk request at the same position. Err is nil
// on success.
type ItemResult struct {
	Index string
	ID    string
	Err   error
}

// TermQuery matches documents whose Field equals Value. A nil *TermQuery matches
// every document.
type TermQuery struct {
	Field string
	Value string
}

// Term returns a query on field.
func Term(field, value string) *TermQuery {
	return &TermQuery{Field: field, Value: value}
}

// ParentFilter restricts protected documents by the fields of their authorization
// document. Backends evaluate Match in process or send Source as a query clause.
type ParentFilter interface {
	// MatchAll is true when the filter does not restrict anything.
	MatchAll() bool
	// Match reports whether a document whose parent has the given fields is visible.
	Match(parent map[string]any) bool
	// Source is the query clause applied to the parent documents.
	Source() map[string]any
}

// Hit is a document returned by Search.
type Hit struct {
	Index   string
	ID      string
	Routing string
	Fields  map[string]any
}

// Index is a search backend. Implementations must be safe for concurrent use.
type Index interface {
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Exists reports whether an index was created.
	Exists(ctx context.Context, index string) (bool, error)
	// CreateIndex creates the index of def.
	CreateIndex(ctx context.Context, def IndexDefinition) error
	// DeleteIndex drops an index with its documents. Dropping a missing index succeeds.
	DeleteIndex(ctx context.Context, index string) error

	// Metadata returns the value stored under key.
	Metadata(ctx context.Context, key string) (string, bool, error)
	// SetMetadata stores value under key.
	SetMetadata(ctx context.Context, key, value string) error

	// Bulk applies reqs and returns one result per request, in order. The error is
	// reserved for failures of the whole call, in which case no result is returned.
	// When refresh is set the writes are visible to searches once Bulk returns.
	Bulk(ctx context.Context, reqs []BulkRequest, refresh bool) ([]ItemResult, error)

	// DeleteByQuery deletes every document of index matched by q and returns how many
	// were deleted. The deletions are visible once it returns.
	DeleteByQuery(ctx context.Context, index string, q *TermQuery) (int64, error)

	// PrepareBulk readies indices for a bulk session. A large session may relax the
	// refresh interval and the replicas. The returned function restores them.
	PrepareBulk(ctx context.Context, indices []string, large bool) (restore func(context.Context) error, err error)

	// Get returns a document by id.
	Get(ctx context.Context, index, id, routing string) (Document, bool, error)

	// Search returns the documents of index matched by q. Authorization documents are
	// never returned. A non-nil filter restricts the hits to protected documents whose
	// parent it matches.
	Search(ctx context.Context, index string, q *TermQuery, filter ParentFilter) ([]Hit, error)

	// Count returns the number of documents of index matched by q, authorization
	// documents included.
	Count(ctx context.Context, index string, q *TermQuery) (int64, error)
}
