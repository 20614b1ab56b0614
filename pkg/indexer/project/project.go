// Package project indexes project-scoped documents. They are children of the
// authorization document of their project, which they are routed with.
package project

import (
	"context"
	"maps"

	"github.com/indexsync/indexsync/pkg/indexer"
	"github.com/indexsync/indexsync/pkg/indexer/authorization"
	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/storage"
)

// FieldProject holds the project of every document.
const FieldProject = "project"

// Source describes a project-scoped family.
type Source[R any] struct {
	Family   string
	Index    string
	Relation string

	// ReadProjects streams the rows of the given projects, or every row when
	// projectUUIDs is empty.
	ReadProjects func(ctx context.Context, projectUUIDs []string, fn func(R) error) error
	// EntityKind is the doc_id_type of items naming a single document. It is empty
	// when items only name projects.
	EntityKind   string
	ReadEntities func(ctx context.Context, ids []string, fn func(R) error) error

	Project func(R) string
	// DocID returns the id of the document of a row.
	DocID  func(R) string
	Fields func(R) map[string]any
}

// Family indexes one document per row of a Source.
type Family[R any] struct {
	source Source[R]
}

// NewFamily returns the family of source.
func NewFamily[R any](source Source[R]) *Family[R] {
	return &Family[R]{source: source}
}

// NewIndexer returns the resilient indexer of source.
func NewIndexer[R any](source Source[R], idx search.Index, queue storage.QueueStore, opts ...indexer.Option) *indexer.ResilientIndexer[R] {
	return indexer.New[R](NewFamily(source), idx, queue, opts...)
}

func (f *Family[R]) Name() string {
	return f.source.Family
}

func (f *Family[R]) Indices() []string {
	return []string{f.source.Index}
}

func (f *Family[R]) Kinds() map[string]indexer.Resolution {
	kinds := map[string]indexer.Resolution{storage.KindProject: indexer.ResolveScope}
	if f.source.EntityKind != "" {
		kinds[f.source.EntityKind] = indexer.ResolveEntity
	}
	return kinds
}

func (f *Family[R]) ReadAll(ctx context.Context, fn func(R) error) error {
	return f.source.ReadProjects(ctx, nil, fn)
}

func (f *Family[R]) Read(ctx context.Context, kind string, ids []string, fn func(R) error) error {
	if len(ids) == 0 {
		return nil
	}
	if kind == storage.KindProject {
		return f.source.ReadProjects(ctx, ids, fn)
	}
	return f.source.ReadEntities(ctx, ids, fn)
}

func (f *Family[R]) Subject(kind string, row R) string {
	if kind == storage.KindProject {
		return f.source.Project(row)
	}
	return f.source.DocID(row)
}

func (f *Family[R]) MapRow(row R) []search.Document {
	projectUUID := f.source.Project(row)

	fields := maps.Clone(f.source.Fields(row))
	if fields == nil {
		fields = map[string]any{}
	}
	fields[FieldProject] = projectUUID

	return []search.Document{{
		Index:    f.source.Index,
		ID:       f.source.DocID(row),
		Routing:  projectUUID,
		Relation: f.source.Relation,
		Parent:   authorization.DocID(projectUUID),
		Fields:   fields,
	}}
}

// ResolveMissing deletes the documents still indexed for a deleted project.
func (f *Family[R]) ResolveMissing(item storage.QueueItem) []indexer.DeletionQuery {
	return []indexer.DeletionQuery{{Index: f.source.Index, Query: search.Term(FieldProject, item.DocID)}}
}

func (f *Family[R]) BuildDeletion(item storage.QueueItem) []search.BulkRequest {
	return []search.BulkRequest{search.DeleteRequest(f.source.Index, item.DocID, item.Routing)}
}
