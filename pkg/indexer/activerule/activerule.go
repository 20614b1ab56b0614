// Package activerule indexes the activations of rules in quality profiles.
package activerule

import (
	"context"

	"github.com/indexsync/indexsync/pkg/indexer"
	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/storage"
)

const (
	IndexName = "rules"

	FieldUUID        = "activeRuleUuid"
	FieldRule        = "ruleUuid"
	FieldRuleKey     = "ruleKey"
	FieldLanguage    = "language"
	FieldProfile     = "ruleProfileUuid"
	FieldSeverity    = "severity"
	FieldInheritance = "inheritance"
)

// Definition returns the index definition of the active rules.
func Definition(shards, replicas int) search.IndexDefinition {
	keyword := map[string]any{"type": "keyword"}
	return search.IndexDefinition{
		Name:     IndexName,
		Families: []string{storage.FamilyActiveRules},
		Shards:   shards,
		Replicas: replicas,
		Mapping: map[string]any{
			FieldUUID:        keyword,
			FieldRule:        keyword,
			FieldRuleKey:     keyword,
			FieldLanguage:    keyword,
			FieldProfile:     keyword,
			FieldSeverity:    keyword,
			FieldInheritance: keyword,
		},
	}
}

// Family maps active rules to one document each, routed by rule. Items name either an
// active rule or a quality profile whose every activation is re-indexed.
type Family struct {
	store storage.RuleStore
}

var _ indexer.Family[storage.ActiveRuleRow] = (*Family)(nil)

func NewFamily(store storage.RuleStore) *Family {
	return &Family{store: store}
}

// NewIndexer returns the resilient indexer of the active rules.
func NewIndexer(store storage.RuleStore, idx search.Index, queue storage.QueueStore, opts ...indexer.Option) *indexer.ResilientIndexer[storage.ActiveRuleRow] {
	return indexer.New[storage.ActiveRuleRow](NewFamily(store), idx, queue, opts...)
}

func (f *Family) Name() string {
	return storage.FamilyActiveRules
}

func (f *Family) Indices() []string {
	return []string{IndexName}
}

func (f *Family) Kinds() map[string]indexer.Resolution {
	return map[string]indexer.Resolution{
		storage.KindActiveRule:  indexer.ResolveEntity,
		storage.KindRuleProfile: indexer.ResolveScope,
	}
}

func (f *Family) ReadAll(ctx context.Context, fn func(storage.ActiveRuleRow) error) error {
	return f.store.ReadActiveRules(ctx, nil, fn)
}

func (f *Family) Read(ctx context.Context, kind string, ids []string, fn func(storage.ActiveRuleRow) error) error {
	if kind == storage.KindRuleProfile {
		return f.store.ReadActiveRulesByProfile(ctx, ids, fn)
	}
	if len(ids) == 0 {
		return nil
	}
	return f.store.ReadActiveRules(ctx, ids, fn)
}

func (f *Family) Subject(kind string, row storage.ActiveRuleRow) string {
	if kind == storage.KindRuleProfile {
		return row.ProfileUUID
	}
	return row.UUID
}

func (f *Family) MapRow(row storage.ActiveRuleRow) []search.Document {
	return []search.Document{{
		Index:   IndexName,
		ID:      row.UUID,
		Routing: row.RuleUUID,
		Fields: map[string]any{
			FieldUUID:        row.UUID,
			FieldRule:        row.RuleUUID,
			FieldRuleKey:     row.RuleKey,
			FieldLanguage:    row.Language,
			FieldProfile:     row.ProfileUUID,
			FieldSeverity:    row.Severity,
			FieldInheritance: row.Inheritance,
		},
	}}
}

// ResolveMissing deletes the activations still indexed for a deleted profile.
func (f *Family) ResolveMissing(item storage.QueueItem) []indexer.DeletionQuery {
	return []indexer.DeletionQuery{{Index: IndexName, Query: search.Term(FieldProfile, item.DocID)}}
}

func (f *Family) BuildDeletion(item storage.QueueItem) []search.BulkRequest {
	return []search.BulkRequest{search.DeleteRequest(IndexName, item.DocID, item.Routing)}
}
