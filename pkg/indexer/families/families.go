// Package families assembles the indices and the indexers of every document family.
package families

import (
	"github.com/indexsync/indexsync/pkg/indexer"
	"github.com/indexsync/indexsync/pkg/indexer/activerule"
	"github.com/indexsync/indexsync/pkg/indexer/authorization"
	"github.com/indexsync/indexsync/pkg/indexer/project"
	"github.com/indexsync/indexsync/pkg/logger"
	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/storage"
)

// Definitions returns the definition of every index.
func Definitions(shards, replicas int) []search.IndexDefinition {
	return []search.IndexDefinition{
		activerule.Definition(shards, replicas),
		project.ComponentsDefinition(shards, replicas),
		project.MeasuresDefinition(shards, replicas),
	}
}

// AccessControlledIndices returns the names of the indices holding authorization
// documents.
func AccessControlledIndices(defs []search.IndexDefinition) []string {
	var names []string
	for _, def := range defs {
		if def.AccessControlled() {
			names = append(names, def.Name)
		}
	}
	return names
}

// NewIndexers registers the indexer of every family.
func NewIndexers(ds storage.Datastore, idx search.Index, defs []search.IndexDefinition, log logger.Logger, opts ...indexer.Option) (*indexer.Indexers, error) {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	opts = append([]indexer.Option{indexer.WithLogger(log)}, opts...)

	return indexer.NewIndexers(idx, ds, log,
		authorization.NewIndexer(ds, idx, ds, AccessControlledIndices(defs), opts...),
		activerule.NewIndexer(ds, idx, ds, opts...),
		project.NewIndexer(project.Components(ds), idx, ds, opts...),
		project.NewIndexer(project.Measures(ds), idx, ds, opts...),
	)
}
