package project

import (
	"maps"

	"github.com/indexsync/indexsync/pkg/indexer/authorization"
	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/storage"
)

const (
	ComponentsIndex = "components"
	MeasuresIndex   = "projectmeasures"

	componentRelation = "component"
	measuresRelation  = "projectmeasure"
)

// Components indexes one document per component.
func Components(store storage.ComponentStore) Source[storage.Component] {
	return Source[storage.Component]{
		Family:       storage.FamilyComponents,
		Index:        ComponentsIndex,
		Relation:     componentRelation,
		ReadProjects: store.ReadComponents,
		EntityKind:   storage.KindComponent,
		ReadEntities: store.ReadComponentsByUUID,
		Project:      func(c storage.Component) string { return c.ProjectUUID },
		DocID:        func(c storage.Component) string { return c.UUID },
		Fields: func(c storage.Component) map[string]any {
			return map[string]any{
				"uuid":      c.UUID,
				"key":       c.Key,
				"name":      c.Name,
				"qualifier": c.Qualifier,
				"path":      c.Path,
			}
		},
	}
}

// Measures indexes one document per project, holding its measures.
func Measures(store storage.ComponentStore) Source[storage.ProjectMeasures] {
	return Source[storage.ProjectMeasures]{
		Family:       storage.FamilyProjectMeasures,
		Index:        MeasuresIndex,
		Relation:     measuresRelation,
		ReadProjects: store.ReadProjectMeasures,
		Project:      func(m storage.ProjectMeasures) string { return m.ProjectUUID },
		DocID:        func(m storage.ProjectMeasures) string { return m.ProjectUUID },
		Fields: func(m storage.ProjectMeasures) map[string]any {
			return map[string]any{
				"key":      m.Key,
				"name":     m.Name,
				"measures": m.Measures,
			}
		},
	}
}

// ComponentsDefinition returns the definition of the components index.
func ComponentsDefinition(shards, replicas int) search.IndexDefinition {
	keyword := map[string]any{"type": "keyword"}
	return search.IndexDefinition{
		Name:          ComponentsIndex,
		Families:      []string{storage.FamilyComponents, storage.FamilyAuthorization},
		ChildRelation: componentRelation,
		Shards:        shards,
		Replicas:      replicas,
		Mapping: withAuthorizationFields(map[string]any{
			FieldProject: keyword,
			"uuid":       keyword,
			"key":        keyword,
			"name":       map[string]any{"type": "text"},
			"qualifier":  keyword,
			"path":       keyword,
		}),
	}
}

// MeasuresDefinition returns the definition of the project measures index.
func MeasuresDefinition(shards, replicas int) search.IndexDefinition {
	keyword := map[string]any{"type": "keyword"}
	return search.IndexDefinition{
		Name:          MeasuresIndex,
		Families:      []string{storage.FamilyProjectMeasures, storage.FamilyAuthorization},
		ChildRelation: measuresRelation,
		Shards:        shards,
		Replicas:      replicas,
		Mapping: withAuthorizationFields(map[string]any{
			FieldProject: keyword,
			"key":        keyword,
			"name":       map[string]any{"type": "text"},
			"measures":   map[string]any{"type": "object", "dynamic": true},
		}),
	}
}

func withAuthorizationFields(mapping map[string]any) map[string]any {
	maps.Copy(mapping, authorization.Mapping())
	return mapping
}
