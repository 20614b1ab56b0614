package search

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/indexsync/indexsync/pkg/logger"
)

const (
	initializedKeyPrefix = "initialized."
	hashKeyPrefix        = "indexHash."
)

// IndexDefinition describes an index and the document families writing into it.
type IndexDefinition struct {
	Name     string
	Families []string

	// ChildRelation is set for indices whose documents are protected by authorization
	// documents. It names the child side of the join.
	ChildRelation string

	Shards   int
	Replicas int

	// Mapping holds the field properties of the index.
	Mapping map[string]any
}

// AccessControlled reports whether documents of the index are protected by
// authorization documents.
func (d IndexDefinition) AccessControlled() bool {
	return d.ChildRelation != ""
}

// JoinField returns the name of the join field of the index.
func (d IndexDefinition) JoinField() string {
	return JoinField(d.Name)
}

// JoinField returns the name of the join field of index.
func JoinField(index string) string {
	return "join_" + index
}

// DefinitionHash fingerprints everything that requires rebuilding the index when
// it changes. Replicas are excluded as they can be updated in place.
func (d IndexDefinition) DefinitionHash() (string, error) {
	families := slices.Clone(d.Families)
	slices.Sort(families)

	// encoding/json sorts map keys, which keeps the hash stable.
	mapping, err := json.Marshal(d.Mapping)
	if err != nil {
		return "", fmt.Errorf("marshal mapping of %s: %w", d.Name, err)
	}

	h := xxhash.New()
	_, _ = h.WriteString(d.Name)
	for _, family := range families {
		_, _ = h.WriteString("\x00" + family)
	}
	_, _ = h.WriteString("\x00" + d.ChildRelation)
	_, _ = h.WriteString("\x00" + strconv.Itoa(d.Shards))
	_, _ = h.Write(mapping)

	return strconv.FormatUint(h.Sum64(), 16), nil
}

// Initialized reports whether a full indexing pass of family completed since its
// index was last created.
func Initialized(ctx context.Context, idx Index, family string) (bool, error) {
	value, ok, err := idx.Metadata(ctx, initializedKeyPrefix+family)
	if err != nil {
		return false, err
	}
	return ok && value == "true", nil
}

// SetInitialized records the outcome of a full indexing pass of family.
func SetInitialized(ctx context.Context, idx Index, family string, initialized bool) error {
	return idx.SetMetadata(ctx, initializedKeyPrefix+family, strconv.FormatBool(initialized))
}

// EnsureIndices creates the missing indices of defs and recreates those whose
// definition changed. The families of every created index are marked uninitialized.
// It returns the uninitialized families, in the order of defs.
func EnsureIndices(ctx context.Context, idx Index, log logger.Logger, defs ...IndexDefinition) ([]string, error) {
	var uninitialized []string

	for _, def := range defs {
		hash, err := def.DefinitionHash()
		if err != nil {
			return nil, err
		}

		exists, err := idx.Exists(ctx, def.Name)
		if err != nil {
			return nil, fmt.Errorf("check index %s: %w", def.Name, err)
		}

		stored, _, err := idx.Metadata(ctx, hashKeyPrefix+def.Name)
		if err != nil {
			return nil, fmt.Errorf("read definition hash of %s: %w", def.Name, err)
		}

		if exists && stored != hash {
			log.Info("index definition changed, recreating",
				zap.String("index", def.Name),
				zap.String("stored_hash", stored),
				zap.String("hash", hash))
			if err := idx.DeleteIndex(ctx, def.Name); err != nil {
				return nil, fmt.Errorf("delete index %s: %w", def.Name, err)
			}
			exists = false
		}

		if !exists {
			for _, family := range def.Families {
				if err := SetInitialized(ctx, idx, family, false); err != nil {
					return nil, err
				}
			}
			if err := idx.CreateIndex(ctx, def); err != nil {
				return nil, fmt.Errorf("create index %s: %w", def.Name, err)
			}
			if err := idx.SetMetadata(ctx, hashKeyPrefix+def.Name, hash); err != nil {
				return nil, err
			}
			log.Info("index created", zap.String("index", def.Name))
		}

		for _, family := range def.Families {
			initialized, err := Initialized(ctx, idx, family)
			if err != nil {
				return nil, err
			}
			if !initialized && !slices.Contains(uninitialized, family) {
				uninitialized = append(uninitialized, family)
			}
		}
	}

	return uninitialized, nil
}
