package activerule_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/indexsync/indexsync/internal/mocks"
	"github.com/indexsync/indexsync/pkg/indexer"
	"github.com/indexsync/indexsync/pkg/indexer/activerule"
	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/storage"
)

func TestKinds(t *testing.T) {
	f := activerule.NewFamily(nil)

	require.Equal(t, storage.FamilyActiveRules, f.Name())
	require.Equal(t, []string{activerule.IndexName}, f.Indices())
	require.Equal(t, map[string]indexer.Resolution{
		storage.KindActiveRule:  indexer.ResolveEntity,
		storage.KindRuleProfile: indexer.ResolveScope,
	}, f.Kinds())
}

func TestRead(t *testing.T) {
	ctx := context.Background()
	noop := func(storage.ActiveRuleRow) error { return nil }

	t.Run("by_active_rule", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockRuleStore(ctrl)
		store.EXPECT().ReadActiveRules(gomock.Any(), []string{"AR1"}, gomock.Any()).Return(nil)

		require.NoError(t, activerule.NewFamily(store).Read(ctx, storage.KindActiveRule, []string{"AR1"}, noop))
	})

	t.Run("by_profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockRuleStore(ctrl)
		store.EXPECT().ReadActiveRulesByProfile(gomock.Any(), []string{"QP1"}, gomock.Any()).Return(nil)

		require.NoError(t, activerule.NewFamily(store).Read(ctx, storage.KindRuleProfile, []string{"QP1"}, noop))
	})

	t.Run("no_ids_reads_nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockRuleStore(ctrl)

		require.NoError(t, activerule.NewFamily(store).Read(ctx, storage.KindActiveRule, nil, noop))
	})
}

func TestMapRow(t *testing.T) {
	row := storage.ActiveRuleRow{
		ActiveRule: storage.ActiveRule{UUID: "AR1", ProfileUUID: "QP1", RuleUUID: "R1", Severity: "MAJOR", Inheritance: "NONE"},
		RuleKey:    "go:S100",
		Language:   "go",
	}
	f := activerule.NewFamily(nil)

	require.Equal(t, "AR1", f.Subject(storage.KindActiveRule, row))
	require.Equal(t, "QP1", f.Subject(storage.KindRuleProfile, row))
	require.Equal(t, []search.Document{{
		Index:   activerule.IndexName,
		ID:      "AR1",
		Routing: "R1",
		Fields: map[string]any{
			activerule.FieldUUID:        "AR1",
			activerule.FieldRule:        "R1",
			activerule.FieldRuleKey:     "go:S100",
			activerule.FieldLanguage:    "go",
			activerule.FieldProfile:     "QP1",
			activerule.FieldSeverity:    "MAJOR",
			activerule.FieldInheritance: "NONE",
		},
	}}, f.MapRow(row))
}

func TestDeletions(t *testing.T) {
	f := activerule.NewFamily(nil)

	require.Equal(t,
		[]search.BulkRequest{search.DeleteRequest(activerule.IndexName, "AR1", "R1")},
		f.BuildDeletion(storage.NewQueueItem(storage.FamilyActiveRules, "AR1", storage.KindActiveRule, "R1")))

	require.Equal(t,
		[]indexer.DeletionQuery{{Index: activerule.IndexName, Query: search.Term(activerule.FieldProfile, "QP1")}},
		f.ResolveMissing(storage.NewQueueItem(storage.FamilyActiveRules, "QP1", storage.KindRuleProfile, "")))
}

func TestDefinition(t *testing.T) {
	def := activerule.Definition(3, 1)

	require.Equal(t, activerule.IndexName, def.Name)
	require.Equal(t, []string{storage.FamilyActiveRules}, def.Families)
	require.False(t, def.AccessControlled())
	require.Contains(t, def.Mapping, activerule.FieldProfile)
}
