package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/indexsync/indexsync/pkg/storage"
)

func readActiveRules(t *testing.T, ds storage.Datastore, uuids ...string) []storage.ActiveRuleRow {
	t.Helper()

	var rows []storage.ActiveRuleRow
	err := ds.ReadActiveRules(context.Background(), uuids, func(row storage.ActiveRuleRow) error {
		rows = append(rows, row)
		return nil
	})
	require.NoError(t, err)
	return rows
}

func ActiveRulesTest(t *testing.T, ds storage.Datastore) {
	ctx := context.Background()

	var items []storage.QueueItem
	track := func(got []storage.QueueItem, err error) []storage.QueueItem {
		t.Helper()
		require.NoError(t, err)
		items = append(items, got...)
		return got
	}
	t.Cleanup(func() {
		_ = ds.DeleteQueueItems(ctx, storage.QueueItemIDs(items)...)
	})

	rule := storage.Rule{UUID: newID(), Name: "No magic numbers", Language: "go", Severity: "MAJOR"}
	rule.Key = "go:" + rule.UUID
	require.NoError(t, ds.CreateRule(ctx, rule))
	require.ErrorIs(t, ds.CreateRule(ctx, rule), storage.ErrCollision)

	profile := storage.QualityProfile{UUID: newID(), Name: "Sonar way", Language: "go"}
	require.NoError(t, ds.CreateQualityProfile(ctx, profile))

	activeRule := storage.ActiveRule{
		UUID:        newID(),
		ProfileUUID: profile.UUID,
		RuleUUID:    rule.UUID,
		Severity:    "MAJOR",
		Inheritance: "NONE",
	}

	t.Run("activate_routes_by_rule", func(t *testing.T) {
		got := track(ds.ActivateRule(ctx, activeRule))
		require.Len(t, got, 1)
		require.Equal(t, storage.FamilyActiveRules, got[0].DocFamily)
		require.Equal(t, activeRule.UUID, got[0].DocID)
		require.Equal(t, storage.KindActiveRule, got[0].DocIDKind)
		require.Equal(t, rule.UUID, got[0].Routing)

		rows := readActiveRules(t, ds, activeRule.UUID)
		require.Equal(t, []storage.ActiveRuleRow{{ActiveRule: activeRule, RuleKey: rule.Key, Language: "go"}}, rows)
	})

	t.Run("activating_twice_collides", func(t *testing.T) {
		duplicate := activeRule
		duplicate.UUID = newID()
		_, err := ds.ActivateRule(ctx, duplicate)
		require.ErrorIs(t, err, storage.ErrCollision)
	})

	t.Run("update", func(t *testing.T) {
		got := track(ds.UpdateActiveRule(ctx, activeRule.UUID, "BLOCKER"))
		require.Equal(t, rule.UUID, got[0].Routing)

		rows := readActiveRules(t, ds, activeRule.UUID)
		require.Len(t, rows, 1)
		require.Equal(t, "BLOCKER", rows[0].Severity)

		_, err := ds.UpdateActiveRule(ctx, newID(), "MINOR")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("read_by_profile", func(t *testing.T) {
		var rows []storage.ActiveRuleRow
		err := ds.ReadActiveRulesByProfile(ctx, []string{profile.UUID, newID()}, func(row storage.ActiveRuleRow) error {
			rows = append(rows, row)
			return nil
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, activeRule.UUID, rows[0].UUID)
	})

	t.Run("deactivate", func(t *testing.T) {
		got := track(ds.DeactivateRule(ctx, activeRule.UUID))
		require.Equal(t, activeRule.UUID, got[0].DocID)
		require.Empty(t, readActiveRules(t, ds, activeRule.UUID))

		_, err := ds.DeactivateRule(ctx, activeRule.UUID)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete_profile_enqueues_one_scope_item", func(t *testing.T) {
		other := activeRule
		other.UUID = newID()
		track(ds.ActivateRule(ctx, other))

		got := track(ds.DeleteQualityProfile(ctx, profile.UUID))
		require.Len(t, got, 1)
		require.Equal(t, profile.UUID, got[0].DocID)
		require.Equal(t, storage.KindRuleProfile, got[0].DocIDKind)
		require.Empty(t, got[0].Routing)
		require.Empty(t, readActiveRules(t, ds, other.UUID))

		_, err := ds.DeleteQualityProfile(ctx, profile.UUID)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}
