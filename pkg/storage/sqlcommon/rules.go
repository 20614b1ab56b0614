package sqlcommon

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/indexsync/indexsync/pkg/storage"
)

func activeRuleQueueItem(activeRuleUUID, ruleUUID string) storage.QueueItem {
	return storage.NewQueueItem(storage.FamilyActiveRules, activeRuleUUID, storage.KindActiveRule, ruleUUID)
}

// CreateRule see [storage.RuleStore].CreateRule.
func (s *Datastore) CreateRule(ctx context.Context, rule storage.Rule) error {
	_, err := s.exec(func() (sql.Result, error) {
		return s.stbl.Insert("rules").
			Columns("uuid", "rule_key", "name", "language", "severity").
			Values(rule.UUID, rule.Key, rule.Name, rule.Language, rule.Severity).
			ExecContext(ctx)
	}, "rule "+rule.Key)
	return err
}

// CreateQualityProfile see [storage.RuleStore].CreateQualityProfile.
func (s *Datastore) CreateQualityProfile(ctx context.Context, profile storage.QualityProfile) error {
	_, err := s.exec(func() (sql.Result, error) {
		return s.stbl.Insert("rules_profiles").
			Columns("uuid", "name", "language").
			Values(profile.UUID, profile.Name, profile.Language).
			ExecContext(ctx)
	}, "quality profile "+profile.Name)
	return err
}

// DeleteQualityProfile see [storage.RuleStore].DeleteQualityProfile. A single scope
// item replaces one item per activation of the profile.
func (s *Datastore) DeleteQualityProfile(ctx context.Context, profileUUID string) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "DeleteQualityProfile")
	defer span.End()

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		n, err := s.exec(func() (sql.Result, error) {
			return s.stbl.Delete("rules_profiles").
				Where(sq.Eq{"uuid": profileUUID}).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, storage.NotFoundError("quality profile", profileUUID)
		}

		_, err = s.exec(func() (sql.Result, error) {
			return s.stbl.Delete("active_rules").
				Where(sq.Eq{"profile_uuid": profileUUID}).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}

		return []storage.QueueItem{
			storage.NewQueueItem(storage.FamilyActiveRules, profileUUID, storage.KindRuleProfile, ""),
		}, nil
	})
}

// ActivateRule see [storage.RuleStore].ActivateRule.
func (s *Datastore) ActivateRule(ctx context.Context, activeRule storage.ActiveRule) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "ActivateRule")
	defer span.End()

	if activeRule.UUID == "" {
		return nil, storage.InvalidWriteInputError("active rule uuid", activeRule.UUID)
	}

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		_, err := s.exec(func() (sql.Result, error) {
			return s.stbl.Insert("active_rules").
				Columns("uuid", "profile_uuid", "rule_uuid", "severity", "inheritance").
				Values(activeRule.UUID, activeRule.ProfileUUID, activeRule.RuleUUID, activeRule.Severity, activeRule.Inheritance).
				RunWith(txn).
				ExecContext(ctx)
		}, "active rule "+activeRule.UUID)
		if err != nil {
			return nil, err
		}
		return []storage.QueueItem{activeRuleQueueItem(activeRule.UUID, activeRule.RuleUUID)}, nil
	})
}

// activeRuleRuleUUID returns the rule activated by an active rule, which routes its document.
func (s *Datastore) activeRuleRuleUUID(ctx context.Context, txn *sql.Tx, activeRuleUUID string) (string, error) {
	var ruleUUID string
	err := s.stbl.Select("rule_uuid").
		From("active_rules").
		Where(sq.Eq{"uuid": activeRuleUUID}).
		RunWith(txn).
		QueryRowContext(ctx).
		Scan(&ruleUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.NotFoundError("active rule", activeRuleUUID)
		}
		return "", s.handleErr(err)
	}
	return ruleUUID, nil
}

// UpdateActiveRule see [storage.RuleStore].UpdateActiveRule.
func (s *Datastore) UpdateActiveRule(ctx context.Context, activeRuleUUID, severity string) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "UpdateActiveRule")
	defer span.End()

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		ruleUUID, err := s.activeRuleRuleUUID(ctx, txn, activeRuleUUID)
		if err != nil {
			return nil, err
		}
		_, err = s.exec(func() (sql.Result, error) {
			return s.stbl.Update("active_rules").
				Set("severity", severity).
				Where(sq.Eq{"uuid": activeRuleUUID}).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}
		return []storage.QueueItem{activeRuleQueueItem(activeRuleUUID, ruleUUID)}, nil
	})
}

// DeactivateRule see [storage.RuleStore].DeactivateRule.
func (s *Datastore) DeactivateRule(ctx context.Context, activeRuleUUID string) ([]storage.QueueItem, error) {
	ctx, span := startTrace(ctx, "DeactivateRule")
	defer span.End()

	return s.mutate(ctx, func(txn *sql.Tx) ([]storage.QueueItem, error) {
		ruleUUID, err := s.activeRuleRuleUUID(ctx, txn, activeRuleUUID)
		if err != nil {
			return nil, err
		}
		_, err = s.exec(func() (sql.Result, error) {
			return s.stbl.Delete("active_rules").
				Where(sq.Eq{"uuid": activeRuleUUID}).
				RunWith(txn).
				ExecContext(ctx)
		})
		if err != nil {
			return nil, err
		}
		return []storage.QueueItem{activeRuleQueueItem(activeRuleUUID, ruleUUID)}, nil
	})
}

func (s *Datastore) selectActiveRules() sq.SelectBuilder {
	return s.stbl.
		Select("ar.uuid", "ar.profile_uuid", "ar.rule_uuid", "ar.severity", "ar.inheritance", "r.rule_key", "r.language").
		From("active_rules ar").
		Join("rules r ON r.uuid = ar.rule_uuid")
}

func (s *Datastore) scanActiveRules(ctx context.Context, sb sq.SelectBuilder) ([]storage.ActiveRuleRow, error) {
	var result []storage.ActiveRuleRow
	err := s.queryRows(ctx, sb, func(rows *sql.Rows) error {
		var row storage.ActiveRuleRow
		err := rows.Scan(
			&row.UUID,
			&row.ProfileUUID,
			&row.RuleUUID,
			&row.Severity,
			&row.Inheritance,
			&row.RuleKey,
			&row.Language,
		)
		if err != nil {
			return err
		}
		result = append(result, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReadActiveRules see [storage.RuleStore].ReadActiveRules.
func (s *Datastore) ReadActiveRules(ctx context.Context, uuids []string, fn func(storage.ActiveRuleRow) error) error {
	ctx, span := startTrace(ctx, "ReadActiveRules")
	defer span.End()

	return readPartitioned(ctx, s, uuids, "active_rules", "uuid",
		func(ctx context.Context, part []string) ([]storage.ActiveRuleRow, error) {
			return s.scanActiveRules(ctx, s.selectActiveRules().Where(sq.Eq{"ar.uuid": part}).OrderBy("ar.uuid"))
		}, fn)
}

// ReadActiveRulesByProfile see [storage.RuleStore].ReadActiveRulesByProfile.
func (s *Datastore) ReadActiveRulesByProfile(ctx context.Context, profileUUIDs []string, fn func(storage.ActiveRuleRow) error) error {
	ctx, span := startTrace(ctx, "ReadActiveRulesByProfile")
	defer span.End()

	if len(profileUUIDs) == 0 {
		return nil
	}

	return ReadLargeInputs(ctx, profileUUIDs, s.maxParams,
		func(ctx context.Context, part []string) ([]storage.ActiveRuleRow, error) {
			return s.scanActiveRules(ctx, s.selectActiveRules().Where(sq.Eq{"ar.profile_uuid": part}).OrderBy("ar.uuid"))
		}, fn)
}
