// Package storage contains the relational storage interfaces and the change queue
// model shared by every datastore engine.
//
//go:generate mockgen -source storage.go -destination ../../internal/mocks/mock_storage.go -package mocks Datastore
package storage

import (
	"context"
	"time"
)

const (
	// DefaultMaxParametersPerQuery bounds the number of bind parameters used by a
	// single chunked IN query. Oracle caps expression lists at 1000, which is the
	// lowest limit of the supported backends.
	DefaultMaxParametersPerQuery = 1000

	// RoleBrowse is the project permission that grants visibility in the search indices.
	RoleBrowse = "user"
)

// Document families persisted in the es_queue.doc_type column.
const (
	FamilyAuthorization   = "auth"
	FamilyActiveRules     = "rules/activeRule"
	FamilyComponents      = "components/component"
	FamilyProjectMeasures = "projectmeasures/projectmeasure"
)

// Identifier kinds persisted in the es_queue.doc_id_type column.
const (
	KindActiveRule  = "activeRuleUuid"
	KindRuleProfile = "ruleProfileUuid"
	KindProject     = "projectUuid"
	KindComponent   = "componentUuid"
)

type Project struct {
	UUID    string
	Key     string
	Name    string
	Private bool
}

type User struct {
	UUID   string
	Login  string
	Active bool
}

type Group struct {
	UUID string
	Name string
}

type Rule struct {
	UUID     string
	Key      string
	Name     string
	Language string
	Severity string
}

type QualityProfile struct {
	UUID     string
	Name     string
	Language string
}

type ActiveRule struct {
	UUID        string
	ProfileUUID string
	RuleUUID    string
	Severity    string
	Inheritance string
}

// ActiveRuleRow is an ActiveRule joined with the rule it activates.
type ActiveRuleRow struct {
	ActiveRule
	RuleKey  string
	Language string
}

type Component struct {
	UUID        string
	ProjectUUID string
	Key         string
	Name        string
	Qualifier   string
	Path        string
}

// ProjectMeasures holds every measure recorded for a project.
type ProjectMeasures struct {
	ProjectUUID string
	Key         string
	Name        string
	Measures    map[string]float64
}

// QueueStore is the durable change queue. Items are written by the business
// mutations of the other stores in the same transaction as the mutation itself.
type QueueStore interface {
	// InsertQueueItems enqueues items outside of any business mutation, committing immediately.
	InsertQueueItems(ctx context.Context, items ...QueueItem) error

	// SelectQueueItems returns at most limit items created strictly before createdBefore,
	// oldest first.
	SelectQueueItems(ctx context.Context, createdBefore time.Time, limit int) ([]QueueItem, error)

	// DeleteQueueItems removes the items with the given ids in its own committed transaction.
	// Unknown ids are ignored.
	DeleteQueueItems(ctx context.Context, ids ...string) error

	// CountQueueItems returns the number of pending items.
	CountQueueItems(ctx context.Context) (int, error)
}

// ProjectStore manages projects, their permissions and their principals.
type ProjectStore interface {
	CreateProject(ctx context.Context, project Project) ([]QueueItem, error)
	UpdateProjectVisibility(ctx context.Context, projectUUID string, private bool) ([]QueueItem, error)
	// DeleteProject removes a project with its roles, components and measures.
	DeleteProject(ctx context.Context, projectUUID string) ([]QueueItem, error)

	CreateUser(ctx context.Context, user User) error
	CreateGroup(ctx context.Context, group Group) error
	AddGroupMember(ctx context.Context, groupUUID, userUUID string) error

	AddUserPermission(ctx context.Context, projectUUID, userUUID, role string) ([]QueueItem, error)
	RemoveUserPermission(ctx context.Context, projectUUID, userUUID, role string) ([]QueueItem, error)
	// AddGroupPermission grants role to a group. An empty groupUUID grants the
	// role to anyone.
	AddGroupPermission(ctx context.Context, projectUUID, groupUUID, role string) ([]QueueItem, error)
	RemoveGroupPermission(ctx context.Context, projectUUID, groupUUID, role string) ([]QueueItem, error)

	// ReadAuthorizations streams the authorization rows of the given projects, or of
	// every project when projectUUIDs is empty. The NoGrant row of a project is
	// streamed after every other row of that project.
	ReadAuthorizations(ctx context.Context, projectUUIDs []string, fn func(AuthorizationRow) error) error

	// ReadUserGroups returns the sorted uuids of the groups the user belongs to.
	ReadUserGroups(ctx context.Context, userUUID string) ([]string, error)
}

// RuleStore manages rules, quality profiles and rule activations.
type RuleStore interface {
	CreateRule(ctx context.Context, rule Rule) error
	CreateQualityProfile(ctx context.Context, profile QualityProfile) error
	DeleteQualityProfile(ctx context.Context, profileUUID string) ([]QueueItem, error)

	ActivateRule(ctx context.Context, activeRule ActiveRule) ([]QueueItem, error)
	UpdateActiveRule(ctx context.Context, activeRuleUUID, severity string) ([]QueueItem, error)
	DeactivateRule(ctx context.Context, activeRuleUUID string) ([]QueueItem, error)

	// ReadActiveRules streams the given activations, or every activation when
	// uuids is empty.
	ReadActiveRules(ctx context.Context, uuids []string, fn func(ActiveRuleRow) error) error
	// ReadActiveRulesByProfile streams the activations of the given quality profiles.
	ReadActiveRulesByProfile(ctx context.Context, profileUUIDs []string, fn func(ActiveRuleRow) error) error
}

// ComponentStore manages project components and project measures.
type ComponentStore interface {
	UpsertComponent(ctx context.Context, component Component) ([]QueueItem, error)
	DeleteComponent(ctx context.Context, componentUUID string) ([]QueueItem, error)
	SetMeasure(ctx context.Context, projectUUID, metric string, value float64) ([]QueueItem, error)

	// ReadComponents streams the components of the given projects, or every component
	// when projectUUIDs is empty.
	ReadComponents(ctx context.Context, projectUUIDs []string, fn func(Component) error) error
	ReadComponentsByUUID(ctx context.Context, componentUUIDs []string, fn func(Component) error) error

	// ReadProjectMeasures streams one row per existing project, or per every project
	// when projectUUIDs is empty.
	ReadProjectMeasures(ctx context.Context, projectUUIDs []string, fn func(ProjectMeasures) error) error
}

// Datastore is the authoritative relational store.
type Datastore interface {
	QueueStore
	ProjectStore
	RuleStore
	ComponentStore

	// IsReady reports whether the datastore is ready to accept traffic.
	IsReady(ctx context.Context) (ReadinessStatus, error)

	// Close closes the datastore and cleans up any residual resources.
	Close()
}

// ReadinessStatus represents the readiness status of the datastore.
type ReadinessStatus struct {
	// Message is a human-friendly status message for the current datastore status.
	Message string

	IsReady bool
}
