package authorization

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Yiling-J/theine-go"

	"github.com/indexsync/indexsync/pkg/search"
	"github.com/indexsync/indexsync/pkg/storage"
)

// Principal is the requester of a search.
type Principal struct {
	UserID     string
	GroupIDs   []string
	SuperAdmin bool
}

// Filter restricts the documents of access-controlled indices to the projects a
// principal may browse. A document is visible when its project allows anyone, or
// allows the user, or allows one of the groups of the user.
type Filter struct {
	principal Principal
}

var _ search.ParentFilter = (*Filter)(nil)

func NewFilter(p Principal) *Filter {
	return &Filter{principal: p}
}

// MatchAll is true for super-admins.
func (f *Filter) MatchAll() bool {
	return f.principal.SuperAdmin
}

func (f *Filter) Match(parent map[string]any) bool {
	if f.MatchAll() {
		return true
	}
	if anyone, _ := parent[FieldAllowAnyone].(bool); anyone {
		return true
	}
	if f.principal.UserID != "" && slices.Contains(stringSlice(parent[FieldAllowedUsers]), f.principal.UserID) {
		return true
	}
	groups := stringSlice(parent[FieldAllowedGroups])
	for _, group := range f.principal.GroupIDs {
		if slices.Contains(groups, group) {
			return true
		}
	}
	return false
}

// Source returns the query selecting the authorization documents that match.
func (f *Filter) Source() map[string]any {
	should := []any{
		map[string]any{"term": map[string]any{FieldAllowAnyone: true}},
	}
	if f.principal.UserID != "" {
		should = append(should, map[string]any{"term": map[string]any{FieldAllowedUsers: f.principal.UserID}})
	}
	if len(f.principal.GroupIDs) > 0 {
		should = append(should, map[string]any{"terms": map[string]any{FieldAllowedGroups: f.principal.GroupIDs}})
	}
	return map[string]any{
		"bool": map[string]any{
			"should":               should,
			"minimum_should_match": 1,
		},
	}
}

// stringSlice reads a list of ids stored in memory or decoded from JSON.
func stringSlice(v any) []string {
	switch ids := v.(type) {
	case []string:
		return ids
	case []any:
		result := make([]string, 0, len(ids))
		for _, id := range ids {
			if s, ok := id.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}

// GroupReader reads the groups of a user.
type GroupReader interface {
	ReadUserGroups(ctx context.Context, userUUID string) ([]string, error)
}

var _ GroupReader = (storage.ProjectStore)(nil)

// GroupMemberWriter adds users to groups.
type GroupMemberWriter interface {
	AddGroupMember(ctx context.Context, groupUUID, userUUID string) error
}

var _ GroupMemberWriter = (storage.ProjectStore)(nil)

// PrincipalResolver builds principals, caching the groups of each user for ttl.
type PrincipalResolver struct {
	groups GroupReader
	cache  *theine.Cache[string, []string]
	ttl    time.Duration
}

// NewPrincipalResolver returns a resolver caching the groups of at most limit users.
// Memberships added through AddGroupMember apply to the next Resolve. Memberships
// written to the store by other means apply once the cached entry expires after ttl.
func NewPrincipalResolver(groups GroupReader, limit int64, ttl time.Duration) (*PrincipalResolver, error) {
	cache, err := theine.NewBuilder[string, []string](limit).Build()
	if err != nil {
		return nil, fmt.Errorf("build principal cache: %w", err)
	}
	return &PrincipalResolver{groups: groups, cache: cache, ttl: ttl}, nil
}

// Resolve returns the principal of a user. Super-admins skip the group lookup.
func (r *PrincipalResolver) Resolve(ctx context.Context, userUUID string, superAdmin bool) (Principal, error) {
	p := Principal{UserID: userUUID, SuperAdmin: superAdmin}
	if superAdmin || userUUID == "" {
		return p, nil
	}

	if groups, ok := r.cache.Get(userUUID); ok {
		p.GroupIDs = groups
		return p, nil
	}

	groups, err := r.groups.ReadUserGroups(ctx, userUUID)
	if err != nil {
		return Principal{}, fmt.Errorf("read groups of %s: %w", userUUID, err)
	}
	r.cache.SetWithTTL(userUUID, groups, 1, r.ttl)

	p.GroupIDs = groups
	return p, nil
}

// Invalidate drops the cached groups of a user.
func (r *PrincipalResolver) Invalidate(userUUID string) {
	r.cache.Delete(userUUID)
}

// AddGroupMember adds a user to a group and drops the cached groups of the user.
func (r *PrincipalResolver) AddGroupMember(ctx context.Context, store GroupMemberWriter, groupUUID, userUUID string) error {
	if err := store.AddGroupMember(ctx, groupUUID, userUUID); err != nil {
		return err
	}
	r.Invalidate(userUUID)
	return nil
}

func (r *PrincipalResolver) Close() {
	r.cache.Close()
}
