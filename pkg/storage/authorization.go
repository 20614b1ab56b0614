package storage

// AuthorizationRow is one of the four disjoint row kinds read for a project when
// rebuilding its authorization document: UserGrant, GroupGrant, AnyoneGrant or NoGrant.
// The set is closed; consumers decode it with an AuthorizationRowVisitor so that adding
// a kind breaks every consumer at compile time.
type AuthorizationRow interface {
	Project() string
	Accept(AuthorizationRowVisitor)

	isAuthorizationRow()
}

// AuthorizationRowVisitor has exactly one method per AuthorizationRow kind.
type AuthorizationRowVisitor interface {
	VisitUserGrant(UserGrant)
	VisitGroupGrant(GroupGrant)
	VisitAnyoneGrant(AnyoneGrant)
	VisitNoGrant(NoGrant)
}

// UserGrant is an explicit browse permission given to a user.
type UserGrant struct {
	ProjectUUID string
	UserUUID    string
}

// GroupGrant is an explicit browse permission given to a group.
type GroupGrant struct {
	ProjectUUID string
	GroupUUID   string
}

// AnyoneGrant marks a project visible to every authenticated principal.
type AnyoneGrant struct {
	ProjectUUID string
}

// NoGrant is emitted once for every existing project so that a project without any
// permission still gets an authorization document.
type NoGrant struct {
	ProjectUUID string
}

func (r UserGrant) Project() string   { return r.ProjectUUID }
func (r GroupGrant) Project() string  { return r.ProjectUUID }
func (r AnyoneGrant) Project() string { return r.ProjectUUID }
func (r NoGrant) Project() string     { return r.ProjectUUID }

func (r UserGrant) Accept(v AuthorizationRowVisitor)   { v.VisitUserGrant(r) }
func (r GroupGrant) Accept(v AuthorizationRowVisitor)  { v.VisitGroupGrant(r) }
func (r AnyoneGrant) Accept(v AuthorizationRowVisitor) { v.VisitAnyoneGrant(r) }
func (r NoGrant) Accept(v AuthorizationRowVisitor)     { v.VisitNoGrant(r) }

func (UserGrant) isAuthorizationRow()   {}
func (GroupGrant) isAuthorizationRow()  {}
func (AnyoneGrant) isAuthorizationRow() {}
func (NoGrant) isAuthorizationRow()     {}
