// Package authorization propagates project permissions to the search indices. Every
// access-controlled index holds one authorization document per project, the parent of
// the documents of that project. Searches filter on the parent with a Filter.
package authorization

import (
	"context"
	"slices"

	"github.com/indexsync/indexsync/pkg/storage"
)

const (
	FieldProject       = "authProjectUuid"
	FieldAllowAnyone   = "allowAnyone"
	FieldAllowedUsers  = "allowedUserIds"
	FieldAllowedGroups = "allowedGroupIds"

	docIDPrefix = "auth_"
)

// DocID returns the id of the authorization document of a project.
func DocID(projectUUID string) string {
	return docIDPrefix + projectUUID
}

// Document lists the principals allowed to browse a project.
type Document struct {
	ProjectID       string
	AllowedUserIDs  []string
	AllowedGroupIDs []string
	AllowAnyone     bool
}

// Fields renders the stored fields of the document.
func (d Document) Fields() map[string]any {
	return map[string]any{
		FieldProject:       d.ProjectID,
		FieldAllowAnyone:   d.AllowAnyone,
		FieldAllowedUsers:  nonNil(d.AllowedUserIDs),
		FieldAllowedGroups: nonNil(d.AllowedGroupIDs),
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// builder merges the rows of each project into a Document. A project is complete when
// its NoGrant row is visited.
type builder struct {
	docs map[string]*Document
	emit func(Document) error
	err  error
}

var _ storage.AuthorizationRowVisitor = (*builder)(nil)

func (b *builder) doc(projectUUID string) *Document {
	d, ok := b.docs[projectUUID]
	if !ok {
		d = &Document{ProjectID: projectUUID}
		b.docs[projectUUID] = d
	}
	return d
}

func (b *builder) VisitUserGrant(r storage.UserGrant) {
	d := b.doc(r.ProjectUUID)
	d.AllowedUserIDs = append(d.AllowedUserIDs, r.UserUUID)
}

func (b *builder) VisitGroupGrant(r storage.GroupGrant) {
	d := b.doc(r.ProjectUUID)
	d.AllowedGroupIDs = append(d.AllowedGroupIDs, r.GroupUUID)
}

func (b *builder) VisitAnyoneGrant(r storage.AnyoneGrant) {
	b.doc(r.ProjectUUID).AllowAnyone = true
}

func (b *builder) VisitNoGrant(r storage.NoGrant) {
	d := b.doc(r.ProjectUUID)
	delete(b.docs, r.ProjectUUID)

	slices.Sort(d.AllowedUserIDs)
	d.AllowedUserIDs = slices.Compact(d.AllowedUserIDs)
	slices.Sort(d.AllowedGroupIDs)
	d.AllowedGroupIDs = slices.Compact(d.AllowedGroupIDs)

	b.err = b.emit(*d)
}

// ReadDocuments streams the authorization document of every existing project among
// projectUUIDs, or of every project when projectUUIDs is empty.
func ReadDocuments(ctx context.Context, store storage.ProjectStore, projectUUIDs []string, fn func(Document) error) error {
	b := &builder{docs: map[string]*Document{}, emit: fn}
	return store.ReadAuthorizations(ctx, projectUUIDs, func(row storage.AuthorizationRow) error {
		row.Accept(b)
		return b.err
	})
}

// Mapping returns the field mapping of the authorization documents.
func Mapping() map[string]any {
	keyword := map[string]any{"type": "keyword"}
	return map[string]any{
		FieldProject:       keyword,
		FieldAllowAnyone:   map[string]any{"type": "boolean"},
		FieldAllowedUsers:  keyword,
		FieldAllowedGroups: keyword,
	}
}
