package adminsdk

import (
	"context"

	"github.com/aussiebroadwan/clinicadmin/pkg/menuperm"
	"github.com/aussiebroadwan/clinicadmin/pkg/menutree"
)

// EditorBackend serves a menuperm.Editor from the admin service.
type EditorBackend struct {
	Session *Session
}

var _ menuperm.Backend = EditorBackend{}

func (b EditorBackend) ListRoles(ctx context.Context) ([]menuperm.Role, error) {
	roles, err := b.Session.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]menuperm.Role, len(roles))
	for i, r := range roles {
		out[i] = menuperm.Role{ID: r.ID, Name: r.Name}
	}
	return out, nil
}

func (b EditorBackend) ListMenus(ctx context.Context) ([]menutree.Item, error) {
	menus, err := b.Session.ListMenus(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]menutree.Item, len(menus))
	for i, m := range menus {
		items[i] = m.Item()
	}
	return items, nil
}

func (b EditorBackend) ListAssignments(ctx context.Context) ([]menuperm.Assignment, error) {
	grants, err := b.Session.ListMenuRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]menuperm.Assignment, len(grants))
	for i, g := range grants {
		out[i] = menuperm.Assignment{RoleID: g.RoleID, MenuID: g.MenuID}
	}
	return out, nil
}

func (b EditorBackend) Grant(ctx context.Context, roleID, menuID int64) error {
	return b.Session.AssignMenu(ctx, roleID, menuID)
}

func (b EditorBackend) Revoke(ctx context.Context, roleID, menuID int64) error {
	return b.Session.RemoveMenu(ctx, roleID, menuID)
}
