package admin_test

import (
	"testing"

	"github.com/aussiebroadwan/clinicadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/clinicadmin/pkg/menuperm"
	"github.com/aussiebroadwan/clinicadmin/pkg/navguard"
	"github.com/stretchr/testify/require"
)

// runPermissionFlow edits a role through the menu permission editor and
// checks the result through login and the route guard.
func runPermissionFlow(t *testing.T, baseURL string) {
	client := adminsdk.NewSDKClient(baseURL)
	ctx := t.Context()
	admin := loginAdmin(t, client)

	role, err := admin.CreateRole(ctx, adminsdk.CreateRoleRequest{Name: "nurse"})
	require.NoError(t, err)
	ward, err := admin.CreateMenu(ctx, adminsdk.MenuRequest{Title: "Ward", Path: "/ward", OrderNum: 4})
	require.NoError(t, err)
	rounds, err := admin.CreateMenu(ctx, adminsdk.MenuRequest{ParentID: &ward.ID, Title: "Rounds", Path: "/ward/rounds"})
	require.NoError(t, err)
	patients := findMenuByPath(t, admin, "/patients")

	ed := menuperm.NewEditor(adminsdk.EditorBackend{Session: admin}, menuperm.WithConcurrency(4))
	require.NoError(t, ed.Load(ctx))
	require.NoError(t, ed.SetActiveRole(role.ID))
	_, err = ed.Toggle(ward.ID)
	require.NoError(t, err)
	_, err = ed.Toggle(patients)
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{ward.ID, rounds.ID, patients}, ed.Checked())

	res, err := ed.Save(ctx, menuperm.AlwaysConfirm)
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Len(t, res.Outcomes, 3)

	grants, err := admin.ListMenuRoles(ctx)
	require.NoError(t, err)
	require.Len(t, menuperm.AssignedTo(role.ID, toAssignments(grants)), 3)

	// A menu with children and a role someone holds both stay.
	require.True(t, adminsdk.IsConflict(admin.DeleteMenu(ctx, ward.ID)))
	require.True(t, adminsdk.IsConflict(admin.DeleteRole(ctx, admin.User().RoleID)))

	// Deleting the unheld role drops its grants.
	require.NoError(t, admin.DeleteRole(ctx, role.ID))
	grants, err = admin.ListMenuRoles(ctx)
	require.NoError(t, err)
	require.Empty(t, menuperm.AssignedTo(role.ID, toAssignments(grants)))

	// The seeded receptionist grants drive the route guard.
	receptionist := findRoleByName(t, admin, "receptionist")
	var paths []string
	for _, id := range menuperm.AssignedTo(receptionist, toAssignments(grants)) {
		paths = append(paths, menuPath(t, admin, id))
	}
	require.True(t, navguard.Allowed("/patients/42", paths))
	require.False(t, navguard.Allowed("/billing", paths))
}

func menuPath(t *testing.T, sess *adminsdk.Session, id int64) string {
	t.Helper()
	menus, err := sess.ListMenus(t.Context())
	require.NoError(t, err)
	for _, m := range menus {
		if m.ID == id {
			return m.Path
		}
	}
	return ""
}

func toAssignments(grants []adminsdk.MenuRole) []menuperm.Assignment {
	out := make([]menuperm.Assignment, len(grants))
	for i, g := range grants {
		out[i] = menuperm.Assignment{RoleID: g.RoleID, MenuID: g.MenuID}
	}
	return out
}

// TestPermissionFlow_SQLite runs the editor flow against the SQLite driver.
func TestPermissionFlow_SQLite(t *testing.T) {
	runPermissionFlow(t, setupSQLiteAdmin(t))
}

// TestPermissionFlow_Postgres runs the same flow against the Postgres driver.
func TestPermissionFlow_Postgres(t *testing.T) {
	runPermissionFlow(t, setupPostgresAdmin(t))
}

// TestRolesAndPasswords covers role conflicts and password changes.
func TestRolesAndPasswords(t *testing.T) {
	client := adminsdk.NewSDKClient(setupSQLiteAdmin(t))
	ctx := t.Context()
	admin := loginAdmin(t, client)

	role, err := admin.CreateRole(ctx, adminsdk.CreateRoleRequest{Name: "auditor", Scopes: []string{"admin:read"}})
	require.NoError(t, err)
	require.Equal(t, []string{"admin:read"}, role.Scopes)
	_, err = admin.CreateRole(ctx, adminsdk.CreateRoleRequest{Name: "auditor"})
	require.True(t, adminsdk.IsConflict(err))

	require.NoError(t, admin.ChangePassword(ctx, adminPassword, "Another123!"))
	_, err = client.Login(ctx, adminUsername, adminPassword)
	require.True(t, adminsdk.IsUnauthorized(err))
	_, err = client.Login(ctx, adminUsername, "Another123!")
	require.NoError(t, err)
}
