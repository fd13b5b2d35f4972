// Package storetest is a conformance suite every store driver must pass.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Factory returns a migrated, empty store. Cleanup is the factory's job.
type Factory func(t *testing.T) store.Store

// Run runs the suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Roles", func(t *testing.T) { testRoles(t, newStore(t)) })
	t.Run("Menus", func(t *testing.T) { testMenus(t, newStore(t)) })
	t.Run("MenuRoles", func(t *testing.T) { testMenuRoles(t, newStore(t)) })
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Tx", func(t *testing.T) { testTx(t, newStore(t)) })
}

func ptr(v int64) *int64 { return &v }

func testRoles(t *testing.T, s store.Store) {
	ctx := context.Background()

	empty, err := s.Roles().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	admin, err := s.Roles().CreateRole(ctx, domain.Role{Name: "admin", Scopes: []string{"admin:read", "admin:write"}})
	require.NoError(t, err)
	require.NotZero(t, admin.ID)
	require.Equal(t, []string{"admin:read", "admin:write"}, admin.Scopes)
	require.False(t, admin.CreatedAt.IsZero())

	_, err = s.Roles().CreateRole(ctx, domain.Role{Name: "admin"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	clerk, err := s.Roles().CreateRole(ctx, domain.Role{Name: "clerk"})
	require.NoError(t, err)
	require.Empty(t, clerk.Scopes)

	got, err := s.Roles().GetRoleByName(ctx, "clerk")
	require.NoError(t, err)
	require.Equal(t, clerk.ID, got.ID)

	all, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "admin", all[0].Name)

	require.NoError(t, s.Roles().DeleteRole(ctx, clerk.ID))
	_, err = s.Roles().GetRoleByID(ctx, clerk.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Roles().DeleteRole(ctx, clerk.ID), store.ErrNotFound)
}

func testMenus(t *testing.T, s store.Store) {
	ctx := context.Background()

	root, err := s.Menus().CreateMenu(ctx, domain.Menu{Title: "Stock", IsActive: true})
	require.NoError(t, err)
	require.Nil(t, root.ParentID)
	require.True(t, root.IsActive)

	child, err := s.Menus().CreateMenu(ctx, domain.Menu{
		ParentID: ptr(root.ID), Title: "Batches", Path: "/stock/batches", OrderNum: 2,
	})
	require.NoError(t, err)
	require.Equal(t, root.ID, *child.ParentID)
	require.False(t, child.IsActive)

	// Dangling parents are storable.
	orphan, err := s.Menus().CreateMenu(ctx, domain.Menu{ParentID: ptr(9999), Title: "Lost"})
	require.NoError(t, err)

	n, err := s.Menus().CountChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	child.Title = "Stock batches"
	child.ParentID = nil
	child.IsActive = true
	updated, err := s.Menus().UpdateMenu(ctx, child)
	require.NoError(t, err)
	require.Equal(t, "Stock batches", updated.Title)
	require.Nil(t, updated.ParentID)
	require.True(t, updated.IsActive)

	_, err = s.Menus().UpdateMenu(ctx, domain.Menu{ID: 424242, Title: "x"})
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err := s.Menus().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, []int64{root.ID, child.ID, orphan.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})

	require.NoError(t, s.Menus().DeleteMenu(ctx, orphan.ID))
	_, err = s.Menus().GetMenuByID(ctx, orphan.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testMenuRoles(t *testing.T, s store.Store) {
	ctx := context.Background()

	role, err := s.Roles().CreateRole(ctx, domain.Role{Name: "pharmacist"})
	require.NoError(t, err)
	a, err := s.Menus().CreateMenu(ctx, domain.Menu{Title: "A", Path: "/a", IsActive: true})
	require.NoError(t, err)
	b, err := s.Menus().CreateMenu(ctx, domain.Menu{Title: "B", Path: "/b", IsActive: false})
	require.NoError(t, err)
	c, err := s.Menus().CreateMenu(ctx, domain.Menu{Title: "C", IsActive: true})
	require.NoError(t, err)

	for _, id := range []int64{a.ID, b.ID, c.ID, a.ID} {
		require.NoError(t, s.MenuRoles().Assign(ctx, role.ID, id))
	}

	got, err := s.MenuRoles().ListByRole(ctx, role.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Inactive and path-less menus grant no route.
	paths, err := s.MenuRoles().ListPathsByRole(ctx, role.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"/a"}, paths)

	err = s.MenuRoles().Assign(ctx, role.ID, 999999)
	require.True(t, errors.Is(err, store.ErrReferenced), "got %v", err)

	require.NoError(t, s.MenuRoles().Remove(ctx, role.ID, b.ID))
	require.NoError(t, s.MenuRoles().Remove(ctx, role.ID, b.ID))

	removed, err := s.MenuRoles().DeleteByMenuIDs(ctx, []int64{c.ID, 777})
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	all, err := s.MenuRoles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, a.ID, all[0].MenuID)

	// Deleting the menu cascades to its grants.
	require.NoError(t, s.Menus().DeleteMenu(ctx, a.ID))
	all, err = s.MenuRoles().ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	role, err := s.Roles().CreateRole(ctx, domain.Role{Name: "admin"})
	require.NoError(t, err)

	u := domain.User{
		ID:            idx.New().String(),
		Username:      "alice",
		PreferredName: "Alice",
		PasswordHash:  "$argon2id$placeholder",
		RoleID:        role.ID,
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))
	require.ErrorIs(t, s.Users().CreateUser(ctx, u), store.ErrAlreadyExists)

	got, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, role.ID, got.RoleID)

	require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "$argon2id$new"))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "$argon2id$new", got.PasswordHash)

	n, err := s.Users().CountByRole(ctx, role.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = s.Users().GetUserByUsername(ctx, "bob")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testTx(t *testing.T, s store.Store) {
	ctx := context.Background()
	errAbort := errors.New("abort")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Roles().CreateRole(ctx, domain.Role{Name: "temp"}); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	_, err = s.Roles().GetRoleByName(ctx, "temp")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Roles().CreateRole(ctx, domain.Role{Name: "kept"})
		return err
	}))
	_, err = s.Roles().GetRoleByName(ctx, "kept")
	require.NoError(t, err)

	require.NoError(t, s.Ping(ctx))
}
