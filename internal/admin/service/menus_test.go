package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/service"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/stretchr/testify/require"
)

func TestMenusService_CreateRequiresParent(t *testing.T) {
	svc := &service.MenusService{Store: newStore(t)}
	ctx := context.Background()

	_, err := svc.CreateMenu(ctx, service.MenuInput{ParentID: ptr(42), Title: "Lost"})
	require.ErrorIs(t, err, service.ErrParentNotFound)

	root, err := svc.CreateMenu(ctx, service.MenuInput{Title: " Pharmacy ", IsActive: true})
	require.NoError(t, err)
	require.Equal(t, "Pharmacy", root.Title)

	child, err := svc.CreateMenu(ctx, service.MenuInput{ParentID: &root.ID, Title: "Stock", Path: "/pharmacy/stock"})
	require.NoError(t, err)
	require.Equal(t, root.ID, *child.ParentID)
}

func TestMenusService_RejectsBlankTitle(t *testing.T) {
	s := newStore(t)
	svc := &service.MenusService{Store: s}
	ctx := context.Background()

	_, err := svc.CreateMenu(ctx, service.MenuInput{Title: "   "})
	require.ErrorIs(t, err, service.ErrBlankMenuTitle)
	all, err := s.Menus().ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	m := mustMenu(t, s, domain.Menu{Title: "Stock"})
	_, err = svc.UpdateMenu(ctx, m.ID, service.MenuInput{Title: "\t "})
	require.ErrorIs(t, err, service.ErrBlankMenuTitle)

	got, err := svc.GetMenuByID(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "Stock", got.Title)
}

func TestMenusService_UpdateRejectsCycles(t *testing.T) {
	s := newStore(t)
	svc := &service.MenusService{Store: s}
	ctx := context.Background()

	// a -> b -> c
	a := mustMenu(t, s, domain.Menu{Title: "A"})
	b := mustMenu(t, s, domain.Menu{Title: "B", ParentID: &a.ID})
	c := mustMenu(t, s, domain.Menu{Title: "C", ParentID: &b.ID})

	_, err := svc.UpdateMenu(ctx, a.ID, service.MenuInput{Title: "A", ParentID: &a.ID})
	require.ErrorIs(t, err, service.ErrMenuCycle)

	_, err = svc.UpdateMenu(ctx, a.ID, service.MenuInput{Title: "A", ParentID: &c.ID})
	require.ErrorIs(t, err, service.ErrMenuCycle)

	_, err = svc.UpdateMenu(ctx, a.ID, service.MenuInput{Title: "A", ParentID: ptr(999)})
	require.ErrorIs(t, err, service.ErrParentNotFound)

	_, err = svc.UpdateMenu(ctx, 999, service.MenuInput{Title: "X"})
	require.ErrorIs(t, err, store.ErrNotFound)

	// Moving c to the top and then under a is fine.
	moved, err := svc.UpdateMenu(ctx, c.ID, service.MenuInput{Title: "C", IsActive: true})
	require.NoError(t, err)
	require.Nil(t, moved.ParentID)
	_, err = svc.UpdateMenu(ctx, c.ID, service.MenuInput{Title: "C", ParentID: &a.ID})
	require.NoError(t, err)
}

func TestMenusService_UpdateAboveExistingCycle(t *testing.T) {
	s := newStore(t)
	svc := &service.MenusService{Store: s}
	ctx := context.Background()

	// x and y point at each other; r is a separate root.
	x := mustMenu(t, s, domain.Menu{Title: "X"})
	y := mustMenu(t, s, domain.Menu{Title: "Y", ParentID: &x.ID})
	_, err := s.Menus().UpdateMenu(ctx, domain.Menu{ID: x.ID, Title: "X", ParentID: &y.ID})
	require.NoError(t, err)
	r := mustMenu(t, s, domain.Menu{Title: "R"})

	// The walk from y terminates even though it never reaches r.
	_, err = svc.UpdateMenu(ctx, r.ID, service.MenuInput{Title: "R", ParentID: &y.ID})
	require.NoError(t, err)
}

func TestMenusService_DeleteRefusesParents(t *testing.T) {
	s := newStore(t)
	svc := &service.MenusService{Store: s}
	ctx := context.Background()

	root := mustMenu(t, s, domain.Menu{Title: "Root"})
	leaf := mustMenu(t, s, domain.Menu{Title: "Leaf", ParentID: &root.ID})

	require.ErrorIs(t, svc.DeleteMenu(ctx, root.ID), service.ErrMenuHasChildren)
	require.NoError(t, svc.DeleteMenu(ctx, leaf.ID))
	require.NoError(t, svc.DeleteMenu(ctx, root.ID))
	require.ErrorIs(t, svc.DeleteMenu(ctx, root.ID), store.ErrNotFound)
}

func TestMenusService_TreeSkipsOrphans(t *testing.T) {
	s := newStore(t)
	svc := &service.MenusService{Store: s}
	ctx := context.Background()

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.Empty(t, tree)

	second := mustMenu(t, s, domain.Menu{Title: "Second", OrderNum: 2})
	first := mustMenu(t, s, domain.Menu{Title: "First", OrderNum: 1})
	mustMenu(t, s, domain.Menu{Title: "Child", ParentID: &first.ID})
	mustMenu(t, s, domain.Menu{Title: "Orphan", ParentID: ptr(12345)})

	tree, err = svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	require.Equal(t, first.ID, tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	require.Equal(t, second.ID, tree[1].ID)
}
