package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/pkg/menutree"
	"github.com/aussiebroadwan/clinicadmin/pkg/slogx"
)

// MenuInput holds the writable fields of a menu.
type MenuInput struct {
	ParentID *int64
	Title    string
	Path     string
	OrderNum int
	IsActive bool
}

func (in MenuInput) menu(id int64) (domain.Menu, error) {
	m := domain.Menu{
		ID:       id,
		ParentID: in.ParentID,
		Title:    strings.TrimSpace(in.Title),
		Path:     strings.TrimSpace(in.Path),
		OrderNum: in.OrderNum,
		IsActive: in.IsActive,
	}
	if m.Title == "" {
		return domain.Menu{}, ErrBlankMenuTitle
	}
	return m, nil
}

type MenusService struct {
	Store store.Store
}

func (s *MenusService) GetMenuByID(ctx context.Context, id int64) (domain.Menu, error) {
	return s.Store.Menus().GetMenuByID(ctx, id)
}

// ListAll returns the flat menu list ordered by id.
func (s *MenusService) ListAll(ctx context.Context) ([]domain.Menu, error) {
	return s.Store.Menus().ListAll(ctx)
}

// Tree builds the menu forest server side. Orphans and cycles are left out.
func (s *MenusService) Tree(ctx context.Context) ([]*menutree.TreeNode, error) {
	menus, err := s.Store.Menus().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	tree := menutree.Build(domain.MenuItems(menus)).Tree()
	if tree == nil {
		tree = []*menutree.TreeNode{}
	}
	return tree, nil
}

// CreateMenu stores a new menu. A non-nil parent must exist.
func (s *MenusService) CreateMenu(ctx context.Context, in MenuInput) (domain.Menu, error) {
	m, err := in.menu(0)
	if err != nil {
		return domain.Menu{}, err
	}
	var created domain.Menu
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := parentExists(ctx, tx, in.ParentID); err != nil {
			return err
		}
		var err error
		created, err = tx.Menus().CreateMenu(ctx, m)
		return err
	})
	if err != nil {
		return domain.Menu{}, err
	}
	slogx.FromContext(ctx).Info("menu created", slog.Int64("menu_id", created.ID), slog.String("title", created.Title))
	return created, nil
}

// UpdateMenu replaces the writable fields of menu id. Moving a menu under
// itself or one of its descendants is refused with ErrMenuCycle.
func (s *MenusService) UpdateMenu(ctx context.Context, id int64, in MenuInput) (domain.Menu, error) {
	m, err := in.menu(id)
	if err != nil {
		return domain.Menu{}, err
	}
	var updated domain.Menu
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Menus().GetMenuByID(ctx, id); err != nil {
			return err
		}
		if in.ParentID != nil {
			if *in.ParentID == id {
				return ErrMenuCycle
			}
			if err := parentExists(ctx, tx, in.ParentID); err != nil {
				return err
			}
			all, err := tx.Menus().ListAll(ctx)
			if err != nil {
				return err
			}
			if createsCycle(all, id, *in.ParentID) {
				return ErrMenuCycle
			}
		}
		var err error
		updated, err = tx.Menus().UpdateMenu(ctx, m)
		return err
	})
	if err != nil {
		return domain.Menu{}, err
	}
	slogx.FromContext(ctx).Info("menu updated", slog.Int64("menu_id", id))
	return updated, nil
}

// DeleteMenu removes a leaf menu and its grants. Menus with children are
// refused with ErrMenuHasChildren.
func (s *MenusService) DeleteMenu(ctx context.Context, id int64) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Menus().GetMenuByID(ctx, id); err != nil {
			return err
		}
		n, err := tx.Menus().CountChildren(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrMenuHasChildren
		}
		return tx.Menus().DeleteMenu(ctx, id)
	})
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("menu deleted", slog.Int64("menu_id", id))
	return nil
}

func parentExists(ctx context.Context, tx store.Tx, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if _, err := tx.Menus().GetMenuByID(ctx, *parentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrParentNotFound, *parentID)
		}
		return err
	}
	return nil
}

// createsCycle reports whether making parentID the parent of id would put id
// on its own ancestor chain. Existing cycles above parentID are walked once.
func createsCycle(menus []domain.Menu, id, parentID int64) bool {
	parents := make(map[int64]int64, len(menus))
	for _, m := range menus {
		if m.ParentID != nil {
			parents[m.ID] = *m.ParentID
		}
	}

	seen := map[int64]bool{}
	for cur := parentID; !seen[cur]; {
		if cur == id {
			return true
		}
		seen[cur] = true
		next, ok := parents[cur]
		if !ok {
			return false
		}
		cur = next
	}
	return false
}
