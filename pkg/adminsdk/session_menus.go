package adminsdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListMenus retrieves the flat menu list ordered by id. Requires admin:read.
func (s *Session) ListMenus(ctx context.Context) ([]Menu, error) {
	var menus []Menu
	if err := s.do(ctx, http.MethodGet, "/v1/menus", nil, &menus, http.StatusOK, "admin:read"); err != nil {
		return nil, err
	}
	return menus, nil
}

// MenuTree retrieves the menu forest as built by the server. Orphans and
// cycles are not part of it. Requires admin:read.
func (s *Session) MenuTree(ctx context.Context) ([]*MenuTreeNode, error) {
	var tree []*MenuTreeNode
	if err := s.do(ctx, http.MethodGet, "/v1/menus/tree", nil, &tree, http.StatusOK, "admin:read"); err != nil {
		return nil, err
	}
	return tree, nil
}

// CreateMenu creates a menu. Requires admin:write.
func (s *Session) CreateMenu(ctx context.Context, req MenuRequest) (*Menu, error) {
	var menu Menu
	if err := s.do(ctx, http.MethodPost, "/v1/menus", req, &menu, http.StatusCreated, "admin:write"); err != nil {
		return nil, err
	}
	return &menu, nil
}

// UpdateMenu replaces a menu. Requires admin:write.
func (s *Session) UpdateMenu(ctx context.Context, menuID int64, req MenuRequest) (*Menu, error) {
	var menu Menu
	path := fmt.Sprintf("/v1/menus/%d", menuID)
	if err := s.do(ctx, http.MethodPut, path, req, &menu, http.StatusOK, "admin:write"); err != nil {
		return nil, err
	}
	return &menu, nil
}

// DeleteMenu deletes a menu without children. Requires admin:write.
func (s *Session) DeleteMenu(ctx context.Context, menuID int64) error {
	return s.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/menus/%d", menuID), nil, nil, http.StatusOK, "admin:write")
}
