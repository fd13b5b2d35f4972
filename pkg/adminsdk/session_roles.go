package adminsdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListRoles retrieves all roles. Requires admin:read.
func (s *Session) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := s.do(ctx, http.MethodGet, "/v1/roles", nil, &roles, http.StatusOK, "admin:read"); err != nil {
		return nil, err
	}
	return roles, nil
}

// CreateRole creates a role. Requires admin:write.
func (s *Session) CreateRole(ctx context.Context, req CreateRoleRequest) (*Role, error) {
	var role Role
	if err := s.do(ctx, http.MethodPost, "/v1/roles", req, &role, http.StatusCreated, "admin:write"); err != nil {
		return nil, err
	}
	return &role, nil
}

// DeleteRole deletes a role nobody holds. Requires admin:write.
func (s *Session) DeleteRole(ctx context.Context, roleID int64) error {
	return s.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/roles/%d", roleID), nil, nil, http.StatusOK, "admin:write")
}
