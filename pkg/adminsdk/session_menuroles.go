package adminsdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListMenuRoles retrieves every grant. Requires admin:read.
func (s *Session) ListMenuRoles(ctx context.Context) ([]MenuRole, error) {
	var grants []MenuRole
	if err := s.do(ctx, http.MethodGet, "/v1/menuroles", nil, &grants, http.StatusOK, "admin:read"); err != nil {
		return nil, err
	}
	return grants, nil
}

// AssignMenu grants menuID to roleID. Granting twice succeeds.
// Requires admin:write.
func (s *Session) AssignMenu(ctx context.Context, roleID, menuID int64) error {
	req := AssignMenuRequest{RoleID: roleID, MenuID: menuID}
	return s.do(ctx, http.MethodPost, "/v1/menuroles/assign", req, nil, http.StatusOK, "admin:write")
}

// RemoveMenu revokes menuID from roleID. Revoking a missing grant succeeds.
// Requires admin:write.
func (s *Session) RemoveMenu(ctx context.Context, roleID, menuID int64) error {
	path := fmt.Sprintf("/v1/menuroles/remove/%d/%d", menuID, roleID)
	return s.do(ctx, http.MethodDelete, path, nil, nil, http.StatusOK, "admin:write")
}
