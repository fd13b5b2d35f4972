package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/metrics"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/pkg/slogx"
)

type MenuRolesService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

// ListAll returns every grant ordered by role then menu.
func (s *MenuRolesService) ListAll(ctx context.Context) ([]domain.MenuRole, error) {
	return s.Store.MenuRoles().ListAll(ctx)
}

func (s *MenuRolesService) ListByRole(ctx context.Context, roleID int64) ([]domain.MenuRole, error) {
	if _, err := s.Store.Roles().GetRoleByID(ctx, roleID); err != nil {
		return nil, err
	}
	return s.Store.MenuRoles().ListByRole(ctx, roleID)
}

// Assign grants menuID to roleID. Both must exist; granting twice succeeds.
func (s *MenuRolesService) Assign(ctx context.Context, roleID, menuID int64) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Roles().GetRoleByID(ctx, roleID); err != nil {
			return fmt.Errorf("role %d: %w", roleID, err)
		}
		if _, err := tx.Menus().GetMenuByID(ctx, menuID); err != nil {
			return fmt.Errorf("menu %d: %w", menuID, err)
		}
		return tx.MenuRoles().Assign(ctx, roleID, menuID)
	})
	if err != nil {
		return err
	}
	s.Metrics.RecordMenuRoleChange("grant")
	slogx.FromContext(ctx).Info("menu granted", slog.Int64("role_id", roleID), slog.Int64("menu_id", menuID))
	return nil
}

// Remove revokes menuID from roleID. Revoking a missing grant succeeds.
func (s *MenuRolesService) Remove(ctx context.Context, roleID, menuID int64) error {
	if err := s.Store.MenuRoles().Remove(ctx, roleID, menuID); err != nil {
		return err
	}
	s.Metrics.RecordMenuRoleChange("revoke")
	slogx.FromContext(ctx).Info("menu revoked", slog.Int64("role_id", roleID), slog.Int64("menu_id", menuID))
	return nil
}

// GrantedPaths returns the routes roleID may open: the paths of its active
// granted menus.
func (s *MenuRolesService) GrantedPaths(ctx context.Context, roleID int64) ([]string, error) {
	return s.Store.MenuRoles().ListPathsByRole(ctx, roleID)
}
