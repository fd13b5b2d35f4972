package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/pkg/slogx"
)

type RolesService struct {
	Store store.Store
}

// GetRoleByID fetches a role by its ID.
func (s *RolesService) GetRoleByID(ctx context.Context, roleID int64) (domain.Role, error) {
	return s.Store.Roles().GetRoleByID(ctx, roleID)
}

// ListAll returns all roles in the system.
func (s *RolesService) ListAll(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListAll(ctx)
}

// CreateRole stores a role with the given scopes, deduplicated and sorted.
// A duplicate name yields store.ErrAlreadyExists.
func (s *RolesService) CreateRole(ctx context.Context, name string, scopes []string) (domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Role{}, ErrBlankRoleName
	}
	role, err := s.Store.Roles().CreateRole(ctx, domain.Role{
		Name:   name,
		Scopes: normalizeScopes(scopes),
	})
	if err != nil {
		return domain.Role{}, err
	}
	slogx.FromContext(ctx).Info("role created", slog.Int64("role_id", role.ID), slog.String("name", role.Name))
	return role, nil
}

// DeleteRole removes a role and its menu grants. Roles still held by a user
// are refused with ErrRoleInUse.
func (s *RolesService) DeleteRole(ctx context.Context, roleID int64) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Roles().GetRoleByID(ctx, roleID); err != nil {
			return err
		}
		n, err := tx.Users().CountByRole(ctx, roleID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrRoleInUse
		}
		return tx.Roles().DeleteRole(ctx, roleID)
	})
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("role deleted", slog.Int64("role_id", roleID))
	return nil
}

func normalizeScopes(scopes []string) []string {
	out := make([]string, 0, len(scopes))
	for _, sc := range scopes {
		if sc = strings.TrimSpace(sc); sc != "" {
			out = append(out, sc)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
