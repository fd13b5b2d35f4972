package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
)

type menuRolesRepo struct {
	db dbtx
}

func (r *menuRolesRepo) list(ctx context.Context, query string, args ...any) ([]domain.MenuRole, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.MenuRole{}
	for rows.Next() {
		var mr domain.MenuRole
		if err := rows.Scan(&mr.RoleID, &mr.MenuID, &mr.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, mr)
	}
	return out, rows.Err()
}

func (r *menuRolesRepo) ListAll(ctx context.Context) ([]domain.MenuRole, error) {
	return r.list(ctx, `SELECT role_id, menu_id, created_at FROM menu_roles ORDER BY role_id, menu_id`)
}

func (r *menuRolesRepo) ListByRole(ctx context.Context, roleID int64) ([]domain.MenuRole, error) {
	return r.list(ctx,
		`SELECT role_id, menu_id, created_at FROM menu_roles WHERE role_id = ? ORDER BY menu_id`, roleID)
}

func (r *menuRolesRepo) Assign(ctx context.Context, roleID, menuID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO menu_roles (role_id, menu_id) VALUES (?, ?) ON CONFLICT (role_id, menu_id) DO NOTHING`,
		roleID, menuID)
	return mapConstraint(err)
}

func (r *menuRolesRepo) Remove(ctx context.Context, roleID, menuID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM menu_roles WHERE role_id = ? AND menu_id = ?`, roleID, menuID)
	return err
}

func (r *menuRolesRepo) ListPathsByRole(ctx context.Context, roleID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT m.path FROM menu_roles mr
		 JOIN menus m ON m.id = mr.menu_id
		 WHERE mr.role_id = ? AND m.is_active AND m.path <> ''
		 ORDER BY m.path`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (r *menuRolesRepo) DeleteByMenuIDs(ctx context.Context, menuIDs []int64) (int64, error) {
	if len(menuIDs) == 0 {
		return 0, nil
	}
	args := make([]any, len(menuIDs))
	for i, id := range menuIDs {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(menuIDs)), ",")

	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_roles WHERE menu_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
