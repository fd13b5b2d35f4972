package postgres

import (
	"context"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/jackc/pgx/v5"
)

type menuRolesRepo struct {
	q querier
}

func (r *menuRolesRepo) list(ctx context.Context, sql string, args ...any) ([]domain.MenuRole, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MenuRole, error) {
		var mr domain.MenuRole
		err := row.Scan(&mr.RoleID, &mr.MenuID, &mr.CreatedAt)
		return mr, err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.MenuRole{}
	}
	return out, nil
}

func (r *menuRolesRepo) ListAll(ctx context.Context) ([]domain.MenuRole, error) {
	return r.list(ctx, `SELECT role_id, menu_id, created_at FROM menu_roles ORDER BY role_id, menu_id`)
}

func (r *menuRolesRepo) ListByRole(ctx context.Context, roleID int64) ([]domain.MenuRole, error) {
	return r.list(ctx,
		`SELECT role_id, menu_id, created_at FROM menu_roles WHERE role_id = $1 ORDER BY menu_id`, roleID)
}

func (r *menuRolesRepo) Assign(ctx context.Context, roleID, menuID int64) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO menu_roles (role_id, menu_id) VALUES ($1, $2) ON CONFLICT (role_id, menu_id) DO NOTHING`,
		roleID, menuID)
	return mapConstraint(err)
}

func (r *menuRolesRepo) Remove(ctx context.Context, roleID, menuID int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM menu_roles WHERE role_id = $1 AND menu_id = $2`, roleID, menuID)
	return err
}

func (r *menuRolesRepo) ListPathsByRole(ctx context.Context, roleID int64) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT DISTINCT m.path FROM menu_roles mr
		 JOIN menus m ON m.id = mr.menu_id
		 WHERE mr.role_id = $1 AND m.is_active AND m.path <> ''
		 ORDER BY m.path`, roleID)
	if err != nil {
		return nil, err
	}
	paths, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if paths == nil {
		paths = []string{}
	}
	return paths, nil
}

func (r *menuRolesRepo) DeleteByMenuIDs(ctx context.Context, menuIDs []int64) (int64, error) {
	if len(menuIDs) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM menu_roles WHERE menu_id = ANY($1)`, menuIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
