package postgres

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/jackc/pgx/v5"
)

type rolesRepo struct {
	q querier
}

const roleColumns = `id, name, scopes, created_at, updated_at`

func scanRole(row pgx.Row) (domain.Role, error) {
	var (
		r      domain.Role
		scopes string
	)
	if err := row.Scan(&r.ID, &r.Name, &scopes, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return domain.Role{}, err
	}
	r.Scopes = strings.Fields(scopes)
	return r, nil
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id int64) (domain.Role, error) {
	role, err := scanRole(r.q.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
	return role, mapNotFound(err)
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	role, err := scanRole(r.q.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE name = $1`, name))
	return role, mapNotFound(err)
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) (domain.Role, error) {
	created, err := scanRole(r.q.QueryRow(ctx,
		`INSERT INTO roles (name, scopes) VALUES ($1, $2) RETURNING `+roleColumns,
		role.Name, strings.Join(role.Scopes, " "),
	))
	if err != nil {
		return domain.Role{}, mapConstraint(err)
	}
	return created, nil
}

func (r *rolesRepo) DeleteRole(ctx context.Context, id int64) error {
	return tagOrNotFound(r.q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id))
}

func (r *rolesRepo) IsEmpty(ctx context.Context) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM roles)`).Scan(&exists)
	return !exists, err
}
