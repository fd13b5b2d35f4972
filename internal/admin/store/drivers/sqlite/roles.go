package sqlite

import (
	"context"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
)

type rolesRepo struct {
	db dbtx
}

const roleColumns = `id, name, scopes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRole(row rowScanner) (domain.Role, error) {
	var (
		r      domain.Role
		scopes string
	)
	if err := row.Scan(&r.ID, &r.Name, &scopes, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return domain.Role{}, err
	}
	r.Scopes = splitScopes(scopes)
	return r, nil
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id int64) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = ?`, id)
	role, err := scanRole(row)
	return role, mapNotFound(err)
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+roleColumns+` FROM roles WHERE name = ?`, name)
	role, err := scanRole(row)
	return role, mapNotFound(err)
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY id`)
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
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO roles (name, scopes) VALUES (?, ?) RETURNING `+roleColumns,
		role.Name, joinScopes(role.Scopes),
	)
	created, err := scanRole(row)
	if err != nil {
		return domain.Role{}, mapConstraint(err)
	}
	return created, nil
}

func (r *rolesRepo) DeleteRole(ctx context.Context, id int64) error {
	return rowsAffectedOrNotFound(r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id))
}

func (r *rolesRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
