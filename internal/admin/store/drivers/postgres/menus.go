package postgres

import (
	"context"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/jackc/pgx/v5"
)

type menusRepo struct {
	q querier
}

const menuColumns = `id, parent_id, title, path, order_num, is_active, created_at, updated_at`

// pgx scans NULL into a nil *int64 directly.
func scanMenu(row pgx.Row) (domain.Menu, error) {
	var m domain.Menu
	err := row.Scan(&m.ID, &m.ParentID, &m.Title, &m.Path, &m.OrderNum, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *menusRepo) GetMenuByID(ctx context.Context, id int64) (domain.Menu, error) {
	m, err := scanMenu(r.q.QueryRow(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = $1`, id))
	return m, mapNotFound(err)
}

func (r *menusRepo) ListAll(ctx context.Context) ([]domain.Menu, error) {
	rows, err := r.q.Query(ctx, `SELECT `+menuColumns+` FROM menus ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	menus := []domain.Menu{}
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

func (r *menusRepo) CreateMenu(ctx context.Context, m domain.Menu) (domain.Menu, error) {
	created, err := scanMenu(r.q.QueryRow(ctx,
		`INSERT INTO menus (parent_id, title, path, order_num, is_active)
		 VALUES ($1, $2, $3, $4, $5) RETURNING `+menuColumns,
		m.ParentID, m.Title, m.Path, m.OrderNum, m.IsActive,
	))
	if err != nil {
		return domain.Menu{}, mapConstraint(err)
	}
	return created, nil
}

func (r *menusRepo) UpdateMenu(ctx context.Context, m domain.Menu) (domain.Menu, error) {
	updated, err := scanMenu(r.q.QueryRow(ctx,
		`UPDATE menus
		 SET parent_id = $1, title = $2, path = $3, order_num = $4, is_active = $5, updated_at = now()
		 WHERE id = $6 RETURNING `+menuColumns,
		m.ParentID, m.Title, m.Path, m.OrderNum, m.IsActive, m.ID,
	))
	if err != nil {
		return domain.Menu{}, mapNotFound(err)
	}
	return updated, nil
}

func (r *menusRepo) DeleteMenu(ctx context.Context, id int64) error {
	return tagOrNotFound(r.q.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id))
}

func (r *menusRepo) CountChildren(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM menus WHERE parent_id = $1`, id).Scan(&n)
	return n, err
}

func (r *menusRepo) IsEmpty(ctx context.Context) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM menus)`).Scan(&exists)
	return !exists, err
}
