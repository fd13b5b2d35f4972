package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
)

type menusRepo struct {
	db dbtx
}

const menuColumns = `id, parent_id, title, path, order_num, is_active, created_at, updated_at`

func scanMenu(row rowScanner) (domain.Menu, error) {
	var (
		m      domain.Menu
		parent sql.NullInt64
	)
	err := row.Scan(&m.ID, &parent, &m.Title, &m.Path, &m.OrderNum, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Menu{}, err
	}
	if parent.Valid {
		m.ParentID = &parent.Int64
	}
	return m, nil
}

func nullParent(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func (r *menusRepo) GetMenuByID(ctx context.Context, id int64) (domain.Menu, error) {
	m, err := scanMenu(r.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = ?`, id))
	return m, mapNotFound(err)
}

func (r *menusRepo) ListAll(ctx context.Context) ([]domain.Menu, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+menuColumns+` FROM menus ORDER BY id`)
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
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO menus (parent_id, title, path, order_num, is_active)
		 VALUES (?, ?, ?, ?, ?) RETURNING `+menuColumns,
		nullParent(m.ParentID), m.Title, m.Path, m.OrderNum, m.IsActive,
	)
	created, err := scanMenu(row)
	if err != nil {
		return domain.Menu{}, mapConstraint(err)
	}
	return created, nil
}

func (r *menusRepo) UpdateMenu(ctx context.Context, m domain.Menu) (domain.Menu, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE menus
		 SET parent_id = ?, title = ?, path = ?, order_num = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? RETURNING `+menuColumns,
		nullParent(m.ParentID), m.Title, m.Path, m.OrderNum, m.IsActive, m.ID,
	)
	updated, err := scanMenu(row)
	if err != nil {
		return domain.Menu{}, mapNotFound(err)
	}
	return updated, nil
}

func (r *menusRepo) DeleteMenu(ctx context.Context, id int64) error {
	return rowsAffectedOrNotFound(r.db.ExecContext(ctx, `DELETE FROM menus WHERE id = ?`, id))
}

func (r *menusRepo) CountChildren(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menus WHERE parent_id = ?`, id).Scan(&n)
	return n, err
}

func (r *menusRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menus`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
