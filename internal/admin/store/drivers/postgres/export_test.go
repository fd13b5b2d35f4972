package postgres

import "context"

// Truncate empties every table and resets identities.
func Truncate(ctx context.Context, s *Store) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE users, menu_roles, menus, roles RESTART IDENTITY CASCADE`)
	return err
}
