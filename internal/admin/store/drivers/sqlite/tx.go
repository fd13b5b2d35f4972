package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer store owns the connection.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(context.Context) error { return nil }

// Tx is not supported inside a transaction.
func (t *txStore) Tx(context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

// WithTx runs fn in the current transaction. Commit and rollback stay with
// the owner of t.
func (t *txStore) WithTx(_ context.Context, fn func(tx store.Tx) error) error {
	return fn(t)
}

func (t *txStore) ApplyMigrations() error { return sql.ErrTxDone }

func (t *txStore) Users() store.Users         { return &usersRepo{db: t.tx} }
func (t *txStore) Roles() store.Roles         { return &rolesRepo{db: t.tx} }
func (t *txStore) Menus() store.Menus         { return &menusRepo{db: t.tx} }
func (t *txStore) MenuRoles() store.MenuRoles { return &menuRolesRepo{db: t.tx} }
