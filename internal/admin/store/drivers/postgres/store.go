package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of *pgxpool.Pool and pgx.Tx the repositories use.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
	url  string
}

// Connect opens a pool on databaseURL. maxConns <= 0 keeps the pgx default.
func Connect(ctx context.Context, databaseURL string, maxConns int) (*Store, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}
	if maxConns > 0 && maxConns <= math.MaxInt32 {
		config.MaxConns = int32(maxConns) // #nosec G115 -- bounds checked above
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool, url: databaseURL}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, ctx: context.WithoutCancel(ctx)}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users         { return &usersRepo{q: s.pool} }
func (s *Store) Roles() store.Roles         { return &rolesRepo{q: s.pool} }
func (s *Store) Menus() store.Menus         { return &menusRepo{q: s.pool} }
func (s *Store) MenuRoles() store.MenuRoles { return &menuRolesRepo{q: s.pool} }

type txStore struct {
	tx  pgx.Tx
	ctx context.Context
}

func (t *txStore) Commit() error   { return t.tx.Commit(t.ctx) }
func (t *txStore) Rollback() error { return t.tx.Rollback(t.ctx) }

func (t *txStore) Close() error               { return nil }
func (t *txStore) Ping(context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error     { return pgx.ErrTxClosed }

func (t *txStore) Tx(context.Context) (store.Tx, error) { return nil, pgx.ErrTxClosed }

// WithTx runs fn in the current transaction.
func (t *txStore) WithTx(_ context.Context, fn func(tx store.Tx) error) error { return fn(t) }

func (t *txStore) Users() store.Users         { return &usersRepo{q: t.tx} }
func (t *txStore) Roles() store.Roles         { return &rolesRepo{q: t.tx} }
func (t *txStore) Menus() store.Menus         { return &menusRepo{q: t.tx} }
func (t *txStore) MenuRoles() store.MenuRoles { return &menuRolesRepo{q: t.tx} }

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return store.ErrAlreadyExists
	case pgForeignKeyViolation:
		return store.ErrReferenced
	}
	return err
}

func tagOrNotFound(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapConstraint(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
