package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrReferenced is returned when a row is still referenced by another.
	ErrReferenced = errors.New("store: still referenced")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so a Tx exposes the same
// surface and transactions cannot nest.
type Store interface {
	Users() Users
	Roles() Roles
	Menus() Menus
	MenuRoles() MenuRoles

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST call Commit or
	// Rollback on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a user whose ULID is provided by the caller.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the argon2 hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// CountByRole returns how many users hold roleID.
	CountByRole(ctx context.Context, roleID int64) (int64, error)

	IsEmpty(ctx context.Context) (bool, error)
}

type Roles interface {
	GetRoleByID(ctx context.Context, id int64) (domain.Role, error)
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns every role ordered by id.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts r and returns the stored row with its id.
	// A duplicate name yields ErrAlreadyExists.
	CreateRole(ctx context.Context, r domain.Role) (domain.Role, error)

	// DeleteRole removes a role and, by cascade, its menu grants.
	DeleteRole(ctx context.Context, id int64) error

	IsEmpty(ctx context.Context) (bool, error)
}

type Menus interface {
	GetMenuByID(ctx context.Context, id int64) (domain.Menu, error)

	// ListAll returns every menu ordered by id, which is the tie-break
	// order for siblings with equal order numbers.
	ListAll(ctx context.Context) ([]domain.Menu, error)

	// CreateMenu inserts m and returns the stored row with its id.
	CreateMenu(ctx context.Context, m domain.Menu) (domain.Menu, error)

	// UpdateMenu replaces the mutable fields of m.ID and returns the row.
	UpdateMenu(ctx context.Context, m domain.Menu) (domain.Menu, error)

	// DeleteMenu removes a menu and, by cascade, its grants.
	DeleteMenu(ctx context.Context, id int64) error

	// CountChildren returns how many menus have id as parent.
	CountChildren(ctx context.Context, id int64) (int64, error)

	IsEmpty(ctx context.Context) (bool, error)
}

type MenuRoles interface {
	// ListAll returns every grant ordered by role then menu.
	ListAll(ctx context.Context) ([]domain.MenuRole, error)

	ListByRole(ctx context.Context, roleID int64) ([]domain.MenuRole, error)

	// Assign grants menuID to roleID. Granting twice is not an error.
	Assign(ctx context.Context, roleID, menuID int64) error

	// Remove revokes menuID from roleID. Revoking a missing grant is not an
	// error.
	Remove(ctx context.Context, roleID, menuID int64) error

	// ListPathsByRole returns the non-empty paths of active menus granted
	// to roleID, sorted.
	ListPathsByRole(ctx context.Context, roleID int64) ([]string, error)

	// DeleteByMenuIDs removes every grant of the given menus and returns
	// how many rows went.
	DeleteByMenuIDs(ctx context.Context, menuIDs []int64) (int64, error)
}
