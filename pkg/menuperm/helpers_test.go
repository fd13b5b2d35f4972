package menuperm_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/aussiebroadwan/clinicadmin/pkg/menuperm"
	"github.com/aussiebroadwan/clinicadmin/pkg/menutree"
)

var errBoom = errors.New("boom")

type call struct {
	op     menuperm.Op
	roleID int64
	menuID int64
}

// memBackend is an in-memory Backend that records calls.
type memBackend struct {
	mu       sync.Mutex
	roles    []menuperm.Role
	menus    []menutree.Item
	assigned map[menuperm.Assignment]struct{}
	calls    []call

	failGrant  map[int64]bool
	failRevoke map[int64]bool
	failLoad   error
	failList   atomic.Bool

	// block, when set, holds every grant/revoke until closed.
	block chan struct{}

	// listGate, when set, holds the next ListAssignments after it has read
	// the assignments.
	listGate *gate
}

type gate struct {
	entered chan struct{}
	release chan struct{}
}

// holdNextList makes the next ListAssignments snapshot the assignments and
// then wait for release.
func (b *memBackend) holdNextList() *gate {
	g := &gate{entered: make(chan struct{}), release: make(chan struct{})}
	b.mu.Lock()
	b.listGate = g
	b.mu.Unlock()
	return g
}

func newMemBackend(assigned ...menuperm.Assignment) *memBackend {
	b := &memBackend{
		roles: []menuperm.Role{{ID: 1, Name: "admin"}, {ID: 2, Name: "pharmacist"}},
		menus: []menutree.Item{
			{ID: 1, Title: "A"},
			{ID: 2, Title: "B", ParentID: ptr(1)},
			{ID: 3, Title: "C", ParentID: ptr(1), OrderNum: 1},
			{ID: 4, Title: "D"},
		},
		assigned:   make(map[menuperm.Assignment]struct{}),
		failGrant:  make(map[int64]bool),
		failRevoke: make(map[int64]bool),
	}
	for _, a := range assigned {
		b.assigned[a] = struct{}{}
	}
	return b
}

func (b *memBackend) ListRoles(context.Context) ([]menuperm.Role, error) {
	if b.failLoad != nil {
		return nil, b.failLoad
	}
	return b.roles, nil
}

func (b *memBackend) ListMenus(context.Context) ([]menutree.Item, error) {
	return b.menus, nil
}

func (b *memBackend) ListAssignments(context.Context) ([]menuperm.Assignment, error) {
	if b.failList.Load() {
		return nil, errBoom
	}
	b.mu.Lock()
	out := make([]menuperm.Assignment, 0, len(b.assigned))
	for a := range b.assigned {
		out = append(out, a)
	}
	g := b.listGate
	b.listGate = nil
	b.mu.Unlock()

	if g != nil {
		close(g.entered)
		<-g.release
	}
	return out, nil
}

func (b *memBackend) Grant(_ context.Context, roleID, menuID int64) error {
	if b.block != nil {
		<-b.block
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call{menuperm.OpGrant, roleID, menuID})
	if b.failGrant[menuID] {
		return errBoom
	}
	b.assigned[menuperm.Assignment{RoleID: roleID, MenuID: menuID}] = struct{}{}
	return nil
}

func (b *memBackend) Revoke(_ context.Context, roleID, menuID int64) error {
	if b.block != nil {
		<-b.block
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call{menuperm.OpRevoke, roleID, menuID})
	if b.failRevoke[menuID] {
		return errBoom
	}
	delete(b.assigned, menuperm.Assignment{RoleID: roleID, MenuID: menuID})
	return nil
}

func (b *memBackend) recorded() []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]call(nil), b.calls...)
}

func (b *memBackend) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}
