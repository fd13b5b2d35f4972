package menuperm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/aussiebroadwan/clinicadmin/pkg/menutree"
	"golang.org/x/sync/errgroup"
)

// ConfirmFunc is asked before a save issues any call. Returning false
// cancels the save.
type ConfirmFunc func(Plan) bool

// AlwaysConfirm approves every plan.
func AlwaysConfirm(Plan) bool { return true }

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for load and save events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.logger = l }
}

// WithConcurrency bounds in-flight calls during a save. Zero means unbounded.
func WithConcurrency(n int) Option {
	return func(e *Editor) { e.limit = n }
}

// Editor is one menu permission editing session: the role and menu catalogs,
// the persisted assignments, and the selection of the active role.
type Editor struct {
	backend Backend
	logger  *slog.Logger
	limit   int

	mu          sync.Mutex
	loaded      bool
	roles       []Role
	menus       []menutree.Item
	assignments []Assignment
	forest      *menutree.Forest
	sel         *Selection
	role        int64
	hasRole     bool
	saving      bool

	// saves counts started saves. Load drops a fetch that a save overtook.
	saves uint64
}

// NewEditor returns an unloaded editor backed by b.
func NewEditor(b Backend, opts ...Option) *Editor {
	e := &Editor{
		backend: b,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		forest:  menutree.Build(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sel = NewSelection(e.forest)
	return e
}

// Load fetches roles, menus and assignments concurrently. Any failure leaves
// the editor empty. A load that a save started during is discarded with
// ErrStaleLoad and the editor keeps the state that save left.
func (e *Editor) Load(ctx context.Context) error {
	e.mu.Lock()
	startSaves := e.saves
	e.mu.Unlock()

	var (
		roles       []Role
		menus       []menutree.Item
		assignments []Assignment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		roles, err = e.backend.ListRoles(gctx)
		return err
	})
	g.Go(func() (err error) {
		menus, err = e.backend.ListMenus(gctx)
		return err
	})
	g.Go(func() (err error) {
		assignments, err = e.backend.ListAssignments(gctx)
		return err
	})
	err := g.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.saving {
		return ErrSaveInProgress
	}
	if e.saves != startSaves {
		e.logger.Debug("discarding menu editor load overtaken by a save")
		return ErrStaleLoad
	}

	if err != nil {
		e.loaded = false
		e.roles, e.menus, e.assignments = nil, nil, nil
		e.forest = menutree.Build(nil)
		e.sel = NewSelection(e.forest)
		e.hasRole = false
		e.logger.Error("menu editor load failed", "error", err)
		return fmt.Errorf("menuperm: load: %w", err)
	}

	e.loaded = true
	e.roles = roles
	e.menus = menus
	e.assignments = assignments
	e.forest = menutree.Build(menus)
	e.sel = NewSelection(e.forest)
	if e.hasRole {
		e.sel.Reset(AssignedTo(e.role, e.assignments))
	}

	e.logger.Info("menu editor loaded",
		"roles", len(roles),
		"menus", len(menus),
		"tree_nodes", e.forest.Len(),
		"assignments", len(assignments),
	)
	return nil
}

// Roles returns the role catalog.
func (e *Editor) Roles() []Role {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.roles)
}

// Forest returns the current menu forest.
func (e *Editor) Forest() *menutree.Forest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.forest
}

// SetActiveRole switches to roleID, discarding unsaved edits and deriving
// the selection from the persisted assignments of roleID.
func (e *Editor) SetActiveRole(roleID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.saving {
		return ErrSaveInProgress
	}
	e.role, e.hasRole = roleID, true
	e.sel.Reset(AssignedTo(roleID, e.assignments))
	return nil
}

// ClearActiveRole leaves role editing and empties the selection.
func (e *Editor) ClearActiveRole() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.saving {
		return ErrSaveInProgress
	}
	e.role, e.hasRole = 0, false
	e.sel.Clear()
	return nil
}

// ActiveRole returns the role being edited.
func (e *Editor) ActiveRole() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.role, e.hasRole
}

// Toggle flips menuID with its subtree. Unknown ids report false.
func (e *Editor) Toggle(menuID int64) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.saving {
		return false, ErrSaveInProgress
	}
	return e.sel.Toggle(menuID), nil
}

// ToggleSelectAll selects every menu, or clears when all are selected.
func (e *Editor) ToggleSelectAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.saving {
		return ErrSaveInProgress
	}
	e.sel.ToggleSelectAll()
	return nil
}

// State returns the drawing state of menuID.
func (e *Editor) State(menuID int64) CheckState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.State(menuID)
}

// Counts returns the selected and total node counts.
func (e *Editor) Counts() (selected, total int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Counts()
}

// AllSelected drives the select-all checkbox.
func (e *Editor) AllSelected() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.AllSelected()
}

// Checked returns the desired menu ids of the active role, sorted.
func (e *Editor) Checked() []int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.IDs()
}

// Saving reports whether a save is in flight.
func (e *Editor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// Pending returns the plan a save would execute now.
func (e *Editor) Pending() (Plan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasRole {
		return Plan{}, ErrNoActiveRole
	}
	return Diff(e.role, e.sel.IDs(), e.assignments), nil
}

// Save diffs the selection against the persisted assignments, asks confirm,
// applies the plan and re-fetches the assignments.
//
// On full success the selection is re-derived from the fresh assignments.
// When some calls fail, the fresh assignments are kept but the selection is
// not touched, so the next Save covers exactly the failed ids. The returned
// error then wraps ErrSyncFailed and the result says which ids failed.
func (e *Editor) Save(ctx context.Context, confirm ConfirmFunc) (BatchResult, error) {
	plan, err := e.begin(confirm, func() (Plan, error) {
		if !e.loaded {
			return Plan{}, ErrNotLoaded
		}
		if !e.hasRole {
			return Plan{}, ErrNoActiveRole
		}
		return Diff(e.role, e.sel.IDs(), e.assignments), nil
	})
	if err != nil {
		return BatchResult{}, err
	}
	return e.run(ctx, plan)
}

// Retry re-issues only the failed calls of a previous result for the active
// role, without diffing again.
func (e *Editor) Retry(ctx context.Context, prev BatchResult, confirm ConfirmFunc) (BatchResult, error) {
	plan, err := e.begin(confirm, func() (Plan, error) {
		if !e.hasRole || e.role != prev.RoleID {
			return Plan{}, ErrNoActiveRole
		}
		return prev.RetryPlan(), nil
	})
	if err != nil {
		return BatchResult{}, err
	}
	return e.run(ctx, plan)
}

// begin claims the single save slot and asks for confirmation.
func (e *Editor) begin(confirm ConfirmFunc, plan func() (Plan, error)) (Plan, error) {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return Plan{}, ErrSaveInProgress
	}
	p, err := plan()
	if err != nil {
		e.mu.Unlock()
		return Plan{}, err
	}
	e.saving = true
	e.saves++
	e.mu.Unlock()

	if confirm == nil {
		confirm = AlwaysConfirm
	}
	if !p.Empty() && !confirm(p) {
		e.finish()
		return Plan{}, ErrCancelled
	}
	return p, nil
}

func (e *Editor) finish() {
	e.mu.Lock()
	e.saving = false
	e.mu.Unlock()
}

func (e *Editor) run(ctx context.Context, plan Plan) (BatchResult, error) {
	defer e.finish()

	log := e.logger.With("role_id", plan.RoleID)
	if plan.Empty() {
		log.Debug("menu permissions already in sync")
		return BatchResult{RoleID: plan.RoleID}, nil
	}

	// Issued calls run to completion even if the caller goes away.
	result := Apply(context.WithoutCancel(ctx), e.backend, plan, e.limit)
	syncErr := result.Err()
	if syncErr != nil {
		log.Warn("menu permission save incomplete",
			"grants", len(plan.Grant),
			"revokes", len(plan.Revoke),
			"failed", len(result.Failed()),
			"error", syncErr,
		)
	} else {
		log.Info("menu permissions saved", "grants", len(plan.Grant), "revokes", len(plan.Revoke))
	}

	fresh, err := e.backend.ListAssignments(context.WithoutCancel(ctx))
	if err != nil {
		log.Error("failed to refresh assignments after save", "error", err)
		if syncErr != nil {
			return result, syncErr
		}
		return result, fmt.Errorf("menuperm: refresh after save: %w", err)
	}

	e.mu.Lock()
	e.assignments = fresh
	if syncErr == nil && e.hasRole && e.role == plan.RoleID {
		e.sel.Reset(AssignedTo(plan.RoleID, fresh))
	}
	e.mu.Unlock()

	return result, syncErr
}
