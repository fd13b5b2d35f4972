package menuperm

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/clinicadmin/pkg/menutree"
	"golang.org/x/sync/errgroup"
)

// Backend is the REST collaborator the editor reads from and writes to.
type Backend interface {
	ListRoles(ctx context.Context) ([]Role, error)
	ListMenus(ctx context.Context) ([]menutree.Item, error)
	ListAssignments(ctx context.Context) ([]Assignment, error)
	Grant(ctx context.Context, roleID, menuID int64) error
	Revoke(ctx context.Context, roleID, menuID int64) error
}

// Op is the kind of call an Outcome records.
type Op string

const (
	OpGrant  Op = "grant"
	OpRevoke Op = "revoke"
)

// Outcome is the result of one grant or revoke call.
type Outcome struct {
	MenuID int64
	Op     Op
	Err    error
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// BatchResult holds one outcome per call of a Plan, grants first, each
// group in plan order.
type BatchResult struct {
	RoleID   int64
	Outcomes []Outcome
}

// OK reports whether every call succeeded.
func (r BatchResult) OK() bool {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return false
		}
	}
	return true
}

// Succeeded returns the outcomes without error.
func (r BatchResult) Succeeded() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err == nil {
			out = append(out, o)
		}
	}
	return out
}

// Failed returns the outcomes with an error.
func (r BatchResult) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Err joins every failure into one error wrapping ErrSyncFailed, or nil.
func (r BatchResult) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failed))
	for _, o := range failed {
		errs = append(errs, fmt.Errorf("%s menu %d: %w", o.Op, o.MenuID, o.Err))
	}
	return fmt.Errorf("%w: %d of %d calls failed: %w",
		ErrSyncFailed, len(failed), len(r.Outcomes), errors.Join(errs...))
}

// RetryPlan builds a plan from the failed outcomes only.
func (r BatchResult) RetryPlan() Plan {
	p := Plan{RoleID: r.RoleID}
	for _, o := range r.Failed() {
		switch o.Op {
		case OpGrant:
			p.Grant = append(p.Grant, o.MenuID)
		case OpRevoke:
			p.Revoke = append(p.Revoke, o.MenuID)
		}
	}
	return p
}

// Apply issues every call of plan concurrently and waits for all of them.
// A failed call does not stop the others and nothing is rolled back. A limit
// of zero or less means no bound on in-flight calls.
func Apply(ctx context.Context, b Backend, plan Plan, limit int) BatchResult {
	res := BatchResult{
		RoleID:   plan.RoleID,
		Outcomes: make([]Outcome, plan.Len()),
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, id := range plan.Grant {
		g.Go(func() error {
			res.Outcomes[i] = Outcome{MenuID: id, Op: OpGrant, Err: b.Grant(ctx, plan.RoleID, id)}
			return nil
		})
	}
	offset := len(plan.Grant)
	for i, id := range plan.Revoke {
		g.Go(func() error {
			res.Outcomes[offset+i] = Outcome{MenuID: id, Op: OpRevoke, Err: b.Revoke(ctx, plan.RoleID, id)}
			return nil
		})
	}

	_ = g.Wait() // goroutines never return an error, outcomes carry them
	return res
}
