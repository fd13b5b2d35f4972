package menuperm

import "slices"

// Assignment is one persisted grant of a menu to a role.
type Assignment struct {
	RoleID int64 `json:"roleId"`
	MenuID int64 `json:"menuId"`
}

// Role is an entry of the role catalog.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Plan is the minimal set of calls that moves a role's persisted grants to
// the desired set. Grant and Revoke are disjoint and sorted ascending.
type Plan struct {
	RoleID int64
	Grant  []int64
	Revoke []int64
}

// Empty reports whether the plan has nothing to do.
func (p Plan) Empty() bool { return len(p.Grant) == 0 && len(p.Revoke) == 0 }

// Len is the number of backend calls the plan issues.
func (p Plan) Len() int { return len(p.Grant) + len(p.Revoke) }

// AssignedTo returns the menu ids persisted for roleID, sorted ascending.
func AssignedTo(roleID int64, records []Assignment) []int64 {
	seen := make(map[int64]struct{})
	var out []int64
	for _, r := range records {
		if r.RoleID != roleID {
			continue
		}
		if _, dup := seen[r.MenuID]; dup {
			continue
		}
		seen[r.MenuID] = struct{}{}
		out = append(out, r.MenuID)
	}
	slices.Sort(out)
	return out
}

// Diff compares desired menu ids with the persisted records of roleID.
func Diff(roleID int64, desired []int64, persisted []Assignment) Plan {
	current := make(map[int64]struct{})
	for _, id := range AssignedTo(roleID, persisted) {
		current[id] = struct{}{}
	}
	want := make(map[int64]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}

	p := Plan{RoleID: roleID}
	for id := range want {
		if _, ok := current[id]; !ok {
			p.Grant = append(p.Grant, id)
		}
	}
	for id := range current {
		if _, ok := want[id]; !ok {
			p.Revoke = append(p.Revoke, id)
		}
	}
	slices.Sort(p.Grant)
	slices.Sort(p.Revoke)
	return p
}
