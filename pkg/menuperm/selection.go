package menuperm

import (
	"slices"

	"github.com/aussiebroadwan/clinicadmin/pkg/menutree"
)

// CheckState is how a node should be drawn. Indeterminate is presentation
// only and never changes the selection.
type CheckState struct {
	Checked       bool
	Indeterminate bool
}

// Selection is the set of checked menu ids for one role against one forest.
// It is not safe for concurrent use; Editor guards it.
type Selection struct {
	forest  *menutree.Forest
	checked map[int64]struct{}
}

// NewSelection returns an empty selection over forest.
func NewSelection(forest *menutree.Forest) *Selection {
	return &Selection{
		forest:  forest,
		checked: make(map[int64]struct{}),
	}
}

// Reset replaces the selection with ids. Ids outside the forest are kept, so
// a save after toggles alone leaves grants on hidden menus untouched.
func (s *Selection) Reset(ids []int64) {
	s.checked = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s.checked[id] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() { s.checked = make(map[int64]struct{}) }

// Toggle flips id and its whole subtree, then re-evaluates the immediate
// parent only. It reports false and does nothing when id is not in the forest.
func (s *Selection) Toggle(id int64) bool {
	if !s.forest.Contains(id) {
		return false
	}

	subtree := append([]int64{id}, s.forest.Descendants(id)...)
	if s.IsChecked(id) {
		for _, d := range subtree {
			delete(s.checked, d)
		}
	} else {
		for _, d := range subtree {
			s.checked[d] = struct{}{}
		}
	}

	// One level up, the grandparent is left as is.
	parent, ok := s.forest.Parent(id)
	if !ok {
		return true
	}
	if s.allChildrenChecked(parent) {
		s.checked[parent] = struct{}{}
	} else {
		delete(s.checked, parent)
	}

	return true
}

// ToggleSelectAll selects every node in the forest, or clears the selection
// when every node is already selected.
func (s *Selection) ToggleSelectAll() {
	if s.AllSelected() {
		s.Clear()
		return
	}
	s.Reset(s.forest.IDs())
}

// AllSelected reports whether every forest node is checked. An empty forest
// is never fully selected.
func (s *Selection) AllSelected() bool {
	if s.forest.Len() == 0 {
		return false
	}
	selected, total := s.Counts()
	return selected == total
}

// Counts returns how many forest nodes are checked and how many exist.
func (s *Selection) Counts() (selected, total int) {
	for _, id := range s.forest.IDs() {
		if _, ok := s.checked[id]; ok {
			selected++
		}
	}
	return selected, s.forest.Len()
}

// IsChecked reports whether id is in the selection.
func (s *Selection) IsChecked(id int64) bool {
	_, ok := s.checked[id]
	return ok
}

// State derives the drawing state of id.
func (s *Selection) State(id int64) CheckState {
	st := CheckState{Checked: s.IsChecked(id)}

	kids := s.forest.Children(id)
	if len(kids) == 0 {
		return st
	}
	n := 0
	for _, c := range kids {
		if s.IsChecked(c) {
			n++
		}
	}
	st.Indeterminate = n > 0 && n < len(kids)
	return st
}

// IDs returns the checked ids sorted ascending.
func (s *Selection) IDs() []int64 {
	out := make([]int64, 0, len(s.checked))
	for id := range s.checked {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s *Selection) allChildrenChecked(id int64) bool {
	for _, c := range s.forest.Children(id) {
		if !s.IsChecked(c) {
			return false
		}
	}
	return true
}
