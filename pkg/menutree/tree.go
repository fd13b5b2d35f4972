// Package menutree turns flat menu records into a forest.
//
// A Forest is an arena of nodes keyed by id plus a parent to children index.
// It is immutable once built: when the flat list changes, build a new one.
//
// Records whose parent id does not match any record are excluded together
// with their subtree. Nodes on a parent cycle can never be reached from a
// root, so they are excluded the same way and no traversal can loop.
package menutree

import (
	"cmp"
	"slices"
)

// Item is one flat menu record as stored or fetched.
type Item struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parentId"`
	Title    string `json:"title"`
	Path     string `json:"path"`
	OrderNum int    `json:"orderNum"`
	IsActive bool   `json:"isActive"`
}

// Node is an arena entry. Children are resolved through the Forest.
type Node struct {
	Item

	// Depth is 0 for roots.
	Depth int
}

// TreeNode is a materialized node with nested children, ready for rendering
// or JSON encoding.
type TreeNode struct {
	Item

	Children   []*TreeNode `json:"children"`
	IsExpanded bool        `json:"isExpanded"`
}

// Forest is the built, read-only view over a flat menu list.
type Forest struct {
	nodes    map[int64]Node
	parent   map[int64]int64
	children map[int64][]int64
	roots    []int64
	order    []int64 // pre-order
}

// Build creates a Forest from items. Siblings are ordered by OrderNum
// ascending; ties keep their relative order from items.
func Build(items []Item) *Forest {
	// Index every record by id and collect sibling lists in input order.
	byID := make(map[int64]Item, len(items))
	kids := make(map[int64][]int64, len(items))
	var roots []int64

	for _, it := range items {
		if _, dup := byID[it.ID]; dup {
			// First record wins, duplicates would give a node two positions.
			continue
		}
		byID[it.ID] = it
		if it.ParentID == nil {
			roots = append(roots, it.ID)
		} else {
			kids[*it.ParentID] = append(kids[*it.ParentID], it.ID)
		}
	}

	bySiblingOrder := func(a, b int64) int {
		return cmp.Compare(byID[a].OrderNum, byID[b].OrderNum)
	}
	slices.SortStableFunc(roots, bySiblingOrder)
	for pid := range kids {
		slices.SortStableFunc(kids[pid], bySiblingOrder)
	}

	f := &Forest{
		nodes:    make(map[int64]Node, len(byID)),
		parent:   make(map[int64]int64, len(byID)),
		children: make(map[int64][]int64, len(kids)),
		roots:    roots,
		order:    make([]int64, 0, len(byID)),
	}

	// Walk from the roots only. Anything not reached is an orphan or sits
	// on a cycle and stays out of the arena.
	type frame struct {
		id    int64
		depth int
	}
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{id: roots[i]})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		f.nodes[top.id] = Node{Item: byID[top.id], Depth: top.depth}
		f.order = append(f.order, top.id)

		cs := kids[top.id]
		if len(cs) == 0 {
			continue
		}
		f.children[top.id] = cs
		for i := len(cs) - 1; i >= 0; i-- {
			f.parent[cs[i]] = top.id
			stack = append(stack, frame{id: cs[i], depth: top.depth + 1})
		}
	}

	return f
}

// Len returns the number of nodes reachable from a root.
func (f *Forest) Len() int { return len(f.order) }

// Contains reports whether id is part of the forest.
func (f *Forest) Contains(id int64) bool {
	_, ok := f.nodes[id]
	return ok
}

// Node returns the arena entry for id.
func (f *Forest) Node(id int64) (Node, bool) {
	n, ok := f.nodes[id]
	return n, ok
}

// Roots returns the root ids in sibling order.
func (f *Forest) Roots() []int64 { return slices.Clone(f.roots) }

// Children returns the direct children of id in sibling order.
func (f *Forest) Children(id int64) []int64 { return slices.Clone(f.children[id]) }

// Parent returns the parent of id. Roots and unknown ids report false.
func (f *Forest) Parent(id int64) (int64, bool) {
	p, ok := f.parent[id]
	return p, ok
}

// IDs returns every id in pre-order.
func (f *Forest) IDs() []int64 { return slices.Clone(f.order) }

// Descendants returns the ids below id in pre-order, excluding id itself.
func (f *Forest) Descendants(id int64) []int64 {
	var out []int64
	stack := slices.Clone(f.children[id])
	slices.Reverse(stack)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, top)

		cs := f.children[top]
		for i := len(cs) - 1; i >= 0; i-- {
			stack = append(stack, cs[i])
		}
	}
	return out
}

// Tree materializes the forest into nested nodes, all expanded.
func (f *Forest) Tree() []*TreeNode {
	out := make([]*TreeNode, 0, len(f.roots))
	for _, id := range f.roots {
		out = append(out, f.materialize(id))
	}
	return out
}

func (f *Forest) materialize(id int64) *TreeNode {
	n := &TreeNode{
		Item:       f.nodes[id].Item,
		Children:   make([]*TreeNode, 0, len(f.children[id])),
		IsExpanded: true,
	}
	for _, c := range f.children[id] {
		n.Children = append(n.Children, f.materialize(c))
	}
	return n
}

// Unreachable returns the subset of ids that are not in the forest.
func (f *Forest) Unreachable(ids []int64) []int64 {
	var out []int64
	for _, id := range ids {
		if !f.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}
