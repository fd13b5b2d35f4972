package menutree_test

import (
	"math"
	"slices"
	"testing"

	"github.com/aussiebroadwan/clinicadmin/pkg/menutree"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func ptr(v int64) *int64 { return &v }

func TestBuild_SiblingOrdering(t *testing.T) {
	f := menutree.Build([]menutree.Item{
		{ID: 1, OrderNum: 2},
		{ID: 2, OrderNum: 1},
	})

	require.Equal(t, []int64{2, 1}, f.Roots())
}

func TestBuild_SiblingOrderingExtremes(t *testing.T) {
	f := menutree.Build([]menutree.Item{
		{ID: 1, OrderNum: math.MaxInt},
		{ID: 2, OrderNum: -10},
		{ID: 3, OrderNum: math.MinInt},
		{ID: 4, OrderNum: 0},
	})

	require.Equal(t, []int64{3, 2, 4, 1}, f.Roots())
}

func TestBuild_StableTies(t *testing.T) {
	f := menutree.Build([]menutree.Item{
		{ID: 10, OrderNum: 1},
		{ID: 3, OrderNum: 0},
		{ID: 7, OrderNum: 1},
		{ID: 4, OrderNum: 1},
	})

	require.Equal(t, []int64{3, 10, 7, 4}, f.Roots())
}

func TestBuild_OrphanExcluded(t *testing.T) {
	f := menutree.Build([]menutree.Item{
		{ID: 1, ParentID: ptr(99)},
	})

	require.Equal(t, 0, f.Len())
	require.Empty(t, f.Roots())
	require.False(t, f.Contains(1))
}

func TestBuild_OrphanSubtreeExcluded(t *testing.T) {
	f := menutree.Build([]menutree.Item{
		{ID: 1},
		{ID: 2, ParentID: ptr(99)},
		{ID: 3, ParentID: ptr(2)},
	})

	require.Equal(t, []int64{1}, f.IDs())
	require.Equal(t, []int64{2, 3}, f.Unreachable([]int64{1, 2, 3}))
}

func TestBuild_CycleExcluded(t *testing.T) {
	f := menutree.Build([]menutree.Item{
		{ID: 1},
		{ID: 2, ParentID: ptr(3)},
		{ID: 3, ParentID: ptr(2)},
		{ID: 4, ParentID: ptr(4)},
	})

	require.Equal(t, []int64{1}, f.IDs())
}

func TestBuild_Structure(t *testing.T) {
	// Dashboard
	// Inventory -> [Batches, Medicines -> [Suppliers]]
	f := menutree.Build([]menutree.Item{
		{ID: 1, Title: "Dashboard", Path: "/", OrderNum: 0},
		{ID: 2, Title: "Inventory", OrderNum: 1},
		{ID: 3, Title: "Medicines", Path: "/medicines", ParentID: ptr(2), OrderNum: 0},
		{ID: 4, Title: "Batches", Path: "/batches", ParentID: ptr(2), OrderNum: -1},
		{ID: 5, Title: "Suppliers", Path: "/suppliers", ParentID: ptr(3)},
	})

	require.Equal(t, 5, f.Len())
	require.Equal(t, []int64{1, 2, 4, 3, 5}, f.IDs())
	require.Equal(t, []int64{4, 3}, f.Children(2))
	require.Equal(t, []int64{4, 3, 5}, f.Descendants(2))
	require.Empty(t, f.Descendants(5))

	p, ok := f.Parent(5)
	require.True(t, ok)
	require.EqualValues(t, 3, p)

	_, ok = f.Parent(1)
	require.False(t, ok)

	n, ok := f.Node(5)
	require.True(t, ok)
	require.Equal(t, 2, n.Depth)

	tree := f.Tree()
	require.Len(t, tree, 2)
	require.True(t, tree[1].IsExpanded)
	require.Equal(t, "Batches", tree[1].Children[0].Title)
	require.Equal(t, "Suppliers", tree[1].Children[1].Children[0].Title)
	require.True(t, tree[1].Children[1].Children[0].IsExpanded)
	require.Empty(t, tree[0].Children)
}

func TestBuild_InactiveNodesKept(t *testing.T) {
	f := menutree.Build([]menutree.Item{
		{ID: 1, IsActive: false},
		{ID: 2, ParentID: ptr(1), IsActive: true},
	})

	require.Equal(t, []int64{1, 2}, f.IDs())
}

// genItems draws a flat list with unique ids where parents may point at
// other ids, missing ids, or form cycles.
func genItems(t *rapid.T) []menutree.Item {
	n := rapid.IntRange(0, 40).Draw(t, "n")
	items := make([]menutree.Item, 0, n)
	for i := range n {
		it := menutree.Item{
			ID:       int64(i + 1),
			OrderNum: rapid.OneOf(
				rapid.IntRange(0, 5),
				rapid.SampledFrom([]int{math.MinInt, -10, math.MaxInt - 1, math.MaxInt}),
			).Draw(t, "order"),
		}
		if rapid.Bool().Draw(t, "hasParent") {
			p := rapid.Int64Range(1, int64(n)+3).Draw(t, "parent")
			it.ParentID = &p
		}
		items = append(items, it)
	}
	return items
}

func TestBuild_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := genItems(t)

		a := menutree.Build(items)
		b := menutree.Build(items)

		if !slices.Equal(a.IDs(), b.IDs()) {
			t.Fatalf("pre-order differs: %v vs %v", a.IDs(), b.IDs())
		}
		for _, id := range a.IDs() {
			if !slices.Equal(a.Children(id), b.Children(id)) {
				t.Fatalf("children of %d differ", id)
			}
		}
	})
}

func TestBuild_ChildrenInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := genItems(t)
		f := menutree.Build(items)

		seen := make(map[int64]bool)
		for _, id := range f.IDs() {
			if seen[id] {
				t.Fatalf("id %d visited twice", id)
			}
			seen[id] = true

			kids := f.Children(id)
			for i, c := range kids {
				n, _ := f.Node(c)
				if n.ParentID == nil || *n.ParentID != id {
					t.Fatalf("child %d does not point at %d", c, id)
				}
				if i > 0 {
					prev, _ := f.Node(kids[i-1])
					if prev.OrderNum > n.OrderNum {
						t.Fatalf("children of %d not sorted", id)
					}
				}
			}
		}

		roots := f.Roots()
		for i := 1; i < len(roots); i++ {
			prev, _ := f.Node(roots[i-1])
			cur, _ := f.Node(roots[i])
			if prev.OrderNum > cur.OrderNum {
				t.Fatalf("roots not sorted: %d before %d", prev.OrderNum, cur.OrderNum)
			}
		}

		// Every node with a nil parent is a root and is always present.
		for _, it := range items {
			if it.ParentID == nil && !f.Contains(it.ID) {
				t.Fatalf("root %d missing", it.ID)
			}
		}
	})
}
