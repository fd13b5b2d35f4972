package domain

import (
	"time"

	"github.com/aussiebroadwan/clinicadmin/pkg/menutree"
)

// Menu is one navigation entry. ParentID is nil for top-level menus. Path
// is empty for pure grouping nodes.
type Menu struct {
	ID        int64
	ParentID  *int64
	Title     string
	Path      string
	OrderNum  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item converts m for the tree builder.
func (m Menu) Item() menutree.Item {
	return menutree.Item{
		ID:       m.ID,
		ParentID: m.ParentID,
		Title:    m.Title,
		Path:     m.Path,
		OrderNum: m.OrderNum,
		IsActive: m.IsActive,
	}
}

// MenuItems converts menus for the tree builder, keeping their order.
func MenuItems(menus []Menu) []menutree.Item {
	items := make([]menutree.Item, len(menus))
	for i, m := range menus {
		items[i] = m.Item()
	}
	return items
}

// MenuRole grants a menu to a role.
type MenuRole struct {
	RoleID    int64
	MenuID    int64
	CreatedAt time.Time
}
