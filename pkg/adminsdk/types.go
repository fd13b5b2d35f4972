package adminsdk

import (
	"time"

	"github.com/aussiebroadwan/clinicadmin/pkg/menutree"
)

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz. It is not enveloped.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// ============================================================================
// Auth Types
// ============================================================================

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginResponse carries a bearer token and what it grants.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresIn   int       `json:"expiresIn"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        UserInfo  `json:"user"`
}

// UserInfo is the caller's profile as returned by login and GET /v1/me.
type UserInfo struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	PreferredName string   `json:"preferredName"`
	RoleID        int64    `json:"roleId"`
	RoleName      string   `json:"roleName"`
	Scopes        []string `json:"scopes"`
	GrantedPaths  []string `json:"grantedPaths"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,max=128"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128,nefield=CurrentPassword"`
}

// ============================================================================
// Role Types
// ============================================================================

type Role struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Scopes    []string  `json:"scopes"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateRoleRequest struct {
	Name   string   `json:"name" validate:"required,notblank,min=2,max=64"`
	Scopes []string `json:"scopes" validate:"omitempty,dive,required,max=64"`
}

// ============================================================================
// Menu Types
// ============================================================================

// Menu is one flat menu record.
type Menu struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parentId"`
	Title    string `json:"title"`
	Path     string `json:"path"`
	OrderNum int    `json:"orderNum"`
	IsActive bool   `json:"isActive"`
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

// MenuTreeNode is one node of GET /v1/menus/tree.
type MenuTreeNode = menutree.TreeNode

// MenuRequest creates or replaces a menu. IsActive defaults to true.
type MenuRequest struct {
	ParentID *int64 `json:"parentId" validate:"omitempty,gt=0"`
	Title    string `json:"title" validate:"required,notblank,max=100"`
	Path     string `json:"path" validate:"omitempty,startswith=/,max=255"`
	OrderNum int    `json:"orderNum" validate:"gte=0"`
	IsActive *bool  `json:"isActive"`
}

// ============================================================================
// Menu Role Types
// ============================================================================

// MenuRole grants a menu to a role.
type MenuRole struct {
	RoleID int64 `json:"roleId"`
	MenuID int64 `json:"menuId"`
}

type AssignMenuRequest struct {
	RoleID int64 `json:"roleId" validate:"required,gt=0"`
	MenuID int64 `json:"menuId" validate:"required,gt=0"`
}
