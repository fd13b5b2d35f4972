package http

import (
	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/service"
	"github.com/aussiebroadwan/clinicadmin/pkg/adminsdk"
)

func toRole(r domain.Role) adminsdk.Role {
	scopes := r.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	return adminsdk.Role{ID: r.ID, Name: r.Name, Scopes: scopes, CreatedAt: r.CreatedAt}
}

func toMenu(m domain.Menu) adminsdk.Menu {
	return adminsdk.Menu{
		ID:       m.ID,
		ParentID: m.ParentID,
		Title:    m.Title,
		Path:     m.Path,
		OrderNum: m.OrderNum,
		IsActive: m.IsActive,
	}
}

func toMenuInput(req adminsdk.MenuRequest) service.MenuInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return service.MenuInput{
		ParentID: req.ParentID,
		Title:    req.Title,
		Path:     req.Path,
		OrderNum: req.OrderNum,
		IsActive: active,
	}
}

func toUserInfo(p service.Profile) adminsdk.UserInfo {
	scopes := p.Role.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	paths := p.GrantedPaths
	if paths == nil {
		paths = []string{}
	}
	return adminsdk.UserInfo{
		ID:            p.User.ID,
		Username:      p.User.Username,
		PreferredName: p.User.PreferredName,
		RoleID:        p.Role.ID,
		RoleName:      p.Role.Name,
		Scopes:        scopes,
		GrantedPaths:  paths,
	}
}
