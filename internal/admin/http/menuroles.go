package http

import (
	"net/http"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/service"
	"github.com/aussiebroadwan/clinicadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/clinicadmin/pkg/httpx"
)

// MenuRolesHandler handles the menu permission endpoints used by the editor.
type MenuRolesHandler struct {
	MenuRolesService *service.MenuRolesService
}

// HandleList handles GET /v1/menuroles
//
//	@Summary		List grants
//	@Description	Returns every role/menu grant ordered by role then menu.
//	@Tags			MenuRoles
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	httpx.Envelope{data=[]adminsdk.MenuRole}
//	@Router			/v1/menuroles [get].
func (h *MenuRolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	grants, err := h.MenuRolesService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list grants")
		return
	}

	out := make([]adminsdk.MenuRole, len(grants))
	for i, g := range grants {
		out[i] = adminsdk.MenuRole{RoleID: g.RoleID, MenuID: g.MenuID}
	}
	httpx.WriteData(w, http.StatusOK, "", out)
}

// HandleAssign handles POST /v1/menuroles/assign
//
//	@Summary		Grant menu
//	@Description	Grants one menu to one role. Granting twice succeeds.
//	@Tags			MenuRoles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		adminsdk.AssignMenuRequest	true	"Grant"
//	@Success		200		{object}	httpx.Envelope
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		404		{object}	httpx.Envelope	"role or menu missing"
//	@Router			/v1/menuroles/assign [post].
func (h *MenuRolesHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.AssignMenuRequest
	if !bind(w, r, &req) {
		return
	}

	if err := h.MenuRolesService.Assign(r.Context(), req.RoleID, req.MenuID); err != nil {
		writeServiceError(w, r, err, "failed to grant menu")
		return
	}
	httpx.WriteData(w, http.StatusOK, "menu granted", nil)
}

// HandleRemove handles DELETE /v1/menuroles/remove/{menuId}/{roleId}
//
//	@Summary		Revoke menu
//	@Description	Revokes one menu from one role. Revoking a missing grant succeeds.
//	@Tags			MenuRoles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			menuId	path		int	true	"Menu ID"
//	@Param			roleId	path		int	true	"Role ID"
//	@Success		200		{object}	httpx.Envelope
//	@Failure		400		{object}	httpx.Envelope
//	@Router			/v1/menuroles/remove/{menuId}/{roleId} [delete].
func (h *MenuRolesHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	menuID, ok := pathID(w, r, "menuId")
	if !ok {
		return
	}
	roleID, ok := pathID(w, r, "roleId")
	if !ok {
		return
	}

	if err := h.MenuRolesService.Remove(r.Context(), roleID, menuID); err != nil {
		writeServiceError(w, r, err, "failed to revoke menu")
		return
	}
	httpx.WriteData(w, http.StatusOK, "menu revoked", nil)
}
