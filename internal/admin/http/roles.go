package http

import (
	"net/http"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/service"
	"github.com/aussiebroadwan/clinicadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/clinicadmin/pkg/httpx"
)

// RolesHandler handles role management endpoints.
type RolesHandler struct {
	RolesService *service.RolesService
}

// HandleList handles GET /v1/roles
//
//	@Summary		List roles
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	httpx.Envelope{data=[]adminsdk.Role}
//	@Failure		401	{object}	httpx.Envelope
//	@Failure		403	{object}	httpx.Envelope
//	@Router			/v1/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RolesService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list roles")
		return
	}

	out := make([]adminsdk.Role, len(roles))
	for i, role := range roles {
		out[i] = toRole(role)
	}
	httpx.WriteData(w, http.StatusOK, "", out)
}

// HandleCreate handles POST /v1/roles
//
//	@Summary		Create role
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		adminsdk.CreateRoleRequest	true	"Role"
//	@Success		201		{object}	httpx.Envelope{data=adminsdk.Role}
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		409		{object}	httpx.Envelope	"name taken"
//	@Router			/v1/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.CreateRoleRequest
	if !bind(w, r, &req) {
		return
	}

	role, err := h.RolesService.CreateRole(r.Context(), req.Name, req.Scopes)
	if err != nil {
		writeServiceError(w, r, err, "failed to create role")
		return
	}
	httpx.WriteData(w, http.StatusCreated, "role created", toRole(role))
}

// HandleDelete handles DELETE /v1/roles/{id}
//
//	@Summary		Delete role
//	@Description	Deletes a role and its menu grants. Roles still held by a user are refused.
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Role ID"
//	@Success		200	{object}	httpx.Envelope
//	@Failure		404	{object}	httpx.Envelope
//	@Failure		409	{object}	httpx.Envelope	"role in use"
//	@Router			/v1/roles/{id} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.RolesService.DeleteRole(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "failed to delete role")
		return
	}
	httpx.WriteData(w, http.StatusOK, "role deleted", nil)
}
