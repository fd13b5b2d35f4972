package http

import (
	"net/http"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/service"
	"github.com/aussiebroadwan/clinicadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/clinicadmin/pkg/httpx"
)

// MenusHandler handles menu management endpoints.
type MenusHandler struct {
	MenusService *service.MenusService
}

// HandleList handles GET /v1/menus
//
//	@Summary		List menus
//	@Description	Returns the flat menu list ordered by id, including orphans and inactive menus.
//	@Tags			Menus
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	httpx.Envelope{data=[]adminsdk.Menu}
//	@Router			/v1/menus [get].
func (h *MenusHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	menus, err := h.MenusService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list menus")
		return
	}

	out := make([]adminsdk.Menu, len(menus))
	for i, m := range menus {
		out[i] = toMenu(m)
	}
	httpx.WriteData(w, http.StatusOK, "", out)
}

// HandleTree handles GET /v1/menus/tree
//
//	@Summary		Menu tree
//	@Description	Returns the menu forest. Siblings are ordered by orderNum then id; menus that cannot be reached from a root are left out.
//	@Tags			Menus
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	httpx.Envelope{data=[]adminsdk.MenuTreeNode}
//	@Router			/v1/menus/tree [get].
func (h *MenusHandler) HandleTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.MenusService.Tree(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to build menu tree")
		return
	}
	httpx.WriteData(w, http.StatusOK, "", tree)
}

// HandleCreate handles POST /v1/menus
//
//	@Summary		Create menu
//	@Tags			Menus
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		adminsdk.MenuRequest	true	"Menu"
//	@Success		201		{object}	httpx.Envelope{data=adminsdk.Menu}
//	@Failure		400		{object}	httpx.Envelope	"invalid body or unknown parent"
//	@Router			/v1/menus [post].
func (h *MenusHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.MenuRequest
	if !bind(w, r, &req) {
		return
	}

	menu, err := h.MenusService.CreateMenu(r.Context(), toMenuInput(req))
	if err != nil {
		writeServiceError(w, r, err, "failed to create menu")
		return
	}
	httpx.WriteData(w, http.StatusCreated, "menu created", toMenu(menu))
}

// HandleUpdate handles PUT /v1/menus/{id}
//
//	@Summary		Replace menu
//	@Tags			Menus
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int						true	"Menu ID"
//	@Param			request	body		adminsdk.MenuRequest	true	"Menu"
//	@Success		200		{object}	httpx.Envelope{data=adminsdk.Menu}
//	@Failure		400		{object}	httpx.Envelope	"invalid body or unknown parent"
//	@Failure		404		{object}	httpx.Envelope
//	@Failure		409		{object}	httpx.Envelope	"parent would create a cycle"
//	@Router			/v1/menus/{id} [put].
func (h *MenusHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req adminsdk.MenuRequest
	if !bind(w, r, &req) {
		return
	}

	menu, err := h.MenusService.UpdateMenu(r.Context(), id, toMenuInput(req))
	if err != nil {
		writeServiceError(w, r, err, "failed to update menu")
		return
	}
	httpx.WriteData(w, http.StatusOK, "menu updated", toMenu(menu))
}

// HandleDelete handles DELETE /v1/menus/{id}
//
//	@Summary		Delete menu
//	@Tags			Menus
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Menu ID"
//	@Success		200	{object}	httpx.Envelope
//	@Failure		404	{object}	httpx.Envelope
//	@Failure		409	{object}	httpx.Envelope	"menu has children"
//	@Router			/v1/menus/{id} [delete].
func (h *MenusHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.MenusService.DeleteMenu(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "failed to delete menu")
		return
	}
	httpx.WriteData(w, http.StatusOK, "menu deleted", nil)
}
