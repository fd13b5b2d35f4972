package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/service"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/pkg/httpx"
	"github.com/aussiebroadwan/clinicadmin/pkg/slogx"
)

// errorMappings turns service and store errors into envelope errors. The
// first match wins.
var errorMappings = []struct {
	err    error
	status int
	code   string
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, httpx.CodeUnauthorized},
	{service.ErrParentNotFound, http.StatusBadRequest, httpx.CodeValidation},
	{service.ErrBlankMenuTitle, http.StatusBadRequest, httpx.CodeValidation},
	{service.ErrBlankRoleName, http.StatusBadRequest, httpx.CodeValidation},
	{service.ErrMenuCycle, http.StatusConflict, httpx.CodeConflict},
	{service.ErrMenuHasChildren, http.StatusConflict, httpx.CodeConflict},
	{service.ErrRoleInUse, http.StatusConflict, httpx.CodeConflict},
	{store.ErrAlreadyExists, http.StatusConflict, httpx.CodeConflict},
	{store.ErrReferenced, http.StatusConflict, httpx.CodeConflict},
	{store.ErrNotFound, http.StatusNotFound, httpx.CodeNotFound},
}

// writeServiceError writes the envelope for err. Unmapped errors are logged
// and answered with a 500 carrying fallback instead of the error text.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			httpx.WriteError(w, m.status, m.code, err.Error())
			return
		}
	}
	slogx.FromContext(r.Context()).Error(fallback, slog.Any("error", err))
	httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, fallback)
}

// pathID parses a positive integer path value.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// bind decodes and validates a JSON body, writing the error response itself.
func bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	return httpx.DecodeJSON(w, r, dst)
}
