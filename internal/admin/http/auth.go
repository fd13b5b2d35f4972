package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/service"
	"github.com/aussiebroadwan/clinicadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/clinicadmin/pkg/httpx"
)

// AuthHandler handles login and the caller's own profile.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Log in
//	@Description	Exchanges a username and password for an EdDSA signed bearer token carrying the scopes of the user's role, together with the routes the role may open.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	httpx.Envelope{data=adminsdk.LoginResponse}
//	@Failure		400		{object}	httpx.Envelope	"malformed or invalid body"
//	@Failure		401		{object}	httpx.Envelope	"invalid credentials"
//	@Failure		429		{object}	httpx.Envelope	"rate limited"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.LoginRequest
	if !bind(w, r, &req) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "login failed")
		return
	}

	httpx.WriteData(w, http.StatusOK, "logged in", adminsdk.LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(res.ExpiresAt).Seconds()),
		ExpiresAt:   res.ExpiresAt,
		User: toUserInfo(service.Profile{
			User:         res.User,
			Role:         res.Role,
			GrantedPaths: res.GrantedPaths,
		}),
	})
}

// HandleMe handles GET /v1/me
//
//	@Summary		Current user
//	@Description	Returns the caller's profile with the current scopes and granted paths of its role.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	httpx.Envelope{data=adminsdk.UserInfo}
//	@Failure		401	{object}	httpx.Envelope
//	@Failure		404	{object}	httpx.Envelope	"user no longer exists"
//	@Router			/v1/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "missing claims")
		return
	}

	profile, err := h.AuthService.Me(r.Context(), claims.Subject)
	if err != nil {
		writeServiceError(w, r, err, "failed to load profile")
		return
	}
	httpx.WriteData(w, http.StatusOK, "", toUserInfo(profile))
}

// HandleChangePassword handles POST /v1/me/password
//
//	@Summary		Change password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		adminsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	httpx.Envelope
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		401		{object}	httpx.Envelope	"missing token or wrong current password"
//	@Router			/v1/me/password [post].
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "missing claims")
		return
	}

	var req adminsdk.ChangePasswordRequest
	if !bind(w, r, &req) {
		return
	}

	if err := h.AuthService.ChangePassword(r.Context(), claims.Subject, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err, "failed to change password")
		return
	}
	httpx.WriteData(w, http.StatusOK, "password changed", nil)
}
