package adminsdk

import (
	"context"
	"net/http"
	"slices"

	"github.com/aussiebroadwan/clinicadmin/pkg/navguard"
)

// Me fetches the caller's profile and refreshes the scopes and granted
// paths kept by the session.
func (s *Session) Me(ctx context.Context) (*UserInfo, error) {
	var me UserInfo
	if err := s.do(ctx, http.MethodGet, "/v1/me", nil, &me, http.StatusOK); err != nil {
		return nil, err
	}
	s.setUser(me)
	return &me, nil
}

// ChangePassword replaces the caller's password.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	req := ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	return s.do(ctx, http.MethodPost, "/v1/me/password", req, nil, http.StatusOK)
}

// NavSession converts the session for a navguard.SessionContext.
func (s *Session) NavSession() navguard.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return navguard.Session{
		Username:     s.user.Username,
		RoleID:       s.user.RoleID,
		AccessToken:  s.accessToken,
		ExpiresAt:    s.expiresAt,
		Scopes:       slices.Clone(s.user.Scopes),
		GrantedPaths: slices.Clone(s.user.GrantedPaths),
	}
}
