package adminsdk

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/clinicadmin/pkg/navguard"
)

// Login exchanges a username and password for a Session.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var login LoginResponse
	if err := decodeEnvelope(resp, &login, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSession(login.AccessToken, login.ExpiresAt, login.User), nil
}

// NewSession restores a session from a token obtained earlier, e.g. one
// kept on disk between CLI invocations.
func (c *SDKClient) NewSession(accessToken string, expiresAt time.Time, user UserInfo) *Session {
	s := &Session{
		client:      c,
		accessToken: accessToken,
		expiresAt:   expiresAt,
	}
	s.setUser(user)
	return s
}

// ResumeSession rebuilds a session from one persisted by NavSession. Call Me
// to fill in the rest of the profile.
func (c *SDKClient) ResumeSession(ns navguard.Session) *Session {
	return c.NewSession(ns.AccessToken, ns.ExpiresAt, UserInfo{
		Username:     ns.Username,
		RoleID:       ns.RoleID,
		Scopes:       ns.Scopes,
		GrantedPaths: ns.GrantedPaths,
	})
}
