package adminsdk

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Session is an authenticated session holding one bearer token.
type Session struct {
	client *SDKClient

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	user        UserInfo
	scopes      map[string]bool // for fast lookup
}

func (s *Session) setUser(u UserInfo) {
	scopes := make(map[string]bool, len(u.Scopes))
	for _, sc := range u.Scopes {
		scopes[sc] = true
	}
	s.mu.Lock()
	s.user = u
	s.scopes = scopes
	s.mu.Unlock()
}

// AccessToken returns the bearer token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// ExpiresAt returns when the token stops being accepted.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// User returns the profile captured at login or by the last Me call.
func (s *Session) User() UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u := s.user
	u.Scopes = slices.Clone(u.Scopes)
	u.GrantedPaths = slices.Clone(u.GrantedPaths)
	return u
}

// Scopes returns the granted scopes, sorted.
func (s *Session) Scopes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scopes := make([]string, 0, len(s.scopes))
	for scope := range s.scopes {
		scopes = append(scopes, scope)
	}
	slices.Sort(scopes)
	return scopes
}

// HasScope returns true if the session has the specified scope.
func (s *Session) HasScope(scope string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scopes[scope]
}

// HasAllScopes returns true if the session has all of the specified scopes.
func (s *Session) HasAllScopes(scopes ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, scope := range scopes {
		if !s.scopes[scope] {
			return false
		}
	}
	return true
}

// checkScopes checks if the session has all required scopes.
func (s *Session) checkScopes(required ...string) error {
	if !s.client.CheckScopes || len(required) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []string
	for _, scope := range required {
		if !s.scopes[scope] {
			missing = append(missing, scope)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingScope, strings.Join(missing, ", "))
	}
	return nil
}

func (s *Session) validToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.expiresAt.IsZero() && !time.Now().Before(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.accessToken, nil
}

// do performs an authenticated call and decodes its envelope into target.
func (s *Session) do(
	ctx context.Context,
	method, path string,
	body, target any,
	expectedStatus int,
	requiredScopes ...string,
) error {
	if err := s.checkScopes(requiredScopes...); err != nil {
		return err
	}
	token, err := s.validToken()
	if err != nil {
		return err
	}

	resp, err := s.client.doRequest(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, target, expectedStatus)
}
