package navguard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// ErrNoSession is returned when no one is logged in.
var ErrNoSession = errors.New("navguard: no session")

// Session is what a login leaves behind on the client.
type Session struct {
	Username     string    `json:"username"`
	RoleID       int64     `json:"roleId"`
	AccessToken  string    `json:"accessToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Scopes       []string  `json:"scopes"`
	GrantedPaths []string  `json:"grantedPaths"`
}

// Expired reports whether the access token has expired at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store persists the current session. Load returns ErrNoSession when there
// is nothing stored.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// SessionContext holds the current session: loaded on start, replaced on
// login, dropped on logout.
type SessionContext struct {
	store Store
	now   func() time.Time

	mu      sync.RWMutex
	current *Session
}

// NewSessionContext returns an empty context backed by store.
func NewSessionContext(store Store) *SessionContext {
	return &SessionContext{store: store, now: time.Now}
}

// Load restores the stored session. An expired session is cleared and
// reported as ErrNoSession.
func (c *SessionContext) Load(ctx context.Context) error {
	s, err := c.store.Load(ctx)
	if err != nil {
		c.set(nil)
		return err
	}
	if s.Expired(c.now()) {
		c.set(nil)
		_ = c.store.Clear(ctx)
		return ErrNoSession
	}
	c.set(&s)
	return nil
}

// Login stores s and makes it current.
func (c *SessionContext) Login(ctx context.Context, s Session) error {
	if err := c.store.Save(ctx, s); err != nil {
		return fmt.Errorf("navguard: save session: %w", err)
	}
	c.set(&s)
	return nil
}

// Logout forgets the current session.
func (c *SessionContext) Logout(ctx context.Context) error {
	c.set(nil)
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("navguard: clear session: %w", err)
	}
	return nil
}

// Current returns a copy of the current session.
func (c *SessionContext) Current() (Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return Session{}, ErrNoSession
	}
	s := *c.current
	s.Scopes = slices.Clone(s.Scopes)
	s.GrantedPaths = slices.Clone(s.GrantedPaths)
	return s, nil
}

// Allowed applies the route guard to the current session. Without a
// session nothing is allowed.
func (c *SessionContext) Allowed(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil || c.current.Expired(c.now()) {
		return false
	}
	return Allowed(path, c.current.GrantedPaths)
}

func (c *SessionContext) set(s *Session) {
	c.mu.Lock()
	c.current = s
	c.mu.Unlock()
}

// FileStore keeps the session as JSON in a single file.
type FileStore struct {
	Path string
}

// Load reads the session file.
func (f FileStore) Load(_ context.Context) (Session, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("navguard: read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, fmt.Errorf("navguard: decode session: %w", err)
	}
	return s, nil
}

// Save writes the session file with owner-only permissions.
func (f FileStore) Save(_ context.Context, s Session) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

// Clear removes the session file. A missing file is not an error.
func (f FileStore) Clear(_ context.Context) error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
