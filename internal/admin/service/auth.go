package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/metrics"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/pkg/cryptox"
	"github.com/aussiebroadwan/clinicadmin/pkg/idx"
	"github.com/aussiebroadwan/clinicadmin/pkg/jwtx"
	"github.com/aussiebroadwan/clinicadmin/pkg/slogx"
)

// AuthService logs users in and issues their access tokens.
type AuthService struct {
	Store     store.Store
	Hasher    *cryptox.Hasher
	Signer    jwtx.Signer
	Issuer    string
	Audience  []string
	AccessTTL time.Duration
	Metrics   *metrics.Metrics

	// Now defaults to time.Now.
	Now func() time.Time
}

// LoginResult is a freshly issued session.
type LoginResult struct {
	AccessToken  string
	ExpiresAt    time.Time
	User         domain.User
	Role         domain.Role
	GrantedPaths []string
}

// Profile is what a bearer learns about itself.
type Profile struct {
	User         domain.User
	Role         domain.Role
	GrantedPaths []string
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks username and password and issues an access token carrying
// the scopes of the user's role. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		s.Metrics.RecordLogin(metrics.LoginInvalid)
		l.Warn("login for unknown user", slog.String("username", username))
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		s.Metrics.RecordLogin(metrics.LoginError)
		return LoginResult{}, err
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			s.Metrics.RecordLogin(metrics.LoginInvalid)
			l.Warn("login with wrong password", slog.String("user_id", user.ID))
			return LoginResult{}, ErrInvalidCredentials
		}
		s.Metrics.RecordLogin(metrics.LoginError)
		l.Error("stored password hash unusable", slog.String("user_id", user.ID), slog.Any("error", err))
		return LoginResult{}, err
	}

	profile, err := s.profile(ctx, user)
	if err != nil {
		s.Metrics.RecordLogin(metrics.LoginError)
		return LoginResult{}, err
	}

	claims := jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject:  user.ID,
		SID:      idx.New().String(),
		Username: user.Username,
		RoleID:   profile.Role.ID,
		Scopes:   profile.Role.Scopes,
		Issuer:   s.Issuer,
		Audience: s.Audience,
		TTL:      s.AccessTTL,
		Now:      s.now(),
	})
	token, err := s.Signer.Sign(claims)
	if err != nil {
		s.Metrics.RecordLogin(metrics.LoginError)
		l.Error("failed to sign access token", slog.Any("error", err))
		return LoginResult{}, err
	}

	s.Metrics.RecordLogin(metrics.LoginSuccess)
	l.Info("user logged in", slog.String("user_id", user.ID), slog.Int64("role_id", profile.Role.ID))

	return LoginResult{
		AccessToken:  token,
		ExpiresAt:    claims.ExpiresAt.Time,
		User:         user,
		Role:         profile.Role,
		GrantedPaths: profile.GrantedPaths,
	}, nil
}

// Me returns the profile of userID with its current grants.
func (s *AuthService) Me(ctx context.Context, userID string) (Profile, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return s.profile(ctx, user)
}

// ChangePassword replaces the password of userID after checking the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Hasher.Verify(current, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}
		return err
	}
	hash, err := s.Hasher.Hash(next)
	if err != nil {
		return err
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("password changed", slog.String("user_id", userID))
	return nil
}

func (s *AuthService) profile(ctx context.Context, user domain.User) (Profile, error) {
	role, err := s.Store.Roles().GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return Profile{}, err
	}
	paths, err := s.Store.MenuRoles().ListPathsByRole(ctx, role.ID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: user, Role: role, GrantedPaths: paths}, nil
}
