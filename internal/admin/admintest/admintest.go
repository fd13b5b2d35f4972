// Package admintest runs the admin HTTP API over a seeded in-memory store
// for tests of the API and of its clients.
package admintest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	adminhttp "github.com/aussiebroadwan/clinicadmin/internal/admin/http"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/metrics"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/service"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/clinicadmin/pkg/cryptox"
	"github.com/aussiebroadwan/clinicadmin/pkg/idx"
	"github.com/aussiebroadwan/clinicadmin/pkg/jwtx"
	"github.com/aussiebroadwan/clinicadmin/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const (
	Issuer   = "https://clinic.example.test"
	Audience = "clinic-admin"

	// AdminPassword is the password of the seeded "admin" user.
	AdminPassword = "admin-password"
)

// Server is a running API over the default seed.
type Server struct {
	URL     string
	Store   store.Store
	Hasher  *cryptox.Hasher
	Metrics *metrics.Metrics

	srv *httptest.Server
}

// NewServer seeds an in-memory store with the built-in clinic layout and
// serves the full router. Everything is closed when t ends.
func NewServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hasher := cryptox.NewHasher("pepper")
	data, err := service.LoadSeedData("")
	require.NoError(t, err)
	data.Admin.Password = AdminPassword
	_, err = (&service.SeedService{Store: st, Hasher: hasher, Data: data}).Seed(ctx)
	require.NoError(t, err)

	pem, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", pem)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	m := metrics.New()
	r := adminhttp.NewRouter(keys, jwtx.NewVerifierEdDSA(keys, Issuer, []string{Audience}), "test", st, slogx.Discard(), m)
	r.AuthService = &service.AuthService{
		Store:     st,
		Hasher:    hasher,
		Signer:    signer,
		Issuer:    Issuer,
		Audience:  []string{Audience},
		AccessTTL: 10 * time.Minute,
		Metrics:   m,
	}
	r.RolesService = &service.RolesService{Store: st}
	r.MenusService = &service.MenusService{Store: st}
	r.MenuRolesService = &service.MenuRolesService{Store: st, Metrics: m}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &Server{URL: srv.URL, Store: st, Hasher: hasher, Metrics: m, srv: srv}
}

// AddUser stores a user holding roleName with password username+"-password".
func (s *Server) AddUser(t *testing.T, username, roleName string) domain.User {
	t.Helper()
	ctx := context.Background()

	role, err := s.Store.Roles().GetRoleByName(ctx, roleName)
	require.NoError(t, err)
	hash, err := s.Hasher.Hash(username + "-password")
	require.NoError(t, err)
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	require.NoError(t, s.Store.Users().CreateUser(ctx, u))
	return u
}

// MenuID returns the id of the menu at path.
func (s *Server) MenuID(t *testing.T, path string) int64 {
	t.Helper()
	menus, err := s.Store.Menus().ListAll(context.Background())
	require.NoError(t, err)
	for _, m := range menus {
		if m.Path == path {
			return m.ID
		}
	}
	t.Fatalf("menu %s not found", path)
	return 0
}
