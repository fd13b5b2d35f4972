package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/clinicadmin/pkg/cryptox"
	"github.com/aussiebroadwan/clinicadmin/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://clinic.example.test"
	testAudience = "clinic-admin"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newSigner(t *testing.T) *jwtx.EdDSASigner {
	t.Helper()
	pem, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", pem)
	require.NoError(t, err)
	return signer
}

func verifierFor(t *testing.T, signer jwtx.Signer) jwtx.Verifier {
	t.Helper()
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	return jwtx.NewVerifierEdDSA(keys, testIssuer, []string{testAudience})
}

func mustRole(t *testing.T, s store.Store, name string, scopes ...string) domain.Role {
	t.Helper()
	r, err := s.Roles().CreateRole(context.Background(), domain.Role{Name: name, Scopes: scopes})
	require.NoError(t, err)
	return r
}

func mustMenu(t *testing.T, s store.Store, m domain.Menu) domain.Menu {
	t.Helper()
	created, err := s.Menus().CreateMenu(context.Background(), m)
	require.NoError(t, err)
	return created
}

func ptr(v int64) *int64 { return &v }
