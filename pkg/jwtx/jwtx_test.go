package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/clinicadmin/pkg/cryptox"
	"github.com/aussiebroadwan/clinicadmin/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://clinic.example.test"

func newSigner(t *testing.T, kid string) *jwtx.EdDSASigner {
	t.Helper()
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	s, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	return s
}

func claimsFor(now time.Time, ttl time.Duration) jwtx.Claims {
	return jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject:  "01J9ZQ4W6K3N0V8Y2C5T7R1M3P",
		SID:      "sess-1",
		Username: "pharmacist",
		RoleID:   2,
		Scopes:   []string{"admin:read"},
		Issuer:   testIssuer,
		Audience: []string{"clinic-admin"},
		TTL:      ttl,
		Now:      now,
	})
}

func TestEdDSASignAndVerify(t *testing.T) {
	signer := newSigner(t, "k1")
	keys := jwtx.NewKeySet()
	require.False(t, keys.IsReady())
	require.NoError(t, keys.AddSigner(signer))
	require.True(t, keys.IsReady())

	claims := claimsFor(time.Now().UTC(), 5*time.Minute)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := jwtx.NewVerifierEdDSA(keys, testIssuer, []string{"clinic-admin"}).Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, got.Subject)
	require.Equal(t, claims.Username, got.Username)
	require.Equal(t, int64(2), got.RoleID)
	require.Equal(t, "sess-1", got.SID)
	require.True(t, got.HasScope("admin:read"))
	require.False(t, got.HasScope("admin:write"))
	require.NotEmpty(t, got.ID)
}

func TestEdDSAVerifyRejects(t *testing.T) {
	signer := newSigner(t, "k1")
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	now := time.Now().UTC()

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := signer.Sign(claimsFor(now, time.Minute))
		require.NoError(t, err)
		_, err = jwtx.NewVerifierEdDSA(keys, "https://other", nil).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		token, err := signer.Sign(claimsFor(now, time.Minute))
		require.NoError(t, err)
		_, err = jwtx.NewVerifierEdDSA(keys, "", []string{"billing"}).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := signer.Sign(claimsFor(now.Add(-time.Hour), time.Minute))
		require.NoError(t, err)
		_, err = jwtx.NewVerifierEdDSA(keys, testIssuer, nil).Verify(token)
		require.Error(t, err)
	})

	t.Run("unknown kid", func(t *testing.T) {
		other := newSigner(t, "k2")
		token, err := other.Sign(claimsFor(now, time.Minute))
		require.NoError(t, err)
		_, err = jwtx.NewVerifierEdDSA(keys, testIssuer, nil).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := jwtx.NewVerifierEdDSA(keys, testIssuer, nil).Verify("not.a.jwt")
		require.Error(t, err)
	})
}

func TestNewSignerEdDSA_BadInput(t *testing.T) {
	_, err := jwtx.NewSignerEdDSA("k", []byte("not pem"))
	require.Error(t, err)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	_, err = jwtx.NewSignerEdDSA("", pemKey)
	require.Error(t, err)
}

func TestClaimsDefaultTTL(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	c := claimsFor(now, 0)
	require.Equal(t, now.Add(jwtx.DefaultAccessTokenTTL), c.ExpiresAt.Time)
	require.NoError(t, c.ValidateExpiry())
}
