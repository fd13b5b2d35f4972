package cryptox_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/clinicadmin/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHasher_HashFormat(t *testing.T) {
	h := cryptox.NewHasher("pepper")

	for _, pw := range []string{"password123", "P@ssw0rd!#$%^&*()", strings.Repeat("a", 100), "", "пароль🔒"} {
		hash, err := h.Hash(pw)
		require.NoError(t, err)

		parts := strings.Split(hash, "$")
		require.Len(t, parts, 6)
		require.Equal(t, "argon2id", parts[1])
		require.Equal(t, "v=19", parts[2])
		require.Equal(t, "m=19456,t=2,p=1", parts[3])
		require.NoError(t, h.Verify(pw, hash))
	}
}

func TestHasher_UniqueSalts(t *testing.T) {
	h := cryptox.NewHasher("pepper")
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestHasher_Mismatch(t *testing.T) {
	h := cryptox.NewHasher("pepper")
	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	require.ErrorIs(t, h.Verify("wrong", hash), cryptox.ErrPasswordMismatch)
	require.ErrorIs(t, h.Verify("Correct horse", hash), cryptox.ErrPasswordMismatch)

	// A different pepper never verifies.
	require.ErrorIs(t, cryptox.NewHasher("other").Verify("correct horse", hash), cryptox.ErrPasswordMismatch)
}

func TestHasher_InvalidHash(t *testing.T) {
	h := cryptox.NewHasher("")
	for _, bad := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1,t=1,p=1$!!!$aGFzaA",
	} {
		require.ErrorIs(t, h.Verify("x", bad), cryptox.ErrInvalidHash, bad)
	}
}

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]struct{})
	for range 50 {
		pw, err := cryptox.GeneratePassword()
		require.NoError(t, err)
		require.Len(t, pw, 16)
		_, dup := seen[pw]
		require.False(t, dup)
		seen[pw] = struct{}{}
	}
}

func TestLoadOrGeneratePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets", "pepper")

	p1, err := cryptox.LoadOrGeneratePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, p1)

	p2, err := cryptox.LoadOrGeneratePepper(path)
	require.NoError(t, err)
	require.Equal(t, p1, p2)
}
