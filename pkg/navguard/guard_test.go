package navguard_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/clinicadmin/pkg/navguard"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	granted := []string{"/patients", "/stock/batches/", ""}

	cases := []struct {
		path string
		want bool
	}{
		{"/patients", true},
		{"/patients/", true},
		{"/patients/42/history", true},
		{"/patientsx", false},
		{"/stock/batches", true},
		{"/stock", false},
		{"/", false},
		{"", false},
		{"patients", true},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			require.Equal(t, tc.want, navguard.Allowed(tc.path, granted))
		})
	}
}

func TestAllowed_RootGrantsEverything(t *testing.T) {
	require.True(t, navguard.Allowed("/anything/at/all", []string{"/"}))
	require.False(t, navguard.Allowed("/x", nil))
}

func TestSessionContext_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := navguard.FileStore{Path: filepath.Join(t.TempDir(), "nested", "session.json")}

	sc := navguard.NewSessionContext(store)
	require.ErrorIs(t, sc.Load(ctx), navguard.ErrNoSession)
	require.False(t, sc.Allowed("/patients"))

	s := navguard.Session{
		Username:     "admin",
		RoleID:       1,
		AccessToken:  "tok",
		ExpiresAt:    time.Now().Add(time.Hour),
		GrantedPaths: []string{"/patients"},
	}
	require.NoError(t, sc.Login(ctx, s))
	require.True(t, sc.Allowed("/patients/1"))

	// A new process picks up the stored session.
	again := navguard.NewSessionContext(store)
	require.NoError(t, again.Load(ctx))
	cur, err := again.Current()
	require.NoError(t, err)
	require.Equal(t, "admin", cur.Username)

	require.NoError(t, again.Logout(ctx))
	_, err = again.Current()
	require.ErrorIs(t, err, navguard.ErrNoSession)
	require.ErrorIs(t, navguard.NewSessionContext(store).Load(ctx), navguard.ErrNoSession)
}

func TestSessionContext_ExpiredSessionIsDropped(t *testing.T) {
	ctx := context.Background()
	store := navguard.FileStore{Path: filepath.Join(t.TempDir(), "session.json")}
	require.NoError(t, store.Save(ctx, navguard.Session{
		Username:  "old",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	sc := navguard.NewSessionContext(store)
	require.ErrorIs(t, sc.Load(ctx), navguard.ErrNoSession)

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, navguard.ErrNoSession)
}
