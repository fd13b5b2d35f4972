package postgres_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store/drivers/postgres"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store/storetest"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("clinic_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	connStr := setupPostgres(t)
	ctx := context.Background()

	// Each subtest gets a clean schema on the shared container.
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := postgres.Connect(ctx, connStr, 5)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.ApplyMigrations())
		require.NoError(t, postgres.Truncate(ctx, s))
		return s
	})
}

func TestConnect_BadURL(t *testing.T) {
	_, err := postgres.Connect(context.Background(), "://nope", 1)
	require.Error(t, err)
}
