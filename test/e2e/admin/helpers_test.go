package admin_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/clinicadmin/pkg/adminsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared assertions for the admin service end-to-end
 * tests. The image is built once from cmd/admin/Dockerfile.
 */

const (
	testImageName = "clinic-admin-test:latest"

	adminUsername = "admin"
	adminPassword = "Admin123!"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building Clinic Admin Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Clinic Admin Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/admin/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // the image might not exist
}

// baseEnv is the service environment shared by every container. Rate limits
// are raised because the tests issue many requests from one address.
func baseEnv() map[string]string {
	return map[string]string{
		"CLINIC_ENV":                  "test",
		"CLINIC_LOG_LEVEL":            "info",
		"CLINIC_SEED_ADMINPASSWORD":   adminPassword,
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
		"RATELIMIT_LENIENT_REQUESTS":  "1000",
		"RATELIMIT_LENIENT_BURST":     "1000",
	}
}

// startAdmin runs the service image with env and returns its base URL.
func startAdmin(t *testing.T, env map[string]string, networks ...string) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		Networks:     networks,
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// setupSQLiteAdmin starts the service on its built-in SQLite database.
func setupSQLiteAdmin(t *testing.T) string {
	t.Helper()
	return startAdmin(t, baseEnv())
}

// setupPostgresAdmin starts Postgres and the service on a shared network.
func setupPostgresAdmin(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	nw, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = nw.Remove(ctx) })

	pg, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("clinic"),
		tcpostgres.WithUsername("clinic"),
		tcpostgres.WithPassword("clinic"),
		network.WithNetwork([]string{"db"}, nw),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	env := baseEnv()
	env["CLINIC_DATABASE_DRIVER"] = "postgres"
	env["CLINIC_DATABASE_URL"] = "postgres://clinic:clinic@db:5432/clinic?sslmode=disable"
	return startAdmin(t, env, nw.Name)
}

// loginAdmin logs the seeded admin in.
func loginAdmin(t *testing.T, client *adminsdk.SDKClient) *adminsdk.Session {
	t.Helper()
	sess, err := client.Login(t.Context(), adminUsername, adminPassword)
	require.NoError(t, err, "admin login should succeed")
	return sess
}

// findRoleByName searches for a role by name and returns its ID.
func findRoleByName(t *testing.T, sess *adminsdk.Session, name string) int64 {
	t.Helper()
	roles, err := sess.ListRoles(t.Context())
	require.NoError(t, err)
	for _, r := range roles {
		if r.Name == name {
			return r.ID
		}
	}
	t.Fatalf("role %q not found", name)
	return 0
}

// findMenuByPath searches for a menu by path and returns its ID.
func findMenuByPath(t *testing.T, sess *adminsdk.Session, path string) int64 {
	t.Helper()
	menus, err := sess.ListMenus(t.Context())
	require.NoError(t, err)
	for _, m := range menus {
		if m.Path == path {
			return m.ID
		}
	}
	t.Fatalf("menu %q not found", path)
	return 0
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *adminsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
