package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	httpapi "github.com/aussiebroadwan/clinicadmin/internal/admin/http"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/metrics"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/service"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store/drivers/postgres"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/clinicadmin/pkg/cryptox"
	"github.com/aussiebroadwan/clinicadmin/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

// BuildVersion is overridden at build time with -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application is the admin service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	keys    *Keys
	hasher  *cryptox.Hasher
	metrics *metrics.Metrics

	authService         *service.AuthService
	rolesService        *service.RolesService
	menusService        *service.MenusService
	menuRolesService    *service.MenuRolesService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New builds the application: logger, database and migrations, keys and
// pepper, services, the initial seed and the HTTP server.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "clinic-admin",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.Log.Level,
			Format:  cfg.Log.Format,
		}),
	}
	if err := app.init(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

func (app *Application) init(ctx context.Context) error {
	if err := app.initDatabase(ctx); err != nil {
		return err
	}

	keys, err := InitKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.keys = keys

	pepper, err := cryptox.LoadOrGeneratePepper(app.cfg.Auth.PepperFile)
	if err != nil {
		_ = app.db.Close()
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewHasher(pepper)

	if app.cfg.Metrics.Enabled {
		app.metrics = metrics.New()
	}

	app.initServices()

	if err := app.seed(ctx); err != nil {
		_ = app.db.Close()
		return err
	}

	app.initHTTP()
	return nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run serves HTTP and runs housekeeping until ctx is cancelled, then shuts
// down gracefully.
func (app *Application) Run(ctx context.Context) error {
	app.housekeepingService.Start()
	app.logger.Info("clinic admin starting", "port", app.cfg.Server.Port, "version", BuildVersion)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return app.Shutdown()
	})
	return g.Wait()
}

// Shutdown stops the server, housekeeping and the database, in that order.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down clinic admin...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownGrace)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("clinic admin stopped")
	return nil
}

func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.Database.Driver {
	case "postgres":
		db, err = postgres.Connect(ctx, app.cfg.Database.URL, app.cfg.Database.MaxConns)
	default:
		db, err = sqlite.NewStore(app.cfg.Database.File)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied", "driver", app.cfg.Database.Driver)
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:     app.db,
		Hasher:    app.hasher,
		Signer:    app.keys.Signer,
		Issuer:    app.cfg.Auth.Issuer,
		Audience:  []string{app.cfg.Auth.Audience},
		AccessTTL: app.cfg.Auth.AccessTTL,
		Metrics:   app.metrics,
	}
	app.rolesService = &service.RolesService{Store: app.db}
	app.menusService = &service.MenusService{Store: app.db}
	app.menuRolesService = &service.MenuRolesService{Store: app.db, Metrics: app.metrics}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.Housekeeping.Interval,
		app.cfg.Housekeeping.Prune,
	)
	app.housekeepingService.Metrics = app.metrics
}

// seed fills an empty database. A generated admin password is logged once.
func (app *Application) seed(ctx context.Context) error {
	if !app.cfg.Seed.Enabled {
		return nil
	}

	data, err := service.LoadSeedData(app.cfg.Seed.File)
	if err != nil {
		return err
	}
	if app.cfg.Seed.AdminPassword != "" {
		data.Admin.Password = app.cfg.Seed.AdminPassword
	}

	svc := &service.SeedService{Store: app.db, Hasher: app.hasher, Data: data}
	res, err := svc.Seed(slogx.WithContext(ctx, app.logger))
	if errors.Is(err, service.ErrAlreadySeeded) {
		app.logger.Debug("database already seeded")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	app.logger.Info("database seeded",
		"roles", res.Roles,
		"menus", res.Menus,
		"grants", res.Grants,
	)
	if res.AdminPassword != "" {
		app.logger.Warn("generated admin password, change it after first login",
			"username", res.AdminUsername,
			"password", res.AdminPassword,
		)
	}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.KeySet,
		app.keys.Verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
	)

	router.AuthService = app.authService
	router.RolesService = app.rolesService
	router.MenusService = app.menusService
	router.MenuRolesService = app.menuRolesService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: app.cfg.Server.ReadHeaderTimeout,
	}
}
