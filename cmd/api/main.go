package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/glambook/glambook-backend/api/routes"
	"github.com/glambook/glambook-backend/internal/audit"
	"github.com/glambook/glambook-backend/internal/bookings"
	"github.com/glambook/glambook-backend/internal/catalog"
	"github.com/glambook/glambook-backend/internal/combos"
	"github.com/glambook/glambook-backend/internal/gallery"
	"github.com/glambook/glambook-backend/internal/guard"
	"github.com/glambook/glambook-backend/internal/identity"
	"github.com/glambook/glambook-backend/internal/packages"
	"github.com/glambook/glambook-backend/internal/staff"
	"github.com/glambook/glambook-backend/internal/transformations"
	"github.com/glambook/glambook-backend/internal/vendors"
	"github.com/glambook/glambook-backend/pkg/config"
	"github.com/glambook/glambook-backend/pkg/db"
	"github.com/glambook/glambook-backend/pkg/logger"
	"github.com/glambook/glambook-backend/pkg/migrate"
	"github.com/glambook/glambook-backend/pkg/redis"
	"github.com/glambook/glambook-backend/pkg/retry"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	vendorRepo := vendors.NewRepository(dbClient)
	vendorService := vendors.NewService(vendorRepo, cfg.JWT, cfg.Password, retry.Policy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
	}, logg)

	strategies := []identity.Strategy{identity.NewLocalStrategy(cfg.JWT, vendorRepo)}
	if cfg.Introspection.Enabled() {
		strategies = append(strategies, identity.NewIntrospectionStrategy(cfg.Introspection, vendorRepo))
	}
	chain := identity.NewChain(logg, strategies...)
	isolationGuard := guard.New(logg)

	catalogRepo := catalog.NewRepository(dbClient)
	catalogService := catalog.NewService(catalogRepo, logg)
	catalogSource, err := catalog.NewSource(cfg.Catalog, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to build catalog source", err)
		os.Exit(1)
	}

	packageService := packages.NewService(packages.NewRepository(dbClient), logg)
	comboService := combos.NewService(combos.NewRepository(dbClient), logg)
	galleryService := gallery.NewService(dbClient)
	staffService := staff.NewService(dbClient)
	bookingService := bookings.NewService(dbClient)
	transformationService := transformations.NewService(dbClient)
	auditor := audit.NewAuditor(dbClient, logg, nil)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"catalog_source": catalogSource.Name(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			chain,
			isolationGuard,
			vendorService,
			catalogService,
			catalogSource,
			packageService,
			comboService,
			galleryService,
			staffService,
			bookingService,
			transformationService,
			auditor,
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		graceCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(graceCtx); err != nil {
			logg.Error(ctx, "error during server shutdown", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "api server shut down gracefully")
}
