package main

import (
	"context"
	"net/http"
	"os"

	"github.com/audirhq/audir-backend/api/routes"
	"github.com/audirhq/audir-backend/internal/auditplans"
	"github.com/audirhq/audir-backend/internal/auth"
	"github.com/audirhq/audir-backend/internal/reference"
	"github.com/audirhq/audir-backend/internal/responsetypes"
	"github.com/audirhq/audir-backend/internal/templates"
	"github.com/audirhq/audir-backend/internal/users"
	"github.com/audirhq/audir-backend/pkg/config"
	"github.com/audirhq/audir-backend/pkg/db"
	"github.com/audirhq/audir-backend/pkg/logger"
	"github.com/audirhq/audir-backend/pkg/metrics"
	"github.com/audirhq/audir-backend/pkg/migrate"
	"github.com/audirhq/audir-backend/pkg/redis"
	"github.com/joho/godotenv"
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

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, login rate limiting disabled")
	}

	usersRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(usersRepo, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	resolver, err := auth.NewResolver(usersRepo, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity resolver", err)
		os.Exit(1)
	}
	usersService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}
	referenceService, err := reference.NewService(
		reference.NewDepartmentRepository(dbClient.DB()),
		reference.NewSiteRepository(dbClient.DB()),
		reference.NewRegionRepository(dbClient.DB()),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create reference service", err)
		os.Exit(1)
	}
	responseTypesService, err := responsetypes.NewService(responsetypes.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create response types service", err)
		os.Exit(1)
	}
	templatesService, err := templates.NewService(templates.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create templates service", err)
		os.Exit(1)
	}
	auditPlansService, err := auditplans.NewService(auditplans.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create audit plans service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			resolver,
			authService,
			usersService,
			referenceService,
			responseTypesService,
			templatesService,
			auditPlansService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
