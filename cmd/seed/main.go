package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/audirhq/audir-backend/internal/tenants"
	"github.com/audirhq/audir-backend/pkg/config"
	"github.com/audirhq/audir-backend/pkg/db"
	"github.com/audirhq/audir-backend/pkg/logger"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds a tenant and its first admin user. Re-running with the same flags is
// a no-op for records that already exist.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	tenantName := flag.String("tenant", "", "tenant name (required)")
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *tenantName == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -tenant <name> -email <email> -password <password>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithFields(context.Background(), map[string]any{
		"tenant": *tenantName,
		"email":  strings.ToLower(*email),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	var result *seedResult
	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var seedErr error
		result, seedErr = seedTenantAdmin(ctx, tx, cfg.Password, *tenantName, *email, *password)
		return seedErr
	})
	if err != nil {
		logg.Error(ctx, "seeding failed, nothing committed", err)
		os.Exit(1)
	}

	tenant, err := tenants.NewRepository(dbClient.DB()).FindByID(ctx, result.Tenant.ID)
	if err != nil {
		logg.Error(ctx, "seeded tenant not readable after commit", err)
		os.Exit(1)
	}

	ctx = logg.WithField(ctx, "tenant_id", tenant.ID)
	switch {
	case result.TenantCreated && result.UserCreated:
		logg.Info(ctx, "tenant and admin user created")
	case result.UserCreated:
		logg.Info(ctx, "admin user created in existing tenant")
	default:
		logg.Info(ctx, "tenant and admin user already exist, nothing to do")
	}
}
