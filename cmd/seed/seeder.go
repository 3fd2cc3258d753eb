package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/audirhq/audir-backend/internal/tenants"
	"github.com/audirhq/audir-backend/internal/users"
	"github.com/audirhq/audir-backend/pkg/config"
	"github.com/audirhq/audir-backend/pkg/db/models"
	"github.com/audirhq/audir-backend/pkg/enums"
	"github.com/audirhq/audir-backend/pkg/security"
	"gorm.io/gorm"
)

type seedResult struct {
	Tenant        *models.Tenant
	TenantCreated bool
	UserCreated   bool
}

// seedTenantAdmin provisions the tenant and its first admin user using the
// caller's transaction handle, so a half-seeded state never persists.
// Existing records are left untouched.
func seedTenantAdmin(ctx context.Context, tx *gorm.DB, passwordCfg config.PasswordConfig, tenantName, email, password string) (*seedResult, error) {
	tenantsRepo := tenants.NewRepository(tx)
	usersRepo := users.NewRepository(tx)

	result := &seedResult{}

	tenant, err := tenantsRepo.FindByName(ctx, tenantName)
	switch {
	case err == nil:
		result.Tenant = tenant
	case errors.Is(err, gorm.ErrRecordNotFound):
		tenant = &models.Tenant{Name: tenantName, Status: enums.TenantStatusActive}
		if err := tenantsRepo.Create(ctx, tenant); err != nil {
			return nil, fmt.Errorf("create tenant: %w", err)
		}
		result.Tenant = tenant
		result.TenantCreated = true
	default:
		return nil, fmt.Errorf("look up tenant: %w", err)
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	if _, err := usersRepo.FindByEmail(ctx, normalized); err == nil {
		return result, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up admin user: %w", err)
	}

	hash, err := security.HashPassword(password, passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if _, err := usersRepo.Create(ctx, users.CreateUserDTO{
		TenantID:     tenant.ID,
		Email:        normalized,
		PasswordHash: hash,
		Role:         enums.RoleAdmin,
		Status:       enums.UserStatusActive,
	}); err != nil {
		return nil, fmt.Errorf("create admin user: %w", err)
	}
	result.UserCreated = true

	return result, nil
}
