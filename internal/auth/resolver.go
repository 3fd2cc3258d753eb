package auth

import (
	"context"
	"errors"
	"fmt"

	pkgauth "github.com/audirhq/audir-backend/pkg/auth"
	"github.com/audirhq/audir-backend/pkg/config"
	"github.com/audirhq/audir-backend/pkg/db/models"
	pkgerrors "github.com/audirhq/audir-backend/pkg/errors"
	"gorm.io/gorm"
)

// Resolver turns a bearer token into the acting user. The freshly loaded row,
// not the token payload, is the authority for tenant id and role. Inactive
// users are rejected on every request so deactivation takes effect without
// waiting for token expiry.
type Resolver struct {
	users  usersRepository
	jwtCfg config.JWTConfig
}

// NewResolver builds the identity resolver.
func NewResolver(users usersRepository, jwtCfg config.JWTConfig) (*Resolver, error) {
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &Resolver{users: users, jwtCfg: jwtCfg}, nil
}

// Resolve verifies the token and loads the subject user. Bad signatures,
// expiry, unknown subjects, and deactivated accounts all fail identically.
func (r *Resolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := pkgauth.ParseAccessToken(r.jwtCfg, token)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	user, err := r.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.IsActive() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	return user, nil
}
