package middleware

import (
	"context"

	"github.com/audirhq/audir-backend/pkg/db/models"
)

type contextKey string

const ctxCurrentUser contextKey = "current_user"

// CurrentUserFromContext returns the resolved acting user, or nil when the
// request was not authenticated.
func CurrentUserFromContext(ctx context.Context) *models.User {
	if ctx == nil {
		return nil
	}
	if u, ok := ctx.Value(ctxCurrentUser).(*models.User); ok {
		return u
	}
	return nil
}

// WithCurrentUser injects the resolved user into the context.
func WithCurrentUser(ctx context.Context, user *models.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCurrentUser, user)
}
