package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/audirhq/audir-backend/api/responses"
	"github.com/audirhq/audir-backend/pkg/db/models"
	pkgerrors "github.com/audirhq/audir-backend/pkg/errors"
	"github.com/audirhq/audir-backend/pkg/logger"
)

// IdentityResolver recovers the acting user from a bearer token.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// Auth extracts the bearer token, resolves the acting user and seeds the
// request context. The resolved row is the authority for tenant and role.
func Auth(resolver IdentityResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			user, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithCurrentUser(r.Context(), user)
			if logg != nil {
				ctx = logg.WithUserID(ctx, user.ID)
				ctx = logg.WithTenantID(ctx, user.TenantID)
				ctx = logg.WithFields(ctx, map[string]any{"actor_role": string(user.Role)})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
