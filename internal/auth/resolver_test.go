package auth

import (
	"context"
	"testing"
	"time"

	pkgauth "github.com/audirhq/audir-backend/pkg/auth"
	"github.com/audirhq/audir-backend/pkg/db/models"
	"github.com/audirhq/audir-backend/pkg/enums"
	pkgerrors "github.com/audirhq/audir-backend/pkg/errors"
)

func mintToken(t *testing.T, userID, tenantID int64, role enums.Role) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testJWTCfg(), time.Now(), pkgauth.AccessTokenPayload{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return token
}

func TestResolveReturnsFreshUserRow(t *testing.T) {
	user := &models.User{
		ID:       5,
		TenantID: 2,
		Email:    "jane@acme.test",
		Role:     enums.RoleViewer, // downgraded since the token was minted
		Status:   enums.UserStatusActive,
	}
	resolver, err := NewResolver(&stubUsersRepo{user: user}, testJWTCfg())
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	got, err := resolver.Resolve(context.Background(), mintToken(t, 5, 2, enums.RoleAdmin))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Role != enums.RoleViewer {
		t.Fatalf("expected role from the stored row, got %s", got.Role)
	}
	if got.TenantID != 2 {
		t.Fatalf("unexpected tenant: %d", got.TenantID)
	}
}

func TestResolveRejectsGarbageToken(t *testing.T) {
	resolver, _ := NewResolver(&stubUsersRepo{}, testJWTCfg())

	_, err := resolver.Resolve(context.Background(), "not-a-token")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestResolveRejectsUnknownSubject(t *testing.T) {
	resolver, _ := NewResolver(&stubUsersRepo{}, testJWTCfg())

	_, err := resolver.Resolve(context.Background(), mintToken(t, 404, 1, enums.RoleAdmin))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestResolveRejectsDeactivatedUser(t *testing.T) {
	user := &models.User{
		ID:       5,
		TenantID: 2,
		Email:    "jane@acme.test",
		Role:     enums.RoleAdmin,
		Status:   enums.UserStatusInactive,
	}
	resolver, _ := NewResolver(&stubUsersRepo{user: user}, testJWTCfg())

	_, err := resolver.Resolve(context.Background(), mintToken(t, 5, 2, enums.RoleAdmin))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected deactivated user to be rejected, got %v", err)
	}
}
