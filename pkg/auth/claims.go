package auth

import (
	"github.com/audirhq/audir-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   int64
	TenantID int64
	Role     enums.Role
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients. The embedded
// tenant id and role are advisory; the identity resolver reloads the user row
// and treats that as the source of truth.
type AccessTokenClaims struct {
	UserID   int64      `json:"user_id"`
	TenantID int64      `json:"tenant_id"`
	Role     enums.Role `json:"role"`
	jwt.RegisteredClaims
}
