package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campuskit/campusboard-backend/pkg/enums"
)

// SessionTokenPayload captures the data available when minting a session token.
type SessionTokenPayload struct {
	UserID uuid.UUID
	Role   enums.UserRole
	JTI    string
}

// SessionTokenClaims is the typed JWT carried inside the session cookie.
type SessionTokenClaims struct {
	UserID uuid.UUID      `json:"user_id"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
