package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/campusboard-backend/pkg/config"
	"github.com/campuskit/campusboard-backend/pkg/enums"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-secret",
		Issuer:     "campusboard-test",
		TTLHours:   1,
		CookieName: "session",
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testSessionConfig()
	userID := uuid.New()

	token, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{
		UserID: userID,
		Role:   enums.UserRoleFaculty,
		JTI:    "jti-1",
	})
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s got %s", userID, claims.UserID)
	}
	if claims.Role != enums.UserRoleFaculty {
		t.Fatalf("expected faculty role got %s", claims.Role)
	}
	if claims.ID != "jti-1" {
		t.Fatalf("expected jti-1 got %s", claims.ID)
	}
}

func TestMintSessionTokenValidation(t *testing.T) {
	cfg := testSessionConfig()
	payload := SessionTokenPayload{UserID: uuid.New(), Role: enums.UserRoleStudent}

	if _, err := MintSessionToken(config.SessionConfig{Issuer: "x", TTLHours: 1}, time.Now(), payload); err == nil {
		t.Fatal("expected error for missing secret")
	}
	if _, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{UserID: uuid.New(), Role: "Janitor"}); err == nil {
		t.Fatal("expected error for invalid role")
	}
	if _, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{Role: enums.UserRoleStudent}); err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	cfg := testSessionConfig()
	token, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{UserID: uuid.New(), Role: enums.UserRoleStudent})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseSessionToken(other, token); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	cfg := testSessionConfig()
	token, err := MintSessionToken(cfg, time.Now().Add(-2*time.Hour), SessionTokenPayload{UserID: uuid.New(), Role: enums.UserRoleStudent})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}
