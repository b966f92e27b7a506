package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	internalauth "github.com/campuskit/campusboard-backend/internal/auth"
	"github.com/campuskit/campusboard-backend/internal/users"
	"github.com/campuskit/campusboard-backend/pkg/config"
	pkgerrors "github.com/campuskit/campusboard-backend/pkg/errors"
)

type testAuthService struct {
	registerFn func(ctx context.Context, req internalauth.RegisterRequest) (*internalauth.SessionResult, error)
	loginFn    func(ctx context.Context, req internalauth.LoginRequest) (*internalauth.SessionResult, error)
	logoutFn   func(ctx context.Context, sessionID string) error
}

func (s *testAuthService) Register(ctx context.Context, req internalauth.RegisterRequest) (*internalauth.SessionResult, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, req)
	}
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s *testAuthService) Login(ctx context.Context, req internalauth.LoginRequest) (*internalauth.SessionResult, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, req)
	}
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (s *testAuthService) Logout(ctx context.Context, sessionID string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, sessionID)
	}
	return nil
}

func testSessionCfg() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-secret-test-secret-test-secret!",
		Issuer:     "campusboard-test",
		TTLHours:   1,
		CookieName: "session",
	}
}

func TestAuthRegisterSetsCookieAndReturnsUser(t *testing.T) {
	svc := &testAuthService{
		registerFn: func(ctx context.Context, req internalauth.RegisterRequest) (*internalauth.SessionResult, error) {
			if req.Email != "ada@campus.edu" {
				t.Fatalf("unexpected email %q", req.Email)
			}
			return &internalauth.SessionResult{
				Token: "signed-token",
				User:  &users.UserDTO{ID: uuid.New(), Name: "Ada", Email: req.Email, Role: "student"},
			}, nil
		},
	}

	body := `{"name":"Ada","email":"ada@campus.edu","password":"secret-pass","role":"student"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthRegister(svc, testSessionCfg(), testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	cookie := findCookie(t, resp.Result().Cookies(), "session")
	if cookie.Value != "signed-token" {
		t.Fatalf("unexpected cookie value %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}

	var user map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &user); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if user["email"] != "ada@campus.edu" {
		t.Fatalf("unexpected user payload %v", user)
	}
}

func TestAuthRegisterRejectsInvalidBody(t *testing.T) {
	body := `{"name":"Ada","email":"not-an-email","password":"short","role":"dean"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthRegister(&testAuthService{}, testSessionCfg(), testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	svc := &testAuthService{
		loginFn: func(ctx context.Context, req internalauth.LoginRequest) (*internalauth.SessionResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		},
	}

	body := `{"email":"ada@campus.edu","password":"wrong-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AuthLogin(svc, testSessionCfg(), testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("failed login must not set a cookie")
	}
}

func TestAuthLogoutClearsCookie(t *testing.T) {
	revoked := ""
	svc := &testAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			revoked = sessionID
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	resp := httptest.NewRecorder()
	AuthLogout(svc, testSessionCfg(), testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	// no cookie on the request: logout is still a success with a blank session
	if revoked != "" {
		t.Fatalf("expected blank session id, got %q", revoked)
	}
	cookie := findCookie(t, resp.Result().Cookies(), "session")
	if cookie.MaxAge != -1 {
		t.Fatalf("expected expired cookie, got MaxAge %d", cookie.MaxAge)
	}
}

func findCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}
