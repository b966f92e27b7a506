package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuskit/campusboard-backend/pkg/enums"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	handler := RequireUser(testLogger())(okHandler())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/notifications", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireUserPassesAuthenticated(t *testing.T) {
	handler := RequireUser(testLogger())(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	req = req.WithContext(WithIdentity(req.Context(), "user-1", "student"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	handler := RequireRole(enums.UserRoleFaculty, testLogger())(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/api/announcements", nil)
	req = req.WithContext(WithIdentity(req.Context(), "user-1", "student"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestRequirePageSessionRedirectsWithFrom(t *testing.T) {
	handler := RequirePageSession()(okHandler())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/login?from=%2Fnotifications" {
		t.Fatalf("unexpected redirect %q", loc)
	}
}

func TestRequirePageRoleSendsStudentsHome(t *testing.T) {
	handler := RequirePageRole(enums.UserRoleFaculty)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req = req.WithContext(WithIdentity(req.Context(), "user-1", "student"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/" {
		t.Fatalf("unexpected redirect %q", loc)
	}
}

func TestRedirectAuthenticatedSkipsLoginPage(t *testing.T) {
	handler := RedirectAuthenticated()(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req = req.WithContext(WithIdentity(req.Context(), "user-1", "student"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", resp.Code)
	}
}

func TestRedirectAuthenticatedAllowsAnonymous(t *testing.T) {
	handler := RedirectAuthenticated()(okHandler())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/login", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
