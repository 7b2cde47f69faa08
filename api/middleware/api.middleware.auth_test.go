package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithUser(user *UserContext) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/holidays", nil)
	if user == nil {
		return r
	}
	ctx := context.WithValue(r.Context(), "user", user)
	return r.WithContext(ctx)
}

func TestRequireRolesAllowsAdmin(t *testing.T) {
	m := NewJWTMiddleware(JWTConfig{Secret: "s"})
	var called bool
	h := m.RequireRoles([]string{"admin"})(okHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithUser(&UserContext{ID: "u1", Roles: []string{"admin"}}))

	if !called || rec.Code != http.StatusOK {
		t.Errorf("admin should pass, got status %d called=%v", rec.Code, called)
	}
}

func TestRequireRolesRejectsMissingRole(t *testing.T) {
	m := NewJWTMiddleware(JWTConfig{Secret: "s"})
	var called bool
	h := m.RequireRoles([]string{"admin"})(okHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithUser(&UserContext{ID: "u1", Roles: []string{"viewer"}}))

	if called {
		t.Error("handler must not run without the required role")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRolesRejectsMissingUserContext(t *testing.T) {
	m := NewJWTMiddleware(JWTConfig{Secret: "s"})
	var called bool
	h := m.RequireRoles([]string{"admin"})(okHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithUser(nil))

	if called {
		t.Error("handler must not run without a user context")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	m := NewJWTMiddleware(JWTConfig{Secret: "s"})
	var called bool
	h := m.Authenticate(okHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/x", nil))

	if called {
		t.Error("handler must not run without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
