package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"counsel-api/core/config"
	"counsel-api/core/constants"
	"counsel-api/core/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func setTestJWTKey(t *testing.T) {
	t.Helper()
	config.SetForTest(&config.Config{App: config.AppConfig{JWTKey: "test-signing-key"}})
	t.Cleanup(func() { config.SetForTest(nil) })
}

func newContext(authHeader string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestAuthMiddlewareAcceptsMintedAccessToken(t *testing.T) {
	setTestJWTKey(t)

	counselorID := uuid.New()
	token, err := utils.GenerateToken(counselorID, "hannah@counsel.test", "Hannah Kim", constants.ScopeTokenAccess)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var seen echo.Context
	handler := NewMiddleware().AuthMiddleware()(func(c echo.Context) error {
		seen = c
		return c.NoContent(http.StatusOK)
	})

	if err := handler(newContext("Bearer " + token)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if got := seen.Get(ContextCounselorID); got != counselorID {
		t.Fatalf("counselor id in context = %v, want %v", got, counselorID)
	}
	if got := seen.Get(ContextName); got != "Hannah Kim" {
		t.Fatalf("name in context = %v", got)
	}
}

func TestAuthMiddlewareRejectsRefreshScope(t *testing.T) {
	setTestJWTKey(t)

	token, err := utils.GenerateToken(uuid.New(), "hannah@counsel.test", "Hannah Kim", constants.ScopeTokenRefresh)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	handler := NewMiddleware().AuthMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err = handler(newContext("Bearer " + token))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("refresh-scope token passed the access guard: %v", err)
	}
}

func TestAuthMiddlewareRejectsBadCredentials(t *testing.T) {
	setTestJWTKey(t)

	handler := NewMiddleware().AuthMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer token", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handler(newContext(tt.header))
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %v", err)
			}
		})
	}
}
