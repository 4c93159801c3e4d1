package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/infrastructure/cache"
	"github.com/quadworks/flowdeck/pkg/jwt"
)

func authedContext(token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/flows", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret", time.Minute)
	mw := NewAuthMiddleware(jwtManager, cache.NewMemoryStore(), time.Minute, nil)
	userID := uuid.New()
	orgID := uuid.New()

	token, err := jwtManager.GenerateAccessToken(userID, orgID, "dev@example.com", "developer")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	c, rec := authedContext(token)
	var seen entities.Identity
	handler := mw.Authenticate(func(c echo.Context) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			t.Fatal("identity missing from context")
		}
		seen = identity
		return okHandler(c)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen.UserID != userID || seen.OrganizationID != orgID {
		t.Fatalf("unexpected identity %+v", seen)
	}
	if seen.Role != entities.UserRoleDeveloper {
		t.Fatalf("expected developer role, got %s", seen.Role)
	}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	mw := NewAuthMiddleware(jwt.NewManager("s", time.Minute), nil, time.Minute, nil)

	c, _ := authedContext("")
	err := mw.Authenticate(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthenticate_BadToken(t *testing.T) {
	mw := NewAuthMiddleware(jwt.NewManager("s", time.Minute), nil, time.Minute, nil)

	c, _ := authedContext("garbage")
	err := mw.Authenticate(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthenticate_ServesFromCache(t *testing.T) {
	store := cache.NewMemoryStore()
	signer := jwt.NewManager("real-secret", time.Minute)
	token, err := signer.GenerateAccessToken(uuid.New(), uuid.New(), "dev@example.com", "developer")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// First pass verifies the JWT and populates the cache.
	c, _ := authedContext(token)
	if err := NewAuthMiddleware(signer, store, time.Minute, nil).Authenticate(okHandler)(c); err != nil {
		t.Fatalf("warm-up pass failed: %v", err)
	}

	// A middleware that cannot verify the signature still resolves the
	// identity through the shared cache.
	c, rec := authedContext(token)
	wrongKey := NewAuthMiddleware(jwt.NewManager("other-secret", time.Minute), store, time.Minute, nil)
	if err := wrongKey.Authenticate(okHandler)(c); err != nil {
		t.Fatalf("cached pass failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected cache hit to serve 200, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret", time.Minute)
	mw := NewAuthMiddleware(jwtManager, nil, time.Minute, nil)
	token, err := jwtManager.GenerateAccessToken(uuid.New(), uuid.New(), "dev@example.com", "developer")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	allowed := mw.Authenticate(mw.RequireRole(entities.UserRoleDeveloper, entities.UserRoleBA)(okHandler))
	c, rec := authedContext(token)
	if err := allowed(c); err != nil {
		t.Fatalf("allowed role rejected: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	adminOnly := mw.Authenticate(mw.RequireRole(entities.UserRoleAdmin)(okHandler))
	c, _ = authedContext(token)
	err = adminOnly(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong role, got %v", err)
	}
}
