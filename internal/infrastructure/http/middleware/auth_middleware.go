package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/quadworks/flowdeck/errors"
	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/infrastructure/cache"
	"github.com/quadworks/flowdeck/pkg/jwt"
)

// IdentityContextKey is the echo context key for the resolved caller
const IdentityContextKey = "identity"

// AuthMiddleware resolves bearer tokens to identities. Verified
// identities are cached by token hash so hot request paths skip the
// JWT parse; the cache TTL stays shorter than the token expiry.
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	tokens     cache.TokenCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *jwt.Manager, tokens cache.TokenCache, cacheTTL time.Duration, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		tokens:     tokens,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Authenticate validates the bearer token and stores the caller's
// Identity on the echo context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractToken(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated().Message)
		}

		identity, err := m.resolve(token)
		if err != nil {
			if m.logger != nil {
				m.logger.Debug("auth.token_rejected", zap.Error(err))
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrInvalidToken().Message)
		}

		c.Set(IdentityContextKey, *identity)
		return next(c)
	}
}

// RequireRole rejects callers whose role is not in the allowed set.
func (m *AuthMiddleware) RequireRole(roles ...entities.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated().Message)
			}
			for _, role := range roles {
				if identity.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrPermissionDenied("insufficient role").Message)
		}
	}
}

// IdentityFromContext returns the resolved caller, if any.
func IdentityFromContext(c echo.Context) (entities.Identity, bool) {
	identity, ok := c.Get(IdentityContextKey).(entities.Identity)
	return identity, ok
}

func (m *AuthMiddleware) resolve(token string) (*entities.Identity, error) {
	key := hashToken(token)
	if m.tokens != nil {
		if cached, ok := m.tokens.Get(key); ok {
			var identity entities.Identity
			if err := json.Unmarshal([]byte(cached), &identity); err == nil {
				return &identity, nil
			}
			m.tokens.Delete(key)
		}
	}

	claims, err := m.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	identity := &entities.Identity{
		UserID:         claims.UserID,
		OrganizationID: claims.OrganizationID,
		Email:          claims.Email,
		Role:           entities.UserRole(claims.Role),
	}

	if m.tokens != nil {
		if raw, err := json.Marshal(identity); err == nil {
			m.tokens.Set(key, string(raw), m.cacheTTL)
		}
	}
	return identity, nil
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	cookie, err := c.Cookie("access_token")
	if err == nil {
		return cookie.Value
	}
	return ""
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
