package middleware

import (
	"errors"
	"strings"

	"geostud-api/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxExternalIDKey = "external_id"
	CtxNameKey       = "name"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxExternalIDKey, claims.ExternalID)
		c.Locals(CtxNameKey, claims.Name)

		return c.Next()
	}
}

// ExternalIDFromCtx reads the authenticated caller's external id set by the
// auth middleware.
func ExternalIDFromCtx(c fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(CtxExternalIDKey).(int64)
	return id, ok && id != 0
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
