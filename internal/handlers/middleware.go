package handlers

import (
	"net/http"
	"strings"

	"quote-service/internal/models"
	"quote-service/internal/services"
	utils "quote-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderCompanyID = "X-Company-ID"
	HeaderUserRole  = "X-User-Role"

	claimsKey = "claims"
)

type Middleware struct {
	authService services.IAuthService
}

func NewMiddleware(authService services.IAuthService) *Middleware {
	return &Middleware{authService: authService}
}

// RequireAuth accepts a Bearer token backed by a live session and forwards
// the caller identity as request headers.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(utils.CreateErrorResponse("MISSING_TOKEN", "authorization header required"))
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := m.authService.Authenticate(c.Context(), token)
		if err != nil {
			return respondError(c, "SESSION_CHECK_FAILED", err)
		}

		c.Request().Header.Set(HeaderUserID, claims.UserID)
		c.Request().Header.Set(HeaderCompanyID, claims.CompanyID)
		c.Request().Header.Set(HeaderUserRole, string(claims.Role))
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireCompany rejects authenticated callers that manage no company.
func (m *Middleware) RequireCompany() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Get(HeaderCompanyID) == "" {
			return c.Status(http.StatusForbidden).JSON(utils.CreateErrorResponse("NO_COMPANY", "account is not linked to a company"))
		}
		return c.Next()
	}
}

func claimsFrom(c fiber.Ctx) (*models.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*models.Claims)
	return claims, ok
}
