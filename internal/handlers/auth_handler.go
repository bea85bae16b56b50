package handlers

import (
	"net/http"

	"quote-service/internal/models"
	"quote-service/internal/services"
	utils "quote-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	authService services.IAuthService
	middleware  *Middleware
}

func NewAuthHandler(authService services.IAuthService, middleware *Middleware) *AuthHandler {
	return &AuthHandler{authService: authService, middleware: middleware}
}

func (h *AuthHandler) Register(app *fiber.App) {
	authGr := app.Group("/api/v1/auth")
	authGr.Post("/register", h.RegisterAccount)
	authGr.Post("/login", h.Login)
	authGr.Post("/logout", h.middleware.RequireAuth(), h.Logout)
}

func (h *AuthHandler) RegisterAccount(c fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}

	resp, err := h.authService.Register(c.Context(), req)
	if err != nil {
		return respondError(c, "REGISTER_FAILED", err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(resp))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}
	if err := utils.RequireFields([2]string{"email", req.Email}, [2]string{"password", req.Password}); err != nil {
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("BAD_REQUEST", err.Error()))
	}

	resp, err := h.authService.Login(c.Context(), req)
	if err != nil {
		return respondError(c, "LOGIN_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(resp))
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(utils.CreateErrorResponse("UNAUTHORIZED", "not authenticated"))
	}
	var err error
	if c.Query("all") == "true" {
		err = h.authService.LogoutAll(c.Context(), claims.UserID)
	} else {
		err = h.authService.Logout(c.Context(), claims.SessionID)
	}
	if err != nil {
		return respondError(c, "LOGOUT_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "logged out",
	}))
}
