package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"quote-service/internal/services"
	utils "quote-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

// respondError maps service errors onto HTTP statuses. code names the
// operation for server-side failures.
func respondError(c fiber.Ctx, code string, err error) error {
	switch {
	case errors.Is(err, services.ErrBadRequest):
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("BAD_REQUEST", err.Error()))
	case errors.Is(err, services.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(http.StatusUnauthorized).JSON(utils.CreateErrorResponse("UNAUTHORIZED", err.Error()))
	case errors.Is(err, services.ErrConflict):
		return c.Status(http.StatusConflict).JSON(utils.CreateErrorResponse("CONFLICT", err.Error()))
	}
	slog.Error("request failed", "path", c.Path(), "code", code, "error", err)
	return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse(code, "internal server error"))
}

func invalidBody(c fiber.Ctx, err error) error {
	slog.Error("error parsing request", "path", c.Path(), "error", err)
	return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("INVALID_REQUEST", "Invalid request body"))
}
