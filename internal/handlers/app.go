package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	utils "quote-service/shared/utils"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
)

const bodyLimit = 4 << 20

// NewApp builds the fiber app with the JSON codec and error envelope every
// handler relies on.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "quote-service",
		BodyLimit:    bodyLimit,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})
}

func errorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(utils.CreateErrorResponse(http.StatusText(fe.Code), fe.Message))
	}
	slog.Error("unhandled request error", "path", c.Path(), "error", err)
	return c.Status(http.StatusInternalServerError).JSON(utils.CreateErrorResponse("INTERNAL_ERROR", "internal server error"))
}
