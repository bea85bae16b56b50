package handlers

import (
	"net/http"

	"quote-service/internal/models"
	"quote-service/internal/services"
	utils "quote-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

type QuoteHandler struct {
	quoteService services.IQuoteService
}

func NewQuoteHandler(quoteService services.IQuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

func (h *QuoteHandler) Register(app *fiber.App) {
	app.Post("/api/v1/quotes", h.CreateQuote)
}

func (h *QuoteHandler) CreateQuote(c fiber.Ctx) error {
	var req models.CreateQuoteRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}

	quote, err := h.quoteService.CreateQuote(c.Context(), req)
	if err != nil {
		return respondError(c, "QUOTE_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(quote))
}
