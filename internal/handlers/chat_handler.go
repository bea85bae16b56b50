package handlers

import (
	"net/http"

	"quote-service/internal/models"
	"quote-service/internal/services"
	utils "quote-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

type ChatHandler struct {
	chatService services.IChatService
}

func NewChatHandler(chatService services.IChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Register(app *fiber.App) {
	chatGr := app.Group("/api/v1/chat/sessions")
	chatGr.Post("/", h.CreateSession)
	chatGr.Get("/:id", h.GetSession)
	chatGr.Delete("/:id", h.DeleteSession)
	chatGr.Post("/:id/messages", h.SendMessage)
}

func (h *ChatHandler) CreateSession(c fiber.Ctx) error {
	var req models.CreateChatSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}

	session, err := h.chatService.CreateSession(c.Context(), req)
	if err != nil {
		return respondError(c, "CHAT_CREATE_FAILED", err)
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(map[string]any{
		"sessionId": session.ID,
		"message":   session.Messages[0].Content,
		"session":   session,
	}))
}

func (h *ChatHandler) SendMessage(c fiber.Ctx) error {
	var req models.SendChatMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return invalidBody(c, err)
	}

	reply, err := h.chatService.SendMessage(c.Context(), c.Params("id"), req.Message)
	if err != nil {
		return respondError(c, "CHAT_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(reply))
}

func (h *ChatHandler) GetSession(c fiber.Ctx) error {
	session, err := h.chatService.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, "FETCH_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(session))
}

func (h *ChatHandler) DeleteSession(c fiber.Ctx) error {
	if err := h.chatService.DeleteSession(c.Context(), c.Params("id")); err != nil {
		return respondError(c, "DELETE_FAILED", err)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]string{
		"message": "chat session deleted",
	}))
}
