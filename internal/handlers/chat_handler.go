package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/postxindia/postx-backend/internal/core/chat"
	"github.com/postxindia/postx-backend/internal/core/llm"
)

// ChatHandler handles assistant chat requests
type ChatHandler struct {
	assistant *chat.Assistant
}

// NewChatHandler creates a new chat handler
func NewChatHandler(assistant *chat.Assistant) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

// ChatRequest is one chat turn with prior history
type ChatRequest struct {
	Message string            `json:"message"`
	History []llm.ChatMessage `json:"history"`
}

// Chat godoc
// @Summary Chat with the PostX assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Param chat body ChatRequest true "Message and conversation history"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	response := h.assistant.Reply(c.Context(), req.Message, req.History)

	return c.JSON(fiber.Map{
		"response": response,
	})
}
