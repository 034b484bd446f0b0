package handlers

import (
	"strconv"

	"github.com/SilviaMahr/StudyVerse/internal/dto"
	"github.com/SilviaMahr/StudyVerse/internal/repository"
	"github.com/SilviaMahr/StudyVerse/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Send godoc
// @Summary Ask a question about a generated plan
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Chat message"
// @Success 200 {object} dto.ChatMessageResponse
// @Failure 404 {object} map[string]string
// @Router /chat/send [post]
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.chatService.SendMessage(c.Context(), userID, &req)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Planning not found",
			})
		}
		h.logger.Error("Chat message failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Chat message failed",
		})
	}

	return c.JSON(resp)
}

// History godoc
// @Summary Get the chat history of a planning session
// @Tags chat
// @Produce json
// @Param planning_id path int true "Planning ID"
// @Success 200 {object} dto.ChatHistoryResponse
// @Failure 404 {object} map[string]string
// @Router /chat/history/{planning_id} [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	planningID, err := strconv.ParseInt(c.Params("planning_id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid planning id")
	}

	resp, err := h.chatService.History(c.Context(), planningID, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Planning not found",
			})
		}
		h.logger.Error("Failed to load chat history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load chat history",
		})
	}

	return c.JSON(resp)
}

// Ask godoc
// @Summary Ask a general study question
// @Tags rag
// @Accept json
// @Produce json
// @Param request body dto.AskQuestionRequest true "Question"
// @Success 200 {object} dto.AskQuestionResponse
// @Router /rag/ask [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.AskQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.chatService.AskQuestion(c.Context(), userID, req.Question)
	if err != nil {
		h.logger.Error("Question answering failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Question answering failed",
		})
	}

	return c.JSON(resp)
}
