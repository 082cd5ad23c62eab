package handler

import (
	"prepwise/internal/dto"
	"prepwise/internal/logger"
	"prepwise/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler handles practice session requests.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// CreateSession handles POST /api/sessions.
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.sessionService.CreateSession(c.Context(), &req)
	if err != nil {
		logger.Get().Error("Failed to create session",
			zap.Error(err),
			zap.String("topic", req.Topic),
		)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetSession handles GET /api/sessions/:id.
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	id := c.Params("id")

	result, err := h.sessionService.GetSession(c.Context(), id)
	if err != nil {
		logger.Get().Error("Failed to get session", zap.Error(err), zap.String("id", id))
		return err
	}
	return c.JSON(result)
}
