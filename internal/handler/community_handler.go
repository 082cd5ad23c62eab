package handler

import (
	"prepwise/internal/dto"
	"prepwise/internal/logger"
	"prepwise/internal/middleware"
	"prepwise/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CommunityHandler handles community question submissions.
type CommunityHandler struct {
	communityService service.CommunityService
}

// NewCommunityHandler creates a new CommunityHandler instance
func NewCommunityHandler(communityService service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

// SubmitCommunityQuestion handles POST /api/community-questions.
func (h *CommunityHandler) SubmitCommunityQuestion(c *fiber.Ctx) error {
	var req dto.CommunityQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	userID := middleware.AuthenticatedUserID(c)
	result, err := h.communityService.SubmitCommunityQuestion(c.Context(), userID, &req)
	if err != nil {
		logger.Get().Error("Failed to submit community question",
			zap.Error(err),
			zap.String("title", req.Title),
		)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}
