package handler

import (
	"prepwise/internal/dto"
	"prepwise/internal/logger"
	"prepwise/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AnswerHandler handles answer submission and retrieval.
type AnswerHandler struct {
	answerService service.AnswerService
}

// NewAnswerHandler creates a new AnswerHandler instance
func NewAnswerHandler(answerService service.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// SubmitAnswer handles POST /api/answers. The response carries the stored
// record with whatever feedback was computed synchronously to the call.
func (h *AnswerHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.answerService.SubmitAnswer(c.Context(), &req)
	if err != nil {
		logger.Get().Error("Failed to submit answer",
			zap.Error(err),
			zap.String("question_id", req.QuestionID),
		)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetAnswer handles GET /api/answers/:id.
func (h *AnswerHandler) GetAnswer(c *fiber.Ctx) error {
	id := c.Params("id")

	result, err := h.answerService.GetAnswer(c.Context(), id)
	if err != nil {
		logger.Get().Error("Failed to get answer", zap.Error(err), zap.String("id", id))
		return err
	}
	return c.JSON(result)
}
