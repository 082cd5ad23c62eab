package handler

import (
	"prepwise/internal/logger"
	"prepwise/internal/middleware"
	"prepwise/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuestionHandler handles question catalog HTTP requests.
type QuestionHandler struct {
	questionService service.QuestionService
	accessService   service.AccessService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(questionService service.QuestionService, accessService service.AccessService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		accessService:   accessService,
	}
}

// GetPopularQuestions handles GET /api/questions/popular. The company query
// parameter is optional; when absent no company filter is applied.
func (h *QuestionHandler) GetPopularQuestions(c *fiber.Ctx) error {
	company := c.Query("company")

	questions, err := h.questionService.GetPopularQuestions(c.Context(), company)
	if err != nil {
		logger.Get().Error("Failed to get popular questions",
			zap.Error(err),
			zap.String("company", company),
		)
		return err
	}
	return c.JSON(questions)
}

// GetQuestionsByTopic handles GET /api/questions?topic=&category=.
// Both parameters are required; the server performs the filtering.
func (h *QuestionHandler) GetQuestionsByTopic(c *fiber.Ctx) error {
	topic := c.Query("topic")
	category := c.Query("category")
	if topic == "" || category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "topic and category are required")
	}

	questions, err := h.questionService.GetQuestionsByTopic(c.Context(), topic, category)
	if err != nil {
		logger.Get().Error("Failed to get questions by topic",
			zap.Error(err),
			zap.String("topic", topic),
			zap.String("category", category),
		)
		return err
	}
	return c.JSON(questions)
}

// GetQuestion handles GET /api/questions/:id. Viewing a question is what
// consumes the anonymous free quota; the view is recorded server-side only,
// after the access check and a successful load.
func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	id := c.Params("id")
	visitorID := middleware.RequestVisitorID(c)
	isAuthenticated := middleware.AuthenticatedUserID(c) != ""

	if err := h.accessService.CheckQuestionAccess(c.Context(), visitorID, id, isAuthenticated); err != nil {
		return err
	}

	question, err := h.questionService.GetQuestion(c.Context(), id)
	if err != nil {
		logger.Get().Error("Failed to get question", zap.Error(err), zap.String("id", id))
		return err
	}

	if !isAuthenticated {
		if err := h.accessService.RecordQuestionView(c.Context(), visitorID, id); err != nil {
			logger.Get().Warn("Failed to record question view", zap.Error(err), zap.String("id", id))
		}
	}

	return c.JSON(question)
}

// SearchQuestions handles GET /api/questions/search?q=. Empty queries are
// passed through; their behavior is server-defined.
func (h *QuestionHandler) SearchQuestions(c *fiber.Ctx) error {
	query := c.Query("q")

	questions, err := h.questionService.SearchQuestions(c.Context(), query)
	if err != nil {
		logger.Get().Error("Failed to search questions", zap.Error(err), zap.String("query", query))
		return err
	}
	return c.JSON(questions)
}
