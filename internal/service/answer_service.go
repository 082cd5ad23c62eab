package service

import (
	"context"

	"prepwise/internal/domain"
	"prepwise/internal/dto"
	"prepwise/internal/logger"
	"prepwise/internal/repository"
	"prepwise/internal/validation"

	"go.uber.org/zap"
)

// AnswerService evaluates and stores submitted answers. Evaluation is
// synchronous to the submission call; the response already carries the
// feedback the evaluator produced.
type AnswerService interface {
	SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) (*dto.AnswerResponse, error)
	GetAnswer(ctx context.Context, id string) (*dto.AnswerResponse, error)
}

type answerServiceImpl struct {
	answerRepo     repository.AnswerRepository
	questionRepo   repository.QuestionRepository
	evaluator      domain.AnswerEvaluator
	sessionService SessionService
	validator      *validation.Validator
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	evaluator domain.AnswerEvaluator,
	sessionService SessionService,
) AnswerService {
	return &answerServiceImpl{
		answerRepo:     answerRepo,
		questionRepo:   questionRepo,
		evaluator:      evaluator,
		sessionService: sessionService,
		validator:      validation.NewValidator(),
	}
}

func (s *answerServiceImpl) SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) (*dto.AnswerResponse, error) {
	if errs := s.validator.ValidateSubmitAnswerRequest(req.QuestionID, req.UserAnswer); len(errs) > 0 {
		return nil, errs
	}

	question, err := s.questionRepo.GetQuestionByID(ctx, req.QuestionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load question for answer", err)
	}
	if question == nil {
		return nil, domain.NewQuestionNotFoundError(req.QuestionID)
	}

	feedback, err := s.evaluator.Evaluate(ctx, question, req.UserAnswer)
	if err != nil {
		logger.Get().Error("Answer evaluation failed",
			zap.Error(err),
			zap.String("question_id", req.QuestionID),
		)
		return nil, err
	}

	answer := domain.NewAnswer(req.QuestionID, req.UserAnswer)
	answer.Score = feedback.Score
	answer.Feedback = feedback.Summary
	answer.Strengths = feedback.Strengths
	answer.Improvements = feedback.Improvements
	answer.Suggestions = feedback.Suggestions

	if err := s.answerRepo.SaveAnswer(ctx, answer); err != nil {
		return nil, domain.NewInternalError("failed to save answer", err)
	}

	// Session advancement is best-effort: the answer is already persisted,
	// so a progress failure must not reject the submission.
	if req.SessionID != "" {
		if _, err := s.sessionService.AdvanceProgress(ctx, req.SessionID, question.ID); err != nil {
			logger.Get().Warn("Failed to advance session progress",
				zap.Error(err),
				zap.String("session_id", req.SessionID),
				zap.String("question_id", question.ID),
			)
		}
	}

	return toAnswerResponse(answer), nil
}

func (s *answerServiceImpl) GetAnswer(ctx context.Context, id string) (*dto.AnswerResponse, error) {
	answer, err := s.answerRepo.GetAnswerByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load answer", err)
	}
	if answer == nil {
		return nil, domain.NewAnswerNotFoundError(id)
	}
	return toAnswerResponse(answer), nil
}

func toAnswerResponse(a *domain.Answer) *dto.AnswerResponse {
	return &dto.AnswerResponse{
		ID:           a.ID,
		QuestionID:   a.QuestionID,
		UserAnswer:   a.UserAnswer,
		Score:        a.Score,
		Feedback:     a.Feedback,
		Strengths:    a.Strengths,
		Improvements: a.Improvements,
		Suggestions:  a.Suggestions,
		CreatedAt:    a.CreatedAt,
	}
}
