package service

import (
	"context"

	"prepwise/internal/domain"
	"prepwise/internal/dto"
	"prepwise/internal/repository"
	"prepwise/internal/validation"
)

// SessionService manages multi-question practice runs.
type SessionService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SessionResponse, error)
	AdvanceProgress(ctx context.Context, sessionID, questionID string) (*dto.SessionResponse, error)
}

type sessionServiceImpl struct {
	repo      repository.SessionRepository
	validator *validation.Validator
}

// NewSessionService creates a new SessionService.
func NewSessionService(repo repository.SessionRepository) SessionService {
	return &sessionServiceImpl{
		repo:      repo,
		validator: validation.NewValidator(),
	}
}

func (s *sessionServiceImpl) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	session := &domain.Session{
		Topic:          req.Topic,
		Category:       req.Category,
		QuestionsCount: req.QuestionsCount,
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, domain.NewInternalError("failed to create session", err)
	}
	return toSessionResponse(session), nil
}

func (s *sessionServiceImpl) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.repo.GetSessionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load session", err)
	}
	if session == nil {
		return nil, domain.NewSessionNotFoundError(id)
	}
	return toSessionResponse(session), nil
}

// AdvanceProgress marks one more question of the session as completed and
// records the question just answered. The completed count never exceeds the
// session's planned question count.
func (s *sessionServiceImpl) AdvanceProgress(ctx context.Context, sessionID, questionID string) (*dto.SessionResponse, error) {
	session, err := s.repo.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load session", err)
	}
	if session == nil {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}

	completed := session.CompletedCount + 1
	if completed > session.QuestionsCount {
		completed = session.QuestionsCount
	}
	if err := s.repo.UpdateProgress(ctx, sessionID, completed, questionID); err != nil {
		return nil, domain.NewInternalError("failed to update session progress", err)
	}

	session.CompletedCount = completed
	session.CurrentQuestionID = questionID
	return toSessionResponse(session), nil
}

func toSessionResponse(s *domain.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:                s.ID,
		Topic:             s.Topic,
		Category:          s.Category,
		QuestionsCount:    s.QuestionsCount,
		CompletedCount:    s.CompletedCount,
		CurrentQuestionID: s.CurrentQuestionID,
		CreatedAt:         s.CreatedAt,
	}
}
