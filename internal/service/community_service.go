package service

import (
	"context"

	"prepwise/internal/domain"
	"prepwise/internal/dto"
	"prepwise/internal/repository"
	"prepwise/internal/validation"
)

// CommunityService accepts user-proposed questions.
type CommunityService interface {
	SubmitCommunityQuestion(ctx context.Context, userID string, req *dto.CommunityQuestionRequest) (*dto.CommunityQuestionResponse, error)
}

type communityServiceImpl struct {
	repo      repository.CommunityQuestionRepository
	validator *validation.Validator
}

// NewCommunityService creates a new CommunityService.
func NewCommunityService(repo repository.CommunityQuestionRepository) CommunityService {
	return &communityServiceImpl{
		repo:      repo,
		validator: validation.NewValidator(),
	}
}

func (s *communityServiceImpl) SubmitCommunityQuestion(ctx context.Context, userID string, req *dto.CommunityQuestionRequest) (*dto.CommunityQuestionResponse, error) {
	if errs := s.validator.ValidateCommunityQuestionRequest(req); len(errs) > 0 {
		return nil, errs
	}

	question := &domain.CommunityQuestion{
		Title:       req.Title,
		Description: req.Description,
		Role:        req.Role,
		Topic:       req.Topic,
		Company:     req.Company,
		Difficulty:  req.Difficulty,
		IsAnonymous: req.IsAnonymous,
	}
	if !req.IsAnonymous {
		question.SubmittedBy = userID
	}

	if err := s.repo.SaveCommunityQuestion(ctx, question); err != nil {
		return nil, domain.NewInternalError("failed to save community question", err)
	}

	return &dto.CommunityQuestionResponse{
		ID:          question.ID,
		Title:       question.Title,
		Description: question.Description,
		Role:        question.Role,
		Topic:       question.Topic,
		Company:     question.Company,
		Difficulty:  question.Difficulty,
		IsAnonymous: question.IsAnonymous,
		CreatedAt:   question.CreatedAt,
	}, nil
}
