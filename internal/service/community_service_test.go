package service_test

import (
	"context"
	"errors"
	"testing"

	"prepwise/internal/domain"
	"prepwise/internal/dto"
	"prepwise/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCommunityQuestionRepository
type MockCommunityQuestionRepository struct {
	SaveCommunityQuestionFunc func(ctx context.Context, question *domain.CommunityQuestion) error
}

func (m *MockCommunityQuestionRepository) SaveCommunityQuestion(ctx context.Context, question *domain.CommunityQuestion) error {
	if m.SaveCommunityQuestionFunc != nil {
		return m.SaveCommunityQuestionFunc(ctx, question)
	}
	panic("MockCommunityQuestionRepository.SaveCommunityQuestionFunc not implemented")
}

func validCommunityRequest() *dto.CommunityQuestionRequest {
	return &dto.CommunityQuestionRequest{
		Title:      "How do you estimate a roadmap?",
		Role:       "Product Management",
		Topic:      "Product Execution",
		Difficulty: "medium",
	}
}

func TestCommunityService_SubmitCommunityQuestion(t *testing.T) {
	var saved *domain.CommunityQuestion
	repo := &MockCommunityQuestionRepository{
		SaveCommunityQuestionFunc: func(ctx context.Context, question *domain.CommunityQuestion) error {
			question.ID = "cq1"
			saved = question
			return nil
		},
	}
	svc := service.NewCommunityService(repo)

	resp, err := svc.SubmitCommunityQuestion(context.Background(), "user1", validCommunityRequest())
	require.NoError(t, err)
	assert.Equal(t, "cq1", resp.ID)
	assert.Equal(t, "user1", saved.SubmittedBy)
}

func TestCommunityService_AnonymousSubmissionDropsUserID(t *testing.T) {
	var saved *domain.CommunityQuestion
	repo := &MockCommunityQuestionRepository{
		SaveCommunityQuestionFunc: func(ctx context.Context, question *domain.CommunityQuestion) error {
			saved = question
			return nil
		},
	}
	svc := service.NewCommunityService(repo)

	req := validCommunityRequest()
	req.IsAnonymous = true
	_, err := svc.SubmitCommunityQuestion(context.Background(), "user1", req)
	require.NoError(t, err)
	assert.Empty(t, saved.SubmittedBy)
	assert.True(t, saved.IsAnonymous)
}

func TestCommunityService_ValidationFailureSkipsSave(t *testing.T) {
	svc := service.NewCommunityService(&MockCommunityQuestionRepository{})

	req := validCommunityRequest()
	req.Title = ""
	_, err := svc.SubmitCommunityQuestion(context.Background(), "user1", req)
	require.Error(t, err)

	var validationErrs domain.ValidationErrors
	assert.True(t, errors.As(err, &validationErrs))
}
