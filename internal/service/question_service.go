package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"prepwise/internal/cache"
	"prepwise/internal/domain"
	"prepwise/internal/dto"
	"prepwise/internal/logger"
	"prepwise/internal/repository"

	"go.uber.org/zap"
)

// QuestionService defines catalog read operations over questions.
type QuestionService interface {
	GetPopularQuestions(ctx context.Context, company string) ([]*dto.QuestionResponse, error)
	GetQuestionsByTopic(ctx context.Context, topic, category string) ([]*dto.QuestionResponse, error)
	GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error)
	SearchQuestions(ctx context.Context, query string) ([]*dto.QuestionResponse, error)
}

type questionServiceImpl struct {
	repo       repository.QuestionRepository
	cache      domain.Cache
	popularTTL time.Duration
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(repo repository.QuestionRepository, cacheAdapter domain.Cache, popularTTL time.Duration) QuestionService {
	return &questionServiceImpl{
		repo:       repo,
		cache:      cacheAdapter,
		popularTTL: popularTTL,
	}
}

// GetPopularQuestions returns the popular question set, cached per company
// filter. An empty company means the unfiltered set.
func (s *questionServiceImpl) GetPopularQuestions(ctx context.Context, company string) ([]*dto.QuestionResponse, error) {
	cacheID := "all"
	if company != "" {
		cacheID = strings.ToLower(company)
	}
	key := cache.GenerateCacheKey("question", "popular", cacheID)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var result []*dto.QuestionResponse
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
		logger.Get().Warn("Failed to unmarshal cached popular questions", zap.String("key", key))
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Get().Warn("Popular question cache read failed", zap.Error(err), zap.String("key", key))
	}

	questions, err := s.repo.GetPopularQuestions(ctx, company)
	if err != nil {
		return nil, domain.NewInternalError("failed to load popular questions", err)
	}

	result := toQuestionResponses(questions)
	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(data), s.popularTTL); err != nil {
			logger.Get().Warn("Failed to cache popular questions", zap.Error(err), zap.String("key", key))
		}
	}
	return result, nil
}

// GetQuestionsByTopic returns questions filtered by topic and category. The
// filtering happens in the repository query; no re-filtering here.
func (s *questionServiceImpl) GetQuestionsByTopic(ctx context.Context, topic, category string) ([]*dto.QuestionResponse, error) {
	questions, err := s.repo.GetQuestionsByTopic(ctx, topic, category)
	if err != nil {
		return nil, domain.NewInternalError("failed to load questions by topic", err)
	}
	return toQuestionResponses(questions), nil
}

// GetQuestion returns a single question by ID.
func (s *questionServiceImpl) GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	question, err := s.repo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load question", err)
	}
	if question == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return toQuestionResponse(question), nil
}

// SearchQuestions performs a free-text search. Empty query behavior is
// database-defined; it is not validated here.
func (s *questionServiceImpl) SearchQuestions(ctx context.Context, query string) ([]*dto.QuestionResponse, error) {
	questions, err := s.repo.SearchQuestions(ctx, query)
	if err != nil {
		return nil, domain.NewInternalError("failed to search questions", err)
	}
	return toQuestionResponses(questions), nil
}

func toQuestionResponse(q *domain.Question) *dto.QuestionResponse {
	return &dto.QuestionResponse{
		ID:            q.ID,
		Title:         q.Title,
		Description:   q.Description,
		Category:      q.Category,
		Topic:         q.Topic,
		Company:       q.Company,
		Difficulty:    q.Difficulty,
		TimeLimit:     q.TimeLimit,
		Tips:          q.Tips,
		OptimalAnswer: q.OptimalAnswer,
		IsPopular:     q.IsPopular,
		CreatedAt:     q.CreatedAt,
	}
}

func toQuestionResponses(questions []*domain.Question) []*dto.QuestionResponse {
	result := make([]*dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		result = append(result, toQuestionResponse(q))
	}
	return result
}
