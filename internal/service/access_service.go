package service

import (
	"context"
	"errors"
	"time"

	"prepwise/internal/cache"
	"prepwise/internal/domain"
	"prepwise/internal/dto"
	"prepwise/internal/logger"

	"go.uber.org/zap"
)

// AccessService is the authority for the free-tier question quota. Viewed
// counts live server-side only; clients never report increments, which rules
// out double counting.
type AccessService interface {
	// GetAccessStatus returns the current quota state for a visitor.
	GetAccessStatus(ctx context.Context, visitorID string, isAuthenticated bool) *dto.AccessStatusResponse

	// CheckQuestionAccess returns an AUTH_REQUIRED domain error when an
	// anonymous visitor over quota requests a question they have not
	// already viewed.
	CheckQuestionAccess(ctx context.Context, visitorID, questionID string, isAuthenticated bool) error

	// RecordQuestionView marks a question as viewed by a visitor. Distinct
	// questions are counted once; re-views are free.
	RecordQuestionView(ctx context.Context, visitorID, questionID string) error
}

type accessServiceImpl struct {
	cache      domain.Cache
	counterTTL time.Duration
}

// NewAccessService creates a new AccessService backed by the given cache.
func NewAccessService(cacheAdapter domain.Cache, counterTTL time.Duration) AccessService {
	return &accessServiceImpl{
		cache:      cacheAdapter,
		counterTTL: counterTTL,
	}
}

func (s *accessServiceImpl) viewedKey(visitorID string) string {
	return cache.GenerateCacheKey("access", "viewed", visitorID)
}

// viewedCount returns the number of distinct questions the visitor has
// viewed. Counter read failures resolve to zero: access fails open, a
// degraded cache must never lock visitors out.
func (s *accessServiceImpl) viewedCount(ctx context.Context, visitorID string) int {
	viewed, err := s.cache.HGetAll(ctx, s.viewedKey(visitorID))
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Failed to read visitor view counter, failing open",
				zap.Error(err),
				zap.String("visitor_id", visitorID),
			)
		}
		return 0
	}
	return len(viewed)
}

func (s *accessServiceImpl) GetAccessStatus(ctx context.Context, visitorID string, isAuthenticated bool) *dto.AccessStatusResponse {
	status := domain.NewAccessStatus(isAuthenticated, s.viewedCount(ctx, visitorID))
	return &dto.AccessStatusResponse{
		IsAuthenticated:    status.IsAuthenticated,
		QuestionsViewed:    status.QuestionsViewed,
		QuestionsRemaining: status.QuestionsRemaining,
		RequiresAuth:       status.RequiresAuth,
	}
}

func (s *accessServiceImpl) CheckQuestionAccess(ctx context.Context, visitorID, questionID string, isAuthenticated bool) error {
	if isAuthenticated {
		return nil
	}

	key := s.viewedKey(visitorID)
	if _, err := s.cache.HGet(ctx, key, questionID); err == nil {
		// Already viewed; re-reading a question never consumes quota.
		return nil
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Get().Warn("Failed to read visitor view set, failing open",
			zap.Error(err),
			zap.String("visitor_id", visitorID),
		)
		return nil
	}

	viewed := s.viewedCount(ctx, visitorID)
	if viewed >= domain.FreeQuota {
		return domain.NewAuthRequiredError(viewed)
	}
	return nil
}

func (s *accessServiceImpl) RecordQuestionView(ctx context.Context, visitorID, questionID string) error {
	key := s.viewedKey(visitorID)
	if err := s.cache.HSet(ctx, key, questionID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		logger.Get().Warn("Failed to record question view",
			zap.Error(err),
			zap.String("visitor_id", visitorID),
			zap.String("question_id", questionID),
		)
		return nil // view tracking is best-effort, never block the read
	}
	if err := s.cache.Expire(ctx, key, s.counterTTL); err != nil {
		logger.Get().Warn("Failed to refresh view counter TTL", zap.Error(err), zap.String("key", key))
	}
	return nil
}
