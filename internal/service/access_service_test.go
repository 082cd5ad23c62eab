package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"prepwise/internal/domain"
	"prepwise/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCache
type MockCache struct {
	GetFunc     func(ctx context.Context, key string) (string, error)
	SetFunc     func(ctx context.Context, key string, value string, expiration time.Duration) error
	DeleteFunc  func(ctx context.Context, key string) error
	PingFunc    func(ctx context.Context) error
	HGetFunc    func(ctx context.Context, key, field string) (string, error)
	HGetAllFunc func(ctx context.Context, key string) (map[string]string, error)
	HSetFunc    func(ctx context.Context, key string, field string, value string) error
	ExpireFunc  func(ctx context.Context, key string, expiration time.Duration) error
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	panic("MockCache.GetFunc not implemented")
}
func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	panic("MockCache.SetFunc not implemented")
}
func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	panic("MockCache.DeleteFunc not implemented")
}
func (m *MockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	panic("MockCache.PingFunc not implemented")
}
func (m *MockCache) HGet(ctx context.Context, key, field string) (string, error) {
	if m.HGetFunc != nil {
		return m.HGetFunc(ctx, key, field)
	}
	panic("MockCache.HGetFunc not implemented")
}
func (m *MockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.HGetAllFunc != nil {
		return m.HGetAllFunc(ctx, key)
	}
	panic("MockCache.HGetAllFunc not implemented")
}
func (m *MockCache) HSet(ctx context.Context, key string, field string, value string) error {
	if m.HSetFunc != nil {
		return m.HSetFunc(ctx, key, field, value)
	}
	panic("MockCache.HSetFunc not implemented")
}
func (m *MockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if m.ExpireFunc != nil {
		return m.ExpireFunc(ctx, key, expiration)
	}
	panic("MockCache.ExpireFunc not implemented")
}

func viewedHash(n int) map[string]string {
	viewed := make(map[string]string, n)
	for i := 0; i < n; i++ {
		viewed[string(rune('a'+i))] = "2026-01-01T00:00:00Z"
	}
	return viewed
}

func TestAccessService_GetAccessStatus(t *testing.T) {
	mockCache := &MockCache{
		HGetAllFunc: func(ctx context.Context, key string) (map[string]string, error) {
			return viewedHash(3), nil
		},
	}
	svc := service.NewAccessService(mockCache, time.Hour)

	status := svc.GetAccessStatus(context.Background(), "visitor1", false)
	assert.Equal(t, 3, status.QuestionsViewed)
	assert.Equal(t, 2, status.QuestionsRemaining)
	assert.False(t, status.RequiresAuth)
}

func TestAccessService_GetAccessStatus_FailsOpenOnCacheError(t *testing.T) {
	mockCache := &MockCache{
		HGetAllFunc: func(ctx context.Context, key string) (map[string]string, error) {
			return nil, errors.New("redis: connection refused")
		},
	}
	svc := service.NewAccessService(mockCache, time.Hour)

	status := svc.GetAccessStatus(context.Background(), "visitor1", false)
	assert.Equal(t, 0, status.QuestionsViewed)
	assert.Equal(t, domain.FreeQuota, status.QuestionsRemaining)
	assert.False(t, status.RequiresAuth)
}

func TestAccessService_CheckQuestionAccess_Authenticated(t *testing.T) {
	// No cache calls expected at all for authenticated users.
	svc := service.NewAccessService(&MockCache{}, time.Hour)

	err := svc.CheckQuestionAccess(context.Background(), "visitor1", "q1", true)
	assert.NoError(t, err)
}

func TestAccessService_CheckQuestionAccess_UnderQuota(t *testing.T) {
	mockCache := &MockCache{
		HGetFunc: func(ctx context.Context, key, field string) (string, error) {
			return "", domain.ErrCacheMiss
		},
		HGetAllFunc: func(ctx context.Context, key string) (map[string]string, error) {
			return viewedHash(domain.FreeQuota - 1), nil
		},
	}
	svc := service.NewAccessService(mockCache, time.Hour)

	err := svc.CheckQuestionAccess(context.Background(), "visitor1", "q-new", false)
	assert.NoError(t, err)
}

func TestAccessService_CheckQuestionAccess_QuotaExhausted(t *testing.T) {
	mockCache := &MockCache{
		HGetFunc: func(ctx context.Context, key, field string) (string, error) {
			return "", domain.ErrCacheMiss
		},
		HGetAllFunc: func(ctx context.Context, key string) (map[string]string, error) {
			return viewedHash(domain.FreeQuota), nil
		},
	}
	svc := service.NewAccessService(mockCache, time.Hour)

	err := svc.CheckQuestionAccess(context.Background(), "visitor1", "q-new", false)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeAuthRequired, domainErr.Code)
	assert.Equal(t, domain.FreeQuota, domainErr.Context["questions_viewed"])
}

func TestAccessService_CheckQuestionAccess_ReViewIsFree(t *testing.T) {
	mockCache := &MockCache{
		HGetFunc: func(ctx context.Context, key, field string) (string, error) {
			assert.Equal(t, "q-seen", field)
			return "2026-01-01T00:00:00Z", nil
		},
	}
	svc := service.NewAccessService(mockCache, time.Hour)

	// Over quota, but this question was already viewed.
	err := svc.CheckQuestionAccess(context.Background(), "visitor1", "q-seen", false)
	assert.NoError(t, err)
}

func TestAccessService_CheckQuestionAccess_FailsOpenOnCacheError(t *testing.T) {
	mockCache := &MockCache{
		HGetFunc: func(ctx context.Context, key, field string) (string, error) {
			return "", errors.New("redis: connection refused")
		},
	}
	svc := service.NewAccessService(mockCache, time.Hour)

	err := svc.CheckQuestionAccess(context.Background(), "visitor1", "q-new", false)
	assert.NoError(t, err)
}

func TestAccessService_RecordQuestionView(t *testing.T) {
	var setKey, setField string
	var expireKey string
	var expireTTL time.Duration

	mockCache := &MockCache{
		HSetFunc: func(ctx context.Context, key string, field string, value string) error {
			setKey, setField = key, field
			return nil
		},
		ExpireFunc: func(ctx context.Context, key string, expiration time.Duration) error {
			expireKey, expireTTL = key, expiration
			return nil
		},
	}
	svc := service.NewAccessService(mockCache, 30*24*time.Hour)

	err := svc.RecordQuestionView(context.Background(), "visitor1", "q1")
	require.NoError(t, err)
	assert.Contains(t, setKey, "visitor1")
	assert.Equal(t, "q1", setField)
	assert.Equal(t, setKey, expireKey)
	assert.Equal(t, 30*24*time.Hour, expireTTL)
}

func TestAccessService_RecordQuestionView_BestEffort(t *testing.T) {
	mockCache := &MockCache{
		HSetFunc: func(ctx context.Context, key string, field string, value string) error {
			return errors.New("redis: connection refused")
		},
	}
	svc := service.NewAccessService(mockCache, time.Hour)

	// A failed write must never surface to the question read path.
	err := svc.RecordQuestionView(context.Background(), "visitor1", "q1")
	assert.NoError(t, err)
}
