package gate_test

import (
	"context"
	"errors"
	"testing"

	"prepwise/internal/domain"
	"prepwise/internal/dto"
	"prepwise/internal/gate"

	"github.com/stretchr/testify/assert"
)

// MockStatusSource
type MockStatusSource struct {
	FetchAccessStatusFunc func(ctx context.Context) (*dto.AccessStatusResponse, error)
	FetchCurrentUserFunc  func(ctx context.Context) (*dto.UserResponse, error)
}

func (m *MockStatusSource) FetchAccessStatus(ctx context.Context) (*dto.AccessStatusResponse, error) {
	if m.FetchAccessStatusFunc != nil {
		return m.FetchAccessStatusFunc(ctx)
	}
	panic("MockStatusSource.FetchAccessStatusFunc not implemented")
}

func (m *MockStatusSource) FetchCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	if m.FetchCurrentUserFunc != nil {
		return m.FetchCurrentUserFunc(ctx)
	}
	panic("MockStatusSource.FetchCurrentUserFunc not implemented")
}

func TestGate_StartsOpen(t *testing.T) {
	g := gate.NewGate(&MockStatusSource{})

	status := g.Status()
	assert.False(t, status.IsAuthenticated)
	assert.Equal(t, 0, status.QuestionsViewed)
	assert.Equal(t, domain.FreeQuota, status.QuestionsRemaining)
	assert.True(t, g.CanViewQuestions())
	assert.False(t, g.ShouldShowAuthPrompt())
}

func TestGate_RefreshAppliesServerState(t *testing.T) {
	source := &MockStatusSource{
		FetchAccessStatusFunc: func(ctx context.Context) (*dto.AccessStatusResponse, error) {
			return &dto.AccessStatusResponse{
				IsAuthenticated: false,
				QuestionsViewed: 5,
			}, nil
		},
	}
	g := gate.NewGate(source)

	status, err := g.Refresh(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 5, status.QuestionsViewed)
	assert.True(t, status.RequiresAuth)
	assert.True(t, g.ShouldShowAuthPrompt())
	assert.False(t, g.CanViewQuestions())
}

func TestGate_RefreshFailsOpen(t *testing.T) {
	source := &MockStatusSource{
		FetchAccessStatusFunc: func(ctx context.Context) (*dto.AccessStatusResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
	g := gate.NewGate(source)

	// Put the gate in a locked state first, then fail a refresh: the
	// visitor must end up unlocked, never stuck on a stale prompt.
	seq := g.Begin()
	g.Apply(seq, domain.NewAccessStatus(false, domain.FreeQuota))
	assert.True(t, g.ShouldShowAuthPrompt())

	status, err := g.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, status.QuestionsViewed)
	assert.False(t, status.RequiresAuth)
	assert.True(t, g.CanViewQuestions())
}

func TestGate_StaleResponseDiscarded(t *testing.T) {
	g := gate.NewGate(&MockStatusSource{})

	// Two refreshes issued in order; the older one completes last.
	first := g.Begin()
	second := g.Begin()

	assert.True(t, g.Apply(second, domain.NewAccessStatus(false, 5)))
	assert.False(t, g.Apply(first, domain.NewAccessStatus(false, 2)))

	status := g.Status()
	assert.Equal(t, 5, status.QuestionsViewed)
	assert.True(t, status.RequiresAuth)
}

func TestGate_ReplayedSequenceDiscarded(t *testing.T) {
	g := gate.NewGate(&MockStatusSource{})

	seq := g.Begin()
	assert.True(t, g.Apply(seq, domain.NewAccessStatus(false, 3)))
	assert.False(t, g.Apply(seq, domain.NewAccessStatus(false, 1)))
	assert.Equal(t, 3, g.Status().QuestionsViewed)
}

func TestGate_ConsumeDemoMarker(t *testing.T) {
	g := gate.NewGate(&MockStatusSource{})

	cleaned, consumed := g.ConsumeDemoMarker("https://app.example.com/?message=signed-in-demo&tab=popular")
	assert.True(t, consumed)
	assert.NotContains(t, cleaned, "message=signed-in-demo")
	assert.Contains(t, cleaned, "tab=popular")
	assert.True(t, g.IsAuthenticated())
	assert.False(t, g.ShouldShowAuthPrompt())
}

func TestGate_ConsumeDemoMarker_OtherMessagesIgnored(t *testing.T) {
	g := gate.NewGate(&MockStatusSource{})

	raw := "https://app.example.com/?message=welcome-back"
	cleaned, consumed := g.ConsumeDemoMarker(raw)
	assert.False(t, consumed)
	assert.Equal(t, raw, cleaned)
	assert.False(t, g.IsAuthenticated())
}

func TestGate_ConsumeDemoMarker_NoQuery(t *testing.T) {
	g := gate.NewGate(&MockStatusSource{})

	raw := "https://app.example.com/questions"
	cleaned, consumed := g.ConsumeDemoMarker(raw)
	assert.False(t, consumed)
	assert.Equal(t, raw, cleaned)
}

func TestGate_DemoSessionPinsAuthentication(t *testing.T) {
	source := &MockStatusSource{
		FetchAccessStatusFunc: func(ctx context.Context) (*dto.AccessStatusResponse, error) {
			// Server has no idea about the local demo session.
			return &dto.AccessStatusResponse{
				IsAuthenticated: false,
				QuestionsViewed: domain.FreeQuota,
			}, nil
		},
	}
	g := gate.NewGate(source)

	_, consumed := g.ConsumeDemoMarker("/?message=signed-in-demo")
	assert.True(t, consumed)

	status, err := g.Refresh(context.Background())
	assert.NoError(t, err)
	assert.True(t, status.IsAuthenticated)
	assert.Equal(t, domain.FreeQuota, status.QuestionsViewed)
	assert.False(t, status.RequiresAuth)
	assert.True(t, g.CanViewQuestions())
}

func TestGate_CurrentUser_DemoWins(t *testing.T) {
	source := &MockStatusSource{
		FetchCurrentUserFunc: func(ctx context.Context) (*dto.UserResponse, error) {
			t.Fatal("demo session must not hit the network")
			return nil, nil
		},
	}
	g := gate.NewGate(source)
	g.ConsumeDemoMarker("/?message=signed-in-demo")

	user, err := g.CurrentUser(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "demo", user.ID)
}

func TestGate_CurrentUser_AnonymousIsNotAnError(t *testing.T) {
	source := &MockStatusSource{
		FetchCurrentUserFunc: func(ctx context.Context) (*dto.UserResponse, error) {
			return nil, nil
		},
	}
	g := gate.NewGate(source)

	user, err := g.CurrentUser(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, user)
}
