// Package gate tracks the free-tier access state on the client side of the
// catalog API. It holds a single authoritative snapshot, serializes
// concurrent refreshes by issue order, and fails open when the status
// endpoint is unreachable.
package gate

import (
	"context"
	"net/url"
	"sync"

	"prepwise/internal/domain"
	"prepwise/internal/dto"
	"prepwise/internal/logger"

	"go.uber.org/zap"
)

const (
	messageParam    = "message"
	demoMarkerValue = "signed-in-demo"

	demoUserID    = "demo"
	demoUserEmail = "demo@prepwise.local"
)

// StatusSource fetches authoritative access state from the backend.
// *catalog.Client satisfies it.
type StatusSource interface {
	FetchAccessStatus(ctx context.Context) (*dto.AccessStatusResponse, error)
	FetchCurrentUser(ctx context.Context) (*dto.UserResponse, error)
}

// Gate is the client-side access gate. All state transitions go through
// Apply, which enforces that only the most recently issued refresh can win;
// a stale response that completes late is discarded, never applied.
type Gate struct {
	mu     sync.Mutex
	source StatusSource

	nextSeq    uint64
	appliedSeq uint64
	status     domain.AccessStatus
	demoUser   *dto.UserResponse
}

// NewGate creates a gate in the optimistic default state: anonymous, zero
// questions viewed, full quota remaining.
func NewGate(source StatusSource) *Gate {
	return &Gate{
		source: source,
		status: domain.DefaultAccessStatus(),
	}
}

// Begin issues a sequence number for a refresh about to start. Sequence
// numbers are strictly increasing in issue order.
func (g *Gate) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextSeq++
	return g.nextSeq
}

// Apply installs a fetched status if seq belongs to a refresh issued after
// the one whose result is currently applied. It reports whether the status
// was installed. An active demo session pins IsAuthenticated regardless of
// what the server reported.
func (g *Gate) Apply(seq uint64, status domain.AccessStatus) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seq <= g.appliedSeq {
		return false
	}
	g.appliedSeq = seq
	if g.demoUser != nil {
		status = domain.NewAccessStatus(true, status.QuestionsViewed)
	}
	g.status = status
	return true
}

// Refresh fetches the current access status and applies it. A fetch error
// applies the fail-open default instead, so a visitor is never locked out
// by an unreachable status endpoint; the error is still returned for the
// caller to observe.
func (g *Gate) Refresh(ctx context.Context) (domain.AccessStatus, error) {
	seq := g.Begin()

	resp, err := g.source.FetchAccessStatus(ctx)
	if err != nil {
		logger.Get().Warn("Access status fetch failed, staying open", zap.Error(err))
		g.Apply(seq, domain.DefaultAccessStatus())
		return g.Status(), err
	}

	g.Apply(seq, domain.NewAccessStatus(resp.IsAuthenticated, resp.QuestionsViewed))
	return g.Status(), nil
}

// ConsumeDemoMarker inspects a URL for the demo sign-in marker. When
// present it activates a local demo session, strips the marker from the
// URL, and returns the cleaned URL. No network call is made; the marker is
// trusted as-is. The second return reports whether the marker was consumed.
func (g *Gate) ConsumeDemoMarker(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, false
	}
	q := u.Query()
	if q.Get(messageParam) != demoMarkerValue {
		return rawURL, false
	}
	q.Del(messageParam)
	u.RawQuery = q.Encode()

	g.mu.Lock()
	g.demoUser = &dto.UserResponse{
		ID:        demoUserID,
		Email:     demoUserEmail,
		FirstName: "Demo",
		LastName:  "User",
	}
	g.status = domain.NewAccessStatus(true, g.status.QuestionsViewed)
	g.mu.Unlock()

	return u.String(), true
}

// CurrentUser resolves the signed-in user. An active demo session wins
// over the backend; otherwise the answer comes from the server, where
// (nil, nil) means anonymous.
func (g *Gate) CurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	g.mu.Lock()
	if g.demoUser != nil {
		user := *g.demoUser
		g.mu.Unlock()
		return &user, nil
	}
	g.mu.Unlock()
	return g.source.FetchCurrentUser(ctx)
}

// Status returns the currently applied snapshot.
func (g *Gate) Status() domain.AccessStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// IsAuthenticated reports whether the applied snapshot is authenticated.
func (g *Gate) IsAuthenticated() bool {
	return g.Status().IsAuthenticated
}

// CanViewQuestions reports whether question content may be shown.
func (g *Gate) CanViewQuestions() bool {
	return g.Status().CanViewQuestions()
}

// ShouldShowAuthPrompt reports whether the sign-in prompt should replace
// question content.
func (g *Gate) ShouldShowAuthPrompt() bool {
	return g.Status().ShouldShowAuthPrompt()
}
