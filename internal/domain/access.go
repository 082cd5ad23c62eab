package domain

// FreeQuota is the number of distinct questions an unauthenticated visitor
// may view before being gated behind sign-in.
const FreeQuota = 5

// AccessStatus is the server-confirmed quota state for a visitor. It is a
// read-through snapshot: clients replace it wholesale on every fetch and
// never patch it in place.
type AccessStatus struct {
	IsAuthenticated    bool `json:"isAuthenticated"`
	QuestionsViewed    int  `json:"questionsViewed"`
	QuestionsRemaining int  `json:"questionsRemaining"`
	RequiresAuth       bool `json:"requiresAuth"`
}

// NewAccessStatus derives a consistent AccessStatus from the authoritative
// inputs. RequiresAuth and QuestionsRemaining are always computed, never
// stored, so the invariant
//
//	RequiresAuth == (!IsAuthenticated && QuestionsViewed >= FreeQuota)
//
// holds by construction.
func NewAccessStatus(isAuthenticated bool, questionsViewed int) AccessStatus {
	if questionsViewed < 0 {
		questionsViewed = 0
	}
	remaining := FreeQuota - questionsViewed
	if remaining < 0 {
		remaining = 0
	}
	return AccessStatus{
		IsAuthenticated:    isAuthenticated,
		QuestionsViewed:    questionsViewed,
		QuestionsRemaining: remaining,
		RequiresAuth:       !isAuthenticated && questionsViewed >= FreeQuota,
	}
}

// DefaultAccessStatus is the optimistic state used before any fetch has
// completed. Access resolution fails open: a visitor is never locked out
// because the status endpoint was slow or unreachable.
func DefaultAccessStatus() AccessStatus {
	return NewAccessStatus(false, 0)
}

// ShouldShowAuthPrompt reports whether the UI should replace content with a
// sign-in prompt. Pure function of the status; recompute on every change.
func (s AccessStatus) ShouldShowAuthPrompt() bool {
	return s.RequiresAuth && !s.IsAuthenticated
}

// CanViewQuestions reports whether question content may be rendered.
func (s AccessStatus) CanViewQuestions() bool {
	return !s.RequiresAuth
}
