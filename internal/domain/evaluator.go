package domain

import "context"

// Feedback is the structured evaluation of a submitted answer. The shape is
// explicit so no untyped payload crosses the service boundary.
type Feedback struct {
	Score        float64  `json:"score"` // 0-100
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Suggestions  []string `json:"suggestions"`
}

// AnswerEvaluator produces feedback for a user's answer to a question. The
// catalog evaluates synchronously to the submission call; there is no polling
// contract.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, question *Question, userAnswer string) (*Feedback, error)
}
