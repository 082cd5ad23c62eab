package dto

import "time"

// QuestionResponse represents a question in the API response
type QuestionResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	Topic         string    `json:"topic"`
	Company       string    `json:"company,omitempty"`
	Difficulty    string    `json:"difficulty"`
	TimeLimit     int       `json:"timeLimit"`
	Tips          []string  `json:"tips,omitempty"`
	OptimalAnswer string    `json:"optimalAnswer,omitempty"`
	IsPopular     bool      `json:"isPopular"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// SubmitAnswerRequest represents a user's answer submission. SessionID is
// optional; when set, the submission also advances that practice session.
type SubmitAnswerRequest struct {
	QuestionID string `json:"questionId"`
	UserAnswer string `json:"userAnswer"`
	SessionID  string `json:"sessionId,omitempty"`
}

// AnswerResponse carries the stored answer together with its feedback.
type AnswerResponse struct {
	ID           string    `json:"id"`
	QuestionID   string    `json:"questionId"`
	UserAnswer   string    `json:"userAnswer"`
	Score        float64   `json:"score,omitempty"`
	Feedback     string    `json:"feedback,omitempty"`
	Strengths    []string  `json:"strengths,omitempty"`
	Improvements []string  `json:"improvements,omitempty"`
	Suggestions  []string  `json:"suggestions,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// CreateSessionRequest starts a multi-question practice run.
type CreateSessionRequest struct {
	Topic          string `json:"topic"`
	Category       string `json:"category"`
	QuestionsCount int    `json:"questionsCount"`
}

// SessionResponse represents a practice session in the API response
type SessionResponse struct {
	ID                string    `json:"id"`
	Topic             string    `json:"topic"`
	Category          string    `json:"category"`
	QuestionsCount    int       `json:"questionsCount"`
	CompletedCount    int       `json:"completedCount"`
	CurrentQuestionID string    `json:"currentQuestionId,omitempty"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
}

// CommunityQuestionRequest represents a community question submission
type CommunityQuestionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Role        string `json:"role"`
	Topic       string `json:"topic"`
	Company     string `json:"company,omitempty"`
	Difficulty  string `json:"difficulty"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// CommunityQuestionResponse represents the created community question record.
type CommunityQuestionResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Role        string    `json:"role"`
	Topic       string    `json:"topic"`
	Company     string    `json:"company,omitempty"`
	Difficulty  string    `json:"difficulty"`
	IsAnonymous bool      `json:"isAnonymous"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
