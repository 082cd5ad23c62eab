package domain

import (
	"strings"
	"time"
)

// Difficulty levels for questions.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// IsValidDifficulty reports whether s is one of the known difficulty levels.
func IsValidDifficulty(s string) bool {
	switch strings.ToLower(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is an interview practice question. Questions are owned by the
// catalog; clients treat them as immutable.
type Question struct {
	ID            string
	Title         string
	Description   string
	Category      string
	Topic         string
	Company       string
	Difficulty    string
	TimeLimit     int // minutes
	Tips          []string
	OptimalAnswer string
	IsPopular     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate validates the question
func (q *Question) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.Title) == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if strings.TrimSpace(q.Category) == "" {
		errs = append(errs, NewMissingFieldError("category"))
	}
	if strings.TrimSpace(q.Topic) == "" {
		errs = append(errs, NewMissingFieldError("topic"))
	}
	if !IsValidDifficulty(q.Difficulty) {
		errs = append(errs, NewInvalidFormatError("difficulty", q.Difficulty))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Answer is a user's submitted answer together with the feedback the
// evaluator produced for it.
type Answer struct {
	ID           string
	QuestionID   string
	UserAnswer   string
	Score        float64
	Feedback     string
	Strengths    []string
	Improvements []string
	Suggestions  []string
	CreatedAt    time.Time
}

// NewAnswer creates an answer pending evaluation.
func NewAnswer(questionID, userAnswer string) *Answer {
	return &Answer{
		QuestionID: questionID,
		UserAnswer: userAnswer,
		CreatedAt:  time.Now(),
	}
}

// Validate validates the answer
func (a *Answer) Validate() error {
	var errs ValidationErrors
	if a.QuestionID == "" {
		errs = append(errs, NewMissingFieldError("question_id"))
	}
	if strings.TrimSpace(a.UserAnswer) == "" {
		errs = append(errs, NewMissingFieldError("user_answer"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Session is a multi-question practice run. It is created by the client and
// advanced server-side as questions complete.
type Session struct {
	ID                string
	Topic             string
	Category          string
	QuestionsCount    int
	CompletedCount    int
	CurrentQuestionID string
	CreatedAt         time.Time
}

// Validate validates the session
func (s *Session) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(s.Topic) == "" {
		errs = append(errs, NewMissingFieldError("topic"))
	}
	if strings.TrimSpace(s.Category) == "" {
		errs = append(errs, NewMissingFieldError("category"))
	}
	if s.QuestionsCount <= 0 || s.QuestionsCount > 50 {
		errs = append(errs, NewOutOfRangeError("questions_count", s.QuestionsCount, 1, 50))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CommunityQuestion is a user-submitted question proposal. It shares the
// catalog transport but is reviewed before it becomes a Question.
type CommunityQuestion struct {
	ID          string
	Title       string
	Description string
	Role        string
	Topic       string
	Company     string
	Difficulty  string
	IsAnonymous bool
	SubmittedBy string
	CreatedAt   time.Time
}
