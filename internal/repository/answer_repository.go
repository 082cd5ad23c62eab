package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prepwise/internal/domain"
	"prepwise/internal/repository/models"
	"prepwise/internal/util"

	"github.com/jmoiron/sqlx"
)

// AnswerRepository defines the interface for answer persistence.
type AnswerRepository interface {
	SaveAnswer(ctx context.Context, answer *domain.Answer) error
	GetAnswerByID(ctx context.Context, id string) (*domain.Answer, error)
}

// sqlxAnswerRepository implements AnswerRepository using sqlx.
type sqlxAnswerRepository struct {
	db *sqlx.DB
}

// NewSQLXAnswerRepository creates a new instance of sqlxAnswerRepository.
func NewSQLXAnswerRepository(db *sqlx.DB) AnswerRepository {
	return &sqlxAnswerRepository{db: db}
}

// SaveAnswer inserts a fully evaluated answer record.
func (r *sqlxAnswerRepository) SaveAnswer(ctx context.Context, answer *domain.Answer) error {
	m := answerToModel(answer)
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO answers (id, question_id, user_answer, score, feedback,
			strengths, improvements, suggestions, created_at, updated_at)
		VALUES (:ID, :QUESTION_ID, :USER_ANSWER, :SCORE, :FEEDBACK,
			:STRENGTHS, :IMPROVEMENTS, :SUGGESTIONS, :CREATED_AT, :UPDATED_AT)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}
	answer.ID = m.ID
	answer.CreatedAt = m.CreatedAt
	return nil
}

// GetAnswerByID retrieves an answer by ID. Returns nil, nil when absent.
func (r *sqlxAnswerRepository) GetAnswerByID(ctx context.Context, id string) (*domain.Answer, error) {
	query := `SELECT id, question_id, user_answer, score, feedback, strengths, improvements,
			suggestions, created_at, updated_at, deleted_at
		FROM answers WHERE id = :id AND deleted_at IS NULL`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetAnswerByID: %w", err)
	}
	defer stmt.Close()

	var m models.Answer
	if err := stmt.GetContext(ctx, &m, map[string]interface{}{"id": id}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get answer by id: %w", err)
	}
	return answerToDomain(&m), nil
}

func answerToDomain(m *models.Answer) *domain.Answer {
	return &domain.Answer{
		ID:           m.ID,
		QuestionID:   m.QuestionID,
		UserAnswer:   m.UserAnswer,
		Score:        m.Score.Float64,
		Feedback:     util.NullStringToString(m.Feedback),
		Strengths:    m.Strengths,
		Improvements: m.Improvements,
		Suggestions:  m.Suggestions,
		CreatedAt:    m.CreatedAt,
	}
}

func answerToModel(a *domain.Answer) *models.Answer {
	return &models.Answer{
		ID:           a.ID,
		QuestionID:   a.QuestionID,
		UserAnswer:   a.UserAnswer,
		Score:        util.Float64ToNullFloat64(a.Score),
		Feedback:     util.StringToNullString(a.Feedback),
		Strengths:    models.StringSlice(a.Strengths),
		Improvements: models.StringSlice(a.Improvements),
		Suggestions:  models.StringSlice(a.Suggestions),
	}
}
