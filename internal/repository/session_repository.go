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

// SessionRepository defines the interface for practice session persistence.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByID(ctx context.Context, id string) (*domain.Session, error)
	UpdateProgress(ctx context.Context, sessionID string, completedCount int, currentQuestionID string) error
}

// sqlxSessionRepository implements SessionRepository using sqlx.
type sqlxSessionRepository struct {
	db *sqlx.DB
}

// NewSQLXSessionRepository creates a new instance of sqlxSessionRepository.
func NewSQLXSessionRepository(db *sqlx.DB) SessionRepository {
	return &sqlxSessionRepository{db: db}
}

// CreateSession inserts a new practice session.
func (r *sqlxSessionRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	m := &models.Session{
		ID:                session.ID,
		Topic:             session.Topic,
		Category:          session.Category,
		QuestionsCount:    session.QuestionsCount,
		CompletedCount:    session.CompletedCount,
		CurrentQuestionID: util.StringToNullString(session.CurrentQuestionID),
	}
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO sessions (id, topic, category, questions_count, completed_count,
			current_question_id, created_at, updated_at)
		VALUES (:ID, :TOPIC, :CATEGORY, :QUESTIONS_COUNT, :COMPLETED_COUNT,
			:CURRENT_QUESTION_ID, :CREATED_AT, :UPDATED_AT)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	session.ID = m.ID
	session.CreatedAt = m.CreatedAt
	return nil
}

// GetSessionByID retrieves a session by ID. Returns nil, nil when absent.
func (r *sqlxSessionRepository) GetSessionByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT id, topic, category, questions_count, completed_count, current_question_id,
			created_at, updated_at, deleted_at
		FROM sessions WHERE id = :id AND deleted_at IS NULL`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetSessionByID: %w", err)
	}
	defer stmt.Close()

	var m models.Session
	if err := stmt.GetContext(ctx, &m, map[string]interface{}{"id": id}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return &domain.Session{
		ID:                m.ID,
		Topic:             m.Topic,
		Category:          m.Category,
		QuestionsCount:    m.QuestionsCount,
		CompletedCount:    m.CompletedCount,
		CurrentQuestionID: util.NullStringToString(m.CurrentQuestionID),
		CreatedAt:         m.CreatedAt,
	}, nil
}

// UpdateProgress advances a session's completion state.
func (r *sqlxSessionRepository) UpdateProgress(ctx context.Context, sessionID string, completedCount int, currentQuestionID string) error {
	query := `UPDATE sessions SET
			completed_count = :completed_count,
			current_question_id = :current_question_id,
			updated_at = :updated_at
		WHERE id = :id AND deleted_at IS NULL`

	args := map[string]interface{}{
		"id":                  sessionID,
		"completed_count":     completedCount,
		"current_question_id": util.StringToNullString(currentQuestionID),
		"updated_at":          time.Now(),
	}

	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		return fmt.Errorf("failed to update session progress: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
