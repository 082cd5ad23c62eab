package repository

import (
	"context"
	"fmt"
	"time"

	"prepwise/internal/domain"
	"prepwise/internal/repository/models"
	"prepwise/internal/util"

	"github.com/jmoiron/sqlx"
)

// CommunityQuestionRepository defines the interface for community question
// submissions.
type CommunityQuestionRepository interface {
	SaveCommunityQuestion(ctx context.Context, question *domain.CommunityQuestion) error
}

// sqlxCommunityQuestionRepository implements CommunityQuestionRepository using sqlx.
type sqlxCommunityQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXCommunityQuestionRepository creates a new instance of sqlxCommunityQuestionRepository.
func NewSQLXCommunityQuestionRepository(db *sqlx.DB) CommunityQuestionRepository {
	return &sqlxCommunityQuestionRepository{db: db}
}

// SaveCommunityQuestion inserts a community question submission.
func (r *sqlxCommunityQuestionRepository) SaveCommunityQuestion(ctx context.Context, question *domain.CommunityQuestion) error {
	isAnonymous := 0
	if question.IsAnonymous {
		isAnonymous = 1
	}
	m := &models.CommunityQuestion{
		ID:          question.ID,
		Title:       question.Title,
		Description: util.StringToNullString(question.Description),
		Role:        question.Role,
		Topic:       question.Topic,
		Company:     util.StringToNullString(question.Company),
		Difficulty:  question.Difficulty,
		IsAnonymous: isAnonymous,
		SubmittedBy: util.StringToNullString(question.SubmittedBy),
	}
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO community_questions (id, title, description, role_name, topic, company,
			difficulty, is_anonymous, submitted_by, created_at, updated_at)
		VALUES (:ID, :TITLE, :DESCRIPTION, :ROLE_NAME, :TOPIC, :COMPANY,
			:DIFFICULTY, :IS_ANONYMOUS, :SUBMITTED_BY, :CREATED_AT, :UPDATED_AT)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to save community question: %w", err)
	}
	question.ID = m.ID
	question.CreatedAt = m.CreatedAt
	return nil
}
