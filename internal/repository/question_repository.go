package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"prepwise/internal/domain"
	"prepwise/internal/repository/models"
	"prepwise/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuestionRepository defines the interface for question persistence.
type QuestionRepository interface {
	GetPopularQuestions(ctx context.Context, company string) ([]*domain.Question, error)
	GetQuestionsByTopic(ctx context.Context, topic, category string) ([]*domain.Question, error)
	GetQuestionByID(ctx context.Context, id string) (*domain.Question, error)
	SearchQuestions(ctx context.Context, query string) ([]*domain.Question, error)
	SaveQuestion(ctx context.Context, question *domain.Question) error
}

const questionColumns = `id, title, description, category, topic, company, difficulty,
	time_limit, tips, optimal_answer, is_popular, created_at, updated_at, deleted_at`

// sqlxQuestionRepository implements QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXQuestionRepository creates a new instance of sqlxQuestionRepository.
func NewSQLXQuestionRepository(db *sqlx.DB) QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

// GetPopularQuestions returns questions flagged as popular, optionally
// narrowed to a company. An empty company means no company filter.
func (r *sqlxQuestionRepository) GetPopularQuestions(ctx context.Context, company string) ([]*domain.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE is_popular = 1 AND deleted_at IS NULL`, questionColumns)
	args := map[string]interface{}{}
	if company != "" {
		query += ` AND LOWER(company) = LOWER(:company)`
		args["company"] = company
	}
	query += ` ORDER BY created_at DESC`

	return r.selectQuestions(ctx, query, args)
}

// GetQuestionsByTopic returns questions for a topic within a category. The
// server performs the filtering; callers must not re-filter.
func (r *sqlxQuestionRepository) GetQuestionsByTopic(ctx context.Context, topic, category string) ([]*domain.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions
		WHERE LOWER(topic) = LOWER(:topic) AND LOWER(category) = LOWER(:category) AND deleted_at IS NULL
		ORDER BY created_at DESC`, questionColumns)
	args := map[string]interface{}{"topic": topic, "category": category}

	return r.selectQuestions(ctx, query, args)
}

// GetQuestionByID retrieves a question by ID. Returns nil, nil when absent.
func (r *sqlxQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE id = :id AND deleted_at IS NULL`, questionColumns)

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetQuestionByID: %w", err)
	}
	defer stmt.Close()

	var m models.Question
	if err := stmt.GetContext(ctx, &m, map[string]interface{}{"id": id}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by id: %w", err)
	}
	return questionToDomain(&m), nil
}

// SearchQuestions performs a case-insensitive substring search over title and
// description. Empty query behavior is left to the database (all rows match).
func (r *sqlxQuestionRepository) SearchQuestions(ctx context.Context, searchQuery string) ([]*domain.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions
		WHERE (LOWER(title) LIKE :pattern OR LOWER(description) LIKE :pattern) AND deleted_at IS NULL
		ORDER BY created_at DESC`, questionColumns)
	pattern := "%" + strings.ToLower(searchQuery) + "%"

	return r.selectQuestions(ctx, query, map[string]interface{}{"pattern": pattern})
}

// SaveQuestion inserts a new question, assigning an ID when absent.
func (r *sqlxQuestionRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	m := questionToModel(question)
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO questions (id, title, description, category, topic, company, difficulty,
			time_limit, tips, optimal_answer, is_popular, created_at, updated_at)
		VALUES (:ID, :TITLE, :DESCRIPTION, :CATEGORY, :TOPIC, :COMPANY, :DIFFICULTY,
			:TIME_LIMIT, :TIPS, :OPTIMAL_ANSWER, :IS_POPULAR, :CREATED_AT, :UPDATED_AT)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	question.ID = m.ID
	question.CreatedAt = m.CreatedAt
	question.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *sqlxQuestionRepository) selectQuestions(ctx context.Context, query string, args map[string]interface{}) ([]*domain.Question, error) {
	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare question query: %w", err)
	}
	defer stmt.Close()

	var rows []models.Question
	if err := stmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, fmt.Errorf("failed to select questions: %w", err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, questionToDomain(&rows[i]))
	}
	return questions, nil
}

func questionToDomain(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:            m.ID,
		Title:         m.Title,
		Description:   util.NullStringToString(m.Description),
		Category:      m.Category,
		Topic:         m.Topic,
		Company:       util.NullStringToString(m.Company),
		Difficulty:    m.Difficulty,
		TimeLimit:     m.TimeLimit,
		Tips:          m.Tips,
		OptimalAnswer: m.OptimalAnswer,
		IsPopular:     m.IsPopular != 0,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func questionToModel(q *domain.Question) *models.Question {
	isPopular := 0
	if q.IsPopular {
		isPopular = 1
	}
	return &models.Question{
		ID:            q.ID,
		Title:         q.Title,
		Description:   util.StringToNullString(q.Description),
		Category:      q.Category,
		Topic:         q.Topic,
		Company:       util.StringToNullString(q.Company),
		Difficulty:    q.Difficulty,
		TimeLimit:     q.TimeLimit,
		Tips:          models.StringSlice(q.Tips),
		OptimalAnswer: q.OptimalAnswer,
		IsPopular:     isPopular,
	}
}
