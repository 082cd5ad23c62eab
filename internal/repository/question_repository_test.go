package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"prepwise/internal/domain"
	"prepwise/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupQuestionTestDB creates a new sqlx.DB instance and sqlmock for question repository testing.
func setupQuestionTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

// questionRowColumns mirrors what go-ora reports for the questions table.
var questionRowColumns = []string{
	"ID", "TITLE", "DESCRIPTION", "CATEGORY", "TOPIC", "COMPANY", "DIFFICULTY",
	"TIME_LIMIT", "TIPS", "OPTIMAL_ANSWER", "IS_POPULAR", "CREATED_AT", "UPDATED_AT", "DELETED_AT",
}

func questionRow(id, title string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(questionRowColumns).AddRow(
		id, title, "A description", "Product Management", "Product Sense", "Google", "medium",
		600, `["clarify the goal"]`, "An optimal answer", 1, now, now, nil,
	)
}

func TestGetQuestionByID(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	defer db.Close()
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectPrepare(`(?s)SELECT (.+) FROM questions WHERE id = (.+) AND deleted_at IS NULL`).
		ExpectQuery().
		WithArgs("q1").
		WillReturnRows(questionRow("q1", "Tell me about yourself"))

	question, err := repo.GetQuestionByID(context.Background(), "q1")
	require.NoError(t, err)
	require.NotNil(t, question)
	assert.Equal(t, "q1", question.ID)
	assert.Equal(t, "Tell me about yourself", question.Title)
	assert.Equal(t, "Google", question.Company)
	assert.Equal(t, []string{"clarify the goal"}, question.Tips)
	assert.True(t, question.IsPopular)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuestionByID_NotFound(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	defer db.Close()
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectPrepare(`(?s)SELECT (.+) FROM questions WHERE id = (.+)`).
		ExpectQuery().
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	question, err := repo.GetQuestionByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, question)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPopularQuestions_NoCompanyFilter(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	defer db.Close()
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectPrepare(`(?s)SELECT (.+) FROM questions WHERE is_popular = 1 AND deleted_at IS NULL ORDER BY created_at DESC`).
		ExpectQuery().
		WillReturnRows(questionRow("q1", "Popular question"))

	questions, err := repo.GetPopularQuestions(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "q1", questions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPopularQuestions_WithCompanyFilter(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	defer db.Close()
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectPrepare(`(?s)SELECT (.+) FROM questions WHERE is_popular = 1 AND deleted_at IS NULL AND LOWER\(company\) = LOWER\((.+)\)`).
		ExpectQuery().
		WithArgs("Google").
		WillReturnRows(questionRow("q1", "Popular question"))

	questions, err := repo.GetPopularQuestions(context.Background(), "Google")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuestionsByTopic(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	defer db.Close()
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectPrepare(`(?s)SELECT (.+) FROM questions`).
		ExpectQuery().
		WithArgs("Product Sense", "Product Management").
		WillReturnRows(questionRow("q1", "Improve our product"))

	questions, err := repo.GetQuestionsByTopic(context.Background(), "Product Sense", "Product Management")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Product Sense", questions[0].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchQuestions_PatternIsLowercased(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	defer db.Close()
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectPrepare(`(?s)SELECT (.+) FROM questions`).
		ExpectQuery().
		WithArgs("%roadmap%", "%roadmap%").
		WillReturnRows(sqlmock.NewRows(questionRowColumns))

	questions, err := repo.SearchQuestions(context.Background(), "RoadMap")
	require.NoError(t, err)
	assert.Empty(t, questions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveQuestion_AssignsID(t *testing.T) {
	db, mock := setupQuestionTestDB(t)
	defer db.Close()
	repo := NewSQLXQuestionRepository(db)

	mock.ExpectExec(`INSERT INTO questions`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	question := &domain.Question{
		Title:      "New question",
		Category:   "Product Management",
		Topic:      "Product Sense",
		Difficulty: domain.DifficultyEasy,
	}
	err := repo.SaveQuestion(context.Background(), question)
	require.NoError(t, err)
	assert.Len(t, question.ID, 26)
	assert.False(t, question.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionConverters(t *testing.T) {
	now := time.Now()
	m := &models.Question{
		ID:          "q1",
		Title:       "Title",
		Description: sql.NullString{String: "Desc", Valid: true},
		Category:    "Engineering Management",
		Topic:       "System Design",
		Company:     sql.NullString{},
		Difficulty:  "hard",
		TimeLimit:   900,
		Tips:        models.StringSlice{"tip"},
		IsPopular:   0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	q := questionToDomain(m)
	assert.Equal(t, "Desc", q.Description)
	assert.Equal(t, "", q.Company)
	assert.False(t, q.IsPopular)

	back := questionToModel(q)
	assert.Equal(t, m.ID, back.ID)
	assert.False(t, back.Company.Valid)
	assert.Equal(t, m.Description.String, back.Description.String)
	assert.Equal(t, 0, back.IsPopular)
}
