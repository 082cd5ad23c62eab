package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// Question represents an interview question row.
type Question struct {
	ID            string         `db:"ID"` // ULID
	Title         string         `db:"TITLE"`
	Description   sql.NullString `db:"DESCRIPTION"`
	Category      string         `db:"CATEGORY"`
	Topic         string         `db:"TOPIC"`
	Company       sql.NullString `db:"COMPANY"`
	Difficulty    string         `db:"DIFFICULTY"` // easy, medium, hard
	TimeLimit     int            `db:"TIME_LIMIT"` // minutes
	Tips          StringSlice    `db:"TIPS"`
	OptimalAnswer string         `db:"OPTIMAL_ANSWER"`
	IsPopular     int            `db:"IS_POPULAR"` // Oracle has no boolean column type
	CreatedAt     time.Time      `db:"CREATED_AT"`
	UpdatedAt     time.Time      `db:"UPDATED_AT"`
	DeletedAt     sql.NullTime   `db:"DELETED_AT"`
}

// Answer represents a submitted answer row with its feedback columns.
type Answer struct {
	ID           string          `db:"ID"` // ULID
	QuestionID   string          `db:"QUESTION_ID"`
	UserAnswer   string          `db:"USER_ANSWER"`
	Score        sql.NullFloat64 `db:"SCORE"`
	Feedback     sql.NullString  `db:"FEEDBACK"`
	Strengths    StringSlice     `db:"STRENGTHS"`
	Improvements StringSlice     `db:"IMPROVEMENTS"`
	Suggestions  StringSlice     `db:"SUGGESTIONS"`
	CreatedAt    time.Time       `db:"CREATED_AT"`
	UpdatedAt    time.Time       `db:"UPDATED_AT"`
	DeletedAt    sql.NullTime    `db:"DELETED_AT"`
}

// Session represents a practice session row.
type Session struct {
	ID                string         `db:"ID"` // ULID
	Topic             string         `db:"TOPIC"`
	Category          string         `db:"CATEGORY"`
	QuestionsCount    int            `db:"QUESTIONS_COUNT"`
	CompletedCount    int            `db:"COMPLETED_COUNT"`
	CurrentQuestionID sql.NullString `db:"CURRENT_QUESTION_ID"`
	CreatedAt         time.Time      `db:"CREATED_AT"`
	UpdatedAt         time.Time      `db:"UPDATED_AT"`
	DeletedAt         sql.NullTime   `db:"DELETED_AT"`
}

// CommunityQuestion represents a user-submitted question proposal row.
type CommunityQuestion struct {
	ID          string         `db:"ID"` // ULID
	Title       string         `db:"TITLE"`
	Description sql.NullString `db:"DESCRIPTION"`
	Role        string         `db:"ROLE_NAME"`
	Topic       string         `db:"TOPIC"`
	Company     sql.NullString `db:"COMPANY"`
	Difficulty  string         `db:"DIFFICULTY"`
	IsAnonymous int            `db:"IS_ANONYMOUS"`
	SubmittedBy sql.NullString `db:"SUBMITTED_BY"`
	CreatedAt   time.Time      `db:"CREATED_AT"`
	UpdatedAt   time.Time      `db:"UPDATED_AT"`
	DeletedAt   sql.NullTime   `db:"DELETED_AT"`
}

// User represents a user in the system.
type User struct {
	ID                string         `db:"ID"` // ULID
	GoogleID          sql.NullString `db:"GOOGLE_ID"`
	Email             string         `db:"EMAIL"`
	FirstName         sql.NullString `db:"FIRST_NAME"`
	LastName          sql.NullString `db:"LAST_NAME"`
	ProfileImageURL   sql.NullString `db:"PROFILE_IMAGE_URL"`
	IsDemo            int            `db:"IS_DEMO"`
	CreatedAt         time.Time      `db:"CREATED_AT"`
	UpdatedAt         time.Time      `db:"UPDATED_AT"`
	DeletedAt         sql.NullTime   `db:"DELETED_AT"`
}
