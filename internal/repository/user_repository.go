package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prepwise/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

// sqlxUserRepository implements UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) UserRepository {
	return &sqlxUserRepository{db: db}
}

// CreateUser inserts a new user into the database.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (id, google_id, email, first_name, last_name, profile_image_url, is_demo, created_at, updated_at)
	          VALUES (:ID, :GOOGLE_ID, :EMAIL, :FIRST_NAME, :LAST_NAME, :PROFILE_IMAGE_URL, :IS_DEMO, :CREATED_AT, :UPDATED_AT)`

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByGoogleID retrieves a user by their Google ID.
func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return r.getUser(ctx,
		`SELECT * FROM users WHERE google_id = :google_id AND deleted_at IS NULL`,
		map[string]interface{}{"google_id": googleID})
}

// GetUserByID retrieves a user by their internal ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return r.getUser(ctx,
		`SELECT * FROM users WHERE id = :id AND deleted_at IS NULL`,
		map[string]interface{}{"id": userID})
}

// GetUserByEmail retrieves a user by email. Used by the demo sign-in seam to
// reuse the synthesized demo identity across server restarts.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx,
		`SELECT * FROM users WHERE email = :email AND deleted_at IS NULL`,
		map[string]interface{}{"email": email})
}

func (r *sqlxUserRepository) getUser(ctx context.Context, query string, args map[string]interface{}) (*models.User, error) {
	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare user query: %w", err)
	}
	defer stmt.Close()

	var user models.User
	if err := stmt.GetContext(ctx, &user, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // not found is a normal state, services decide
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateUser updates an existing user's profile information.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	query := `UPDATE users SET
				email = :EMAIL,
	            first_name = :FIRST_NAME,
	            last_name = :LAST_NAME,
	            profile_image_url = :PROFILE_IMAGE_URL,
	            updated_at = :UPDATED_AT
	          WHERE id = :ID AND deleted_at IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
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
