package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aquabio-be/internal/apperrors"
	"aquabio-be/internal/entities"
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(ctx context.Context, username, email, passwordHash, fullName string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context) ([]*entities.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = "id, username, email, password_hash, full_name, is_admin, created_at"

func scanUser(row *sql.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user. The caller passes username and email
// already lowercased.
func (r *userRepository) Create(ctx context.Context, username, email, passwordHash, fullName string) (*entities.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, full_name)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, username, email, passwordHash, fullName))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username or email is already registered", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("%w: failed to create user: %v", apperrors.ErrStorage, err)
	}
	return user, nil
}

// FindByUsername finds a user by case-insensitive username match.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(username) = LOWER($1)`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find user: %v", apperrors.ErrStorage, err)
	}
	return user, nil
}

// FindByID finds a user by ID
func (r *userRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find user: %v", apperrors.ErrStorage, err)
	}
	return user, nil
}

// ExistsByUsernameOrEmail reports whether a user already holds the
// username or the email, matched case-insensitively.
func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM users
			WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($2)
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: failed to check user existence: %v", apperrors.ErrStorage, err)
	}
	return exists, nil
}

// List returns all users, newest first.
func (r *userRepository) List(ctx context.Context) ([]*entities.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list users: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		var user entities.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.FullName,
			&user.IsAdmin,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan user: %v", apperrors.ErrStorage, err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to list users: %v", apperrors.ErrStorage, err)
	}
	return users, nil
}
