package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/stempeluhr/internal/persistence"
)

// UserRepository implements persistence.UserRepository using SQLite.
type UserRepository struct {
	pool *ConnectionPool
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateUser inserts a new credential record. The login is the primary key;
// a collision maps to persistence.ErrDuplicate.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) error {
	login := normalizeLogin(user.Login)
	if login == "" {
		return fmt.Errorf("sqlite: login must not be empty")
	}
	if user.PasswordHash == "" {
		return fmt.Errorf("sqlite: password hash must not be empty")
	}

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `INSERT INTO users (login, password_hash, created_at) VALUES (?, ?, ?)`

	_, err := r.pool.DB().ExecContext(ctx, query,
		login,
		user.PasswordHash,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return persistence.ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUser retrieves a credential record by login.
func (r *UserRepository) GetUser(ctx context.Context, login string) (persistence.User, error) {
	login = normalizeLogin(login)
	if login == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	query := `SELECT login, password_hash, created_at FROM users WHERE login = ?`

	var user persistence.User
	var createdAtStr string

	err := r.pool.DB().QueryRowContext(ctx, query, login).Scan(
		&user.Login,
		&user.PasswordHash,
		&createdAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.User{}, persistence.ErrNotFound
		}
		return persistence.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	if user.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return user, nil
}

// normalizeLogin trims surrounding whitespace from a login. Logins are
// case-sensitive.
func normalizeLogin(login string) string {
	return strings.TrimSpace(login)
}
