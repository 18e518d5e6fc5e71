package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/kotche/smartnotes/internal/model"
)

const uniqueViolation = "23505"

type DefaultRepository struct {
	db *sql.DB
}

func NewDefaultRepository(pg *sql.DB) *DefaultRepository {
	return &DefaultRepository{pg}
}

func (d *DefaultRepository) CreateUser(ctx context.Context, user model.User) (model.UserID, error) {
	query := `
		INSERT INTO users (username, email, hashed_password, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`

	var userID model.UserID
	err := d.db.QueryRowContext(ctx, query, user.Username, user.Email, user.HashedPassword).Scan(&userID)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == uniqueViolation {
			return 0, model.ErrUserExists
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return userID, nil
}

func (d *DefaultRepository) GetUserByID(ctx context.Context, userID model.UserID) (*model.User, error) {
	query := `SELECT id, username, email, hashed_password, created_at FROM users WHERE id = $1`
	return d.getUser(ctx, query, userID)
}

func (d *DefaultRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, username, email, hashed_password, created_at FROM users WHERE email = $1`
	return d.getUser(ctx, query, email)
}

func (d *DefaultRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, email, hashed_password, created_at FROM users WHERE username = $1`
	return d.getUser(ctx, query, username)
}

func (d *DefaultRepository) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := d.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
