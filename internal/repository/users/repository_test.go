package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/kotche/smartnotes/internal/model"
)

func newRepoWithMock(t *testing.T) (*DefaultRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewDefaultRepository(db), mock, db
}

func TestCreateUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)INSERT INTO users \(username, email, hashed_password, created_at\).*RETURNING id`).
		WithArgs("ivan", "ivan@example.com", "hashed").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	id, err := repo.CreateUser(context.Background(), model.User{
		Username:       "ivan",
		Email:          "ivan@example.com",
		HashedPassword: "hashed",
	})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected id 1, got %d", id)
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)INSERT INTO users.*RETURNING id`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateUser(context.Background(), model.User{Username: "ivan"})
	if !errors.Is(err, model.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "username", "email", "hashed_password", "created_at"}).
		AddRow(1, "ivan", "ivan@example.com", "hashed", created)

	mock.ExpectQuery(`^SELECT id, username, email, hashed_password, created_at FROM users WHERE email = \$1$`).
		WithArgs("ivan@example.com").
		WillReturnRows(rows)

	user, err := repo.GetUserByEmail(context.Background(), "ivan@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail error: %v", err)
	}
	if user.ID != 1 || user.Username != "ivan" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT id, username, email, hashed_password, created_at FROM users WHERE id = \$1$`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByID(context.Background(), 99)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
