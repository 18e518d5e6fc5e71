package shares

import (
	"context"
	"database/sql"
	"errors"
	"testing"

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

func TestCreateUserShare_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)INSERT INTO note_shares.*RETURNING id`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateUserShare(context.Background(), model.NoteShare{NoteID: 1, SharedBy: 1, SharedWith: 2})
	if !errors.Is(err, model.ErrShareExists) {
		t.Fatalf("expected ErrShareExists, got %v", err)
	}
}

func TestGetLinkByToken_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT id, note_id, token, is_public, expires_at, created_at FROM share_links WHERE token = \$1$`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetLinkByToken(context.Background(), "ghost")
	if !errors.Is(err, model.ErrShareNotFound) {
		t.Fatalf("expected ErrShareNotFound, got %v", err)
	}
}

func TestRespondToShare(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE note_shares SET status = \$1, responded_at = NOW\(\).*WHERE id = \$2 AND shared_with_user_id = \$3 AND status = \$4`).
		WithArgs(string(model.ShareStatusAccepted), int64(5), int64(2), string(model.ShareStatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RespondToShare(context.Background(), 5, 2, model.ShareStatusAccepted); err != nil {
		t.Fatalf("RespondToShare error: %v", err)
	}
}

func TestRespondToShare_NotPending(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE note_shares SET status = \$1, responded_at = NOW\(\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RespondToShare(context.Background(), 5, 2, model.ShareStatusRejected)
	if !errors.Is(err, model.ErrShareNotFound) {
		t.Fatalf("expected ErrShareNotFound, got %v", err)
	}
}
