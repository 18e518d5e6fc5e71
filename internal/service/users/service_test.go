package users

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotche/smartnotes/internal/auth"
	"github.com/kotche/smartnotes/internal/model"
)

type fakeUserRepo struct {
	users  map[model.UserID]model.User
	nextID model.UserID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[model.UserID]model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user model.User) (model.UserID, error) {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, model.ErrUserExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now().UTC()
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID model.UserID) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, model.ErrUserNotFound
}

type recordingSender struct {
	sent []string
	ok   bool
}

func (r *recordingSender) Send(to, _, _, _ string) bool {
	r.sent = append(r.sent, to)
	return r.ok
}

func newService(repo *fakeUserRepo, sender *recordingSender) *DefaultService {
	tokens := auth.NewTokenManager("secret", time.Hour)
	return NewDefaultService(repo, tokens, sender, zerolog.Nop())
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &recordingSender{ok: true}
	svc := newService(repo, sender)

	user, err := svc.Register(context.Background(), "ivan", "ivan@example.com", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "ivan", user.Username)
	assert.NotEqual(t, "hunter2", user.HashedPassword)
	assert.Equal(t, []string{"ivan@example.com"}, sender.sent)
}

func TestRegister_WelcomeMailFailureIsNotFatal(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo, &recordingSender{ok: false})

	user, err := svc.Register(context.Background(), "ivan", "ivan@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
}

func TestRegister_Duplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo, &recordingSender{ok: true})

	_, err := svc.Register(context.Background(), "ivan", "ivan@example.com", "hunter2")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "ivan", "other@example.com", "hunter2")
	assert.ErrorIs(t, err, model.ErrUserExists)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo, &recordingSender{ok: true})

	_, err := svc.Register(context.Background(), "ivan", "ivan@example.com", "hunter2")
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "ivan@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo, &recordingSender{ok: true})

	_, err := svc.Register(context.Background(), "ivan", "ivan@example.com", "hunter2")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ivan@example.com", "hunter3")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newService(newFakeUserRepo(), &recordingSender{ok: true})

	_, err := svc.Login(context.Background(), "ghost@example.com", "hunter2")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
