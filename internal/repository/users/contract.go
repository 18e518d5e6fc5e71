package users

import (
	"context"

	"github.com/kotche/smartnotes/internal/model"
)

type (
	Repository interface {
		CreateUser(ctx context.Context, user model.User) (model.UserID, error)
		GetUserByID(ctx context.Context, userID model.UserID) (*model.User, error)
		GetUserByEmail(ctx context.Context, email string) (*model.User, error)
		GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	}
)
