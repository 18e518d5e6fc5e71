package users

import (
	"context"

	"github.com/kotche/smartnotes/internal/model"
)

type (
	Service interface {
		Register(ctx context.Context, username, email, password string) (*model.User, error)
		Login(ctx context.Context, email, password string) (token string, err error)
		GetByID(ctx context.Context, userID model.UserID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
	}
)
