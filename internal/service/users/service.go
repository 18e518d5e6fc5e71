package users

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kotche/smartnotes/internal/auth"
	"github.com/kotche/smartnotes/internal/model"
	"github.com/kotche/smartnotes/internal/repository/users"
	"github.com/kotche/smartnotes/internal/service/mail"
)

type DefaultService struct {
	repo   users.Repository
	tokens *auth.TokenManager
	sender mail.Sender
	logger zerolog.Logger
}

func NewDefaultService(repo users.Repository, tokens *auth.TokenManager, sender mail.Sender, logger zerolog.Logger) *DefaultService {
	return &DefaultService{
		repo:   repo,
		tokens: tokens,
		sender: sender,
		logger: logger.With().Str("component", "users").Logger(),
	}
}

func (d *DefaultService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	userID, err := d.repo.CreateUser(ctx, model.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashed,
	})
	if err != nil {
		return nil, err
	}

	user, err := d.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Welcome mail is best effort: registration succeeds either way.
	subject, htmlBody, textBody := mail.WelcomeEmail(user.Username, user.Email)
	if !d.sender.Send(user.Email, subject, htmlBody, textBody) {
		d.logger.Warn().Str("email", user.Email).Msg("welcome email was not delivered")
	}

	return user, nil
}

func (d *DefaultService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := d.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", model.ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(user.HashedPassword, password) {
		return "", model.ErrInvalidCredentials
	}

	return d.tokens.GenerateToken(user.ID)
}

func (d *DefaultService) GetByID(ctx context.Context, userID model.UserID) (*model.User, error) {
	return d.repo.GetUserByID(ctx, userID)
}

func (d *DefaultService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return d.repo.GetUserByUsername(ctx, username)
}
