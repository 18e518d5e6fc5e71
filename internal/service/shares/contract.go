package shares

import (
	"context"
	"time"

	"github.com/kotche/smartnotes/internal/model"
)

type (
	// PublicNote is what an anonymous reader gets through a share token.
	PublicNote struct {
		Title      string
		Content    string
		IsMarkdown bool
		UpdatedAt  time.Time
		Tags       []model.Tag
	}

	Service interface {
		CreateLink(ctx context.Context, noteID model.NoteID, userID model.UserID, isPublic bool, expiresIn *time.Duration) (*model.ShareLink, error)
		ResolveLink(ctx context.Context, token string) (*PublicNote, error)
		ShareWithUser(ctx context.Context, noteID model.NoteID, ownerID model.UserID, targetUsername string) (*model.NoteShare, error)
		PendingShares(ctx context.Context, userID model.UserID) ([]model.NoteShare, error)
		Respond(ctx context.Context, shareID model.ShareID, userID model.UserID, accept bool) (*model.NoteShare, error)
	}
)
