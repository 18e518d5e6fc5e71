package shares

import (
	"context"

	"github.com/kotche/smartnotes/internal/model"
)

type (
	Repository interface {
		CreateLink(ctx context.Context, link model.ShareLink) (model.ShareID, error)
		GetLinkByToken(ctx context.Context, token string) (*model.ShareLink, error)

		CreateUserShare(ctx context.Context, share model.NoteShare) (model.ShareID, error)
		GetUserShare(ctx context.Context, shareID model.ShareID) (*model.NoteShare, error)
		ListPendingShares(ctx context.Context, userID model.UserID) ([]model.NoteShare, error)
		RespondToShare(ctx context.Context, shareID model.ShareID, userID model.UserID, status model.ShareStatus) error
	}
)
