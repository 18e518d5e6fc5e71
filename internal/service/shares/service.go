package shares

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kotche/smartnotes/internal/model"
	notesRepo "github.com/kotche/smartnotes/internal/repository/notes"
	sharesRepo "github.com/kotche/smartnotes/internal/repository/shares"
	usersRepo "github.com/kotche/smartnotes/internal/repository/users"
)

type DefaultService struct {
	shares sharesRepo.Repository
	notes  notesRepo.Repository
	users  usersRepo.Repository
}

func NewDefaultService(shares sharesRepo.Repository, notes notesRepo.Repository, users usersRepo.Repository) *DefaultService {
	return &DefaultService{shares: shares, notes: notes, users: users}
}

func (d *DefaultService) CreateLink(ctx context.Context, noteID model.NoteID, userID model.UserID, isPublic bool, expiresIn *time.Duration) (*model.ShareLink, error) {
	if err := d.ensureOwned(ctx, noteID, userID); err != nil {
		return nil, err
	}

	link := model.ShareLink{
		NoteID:   noteID,
		Token:    strings.ReplaceAll(uuid.NewString(), "-", ""),
		IsPublic: isPublic,
	}
	if expiresIn != nil {
		expiresAt := time.Now().UTC().Add(*expiresIn)
		link.ExpiresAt = &expiresAt
	}

	shareID, err := d.shares.CreateLink(ctx, link)
	if err != nil {
		return nil, err
	}
	link.ID = shareID

	return &link, nil
}

func (d *DefaultService) ResolveLink(ctx context.Context, token string) (*PublicNote, error) {
	link, err := d.shares.GetLinkByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now().UTC()) {
		return nil, model.ErrShareLinkExpired
	}

	note, err := d.notes.GetNote(ctx, link.NoteID)
	if err != nil {
		return nil, err
	}
	if note.DeletedAt != nil {
		return nil, model.ErrNoteNotFound
	}
	if !link.IsPublic {
		return nil, model.ErrShareLinkPrivate
	}

	return &PublicNote{
		Title:      note.Title,
		Content:    note.Content,
		IsMarkdown: note.IsMarkdown,
		UpdatedAt:  note.UpdatedAt,
		Tags:       note.Tags,
	}, nil
}

func (d *DefaultService) ShareWithUser(ctx context.Context, noteID model.NoteID, ownerID model.UserID, targetUsername string) (*model.NoteShare, error) {
	if err := d.ensureOwned(ctx, noteID, ownerID); err != nil {
		return nil, err
	}

	target, err := d.users.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if target.ID == ownerID {
		return nil, model.ErrSelfShare
	}

	share := model.NoteShare{
		NoteID:     noteID,
		SharedBy:   ownerID,
		SharedWith: target.ID,
		Status:     model.ShareStatusPending,
	}

	shareID, err := d.shares.CreateUserShare(ctx, share)
	if err != nil {
		return nil, err
	}

	return d.shares.GetUserShare(ctx, shareID)
}

func (d *DefaultService) PendingShares(ctx context.Context, userID model.UserID) ([]model.NoteShare, error) {
	return d.shares.ListPendingShares(ctx, userID)
}

func (d *DefaultService) Respond(ctx context.Context, shareID model.ShareID, userID model.UserID, accept bool) (*model.NoteShare, error) {
	status := model.ShareStatusRejected
	if accept {
		status = model.ShareStatusAccepted
	}

	if err := d.shares.RespondToShare(ctx, shareID, userID, status); err != nil {
		return nil, err
	}

	return d.shares.GetUserShare(ctx, shareID)
}

func (d *DefaultService) ensureOwned(ctx context.Context, noteID model.NoteID, userID model.UserID) error {
	note, err := d.notes.GetNote(ctx, noteID)
	if err != nil {
		return err
	}
	if note.UserID != userID || note.DeletedAt != nil {
		return model.ErrNoteNotFound
	}
	return nil
}
