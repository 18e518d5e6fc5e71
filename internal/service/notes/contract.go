package notes

import (
	"context"
	"time"

	"github.com/kotche/smartnotes/internal/model"
)

type (
	CreateNoteInput struct {
		Title      string
		Content    string
		IsMarkdown bool
		IsPinned   bool
		IsPublic   bool
		FolderID   *model.FolderID
		Color      *string
		ImageURL   *string
		ReminderAt *time.Time
		TagIDs     []model.TagID
	}

	// UpdateNoteInput is a partial patch: nil fields are left untouched.
	UpdateNoteInput struct {
		Title      *string
		Content    *string
		IsMarkdown *bool
		IsPinned   *bool
		IsPublic   *bool
		FolderID   *model.FolderID
		Color      *string
		ImageURL   *string
		ReminderAt *time.Time
		TagIDs     *[]model.TagID
	}

	Service interface {
		Create(ctx context.Context, userID model.UserID, input CreateNoteInput) (*model.Note, error)
		Get(ctx context.Context, noteID model.NoteID, userID model.UserID) (*model.Note, error)
		List(ctx context.Context, userID model.UserID, folderID *model.FolderID) ([]model.Note, error)
		ListTrash(ctx context.Context, userID model.UserID) ([]model.Note, error)
		Update(ctx context.Context, noteID model.NoteID, userID model.UserID, input UpdateNoteInput) (*model.Note, error)
		Delete(ctx context.Context, noteID model.NoteID, userID model.UserID) error
		Restore(ctx context.Context, noteID model.NoteID, userID model.UserID) (*model.Note, error)
		ForceDelete(ctx context.Context, noteID model.NoteID, userID model.UserID) error
		Search(ctx context.Context, userID model.UserID, query string) ([]model.Note, error)

		CreateFolder(ctx context.Context, folder model.Folder) (model.FolderID, error)
		ListFolders(ctx context.Context, userID model.UserID) ([]model.Folder, error)
		DeleteFolder(ctx context.Context, folderID model.FolderID, userID model.UserID) error

		CreateTag(ctx context.Context, tag model.Tag) (model.TagID, error)
		ListTags(ctx context.Context, userID model.UserID) ([]model.Tag, error)

		DueReminders(ctx context.Context, now time.Time) ([]model.Reminder, error)
		MarkReminderSent(ctx context.Context, noteID model.NoteID) error
	}
)
