package notes

import (
	"context"
	"time"

	"github.com/kotche/smartnotes/internal/model"
)

type (
	Repository interface {
		CreateNote(ctx context.Context, note model.Note) (model.NoteID, error)
		GetNote(ctx context.Context, noteID model.NoteID) (*model.Note, error)
		ListNotes(ctx context.Context, userID model.UserID, folderID *model.FolderID) ([]model.Note, error)
		ListSharedNotes(ctx context.Context, userID model.UserID, folderID *model.FolderID) ([]model.Note, error)
		NoteSharedWith(ctx context.Context, noteID model.NoteID, userID model.UserID) (bool, error)
		ListTrash(ctx context.Context, userID model.UserID) ([]model.Note, error)
		UpdateNote(ctx context.Context, note model.Note) error
		SoftDeleteNote(ctx context.Context, noteID model.NoteID, userID model.UserID) error
		RestoreNote(ctx context.Context, noteID model.NoteID, userID model.UserID) error
		ForceDeleteNote(ctx context.Context, noteID model.NoteID, userID model.UserID) error
		PurgeTrash(ctx context.Context, olderThan time.Time) error
		SearchNotes(ctx context.Context, userID model.UserID, query string, limit uint64) ([]model.Note, error)

		FolderExists(ctx context.Context, folderID model.FolderID, userID model.UserID) (bool, error)
		CreateFolder(ctx context.Context, folder model.Folder) (model.FolderID, error)
		ListFolders(ctx context.Context, userID model.UserID) ([]model.Folder, error)
		DeleteFolder(ctx context.Context, folderID model.FolderID, userID model.UserID) error

		CreateTag(ctx context.Context, tag model.Tag) (model.TagID, error)
		ListTags(ctx context.Context, userID model.UserID) ([]model.Tag, error)
		GetTags(ctx context.Context, userID model.UserID, tagIDs []model.TagID) ([]model.Tag, error)
		SetNoteTags(ctx context.Context, noteID model.NoteID, tagIDs []model.TagID) error

		DueReminders(ctx context.Context, now time.Time) ([]model.Reminder, error)
		MarkReminderSent(ctx context.Context, noteID model.NoteID) error
	}
)
