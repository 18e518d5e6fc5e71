package notes

import (
	"context"
	"sort"
	"time"

	"github.com/kotche/smartnotes/internal/model"
	"github.com/kotche/smartnotes/internal/repository/notes"
)

// trashRetention is how long a soft-deleted note stays recoverable.
const trashRetention = 30 * 24 * time.Hour

type DefaultService struct {
	repo notes.Repository
}

func NewDefaultService(repo notes.Repository) *DefaultService {
	return &DefaultService{repo: repo}
}

func (d *DefaultService) Create(ctx context.Context, userID model.UserID, input CreateNoteInput) (*model.Note, error) {
	if input.FolderID != nil {
		if err := d.ensureFolder(ctx, *input.FolderID, userID); err != nil {
			return nil, err
		}
	}

	note := model.Note{
		UserID:     userID,
		FolderID:   input.FolderID,
		Title:      input.Title,
		Content:    input.Content,
		IsMarkdown: input.IsMarkdown,
		IsPinned:   input.IsPinned,
		IsPublic:   input.IsPublic,
		Color:      input.Color,
		ImageURL:   input.ImageURL,
		ReminderAt: normalizeReminder(input.ReminderAt),
	}

	noteID, err := d.repo.CreateNote(ctx, note)
	if err != nil {
		return nil, err
	}

	if len(input.TagIDs) > 0 {
		if err = d.setTags(ctx, noteID, userID, input.TagIDs); err != nil {
			return nil, err
		}
	}

	return d.repo.GetNote(ctx, noteID)
}

// Get returns the note if the caller owns it or has an accepted share.
func (d *DefaultService) Get(ctx context.Context, noteID model.NoteID, userID model.UserID) (*model.Note, error) {
	note, err := d.repo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.DeletedAt != nil {
		return nil, model.ErrNoteNotFound
	}

	if note.UserID != userID {
		shared, err := d.repo.NoteSharedWith(ctx, noteID, userID)
		if err != nil {
			return nil, err
		}
		if !shared {
			return nil, model.ErrNoteNotFound
		}
	}

	return note, nil
}

func (d *DefaultService) List(ctx context.Context, userID model.UserID, folderID *model.FolderID) ([]model.Note, error) {
	if err := d.repo.PurgeTrash(ctx, time.Now().UTC().Add(-trashRetention)); err != nil {
		return nil, err
	}

	own, err := d.repo.ListNotes(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	shared, err := d.repo.ListSharedNotes(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	seen := make(map[model.NoteID]struct{}, len(own))
	for _, note := range own {
		seen[note.ID] = struct{}{}
	}

	all := own
	for _, note := range shared {
		if _, ok := seen[note.ID]; !ok {
			all = append(all, note)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].IsPinned != all[j].IsPinned {
			return all[i].IsPinned
		}
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})

	return all, nil
}

func (d *DefaultService) ListTrash(ctx context.Context, userID model.UserID) ([]model.Note, error) {
	if err := d.repo.PurgeTrash(ctx, time.Now().UTC().Add(-trashRetention)); err != nil {
		return nil, err
	}
	return d.repo.ListTrash(ctx, userID)
}

func (d *DefaultService) Update(ctx context.Context, noteID model.NoteID, userID model.UserID, input UpdateNoteInput) (*model.Note, error) {
	note, err := d.repo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID || note.DeletedAt != nil {
		return nil, model.ErrNoteNotFound
	}

	if input.FolderID != nil {
		if err = d.ensureFolder(ctx, *input.FolderID, userID); err != nil {
			return nil, err
		}
		note.FolderID = input.FolderID
	}
	if input.Title != nil {
		note.Title = *input.Title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}
	if input.IsMarkdown != nil {
		note.IsMarkdown = *input.IsMarkdown
	}
	if input.IsPinned != nil {
		note.IsPinned = *input.IsPinned
	}
	if input.IsPublic != nil {
		note.IsPublic = *input.IsPublic
	}
	if input.Color != nil {
		note.Color = input.Color
	}
	if input.ImageURL != nil {
		note.ImageURL = input.ImageURL
	}
	if input.ReminderAt != nil {
		// A new reminder time re-arms the notification: the scanner only
		// ever flips the flag the other way.
		note.ReminderAt = normalizeReminder(input.ReminderAt)
		note.ReminderSent = false
	}

	if err = d.repo.UpdateNote(ctx, *note); err != nil {
		return nil, err
	}

	if input.TagIDs != nil {
		if err = d.setTags(ctx, noteID, userID, *input.TagIDs); err != nil {
			return nil, err
		}
	}

	return d.repo.GetNote(ctx, noteID)
}

func (d *DefaultService) Delete(ctx context.Context, noteID model.NoteID, userID model.UserID) error {
	return d.repo.SoftDeleteNote(ctx, noteID, userID)
}

func (d *DefaultService) Restore(ctx context.Context, noteID model.NoteID, userID model.UserID) (*model.Note, error) {
	if err := d.repo.RestoreNote(ctx, noteID, userID); err != nil {
		return nil, err
	}
	return d.repo.GetNote(ctx, noteID)
}

func (d *DefaultService) ForceDelete(ctx context.Context, noteID model.NoteID, userID model.UserID) error {
	return d.repo.ForceDeleteNote(ctx, noteID, userID)
}

func (d *DefaultService) Search(ctx context.Context, userID model.UserID, query string) ([]model.Note, error) {
	const searchLimit = 50
	return d.repo.SearchNotes(ctx, userID, query, searchLimit)
}

func (d *DefaultService) CreateFolder(ctx context.Context, folder model.Folder) (model.FolderID, error) {
	if folder.ParentID != nil {
		if err := d.ensureFolder(ctx, *folder.ParentID, folder.UserID); err != nil {
			return 0, err
		}
	}
	return d.repo.CreateFolder(ctx, folder)
}

func (d *DefaultService) ListFolders(ctx context.Context, userID model.UserID) ([]model.Folder, error) {
	return d.repo.ListFolders(ctx, userID)
}

func (d *DefaultService) DeleteFolder(ctx context.Context, folderID model.FolderID, userID model.UserID) error {
	return d.repo.DeleteFolder(ctx, folderID, userID)
}

func (d *DefaultService) CreateTag(ctx context.Context, tag model.Tag) (model.TagID, error) {
	return d.repo.CreateTag(ctx, tag)
}

func (d *DefaultService) ListTags(ctx context.Context, userID model.UserID) ([]model.Tag, error) {
	return d.repo.ListTags(ctx, userID)
}

func (d *DefaultService) DueReminders(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	return d.repo.DueReminders(ctx, now)
}

func (d *DefaultService) MarkReminderSent(ctx context.Context, noteID model.NoteID) error {
	return d.repo.MarkReminderSent(ctx, noteID)
}

func (d *DefaultService) ensureFolder(ctx context.Context, folderID model.FolderID, userID model.UserID) error {
	exists, err := d.repo.FolderExists(ctx, folderID, userID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrFolderNotFound
	}
	return nil
}

// setTags validates tag ownership before attaching.
func (d *DefaultService) setTags(ctx context.Context, noteID model.NoteID, userID model.UserID, tagIDs []model.TagID) error {
	owned, err := d.repo.GetTags(ctx, userID, tagIDs)
	if err != nil {
		return err
	}

	ids := make([]model.TagID, 0, len(owned))
	for _, tag := range owned {
		ids = append(ids, tag.ID)
	}

	return d.repo.SetNoteTags(ctx, noteID, ids)
}

// normalizeReminder stores reminder times in UTC so due comparisons never
// depend on the writer's zone.
func normalizeReminder(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
