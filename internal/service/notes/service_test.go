package notes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotche/smartnotes/internal/model"
)

type fakeRepo struct {
	notes    map[model.NoteID]model.Note
	shared   map[model.NoteID]map[model.UserID]bool
	folders  map[model.FolderID]model.UserID
	tags     map[model.TagID]model.Tag
	noteTags map[model.NoteID][]model.TagID
	nextID   model.NoteID
	purgedAt []time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		notes:    make(map[model.NoteID]model.Note),
		shared:   make(map[model.NoteID]map[model.UserID]bool),
		folders:  make(map[model.FolderID]model.UserID),
		tags:     make(map[model.TagID]model.Tag),
		noteTags: make(map[model.NoteID][]model.TagID),
	}
}

func (f *fakeRepo) add(note model.Note) model.Note {
	f.nextID++
	note.ID = f.nextID
	f.notes[note.ID] = note
	return note
}

func (f *fakeRepo) CreateNote(_ context.Context, note model.Note) (model.NoteID, error) {
	return f.add(note).ID, nil
}

func (f *fakeRepo) GetNote(_ context.Context, noteID model.NoteID) (*model.Note, error) {
	note, ok := f.notes[noteID]
	if !ok {
		return nil, model.ErrNoteNotFound
	}
	return &note, nil
}

func (f *fakeRepo) ListNotes(_ context.Context, userID model.UserID, _ *model.FolderID) ([]model.Note, error) {
	var result []model.Note
	for _, note := range f.notes {
		if note.UserID == userID && note.DeletedAt == nil {
			result = append(result, note)
		}
	}
	return result, nil
}

func (f *fakeRepo) ListSharedNotes(_ context.Context, userID model.UserID, _ *model.FolderID) ([]model.Note, error) {
	var result []model.Note
	for id, users := range f.shared {
		if users[userID] {
			if note, ok := f.notes[id]; ok && note.DeletedAt == nil {
				result = append(result, note)
			}
		}
	}
	return result, nil
}

func (f *fakeRepo) NoteSharedWith(_ context.Context, noteID model.NoteID, userID model.UserID) (bool, error) {
	return f.shared[noteID][userID], nil
}

func (f *fakeRepo) ListTrash(_ context.Context, userID model.UserID) ([]model.Note, error) {
	var result []model.Note
	for _, note := range f.notes {
		if note.UserID == userID && note.DeletedAt != nil {
			result = append(result, note)
		}
	}
	return result, nil
}

func (f *fakeRepo) UpdateNote(_ context.Context, note model.Note) error {
	existing, ok := f.notes[note.ID]
	if !ok || existing.DeletedAt != nil {
		return model.ErrNoteNotFound
	}
	f.notes[note.ID] = note
	return nil
}

func (f *fakeRepo) SoftDeleteNote(_ context.Context, noteID model.NoteID, userID model.UserID) error {
	note, ok := f.notes[noteID]
	if !ok || note.UserID != userID || note.DeletedAt != nil {
		return model.ErrNoteNotFound
	}
	now := time.Now().UTC()
	note.DeletedAt = &now
	f.notes[noteID] = note
	return nil
}

func (f *fakeRepo) RestoreNote(_ context.Context, noteID model.NoteID, userID model.UserID) error {
	note, ok := f.notes[noteID]
	if !ok || note.UserID != userID || note.DeletedAt == nil {
		return model.ErrNoteNotFound
	}
	note.DeletedAt = nil
	f.notes[noteID] = note
	return nil
}

func (f *fakeRepo) ForceDeleteNote(_ context.Context, noteID model.NoteID, userID model.UserID) error {
	note, ok := f.notes[noteID]
	if !ok || note.UserID != userID {
		return model.ErrNoteNotFound
	}
	delete(f.notes, noteID)
	return nil
}

func (f *fakeRepo) PurgeTrash(_ context.Context, olderThan time.Time) error {
	f.purgedAt = append(f.purgedAt, olderThan)
	return nil
}

func (f *fakeRepo) SearchNotes(_ context.Context, _ model.UserID, _ string, _ uint64) ([]model.Note, error) {
	return nil, nil
}

func (f *fakeRepo) FolderExists(_ context.Context, folderID model.FolderID, userID model.UserID) (bool, error) {
	owner, ok := f.folders[folderID]
	return ok && owner == userID, nil
}

func (f *fakeRepo) CreateFolder(_ context.Context, folder model.Folder) (model.FolderID, error) {
	id := model.FolderID(len(f.folders) + 1)
	f.folders[id] = folder.UserID
	return id, nil
}

func (f *fakeRepo) ListFolders(_ context.Context, _ model.UserID) ([]model.Folder, error) {
	return nil, nil
}

func (f *fakeRepo) DeleteFolder(_ context.Context, folderID model.FolderID, _ model.UserID) error {
	delete(f.folders, folderID)
	return nil
}

func (f *fakeRepo) CreateTag(_ context.Context, tag model.Tag) (model.TagID, error) {
	id := model.TagID(len(f.tags) + 1)
	tag.ID = id
	f.tags[id] = tag
	return id, nil
}

func (f *fakeRepo) ListTags(_ context.Context, _ model.UserID) ([]model.Tag, error) {
	return nil, nil
}

func (f *fakeRepo) GetTags(_ context.Context, userID model.UserID, tagIDs []model.TagID) ([]model.Tag, error) {
	var result []model.Tag
	for _, id := range tagIDs {
		if tag, ok := f.tags[id]; ok && tag.UserID == userID {
			result = append(result, tag)
		}
	}
	return result, nil
}

func (f *fakeRepo) SetNoteTags(_ context.Context, noteID model.NoteID, tagIDs []model.TagID) error {
	f.noteTags[noteID] = tagIDs
	return nil
}

func (f *fakeRepo) DueReminders(_ context.Context, now time.Time) ([]model.Reminder, error) {
	var result []model.Reminder
	for _, note := range f.notes {
		if note.ReminderAt != nil && !note.ReminderAt.After(now) && !note.ReminderSent && note.DeletedAt == nil {
			result = append(result, model.Reminder{NoteID: note.ID, Title: note.Title, ReminderAt: *note.ReminderAt})
		}
	}
	return result, nil
}

func (f *fakeRepo) MarkReminderSent(_ context.Context, noteID model.NoteID) error {
	note, ok := f.notes[noteID]
	if !ok {
		return model.ErrNoteNotFound
	}
	note.ReminderSent = true
	f.notes[noteID] = note
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestUpdate_NewReminderTimeRearmsNotification(t *testing.T) {
	repo := newFakeRepo()
	note := repo.add(model.Note{UserID: 1, Title: "standup", ReminderSent: true})
	svc := NewDefaultService(repo)

	msk := time.FixedZone("MSK", 3*60*60)
	at := time.Date(2024, 5, 1, 13, 0, 0, 0, msk)

	updated, err := svc.Update(context.Background(), note.ID, 1, UpdateNoteInput{ReminderAt: &at})
	require.NoError(t, err)

	assert.False(t, updated.ReminderSent)
	require.NotNil(t, updated.ReminderAt)
	assert.Equal(t, time.UTC, updated.ReminderAt.Location())
	assert.True(t, updated.ReminderAt.Equal(at))
}

func TestUpdate_TitleChangeKeepsSentFlag(t *testing.T) {
	repo := newFakeRepo()
	note := repo.add(model.Note{UserID: 1, Title: "standup", ReminderSent: true})
	svc := NewDefaultService(repo)

	updated, err := svc.Update(context.Background(), note.ID, 1, UpdateNoteInput{Title: ptr("planning")})
	require.NoError(t, err)

	assert.Equal(t, "planning", updated.Title)
	assert.True(t, updated.ReminderSent)
}

func TestUpdate_NotOwner(t *testing.T) {
	repo := newFakeRepo()
	note := repo.add(model.Note{UserID: 1, Title: "standup"})
	svc := NewDefaultService(repo)

	_, err := svc.Update(context.Background(), note.ID, 2, UpdateNoteInput{Title: ptr("stolen")})
	assert.ErrorIs(t, err, model.ErrNoteNotFound)
}

func TestGet_AccessRules(t *testing.T) {
	repo := newFakeRepo()
	note := repo.add(model.Note{UserID: 1, Title: "shared doc"})
	repo.shared[note.ID] = map[model.UserID]bool{2: true}
	svc := NewDefaultService(repo)

	got, err := svc.Get(context.Background(), note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)

	got, err = svc.Get(context.Background(), note.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)

	_, err = svc.Get(context.Background(), note.ID, 3)
	assert.ErrorIs(t, err, model.ErrNoteNotFound)
}

func TestGet_DeletedNoteHidden(t *testing.T) {
	repo := newFakeRepo()
	note := repo.add(model.Note{UserID: 1, Title: "gone"})
	require.NoError(t, repo.SoftDeleteNote(context.Background(), note.ID, 1))
	svc := NewDefaultService(repo)

	_, err := svc.Get(context.Background(), note.ID, 1)
	assert.ErrorIs(t, err, model.ErrNoteNotFound)
}

func TestList_MergesOwnAndSharedSorted(t *testing.T) {
	repo := newFakeRepo()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	old := repo.add(model.Note{UserID: 1, Title: "old", UpdatedAt: base})
	pinned := repo.add(model.Note{UserID: 1, Title: "pinned", IsPinned: true, UpdatedAt: base.Add(-time.Hour)})
	foreign := repo.add(model.Note{UserID: 2, Title: "from petr", UpdatedAt: base.Add(time.Hour)})
	repo.shared[foreign.ID] = map[model.UserID]bool{1: true}

	svc := NewDefaultService(repo)

	all, err := svc.List(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, pinned.ID, all[0].ID)
	assert.Equal(t, foreign.ID, all[1].ID)
	assert.Equal(t, old.ID, all[2].ID)

	// Listing triggers the trash sweep with the 30-day cutoff.
	require.Len(t, repo.purgedAt, 1)
	assert.WithinDuration(t, time.Now().UTC().Add(-trashRetention), repo.purgedAt[0], time.Minute)
}

func TestCreate_UnknownFolder(t *testing.T) {
	repo := newFakeRepo()
	svc := NewDefaultService(repo)

	_, err := svc.Create(context.Background(), 1, CreateNoteInput{
		Title:    "orphan",
		FolderID: ptr(model.FolderID(99)),
	})
	assert.ErrorIs(t, err, model.ErrFolderNotFound)
}

func TestCreate_DropsForeignTags(t *testing.T) {
	repo := newFakeRepo()
	mine, _ := repo.CreateTag(context.Background(), model.Tag{Name: "work", UserID: 1})
	theirs, _ := repo.CreateTag(context.Background(), model.Tag{Name: "secret", UserID: 2})
	svc := NewDefaultService(repo)

	note, err := svc.Create(context.Background(), 1, CreateNoteInput{
		Title:  "tagged",
		TagIDs: []model.TagID{mine, theirs},
	})
	require.NoError(t, err)

	assert.Equal(t, []model.TagID{mine}, repo.noteTags[note.ID])
}
