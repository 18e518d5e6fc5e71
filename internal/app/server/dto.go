package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/kotche/smartnotes/internal/model"
	"github.com/kotche/smartnotes/pkg/api/response"
)

type userOut struct {
	ID        model.UserID `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	CreatedAt time.Time    `json:"created_at"`
}

type tagOut struct {
	ID   model.TagID `json:"id"`
	Name string      `json:"name"`
}

type folderOut struct {
	ID        model.FolderID  `json:"id"`
	Name      string          `json:"name"`
	ParentID  *model.FolderID `json:"parent_id"`
	CreatedAt time.Time       `json:"created_at"`
}

type noteOut struct {
	ID           model.NoteID    `json:"id"`
	UserID       model.UserID    `json:"user_id"`
	FolderID     *model.FolderID `json:"folder_id"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	IsMarkdown   bool            `json:"is_markdown"`
	IsPinned     bool            `json:"is_pinned"`
	IsPublic     bool            `json:"is_public"`
	Color        *string         `json:"color"`
	ImageURL     *string         `json:"image_url"`
	ReminderAt   *time.Time      `json:"reminder_at"`
	ReminderSent bool            `json:"reminder_sent"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    *time.Time      `json:"deleted_at"`
	Tags         []tagOut        `json:"tags"`
}

type shareOut struct {
	ID          model.ShareID     `json:"id"`
	NoteID      model.NoteID      `json:"note_id"`
	SharedBy    model.UserID      `json:"shared_by_user_id"`
	SharedWith  model.UserID      `json:"shared_with_user_id"`
	Status      model.ShareStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	RespondedAt *time.Time        `json:"responded_at"`
}

func toUserOut(user *model.User) userOut {
	return userOut{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func toTagsOut(tags []model.Tag) []tagOut {
	out := make([]tagOut, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tagOut{ID: tag.ID, Name: tag.Name})
	}
	return out
}

func toNoteOut(note *model.Note) noteOut {
	return noteOut{
		ID:           note.ID,
		UserID:       note.UserID,
		FolderID:     note.FolderID,
		Title:        note.Title,
		Content:      note.Content,
		IsMarkdown:   note.IsMarkdown,
		IsPinned:     note.IsPinned,
		IsPublic:     note.IsPublic,
		Color:        note.Color,
		ImageURL:     note.ImageURL,
		ReminderAt:   note.ReminderAt,
		ReminderSent: note.ReminderSent,
		CreatedAt:    note.CreatedAt,
		UpdatedAt:    note.UpdatedAt,
		DeletedAt:    note.DeletedAt,
		Tags:         toTagsOut(note.Tags),
	}
}

func toNotesOut(notes []model.Note) []noteOut {
	out := make([]noteOut, 0, len(notes))
	for i := range notes {
		out = append(out, toNoteOut(&notes[i]))
	}
	return out
}

func toShareOut(share *model.NoteShare) shareOut {
	return shareOut{
		ID:          share.ID,
		NoteID:      share.NoteID,
		SharedBy:    share.SharedBy,
		SharedWith:  share.SharedWith,
		Status:      share.Status,
		CreatedAt:   share.CreatedAt,
		RespondedAt: share.RespondedAt,
	}
}

// renderError maps domain errors to HTTP statuses.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNoteNotFound),
		errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrFolderNotFound),
		errors.Is(err, model.ErrTagNotFound),
		errors.Is(err, model.ErrShareNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, model.ErrUserExists),
		errors.Is(err, model.ErrTagExists),
		errors.Is(err, model.ErrShareExists):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, model.ErrSelfShare):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, model.ErrShareLinkExpired):
		render.Status(r, http.StatusGone)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, model.ErrShareLinkPrivate):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.Is(err, model.ErrInvalidCredentials):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(err.Error()))
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("internal error")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
	}
}
