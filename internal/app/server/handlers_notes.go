package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/kotche/smartnotes/internal/model"
	notesServ "github.com/kotche/smartnotes/internal/service/notes"
	"github.com/kotche/smartnotes/pkg/api/response"
)

type createNoteRequest struct {
	Title      string          `json:"title" validate:"required"`
	Content    string          `json:"content"`
	IsMarkdown *bool           `json:"is_markdown"`
	IsPinned   bool            `json:"is_pinned"`
	IsPublic   bool            `json:"is_public"`
	FolderID   *model.FolderID `json:"folder_id"`
	Color      *string         `json:"color"`
	ImageURL   *string         `json:"image_url"`
	ReminderAt *time.Time      `json:"reminder_at"`
	TagIDs     []model.TagID   `json:"tag_ids"`
}

type updateNoteRequest struct {
	Title      *string         `json:"title"`
	Content    *string         `json:"content"`
	IsMarkdown *bool           `json:"is_markdown"`
	IsPinned   *bool           `json:"is_pinned"`
	IsPublic   *bool           `json:"is_public"`
	FolderID   *model.FolderID `json:"folder_id"`
	Color      *string         `json:"color"`
	ImageURL   *string         `json:"image_url"`
	ReminderAt *time.Time      `json:"reminder_at"`
	TagIDs     *[]model.TagID  `json:"tag_ids"`
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	var folderID *model.FolderID
	if raw := r.URL.Query().Get("folder_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid folder id"))
			return
		}
		id := model.FolderID(parsed)
		folderID = &id
	}

	notes, err := s.notes.List(r.Context(), userIDFromContext(r.Context()), folderID)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, toNotesOut(notes))
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := validator.New().Struct(req); err != nil {
		validateErr := err.(validator.ValidationErrors)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	isMarkdown := true
	if req.IsMarkdown != nil {
		isMarkdown = *req.IsMarkdown
	}

	note, err := s.notes.Create(r.Context(), userIDFromContext(r.Context()), notesServ.CreateNoteInput{
		Title:      req.Title,
		Content:    req.Content,
		IsMarkdown: isMarkdown,
		IsPinned:   req.IsPinned,
		IsPublic:   req.IsPublic,
		FolderID:   req.FolderID,
		Color:      req.Color,
		ImageURL:   req.ImageURL,
		ReminderAt: req.ReminderAt,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toNoteOut(note))
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	noteID, ok := s.noteIDParam(w, r)
	if !ok {
		return
	}

	note, err := s.notes.Get(r.Context(), noteID, userIDFromContext(r.Context()))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, toNoteOut(note))
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	noteID, ok := s.noteIDParam(w, r)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	note, err := s.notes.Update(r.Context(), noteID, userIDFromContext(r.Context()), notesServ.UpdateNoteInput{
		Title:      req.Title,
		Content:    req.Content,
		IsMarkdown: req.IsMarkdown,
		IsPinned:   req.IsPinned,
		IsPublic:   req.IsPublic,
		FolderID:   req.FolderID,
		Color:      req.Color,
		ImageURL:   req.ImageURL,
		ReminderAt: req.ReminderAt,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, toNoteOut(note))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	noteID, ok := s.noteIDParam(w, r)
	if !ok {
		return
	}

	if err := s.notes.Delete(r.Context(), noteID, userIDFromContext(r.Context())); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, response.OK())
}

func (s *Server) handleListTrash(w http.ResponseWriter, r *http.Request) {
	notes, err := s.notes.ListTrash(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, toNotesOut(notes))
}

func (s *Server) handleRestoreNote(w http.ResponseWriter, r *http.Request) {
	noteID, ok := s.noteIDParam(w, r)
	if !ok {
		return
	}

	note, err := s.notes.Restore(r.Context(), noteID, userIDFromContext(r.Context()))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, toNoteOut(note))
}

func (s *Server) handleForceDeleteNote(w http.ResponseWriter, r *http.Request) {
	noteID, ok := s.noteIDParam(w, r)
	if !ok {
		return
	}

	if err := s.notes.ForceDelete(r.Context(), noteID, userIDFromContext(r.Context())); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len([]rune(query)) < 2 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("query must be at least 2 characters"))
		return
	}

	notes, err := s.notes.Search(r.Context(), userIDFromContext(r.Context()), query)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, toNotesOut(notes))
}

func (s *Server) noteIDParam(w http.ResponseWriter, r *http.Request) (model.NoteID, bool) {
	raw := chi.URLParam(r, "note_id")
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid note id"))
		return 0, false
	}
	return model.NoteID(parsed), true
}
