package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/kotche/smartnotes/internal/model"
	"github.com/kotche/smartnotes/pkg/api/response"
)

type createShareLinkRequest struct {
	IsPublic         bool `json:"is_public"`
	ExpiresInMinutes *int `json:"expires_in_minutes"`
}

type shareLinkOut struct {
	Token     string     `json:"token"`
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type shareWithUserRequest struct {
	Username string `json:"username" validate:"required"`
}

type publicNoteOut struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsMarkdown bool      `json:"is_markdown"`
	UpdatedAt  time.Time `json:"updated_at"`
	Tags       []tagOut  `json:"tags"`
}

func (s *Server) handleCreateShareLink(w http.ResponseWriter, r *http.Request) {
	noteID, ok := s.noteIDParam(w, r)
	if !ok {
		return
	}

	var req createShareLinkRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	var expiresIn *time.Duration
	if req.ExpiresInMinutes != nil {
		d := time.Duration(*req.ExpiresInMinutes) * time.Minute
		expiresIn = &d
	}

	link, err := s.shares.CreateLink(r.Context(), noteID, userIDFromContext(r.Context()), req.IsPublic, expiresIn)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, shareLinkOut{
		Token:     link.Token,
		URL:       fmt.Sprintf("%s/share/public/%s", s.baseURL, link.Token),
		ExpiresAt: link.ExpiresAt,
	})
}

func (s *Server) handlePublicNote(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	note, err := s.shares.ResolveLink(r.Context(), token)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, publicNoteOut{
		Title:      note.Title,
		Content:    note.Content,
		IsMarkdown: note.IsMarkdown,
		UpdatedAt:  note.UpdatedAt,
		Tags:       toTagsOut(note.Tags),
	})
}

func (s *Server) handleShareWithUser(w http.ResponseWriter, r *http.Request) {
	noteID, ok := s.noteIDParam(w, r)
	if !ok {
		return
	}

	var req shareWithUserRequest
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

	share, err := s.shares.ShareWithUser(r.Context(), noteID, userIDFromContext(r.Context()), req.Username)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toShareOut(share))
}

func (s *Server) handlePendingShares(w http.ResponseWriter, r *http.Request) {
	pending, err := s.shares.PendingShares(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	out := make([]shareOut, 0, len(pending))
	for i := range pending {
		out = append(out, toShareOut(&pending[i]))
	}

	render.JSON(w, r, out)
}

func (s *Server) handleAcceptShare(w http.ResponseWriter, r *http.Request) {
	s.respondToShare(w, r, true)
}

func (s *Server) handleRejectShare(w http.ResponseWriter, r *http.Request) {
	s.respondToShare(w, r, false)
}

func (s *Server) respondToShare(w http.ResponseWriter, r *http.Request, accept bool) {
	raw := chi.URLParam(r, "share_id")
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid share id"))
		return
	}

	share, err := s.shares.Respond(r.Context(), model.ShareID(parsed), userIDFromContext(r.Context()), accept)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, toShareOut(share))
}
