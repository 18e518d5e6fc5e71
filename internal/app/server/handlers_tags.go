package server

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/kotche/smartnotes/internal/model"
	"github.com/kotche/smartnotes/pkg/api/response"
)

type createTagRequest struct {
	Name string `json:"name" validate:"required"`
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.notes.ListTags(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.JSON(w, r, toTagsOut(tags))
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
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

	tagID, err := s.notes.CreateTag(r.Context(), model.Tag{
		Name:   req.Name,
		UserID: userIDFromContext(r.Context()),
	})
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, tagOut{ID: tagID, Name: req.Name})
}
