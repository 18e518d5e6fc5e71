package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/kotche/smartnotes/internal/model"
	"github.com/kotche/smartnotes/pkg/api/response"
)

type createFolderRequest struct {
	Name     string          `json:"name" validate:"required"`
	ParentID *model.FolderID `json:"parent_id"`
}

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.notes.ListFolders(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	out := make([]folderOut, 0, len(folders))
	for _, folder := range folders {
		out = append(out, folderOut{
			ID:        folder.ID,
			Name:      folder.Name,
			ParentID:  folder.ParentID,
			CreatedAt: folder.CreatedAt,
		})
	}

	render.JSON(w, r, out)
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
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

	userID := userIDFromContext(r.Context())
	folderID, err := s.notes.CreateFolder(r.Context(), model.Folder{
		Name:     req.Name,
		ParentID: req.ParentID,
		UserID:   userID,
	})
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, folderOut{ID: folderID, Name: req.Name, ParentID: req.ParentID})
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "folder_id")
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid folder id"))
		return
	}

	if err = s.notes.DeleteFolder(r.Context(), model.FolderID(parsed), userIDFromContext(r.Context())); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.NoContent(w, r)
}
