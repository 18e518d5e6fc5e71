package server

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/kotche/smartnotes/pkg/api/response"
)

const maxUploadSize = 10 << 20 // 10 MiB

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to parse multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("only images are allowed"))
		return
	}

	filename := strings.ReplaceAll(uuid.NewString(), "-", "") + filepath.Ext(header.Filename)

	url, err := s.uploader.Upload(r.Context(), filename, contentType, file)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"url": url})
}
