package server

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"github.com/kotche/smartnotes/internal/auth"
	notesServ "github.com/kotche/smartnotes/internal/service/notes"
	sharesServ "github.com/kotche/smartnotes/internal/service/shares"
	"github.com/kotche/smartnotes/internal/service/storage"
	usersServ "github.com/kotche/smartnotes/internal/service/users"
)

type Server struct {
	notes      notesServ.Service
	users      usersServ.Service
	shares     sharesServ.Service
	uploader   storage.Uploader
	tokens     *auth.TokenManager
	logger     zerolog.Logger
	uploadsDir string
	baseURL    string
}

// New builds the HTTP application. uploadsDir is empty when uploads go
// to S3 and nothing needs to be served from disk.
func New(
	notes notesServ.Service,
	users usersServ.Service,
	shares sharesServ.Service,
	uploader storage.Uploader,
	tokens *auth.TokenManager,
	logger zerolog.Logger,
	uploadsDir string,
	baseURL string,
) *Server {
	return &Server{
		notes:      notes,
		users:      users,
		shares:     shares,
		uploader:   uploader,
		tokens:     tokens,
		logger:     logger.With().Str("component", "http").Logger(),
		uploadsDir: uploadsDir,
		baseURL:    baseURL,
	}
}

func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(s.requestLogger)
	router.Use(corsMiddleware)

	router.Get("/", s.handleHealth)

	router.Post("/auth/register", s.handleRegister)
	router.Post("/auth/token", s.handleLogin)

	router.Group(func(r chi.Router) {
		r.Use(s.jwtMiddleware)

		r.Get("/auth/me", s.handleMe)

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", s.handleListNotes)
			r.Post("/", s.handleCreateNote)
			r.Get("/trash", s.handleListTrash)
			r.Post("/upload", s.handleUpload)
			r.Get("/{note_id}", s.handleGetNote)
			r.Patch("/{note_id}", s.handleUpdateNote)
			r.Delete("/{note_id}", s.handleDeleteNote)
			r.Post("/{note_id}/restore", s.handleRestoreNote)
			r.Delete("/{note_id}/force", s.handleForceDeleteNote)
		})

		r.Get("/search", s.handleSearch)

		r.Route("/folders", func(r chi.Router) {
			r.Get("/", s.handleListFolders)
			r.Post("/", s.handleCreateFolder)
			r.Delete("/{folder_id}", s.handleDeleteFolder)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.handleListTags)
			r.Post("/", s.handleCreateTag)
		})

		r.Post("/share/notes/{note_id}", s.handleCreateShareLink)
		r.Post("/share/notes/{note_id}/user", s.handleShareWithUser)
		r.Get("/share/requests/pending", s.handlePendingShares)
		r.Post("/share/requests/{share_id}/accept", s.handleAcceptShare)
		r.Post("/share/requests/{share_id}/reject", s.handleRejectShare)
	})

	router.Get("/share/public/{token}", s.handlePublicNote)

	if s.uploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir)))
		router.Get("/uploads/*", fileServer.ServeHTTP)
	}

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok", "app": "smartnotes"})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
		next.ServeHTTP(w, r)
	})
}
