// Package server exposes the blog tooling over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"blogforge/internal/config"
	"blogforge/internal/core"
	"blogforge/internal/logger"
	"blogforge/internal/pipeline"
)

// Store is the persistence surface the handlers need.
type Store interface {
	CreateProject(ctx context.Context, name, userID string) (*core.Project, error)
	GetProject(ctx context.Context, id string) (*core.Project, error)
	ListProjects(ctx context.Context) ([]core.Project, error)
	UpdateProjectStatus(ctx context.Context, id, status string) error
	UpdateProjectFTPPath(ctx context.Context, id, ftpPath string) error
	DeleteProject(ctx context.Context, id string) error

	AddPhoto(ctx context.Context, photo *core.Photo) (*core.Photo, error)
	AddPhotosBatch(ctx context.Context, photos []*core.Photo) ([]core.Photo, error)
	GetPhoto(ctx context.Context, id string) (*core.Photo, error)
	ListPhotos(ctx context.Context, projectID string) ([]core.Photo, error)
	UpdatePhoto(ctx context.Context, id string, upd core.PhotoUpdate) (*core.Photo, error)
	ReorderPhotos(ctx context.Context, projectID string, photoIDs []string) error
	SearchPhotos(ctx context.Context, filter core.PhotoFilter) (*core.PhotoPage, error)
	DeletePhoto(ctx context.Context, id string) error

	GetContent(ctx context.Context, projectID string) (*core.Content, error)

	GetUserSetting(ctx context.Context, userID, key string) (string, error)
	SetUserSetting(ctx context.Context, userID, key, value string) error

	AddReferenceSource(ctx context.Context, src *core.ReferenceSource) (*core.ReferenceSource, error)
	ListReferenceSources(ctx context.Context, userID string) ([]core.ReferenceSource, error)
	UpdateReferenceSource(ctx context.Context, id string, upd core.ReferenceUpdate) (*core.ReferenceSource, error)
	DeleteReferenceSource(ctx context.Context, id string) error
}

// Transfer is the file-host surface the handlers need.
type Transfer interface {
	UploadBytes(ctx context.Context, data []byte, remotePath string) (string, error)
	EnsureDirs(ctx context.Context, paths ...string) error
	DeleteFile(ctx context.Context, remotePath string) error
	DeleteDirectory(ctx context.Context, remotePath string) error
	RemotePathFromURL(url string) string
}

// Runner executes the generation pipeline.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
	RunStream(ctx context.Context, req pipeline.Request) <-chan pipeline.Event
}

// Server is the HTTP front of the blog tooling.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	store      Store
	transfer   Transfer
	runner     Runner
	imaging    config.Imaging
	client     *http.Client // fetches photo bytes for the download proxy
}

// New wires the router and handlers.
func New(store Store, transfer Transfer, runner Runner, cfg *config.Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		store:    store,
		transfer: transfer,
		runner:   runner,
		imaging:  cfg.Imaging,
		client:   &http.Client{Timeout: 30 * time.Second},
	}

	s.setupMiddleware(cfg.Server)
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  parseDurationOr(cfg.Server.ReadTimeout, 30*time.Second),
		WriteTimeout: parseDurationOr(cfg.Server.WriteTimeout, 5*time.Minute),
	}
	return s
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	return fallback
}

func (s *Server) setupMiddleware(cfg config.Server) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/blog", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Post("/", s.handleCreateProject)
			r.Get("/", s.handleListProjects)
			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", s.handleGetProject)
				r.Delete("/", s.handleDeleteProject)
				r.Post("/photos", s.handleUploadPhoto)
				r.Get("/photos", s.handleListPhotos)
				r.Put("/photos/reorder", s.handleReorderPhotos)
				r.Post("/generate", s.handleGenerate)
				r.Get("/generate/stream", s.handleGenerateStream)
				r.Get("/content", s.handleGetContent)
			})
		})

		r.Route("/photos", func(r chi.Router) {
			r.Get("/search", s.handleSearchPhotos)
			r.Put("/{photoID}", s.handleUpdatePhoto)
			r.Delete("/{photoID}", s.handleDeletePhoto)
			r.Get("/{photoID}/download", s.handleDownloadPhoto)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/{key}", s.handleGetSetting)
			r.Put("/{key}", s.handleUpdateSetting)
		})

		r.Route("/references", func(r chi.Router) {
			r.Get("/", s.handleListReferences)
			r.Post("/", s.handleAddReference)
			r.Put("/{referenceID}", s.handleUpdateReference)
			r.Delete("/{referenceID}", s.handleDeleteReference)
		})
	})
}

// Router exposes the chi mux, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the server until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	logger.Info("http server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
