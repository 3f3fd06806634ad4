// Package server serves the phpgen web UI and its JSON API.
//
// The page is rendered on the server from the form state of the visitor's
// session; every form post redirects back to the page (post/redirect/get).
// The JSON API under /api exposes the same operations for scripts.
package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/phpgen/pkg/cache"
	"github.com/matzehuels/phpgen/pkg/session"
)

const (
	cookieName      = "phpgen_session"
	shutdownTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Logger   *log.Logger
	Sessions session.Store

	// SecureCookies marks the session cookie Secure; enable behind TLS.
	SecureCookies bool
}

// Server handles web UI and API requests.
type Server struct {
	logger   *log.Logger
	sessions session.Store
	secure   bool
	page     *template.Template
	router   chi.Router
}

// New creates a server. A nil logger uses log.Default(); a nil session
// store keeps sessions in memory.
func New(opts Options) (*Server, error) {
	s := &Server{
		logger:   opts.Logger,
		sessions: opts.Sessions,
		secure:   opts.SecureCookies,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.sessions == nil {
		s.sessions = session.NewCacheStore(cache.NewMemoryCache(), nil, 0)
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	s.page = tmpl
	s.router = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/static/*", staticHandler())

	r.Get("/", s.handlePage)
	r.Post("/project", s.handleProjectForm)
	r.Post("/dependencies/add", s.handleAddDependencyForm)
	r.Post("/dependencies/remove", s.handleRemoveDependencyForm)
	r.Post("/reset", s.handleResetForm)
	r.Post("/generate", s.handleGenerateForm)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SetHeader("Cache-Control", "no-store"))

		r.Get("/frameworks", s.apiFrameworks)
		r.Route("/frameworks/{framework}", func(r chi.Router) {
			r.Get("/categories", s.apiCategories)
			r.Get("/search", s.apiSearch)
			r.Get("/preview", s.apiPreview)
			r.Get("/graph.svg", s.apiGraph)
		})

		r.Get("/project", s.apiGetProject)
		r.Put("/project", s.apiPutProject)
		r.Post("/project/dependencies", s.apiAddDependency)
		r.Delete("/project/dependencies", s.apiRemoveDependency)
		r.Post("/project/reset", s.apiReset)
		r.Post("/generate", s.apiGenerate)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, errNotFound(r))
		})
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
