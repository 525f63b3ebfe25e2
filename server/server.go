// Package server exposes price comparison over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"

	"price-aggregator/models"
	"price-aggregator/services"
	"price-aggregator/utils"
)

const maxBodyBytes = 1 << 20

// Client-facing error messages.
const (
	msgMissingField    = "Search term and category are required"
	msgInvalidCategory = "Invalid category specified"
	msgInvalidBody     = "invalid request body"
	msgNotFound        = "Could not find the product on any platform."
	msgInternal        = "An internal server error occurred."
)

// Searcher runs comparison queries.
type Searcher interface {
	Search(ctx context.Context, q services.Query) ([]models.RankedListing, error)
	Catalog() *services.Catalog
}

// Options configure the HTTP server.
type Options struct {
	Port            int
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// Server is the HTTP front of the search service.
type Server struct {
	search Searcher
	opts   Options
	logger *utils.Logger
	router chi.Router
}

// New builds the router.
func New(search Searcher, opts Options, logger *utils.Logger) *Server {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	s := &Server{search: search, opts: opts, logger: logger.Named("http")}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Get("/categories", s.handleCategories)
	})

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.opts.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return eris.Wrap(err, "server listen")
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server shutdown")
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var q services.Query
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	ranked, err := s.search.Search(r.Context(), q)
	if err != nil {
		status, msg := errorResponse(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("Search %q failed: %v", q.SearchTerm, err)
		}
		writeError(w, status, msg)
		return
	}

	if ranked == nil {
		ranked = []models.RankedListing{}
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.search.Catalog().Platforms()})
}

// errorResponse maps query errors to a status code and client message.
func errorResponse(err error) (int, string) {
	switch {
	case eris.Is(err, services.ErrMissingField):
		return http.StatusBadRequest, msgMissingField
	case eris.Is(err, services.ErrInvalidCategory):
		return http.StatusBadRequest, msgInvalidCategory
	case eris.Is(err, services.ErrNoResults):
		return http.StatusNotFound, msgNotFound
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.With("request_id", middleware.GetReqID(r.Context())).
			Info("%s %s -> %d in %v", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
