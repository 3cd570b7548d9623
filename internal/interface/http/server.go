// Package httpapi exposes the reporting engine and the farm registry over
// HTTP. All results are computed per request; error bodies follow a single
// {success, error, error_code} shape.
package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"cuy-farm/internal/apperr"
	"cuy-farm/internal/application/alerts"
	"cuy-farm/internal/application/breeding"
	"cuy-farm/internal/application/registry"
	"cuy-farm/internal/application/reports"
	"cuy-farm/internal/infra/memory"
	"cuy-farm/internal/infrastructure/config"
	"cuy-farm/internal/infrastructure/persistence/postgres"
)

const (
	errCodeBadRequest       = "VALIDATION_ERROR"
	errCodeNotFound         = "NOT_FOUND"
	errCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	errCodeInternal         = "INTERNAL_ERROR"
)

// Server wires the HTTP routes to the application layer.
type Server struct {
	mux         *http.ServeMux
	store       *memory.Store
	db          *sql.DB
	reportsUC   *reports.UseCase
	scanner     *alerts.Scanner
	recommender *breeding.Recommender
	registry    *registry.Service
	log         zerolog.Logger
}

// NewServer builds the API server. With a database handle the repositories
// run on Postgres; without one everything runs on the in-memory store.
func NewServer(cfg config.Config, db *sql.DB, log zerolog.Logger) *Server {
	store := memory.NewStore()

	s := &Server{
		mux:   http.NewServeMux(),
		store: store,
		db:    db,
		log:   log.With().Str("component", "http").Logger(),
	}

	if db != nil {
		herd := postgres.NewHerdRepo(db)
		healthRepo := postgres.NewHealthRepo(db)
		feedingRepo := postgres.NewFeedingRepo(db)
		financeRepo := postgres.NewFinanceRepo(db)
		s.reportsUC = reports.NewUseCase(herd, feedingRepo, financeRepo, log)
		s.scanner = alerts.NewScanner(herd, healthRepo, feedingRepo, log)
		s.recommender = breeding.NewRecommender(herd, log)
		s.registry = registry.NewService(herd, healthRepo, feedingRepo, financeRepo, log)
	} else {
		s.reportsUC = reports.NewUseCase(store, store, store, log)
		s.scanner = alerts.NewScanner(store, store, store, log)
		s.recommender = breeding.NewRecommender(store, log)
		s.registry = registry.NewService(store, store, store, store, log)
	}

	s.registerRoutes()
	return s
}

// Handler returns the route handler for mounting on an HTTP server.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request handled")
	})
}

// Store exposes the in-memory store, mainly for seeding test data.
func (s *Server) Store() *memory.Store {
	return s.store
}

func (s *Server) wrapGet(h http.HandlerFunc) http.Handler {
	return s.wrapMethod(http.MethodGet, h)
}

func (s *Server) wrapPost(h http.HandlerFunc) http.Handler {
	return s.wrapMethod(http.MethodPost, h)
}

func (s *Server) wrapMethod(method string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, errCodeMethodNotAllowed, "method not allowed")
			return
		}
		h(w, r)
	})
}

// wrapCollection routes GET to list and POST to create on the same path.
func (s *Server) wrapCollection(list, create http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			create(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, errCodeMethodNotAllowed, "method not allowed")
		}
	})
}

// writeDomainError maps application errors onto the HTTP error taxonomy.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidation(err):
		writeError(w, http.StatusBadRequest, errCodeBadRequest, err.Error())
	case apperr.IsNotFound(err):
		writeError(w, http.StatusNotFound, errCodeNotFound, err.Error())
	default:
		s.log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, errCodeInternal, "internal error")
	}
}
