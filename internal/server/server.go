// Package server provides the HTTP REST API for the party optimizer.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/party-optimizer/internal/config"
	"github.com/jonathan/party-optimizer/internal/db"
	"github.com/jonathan/party-optimizer/internal/logging"
	"github.com/jonathan/party-optimizer/internal/metrics"
	"github.com/jonathan/party-optimizer/internal/types"
)

// CatalogStore is the subset of the catalog store the API needs
type CatalogStore interface {
	AddFriend(f types.Friend) error
	GetFriend(name string) (types.Friend, error)
	ListFriends() []types.Friend
	DeleteFriend(name string) error
	AddFood(f types.Food) error
	GetFood(name string) (types.Food, error)
	ListFoods() []types.Food
	DeleteFood(name string) error
	Snapshot() types.Catalog
	Reload() error
}

// RunRecorder persists optimization runs. Optional.
type RunRecorder interface {
	SaveRun(ctx context.Context, in db.RunInput) (uuid.UUID, error)
}

// Server represents the HTTP server
type Server struct {
	cfg        *config.Config
	store      CatalogStore
	runs       RunRecorder
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over store. runs may be nil, in which case save requests are rejected.
func New(cfg *config.Config, store CatalogStore, runs RunRecorder) *Server {
	s := &Server{
		cfg:   cfg,
		store: store,
		runs:  runs,
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(withLogging)
	r.Use(withMetrics)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if s.cfg.Server.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(s.cfg.Server.RateLimitReqs, s.cfg.Server.RateLimitWindow))
		}

		r.Route("/friends", func(r chi.Router) {
			r.Get("/", s.handleListFriends)
			r.Post("/", s.handleCreateFriend)
			r.Get("/{name}", s.handleGetFriend)
			r.Delete("/{name}", s.handleDeleteFriend)
		})

		r.Route("/foods", func(r chi.Router) {
			r.Get("/", s.handleListFoods)
			r.Post("/", s.handleCreateFood)
			r.Get("/{name}", s.handleGetFood)
			r.Delete("/{name}", s.handleDeleteFood)
		})

		r.Post("/catalog/reload", s.handleReload)
		r.Post("/optimize", s.handleOptimize)
	})

	return r
}

// Start listens until SIGINT/SIGTERM or ctx is done, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logging.Info().Msg("server stopped")
	return nil
}

// withLogging logs each request at debug level
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.Debug().
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// withMetrics records request counts and latency keyed by route pattern
func withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordAPIRequest(r.Method, route, status, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"friends": len(s.store.ListFriends()),
		"foods":   len(s.store.ListFoods()),
	})
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status and writes it
func writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.Error().Err(err).Msg("request failed")
	}
	errorResponse(w, status, err.Error())
}

// decodeJSON reads a JSON body, rejecting unknown fields
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}
