// Package server wires the stores, services, and handlers into one HTTP
// router.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mychoreapp/choretribe/internal/config"
	"github.com/mychoreapp/choretribe/internal/handler"
	"github.com/mychoreapp/choretribe/internal/middleware"
	"github.com/mychoreapp/choretribe/internal/service"
	"github.com/mychoreapp/choretribe/internal/store"
	ws "github.com/mychoreapp/choretribe/internal/websocket"
)

type Server struct {
	db          *sql.DB
	cfg         *config.Config
	hub         *ws.Hub
	userH       *handler.UserHandler
	tribeH      *handler.TribeHandler
	choreH      *handler.ChoreHandler
	completionH *handler.CompletionHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	tribeStore := store.NewTribeStore(db)
	choreStore := store.NewChoreStore(db)

	userSvc := service.NewUserService(userStore, tribeStore)
	tribeSvc := service.NewTribeService(tribeStore)
	choreSvc := service.NewChoreService(choreStore, tribeStore, userStore)
	completionSvc := service.NewCompletionService(db, choreStore, userStore, logger.With("component", "completion"))

	return &Server{
		db:          db,
		cfg:         cfg,
		hub:         hub,
		userH:       handler.NewUserHandler(userSvc, hub),
		tribeH:      handler.NewTribeHandler(tribeSvc, hub),
		choreH:      handler.NewChoreHandler(choreSvc, hub),
		completionH: handler.NewCompletionHandler(completionSvc, hub),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter so callers can run periodic cleanup.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", s.hub.HandleWebSocket)

	// User routes. Registration and joining are the unauthenticated write
	// paths, so they get rate limited.
	mux.HandleFunc("POST /api/users/register", s.rateLimited(s.userH.Register))
	mux.HandleFunc("GET /api/users", s.userH.List)
	mux.HandleFunc("GET /api/users/{id}", s.userH.Get)
	mux.HandleFunc("GET /api/users/by-username/{username}", s.userH.GetByUsername)
	mux.HandleFunc("GET /api/users/by-email/{email}", s.userH.GetByEmail)
	mux.HandleFunc("GET /api/users/by-google-id/{googleId}", s.userH.GetByGoogleID)
	mux.HandleFunc("PUT /api/users/{id}/add-points/{points}", s.userH.AddPoints)
	mux.HandleFunc("PUT /api/users/{id}/join-tribe/{joinCode}", s.rateLimited(s.userH.JoinTribe))
	mux.HandleFunc("PUT /api/users/{id}/leave-tribe", s.userH.LeaveTribe)
	mux.HandleFunc("DELETE /api/users/{id}", s.userH.Delete)

	// Tribe routes
	mux.HandleFunc("POST /api/tribes", s.tribeH.Create)
	mux.HandleFunc("GET /api/tribes", s.tribeH.List)
	mux.HandleFunc("GET /api/tribes/{id}", s.tribeH.Get)
	mux.HandleFunc("GET /api/tribes/by-name/{name}", s.tribeH.GetByName)
	mux.HandleFunc("GET /api/tribes/by-join-code/{joinCode}", s.tribeH.GetByJoinCode)
	mux.HandleFunc("PUT /api/tribes/{id}", s.tribeH.Update)
	mux.HandleFunc("DELETE /api/tribes/{id}", s.tribeH.Delete)

	// Chore routes
	mux.HandleFunc("POST /api/chores/tribe/{tribeId}", s.choreH.Create)
	mux.HandleFunc("GET /api/chores/all", s.choreH.List)
	mux.HandleFunc("GET /api/chores/{id}", s.choreH.Get)
	mux.HandleFunc("GET /api/chores/tribe/{tribeId}", s.choreH.ListByTribe)
	mux.HandleFunc("GET /api/chores/tribe/{tribeId}/active", s.choreH.ListActiveByTribe)
	mux.HandleFunc("GET /api/chores/assigned-to/{userId}", s.choreH.ListByAssignee)
	mux.HandleFunc("GET /api/chores/assigned-to/{userId}/active", s.choreH.ListActiveByAssignee)
	mux.HandleFunc("PUT /api/chores/{id}", s.choreH.Update)
	mux.HandleFunc("PUT /api/chores/{id}/assign/{userId}", s.choreH.Assign)
	mux.HandleFunc("PUT /api/chores/{id}/unassign", s.choreH.Unassign)
	mux.HandleFunc("DELETE /api/chores/{id}", s.choreH.Delete)

	// Chore completion routes
	mux.HandleFunc("POST /api/chore-completions/{choreId}/complete-by/{userId}", s.completionH.Record)
	mux.HandleFunc("GET /api/chore-completions/all", s.completionH.ListAll)
	mux.HandleFunc("GET /api/chore-completions/{id}", s.completionH.Get)
	mux.HandleFunc("GET /api/chore-completions/user/{userId}", s.completionH.ListByUser)
	mux.HandleFunc("GET /api/chore-completions/chore/{choreId}", s.completionH.ListByChore)
	mux.HandleFunc("GET /api/chore-completions/tribe/{tribeId}/range", s.completionH.ListByTribeAndRange)
	mux.HandleFunc("GET /api/chore-completions/user/{userId}/range", s.completionH.ListByUserAndRange)
	mux.HandleFunc("DELETE /api/chore-completions/{id}", s.completionH.Delete)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimited(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.RealIP, s.cfg.RateLimit, s.cfg.RateLimitWindow)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(h).ServeHTTP(w, r)
	}
}
