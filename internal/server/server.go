// Package server exposes the HTTP API consumed by the squad builder frontend.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/strikesquad/squadapi/internal/apisports"
	"github.com/strikesquad/squadapi/internal/footballdata"
	"github.com/strikesquad/squadapi/internal/logger"
	"github.com/strikesquad/squadapi/internal/sportsdb"
	"github.com/strikesquad/squadapi/internal/storage"
	"github.com/strikesquad/squadapi/internal/topstrike"
)

// Server holds the handler dependencies.
type Server struct {
	football  *footballdata.Service
	dashboard *apisports.Service
	players   *sportsdb.Resolver
	fixtures  *topstrike.Client
	store     *storage.Storage
	log       *logger.Logger
}

// New creates a server. store may be nil; persistence-backed routes then
// answer 503.
func New(
	football *footballdata.Service,
	dashboard *apisports.Service,
	players *sportsdb.Resolver,
	fixtures *topstrike.Client,
	store *storage.Storage,
	log *logger.Logger,
) *Server {
	return &Server{
		football:  football,
		dashboard: dashboard,
		players:   players,
		fixtures:  fixtures,
		store:     store,
		log:       log,
	}
}

// Router builds the chi router with middleware and all API routes.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/football-data", s.handleFootballData)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/fixtures", s.handleFixtures)
		r.Get("/players", s.handlePlayers)
		r.Get("/formations", s.handleFormations)

		r.Get("/wallet-link", s.handleGetWalletLink)
		r.Post("/wallet-link", s.handlePostWalletLink)
		r.Delete("/wallet-link", s.handleDeleteWalletLink)
		r.Get("/leaderboard", s.handleLeaderboard)

		r.Get("/squad", s.handleGetSquad)
		r.Post("/squad", s.handlePostSquad)
	})

	return r
}
