package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ismail-dev-code/career-linker-server/internal/auth"
	"github.com/ismail-dev-code/career-linker-server/internal/config"
	"github.com/ismail-dev-code/career-linker-server/internal/database"
	"github.com/ismail-dev-code/career-linker-server/internal/metrics"
	"github.com/ismail-dev-code/career-linker-server/internal/relay"
)

const blacklistCleanupInterval = 10 * time.Minute

// Server holds every dependency the routes need
type Server struct {
	cfg      config.Config
	store    database.Store
	verifier auth.Verifier
	logger   zerolog.Logger

	blacklist *auth.InMemoryBlacklistStore
	sessions  *auth.SessionManager
	hub       *relay.Hub
	metrics   *metrics.Metrics
}

// NewServer construct new Server instance. verifier checks bearer tokens on the applicant routes.
func NewServer(cfg config.Config, store database.Store, verifier auth.Verifier, logger zerolog.Logger) *Server {
	m := metrics.New()
	blacklist := auth.NewInMemoryBlacklistStore()

	return &Server{
		cfg:       cfg,
		store:     store,
		verifier:  verifier,
		logger:    logger,
		blacklist: blacklist,
		sessions:  auth.NewSessionManager(cfg.Auth.SecretKey, cfg.Auth.Issuer, cfg.Auth.SessionTTL, blacklist),
		hub:       relay.NewHub(logger, m),
		metrics:   m,
	}
}

// Sessions returns the manager that signs session cookies
func (s *Server) Sessions() *auth.SessionManager {
	return s.sessions
}

// Start runs the relay hub and the revocation cleanup until ctx is done
func (s *Server) Start(ctx context.Context) {
	s.blacklist.StartCleanup(ctx, blacklistCleanupInterval)
	go s.hub.Run(ctx)
}

// HTTPServer builds the http.Server serving RegisterRoutes on the configured port
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.RegisterRoutes(),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}
