package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ismail-dev-code/career-linker-server/internal/auth"
	"github.com/ismail-dev-code/career-linker-server/internal/config"
	"github.com/ismail-dev-code/career-linker-server/internal/database"
	"github.com/ismail-dev-code/career-linker-server/internal/server"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server and the chat relay.

The server shuts down gracefully on SIGINT/SIGTERM.

Examples:
  # Start with configuration from the environment
  career serve

  # Use the in-memory store on another port
  DB_DRIVER=memory career serve --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: $PORT or 3000)")
}

func runServer(parent context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := config.NewLogger(cfg.Logging)

	store, err := database.Open(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("database failed to initialize: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("close store")
		}
	}()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	oracle := auth.NewIdentityOracle(cfg.Auth.IdentityUserInfoURL, cfg.Auth.IdentityTimeout)
	srv := server.NewServer(cfg, store, oracle, logger)
	srv.Start(ctx)
	httpServer := srv.HTTPServer()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Str("driver", cfg.Database.Driver).Msg("career server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
