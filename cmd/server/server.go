package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/gaspayer/relay-service/internal/api"
	"github/gaspayer/relay-service/internal/api/router"
	"github/gaspayer/relay-service/internal/auth"
	"github/gaspayer/relay-service/internal/config"
	"github/gaspayer/relay-service/internal/metrics"
	"github/gaspayer/relay-service/internal/relay"
	"github/gaspayer/relay-service/internal/relay/provider/evm"
)

const shutdownTimeout = 30 * time.Second

// New starts the HTTP server.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Run: func(_ *cobra.Command, _ []string) {
			runServer()
		},
	}
}

func runServer() {
	cfg := config.DefaultServiceConfigFromEnv()

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(cfg.Logger.Level)
	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter())
	}

	s := api.NewServer(cfg)

	if err := initServer(s); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server components")
	}

	router.Init(s)

	go func() {
		if err := s.Start(); err != nil {
			log.Error().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		log.Error().Errs("errors", errs).Msg("Server shutdown completed with errors")
		os.Exit(1)
	}

	log.Info().Msg("Server shutdown completed")
}

// initServer wires the server components in dependency order.
func initServer(s *api.Server) error {
	credentials, err := auth.NewStoreFromFile(s.Config.Auth.SecurityConfigPath)
	if err != nil {
		return err
	}

	provider, err := evm.NewProvider(s.Config.Relay)
	if err != nil {
		return err
	}

	s.Credentials = credentials
	s.Metrics = metrics.NewService()
	s.Relay = relay.NewService(provider)

	return nil
}
