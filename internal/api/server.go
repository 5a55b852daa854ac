package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/gaspayer/relay-service/internal/auth"
	"github/gaspayer/relay-service/internal/config"
	"github/gaspayer/relay-service/internal/metrics"
	"github/gaspayer/relay-service/internal/relay"
	"github/gaspayer/relay-service/internal/util"
)

// RelayService interface for relay orchestration
// Alias to relay.Service for API access
type RelayService = relay.Service

type Router struct {
	Routes           []*echo.Route
	Root             *echo.Group
	Management       *echo.Group
	APIV1Transaction *echo.Group
}

// Server is a central struct keeping all the dependencies. Components are
// initialized in cmd/server before Start; Ready reports whether
// initialization completed.
type Server struct {
	// -> initialized with router.Init(s)
	Echo   *echo.Echo
	Router *Router

	Config      config.Server
	Metrics     *metrics.Service
	Credentials *auth.Store
	Relay       RelayService
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
