package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github/gaspayer/relay-service/internal/api"
	"github/gaspayer/relay-service/internal/api/handlers"
	"github/gaspayer/relay-service/internal/api/middleware"
)

// Init wires the echo instance, middleware stack and route groups into the
// server.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = false
	s.Echo.HideBanner = true
	s.Echo.HTTPErrorHandler = api.HTTPErrorHandlerWithConfig(api.HTTPErrorHandlerConfig{
		HideInternalServerErrorDetails: s.Config.Echo.HideInternalServerErrorDetails,
	})

	s.Echo.Use(echoMiddleware.Recover())
	s.Echo.Use(echoMiddleware.RequestID())
	s.Echo.Use(middleware.Logger())

	s.Router = &api.Router{
		Routes: nil, // filled by handlers.AttachAllRoutes(s)

		Root:       s.Echo.Group(""),
		Management: s.Echo.Group("/-", middleware.ManagementSecret(s.Config.Management.Secret)),
		APIV1Transaction: s.Echo.Group("/api/v1",
			middleware.APIKeyAuth(s.Credentials),
		),
	}

	handlers.AttachAllRoutes(s)
}
