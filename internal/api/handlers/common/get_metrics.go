package common

import (
	"github.com/labstack/echo/v4"
	"github/gaspayer/relay-service/internal/api"
)

func GetMetricsRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/metrics", s.Metrics.Handler())
}
