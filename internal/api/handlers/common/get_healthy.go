package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/gaspayer/relay-service/internal/api"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// getHealthyHandler only reports process liveness; readiness of the wired
// components is the /-/ready probe's concern.
func getHealthyHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "OK.")
	}
}
