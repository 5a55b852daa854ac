package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/gaspayer/relay-service/internal/api"
)

// statusNotReady is a non-standard code distinguishable from upstream 5xx.
const statusNotReady = 521

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(statusNotReady, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
