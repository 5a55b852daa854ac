// Package handlers attaches all route handlers to the server router.
package handlers

import (
	"github.com/labstack/echo/v4"
	"github/gaspayer/relay-service/internal/api"
	"github/gaspayer/relay-service/internal/api/handlers/common"
	"github/gaspayer/relay-service/internal/api/handlers/transaction"
)

// AttachAllRoutes attaches all registered routes to the server.
func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		common.GetMetricsRoute(s),
		transaction.PostSignedTransactionRoute(s),
		transaction.PostFundWalletRoute(s),
	}
}
