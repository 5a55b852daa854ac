package middleware

import (
	"github.com/labstack/echo/v4"
	"github/gaspayer/relay-service/internal/auth"
	"github/gaspayer/relay-service/internal/util"
)

// APIKeyAuth resolves the caller's API key to client credentials and stores
// them in the request context. A missing or unknown key is not rejected here:
// credential-requiring operations fail downstream with an explanatory message.
func APIKeyAuth(store *auth.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(auth.HeaderAPIKey)

			creds := store.Resolve(apiKey)
			if creds != nil {
				ctx := auth.WithCredentials(c.Request().Context(), creds)
				c.SetRequest(c.Request().WithContext(ctx))
			} else if apiKey != "" {
				util.LogFromContext(c.Request().Context()).Debug().Msg("Unknown API key, proceeding without client credentials")
			}

			return next(c)
		}
	}
}
