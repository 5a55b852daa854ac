package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
)

const managementSecretQueryParam = "mgmt-secret"

// ManagementSecret guards the /-/* endpoints. An empty configured secret
// leaves them open, which is only acceptable for local development.
func ManagementSecret(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}

			provided := c.QueryParam(managementSecretQueryParam)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) == 1 {
				return next(c)
			}

			return echo.ErrUnauthorized
		}
	}
}
