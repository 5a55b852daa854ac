package api

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/gaspayer/relay-service/internal/api/httperrors"
	"github/gaspayer/relay-service/internal/types"
	"github/gaspayer/relay-service/internal/util"
)

// HTTPErrorHandlerConfig controls how unhandled errors are rendered.
type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandlerWithConfig returns an echo error handler rendering all
// error flavors as the public error wire shapes.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var payload interface{}
		code := http.StatusInternalServerError

		switch e := err.(type) {
		case *httperrors.HTTPValidationError:
			code = int(swag.Int64Value(e.Code))
			payload = &e.PublicHTTPValidationError
		case *httperrors.HTTPError:
			code = int(swag.Int64Value(e.Code))
			payload = &e.PublicHTTPError
		case *echo.HTTPError:
			code = e.Code
			title := http.StatusText(code)
			if msg, ok := e.Message.(string); ok {
				if code < http.StatusInternalServerError || !config.HideInternalServerErrorDetails {
					title = msg
				}
			}
			payload = types.NewPublicHTTPError(code, types.PublicHTTPErrorTypeGeneric, title)
		default:
			title := http.StatusText(code)
			if !config.HideInternalServerErrorDetails {
				title = err.Error()
			}
			payload = types.NewPublicHTTPError(code, types.PublicHTTPErrorTypeGeneric, title)
		}

		util.LogFromContext(c.Request().Context()).Debug().Err(err).Int("status", code).Msg("Request failed")

		if writeErr := c.JSON(code, payload); writeErr != nil {
			util.LogFromContext(c.Request().Context()).Error().Err(writeErr).Msg("Failed to write error response")
		}
	}
}
