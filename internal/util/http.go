package util

import (
	"net/http"

	"github/gaspayer/relay-service/internal/api/httperrors"
	"github/gaspayer/relay-service/internal/types"

	openapierrors "github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by all payload and response types.
type Validatable interface {
	Validate(formats strfmt.Registry) error
}

// BindAndValidateBody binds the request body to v and runs its validation,
// converting validation failures into a structured 400.
func BindAndValidateBody(c echo.Context, v Validatable) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to bind request body").SetInternal(err)
	}

	if err := v.Validate(strfmt.Default); err != nil {
		return httperrors.NewHTTPValidationError(
			http.StatusBadRequest,
			types.PublicHTTPErrorTypeGeneric,
			http.StatusText(http.StatusBadRequest),
			validationErrorDetails(err),
		)
	}

	return nil
}

// ValidateAndReturn validates the response payload before writing it, so a
// malformed response is caught server-side instead of shipped.
func ValidateAndReturn(c echo.Context, code int, v Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		return err
	}

	return c.JSON(code, v)
}

func validationErrorDetails(err error) []*types.HTTPValidationErrorDetail {
	var details []*types.HTTPValidationErrorDetail

	switch e := err.(type) {
	case *openapierrors.CompositeError:
		for _, inner := range e.Errors {
			details = append(details, validationErrorDetails(inner)...)
		}
	case *openapierrors.Validation:
		details = append(details, &types.HTTPValidationErrorDetail{
			Key:   swag.String(e.Name),
			In:    swag.String(e.In),
			Error: swag.String(e.Error()),
		})
	default:
		details = append(details, &types.HTTPValidationErrorDetail{
			Key:   swag.String("body"),
			In:    swag.String("body"),
			Error: swag.String(err.Error()),
		})
	}

	return details
}
