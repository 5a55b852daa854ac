package transaction

import (
	"fmt"
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/gaspayer/relay-service/internal/api"
	"github/gaspayer/relay-service/internal/auth"
	"github/gaspayer/relay-service/internal/relay"
	"github/gaspayer/relay-service/internal/types"
	"github/gaspayer/relay-service/internal/util"
)

func PostSignedTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Transaction.POST("/signed-transaction", postSignedTransactionHandler(s))
}

func postSignedTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSignedTransactionPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		req := &relay.TransactionRequest{
			UserWalletAddress:    swag.StringValue(body.UserWalletAddress),
			SignedTransactionHex: swag.StringValue(body.SignedTransactionHex),
			OperationName:        body.Operation(),
		}

		result, boundaryErr := guarded(func() *relay.TransactionResult {
			return s.Relay.ProcessSignedTransaction(ctx, req, auth.CredentialsFromContext(ctx))
		})
		if boundaryErr != nil {
			log.Error().
				Str("wallet", req.UserWalletAddress).
				Str("operation", req.OperationName).
				Err(boundaryErr).
				Msg("Unhandled fault at transaction boundary")

			s.Metrics.ObserveRelayRequest(req.OperationName, false)

			return util.ValidateAndReturn(c, http.StatusInternalServerError, &types.TransactionResult{
				Success: swag.Bool(false),
				Error:   fmt.Sprintf("Internal server error processing transaction for operation '%s': %v", req.OperationName, boundaryErr),
			})
		}

		s.Metrics.ObserveRelayRequest(req.OperationName, result.Success)

		return util.ValidateAndReturn(c, statusFor(result), resultToResponse(result))
	}
}

// guarded is the boundary's second line of defense: the orchestrator never
// returns faults, but a panic below it must still surface as a well-formed
// result.
func guarded(fn func() *relay.TransactionResult) (result *relay.TransactionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.Errorf("panic: %v", r)
		}
	}()

	return fn(), nil
}

func statusFor(result *relay.TransactionResult) int {
	if result.Success {
		return http.StatusOK
	}

	return http.StatusBadRequest
}

func resultToResponse(result *relay.TransactionResult) *types.TransactionResult {
	return &types.TransactionResult{
		Success:         swag.Bool(result.Success),
		TransactionHash: result.TransactionHash,
		Error:           result.Error,
	}
}
