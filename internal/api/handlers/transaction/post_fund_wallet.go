package transaction

import (
	"fmt"
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/gaspayer/relay-service/internal/api"
	"github/gaspayer/relay-service/internal/relay"
	"github/gaspayer/relay-service/internal/types"
	"github/gaspayer/relay-service/internal/util"
)

func PostFundWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Transaction.POST("/fund-wallet", postFundWalletHandler(s))
}

func postFundWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostFundWalletPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		req := &relay.FundingRequest{
			WalletAddress:        swag.StringValue(body.WalletAddress),
			TotalAmountNeededWei: body.Amount(),
		}

		result, boundaryErr := guarded(func() *relay.TransactionResult {
			return s.Relay.ConditionalFunding(ctx, req)
		})
		if boundaryErr != nil {
			log.Error().
				Str("wallet", req.WalletAddress).
				Str("amount", req.TotalAmountNeededWei.String()).
				Err(boundaryErr).
				Msg("Unhandled fault at funding boundary")

			s.Metrics.ObserveRelayRequest(relay.FundingOperationName, false)

			return util.ValidateAndReturn(c, http.StatusInternalServerError, &types.TransactionResult{
				Success: swag.Bool(false),
				Error:   fmt.Sprintf("Internal server error processing wallet funding for %s: %v", req.WalletAddress, boundaryErr),
			})
		}

		s.Metrics.ObserveRelayRequest(relay.FundingOperationName, result.Success)

		return util.ValidateAndReturn(c, statusFor(result), resultToResponse(result))
	}
}
