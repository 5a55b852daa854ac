package relay

import (
	"context"
	"fmt"
	"strings"

	"github/gaspayer/relay-service/internal/auth"
	"github/gaspayer/relay-service/internal/relay/enrich"
	"github/gaspayer/relay-service/internal/relay/format"
	"github/gaspayer/relay-service/internal/util"

	"github.com/pkg/errors"
)

// Service is the request-level relay policy: it delegates to the provider and
// enriches every failure into a user-actionable TransactionResult. It never
// returns an error; faults are converted at this boundary.
type Service interface {
	ProcessSignedTransaction(ctx context.Context, req *TransactionRequest, creds *auth.Credentials) *TransactionResult
	ConditionalFunding(ctx context.Context, req *FundingRequest) *TransactionResult
}

type service struct {
	provider Provider
}

// NewService creates a new relay service.
//
//nolint:ireturn // Returning interface aids DI
func NewService(provider Provider) Service {
	return &service{
		provider: provider,
	}
}

// ProcessSignedTransaction relays a pre-signed transaction. Successful
// provider results pass through untouched; failures and faults come back with
// an enriched error message.
func (s *service) ProcessSignedTransaction(ctx context.Context, req *TransactionRequest, creds *auth.Credentials) *TransactionResult {
	log := util.LogFromContext(ctx)

	log.Info().
		Str("wallet", req.UserWalletAddress).
		Str("operation", req.OperationName).
		Msg("Processing signed transaction")

	result, err := s.provider.ProcessTransactionWithGasTransfer(ctx, req, creds)
	if err != nil {
		enriched := enrich.DetailedTransactionError(
			err.Error(),
			req.OperationName,
			req.UserWalletAddress,
			[]enrich.Field{
				{Key: "exceptionType", Value: faultKind(err)},
			},
		)

		log.Error().
			Str("wallet", req.UserWalletAddress).
			Str("operation", req.OperationName).
			Err(err).
			Msg("Signed transaction processing raised a fault")

		return &TransactionResult{Success: false, Error: enriched}
	}

	if !result.Success && strings.TrimSpace(result.Error) != "" {
		enriched := enrich.DetailedTransactionError(result.Error, req.OperationName, req.UserWalletAddress, nil)

		log.Warn().
			Str("wallet", req.UserWalletAddress).
			Str("operation", req.OperationName).
			Str("error", enriched).
			Msg("Signed transaction failed")

		return &TransactionResult{Success: false, TransactionHash: result.TransactionHash, Error: enriched}
	}

	return result
}

// ConditionalFunding tops a wallet up to the requested total. The requested
// amount is attached as enrichment context on every failure path.
func (s *service) ConditionalFunding(ctx context.Context, req *FundingRequest) *TransactionResult {
	log := util.LogFromContext(ctx)

	log.Info().
		Str("wallet", req.WalletAddress).
		Str("amount", req.TotalAmountNeededWei.String()).
		Msg("Processing conditional funding")

	requestedAmount := enrich.Field{Key: "requestedAmount", Value: format.WeiScientific(req.TotalAmountNeededWei)}

	result, err := s.provider.ConditionalFunding(ctx, req)
	if err != nil {
		enriched := enrich.DetailedTransactionError(
			err.Error(),
			FundingOperationName,
			req.WalletAddress,
			[]enrich.Field{
				requestedAmount,
				{Key: "exceptionType", Value: faultKind(err)},
			},
		)

		log.Error().
			Str("wallet", req.WalletAddress).
			Str("amount", req.TotalAmountNeededWei.String()).
			Err(err).
			Msg("Conditional funding raised a fault")

		return &TransactionResult{Success: false, Error: enriched}
	}

	if !result.Success && strings.TrimSpace(result.Error) != "" {
		enriched := enrich.DetailedTransactionError(
			result.Error,
			FundingOperationName,
			req.WalletAddress,
			[]enrich.Field{requestedAmount},
		)

		log.Warn().
			Str("wallet", req.WalletAddress).
			Str("amount", req.TotalAmountNeededWei.String()).
			Str("error", enriched).
			Msg("Conditional funding failed")

		return &TransactionResult{Success: false, TransactionHash: result.TransactionHash, Error: enriched}
	}

	return result
}

// faultKind names the concrete type of the root cause, mirroring the
// exception class name an operator would expect to see.
func faultKind(err error) string {
	return fmt.Sprintf("%T", errors.Cause(err))
}
