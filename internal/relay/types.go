package relay

import (
	"context"
	"math/big"

	"github/gaspayer/relay-service/internal/auth"
)

// FundingOperationName is the fixed operation name used when enriching
// conditional-funding failures.
const FundingOperationName = "wallet_funding"

// TransactionResult is the single outcome shape of every relay operation.
// Error is populated iff Success is false.
type TransactionResult struct {
	Success         bool
	TransactionHash string
	Error           string
}

// TransactionRequest carries a pre-signed transaction for relaying.
type TransactionRequest struct {
	UserWalletAddress    string
	SignedTransactionHex string
	OperationName        string
}

// FundingRequest asks for a wallet to be topped up to a total wei amount.
type FundingRequest struct {
	WalletAddress        string
	TotalAmountNeededWei *big.Int
}

// Provider is the external relay collaborator performing the actual chain
// interaction. A failed operation may surface either as a TransactionResult
// with Success=false (logical failure) or as a returned error (fault); the
// orchestrator normalizes both.
type Provider interface {
	ProcessTransactionWithGasTransfer(ctx context.Context, req *TransactionRequest, creds *auth.Credentials) (*TransactionResult, error)
	ConditionalFunding(ctx context.Context, req *FundingRequest) (*TransactionResult, error)
}
