package relay_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/gaspayer/relay-service/internal/auth"
	"github/gaspayer/relay-service/internal/relay"
)

const testWallet = "0x1234567890abcdef1234567890abcdef12345678"

type stubProvider struct {
	processFunc func(ctx context.Context, req *relay.TransactionRequest, creds *auth.Credentials) (*relay.TransactionResult, error)
	fundingFunc func(ctx context.Context, req *relay.FundingRequest) (*relay.TransactionResult, error)
}

func (p *stubProvider) ProcessTransactionWithGasTransfer(ctx context.Context, req *relay.TransactionRequest, creds *auth.Credentials) (*relay.TransactionResult, error) {
	return p.processFunc(ctx, req, creds)
}

func (p *stubProvider) ConditionalFunding(ctx context.Context, req *relay.FundingRequest) (*relay.TransactionResult, error) {
	return p.fundingFunc(ctx, req)
}

func txRequest(op string) *relay.TransactionRequest {
	return &relay.TransactionRequest{
		UserWalletAddress:    testWallet,
		SignedTransactionHex: "0xf86c2a",
		OperationName:        op,
	}
}

func TestProcessSignedTransactionSuccessPassesThrough(t *testing.T) {
	upstream := &relay.TransactionResult{Success: true, TransactionHash: "0xdeadbeef"}

	svc := relay.NewService(&stubProvider{
		processFunc: func(_ context.Context, _ *relay.TransactionRequest, _ *auth.Credentials) (*relay.TransactionResult, error) {
			return upstream, nil
		},
	})

	result := svc.ProcessSignedTransaction(context.Background(), txRequest("token_transfer"), nil)

	require.NotNil(t, result)
	assert.Same(t, upstream, result)
	assert.True(t, result.Success)
	assert.Equal(t, "0xdeadbeef", result.TransactionHash)
	assert.Empty(t, result.Error)
}

func TestProcessSignedTransactionEnrichesFailureResult(t *testing.T) {
	svc := relay.NewService(&stubProvider{
		processFunc: func(_ context.Context, _ *relay.TransactionRequest, _ *auth.Credentials) (*relay.TransactionResult, error) {
			return &relay.TransactionResult{Success: false, Error: "insufficient funds for gas * price + value"}, nil
		},
	})

	result := svc.ProcessSignedTransaction(context.Background(), txRequest("token_transfer"), nil)

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "Insufficient funds for operation 'token_transfer'")
	assert.Contains(t, result.Error, "gas payer wallet does not have enough ETH")
	assert.Contains(t, result.Error, "wallet: 0x123456...5678")
}

func TestProcessSignedTransactionFailureWithBlankErrorPassesThrough(t *testing.T) {
	upstream := &relay.TransactionResult{Success: false, Error: "   "}

	svc := relay.NewService(&stubProvider{
		processFunc: func(_ context.Context, _ *relay.TransactionRequest, _ *auth.Credentials) (*relay.TransactionResult, error) {
			return upstream, nil
		},
	})

	result := svc.ProcessSignedTransaction(context.Background(), txRequest("token_transfer"), nil)

	assert.Same(t, upstream, result)
}

func TestProcessSignedTransactionConvertsFault(t *testing.T) {
	svc := relay.NewService(&stubProvider{
		processFunc: func(_ context.Context, _ *relay.TransactionRequest, _ *auth.Credentials) (*relay.TransactionResult, error) {
			return nil, errors.New("timeout")
		},
	})

	result := svc.ProcessSignedTransaction(context.Background(), txRequest("token_transfer"), nil)

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Empty(t, result.TransactionHash)
	assert.Contains(t, result.Error, "Transaction failed for operation 'token_transfer': timeout")
	assert.Contains(t, result.Error, "wallet: 0x123456...5678")
	assert.Contains(t, result.Error, "exceptionType: ")
}

func TestProcessSignedTransactionFaultNamesRootCause(t *testing.T) {
	svc := relay.NewService(&stubProvider{
		processFunc: func(_ context.Context, _ *relay.TransactionRequest, _ *auth.Credentials) (*relay.TransactionResult, error) {
			return nil, errors.Wrap(context.DeadlineExceeded, "failed to submit transaction")
		},
	})

	result := svc.ProcessSignedTransaction(context.Background(), txRequest("swap"), nil)

	require.False(t, result.Success)
	// the wrapped cause, not the wrapper, is named
	assert.Contains(t, result.Error, "exceptionType: context.deadlineExceededError")
}

func TestConditionalFundingSuccessPassesThrough(t *testing.T) {
	upstream := &relay.TransactionResult{Success: true, TransactionHash: "0xfund"}

	svc := relay.NewService(&stubProvider{
		fundingFunc: func(_ context.Context, _ *relay.FundingRequest) (*relay.TransactionResult, error) {
			return upstream, nil
		},
	})

	result := svc.ConditionalFunding(context.Background(), &relay.FundingRequest{
		WalletAddress:        testWallet,
		TotalAmountNeededWei: big.NewInt(500000000000000000),
	})

	assert.Same(t, upstream, result)
}

func TestConditionalFundingEnrichesFailureWithRequestedAmount(t *testing.T) {
	svc := relay.NewService(&stubProvider{
		fundingFunc: func(_ context.Context, _ *relay.FundingRequest) (*relay.TransactionResult, error) {
			return &relay.TransactionResult{Success: false, Error: "Gas Payer Contract not configured"}, nil
		},
	})

	result := svc.ConditionalFunding(context.Background(), &relay.FundingRequest{
		WalletAddress:        testWallet,
		TotalAmountNeededWei: big.NewInt(500000000000000000),
	})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "Configuration error for operation 'wallet_funding'")
	assert.Contains(t, result.Error, "wallet: 0x123456...5678")
	assert.Contains(t, result.Error, "requestedAmount: 5.00E+17")
}

func TestConditionalFundingConvertsFault(t *testing.T) {
	svc := relay.NewService(&stubProvider{
		fundingFunc: func(_ context.Context, _ *relay.FundingRequest) (*relay.TransactionResult, error) {
			return nil, errors.New("connection refused")
		},
	})

	result := svc.ConditionalFunding(context.Background(), &relay.FundingRequest{
		WalletAddress:        testWallet,
		TotalAmountNeededWei: big.NewInt(1000000000000000000),
	})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "Transaction failed for operation 'wallet_funding': connection refused")
	assert.Contains(t, result.Error, "requestedAmount: 1.00E+18")
	assert.Contains(t, result.Error, "exceptionType: ")
}
