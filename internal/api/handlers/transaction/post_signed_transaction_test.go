package transaction_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/gaspayer/relay-service/internal/api"
	"github/gaspayer/relay-service/internal/auth"
	"github/gaspayer/relay-service/internal/relay"
	"github/gaspayer/relay-service/internal/test"
	"github/gaspayer/relay-service/internal/types"
)

const (
	testWallet = "0x1234567890abcdef1234567890abcdef12345678"
	testTxHex  = "0xf86c2a8504a817c800825208941234567890abcdef1234567890abcdef12345678880de0b6b3a76400008025a0abcdef"
)

func signedTransactionBody(op string) map[string]interface{} {
	return map[string]interface{}{
		"userWalletAddress":    testWallet,
		"signedTransactionHex": testTxHex,
		"operationName":        op,
	}
}

func TestPostSignedTransactionSuccess(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, provider *test.RelayProvider) {
		provider.ProcessFunc = func(_ context.Context, req *relay.TransactionRequest, _ *auth.Credentials) (*relay.TransactionResult, error) {
			assert.Equal(t, testWallet, req.UserWalletAddress)
			assert.Equal(t, "token_transfer", req.OperationName)

			return &relay.TransactionResult{Success: true, TransactionHash: "0xhash"}, nil
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/signed-transaction", signedTransactionBody("token_transfer"), nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var result types.TransactionResult
		test.ParseResponseBody(t, res, &result)

		require.NotNil(t, result.Success)
		assert.True(t, *result.Success)
		assert.Equal(t, "0xhash", result.TransactionHash)
		assert.Empty(t, result.Error)
	})
}

func TestPostSignedTransactionFailureReturns400Enriched(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, provider *test.RelayProvider) {
		provider.ProcessFunc = func(_ context.Context, _ *relay.TransactionRequest, _ *auth.Credentials) (*relay.TransactionResult, error) {
			return &relay.TransactionResult{Success: false, Error: "insufficient funds for gas * price + value"}, nil
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/signed-transaction", signedTransactionBody("token_transfer"), nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var result types.TransactionResult
		test.ParseResponseBody(t, res, &result)

		require.NotNil(t, result.Success)
		assert.False(t, *result.Success)
		assert.Contains(t, result.Error, "Insufficient funds for operation 'token_transfer'")
		assert.Contains(t, result.Error, "wallet: 0x123456...5678")
	})
}

func TestPostSignedTransactionFaultReturns400Enriched(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, provider *test.RelayProvider) {
		provider.ProcessFunc = func(_ context.Context, _ *relay.TransactionRequest, _ *auth.Credentials) (*relay.TransactionResult, error) {
			return nil, errors.New("timeout")
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/signed-transaction", signedTransactionBody("swap"), nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var result types.TransactionResult
		test.ParseResponseBody(t, res, &result)

		require.NotNil(t, result.Success)
		assert.False(t, *result.Success)
		assert.Contains(t, result.Error, "Transaction failed for operation 'swap': timeout")
		assert.Contains(t, result.Error, "exceptionType: ")
	})
}

func TestPostSignedTransactionPanicReturns500Counted(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, provider *test.RelayProvider) {
		provider.ProcessFunc = func(_ context.Context, _ *relay.TransactionRequest, _ *auth.Credentials) (*relay.TransactionResult, error) {
			panic("nil map write")
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/signed-transaction", signedTransactionBody("swap"), nil)
		require.Equal(t, http.StatusInternalServerError, res.Result().StatusCode)

		var result types.TransactionResult
		test.ParseResponseBody(t, res, &result)

		require.NotNil(t, result.Success)
		assert.False(t, *result.Success)
		assert.Contains(t, result.Error, "Internal server error processing transaction for operation 'swap'")

		metricsRes := test.PerformRequest(t, s, "GET", "/-/metrics", nil, nil)
		require.Equal(t, http.StatusOK, metricsRes.Result().StatusCode)
		assert.Contains(t, metricsRes.Body.String(), `relay_requests_total{operation="swap",outcome="failure"} 1`)
	})
}

func TestPostSignedTransactionValidation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.RelayProvider) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/signed-transaction", map[string]interface{}{
			"userWalletAddress":    "not-an-address",
			"signedTransactionHex": testTxHex,
		}, nil)

		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var httpError types.PublicHTTPValidationError
		test.ParseResponseBody(t, res, &httpError)
		require.NotEmpty(t, httpError.ValidationErrors)
		assert.Equal(t, "userWalletAddress", *httpError.ValidationErrors[0].Key)
	})
}

func TestPostSignedTransactionMissingBodyFields(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.RelayProvider) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/signed-transaction", map[string]interface{}{}, nil)

		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestPostSignedTransactionDefaultsOperationName(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, provider *test.RelayProvider) {
		provider.ProcessFunc = func(_ context.Context, req *relay.TransactionRequest, _ *auth.Credentials) (*relay.TransactionResult, error) {
			assert.Equal(t, types.DefaultOperationName, req.OperationName)

			return &relay.TransactionResult{Success: true}, nil
		}

		body := signedTransactionBody("")
		delete(body, "operationName")

		res := test.PerformRequest(t, s, "POST", "/api/v1/signed-transaction", body, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
	})
}
