package common_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github/gaspayer/relay-service/internal/api"
	"github/gaspayer/relay-service/internal/test"
)

func TestGetReadyReadiness(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.RelayProvider) {
		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Equal(t, "Ready.", res.Body.String())
	})
}

func TestGetReadyReadinessBroken(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.RelayProvider) {
		// forcefully remove an initialized component to check if ready state works
		s.Relay = nil

		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, 521, res.Result().StatusCode)
		require.Equal(t, "Not ready.", res.Body.String())
	})
}

func TestGetHealthy(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.RelayProvider) {
		res := test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
	})
}

func TestGetMetricsExposesRelayCounters(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.RelayProvider) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/signed-transaction", map[string]interface{}{
			"userWalletAddress":    "0x1234567890abcdef1234567890abcdef12345678",
			"signedTransactionHex": "0xf86c2a",
			"operationName":        "token_transfer",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		metricsRes := test.PerformRequest(t, s, "GET", "/-/metrics", nil, nil)
		require.Equal(t, http.StatusOK, metricsRes.Result().StatusCode)
		require.Contains(t, metricsRes.Body.String(), "relay_requests_total")
		require.Contains(t, metricsRes.Body.String(), `operation="token_transfer"`)
	})
}
