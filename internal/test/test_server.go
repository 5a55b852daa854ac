package test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github/gaspayer/relay-service/internal/api"
	"github/gaspayer/relay-service/internal/api/router"
	"github/gaspayer/relay-service/internal/auth"
	"github/gaspayer/relay-service/internal/config"
	"github/gaspayer/relay-service/internal/metrics"
	"github/gaspayer/relay-service/internal/relay"
)

// RelayProvider is a settable stub implementing the relay provider contract.
type RelayProvider struct {
	ProcessFunc func(ctx context.Context, req *relay.TransactionRequest, creds *auth.Credentials) (*relay.TransactionResult, error)
	FundingFunc func(ctx context.Context, req *relay.FundingRequest) (*relay.TransactionResult, error)
}

func (p *RelayProvider) ProcessTransactionWithGasTransfer(ctx context.Context, req *relay.TransactionRequest, creds *auth.Credentials) (*relay.TransactionResult, error) {
	if p.ProcessFunc != nil {
		return p.ProcessFunc(ctx, req, creds)
	}

	return &relay.TransactionResult{Success: true, TransactionHash: "0xstub"}, nil
}

func (p *RelayProvider) ConditionalFunding(ctx context.Context, req *relay.FundingRequest) (*relay.TransactionResult, error) {
	if p.FundingFunc != nil {
		return p.FundingFunc(ctx, req)
	}

	return &relay.TransactionResult{Success: true, TransactionHash: "0xstub"}, nil
}

// WithTestServer constructs a fully wired server around a stub provider and
// hands it to the closure. Tests mutate the server (e.g. swap the provider)
// before performing requests.
func WithTestServer(t *testing.T, closure func(s *api.Server, provider *RelayProvider)) {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Auth.SecurityConfigPath = "" // no credentials in tests unless injected
	cfg.Management.Secret = ""

	s := api.NewServer(cfg)

	store, err := auth.NewStoreFromFile("")
	require.NoError(t, err)

	provider := &RelayProvider{}

	s.Credentials = store
	s.Metrics = metrics.NewService()
	s.Relay = relay.NewService(provider)

	router.Init(s)

	closure(s, provider)
}

// PerformRequest runs a request against the test server without binding a
// socket, returning the recorded response.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body interface{}, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set(echoHeaderContentType, "application/json")

	for key, vals := range headers {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

const echoHeaderContentType = "Content-Type"

// ParseResponseBody unmarshals the recorded response body into v.
func ParseResponseBody(t *testing.T, res *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	require.NoError(t, json.Unmarshal(res.Body.Bytes(), v))
}
