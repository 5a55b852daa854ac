package auth

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// HeaderAPIKey is the request header carrying the caller's API key.
const HeaderAPIKey = "X-API-Key"

type contextKey string

const credentialsContextKey contextKey = "client.credentials"

// Credentials is the opaque capability token associated with an API key.
// The relay core never inspects its contents, only its presence.
type Credentials struct {
	APIKey          string `json:"apiKey"`
	GasPayerKeyHex  string `json:"gasPayerKeyHex"`
	GasPayerAddress string `json:"gasPayerAddress"`
}

// Store resolves API keys to credentials from the security config file.
type Store struct {
	byAPIKey map[string]*Credentials
}

// securityConfig is the on-disk shape of the security config file.
type securityConfig struct {
	Clients []Credentials `json:"clients"`
}

// NewStoreFromFile loads the security config. A missing path yields an empty
// store: requests then simply run without client credentials, which is a
// normal, non-error outcome.
func NewStoreFromFile(path string) (*Store, error) {
	store := &Store{byAPIKey: map[string]*Credentials{}}

	if path == "" {
		return store, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}

		return nil, errors.Wrapf(err, "failed to read security config %q", path)
	}

	var cfg securityConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse security config %q", path)
	}

	for i := range cfg.Clients {
		c := cfg.Clients[i]
		store.byAPIKey[c.APIKey] = &c
	}

	return store, nil
}

// Resolve returns the credentials for an API key, or nil when unknown.
func (s *Store) Resolve(apiKey string) *Credentials {
	if apiKey == "" {
		return nil
	}

	return s.byAPIKey[apiKey]
}

// WithCredentials returns a context carrying the resolved credentials.
func WithCredentials(ctx context.Context, creds *Credentials) context.Context {
	return context.WithValue(ctx, credentialsContextKey, creds)
}

// CredentialsFromContext returns the request's credentials or nil. Absence is
// not an error; the downstream call simply omits them.
func CredentialsFromContext(ctx context.Context) *Credentials {
	creds, _ := ctx.Value(credentialsContextKey).(*Credentials)
	return creds
}
