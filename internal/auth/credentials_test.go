package auth_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/gaspayer/relay-service/internal/auth"
)

func writeSecurityConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "security-config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestNewStoreFromFile(t *testing.T) {
	path := writeSecurityConfig(t, `{
		"clients": [
			{"apiKey": "key-1", "gasPayerKeyHex": "0xabc", "gasPayerAddress": "0xdef"},
			{"apiKey": "key-2", "gasPayerKeyHex": "0x123", "gasPayerAddress": "0x456"}
		]
	}`)

	store, err := auth.NewStoreFromFile(path)
	require.NoError(t, err)

	creds := store.Resolve("key-1")
	require.NotNil(t, creds)
	assert.Equal(t, "0xabc", creds.GasPayerKeyHex)

	assert.Nil(t, store.Resolve("unknown"))
	assert.Nil(t, store.Resolve(""))
}

func TestNewStoreFromFileMissingPathIsEmpty(t *testing.T) {
	store, err := auth.NewStoreFromFile("")
	require.NoError(t, err)
	assert.Nil(t, store.Resolve("any"))

	store, err = auth.NewStoreFromFile("/nonexistent/security-config.json")
	require.NoError(t, err)
	assert.Nil(t, store.Resolve("any"))
}

func TestNewStoreFromFileRejectsGarbage(t *testing.T) {
	path := writeSecurityConfig(t, "not json")

	_, err := auth.NewStoreFromFile(path)
	require.Error(t, err)
}

func TestCredentialsContextRoundtrip(t *testing.T) {
	creds := &auth.Credentials{APIKey: "key-1"}

	ctx := auth.WithCredentials(context.Background(), creds)
	assert.Same(t, creds, auth.CredentialsFromContext(ctx))

	assert.Nil(t, auth.CredentialsFromContext(context.Background()))
}
