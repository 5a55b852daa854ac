package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github/gaspayer/relay-service/internal/config"
)

func TestPrintServiceEnv(t *testing.T) {
	config := config.DefaultServiceConfigFromEnv()
	_, err := json.MarshalIndent(config, "", "  ")

	if err != nil {
		t.Fatal(err)
	}
}

func TestExpectedGasByOperationFromEnv(t *testing.T) {
	t.Setenv("SERVER_RELAY_EXPECTED_GAS_BY_OPERATION", "token_transfer:65000,swap:250000")

	cfg := config.DefaultServiceConfigFromEnv()
	assert.Equal(t, map[string]uint64{"token_transfer": 65000, "swap": 250000}, cfg.Relay.ExpectedGasByOperation)
}
