package config

import (
	"math/big"
	"time"

	"github/gaspayer/relay-service/internal/util"

	"github.com/rs/zerolog"
	"github.com/subosito/gotenv"
)

// EchoServer holds HTTP listener settings.
type EchoServer struct {
	ListenAddress                  string
	HideInternalServerErrorDetails bool
}

// LoggerServer holds logging settings.
type LoggerServer struct {
	Level              zerolog.Level
	PrettyPrintConsole bool
}

// AuthServer holds API-key resolution settings.
type AuthServer struct {
	SecurityConfigPath string
}

// ManagementServer holds settings of the /-/* endpoints.
type ManagementServer struct {
	Secret string
}

// Relay holds the blockchain connection parameters and gas policy consumed by
// the relay provider.
type Relay struct {
	RPCURL                  string
	ChainID                 int64
	GasPayerPrivateKeyHex   string `json:"-"` // never marshaled
	GasPayerContractAddress string
	MaxGasPriceWei          *big.Int
	MaxTxCostWei            *big.Int
	MaxGasLimit             uint64
	GasLimitBufferPercent   int64
	ExpectedGasByOperation  map[string]uint64
	BalanceUpdateTimeout    time.Duration
	BalancePollInterval     time.Duration
	ReceiptTimeout          time.Duration
}

// Server is the root configuration of the service.
type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Auth       AuthServer
	Management ManagementServer
	Relay      Relay
}

// Gas policy defaults. Price and cost caps are deliberately generous; real
// deployments override them through ENV.
var (
	defaultMaxGasPriceWei = big.NewInt(500_000_000_000)  // 500 gwei
	defaultMaxTxCostWei   = new(big.Int).SetUint64(2e18) // 2 ETH
)

const (
	defaultMaxGasLimit           uint64 = 10_000_000
	defaultGasLimitBufferPercent int64  = 20
)

// DefaultServiceConfigFromEnv returns the full server configuration resolved
// from the environment (with .env support), applying defaults for anything
// unset.
func DefaultServiceConfigFromEnv() Server {
	// load a local .env if present, never overriding real env
	_ = gotenv.Load()

	return Server{
		Echo: EchoServer{
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.DebugLevel.String())),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Auth: AuthServer{
			SecurityConfigPath: util.GetEnv("SERVER_AUTH_SECURITY_CONFIG_PATH", "/app/config/security-config.json"),
		},
		Management: ManagementServer{
			Secret: util.GetEnv("SERVER_MANAGEMENT_SECRET", ""),
		},
		Relay: Relay{
			RPCURL:                  util.GetEnv("SERVER_RELAY_RPC_URL", "http://localhost:8545"),
			ChainID:                 util.GetEnvAsInt64("SERVER_RELAY_CHAIN_ID", 1),
			GasPayerPrivateKeyHex:   util.GetEnv("SERVER_RELAY_GAS_PAYER_PRIVATE_KEY", ""),
			GasPayerContractAddress: util.GetEnv("GAS_PAYER_CONTRACT_ADDRESS", ""),
			MaxGasPriceWei:          util.GetEnvAsBigInt("SERVER_RELAY_MAX_GAS_PRICE_WEI", defaultMaxGasPriceWei),
			MaxTxCostWei:            util.GetEnvAsBigInt("SERVER_RELAY_MAX_TX_COST_WEI", defaultMaxTxCostWei),
			MaxGasLimit:             util.GetEnvAsUint64("SERVER_RELAY_MAX_GAS_LIMIT", defaultMaxGasLimit),
			GasLimitBufferPercent:   util.GetEnvAsInt64("SERVER_RELAY_GAS_LIMIT_BUFFER_PERCENT", defaultGasLimitBufferPercent),
			ExpectedGasByOperation:  util.GetEnvAsUint64Map("SERVER_RELAY_EXPECTED_GAS_BY_OPERATION", map[string]uint64{}),
			BalanceUpdateTimeout:    util.GetEnvAsDuration("SERVER_RELAY_BALANCE_UPDATE_TIMEOUT", 90*time.Second),
			BalancePollInterval:     util.GetEnvAsDuration("SERVER_RELAY_BALANCE_POLL_INTERVAL", 3*time.Second),
			ReceiptTimeout:          util.GetEnvAsDuration("SERVER_RELAY_RECEIPT_TIMEOUT", 2*time.Minute),
		},
	}
}
