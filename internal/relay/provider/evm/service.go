// Package evm implements the relay provider contract against an EVM RPC
// endpoint: gas policy checks, conditional gas top-ups and raw transaction
// submission.
package evm

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github/gaspayer/relay-service/internal/auth"
	"github/gaspayer/relay-service/internal/config"
	"github/gaspayer/relay-service/internal/relay"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

const percentBase = 100

type service struct {
	client       *ethclient.Client
	cfg          config.Relay
	gasPayerKey  *ecdsa.PrivateKey
	gasPayerAddr common.Address
}

// NewProvider connects to the configured RPC endpoint and prepares the gas
// payer signer if a key is configured.
//
//nolint:ireturn // Returning interface aids DI
func NewProvider(cfg config.Relay) (relay.Provider, error) {
	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to RPC endpoint %q", cfg.RPCURL)
	}

	s := &service{
		client: client,
		cfg:    cfg,
	}

	if cfg.GasPayerPrivateKeyHex != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.GasPayerPrivateKeyHex, "0x"))
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse gas payer private key")
		}

		s.gasPayerKey = key
		s.gasPayerAddr = crypto.PubkeyToAddress(key.PublicKey)
	}

	return s, nil
}

// ProcessTransactionWithGasTransfer validates the signed transaction against
// the gas policy, tops the user wallet up from the gas payer if it cannot
// cover the transaction cost, and submits the raw transaction.
func (s *service) ProcessTransactionWithGasTransfer(ctx context.Context, req *relay.TransactionRequest, creds *auth.Credentials) (*relay.TransactionResult, error) {
	tx, err := decodeSignedTransaction(req.SignedTransactionHex)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode signed transaction")
	}

	// GasFeeCap doubles as the gas price for legacy transactions
	gasPrice := tx.GasFeeCap()
	gasLimit := tx.Gas()
	cost := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasLimit))
	cost.Add(cost, tx.Value())

	if failure := s.checkGasPolicy(ctx, req.OperationName, gasPrice, gasLimit, cost); failure != nil {
		return failure, nil
	}

	payerKey, payerAddr, failure := s.resolveGasPayer(creds)
	if failure != nil {
		return failure, nil
	}

	userAddr := common.HexToAddress(req.UserWalletAddress)

	balance, err := s.client.BalanceAt(ctx, userAddr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read user wallet balance")
	}

	if balance.Cmp(cost) < 0 {
		shortfall := new(big.Int).Sub(cost, balance)
		if failure := s.ensureGasFunds(ctx, payerKey, payerAddr, userAddr, shortfall, cost); failure != nil {
			return failure, nil
		}
	}

	if err := s.client.SendTransaction(ctx, tx); err != nil {
		return nil, errors.Wrap(err, "failed to submit transaction")
	}

	return &relay.TransactionResult{
		Success:         true,
		TransactionHash: tx.Hash().Hex(),
	}, nil
}

// ConditionalFunding tops a wallet up to the requested total amount, doing
// nothing when the wallet already holds enough.
func (s *service) ConditionalFunding(ctx context.Context, req *relay.FundingRequest) (*relay.TransactionResult, error) {
	if s.cfg.GasPayerContractAddress == "" {
		return &relay.TransactionResult{
			Success: false,
			Error:   "Gas Payer Contract not configured",
		}, nil
	}

	walletAddr := common.HexToAddress(req.WalletAddress)

	balance, err := s.client.BalanceAt(ctx, walletAddr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read wallet balance")
	}

	if balance.Cmp(req.TotalAmountNeededWei) >= 0 {
		return &relay.TransactionResult{Success: true}, nil
	}

	if s.gasPayerKey == nil {
		return nil, errors.New("gas payer private key not configured")
	}

	amount := new(big.Int).Sub(req.TotalAmountNeededWei, balance)

	txHash, err := s.transferGas(ctx, s.gasPayerKey, s.gasPayerAddr, walletAddr, amount)
	if err != nil {
		return &relay.TransactionResult{
			Success: false,
			Error:   fmt.Sprintf("Failed to transfer gas to user: %v", err),
		}, nil
	}

	if err := s.waitMined(ctx, txHash); err != nil {
		return &relay.TransactionResult{
			Success: false,
			Error:   fmt.Sprintf("Gas transfer transaction failed: %v", err),
		}, nil
	}

	return &relay.TransactionResult{
		Success:         true,
		TransactionHash: txHash.Hex(),
	}, nil
}

// checkGasPolicy enforces the configured gas price, gas limit and total cost
// caps. Violations are logical failures, not faults, phrased in the upstream
// format downstream enrichment understands.
func (s *service) checkGasPolicy(ctx context.Context, operation string, gasPrice *big.Int, gasLimit uint64, cost *big.Int) *relay.TransactionResult {
	if gasPrice.Cmp(s.cfg.MaxGasPriceWei) > 0 {
		networkPrice, err := s.client.SuggestGasPrice(ctx)
		if err != nil {
			networkPrice = new(big.Int)
		}

		return &relay.TransactionResult{
			Success: false,
			Error: fmt.Sprintf("Gas price too high: provided %s, maximum allowed %s (current network: %s)",
				gasPrice, s.cfg.MaxGasPriceWei, networkPrice),
		}
	}

	if expected, ok := s.cfg.ExpectedGasByOperation[operation]; ok {
		maxAllowed := expected * uint64(percentBase+s.cfg.GasLimitBufferPercent) / percentBase
		if gasLimit > maxAllowed {
			return &relay.TransactionResult{
				Success: false,
				Error: fmt.Sprintf("Gas limit exceeds expected for operation '%s': provided %d, maximum allowed %d (includes %d%% buffer)",
					operation, gasLimit, maxAllowed, s.cfg.GasLimitBufferPercent),
			}
		}
	} else if gasLimit > s.cfg.MaxGasLimit {
		return &relay.TransactionResult{
			Success: false,
			Error: fmt.Sprintf("Gas limit too high: provided %d, maximum allowed %d",
				gasLimit, s.cfg.MaxGasLimit),
		}
	}

	if cost.Cmp(s.cfg.MaxTxCostWei) > 0 {
		return &relay.TransactionResult{
			Success: false,
			Error: fmt.Sprintf("Transaction cost too high: %s wei, maximum allowed %s wei",
				cost, s.cfg.MaxTxCostWei),
		}
	}

	return nil
}

// resolveGasPayer picks the per-client gas payer from the credentials, falling
// back to the service-wide key.
func (s *service) resolveGasPayer(creds *auth.Credentials) (*ecdsa.PrivateKey, common.Address, *relay.TransactionResult) {
	if creds != nil && creds.GasPayerKeyHex != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(creds.GasPayerKeyHex, "0x"))
		if err == nil {
			return key, crypto.PubkeyToAddress(key.PublicKey), nil
		}
	}

	if s.gasPayerKey != nil {
		return s.gasPayerKey, s.gasPayerAddr, nil
	}

	return nil, common.Address{}, &relay.TransactionResult{
		Success: false,
		Error:   "Client wallet credentials required - no wallet configured for this API key",
	}
}

func decodeSignedTransaction(signedHex string) (*types.Transaction, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(signedHex, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex encoding")
	}

	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, errors.Wrap(err, "invalid transaction encoding")
	}

	return tx, nil
}
