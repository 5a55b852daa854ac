package evm

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github/gaspayer/relay-service/internal/relay"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	gasTransferGasLimit  uint64 = 21000
	baseFeeCapMultiplier int64  = 2
)

// ensureGasFunds transfers the shortfall from the gas payer to the user and
// waits until the user balance reflects it. All failure modes come back as
// logical failure results in the upstream phrasing.
func (s *service) ensureGasFunds(ctx context.Context, payerKey *ecdsa.PrivateKey, payerAddr, userAddr common.Address, shortfall, targetBalance *big.Int) *relay.TransactionResult {
	log.Info().
		Str("user", userAddr.Hex()).
		Str("shortfall", shortfall.String()).
		Msg("Topping up user wallet gas")

	txHash, err := s.transferGas(ctx, payerKey, payerAddr, userAddr, shortfall)
	if err != nil {
		return &relay.TransactionResult{
			Success: false,
			Error:   fmt.Sprintf("Failed to transfer gas to user: %v", err),
		}
	}

	if err := s.waitMined(ctx, txHash); err != nil {
		return &relay.TransactionResult{
			Success: false,
			Error:   fmt.Sprintf("Gas transfer transaction failed: %v", err),
		}
	}

	if err := s.waitForBalance(ctx, userAddr, targetBalance); err != nil {
		return &relay.TransactionResult{
			Success: false,
			Error:   "Balance update timeout after gas transfer",
		}
	}

	return nil
}

// transferGas builds, signs and submits a plain value transfer from the gas
// payer wallet.
func (s *service) transferGas(ctx context.Context, payerKey *ecdsa.PrivateKey, payerAddr, to common.Address, amount *big.Int) (common.Hash, error) {
	nonce, err := s.client.PendingNonceAt(ctx, payerAddr)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to get gas payer nonce")
	}

	tipCap, err := s.client.SuggestGasTipCap(ctx)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to suggest gas tip cap")
	}

	head, err := s.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to get chain head")
	}

	feeCap := new(big.Int).Mul(head.BaseFee, big.NewInt(baseFeeCapMultiplier))
	feeCap.Add(feeCap, tipCap)

	chainID := big.NewInt(s.cfg.ChainID)

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       gasTransferGasLimit,
		To:        &to,
		Value:     amount,
	})

	signedTx, err := types.SignTx(tx, types.NewLondonSigner(chainID), payerKey)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to sign gas transfer")
	}

	if err := s.client.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to send gas transfer")
	}

	return signedTx.Hash(), nil
}

// waitMined polls for the receipt of a transfer until it is mined
// successfully or the receipt timeout elapses.
func (s *service) waitMined(ctx context.Context, txHash common.Hash) error {
	deadline := time.NewTimer(s.cfg.ReceiptTimeout)
	defer deadline.Stop()

	ticker := time.NewTicker(s.cfg.BalancePollInterval)
	defer ticker.Stop()

	for {
		receipt, err := s.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return errors.Errorf("transaction %s reverted", txHash.Hex())
			}

			return nil
		}

		if !errors.Is(err, ethereum.NotFound) {
			log.Warn().Err(err).Str("tx", txHash.Hex()).Msg("Failed to poll transaction receipt")
		}

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled while waiting for receipt")
		case <-deadline.C:
			return errors.Errorf("timed out waiting for receipt of %s", txHash.Hex())
		case <-ticker.C:
		}
	}
}

// waitForBalance polls the wallet balance until it reaches the target or the
// balance update timeout elapses.
func (s *service) waitForBalance(ctx context.Context, addr common.Address, target *big.Int) error {
	deadline := time.NewTimer(s.cfg.BalanceUpdateTimeout)
	defer deadline.Stop()

	ticker := time.NewTicker(s.cfg.BalancePollInterval)
	defer ticker.Stop()

	for {
		balance, err := s.client.BalanceAt(ctx, addr, nil)
		if err == nil && balance.Cmp(target) >= 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled while waiting for balance update")
		case <-deadline.C:
			return errors.New("balance update timed out")
		case <-ticker.C:
		}
	}
}
