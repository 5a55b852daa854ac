// Package enrich turns terse upstream relay errors into categorized,
// context-annotated, human-readable messages.
package enrich

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github/gaspayer/relay-service/internal/relay/format"
)

// rule maps one upstream error category to its user-facing rendering.
// Rules are evaluated in order and the first match wins; several upstream
// phrasings overlap (e.g. a gas transfer failure caused by insufficient
// funds), so the order is part of the contract, not an implementation detail.
type rule struct {
	match  func(raw string) bool
	render func(raw, op string) string
}

// Fixed-field extraction patterns for the upstream phrasings that embed
// numeric amounts.
var (
	txCostPattern   = regexp.MustCompile(`Transaction cost too high: (\d+) wei, maximum allowed (\d+) wei`)
	gasLimitPattern = regexp.MustCompile(`provided (\d+), maximum allowed (\d+)`)
	gasPricePattern = regexp.MustCompile(`Gas price too high: provided (\d+), maximum allowed (\d+) \(current network: (\d+)\)`)
)

var rules = []rule{
	{
		match: contains("Failed to transfer gas to user"),
		render: func(raw, op string) string {
			return fmt.Sprintf("Gas transfer failed%s: %s", opClause(op), detailAfterColon(raw))
		},
	},
	{
		match: contains("Transaction cost too high"),
		render: func(raw, op string) string {
			if m := txCostPattern.FindStringSubmatch(raw); m != nil {
				return fmt.Sprintf("Transaction cost exceeds limit%s: cost %s exceeds maximum allowed %s",
					opClause(op), format.WeiScientific(parseWei(m[1])), format.WeiScientific(parseWei(m[2])))
			}

			return fmt.Sprintf("Transaction cost exceeds limit%s: %s", opClause(op), raw)
		},
	},
	{
		match: anyOf(contains("Gas limit exceeds expected"), contains("Gas limit too high")),
		render: func(raw, op string) string {
			if m := gasLimitPattern.FindStringSubmatch(raw); m != nil {
				return fmt.Sprintf("Gas limit exceeded%s: provided %s exceeds maximum allowed %s",
					opClause(op), format.WeiScientific(parseWei(m[1])), format.WeiScientific(parseWei(m[2])))
			}

			return fmt.Sprintf("Gas limit exceeded%s: %s", opClause(op), raw)
		},
	},
	{
		match: contains("Gas price too high"),
		render: func(raw, op string) string {
			if m := gasPricePattern.FindStringSubmatch(raw); m != nil {
				return fmt.Sprintf("Gas price exceeds limit%s: provided %s exceeds maximum allowed %s (current network: %s)",
					opClause(op),
					format.GasPriceScientific(parseWei(m[1])),
					format.GasPriceScientific(parseWei(m[2])),
					format.GasPriceScientific(parseWei(m[3])))
			}

			return fmt.Sprintf("Gas price exceeds limit%s: %s", opClause(op), raw)
		},
	},
	{
		match: contains("Balance update timeout"),
		render: func(_, op string) string {
			return fmt.Sprintf("Wallet balance update timeout%s: Unable to confirm gas transfer completion. The transaction may still be processing on the blockchain.", opClause(op))
		},
	},
	{
		match: contains("Client wallet credentials required"),
		render: func(_, op string) string {
			return fmt.Sprintf("Authentication error%s: No wallet configured for this API key. Please ensure your API key is properly configured with a gas payer wallet.", opClause(op))
		},
	},
	{
		match: contains("Gas Payer Contract not configured"),
		render: func(_, op string) string {
			return fmt.Sprintf("Configuration error%s: Gas payer contract address not configured (GAS_PAYER_CONTRACT_ADDRESS missing). Contact support to resolve this issue.", opClause(op))
		},
	},
	{
		match: contains("Gas transfer transaction failed"),
		render: func(raw, op string) string {
			return fmt.Sprintf("Gas transfer transaction failed%s: %s. This may indicate insufficient funds in the gas payer wallet or blockchain network issues.", opClause(op), detailAfterColon(raw))
		},
	},
	{
		match: containsFold("insufficient funds"),
		render: func(_, op string) string {
			return fmt.Sprintf("Insufficient funds%s: The gas payer wallet does not have enough ETH to cover transaction costs. Please contact support to fund the gas payer wallet.", opClause(op))
		},
	},
	{
		match: containsFold("execution reverted"),
		render: func(_, op string) string {
			return fmt.Sprintf("Transaction reverted%s: The blockchain rejected the transaction. This may be due to contract logic constraints or invalid parameters.", opClause(op))
		},
	},
	{
		match: containsFold("nonce too low"),
		render: func(_, op string) string {
			return fmt.Sprintf("Transaction nonce error%s: Nonce conflict detected. The transaction may have already been processed or there's a blockchain synchronization issue.", opClause(op))
		},
	},
	{
		match: containsFold("replacement transaction underpriced"),
		render: func(_, op string) string {
			return fmt.Sprintf("Gas price too low%s: Transaction replacement requires higher gas price than the pending transaction.", opClause(op))
		},
	},
}

// Enhance classifies a raw upstream error string into a user-facing message.
// The operation name is optional; when empty no operation clause is rendered.
// Pure and deterministic: identical inputs always yield identical output.
func Enhance(raw string, operation string) string {
	for _, r := range rules {
		if r.match(raw) {
			return r.render(raw, operation)
		}
	}

	if strings.TrimSpace(raw) != "" {
		return fmt.Sprintf("Transaction failed%s: %s", opClause(operation), raw)
	}

	return fmt.Sprintf("Unknown transaction error%s: An unexpected error occurred during processing.", opClause(operation))
}

func opClause(operation string) string {
	if operation == "" {
		return ""
	}

	return fmt.Sprintf(" for operation '%s'", operation)
}

// detailAfterColon strips everything up to and including the first ": ".
func detailAfterColon(message string) string {
	idx := strings.Index(message, ": ")
	if idx != -1 && idx < len(message)-2 {
		return message[idx+2:]
	}

	return message
}

func parseWei(s string) *big.Int {
	// s is a \d+ capture, so this cannot fail
	amount, _ := new(big.Int).SetString(s, 10)
	return amount
}

func contains(substr string) func(string) bool {
	return func(raw string) bool {
		return strings.Contains(raw, substr)
	}
}

func containsFold(substr string) func(string) bool {
	lower := strings.ToLower(substr)
	return func(raw string) bool {
		return strings.Contains(strings.ToLower(raw), lower)
	}
}

func anyOf(matchers ...func(string) bool) func(string) bool {
	return func(raw string) bool {
		for _, m := range matchers {
			if m(raw) {
				return true
			}
		}

		return false
	}
}
