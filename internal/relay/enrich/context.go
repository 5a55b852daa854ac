package enrich

import (
	"fmt"
	"math/big"
	"strings"

	"github/gaspayer/relay-service/internal/relay/format"
)

// Address truncation bounds for the wallet context field.
const (
	walletPrefixLen = 8
	walletSuffixLen = 4
)

// Context field keys with dedicated wei rendering.
const (
	FieldGasPrice = "gasPrice"
	FieldGasLimit = "gasLimit"
)

// Field is one ordered key/value context entry. Repeated keys are preserved
// in order, not deduplicated.
type Field struct {
	Key   string
	Value interface{}
}

// Annotate appends a bracketed context block to an already classified
// message: the truncated wallet address first, then the caller's fields in
// insertion order. An empty wallet address drops the wallet field; if no
// fields remain, the bracket block is omitted entirely.
func Annotate(message string, walletAddress string, fields []Field) string {
	parts := make([]string, 0, len(fields)+1)

	if walletAddress != "" {
		parts = append(parts, "wallet: "+truncateAddress(walletAddress))
	}

	for _, f := range fields {
		parts = append(parts, f.Key+": "+renderFieldValue(f))
	}

	if len(parts) == 0 {
		return message
	}

	return fmt.Sprintf("%s [%s]", message, strings.Join(parts, ", "))
}

// DetailedTransactionError classifies a raw upstream error and annotates it
// with wallet and caller context in one step.
func DetailedTransactionError(raw string, operation string, walletAddress string, fields []Field) string {
	return Annotate(Enhance(raw, operation), walletAddress, fields)
}

// renderFieldValue renders wei-typed values according to the field's unit
// semantics; everything else is stringified as-is.
func renderFieldValue(f Field) string {
	if amount, ok := f.Value.(*big.Int); ok {
		switch f.Key {
		case FieldGasPrice:
			return format.GasPriceScientific(amount)
		case FieldGasLimit:
			return format.WeiScientific(amount)
		default:
			return amount.String()
		}
	}

	return fmt.Sprintf("%v", f.Value)
}

// truncateAddress shortens an address to "first 8...last 4". Addresses too
// short to truncate meaningfully are rendered whole.
func truncateAddress(addr string) string {
	if len(addr) <= walletPrefixLen+walletSuffixLen {
		return addr
	}

	return addr[:walletPrefixLen] + "..." + addr[len(addr)-walletSuffixLen:]
}
