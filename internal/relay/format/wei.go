// Package format renders wei amounts for human-facing error messages.
package format

import (
	"fmt"
	"math/big"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// weiPerEtherExponent scales wei to ETH (10^-18).
const weiPerEtherExponent = -18

var ten = decimal.New(1, 1)

// WeiScientific renders a non-negative wei amount in scientific notation with
// two fractional digits and a signed exponent, e.g. "5.00E+17". It never
// fails: inputs outside the domain degrade to the raw decimal string with a
// "wei" suffix.
func WeiScientific(amount *big.Int) string {
	if amount == nil || amount.Sign() < 0 {
		return fallback(amount) + "wei"
	}

	return scientific(decimal.NewFromBigInt(amount, 0))
}

// GasPriceScientific renders a non-negative wei amount as an ETH-denominated
// quantity in scientific notation, e.g. "ETH:5.00E-08". Out-of-domain inputs
// degrade to the raw decimal string.
func GasPriceScientific(amount *big.Int) string {
	if amount == nil || amount.Sign() < 0 {
		return fallback(amount)
	}

	return "ETH:" + scientific(decimal.NewFromBigInt(amount, weiPerEtherExponent))
}

// scientific formats a non-negative decimal as d.ddE±xx. Rounding is half up;
// a mantissa that rounds up to 10.00 is renormalized.
func scientific(d decimal.Decimal) string {
	if d.IsZero() {
		return "0.00E+00"
	}

	digits := len(d.Coefficient().String())
	exponent := digits - 1 + int(d.Exponent())

	mantissa := d.Shift(int32(-exponent)).Round(2)
	if mantissa.Cmp(ten) >= 0 {
		mantissa = mantissa.Shift(-1)
		exponent++
	}

	return fmt.Sprintf("%sE%+03d", mantissa.StringFixed(2), exponent)
}

func fallback(amount *big.Int) string {
	if amount == nil {
		log.Warn().Msg("Wei formatting requested for nil amount")
		return "0"
	}

	log.Warn().Str("amount", amount.String()).Msg("Wei formatting requested for out-of-domain amount")

	return amount.String()
}
