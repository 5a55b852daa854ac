package format_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github/gaspayer/relay-service/internal/relay/format"
)

func wei(s string) *big.Int {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid test amount: " + s)
	}

	return amount
}

func TestWeiScientific(t *testing.T) {
	assert.Equal(t, "1.00E+18", format.WeiScientific(wei("1000000000000000000")))
	assert.Equal(t, "5.00E+17", format.WeiScientific(wei("500000000000000000")))
	assert.Equal(t, "2.00E+06", format.WeiScientific(wei("2000000")))
	assert.Equal(t, "1.00E+05", format.WeiScientific(wei("100000")))
	assert.Equal(t, "2.10E+04", format.WeiScientific(wei("21000")))
	assert.Equal(t, "1.00E+00", format.WeiScientific(wei("1")))
	assert.Equal(t, "0.00E+00", format.WeiScientific(wei("0")))
}

func TestWeiScientificRounding(t *testing.T) {
	// half up at the third significant digit
	assert.Equal(t, "1.24E+03", format.WeiScientific(wei("1235")))
	assert.Equal(t, "1.23E+03", format.WeiScientific(wei("1234")))
	// mantissa overflow renormalizes the exponent
	assert.Equal(t, "1.00E+04", format.WeiScientific(wei("9999")))
}

func TestGasPriceScientific(t *testing.T) {
	assert.Equal(t, "ETH:1.00E+00", format.GasPriceScientific(wei("1000000000000000000")))
	assert.Equal(t, "ETH:1.00E-03", format.GasPriceScientific(wei("1000000000000000")))
	assert.Equal(t, "ETH:5.00E-08", format.GasPriceScientific(wei("50000000000")))
	assert.Equal(t, "ETH:3.00E-08", format.GasPriceScientific(wei("30000000000")))
	assert.Equal(t, "ETH:2.50E-08", format.GasPriceScientific(wei("25000000000")))
	assert.Equal(t, "ETH:0.00E+00", format.GasPriceScientific(wei("0")))
}

func TestWeiScientificFallback(t *testing.T) {
	assert.Equal(t, "-5wei", format.WeiScientific(big.NewInt(-5)))
	assert.Equal(t, "0wei", format.WeiScientific(nil))
	assert.Equal(t, "-5", format.GasPriceScientific(big.NewInt(-5)))
}

func TestWeiScientificLargeExponent(t *testing.T) {
	huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(100), nil)
	assert.Equal(t, "1.00E+100", format.WeiScientific(huge))
}
