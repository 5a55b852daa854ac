package types

import (
	"math/big"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PostFundWalletPayload is the request body of POST /api/v1/fund-wallet.
type PostFundWalletPayload struct {
	// Wallet address to fund
	// Required: true
	// Pattern: ^0x[a-fA-F0-9]{40}$
	WalletAddress *string `json:"walletAddress"`

	// Total amount in wei the wallet should end up holding, as a decimal string
	// Required: true
	// Pattern: ^[0-9]+$
	TotalAmountNeededWei *string `json:"totalAmountNeededWei"`
}

// Validate validates this post fund wallet payload
func (m *PostFundWalletPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := m.validateWalletAddress(formats); err != nil {
		res = append(res, err)
	}

	if err := m.validateTotalAmountNeededWei(formats); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

func (m *PostFundWalletPayload) validateWalletAddress(_ strfmt.Registry) error {
	if err := validate.Required("walletAddress", "body", m.WalletAddress); err != nil {
		return err
	}

	if err := validate.Pattern("walletAddress", "body", *m.WalletAddress, WalletAddressPattern); err != nil {
		return err
	}

	return nil
}

func (m *PostFundWalletPayload) validateTotalAmountNeededWei(_ strfmt.Registry) error {
	if err := validate.Required("totalAmountNeededWei", "body", m.TotalAmountNeededWei); err != nil {
		return err
	}

	if err := validate.Pattern("totalAmountNeededWei", "body", *m.TotalAmountNeededWei, WeiAmountPattern); err != nil {
		return err
	}

	return nil
}

// Amount parses the requested amount. Validate must have passed, so the
// string is a plain non-negative decimal.
func (m *PostFundWalletPayload) Amount() *big.Int {
	amount, ok := new(big.Int).SetString(*m.TotalAmountNeededWei, 10)
	if !ok {
		return new(big.Int)
	}

	return amount
}
