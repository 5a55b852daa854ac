package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// Payload validation patterns shared by the transaction endpoints.
const (
	WalletAddressPattern = `^0x[a-fA-F0-9]{40}$`
	SignedTxHexPattern   = `^0x[a-fA-F0-9]+$`
	WeiAmountPattern     = `^[0-9]+$`
)

// DefaultOperationName is assumed when the caller omits operationName.
const DefaultOperationName = "unknown"

// PostSignedTransactionPayload is the request body of POST /api/v1/signed-transaction.
type PostSignedTransactionPayload struct {
	// Wallet that receives a gas top-up before submission if needed
	// Required: true
	// Pattern: ^0x[a-fA-F0-9]{40}$
	UserWalletAddress *string `json:"userWalletAddress"`

	// Hex-encoded signed transaction ready for submission
	// Required: true
	// Pattern: ^0x[a-fA-F0-9]+$
	SignedTransactionHex *string `json:"signedTransactionHex"`

	// Name of the operation, used for gas expectations and error context
	OperationName string `json:"operationName,omitempty"`
}

// Validate validates this post signed transaction payload
func (m *PostSignedTransactionPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := m.validateUserWalletAddress(formats); err != nil {
		res = append(res, err)
	}

	if err := m.validateSignedTransactionHex(formats); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

func (m *PostSignedTransactionPayload) validateUserWalletAddress(_ strfmt.Registry) error {
	if err := validate.Required("userWalletAddress", "body", m.UserWalletAddress); err != nil {
		return err
	}

	if err := validate.Pattern("userWalletAddress", "body", *m.UserWalletAddress, WalletAddressPattern); err != nil {
		return err
	}

	return nil
}

func (m *PostSignedTransactionPayload) validateSignedTransactionHex(_ strfmt.Registry) error {
	if err := validate.Required("signedTransactionHex", "body", m.SignedTransactionHex); err != nil {
		return err
	}

	if err := validate.Pattern("signedTransactionHex", "body", *m.SignedTransactionHex, SignedTxHexPattern); err != nil {
		return err
	}

	return nil
}

// Operation returns the operation name, defaulting when omitted.
func (m *PostSignedTransactionPayload) Operation() string {
	if m.OperationName == "" {
		return DefaultOperationName
	}

	return m.OperationName
}

// TransactionResult is the response body of both transaction endpoints.
type TransactionResult struct {
	// Whether the relay accepted and submitted the transaction
	// Required: true
	Success *bool `json:"success"`

	// Hash of the submitted transaction, when one was submitted
	TransactionHash string `json:"transactionHash,omitempty"`

	// Enriched failure description, set iff success is false
	Error string `json:"error,omitempty"`
}

// Validate validates this transaction result
func (m *TransactionResult) Validate(formats strfmt.Registry) error {
	if err := validate.Required("success", "body", m.Success); err != nil {
		return err
	}

	if swag.BoolValue(m.Success) && m.Error != "" {
		return errors.New(0, "success result must not carry an error")
	}

	return nil
}
