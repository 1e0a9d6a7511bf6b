// Package addr validates Solana account addresses at the service boundary.
// The core treats wallets and mints as opaque strings; this package is the
// fail-closed gate in front of it.
package addr

import (
	"errors"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Validation errors.
var (
	ErrEmptyAddress = errors.New("empty address")
	ErrBadEncoding  = errors.New("address is not valid base58")
	ErrBadLength    = errors.New("address does not decode to 32 bytes")
	ErrNotOnCurve   = errors.New("address is not an ed25519 public key")
)

// Validate checks that s is a well-formed Solana account address:
// base58-encoded 32 bytes.
func Validate(s string) error {
	if s == "" {
		return ErrEmptyAddress
	}

	raw, err := base58.Decode(s)
	if err != nil {
		return ErrBadEncoding
	}
	if len(raw) != 32 {
		return ErrBadLength
	}
	return nil
}

// ValidateWallet checks that s is a well-formed address AND lies on the
// ed25519 curve. Wallet addresses are public keys; off-curve addresses are
// PDAs and cannot sign purchases.
func ValidateWallet(s string) error {
	if err := Validate(s); err != nil {
		return err
	}

	raw, _ := base58.Decode(s)
	if !isOnCurve(raw) {
		return ErrNotOnCurve
	}
	return nil
}

func isOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
