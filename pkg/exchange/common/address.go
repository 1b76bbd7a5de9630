package common

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// Addresses for curves, vaults and vesting records are derived deterministically
// from the mint they belong to, so every component that knows a mint can locate
// the rest of the economic record set without additional lookups.

const (
	mintSeed         = "mint"
	curveSeed        = "curve"
	curveVaultSeed   = "curve_vault"
	vestingSeed      = "vesting"
	vestingVaultSeed = "vesting_vault"
	marketSeed       = "market"
)

var ErrInvalidAddress = errors.New("invalid address")

func deriveAddress(seeds ...[]byte) string {
	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	return base58.Encode(h.Sum(nil))
}

// GetMintAddress returns the deterministic mint address for a creator's token
// launch under a given symbol.
func GetMintAddress(creator, symbol string) string {
	return deriveAddress([]byte(mintSeed), []byte(creator), []byte(symbol))
}

// GetCurveAddress returns the address of the bonding curve record and its
// native value holding for a mint.
func GetCurveAddress(mint string) string {
	return deriveAddress([]byte(curveSeed), []byte(mint))
}

// GetCurveVaultAddress returns the address of the curve's token vault for a mint.
func GetCurveVaultAddress(mint string) string {
	return deriveAddress([]byte(curveVaultSeed), []byte(mint))
}

// GetVestingAddress returns the address of the vesting record for a mint.
func GetVestingAddress(mint string) string {
	return deriveAddress([]byte(vestingSeed), []byte(mint))
}

// GetVestingVaultAddress returns the address of the vesting token vault for a mint.
func GetVestingVaultAddress(mint string) string {
	return deriveAddress([]byte(vestingVaultSeed), []byte(mint))
}

// GetMarketAddress returns the address of a prediction market's pool account.
func GetMarketAddress(id uint64) string {
	var idBytes [8]byte
	binary.LittleEndian.PutUint64(idBytes[:], id)
	return deriveAddress([]byte(marketSeed), idBytes[:])
}

// ValidateAddress verifies a value is a well-formed base58 address.
func ValidateAddress(address string) error {
	if len(address) == 0 {
		return ErrInvalidAddress
	}

	if _, err := base58.Decode(address); err != nil {
		return ErrInvalidAddress
	}

	return nil
}
