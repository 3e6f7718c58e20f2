// Package address validates the wallet addresses that appear in mint stage
// whitelists: base58 Solana public keys and hex EVM addresses.
package address

import (
	"errors"
	"fmt"
	"strings"

	solana "github.com/blocto/solana-go-sdk/common"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

var (
	ErrInvalidAddress   = errors.New("address: invalid address")
	ErrChecksumMismatch = errors.New("address: EIP-55 checksum mismatch")
	ErrUnknownChain     = errors.New("address: unknown chain")
)

// Chain selects the address format.
type Chain int

const (
	ChainSolana Chain = iota
	ChainEVM
)

func (c Chain) String() string {
	switch c {
	case ChainSolana:
		return "solana"
	case ChainEVM:
		return "evm"
	default:
		return fmt.Sprintf("Chain(%d)", int(c))
	}
}

// base58 encodings of 32 bytes are 32 to 44 characters long.
const (
	minSolanaLen = 32
	maxSolanaLen = 44
)

// ValidateSolana checks that s is the canonical base58 encoding of a 32-byte
// public key.
func ValidateSolana(s string) error {
	if len(s) < minSolanaLen || len(s) > maxSolanaLen {
		return fmt.Errorf("%w: solana key %q has length %d", ErrInvalidAddress, s, len(s))
	}
	// PublicKeyFromString pads or truncates undecodable input, so only a
	// canonical round trip proves s was a 32-byte key.
	if solana.PublicKeyFromString(s).ToBase58() != s {
		return fmt.Errorf("%w: %q is not a base58 public key", ErrInvalidAddress, s)
	}
	return nil
}

// ValidateEVM checks that s is a 0x-prefixed 20-byte hex address. All-lower
// and all-upper hex are accepted as unchecksummed; mixed case must match the
// EIP-55 checksum.
func ValidateEVM(s string) error {
	if !strings.HasPrefix(s, "0x") || !ethcommon.IsHexAddress(s) {
		return fmt.Errorf("%w: %q is not a hex address", ErrInvalidAddress, s)
	}
	hex := s[2:]
	if hex == strings.ToLower(hex) || hex == strings.ToUpper(hex) {
		return nil
	}
	if want := ethcommon.HexToAddress(s).Hex(); want != s {
		return fmt.Errorf("%w: got %s want %s", ErrChecksumMismatch, s, want)
	}
	return nil
}

// ChecksumEVM returns the EIP-55 form of a valid hex address.
func ChecksumEVM(s string) (string, error) {
	if !ethcommon.IsHexAddress(s) {
		return "", fmt.Errorf("%w: %q is not a hex address", ErrInvalidAddress, s)
	}
	return ethcommon.HexToAddress(s).Hex(), nil
}

// Validate dispatches on chain.
func Validate(chain Chain, s string) error {
	switch chain {
	case ChainSolana:
		return ValidateSolana(s)
	case ChainEVM:
		return ValidateEVM(s)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownChain, chain)
	}
}

// Equal compares two addresses of chain. Solana keys are case-sensitive; EVM
// addresses compare by their bytes.
func Equal(chain Chain, a, b string) bool {
	switch chain {
	case ChainEVM:
		if ethcommon.IsHexAddress(a) && ethcommon.IsHexAddress(b) {
			return ethcommon.HexToAddress(a) == ethcommon.HexToAddress(b)
		}
		return strings.EqualFold(a, b)
	default:
		return a == b
	}
}

// Key returns the form used to detect duplicates: verbatim for Solana,
// lower-case for EVM.
func Key(chain Chain, s string) string {
	if chain == ChainEVM {
		return strings.ToLower(s)
	}
	return s
}
