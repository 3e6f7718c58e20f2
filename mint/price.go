package mint

import (
	"errors"
	"math"
	"math/big"
	"strconv"
)

var (
	// ErrInvalidPrice reports a negative, NaN or infinite price.
	ErrInvalidPrice = errors.New("mint: price must be a finite non-negative number")
	// ErrPricePrecision reports a price finer than the smallest unit.
	ErrPricePrecision = errors.New("mint: price has more decimals than the base unit allows")
	// ErrPriceOverflow reports a price too large for the base unit type.
	ErrPriceOverflow = errors.New("mint: price exceeds the uint64 lamport range")
)

// LamportsPerSol is the number of lamports in one SOL.
const LamportsPerSol = 1_000_000_000

var lamportsPerSol = big.NewInt(LamportsPerSol)

// scaleDecimal multiplies the shortest decimal form of f by unit. Going
// through the decimal string means 0.1 SOL is exactly 1e8 lamports rather than
// the binary float's expansion.
func scaleDecimal(f float64, unit *big.Int) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil, ErrInvalidPrice
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'f', -1, 64))
	if !ok {
		return nil, ErrInvalidPrice
	}
	r.Mul(r, new(big.Rat).SetInt(unit))
	if !r.IsInt() {
		return nil, ErrPricePrecision
	}
	return new(big.Int).Set(r.Num()), nil
}
