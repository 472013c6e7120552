// Package wadmath implements fixed-point ("wad") arithmetic on unsigned ring
// representatives outside the circuit. A wad is an integer holding a real
// number multiplied by 10^18, so fractional quantities survive integer-only
// operations.
//
// The package mirrors the in-circuit gadget of the fixedpoint package
// operation for operation: callers use it to precompute witness assignments
// and to validate inputs against the published ceilings before proving.
// Values are plain *big.Int; the same 2^127 input ceiling the circuit
// enforces applies here, so that a value accepted by this package is provable
// by the gadget.
package wadmath

import (
	"errors"
	"math/big"

	"github.com/provemath/gnark-fixedpoint/internal/wideint"
)

// Invalid inputs are rejected with one of the sentinel errors below. There is
// no recovery path: an operation either returns a value provable in-circuit
// or fails.
var (
	// ErrWidthOverflow means a value does not fit the 128-bit native width.
	ErrWidthOverflow = errors.New("wadmath: value exceeds native width")
	// ErrRangeViolation means an operand is at or above 2^127, the ceiling
	// required for sound in-circuit verification.
	ErrRangeViolation = errors.New("wadmath: operand exceeds verification range")
	// ErrUnderflow means a subtraction result would be negative.
	ErrUnderflow = errors.New("wadmath: subtraction underflow")
	// ErrDivisionByZero means a zero divisor was passed to a division.
	ErrDivisionByZero = errors.New("wadmath: division by zero")
)

// One is the wad scale factor: the representation of 1.0.
var One = big.NewInt(1_000_000_000_000_000_000)

// Derived ceilings, computed once at package load and treated as immutable.
var (
	// MaxConvertible is the largest unscaled integer whose wad form still
	// fits the 128-bit native width.
	MaxConvertible = new(big.Int).Div(nativeMax, One)
	// MaxPrimitiveInput is the largest unscaled integer whose wad form stays
	// below 2^127 and may therefore enter MulDiv.
	MaxPrimitiveInput = new(big.Int).Div(guardMax, One)
	// MaxMulInput is the largest unscaled integer x for which
	// Mul(Scale(x), Scale(x)) itself stays below 2^127.
	MaxMulInput = new(big.Int).Sqrt(new(big.Int).Div(guardMax, One))
)

var (
	nativeMax = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	guardMax  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
)

// checkOperand rejects values outside [0, 2^127).
func checkOperand(v *big.Int) error {
	if v.Sign() < 0 || v.Cmp(guardMax) > 0 {
		return ErrRangeViolation
	}
	return nil
}

// Scale converts an unscaled unsigned integer to its wad form.
func Scale(x *big.Int) (*big.Int, error) {
	if x.Sign() < 0 || x.Cmp(MaxConvertible) > 0 {
		return nil, ErrWidthOverflow
	}
	return new(big.Int).Mul(x, One), nil
}

// Unscale returns the integer part of a wad, discarding the fractional
// remainder. This is the explicit truncation operation.
func Unscale(w *big.Int) (*big.Int, error) {
	if w.Sign() < 0 || w.Cmp(nativeMax) > 0 {
		return nil, ErrWidthOverflow
	}
	return new(big.Int).Quo(w, One), nil
}

// FromUint64 returns the ring representative of x without scaling.
func FromUint64(x uint64) *big.Int {
	return new(big.Int).SetUint64(x)
}

// Add returns a + b. Overflow past the native width is deliberately not
// checked: the caller owns keeping sums representable before the result
// re-enters MulDiv, which rejects out-of-range operands.
func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

// Sub returns a - b, or ErrUnderflow when b > a. The domain is unsigned only.
func Sub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, ErrUnderflow
	}
	return new(big.Int).Sub(a, b), nil
}

// MulDiv returns floor(a*b/d). The product is formed in 256-bit limb
// arithmetic, so no precision is lost before the division. All three operands
// must be below 2^127; quotients at or above 2^127 are rejected the same way
// the in-circuit quotient range check rejects them.
func MulDiv(a, b, d *big.Int) (*big.Int, error) {
	for _, v := range []*big.Int{a, b, d} {
		if err := checkOperand(v); err != nil {
			return nil, err
		}
	}
	if d.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	aHi, aLo := wideint.Words128(a)
	bHi, bLo := wideint.Words128(b)
	dHi, dLo := wideint.Words128(d)
	q, _, _ := wideint.Mul128(aHi, aLo, bHi, bLo).QuoRem128(dHi, dLo)
	if !q.FitsUint127() {
		return nil, ErrRangeViolation
	}
	return q.Big(), nil
}

// Mul returns the wad product floor(a*b/10^18).
func Mul(a, b *big.Int) (*big.Int, error) {
	return MulDiv(a, b, One)
}

// Div returns the wad quotient floor(a*10^18/b), keeping the fractional
// precision that plain integer division would truncate to zero.
func Div(a, b *big.Int) (*big.Int, error) {
	return MulDiv(a, One, b)
}
