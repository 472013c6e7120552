package fixedpoint

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"

	"github.com/provemath/gnark-fixedpoint/internal/wideint"
	"github.com/provemath/gnark-fixedpoint/wadmath"
)

func init() {
	solver.RegisterHint(GetHints()...)
}

// GetHints returns all hint functions used in this package. This method is
// useful for registering all hints in the solver.
func GetHints() []solver.Hint {
	return []solver.Hint{
		mulDivHint,
		unscaleHint,
	}
}

// mulDivHint computes the Euclidean decomposition (q, r) of a*b by d: the
// 128-bit operands are split at 2^64, the exact 256-bit product is formed
// from the four partial products, and a restoring long division produces
// quotient and remainder. The output is advisory only; the in-circuit checks
// of [Wad.verify] are what make it trustworthy. Out-of-range operands and a
// zero divisor fail fast here so solving aborts before an unprovable witness
// is built.
func mulDivHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if len(inputs) != 3 {
		return fmt.Errorf("expecting three inputs")
	}
	if len(outputs) != 2 {
		return fmt.Errorf("expecting two outputs")
	}
	for _, v := range inputs {
		if v.Sign() < 0 || v.BitLen() > GuardBits {
			return fmt.Errorf("mul div operand: %w", wadmath.ErrRangeViolation)
		}
	}
	a, b, d := inputs[0], inputs[1], inputs[2]
	if d.Sign() == 0 {
		return fmt.Errorf("mul div divisor: %w", wadmath.ErrDivisionByZero)
	}
	aHi, aLo := wideint.Words128(a)
	bHi, bLo := wideint.Words128(b)
	dHi, dLo := wideint.Words128(d)
	q, rHi, rLo := wideint.Mul128(aHi, aLo, bHi, bLo).QuoRem128(dHi, dLo)
	if !q.FitsUint127() {
		return fmt.Errorf("mul div quotient: %w", wadmath.ErrRangeViolation)
	}
	outputs[0].Set(q.Big())
	outputs[1].Set(wideint.Uint256{rLo, rHi}.Big())
	return nil
}

// unscaleHint computes the Euclidean decomposition (q, r) of a wad by the
// scale factor, accepting the full 128-bit native width. Advisory only, like
// mulDivHint; [Wad.Unscale] verifies the output.
func unscaleHint(_ *big.Int, inputs []*big.Int, outputs []*big.Int) error {
	if len(inputs) != 1 {
		return fmt.Errorf("expecting one input")
	}
	if len(outputs) != 2 {
		return fmt.Errorf("expecting two outputs")
	}
	v := inputs[0]
	if v.Sign() < 0 || v.BitLen() > NativeBits {
		return fmt.Errorf("unscale operand: %w", wadmath.ErrWidthOverflow)
	}
	vHi, vLo := wideint.Words128(v)
	q, rHi, rLo := wideint.Uint256{vLo, vHi}.QuoRem128(0, wadmath.One.Uint64())
	outputs[0].Set(q.Big())
	outputs[1].Set(wideint.Uint256{rLo, rHi}.Big())
	return nil
}
