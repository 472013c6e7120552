package fixedpoint

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/std/rangecheck"
	"github.com/rs/zerolog"

	"github.com/provemath/gnark-fixedpoint/wadmath"
)

// GuardBits is the operand ceiling of the verified primitive: every input of
// [Wad.MulDiv], and the quotient it returns, must be below 2^GuardBits.
const GuardBits = 127

// NativeBits is the native unsigned width of wad values. [Wad.Scale] may
// produce results up to 2^NativeBits and [Wad.Unscale] accepts them; only the
// multiply-divide primitive narrows its operands to [GuardBits].
const NativeBits = 128

// soundnessBound is the largest value q*d + r can reach for guard-checked
// operands. Field equality implies integer equality only when the modulus
// exceeds it.
var soundnessBound = new(big.Int).Add(
	new(big.Int).Lsh(big.NewInt(1), 2*GuardBits),
	new(big.Int).Lsh(big.NewInt(1), GuardBits),
)

// Wad provides fixed-point arithmetic on circuit variables. All methods treat
// their operands as unsigned integer representatives of the native field.
type Wad struct {
	api frontend.API
	rc  frontend.Rangechecker

	log zerolog.Logger
}

// New returns a fixed-point arithmetic gadget for the given API. It fails
// when the compiled field is too small to make the multiply-divide
// verification sound.
func New(api frontend.API) (*Wad, error) {
	if api.Compiler().Field().Cmp(soundnessBound) <= 0 {
		return nil, fmt.Errorf("field modulus must exceed 2^%d + 2^%d for sound verification", 2*GuardBits, GuardBits)
	}
	w := &Wad{
		api: api,
		rc:  rangecheck.New(api),
		log: logger.Logger(),
	}
	w.log.Debug().Int("guardBits", GuardBits).Str("scale", wadmath.One.String()).Msg("fixed-point gadget")
	return w, nil
}

// MulDiv returns floor(a*b/d) with the product formed at full precision. All
// three operands must be below 2^[GuardBits], and so must the true quotient;
// violating either makes the witness unsolvable. A zero divisor is rejected
// both by the hint and by the remainder bound.
func (w *Wad) MulDiv(a, b, d frontend.Variable) frontend.Variable {
	if ac, ok := w.api.Compiler().ConstantValue(a); ok {
		if bc, ok := w.api.Compiler().ConstantValue(b); ok {
			if dc, ok := w.api.Compiler().ConstantValue(d); ok {
				q, err := wadmath.MulDiv(ac, bc, dc)
				if err != nil {
					panic(err)
				}
				return q
			}
		}
	}
	w.guard(a, b, d)
	ret, err := w.api.Compiler().NewHint(mulDivHint, 2, a, b, d)
	if err != nil {
		panic(fmt.Sprintf("error in calling mulDivHint: %v", err))
	}
	q, r := ret[0], ret[1]
	w.verify(a, b, d, q, r)
	return q
}

// Mul returns the scaled product floor(a*b/10^18) of two wads.
func (w *Wad) Mul(a, b frontend.Variable) frontend.Variable {
	return w.MulDiv(a, b, wadmath.One)
}

// Div returns the scaled quotient floor(a*10^18/b), keeping the fractional
// precision that a plain integer division would truncate to zero.
func (w *Wad) Div(a, b frontend.Variable) frontend.Variable {
	return w.MulDiv(a, wadmath.One, b)
}

// Add returns a + b. Overflow is deliberately not checked: the caller owns
// keeping sums representable before the result re-enters MulDiv, which
// rejects out-of-range operands.
func (w *Wad) Add(a, b frontend.Variable) frontend.Variable {
	return w.api.Add(a, b)
}

// Sub returns a - b and constrains b <= a. The domain is unsigned only, so an
// underflowing witness is unsolvable.
func (w *Wad) Sub(a, b frontend.Variable) frontend.Variable {
	w.api.AssertIsLessOrEqual(b, a)
	return w.api.Sub(a, b)
}

// Scale converts an unscaled unsigned integer to its wad form, constraining
// the input so the result fits the 128-bit native width.
func (w *Wad) Scale(x frontend.Variable) frontend.Variable {
	w.api.AssertIsLessOrEqual(x, wadmath.MaxConvertible)
	return w.api.Mul(x, wadmath.One)
}

// Unscale returns the integer part of a wad, discarding the fractional
// remainder. Unlike the multiply-divide primitive it accepts the full 128-bit
// native width, so every value Scale can produce round-trips. The
// decomposition v = q*10^18 + r is hinted and verified the same way MulDiv's
// is, with tighter bounds: q below 2^69 and r below 2^60 keep the recomposed
// value under 2^129, well inside the soundness bound.
func (w *Wad) Unscale(v frontend.Variable) frontend.Variable {
	if c, ok := w.api.Compiler().ConstantValue(v); ok {
		q, err := wadmath.Unscale(c)
		if err != nil {
			panic(err)
		}
		return q
	}
	w.rc.Check(v, NativeBits)
	ret, err := w.api.Compiler().NewHint(unscaleHint, 2, v)
	if err != nil {
		panic(fmt.Sprintf("error in calling unscaleHint: %v", err))
	}
	q, r := ret[0], ret[1]
	w.rc.Check(q, wadmath.MaxConvertible.BitLen())
	w.rc.Check(r, wadmath.One.BitLen())
	// r < 10^18
	w.rc.Check(w.api.Sub(wadmath.One, r, 1), wadmath.One.BitLen())
	w.api.AssertIsEqual(v, w.api.Add(w.api.Mul(q, wadmath.One), r))
	return q
}

// guard range-checks the primitive's operands below 2^[GuardBits]. It must be
// called before the hint output is used anywhere.
func (w *Wad) guard(a, b, d frontend.Variable) {
	w.checkOperand(a)
	w.checkOperand(b)
	w.checkOperand(d)
}

// checkOperand constrains v below 2^[GuardBits], folding the check for
// compile-time constants.
func (w *Wad) checkOperand(v frontend.Variable) {
	if c, ok := w.api.Compiler().ConstantValue(v); ok {
		if c.BitLen() > GuardBits {
			panic("operand exceeds verification range")
		}
		return
	}
	w.rc.Check(v, GuardBits)
}

// verify constrains (q, r) to be the unique Euclidean decomposition of a*b by
// d. The three checks stand together: the identity pins the pair modulo the
// field, the remainder bound makes the decomposition unique, and the quotient
// range check blocks wrapped-around forgeries of the form q' = q + k*p/d.
func (w *Wad) verify(a, b, d, q, r frontend.Variable) {
	w.rc.Check(q, GuardBits)
	w.rc.Check(r, GuardBits)
	// r < d via the non-negativity of d - r - 1; with r >= 0 this also
	// forces d >= 1
	w.rc.Check(w.api.Sub(d, r, 1), GuardBits)
	w.api.AssertIsEqual(w.api.Mul(a, b), w.api.Add(w.api.Mul(q, d), r))
}
