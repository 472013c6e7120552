// Package fixedpoint implements verified fixed-point ("wad") arithmetic
// in-circuit. A wad is an unsigned integer holding a real number multiplied
// by 10^18, so fractional quantities can be manipulated with integer
// operations only.
//
// The core primitive is [Wad.MulDiv], computing floor(a*b/d) where the
// product a*b may exceed the native field. Computing the division in-circuit
// with multi-limb arithmetic would be expensive, so the work is split the way
// gnark splits it everywhere: an untrusted hint computes the candidate
// quotient and remainder with wide limb arithmetic outside the circuit, and
// the circuit accepts the candidate only after checking a cheap algebraic
// identity:
//
//	a*b == q*d + r,  0 <= r < d,  q < 2^127
//
// all evaluated in the native field. The identity alone is forgeable: any
// (q', r') congruent to the true pair modulo the field order satisfies it.
// Soundness comes from the bounds. Every operand is range-checked below
// 2^127 before the hint output is used, so q*d + r < 2^254 + 2^127; as long
// as the field modulus exceeds that bound, field equality implies integer
// equality and the Euclidean decomposition is unique. [New] rejects smaller
// fields at circuit-definition time. BN254's scalar field is below 2^254 and
// is refused; BLS12-381 works.
//
// The remaining operations are thin: scaled multiply and divide delegate to
// MulDiv with the scale constant, Add is deliberately unchecked (the caller
// owns overflow before a sum re-enters MulDiv), Sub asserts no underflow, and
// Scale/Unscale convert between unscaled integers and wads.
//
// The witness-side mirror of this package is
// [github.com/provemath/gnark-fixedpoint/wadmath], which callers use to
// precompute assignments and validate inputs against the published ceilings.
package fixedpoint
