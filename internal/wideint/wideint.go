// Package wideint implements the wide integer arithmetic backing the
// multiply-divide hint: an exact 128×128→256 bit product and a restoring long
// division of the product by a 128-bit divisor. All operations are on 64-bit
// limbs using the math/bits intrinsics.
package wideint

import (
	"encoding/binary"
	"math/big"
	"math/bits"
)

// Uint256 is an unsigned 256-bit integer as four 64-bit limbs, least
// significant limb first.
type Uint256 [4]uint64

// Mul128 returns the exact product of the two 128-bit values (aHi, aLo) and
// (bHi, bLo). The product of the four partial products is accumulated limb by
// limb, so no intermediate wraps.
func Mul128(aHi, aLo, bHi, bLo uint64) Uint256 {
	llHi, llLo := bits.Mul64(aLo, bLo)
	lhHi, lhLo := bits.Mul64(aLo, bHi)
	hlHi, hlLo := bits.Mul64(aHi, bLo)
	hhHi, hhLo := bits.Mul64(aHi, bHi)

	var z Uint256
	z[0] = llLo

	s, c1 := bits.Add64(lhLo, hlLo, 0)
	s, c2 := bits.Add64(s, llHi, 0)
	z[1] = s

	// c1+c2 <= 2, fits in the limb without overflow
	s, c3 := bits.Add64(lhHi, hlHi, 0)
	s, c4 := bits.Add64(s, hhLo, 0)
	s, c5 := bits.Add64(s, c1+c2, 0)
	z[2] = s

	z[3] = hhHi + c3 + c4 + c5
	return z
}

// QuoRem128 divides z by the 128-bit divisor (dHi, dLo) and returns the
// quotient and remainder. The divisor must be non-zero and below 2^127 so that
// the shifted remainder never outgrows two limbs.
func (z Uint256) QuoRem128(dHi, dLo uint64) (q Uint256, rHi, rLo uint64) {
	for i := 255; i >= 0; i-- {
		rHi = rHi<<1 | rLo>>63
		rLo = rLo<<1 | z[i/64]>>(uint(i)%64)&1
		if rHi > dHi || (rHi == dHi && rLo >= dLo) {
			var borrow uint64
			rLo, borrow = bits.Sub64(rLo, dLo, 0)
			rHi, _ = bits.Sub64(rHi, dHi, borrow)
			q[i/64] |= 1 << (uint(i) % 64)
		}
	}
	return q, rHi, rLo
}

// FitsUint127 reports whether z is below 2^127.
func (z Uint256) FitsUint127() bool {
	return z[2] == 0 && z[3] == 0 && z[1]>>63 == 0
}

// Big returns z as a big integer.
func (z Uint256) Big() *big.Int {
	var buf [32]byte
	binary.BigEndian.PutUint64(buf[0:8], z[3])
	binary.BigEndian.PutUint64(buf[8:16], z[2])
	binary.BigEndian.PutUint64(buf[16:24], z[1])
	binary.BigEndian.PutUint64(buf[24:32], z[0])
	return new(big.Int).SetBytes(buf[:])
}

// Words128 splits a non-negative big integer below 2^128 into its two 64-bit
// limbs.
func Words128(x *big.Int) (hi, lo uint64) {
	var buf [16]byte
	x.FillBytes(buf[:])
	return binary.BigEndian.Uint64(buf[:8]), binary.BigEndian.Uint64(buf[8:])
}
