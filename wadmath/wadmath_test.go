package wadmath

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}

func TestCeilings(t *testing.T) {
	require.Equal(t, "340282366920938463463", MaxConvertible.String())
	require.Equal(t, "170141183460469231731", MaxPrimitiveInput.String())
	require.Equal(t, "13043817825", MaxMulInput.String())

	// MaxMulInput is tight: x^2 scaled stays under 2^127, (x+1)^2 does not
	ceiling := new(big.Int).Lsh(big.NewInt(1), 127)
	sq := new(big.Int).Mul(MaxMulInput, MaxMulInput)
	sq.Mul(sq, One)
	require.True(t, sq.Cmp(ceiling) < 0)
	next := new(big.Int).Add(MaxMulInput, big.NewInt(1))
	sq = new(big.Int).Mul(next, next)
	sq.Mul(sq, One)
	require.True(t, sq.Cmp(ceiling) >= 0)
}

func TestScaleUnscaleRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	properties.Property("Unscale(Scale(x)) == x", prop.ForAll(
		func(x uint64) bool {
			w, err := Scale(new(big.Int).SetUint64(x))
			if err != nil {
				return false
			}
			got, err := Unscale(w)
			return err == nil && got.Uint64() == x
		},
		gen.UInt64(),
	))

	properties.Property("Scale(a) + Scale(b) == Scale(a+b)", prop.ForAll(
		func(a, b uint64) bool {
			a >>= 1
			b >>= 1
			wa, err := Scale(new(big.Int).SetUint64(a))
			if err != nil {
				return false
			}
			wb, err := Scale(new(big.Int).SetUint64(b))
			if err != nil {
				return false
			}
			want, err := Scale(new(big.Int).SetUint64(a + b))
			return err == nil && Add(wa, wb).Cmp(want) == 0
		},
		gen.UInt64(), gen.UInt64(),
	))

	properties.Property("Unscale(Mul(Scale(a), Scale(b))) == a*b", prop.ForAll(
		func(a, b uint32) bool {
			wa, _ := Scale(big.NewInt(int64(a)))
			wb, _ := Scale(big.NewInt(int64(b)))
			p, err := Mul(wa, wb)
			if err != nil {
				return false
			}
			got, err := Unscale(p)
			return err == nil && got.Cmp(new(big.Int).Mul(big.NewInt(int64(a)), big.NewInt(int64(b)))) == 0
		},
		gen.UInt32(), gen.UInt32(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestNestedFloorCollapses(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	one := big.NewInt(1)
	properties := gopter.NewProperties(parameters)
	properties.Property("MulDiv(MulDiv(N,1,a),1,b) == MulDiv(N,1,a*b)", prop.ForAll(
		func(n uint64, a, b uint32) bool {
			if a == 0 {
				a = 1
			}
			if b == 0 {
				b = 1
			}
			bigN := new(big.Int).SetUint64(n)
			bigA := big.NewInt(int64(a))
			bigB := big.NewInt(int64(b))

			inner, err := MulDiv(bigN, one, bigA)
			if err != nil {
				return false
			}
			left, err := MulDiv(inner, one, bigB)
			if err != nil {
				return false
			}
			right, err := MulDiv(bigN, one, new(big.Int).Mul(bigA, bigB))
			return err == nil && left.Cmp(right) == 0
		},
		gen.UInt64(), gen.UInt32(), gen.UInt32(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestMulFloorSemantics(t *testing.T) {
	// 3.0 * 1.5 == 4.5, integer part 4
	three, err := Scale(big.NewInt(3))
	require.NoError(t, err)
	halfWad := new(big.Int).Quo(One, big.NewInt(2))
	oneAndHalf := Add(One, halfWad)

	got, err := Mul(three, halfWad)
	require.NoError(t, err)
	require.Zero(t, got.Cmp(oneAndHalf)) // 3 * 0.5 == 1.5 exactly

	intPart, err := Unscale(got)
	require.NoError(t, err)
	require.EqualValues(t, 1, intPart.Int64())
}

func TestDivKeepsPrecision(t *testing.T) {
	oneWad, err := Scale(big.NewInt(1))
	require.NoError(t, err)
	threeWad, err := Scale(big.NewInt(3))
	require.NoError(t, err)

	got, err := Div(oneWad, threeWad)
	require.NoError(t, err)
	require.Equal(t, "333333333333333333", got.String())
}

func TestMulNonAssociative(t *testing.T) {
	third := mustBig(t, "333333333333333333") // 1/3 floored
	threeWad, err := Scale(big.NewInt(3))
	require.NoError(t, err)

	ab, err := Mul(third, third)
	require.NoError(t, err)
	left, err := Mul(ab, threeWad)
	require.NoError(t, err)

	bc, err := Mul(third, threeWad)
	require.NoError(t, err)
	right, err := Mul(third, bc)
	require.NoError(t, err)

	require.Equal(t, "333333333333333330", left.String())
	require.Equal(t, "333333333333333332", right.String())
	require.NotZero(t, left.Cmp(right))
}

func TestRangeRejection(t *testing.T) {
	atCeiling := new(big.Int).Lsh(big.NewInt(1), 127)

	_, err := MulDiv(atCeiling, big.NewInt(1), big.NewInt(1))
	require.ErrorIs(t, err, ErrRangeViolation)
	_, err = MulDiv(big.NewInt(1), atCeiling, big.NewInt(1))
	require.ErrorIs(t, err, ErrRangeViolation)
	_, err = MulDiv(big.NewInt(1), big.NewInt(1), atCeiling)
	require.ErrorIs(t, err, ErrRangeViolation)

	// quotient ceiling
	max127 := new(big.Int).Sub(atCeiling, big.NewInt(1))
	_, err = MulDiv(max127, max127, big.NewInt(1))
	require.ErrorIs(t, err, ErrRangeViolation)

	_, err = Scale(new(big.Int).Add(MaxConvertible, big.NewInt(1)))
	require.ErrorIs(t, err, ErrWidthOverflow)
}

func TestSubUnderflow(t *testing.T) {
	three, err := Scale(big.NewInt(3))
	require.NoError(t, err)
	five, err := Scale(big.NewInt(5))
	require.NoError(t, err)

	_, err = Sub(three, five)
	require.ErrorIs(t, err, ErrUnderflow)

	got, err := Sub(five, three)
	require.NoError(t, err)
	want, err := Scale(big.NewInt(2))
	require.NoError(t, err)
	require.Zero(t, got.Cmp(want))
}

func TestDivisionByZero(t *testing.T) {
	_, err := MulDiv(One, One, big.NewInt(0))
	require.ErrorIs(t, err, ErrDivisionByZero)
	_, err = Div(One, big.NewInt(0))
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestSwapScenario(t *testing.T) {
	// constant-product swap: reserves 100000/200000, amount in 1000
	reserveIn, err := Scale(big.NewInt(100_000))
	require.NoError(t, err)
	reserveOut, err := Scale(big.NewInt(200_000))
	require.NoError(t, err)
	amountIn, err := Scale(big.NewInt(1_000))
	require.NoError(t, err)

	amountOut, err := MulDiv(reserveOut, amountIn, Add(reserveIn, amountIn))
	require.NoError(t, err)
	require.Equal(t, "1980198019801980198019", amountOut.String())

	units, err := Unscale(amountOut)
	require.NoError(t, err)
	require.EqualValues(t, 1980, units.Int64())
}

func TestFromUint64(t *testing.T) {
	v := FromUint64(42)
	require.EqualValues(t, 42, v.Int64())
}
