package por

import "math/big"

// RoundingMode selects how an arbitrary-precision intermediate value is
// rounded back down to a float64, per spec §9 "Dual numeric precision".
type RoundingMode int

const (
	RoundHalfUp RoundingMode = iota
	RoundHalfEven
	RoundTowardZero
)

func (m RoundingMode) bigMode() big.RoundingMode {
	switch m {
	case RoundHalfUp:
		return big.ToNearestAway
	case RoundTowardZero:
		return big.ToZero
	default:
		return big.ToNearestEven
	}
}

// defaultBigPrec is generous enough that intermediate rounding error never
// dominates the final float64 conversion for any supported radix.
const defaultBigPrec = 256

// NumericContext factors the multiply/add/divide/pow operations the parser
// and formatter need behind one abstraction, so their state machines don't
// change shape between the fast float64 path and the arbitrary-precision
// path (spec §9). HighPrecision == false means "just use float64"; the
// Big* methods are only called when it's true.
type NumericContext struct {
	HighPrecision bool
	Rounding      RoundingMode
}

func NewNumericContext(highPrecision bool, rounding RoundingMode) *NumericContext {
	return &NumericContext{HighPrecision: highPrecision, Rounding: rounding}
}

func (c *NumericContext) newBigFloat() *big.Float {
	return new(big.Float).SetPrec(defaultBigPrec).SetMode(c.Rounding.bigMode())
}

// BigMantissaToDouble accumulates digits (most significant first, values in
// [0, base)) as a big.Float mantissa — digit-by-digit multiply-and-add,
// mirroring the float64 loop in NumberParser but with a wide intermediate —
// then rounds to float64 using the configured RoundingMode.
func (c *NumericContext) BigMantissaToDouble(digits []int, base int) float64 {
	acc := c.newBigFloat()
	bigBase := new(big.Float).SetPrec(defaultBigPrec).SetInt64(int64(base))
	for _, d := range digits {
		acc.Mul(acc, bigBase)
		acc.Add(acc, new(big.Float).SetPrec(defaultBigPrec).SetInt64(int64(d)))
	}
	// Float64 itself always rounds to nearest-even; rounding to a double's
	// 53-bit mantissa first applies the configured mode.
	acc.SetPrec(53)
	f, _ := acc.Float64()
	return f
}

// BigScale multiplies v by base^exp using a big.Float intermediate, useful
// when exp is large enough that repeated float64 multiplication would lose
// precision before the final rounding step.
func (c *NumericContext) BigScale(v float64, base int, exp int) float64 {
	acc := new(big.Float).SetPrec(defaultBigPrec).SetFloat64(v)
	bigBase := new(big.Float).SetPrec(defaultBigPrec).SetInt64(int64(base))
	if exp >= 0 {
		for i := 0; i < exp; i++ {
			acc.Mul(acc, bigBase)
		}
	} else {
		for i := 0; i < -exp; i++ {
			acc.Quo(acc, bigBase)
		}
	}
	acc.SetMode(c.Rounding.bigMode())
	acc.SetPrec(53)
	f, _ := acc.Float64()
	return f
}

// BigExtractDigits extracts n digits of v (which must be in [1, base)) in a
// big.Float intermediate, mirroring NumberFormatter's float64 extraction
// loop (repeated integer part extraction, subtract, multiply by base), and
// returns the digits plus the final remainder (for rounding decisions).
func (c *NumericContext) BigExtractDigits(v float64, base int, n int) ([]int, float64) {
	acc := new(big.Float).SetPrec(defaultBigPrec).SetFloat64(v)
	bigBase := new(big.Float).SetPrec(defaultBigPrec).SetInt64(int64(base))
	digits := make([]int, 0, n)
	for i := 0; i < n; i++ {
		ip, _ := acc.Int64()
		digits = append(digits, int(ip))
		acc.Sub(acc, new(big.Float).SetPrec(defaultBigPrec).SetInt64(ip))
		acc.Mul(acc, bigBase)
	}
	rem, _ := acc.Float64()
	return digits, rem
}
