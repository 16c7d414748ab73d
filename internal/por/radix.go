package por

import "math"

// dblMax and dblMin mirror C's DBL_MAX / DBL_MIN: the largest finite double
// and the smallest *normalized* positive double (not the smallest denormal,
// which is what math.SmallestNonzeroFloat64 gives).
const (
	dblMax = math.MaxFloat64
	dblMin = 2.2250738585072014e-308
)

// canonicalDigitAlphabet is the 64-byte permutation radix systems default to
// when no explicit digit alphabet is supplied: 0-9, A-Z, a-z, +, /.
const canonicalDigitAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz+/"

// RadixSystem holds an arbitrary radix's digit alphabet, sign/point bytes,
// and the derived numeric-limit caches spec §4.A calls for. It is
// immutable after NewRadixSystem returns and safe to share read-only.
type RadixSystem struct {
	base  int
	digits [64]byte // first `base` entries valid
	digitOf [256]int8

	plus, minus, point byte

	maxIntMul    int32
	maxLongMul   int64
	maxDoubleMul float64
	minDoubleMul float64

	maxExp, minExp   int
	maxMantissa      float64
	minMantissa      float64
	pow              []float64 // pow[k] == base^k, for k in [0, maxExp]
}

// NewRadixSystem constructs a RadixSystem for the given base. If digits is
// nil, the canonical alphabet is used, truncated to base. digits, if given,
// must have exactly `base` distinct bytes.
func NewRadixSystem(base int, digits []byte) (*RadixSystem, error) {
	if base < 2 || base > 64 {
		return nil, newErr(ErrInternal, "radix base must be in [2, 64]")
	}
	if digits == nil {
		digits = []byte(canonicalDigitAlphabet[:base])
	}
	if len(digits) != base {
		return nil, newErr(ErrInternal, "digit alphabet length must equal base")
	}

	r := &RadixSystem{base: base, plus: '+', minus: '-', point: '.'}
	for i := range r.digitOf {
		r.digitOf[i] = -1
	}
	for i, d := range digits {
		if r.digitOf[d] != -1 {
			return nil, newErr(ErrInternal, "duplicate digit in alphabet")
		}
		r.digits[i] = d
		r.digitOf[d] = int8(i)
	}

	b := float64(base)
	r.maxDoubleMul = dblMax / b
	r.minDoubleMul = dblMin * b
	r.maxLongMul = math.MaxInt64 / int64(base)
	r.maxIntMul = math.MaxInt32 / int32(base)

	r.maxExp = int(math.Floor(math.Log(dblMax) / math.Log(b)))
	r.minExp = int(math.Floor(math.Log(dblMin) / math.Log(b)))

	r.pow = make([]float64, r.maxExp+1)
	acc := 1.0
	for k := 0; k <= r.maxExp; k++ {
		r.pow[k] = acc
		acc *= b
	}

	r.maxMantissa = dblMax / r.powOf(r.maxExp)
	r.minMantissa = dblMin / r.powOf(r.minExp)

	return r, nil
}

// SetSignAndPoint overrides the default '+' '-' '.' sign/point bytes.
func (r *RadixSystem) SetSignAndPoint(plus, minus, point byte) {
	r.plus, r.minus, r.point = plus, minus, point
}

func (r *RadixSystem) Base() int       { return r.base }
func (r *RadixSystem) Plus() byte      { return r.plus }
func (r *RadixSystem) Minus() byte     { return r.minus }
func (r *RadixSystem) Point() byte     { return r.point }
func (r *RadixSystem) MaxExp() int     { return r.maxExp }
func (r *RadixSystem) MinExp() int     { return r.minExp }
func (r *RadixSystem) MaxMantissa() float64 { return r.maxMantissa }
func (r *RadixSystem) MinMantissa() float64 { return r.minMantissa }
func (r *RadixSystem) MaxDoubleMul() float64 { return r.maxDoubleMul }
func (r *RadixSystem) MaxIntMul() int32   { return r.maxIntMul }
func (r *RadixSystem) MaxLongMul() int64  { return r.maxLongMul }

// Digit returns the byte representing digit i, 0 <= i < Base().
func (r *RadixSystem) Digit(i int) byte { return r.digits[i] }

// DigitOf returns the digit value of byte b, or -1 if b is not a digit in
// this radix's alphabet.
func (r *RadixSystem) DigitOf(b byte) int { return int(r.digitOf[b]) }

// Pow returns base^k, using the precomputed cache when k is within
// [0, MaxExp()] and falling back to math.Pow beyond it (e.g. negative k,
// used when normalising fractional exponents).
func (r *RadixSystem) Pow(k int) float64 {
	if k >= 0 && k < len(r.pow) {
		return r.pow[k]
	}
	return r.powOf(k)
}

func (r *RadixSystem) powOf(k int) float64 {
	if k >= 0 && k < len(r.pow) {
		return r.pow[k]
	}
	return math.Pow(float64(r.base), float64(k))
}

// DefaultPrecision returns ceil(53*ln2 / ln(base)), the digit count needed
// to round-trip a double's 53-bit mantissa in this radix.
func (r *RadixSystem) DefaultPrecision() int {
	return int(math.Ceil(53 * math.Ln2 / math.Log(float64(r.base))))
}
