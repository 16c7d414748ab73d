package por

import "math"

// NumberFormatter converts a float64 (or an already-formatted digit
// string) into the digit-string wire representation of spec §4.C. Reformat
// re-parses its input with a NumberParser built on the formatter's own
// RadixSystem and NumericContext.
type NumberFormatter struct {
	radix *RadixSystem
	ctx   *NumericContext

	precision int

	// requireIntSign controls whether FormatInt emits '+' for
	// non-negative values (false by default: sign is then optional).
	requireIntSign bool
}

func NewNumberFormatter(r *RadixSystem, ctx *NumericContext, precision int) *NumberFormatter {
	if ctx == nil {
		ctx = NewNumericContext(false, RoundHalfEven)
	}
	if precision <= 0 {
		precision = r.DefaultPrecision()
	}
	return &NumberFormatter{radix: r, ctx: ctx, precision: precision}
}

func (f *NumberFormatter) SetRequireIntSign(v bool) { f.requireIntSign = v }

// FormatDouble implements spec §4.C's ten-step algorithm.
func (f *NumberFormatter) FormatDouble(v float64) []byte {
	return f.formatDoubleAtPrecision(v, f.precision)
}

func (f *NumberFormatter) formatDoubleAtPrecision(v float64, precision int) []byte {
	base := f.radix.Base()
	var out []byte

	negative := v < 0 || (v == 0 && math.Signbit(v))
	if negative {
		out = append(out, f.radix.Minus())
		v = -v
	}

	if v == 0 {
		return []byte{f.radix.Digit(0)}
	}

	// Step 2: exp = floor(log_base(v)).
	exp := int(math.Floor(logBase(v, base)))

	// Step 3: normalise into [1, base), guarding against log imprecision.
	m := v / f.radix.Pow(exp)
	for m < 1 {
		m *= float64(base)
		exp--
	}
	for m >= float64(base) {
		m /= float64(base)
		exp++
	}

	// Step 4: digit count.
	n := precision
	if float64(int64(v)) == v {
		if exp+1 < n {
			n = exp + 1
		}
	}
	if n < 1 {
		n = 1
	}

	// Step 5: extract n digits.
	var digits []int
	var remainder float64
	if f.ctx.HighPrecision {
		digits, remainder = f.ctx.BigExtractDigits(m, base, n)
	} else {
		mm := m
		for i := 0; i < n; i++ {
			d := int(mm)
			digits = append(digits, d)
			mm = (mm - float64(d)) * float64(base)
		}
		remainder = mm
	}

	// Step 6: round the remainder.
	if remainder >= float64(base)/2 {
		i := len(digits) - 1
		for i >= 0 {
			digits[i]++
			if digits[i] < base {
				break
			}
			digits[i] = 0
			i--
		}
		if i < 0 {
			digits = append([]int{1}, digits...)
			digits = digits[:len(digits)-1] // keep original length
			exp++
		}
	}

	// Step 7: trim trailing zeros (keep at least one digit).
	for len(digits) > 1 && digits[len(digits)-1] == 0 {
		digits = digits[:len(digits)-1]
	}

	// Step 8: an all-zero result prints as a single zero digit, sign
	// discarded (handled by the v == 0 early return above; kept here for
	// the case rounding collapses everything to zero).
	allZero := true
	for _, d := range digits {
		if d != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return []byte{f.radix.Digit(0)}
	}

	nAfterTrim := len(digits)

	// Step 9: choose point position vs. exponent notation.
	var body []byte
	var outExp int
	useExp := !(exp >= -1 && exp < nAfterTrim-1)
	if !useExp {
		pointPos := exp + 1
		for i, d := range digits {
			if i == pointPos {
				if i == 0 {
					body = append(body, f.radix.Digit(0))
				}
				body = append(body, f.radix.Point())
			}
			body = append(body, f.radix.Digit(d))
		}
	} else {
		for _, d := range digits {
			body = append(body, f.radix.Digit(d))
		}
		outExp = exp - (nAfterTrim - 1)
	}

	out = append(out, body...)

	if useExp && outExp != 0 {
		out = append(out, f.formatSignedInt(outExp)...)
	}
	return out
}

// formatSignedInt renders a signed exponent: sign byte always present,
// followed by the magnitude's digits (no leading zeros beyond a single 0).
func (f *NumberFormatter) formatSignedInt(v int) []byte {
	out := make([]byte, 0, 4)
	if v < 0 {
		out = append(out, f.radix.Minus())
		v = -v
	} else {
		out = append(out, f.radix.Plus())
	}
	out = append(out, f.digitsOf(v)...)
	return out
}

func (f *NumberFormatter) digitsOf(v int) []byte {
	base := f.radix.Base()
	if v == 0 {
		return []byte{f.radix.Digit(0)}
	}
	var rev []byte
	for v > 0 {
		rev = append(rev, f.radix.Digit(v%base))
		v /= base
	}
	out := make([]byte, len(rev))
	for i, b := range rev {
		out[len(rev)-1-i] = b
	}
	return out
}

// FormatInt renders v as a signed digit string (LSB-first extraction,
// emitted reversed). Sign is included for negative values always, and for
// non-negative values only when requireIntSign is set.
func (f *NumberFormatter) FormatInt(v int64) []byte {
	base := int64(f.radix.Base())
	negative := v < 0
	if negative {
		v = -v
	}
	var out []byte
	if negative {
		out = append(out, f.radix.Minus())
	} else if f.requireIntSign {
		out = append(out, f.radix.Plus())
	}
	if v == 0 {
		return append(out, f.radix.Digit(0))
	}
	var rev []byte
	for v > 0 {
		rev = append(rev, f.radix.Digit(int(v%base)))
		v /= base
	}
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return out
}

// Reformat re-renders an existing digit string (as produced by
// FormatDouble) at a lower precision, per spec §4.C. If the mantissa
// already fits within newPrecision significant digits, buf[:length] is
// returned unchanged.
func (f *NumberFormatter) Reformat(buf []byte, length int, newPrecision int) []byte {
	text := buf[:length]
	sigDigits := countSignificantDigits(text, f.radix)
	if sigDigits <= newPrecision {
		return text
	}
	p := NewNumberParser(f.radix, f.ctx)
	v, err := p.Parse(text)
	if err != nil {
		// Malformed input is a programming error from the caller's side;
		// surface it unchanged rather than guessing.
		return text
	}
	return f.formatDoubleAtPrecision(v, newPrecision)
}

func countSignificantDigits(text []byte, r *RadixSystem) int {
	count := 0
	seenNonZero := false
	for i, b := range text {
		if b == r.Point() {
			continue
		}
		if b == r.Plus() || b == r.Minus() {
			if i == 0 {
				continue // leading mantissa sign
			}
			break // exponent sign: the mantissa ends here
		}
		d := r.DigitOf(b)
		if d < 0 {
			break // stop at separators
		}
		if d != 0 {
			seenNonZero = true
		}
		if seenNonZero {
			count++
		}
	}
	return count
}
