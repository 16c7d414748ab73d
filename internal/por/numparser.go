package por

import "math"

// ParseStatus is the outcome of feeding one byte to a NumberParser.
type ParseStatus int

const (
	StatusUnfinished ParseStatus = iota
	StatusAccepted
	StatusRejected
)

type parserState int

const (
	pStart parserState = iota
	pOptSign
	pEmptyInt
	pUnemptyInt
	pEmptyFracEmptyInt
	pEmptyFracUnemptyInt
	pEmptyFrac
	pUnemptyFrac
	pExpSign
	pEmptyExp
	pUnemptyExp
	pAccept
	pError
)

const defaultScratchLimit = 128

// NumberParser drives the character-by-character number-scanning state
// machine of spec §4.B. It is reusable across cells: call Reset before
// each new number, Consume for every byte (Consume(-1) signals
// end-of-input and must always be issued), then Result.
type NumberParser struct {
	radix *RadixSystem
	ctx   *NumericContext

	scratchLimit int

	state parserState

	sign int // mantissa sign: +1 or -1

	intDigits  []int
	fracDigits []int
	expDigits  []int
	expSign    int

	digitCount int // total digits captured, bounded by scratchLimit

	err    *Error
	result float64
}

// NewNumberParser constructs a parser bound to radix r. ctx may be nil,
// meaning "plain float64 arithmetic, no arbitrary-precision intermediate".
func NewNumberParser(r *RadixSystem, ctx *NumericContext) *NumberParser {
	if ctx == nil {
		ctx = NewNumericContext(false, RoundHalfEven)
	}
	p := &NumberParser{radix: r, ctx: ctx, scratchLimit: defaultScratchLimit}
	p.Reset()
	return p
}

func (p *NumberParser) Reset() {
	p.state = pStart
	p.sign = 1
	p.intDigits = p.intDigits[:0]
	p.fracDigits = p.fracDigits[:0]
	p.expDigits = p.expDigits[:0]
	p.expSign = 1
	p.digitCount = 0
	p.err = nil
	p.result = 0
}

func (p *NumberParser) fail(kind ErrorKind, msg string) ParseStatus {
	p.state = pError
	p.err = newErr(kind, msg).withSign(p.sign)
	return StatusRejected
}

func (p *NumberParser) isDigit(b byte) (int, bool) {
	d := p.radix.DigitOf(b)
	if d < 0 {
		return 0, false
	}
	return d, true
}

func (p *NumberParser) pushDigit(dst *[]int, d int) ParseStatus {
	if p.digitCount >= p.scratchLimit {
		return p.fail(ErrBuffer, "number scratch buffer exhausted")
	}
	*dst = append(*dst, d)
	p.digitCount++
	return StatusUnfinished
}

// Consume feeds one byte (or -1 for end-of-input) to the state machine.
// It loops internally to resolve epsilon-transitions (spec §9): a single
// consumed byte, or the eof sentinel, may drive several state changes
// before control returns to the caller.
func (p *NumberParser) Consume(b int) ParseStatus {
	if p.state == pAccept || p.state == pError {
		return p.statusOf()
	}

	for {
		switch p.state {
		case pStart:
			if b == int(' ') {
				return StatusUnfinished // self-loop, consumes the space
			}
			p.state = pOptSign
			continue // epsilon: re-examine same byte

		case pOptSign:
			if b == int(p.radix.Plus()) {
				p.sign = 1
				p.state = pEmptyInt
				return StatusUnfinished
			}
			if b == int(p.radix.Minus()) {
				p.sign = -1
				p.state = pEmptyInt
				return StatusUnfinished
			}
			p.state = pEmptyInt
			continue // epsilon: no sign present

		case pEmptyInt:
			if b == -1 {
				return p.fail(ErrSyntax, "empty number")
			}
			if d, ok := p.isDigit(byte(b)); ok {
				if st := p.pushDigit(&p.intDigits, d); st == StatusRejected {
					return st
				}
				p.state = pUnemptyInt
				return StatusUnfinished
			}
			if b == int(p.radix.Point()) {
				p.state = pEmptyFracEmptyInt
				return StatusUnfinished
			}
			return p.fail(ErrSyntax, "expected digit, point, or sign")

		case pUnemptyInt:
			if b == -1 {
				p.state = pAccept
				return p.finish()
			}
			if d, ok := p.isDigit(byte(b)); ok {
				if st := p.pushDigit(&p.intDigits, d); st == StatusRejected {
					return st
				}
				return StatusUnfinished
			}
			if b == int(p.radix.Point()) {
				p.state = pEmptyFracUnemptyInt
				return StatusUnfinished
			}
			if b == int(p.radix.Plus()) || b == int(p.radix.Minus()) {
				p.state = pExpSign
				continue // epsilon: sign not yet consumed
			}
			return p.fail(ErrSyntax, "unexpected byte in integer part")

		case pEmptyFracEmptyInt:
			if b == -1 || b == int(p.radix.Plus()) || b == int(p.radix.Minus()) {
				return p.fail(ErrSyntax, "point with no integer or fractional digits")
			}
			if d, ok := p.isDigit(byte(b)); ok {
				if st := p.pushDigit(&p.fracDigits, d); st == StatusRejected {
					return st
				}
				p.state = pUnemptyFrac
				return StatusUnfinished
			}
			return p.fail(ErrSyntax, "expected fractional digit")

		case pEmptyFracUnemptyInt:
			if b == -1 {
				p.state = pAccept
				return p.finish()
			}
			p.state = pEmptyFrac
			continue // epsilon

		case pEmptyFrac:
			if d, ok := p.isDigit(byte(b)); ok {
				if st := p.pushDigit(&p.fracDigits, d); st == StatusRejected {
					return st
				}
				p.state = pUnemptyFrac
				return StatusUnfinished
			}
			return p.fail(ErrSyntax, "expected fractional digit")

		case pUnemptyFrac:
			if b == -1 {
				p.state = pAccept
				return p.finish()
			}
			if d, ok := p.isDigit(byte(b)); ok {
				if st := p.pushDigit(&p.fracDigits, d); st == StatusRejected {
					return st
				}
				return StatusUnfinished
			}
			if b == int(p.radix.Plus()) || b == int(p.radix.Minus()) {
				p.state = pExpSign
				continue // epsilon
			}
			return p.fail(ErrSyntax, "unexpected byte in fractional part")

		case pExpSign:
			if b == int(p.radix.Minus()) {
				p.expSign = -1
			} else {
				p.expSign = 1
			}
			p.state = pEmptyExp
			return StatusUnfinished // the sign byte itself is consumed here

		case pEmptyExp:
			if d, ok := p.isDigit(byte(b)); ok {
				if st := p.pushDigit(&p.expDigits, d); st == StatusRejected {
					return st
				}
				p.state = pUnemptyExp
				return StatusUnfinished
			}
			return p.fail(ErrSyntax, "expected exponent digit")

		case pUnemptyExp:
			if b == -1 {
				p.state = pAccept
				return p.finish()
			}
			if d, ok := p.isDigit(byte(b)); ok {
				if st := p.pushDigit(&p.expDigits, d); st == StatusRejected {
					return st
				}
				return StatusUnfinished
			}
			return p.fail(ErrSyntax, "unexpected byte in exponent")
		}
	}
}

func (p *NumberParser) statusOf() ParseStatus {
	if p.state == pAccept {
		return StatusAccepted
	}
	return StatusRejected
}

// finish runs the post-processing pipeline of spec §4.B steps 1-6 once the
// state machine reaches ACCEPT.
func (p *NumberParser) finish() ParseStatus {
	base := p.radix.Base()

	// Step 1: exponent digits -> integer, with sign.
	expVal := 0
	for _, d := range p.expDigits {
		if expVal > int(p.radix.MaxIntMul()) {
			return p.fail(ErrExponentSize, "exponent too large")
		}
		expVal = expVal*base + d
	}
	expVal *= p.expSign

	// Step 2: trim trailing zeros from the fractional part (value-preserving).
	frac := p.fracDigits
	for len(frac) > 0 && frac[len(frac)-1] == 0 {
		frac = frac[:len(frac)-1]
	}

	// Step 3: accumulate the mantissa as if it were one continuous integer
	// (integer digits then fractional digits), checking for overflow of the
	// double accumulator itself.
	var mantissa float64
	if p.ctx.HighPrecision {
		all := make([]int, 0, len(p.intDigits)+len(frac))
		all = append(all, p.intDigits...)
		all = append(all, frac...)
		mantissa = p.ctx.BigMantissaToDouble(all, base)
	} else {
		for _, d := range p.intDigits {
			if mantissa > p.radix.MaxDoubleMul() {
				return p.fail(ErrMantissaSize, "mantissa overflow")
			}
			mantissa = mantissa*float64(base) + float64(d)
		}
		for _, d := range frac {
			if mantissa > p.radix.MaxDoubleMul() {
				return p.fail(ErrMantissaSize, "mantissa overflow")
			}
			mantissa = mantissa*float64(base) + float64(d)
		}
	}

	// intDigitCount is len(p.intDigits) as captured, including any leading
	// zeros the integer part contributed (e.g. "0.0005" counts 1 here). The
	// first underflow check below adds this count to the exponent, so
	// counting leading zeros can only raise that sum: such a value is
	// flagged as underflow no more often than it would be with the zeros
	// trimmed.
	intDigitCount := len(p.intDigits)
	scaleExp := expVal - len(frac)

	if mantissa == 0 {
		p.result = 0
		p.state = pAccept
		return StatusAccepted
	}

	// Step 4: normalise the mantissa into [1, base) and derive the overall
	// exponent, equivalent to the spec's digit-position bookkeeping but
	// phrased in terms of the accumulated value instead of raw digit
	// counts.
	magExp := int(math.Floor(logBase(mantissa, base)))
	normMantissa := mantissa / p.radix.Pow(magExp)
	if normMantissa < 1 {
		normMantissa *= float64(base)
		magExp--
	} else if normMantissa >= float64(base) {
		normMantissa /= float64(base)
		magExp++
	}
	totalExp := scaleExp + magExp

	// Step 5: limit checks.
	if totalExp > p.radix.MaxExp() {
		return p.fail(ErrOverflow, "exponent exceeds radix range")
	}
	if totalExp == p.radix.MaxExp() && normMantissa > p.radix.MaxMantissa() {
		return p.fail(ErrOverflow, "mantissa exceeds range at max exponent")
	}
	if totalExp+intDigitCount < p.radix.MinExp() {
		return p.fail(ErrUnderflow, "exponent below radix range")
	}
	if totalExp <= p.radix.MinExp() && normMantissa < p.radix.MinMantissa() {
		return p.fail(ErrUnderflow, "mantissa below range at min exponent")
	}

	// Step 6: compute final value and apply sign.
	var value float64
	if p.ctx.HighPrecision {
		value = p.ctx.BigScale(mantissa, base, scaleExp)
	} else if scaleExp >= 0 {
		value = mantissa * p.radix.Pow(scaleExp)
	} else {
		value = mantissa / p.radix.Pow(-scaleExp)
	}
	p.result = float64(p.sign) * value
	p.state = pAccept
	return StatusAccepted
}

func logBase(v float64, base int) float64 {
	return math.Log(v) / math.Log(float64(base))
}

// Result returns the parsed value after Consume has returned
// StatusAccepted. Behaviour is undefined otherwise.
func (p *NumberParser) Result() float64 { return p.result }

// Err returns the error recorded after Consume has returned
// StatusRejected, nil otherwise.
func (p *NumberParser) Err() *Error { return p.err }

// LastSign returns the sign of the mantissa parsed (or attempted): +1, -1.
// Used by callers that need to report the offending sign on an error even
// when the numeric value itself was never fully computed (spec §7).
func (p *NumberParser) LastSign() int { return p.sign }

// Parse is a convenience one-shot wrapper around Reset/Consume/Result for
// callers that already have the whole digit string in memory (tests,
// reformat helpers). text must not include the trailing '/' separator.
func (p *NumberParser) Parse(text []byte) (float64, *Error) {
	p.Reset()
	for _, b := range text {
		if st := p.Consume(int(b)); st == StatusRejected {
			return 0, p.err
		}
	}
	if st := p.Consume(-1); st != StatusAccepted {
		return 0, p.err
	}
	return p.result, nil
}
