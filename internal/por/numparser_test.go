package por

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func base30(t require.TestingT) *RadixSystem {
	r, err := NewRadixSystem(30, nil)
	require.NoError(t, err)
	return r
}

func Test_NumberParser_Zero(t *testing.T) {
	p := NewNumberParser(base30(t), nil)
	v, err := p.Parse([]byte("0"))
	require.Nil(t, err)
	assert.Equal(t, 0.0, v)
}

func Test_NumberParser_One(t *testing.T) {
	p := NewNumberParser(base30(t), nil)
	v, err := p.Parse([]byte("1"))
	require.Nil(t, err)
	assert.Equal(t, 1.0, v)
}

func Test_NumberParser_Fraction(t *testing.T) {
	p := NewNumberParser(base30(t), nil)
	v, err := p.Parse([]byte("0.F"))
	require.Nil(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func Test_NumberParser_SignedExponent_NearMax(t *testing.T) {
	p := NewNumberParser(base30(t), nil)
	v, err := p.Parse([]byte("1.4ACBDFHGA0+6S"))
	require.Nil(t, err, "expected a finite value near DBL_MAX, got error %v", err)
	assert.True(t, v > 1e308 && !math.IsInf(v, 0))
}

func Test_NumberParser_Overflow(t *testing.T) {
	p := NewNumberParser(base30(t), nil)
	_, err := p.Parse([]byte("1.4ACBDFHGB0+6S"))
	require.NotNil(t, err)
	assert.Equal(t, ErrOverflow, err.Kind)
}

func Test_NumberParser_ExponentWithoutMarkerLetter(t *testing.T) {
	// Open question from spec §9: "123-9" must parse as mantissa "123"
	// with exponent -9 even with no fractional part and no marker letter
	// before the sign. Digits are base 30, so "123" is 1*900 + 2*30 + 3 = 963.
	r := base30(t)
	p := NewNumberParser(r, nil)
	v, err := p.Parse([]byte("123-9"))
	require.Nil(t, err)
	want := 963.0 * math.Pow(30, -9)
	assert.InDelta(t, want, v, math.Abs(want)*1e-9)
}

func Test_NumberParser_SyntaxErrors(t *testing.T) {
	r := base30(t)
	cases := []string{"", ".", "+", "-", "1.2.3", "+-1"}
	for _, c := range cases {
		p := NewNumberParser(r, nil)
		_, err := p.Parse([]byte(c))
		assert.NotNil(t, err, "expected syntax error for %q", c)
	}
}

func Test_NumberParser_BufferOverflow(t *testing.T) {
	r := base30(t)
	p := NewNumberParser(r, nil)
	big := make([]byte, defaultScratchLimit+10)
	for i := range big {
		big[i] = '1'
	}
	_, err := p.Parse(big)
	require.NotNil(t, err)
	assert.Equal(t, ErrBuffer, err.Kind)
}

func Test_NumberParser_IntegerRoundTrip(t *testing.T) {
	r := base30(t)
	f := NewNumberFormatter(r, nil, r.DefaultPrecision())
	p := NewNumberParser(r, nil)

	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Int32().Draw(t, "v")
		text := f.FormatInt(int64(v))
		got, err := p.Parse(text)
		require.Nil(t, err)
		assert.Equal(t, float64(v), got)
	})
}
