package por

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func Test_NumberFormatter_Zero(t *testing.T) {
	r := base30(t)
	f := NewNumberFormatter(r, nil, 11)
	assert.Equal(t, "0", string(f.FormatDouble(0.0)))
}

func Test_NumberFormatter_One(t *testing.T) {
	r := base30(t)
	f := NewNumberFormatter(r, nil, 11)
	assert.Equal(t, "1", string(f.FormatDouble(1.0)))
}

func Test_NumberFormatter_Fraction(t *testing.T) {
	r := base30(t)
	f := NewNumberFormatter(r, nil, 11)
	assert.Equal(t, "0.F", string(f.FormatDouble(0.5)))
}

func Test_NumberFormatter_Reformat_NearMaxUnchanged(t *testing.T) {
	r := base30(t)
	f := NewNumberFormatter(r, nil, 11)
	text := []byte("1.4ACBDFHGA0+6S")
	got := f.Reformat(text, len(text), 11)
	assert.Equal(t, string(text), string(got))
}

func Test_NumberFormatter_DoubleRoundTrip(t *testing.T) {
	r := base30(t)
	prec := r.DefaultPrecision()
	f := NewNumberFormatter(r, nil, prec)
	p := NewNumberParser(r, nil)

	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Float64Range(-1e250, 1e250).Draw(t, "v")
		if v == 0 {
			return
		}
		text := f.FormatDouble(v)
		got, err := p.Parse(text)
		require.Nil(t, err, "parse of %q failed: %v", text, err)
		// Within the radix's representable ULP at this precision.
		rel := math.Abs(got-v) / math.Abs(v)
		assert.LessOrEqual(t, rel, 1e-9, "round-trip mismatch for %v -> %q -> %v", v, text, got)
	})
}

func Test_NumberFormatter_IdempotentReformat(t *testing.T) {
	r := base30(t)
	pHigh := r.DefaultPrecision()
	fHigh := NewNumberFormatter(r, nil, pHigh)

	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Float64Range(-1e100, 1e100).Draw(t, "v")
		if v == 0 {
			return
		}
		pLow := rapid.IntRange(1, pHigh).Draw(t, "pLow")

		textHigh := fHigh.FormatDouble(v)
		reformatted := fHigh.Reformat(append([]byte(nil), textHigh...), len(textHigh), pLow)

		fLow := NewNumberFormatter(r, nil, pLow)
		direct := fLow.FormatDouble(v)

		assert.Equal(t, string(direct), string(reformatted),
			"reformat(format(v,high),low) must equal format(v,low) for v=%v", v)
	})
}

func Test_NumberFormatter_FormatInt(t *testing.T) {
	r := base30(t)
	f := NewNumberFormatter(r, nil, 11)
	assert.Equal(t, "0", string(f.FormatInt(0)))
	assert.Equal(t, "1", string(f.FormatInt(1)))
	assert.Equal(t, "-1", string(f.FormatInt(-1)))
}
