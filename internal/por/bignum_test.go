package por

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NumericContext_BigMantissaToDouble(t *testing.T) {
	ctx := NewNumericContext(true, RoundHalfEven)
	// base 30, digits [1, 2, 3] -> 1*900 + 2*30 + 3 = 963
	got := ctx.BigMantissaToDouble([]int{1, 2, 3}, 30)
	assert.Equal(t, 963.0, got)
}

func Test_NumericContext_BigScale(t *testing.T) {
	ctx := NewNumericContext(true, RoundHalfEven)
	assert.Equal(t, 900.0, ctx.BigScale(1, 30, 2))
	assert.InDelta(t, 1.0/900.0, ctx.BigScale(1, 30, -2), 1e-15)
}

func Test_NumericContext_BigExtractDigits(t *testing.T) {
	ctx := NewNumericContext(true, RoundHalfEven)
	digits, _ := ctx.BigExtractDigits(1.5, 30, 2)
	assert.Equal(t, []int{1, 15}, digits)
}
