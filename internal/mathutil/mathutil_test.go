package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2_BankersRounding(t *testing.T) {
	// Exact half cases round to the even neighbour, not away from zero
	assert.Equal(t, 100.12, Round2(100.125))
	assert.Equal(t, 100.14, Round2(100.135))
	assert.Equal(t, 0.12, Round2(0.125))
	assert.Equal(t, -100.12, Round2(-100.125))

	// Non-boundary cases round normally
	assert.Equal(t, 100.13, Round2(100.126))
	assert.Equal(t, 6.67, Round2(6.6666667676767))
}

func TestArithmetic(t *testing.T) {
	assert.Equal(t, 701.72, Add(89.145, 612.57))
	assert.Equal(t, -523.42, Sub(89.145, 612.57))
	assert.Equal(t, 33588.63, Mul(34.87, 963.253))
	assert.Equal(t, 0.36, Div(19, 53))
}

func TestDiv_ByZero(t *testing.T) {
	assert.Equal(t, 0.0, Div(1, 0))
	assert.Equal(t, 0.0, Div(0, 0))
}

func TestWholePercentage(t *testing.T) {
	assert.Equal(t, 8, WholePercentage(10, 125))
	assert.Equal(t, 50, WholePercentage(2, 4))
	assert.Equal(t, 73, WholePercentage(16, 22))
	assert.Equal(t, 0, WholePercentage(10, 0))
}
