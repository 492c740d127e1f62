package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{35, "35"},
		{-3, "-3"},
		{0.5, "0.5"},
		{-0.5, "-0.5"},
		{1.0 / 3, "0.3333333333333333"},
		{0.30000000000000004, "0.30000000000000004"},
		{1e-6, "0.000001"},
		{1e-7, "1e-7"},
		{1.5e-7, "1.5e-7"},
		{-2.5e-10, "-2.5e-10"},
		{123456789012345680000, "123456789012345680000"},
		{1e21, "1e+21"},
		{1.25e22, "1.25e+22"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{5e-324, "5e-324"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0", 0},
		{"12", 12},
		{"-12", -12},
		{"+7", 7},
		{"5.", 5},
		{".5", 0.5},
		{"0.", 0},
		{"-0.25", -0.25},
		{"1e3", 1000},
		{"1.5e-7", 1.5e-7},
		{"1e+21", 1e21},
		{"1e", 1},
		{"12abc", 12},
		{"  42", 42},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"Infinity5", math.Inf(1)},
		{"1e400", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.in))
		})
	}
}

func TestParseNumberNaN(t *testing.T) {
	for _, in := range []string{"", "NaN", "abc", "-", ".", "inf", "infinity"} {
		t.Run(in, func(t *testing.T) {
			assert.True(t, math.IsNaN(ParseNumber(in)), "ParseNumber(%q) = %v", in, ParseNumber(in))
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, f := range []float64{1, -1, 0.1, 7.25, 1e-7, 3.14159e100, 1e21, 123456.789} {
		assert.Equal(t, f, ParseNumber(FormatNumber(f)), "value %v", f)
	}
}

func TestApply(t *testing.T) {
	assert.Equal(t, 7.0, Apply(OpAdd, 3, 4))
	assert.Equal(t, -1.0, Apply(OpSubtract, 3, 4))
	assert.Equal(t, 12.0, Apply(OpMultiply, 3, 4))
	assert.Equal(t, 0.75, Apply(OpDivide, 3, 4))
	assert.Equal(t, 4.0, Apply(OpNone, 3, 4))
	assert.True(t, math.IsInf(Apply(OpDivide, 1, 0), 1))
	assert.True(t, math.IsInf(Apply(OpDivide, -1, 0), -1))
	assert.True(t, math.IsNaN(Apply(OpDivide, 0, 0)))
}

func TestOperatorText(t *testing.T) {
	for _, op := range append([]Operator{OpNone}, Operators...) {
		text, err := op.MarshalText()
		assert.NoError(t, err)

		var back Operator
		assert.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, op, back)
	}

	var op Operator
	assert.Error(t, op.UnmarshalText([]byte("modulo")))
	assert.Equal(t, "operator(9)", Operator(9).String())
	assert.False(t, OpNone.Valid())
	assert.Equal(t, "×", OpMultiply.Symbol())
}
