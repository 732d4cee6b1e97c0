package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvalIntBinary(t *testing.T) {
	cases := []struct {
		op   BinaryOp
		l, r int64
		want int64
	}{
		{Add, 2, 3, 5},
		{Sub, 2, 3, -1},
		{Mul, 4, 5, 20},
		{Div, 7, 2, 3},
		{And, 0b1100, 0b1010, 0b1000},
		{Or, 0b1100, 0b1010, 0b1110},
		{Xor, 0b1100, 0b1010, 0b0110},
	}
	for _, c := range cases {
		got, err := EvalBinary(c.op, IntValue{Value: c.l}, IntValue{Value: c.r})
		assert.NoError(t, err)
		assert.Equal(t, IntValue{Value: c.want}, got, "%d %s %d", c.l, c.op, c.r)
	}
}

func TestEvalIntOverflowWraps(t *testing.T) {
	got, err := EvalBinary(Add, IntValue{Value: math.MaxInt64}, IntValue{Value: 1})
	assert.NoError(t, err)
	assert.Equal(t, IntValue{Value: math.MinInt64}, got)
}

func TestEvalIntDivisionByZero(t *testing.T) {
	_, err := EvalBinary(Div, IntValue{Value: 1}, IntValue{Value: 0})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestEvalFloatBinary(t *testing.T) {
	got, err := EvalBinary(Mul, FloatValue{Value: 1.5}, FloatValue{Value: 2.0})
	assert.NoError(t, err)
	assert.Equal(t, FloatValue{Value: 3.0}, got)

	// Float division by zero follows IEEE-754 semantics.
	got, err = EvalBinary(Div, FloatValue{Value: 1.0}, FloatValue{Value: 0.0})
	assert.NoError(t, err)
	assert.True(t, math.IsInf(got.(FloatValue).Value, 1))
}

func TestEvalFloatRejectsBitwise(t *testing.T) {
	_, err := EvalBinary(Xor, FloatValue{Value: 1.0}, FloatValue{Value: 2.0})
	assert.Error(t, err)
}

func TestEvalBoolBinaryIsLogical(t *testing.T) {
	got, err := EvalBinary(And, BoolValue{Value: true}, BoolValue{Value: false})
	assert.NoError(t, err)
	assert.Equal(t, BoolValue{Value: false}, got)

	got, err = EvalBinary(Xor, BoolValue{Value: true}, BoolValue{Value: false})
	assert.NoError(t, err)
	assert.Equal(t, BoolValue{Value: true}, got)
}

func TestEvalBinaryMismatchedTypes(t *testing.T) {
	_, err := EvalBinary(Add, IntValue{Value: 1}, FloatValue{Value: 2.0})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mismatched")
}

func TestEvalUnary(t *testing.T) {
	got, err := EvalUnary(Neg, IntValue{Value: 5})
	assert.NoError(t, err)
	assert.Equal(t, IntValue{Value: -5}, got)

	got, err = EvalUnary(Not, IntValue{Value: 0})
	assert.NoError(t, err)
	assert.Equal(t, IntValue{Value: -1}, got, "Integer not is bitwise complement")

	got, err = EvalUnary(Not, BoolValue{Value: true})
	assert.NoError(t, err)
	assert.Equal(t, BoolValue{Value: false}, got)

	got, err = EvalUnary(Unit, FloatValue{Value: 1.5})
	assert.NoError(t, err)
	assert.Equal(t, FloatValue{Value: 1.5}, got, "Unit is the identity")

	_, err = EvalUnary(Neg, BoolValue{Value: true})
	assert.Error(t, err)
}

func TestEvalCompare(t *testing.T) {
	cases := []struct {
		cmp  CompareType
		l, r int64
		want bool
	}{
		{Less, 1, 2, true},
		{Greater, 1, 2, false},
		{Eq, 2, 2, true},
		{NotEq, 2, 2, false},
		{LessEq, 2, 2, true},
		{GreaterEq, 1, 2, false},
	}
	for _, c := range cases {
		got, err := EvalCompare(c.cmp, IntValue{Value: c.l}, IntValue{Value: c.r})
		assert.NoError(t, err)
		assert.Equal(t, c.want, got, "%d %s %d", c.l, c.cmp, c.r)
	}
}

func TestEvalCompareBoolsSupportEqualityOnly(t *testing.T) {
	got, err := EvalCompare(Eq, BoolValue{Value: true}, BoolValue{Value: true})
	assert.NoError(t, err)
	assert.True(t, got)

	_, err = EvalCompare(Less, BoolValue{Value: true}, BoolValue{Value: false})
	assert.Error(t, err)
}

func TestValueKeysCanonical(t *testing.T) {
	assert.Equal(t, IntValue{Value: 42}.Key(), IntValue{Value: 42}.Key())
	assert.NotEqual(t, IntValue{Value: 1}.Key(), FloatValue{Value: 1.0}.Key(),
		"Int and float literals never collide")
	assert.NotEqual(t, IntValue{Value: 0}.Key(), BoolValue{Value: false}.Key())

	// Negative zero and zero are distinct float constants.
	assert.NotEqual(t, FloatValue{Value: math.Copysign(0, -1)}.Key(),
		FloatValue{Value: 0}.Key())
}
