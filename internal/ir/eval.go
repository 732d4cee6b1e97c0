package ir

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned when a literal integer division has a zero
// divisor. Callers match it with errors.Is to pick a diagnostic code.
var ErrDivisionByZero = errors.New("division by zero")

// Literal evaluation rules for every operator variant.
//
// Semantics: integer arithmetic wraps in two's complement; integer division
// or modulo by zero is a reported evaluation error; float arithmetic
// follows IEEE-754 (division by zero yields an infinity); bitwise operators
// on booleans are logical; mismatched operand types are evaluation errors.
// Evaluation errors are ordinary error values so a front end can attach
// them to a source location.

// EvalBinary applies op to two literal operands.
func EvalBinary(op BinaryOp, left, right Value) (Value, error) {
	switch l := left.(type) {
	case IntValue:
		r, ok := right.(IntValue)
		if !ok {
			return nil, typeMismatch(op.String(), left, right)
		}
		return evalIntBinary(op, l.Value, r.Value)
	case FloatValue:
		r, ok := right.(FloatValue)
		if !ok {
			return nil, typeMismatch(op.String(), left, right)
		}
		return evalFloatBinary(op, l.Value, r.Value)
	case BoolValue:
		r, ok := right.(BoolValue)
		if !ok {
			return nil, typeMismatch(op.String(), left, right)
		}
		return evalBoolBinary(op, l.Value, r.Value)
	}
	return nil, fmt.Errorf("operator %s is not defined on %s", op, left.Type())
}

func evalIntBinary(op BinaryOp, l, r int64) (Value, error) {
	switch op {
	case Add:
		return IntValue{Value: l + r}, nil
	case Sub:
		return IntValue{Value: l - r}, nil
	case Mul:
		return IntValue{Value: l * r}, nil
	case Div:
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return IntValue{Value: l / r}, nil
	case And:
		return IntValue{Value: l & r}, nil
	case Or:
		return IntValue{Value: l | r}, nil
	case Xor:
		return IntValue{Value: l ^ r}, nil
	}
	return nil, fmt.Errorf("unknown binary operator %d", op)
}

func evalFloatBinary(op BinaryOp, l, r float64) (Value, error) {
	switch op {
	case Add:
		return FloatValue{Value: l + r}, nil
	case Sub:
		return FloatValue{Value: l - r}, nil
	case Mul:
		return FloatValue{Value: l * r}, nil
	case Div:
		return FloatValue{Value: l / r}, nil
	}
	return nil, fmt.Errorf("operator %s is not defined on f64", op)
}

func evalBoolBinary(op BinaryOp, l, r bool) (Value, error) {
	switch op {
	case And:
		return BoolValue{Value: l && r}, nil
	case Or:
		return BoolValue{Value: l || r}, nil
	case Xor:
		return BoolValue{Value: l != r}, nil
	}
	return nil, fmt.Errorf("operator %s is not defined on bool", op)
}

// EvalUnary applies op to a literal operand.
func EvalUnary(op UnaryOp, operand Value) (Value, error) {
	switch op {
	case Unit:
		return operand, nil
	case Neg:
		switch v := operand.(type) {
		case IntValue:
			return IntValue{Value: -v.Value}, nil
		case FloatValue:
			return FloatValue{Value: -v.Value}, nil
		}
	case Not:
		switch v := operand.(type) {
		case IntValue:
			return IntValue{Value: ^v.Value}, nil
		case BoolValue:
			return BoolValue{Value: !v.Value}, nil
		}
	}
	return nil, fmt.Errorf("operator %s is not defined on %s", op, operand.Type())
}

// EvalCompare applies cmp to two literal operands.
func EvalCompare(cmp CompareType, left, right Value) (bool, error) {
	switch l := left.(type) {
	case IntValue:
		r, ok := right.(IntValue)
		if !ok {
			return false, typeMismatch(cmp.String(), left, right)
		}
		return compareOrdered(cmp, l.Value, r.Value), nil
	case FloatValue:
		r, ok := right.(FloatValue)
		if !ok {
			return false, typeMismatch(cmp.String(), left, right)
		}
		return compareOrdered(cmp, l.Value, r.Value), nil
	case BoolValue:
		r, ok := right.(BoolValue)
		if !ok {
			return false, typeMismatch(cmp.String(), left, right)
		}
		switch cmp {
		case Eq:
			return l.Value == r.Value, nil
		case NotEq:
			return l.Value != r.Value, nil
		}
		return false, fmt.Errorf("comparison %s is not defined on bool", cmp)
	}
	return false, fmt.Errorf("comparison %s is not defined on %s", cmp, left.Type())
}

func compareOrdered[T int64 | float64](cmp CompareType, l, r T) bool {
	switch cmp {
	case Less:
		return l < r
	case Greater:
		return l > r
	case Eq:
		return l == r
	case NotEq:
		return l != r
	case LessEq:
		return l <= r
	case GreaterEq:
		return l >= r
	}
	return false
}

func typeMismatch(op string, left, right Value) error {
	return fmt.Errorf("operator %s on mismatched types %s and %s",
		op, left.Type(), right.Type())
}
