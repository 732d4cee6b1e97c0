package ir

// BinaryOp enumerates the two-operand arithmetic and bitwise operators.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	And
	Or
	Xor
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case And:
		return "&"
	case Or:
		return "|"
	case Xor:
		return "^"
	}
	return "?"
}

// UnaryOp enumerates the single-operand operators. Unit is the identity
// move, used for plain copies.
type UnaryOp int

const (
	Not UnaryOp = iota
	Neg
	Unit
)

func (op UnaryOp) String() string {
	switch op {
	case Not:
		return "!"
	case Neg:
		return "-"
	case Unit:
		return ""
	}
	return "?"
}

// CompareType enumerates the comparison operators.
type CompareType int

const (
	Less CompareType = iota
	Greater
	Eq
	NotEq
	LessEq
	GreaterEq
)

func (cmp CompareType) String() string {
	switch cmp {
	case Less:
		return "<"
	case Greater:
		return ">"
	case Eq:
		return "=="
	case NotEq:
		return "!="
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	}
	return "?"
}
