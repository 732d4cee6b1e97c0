package ir

import (
	"fmt"
	"strings"
)

// DataType describes the declared type of a storage location. A nil
// DataType means the type is unknown and will be inferred later.
type DataType interface {
	String() string
	Equal(other DataType) bool
}

type IntType struct{}

type FloatType struct{}

type BoolType struct{}

type VoidType struct{}

// ArrayType is a fixed-length homogeneous aggregate. Declaring a space of
// this type allocates Len member spaces of type Elem.
type ArrayType struct {
	Elem DataType
	Len  int
}

// StructType is a heterogeneous aggregate. Declaring a space of this type
// allocates one member space per declared member, in order.
type StructType struct {
	Members []DataType
}

func (*IntType) String() string   { return "i64" }
func (*FloatType) String() string { return "f64" }
func (*BoolType) String() string  { return "bool" }
func (*VoidType) String() string  { return "void" }

func (t *ArrayType) String() string {
	return fmt.Sprintf("[%d]%s", t.Len, t.Elem)
}

func (t *StructType) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, m := range t.Members {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.String())
	}
	sb.WriteString("}")
	return sb.String()
}

func (*IntType) Equal(other DataType) bool {
	_, ok := other.(*IntType)
	return ok
}

func (*FloatType) Equal(other DataType) bool {
	_, ok := other.(*FloatType)
	return ok
}

func (*BoolType) Equal(other DataType) bool {
	_, ok := other.(*BoolType)
	return ok
}

func (*VoidType) Equal(other DataType) bool {
	_, ok := other.(*VoidType)
	return ok
}

func (t *ArrayType) Equal(other DataType) bool {
	o, ok := other.(*ArrayType)
	return ok && t.Len == o.Len && t.Elem.Equal(o.Elem)
}

func (t *StructType) Equal(other DataType) bool {
	o, ok := other.(*StructType)
	if !ok || len(t.Members) != len(o.Members) {
		return false
	}
	for i, m := range t.Members {
		if !m.Equal(o.Members[i]) {
			return false
		}
	}
	return true
}
