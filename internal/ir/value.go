package ir

import (
	"fmt"
	"math"
	"strings"
)

// Value is a concrete literal value. Key is a canonical encoding used to
// deduplicate constants: two values with the same key are the same
// constant and share one space.
type Value interface {
	Type() DataType
	Key() string
	Equal(other Value) bool
	String() string
}

type IntValue struct {
	Value int64
}

type FloatValue struct {
	Value float64
}

type BoolValue struct {
	Value bool
}

// ArrayValue and StructValue reference their element spaces by logical id.
type ArrayValue struct {
	Members []SpaceID
}

type StructValue struct {
	Members []SpaceID
}

type VoidValue struct{}

func (v IntValue) Type() DataType   { return &IntType{} }
func (v FloatValue) Type() DataType { return &FloatType{} }
func (v BoolValue) Type() DataType  { return &BoolType{} }
func (v VoidValue) Type() DataType  { return &VoidType{} }

func (v ArrayValue) Type() DataType {
	return &ArrayType{Elem: nil, Len: len(v.Members)}
}

func (v StructValue) Type() DataType {
	return &StructType{Members: make([]DataType, len(v.Members))}
}

func (v IntValue) Key() string   { return fmt.Sprintf("i:%d", v.Value) }
func (v FloatValue) Key() string { return fmt.Sprintf("f:%x", math.Float64bits(v.Value)) }
func (v BoolValue) Key() string  { return fmt.Sprintf("b:%t", v.Value) }
func (v VoidValue) Key() string  { return "void" }

func (v ArrayValue) Key() string  { return memberKey("a", v.Members) }
func (v StructValue) Key() string { return memberKey("s", v.Members) }

func memberKey(prefix string, members []SpaceID) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, m := range members {
		fmt.Fprintf(&sb, ":%d", m)
	}
	return sb.String()
}

func (v IntValue) Equal(other Value) bool {
	o, ok := other.(IntValue)
	return ok && v.Value == o.Value
}

func (v FloatValue) Equal(other Value) bool {
	o, ok := other.(FloatValue)
	return ok && math.Float64bits(v.Value) == math.Float64bits(o.Value)
}

func (v BoolValue) Equal(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && v.Value == o.Value
}

func (v VoidValue) Equal(other Value) bool {
	_, ok := other.(VoidValue)
	return ok
}

func (v ArrayValue) Equal(other Value) bool {
	o, ok := other.(ArrayValue)
	return ok && v.Key() == o.Key()
}

func (v StructValue) Equal(other Value) bool {
	o, ok := other.(StructValue)
	return ok && v.Key() == o.Key()
}

func (v IntValue) String() string   { return fmt.Sprintf("%d", v.Value) }
func (v FloatValue) String() string { return fmt.Sprintf("%g", v.Value) }
func (v BoolValue) String() string  { return fmt.Sprintf("%t", v.Value) }
func (v VoidValue) String() string  { return "void" }

func (v ArrayValue) String() string  { return memberKey("array", v.Members) }
func (v StructValue) String() string { return memberKey("struct", v.Members) }
