package ir

import (
	"fmt"

	"github.com/QiuFeng54321/compiler-backend/internal/lattice"
)

// ScopeKind distinguishes global from function-local storage.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeLocal
)

// Scope records which namespace a space belongs to. A local scope names
// its owning function.
type Scope struct {
	Kind  ScopeKind
	Owner FuncID
}

// GlobalScope is the scope of program-level spaces and constants.
var GlobalScope = Scope{Kind: ScopeGlobal}

// LocalScope returns the scope of spaces owned by the given function.
func LocalScope(owner FuncID) Scope {
	return Scope{Kind: ScopeLocal, Owner: owner}
}

func (s Scope) String() string {
	if s.Kind == ScopeGlobal {
		return "global"
	}
	return fmt.Sprintf("local(f%d)", s.Owner)
}

// Signature describes how a space is laid out. A Normal signature is a
// directly declared location; an Offset signature addresses a sub-object
// of a base space. Member lists are populated once at declaration time and
// are immutable afterwards.
type Signature interface {
	DeclaredType() DataType
	MemberIDs() []SpaceID
	String() string
}

type NormalSignature struct {
	// Type is nil for spaces whose type is not yet known.
	Type    DataType
	Members []SpaceID
}

type OffsetSignature struct {
	Base    SpaceID
	Offset  int
	Type    DataType
	Members []SpaceID
}

func (s NormalSignature) DeclaredType() DataType { return s.Type }
func (s NormalSignature) MemberIDs() []SpaceID   { return s.Members }

func (s OffsetSignature) DeclaredType() DataType { return s.Type }
func (s OffsetSignature) MemberIDs() []SpaceID   { return s.Members }

func (s NormalSignature) String() string {
	if s.Type == nil {
		return "unknown"
	}
	return s.Type.String()
}

func (s OffsetSignature) String() string {
	return fmt.Sprintf("s%d.%d", s.Base, s.Offset)
}

// Space is one storage location: a variable, an aggregate member, or a
// deduplicated constant. Value is the abstract single-value fact attached
// to it: Top for unconstrained locations, a concrete value for constants.
type Space struct {
	Signature Signature
	Scope     Scope
	Value     lattice.Flat[Value]
}

// NewSpace returns an unconstrained space. dataType may be nil.
func NewSpace(dataType DataType, members []SpaceID, scope Scope) *Space {
	return &Space{
		Signature: NormalSignature{Type: dataType, Members: members},
		Scope:     scope,
		Value:     lattice.Top[Value](),
	}
}
