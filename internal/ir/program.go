// Package ir is the middle-end program model: a scoped storage model over
// shared arenas, instructions grouped into basic blocks, and per-function
// control-flow graphs ready for dataflow analysis.
package ir

import (
	"github.com/QiuFeng54321/compiler-backend/internal/lattice"
	"github.com/QiuFeng54321/compiler-backend/internal/util"
)

// Program is the single long-lived root of the model. It owns the arena
// pools shared by every function, the global space namespace, the function
// namespace, and the constant-deduplication map. Everything else borrows
// from it; functions hold non-owning back-references.
type Program struct {
	SpacePool    *util.Pool[SpaceID, *Space]
	BlockPool    *util.Pool[BlockID, *CodeBlock]
	FunctionPool *util.Pool[FuncID, *Function]

	Globals   *util.NameMap[string, SpaceID, *Space]
	Functions *util.NameMap[string, FuncID, *Function]
	// Constants is keyed by Value.Key so identical literals share one
	// space.
	Constants *util.NameMap[string, SpaceID, *Space]
}

// NewProgram creates an empty program with fresh pools.
func NewProgram() *Program {
	spacePool := util.NewPool[SpaceID, *Space](0)
	blockPool := util.NewPool[BlockID, *CodeBlock](0)
	functionPool := util.NewPool[FuncID, *Function](0)
	return &Program{
		SpacePool:    spacePool,
		BlockPool:    blockPool,
		FunctionPool: functionPool,
		Globals:      util.NewNameMap[string](spacePool),
		Functions:    util.NewNameMap[string](functionPool),
		Constants:    util.NewNameMap[string](spacePool),
	}
}

// LookupSpace resolves a space logical id, whichever scope issued it.
func (p *Program) LookupSpace(id SpaceID) (*Space, bool) {
	return p.SpacePool.Get(id)
}

// LookupGlobal resolves a global by name.
func (p *Program) LookupGlobal(name string) (SpaceID, *Space, bool) {
	id, ok := p.Globals.GetNameID(name)
	if !ok {
		return 0, nil, false
	}
	return id, p.SpacePool.MustGet(id), true
}

// LookupOrInsertGlobal resolves a global by name, declaring one of
// unknown type when absent.
func (p *Program) LookupOrInsertGlobal(name string) (SpaceID, *Space) {
	if id, space, ok := p.LookupGlobal(name); ok {
		return id, space
	}
	return p.DeclareGlobal(name, nil)
}

// DeclareGlobal declares a named global space. dataType may be nil.
func (p *Program) DeclareGlobal(name string, dataType DataType) (SpaceID, *Space) {
	id, space := p.DeclareSpace(dataType, GlobalScope)
	p.Globals.Bind(name, id)
	return id, space
}

// DeclareSpace declares a nameless space in the given scope, recursively
// declaring member spaces for aggregate types.
func (p *Program) DeclareSpace(dataType DataType, scope Scope) (SpaceID, *Space) {
	return declareSpace(p.Globals, dataType, scope)
}

// LookupOrInsertConstant returns the space holding the given literal,
// allocating it on first sight. The space carries the concrete value as
// its abstract fact: constants are never unconstrained.
func (p *Program) LookupOrInsertConstant(dataType DataType, value Value) (SpaceID, *Space) {
	id, _ := p.Constants.GetIDOrInsert(value.Key(), func(SpaceID, util.Handle) *Space {
		var members []SpaceID
		switch v := value.(type) {
		case ArrayValue:
			members = v.Members
		case StructValue:
			members = v.Members
		}
		return &Space{
			Signature: NormalSignature{Type: dataType, Members: members},
			Scope:     GlobalScope,
			Value:     lattice.Of(value),
		}
	})
	return id, p.SpacePool.MustGet(id)
}

// LookupOrInsertFunction resolves a function by name, creating an
// undefined placeholder when absent. The new function's locals and blocks
// maps share this program's pools.
func (p *Program) LookupOrInsertFunction(name string) (FuncID, *Function) {
	id, _ := p.Functions.GetIDOrInsert(name, func(id FuncID, _ util.Handle) *Function {
		return NewFunction(p, name, id,
			util.NewNameMap[string](p.SpacePool),
			util.NewNameMap[string](p.BlockPool))
	})
	return id, p.FunctionPool.MustGet(id)
}

// declareSpace allocates a space and, for aggregates, its member spaces.
// Members are declared before the aggregate so their ids precede its own,
// and the member list is fixed at declaration time.
func declareSpace(m *util.NameMap[string, SpaceID, *Space], dataType DataType, scope Scope) (SpaceID, *Space) {
	var members []SpaceID
	switch t := dataType.(type) {
	case *ArrayType:
		members = make([]SpaceID, t.Len)
		for i := range members {
			members[i], _ = declareSpace(m, t.Elem, scope)
		}
	case *StructType:
		members = make([]SpaceID, len(t.Members))
		for i, memberType := range t.Members {
			members[i], _ = declareSpace(m, memberType, scope)
		}
	}
	space := NewSpace(dataType, members, scope)
	id, _ := m.InsertNameless(space)
	return id, space
}
