package ir

import (
	"fmt"

	"github.com/QiuFeng54321/compiler-backend/internal/dataflow"
	"github.com/QiuFeng54321/compiler-backend/internal/diag"
	"github.com/QiuFeng54321/compiler-backend/internal/lattice"
	"github.com/QiuFeng54321/compiler-backend/internal/util"
)

// FlowGraph is the CFG shape every function carries.
type FlowGraph = dataflow.Graph[*CodeBlockAnalysisNode, *CodeBlockGraphWeight]

type markerRef struct {
	marker *AddressMarker
	pos    diag.Position
}

// Function owns a local space namespace and a block namespace, both
// backed by the program-wide pools, plus the CFG over its blocks. The
// program back-reference is non-owning: the Program is the single root of
// the model and the function only uses it for lookups.
type Function struct {
	Name       string
	ID         FuncID
	Params     []SpaceID
	ReturnType DataType
	Locals     *util.NameMap[string, SpaceID, *Space]
	Blocks     *util.NameMap[string, BlockID, *CodeBlock]
	Graph      *FlowGraph

	Declared bool
	Extern   bool
	Defined  bool

	owner *Program

	current    *CodeBlock
	labelOrder []BlockID
	entry      BlockID
	hasEntry   bool
	markers    []markerRef
}

// NewFunction is called by Program.LookupOrInsertFunction; the locals and
// blocks maps must share the program's pools.
func NewFunction(owner *Program, name string, id FuncID,
	locals *util.NameMap[string, SpaceID, *Space],
	blocks *util.NameMap[string, BlockID, *CodeBlock]) *Function {
	return &Function{
		Name:       name,
		ID:         id,
		ReturnType: &VoidType{},
		Locals:     locals,
		Blocks:     blocks,
		Graph:      dataflow.NewGraph[*CodeBlockAnalysisNode](NewCodeBlockGraphWeight()),
		owner:      owner,
	}
}

// Program returns the owning program.
func (f *Function) Program() *Program {
	return f.owner
}

// LookupSpace resolves a space logical id through the shared pool. Ids
// issued to any scope resolve here because all maps share one pool.
func (f *Function) LookupSpace(id SpaceID) (*Space, bool) {
	if _, ok := f.Locals.GetIDFromNameID(id); ok {
		return f.Locals.Pool().Get(id)
	}
	return f.owner.LookupSpace(id)
}

// LookupOrInsertSpace resolves name with shadowing semantics: an existing
// local wins, then an existing global, and an unknown name becomes a new
// local of unknown type.
func (f *Function) LookupOrInsertSpace(name string) (SpaceID, *Space) {
	if id, ok := f.Locals.GetNameID(name); ok {
		return id, f.Locals.Pool().MustGet(id)
	}
	if id, space, ok := f.owner.LookupGlobal(name); ok {
		return id, space
	}
	return f.DeclareLocal(name, nil)
}

// DeclareLocal declares a named local space. dataType may be nil.
func (f *Function) DeclareLocal(name string, dataType DataType) (SpaceID, *Space) {
	id, space := f.DeclareSpace(dataType)
	f.Locals.Bind(name, id)
	return id, space
}

// DeclareSpace declares a nameless local space, recursively declaring
// member spaces for aggregate types.
func (f *Function) DeclareSpace(dataType DataType) (SpaceID, *Space) {
	return declareSpace(f.Locals, dataType, LocalScope(f.ID))
}

// DeclareOffsetSpace declares a space addressing a sub-object of base.
func (f *Function) DeclareOffsetSpace(base SpaceID, offset int, dataType DataType) (SpaceID, *Space) {
	space := &Space{
		Signature: OffsetSignature{Base: base, Offset: offset, Type: dataType},
		Scope:     LocalScope(f.ID),
		Value:     lattice.Top[Value](),
	}
	id, _ := f.Locals.InsertNameless(space)
	return id, space
}

// LookupOrInsertBlock resolves or creates a block by name. A new block is
// empty with a fall-through placeholder terminator, so jumps may target it
// before its body is emitted.
func (f *Function) LookupOrInsertBlock(name string) (BlockID, *CodeBlock) {
	id, _ := f.Blocks.GetIDOrInsert(name, func(id BlockID, _ util.Handle) *CodeBlock {
		return NewCodeBlock(id, BlockNormal)
	})
	return id, f.Blocks.Pool().MustGet(id)
}

// Marker returns an address marker for the named block, creating the
// block lazily. pos is the source location reported if the label is never
// declared.
func (f *Function) Marker(name string, pos diag.Position) *AddressMarker {
	id, _ := f.LookupOrInsertBlock(name)
	marker := &AddressMarker{Block: id}
	f.markers = append(f.markers, markerRef{marker: marker, pos: pos})
	return marker
}

// Label declares the named block and makes it the current emission target.
// The first labeled block becomes the function entry.
func (f *Function) Label(name string) *CodeBlock {
	id, block := f.LookupOrInsertBlock(name)
	if !block.declared {
		block.declared = true
		f.labelOrder = append(f.labelOrder, id)
	}
	if !f.hasEntry {
		f.hasEntry = true
		f.entry = id
	}
	f.current = block
	return block
}

// currentBlock panics when no label is active: emitting outside a block
// is a front-end bug, not a user error.
func (f *Function) currentBlock() *CodeBlock {
	if f.current == nil {
		panic(fmt.Sprintf("ir: emit into function %q with no current block", f.Name))
	}
	return f.current
}

func (f *Function) emitAssign(dest SpaceID, op Operation) *AssignInstr {
	instr := &AssignInstr{Dest: dest, Op: op, Info: NewInfo()}
	f.currentBlock().Append(instr)
	return instr
}

// EmitBinary appends dest = left op right.
func (f *Function) EmitBinary(dest SpaceID, op BinaryOp, left, right SpaceID) *AssignInstr {
	return f.emitAssign(dest, BinaryOperation{Op: op, Left: left, Right: right})
}

// EmitUnary appends dest = op operand.
func (f *Function) EmitUnary(dest SpaceID, op UnaryOp, operand SpaceID) *AssignInstr {
	return f.emitAssign(dest, UnaryOperation{Op: op, Operand: operand})
}

// EmitCompare appends dest = left cmp right.
func (f *Function) EmitCompare(dest SpaceID, cmp CompareType, left, right SpaceID) *AssignInstr {
	return f.emitAssign(dest, CompareOperation{Cmp: cmp, Left: left, Right: right})
}

// EmitCall appends dest = call fn.
func (f *Function) EmitCall(dest SpaceID, fn FuncID) *AssignInstr {
	return f.emitAssign(dest, CallOperation{Function: fn})
}

// EmitStore appends store dest, src.
func (f *Function) EmitStore(dest, src SpaceID) *CommandInstr {
	instr := &CommandInstr{Op: StoreCommand{Dest: dest, Src: src}, Info: NewInfo()}
	f.currentBlock().Append(instr)
	return instr
}

// EmitJump terminates the current block with an unconditional jump.
func (f *Function) EmitJump(target *AddressMarker) {
	f.currentBlock().SetTerm(UnconditionalJump{Target: target})
}

// EmitBranch terminates the current block with a conditional branch.
func (f *Function) EmitBranch(cond SpaceID, ifTrue, ifFalse *AddressMarker) {
	f.currentBlock().SetTerm(BranchJump{Cond: cond, True: ifTrue, False: ifFalse})
}

// EmitRet terminates the current block returning value.
func (f *Function) EmitRet(value SpaceID) {
	f.currentBlock().SetTerm(RetJump{Value: value})
}

// EmitEnd terminates the current block exiting the function.
func (f *Function) EmitEnd() {
	f.currentBlock().SetTerm(EndJump{})
}

// EntryNode returns the analysis node of the entry block. Finalize must
// have succeeded first, and the function must have at least one block.
func (f *Function) EntryNode() *CodeBlockAnalysisNode {
	if !f.Defined {
		panic(fmt.Sprintf("ir: entry of unfinalized function %q", f.Name))
	}
	n, ok := f.Graph.Node(int64(f.entry))
	if !ok {
		panic(fmt.Sprintf("ir: entry of empty function %q", f.Name))
	}
	return n
}

// BlockOrder returns the ids of declared blocks in label order.
func (f *Function) BlockOrder() []BlockID {
	return f.labelOrder
}

// Finalize checks every address marker against the declared labels,
// assigns declaration numbers, and builds the CFG. A dangling label aborts
// the function build and is reported against the jump that referenced it.
func (f *Function) Finalize() []diag.BuildError {
	var errs []diag.BuildError
	for _, ref := range f.markers {
		block := f.Blocks.Pool().MustGet(ref.marker.Block)
		if block.declared {
			continue
		}
		name, _ := f.Blocks.NameOf(ref.marker.Block)
		errs = append(errs, diag.NewError(diag.ErrDanglingLabel,
			fmt.Sprintf("jump to undeclared label '%s'", name), ref.pos).
			WithLength(len(name)).
			WithNote(fmt.Sprintf("in function '%s'", f.Name)).
			WithHelp("declare the label before the end of the function").
			Build())
	}
	if len(errs) > 0 {
		return errs
	}

	weight := NewCodeBlockGraphWeight()
	for _, id := range f.labelOrder {
		block := f.Blocks.Pool().MustGet(id)
		for _, instr := range block.Instrs {
			if assign, ok := instr.(*AssignInstr); ok {
				weight.recordAssignment(assign)
			}
		}
	}

	f.Graph = dataflow.NewGraph[*CodeBlockAnalysisNode](weight)
	nodes := make(map[BlockID]*CodeBlockAnalysisNode, len(f.labelOrder))
	for _, id := range f.labelOrder {
		node := &CodeBlockAnalysisNode{Block: f.Blocks.Pool().MustGet(id)}
		nodes[id] = node
		f.Graph.AddNode(node)
	}
	for i, id := range f.labelOrder {
		block := f.Blocks.Pool().MustGet(id)
		switch op := block.Term.Op.(type) {
		case NextJump:
			if i+1 < len(f.labelOrder) {
				f.Graph.AddEdge(nodes[id], nodes[f.labelOrder[i+1]])
			} else {
				block.Kind = BlockExit
			}
		case UnconditionalJump:
			f.Graph.AddEdge(nodes[id], nodes[op.Target.Block])
		case BranchJump:
			f.Graph.AddEdge(nodes[id], nodes[op.True.Block])
			f.Graph.AddEdge(nodes[id], nodes[op.False.Block])
		case EndJump, RetJump:
			block.Kind = BlockExit
		}
	}
	if f.hasEntry {
		f.Blocks.Pool().MustGet(f.entry).Kind = BlockEntry
	}

	f.Defined = true
	return nil
}
