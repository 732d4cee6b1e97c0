package ir

import (
	"github.com/QiuFeng54321/compiler-backend/internal/lattice"
	"github.com/QiuFeng54321/compiler-backend/internal/util"
)

// BlockKind tags a block's structural role in the CFG.
type BlockKind int

const (
	BlockNormal BlockKind = iota
	BlockEntry
	BlockExit
)

func (k BlockKind) String() string {
	switch k {
	case BlockEntry:
		return "entry"
	case BlockExit:
		return "exit"
	}
	return "normal"
}

// CodeBlock is an ordered sequence of instructions ending in exactly one
// control-transfer instruction. Instrs is immutable once the owning
// function is finalized. ReachIn and ReachOut hold the converged
// reaching-definitions facts after the solver runs.
type CodeBlock struct {
	ID     BlockID
	Kind   BlockKind
	Instrs []Instr
	Term   *JumpInstr

	ReachIn  *lattice.BitVector
	ReachOut *lattice.BitVector

	// declared is set once the block's label appears in the builder
	// stream. A block that is only ever the target of a marker remains
	// undeclared and is reported as a dangling label at finalize.
	declared bool
}

// NewCodeBlock returns an empty block with a fall-through placeholder
// terminator, so jumps may reference it before its body is emitted.
func NewCodeBlock(id BlockID, kind BlockKind) *CodeBlock {
	return &CodeBlock{
		ID:   id,
		Kind: kind,
		Term: &JumpInstr{Op: NextJump{}, Info: NewInfo()},
	}
}

// Append adds an instruction to the block body.
func (b *CodeBlock) Append(instr Instr) {
	b.Instrs = append(b.Instrs, instr)
}

// SetTerm replaces the block terminator.
func (b *CodeBlock) SetTerm(op JumpOperation) {
	b.Term = &JumpInstr{Op: op, Info: NewInfo()}
}

// Declared reports whether the block's label ever appeared.
func (b *CodeBlock) Declared() bool {
	return b.declared
}

// CodeBlockAnalysisNode adapts a block to the dataflow graph: it carries
// the block's graph identity and exposes the lattice-fact slots the
// solver reads and writes.
type CodeBlockAnalysisNode struct {
	Block *CodeBlock
}

// ID implements gonum's graph.Node keyed by the block logical id.
func (n *CodeBlockAnalysisNode) ID() int64 {
	return int64(n.Block.ID)
}

func (n *CodeBlockAnalysisNode) GetIn() *lattice.BitVector   { return n.Block.ReachIn }
func (n *CodeBlockAnalysisNode) SetIn(v *lattice.BitVector)  { n.Block.ReachIn = v }
func (n *CodeBlockAnalysisNode) GetOut() *lattice.BitVector  { return n.Block.ReachOut }
func (n *CodeBlockAnalysisNode) SetOut(v *lattice.BitVector) { n.Block.ReachOut = v }

// CodeBlockGraphWeight is the graph-wide metadata bit-vector analyses
// need: the size of the declaration-number universe and, per space, the
// set of declaration numbers that ever assign it.
type CodeBlockGraphWeight struct {
	AssignmentCount    int
	VariableAssignment map[SpaceID]util.Set[int]
}

func NewCodeBlockGraphWeight() *CodeBlockGraphWeight {
	return &CodeBlockGraphWeight{
		VariableAssignment: make(map[SpaceID]util.Set[int]),
	}
}

// recordAssignment gives instr the next declaration number and indexes it
// under its destination.
func (w *CodeBlockGraphWeight) recordAssignment(instr *AssignInstr) {
	number := w.AssignmentCount
	w.AssignmentCount++
	instr.Info.Declaration = number
	set, ok := w.VariableAssignment[instr.Dest]
	if !ok {
		set = util.NewSet[int]()
		w.VariableAssignment[instr.Dest] = set
	}
	set.Add(number)
}
