// Package reach computes reaching definitions: for every basic block, the
// set of assignment instructions whose values may still be live on entry
// and exit. It is the forward bit-vector instantiation of the generic
// dataflow engine; the fact for a block is one bit per declaration number.
package reach

import (
	"github.com/QiuFeng54321/compiler-backend/internal/dataflow"
	"github.com/QiuFeng54321/compiler-backend/internal/ir"
	"github.com/QiuFeng54321/compiler-backend/internal/lattice"
)

// Graph is the CFG shape this analysis runs over.
type Graph = dataflow.Graph[*ir.CodeBlockAnalysisNode, *ir.CodeBlockGraphWeight]

// GenVar returns the fact an instruction generates: only its own
// declaration number, or nothing for non-assignments.
func GenVar(instr ir.Instr, weight *ir.CodeBlockGraphWeight) *lattice.BitVector {
	v := lattice.NewBitVector(weight.AssignmentCount)
	if assign, ok := instr.(*ir.AssignInstr); ok {
		if assign.Info.Declaration == ir.NoDeclaration {
			panic("reach: assignment without a declaration number")
		}
		v.Insert(assign.Info.Declaration)
	}
	return v
}

// KillVar returns the declaration numbers an instruction kills: every
// number ever assigned to its destination, except its own.
func KillVar(instr ir.Instr, weight *ir.CodeBlockGraphWeight) *lattice.BitVector {
	v := lattice.NewBitVector(weight.AssignmentCount)
	assign, ok := instr.(*ir.AssignInstr)
	if !ok {
		return v
	}
	numbers, ok := weight.VariableAssignment[assign.Dest]
	if !ok {
		panic("reach: destination space missing from the assignment index")
	}
	if assign.Info.Declaration == ir.NoDeclaration {
		panic("reach: assignment without a declaration number")
	}
	for number := range numbers {
		v.Insert(number)
	}
	v.Remove(assign.Info.Declaration)
	return v
}

// KillMaskVar is the complement of KillVar: all ones except the killed
// declaration numbers.
func KillMaskVar(instr ir.Instr, weight *ir.CodeBlockGraphWeight) *lattice.BitVector {
	v := KillVar(instr, weight)
	v.Flip()
	return v
}

// Analysis is the reaching-definitions transfer contract. The zero value
// is ready to use.
type Analysis struct{}

func (Analysis) Direction() dataflow.Direction {
	return dataflow.Forward
}

// TransferForward computes out = (in ∩ killMask) ∪ gen for one block.
// Instructions are scanned in reverse so a definition's gen bit survives
// only when no later definition in the block kills it.
func (Analysis) TransferForward(n *ir.CodeBlockAnalysisNode, in *lattice.BitVector, g *Graph) *lattice.BitVector {
	weight := g.Weight
	gen := lattice.NewBitVector(weight.AssignmentCount)
	killMask := lattice.NewBitVector(weight.AssignmentCount)
	killMask.Fill()

	instrs := n.Block.Instrs
	for i := len(instrs) - 1; i >= 0; i-- {
		killMask.IntersectWith(KillMaskVar(instrs[i], weight))
		instrGen := GenVar(instrs[i], weight)
		instrGen.IntersectWith(killMask)
		gen.UnionWith(instrGen)
	}

	out := in.Clone()
	out.IntersectWith(killMask)
	out.UnionWith(gen)
	return out
}

func (Analysis) TransferBackward(*ir.CodeBlockAnalysisNode, *lattice.BitVector, *Graph) *lattice.BitVector {
	panic("reach: reaching definitions is a forward analysis")
}

// EntryOut is all zeros: nothing reaches the function entry.
func (a Analysis) EntryOut(g *Graph) *lattice.BitVector {
	return a.Top(g)
}

func (Analysis) ExitIn(*Graph) *lattice.BitVector {
	panic("reach: reaching definitions has no exit boundary fact")
}

func (Analysis) Top(g *Graph) *lattice.BitVector {
	return lattice.NewBitVector(g.Weight.AssignmentCount)
}

func (Analysis) Bottom(*Graph) *lattice.BitVector {
	panic("reach: reaching definitions does not use the bottom extreme")
}

// Analyze runs the solver over a finalized function and returns the
// number of node visits it took to converge. The converged facts are left
// on each block's ReachIn and ReachOut. A function with no blocks has
// nothing to analyze and converges in zero visits.
func Analyze(f *ir.Function) int {
	if f.Graph.Len() == 0 {
		return 0
	}
	return dataflow.Solve[*lattice.BitVector](f.Graph, Analysis{}, f.EntryNode())
}
