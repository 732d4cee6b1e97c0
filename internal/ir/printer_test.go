package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/QiuFeng54321/compiler-backend/internal/lattice"
)

func TestPrintProgram(t *testing.T) {
	prog := NewProgram()
	prog.DeclareGlobal("g", &IntType{})
	prog.LookupOrInsertConstant(&IntType{}, IntValue{Value: 7})

	_, f := prog.LookupOrInsertFunction("main")
	f.Declared = true
	x, _ := f.DeclareLocal("x", &IntType{})
	f.Params = append(f.Params, x)

	f.Label("entry")
	f.EmitBinary(x, Add, x, x)
	f.EmitEnd()
	assert.Empty(t, f.Finalize())

	output := Print(prog)

	assert.Contains(t, output, "global g: i64")
	assert.Contains(t, output, "const s1 = 7: i64")
	assert.Contains(t, output, "fn main(x(s2)): void {")
	assert.Contains(t, output, "entry:")
	assert.Contains(t, output, "; d0", "Assignments print their declaration number")
	assert.Contains(t, output, "end")
}

func TestPrintFunctionIncludesReachFacts(t *testing.T) {
	prog := NewProgram()
	_, f := prog.LookupOrInsertFunction("main")
	x, _ := f.DeclareLocal("x", &IntType{})

	entry := f.Label("entry")
	f.EmitBinary(x, Add, x, x)
	f.EmitEnd()
	assert.Empty(t, f.Finalize())

	output := PrintFunction(f)
	assert.NotContains(t, output, "reach.in", "No facts before the solver runs")

	entry.ReachIn = lattice.NewBitVector(1)
	entry.ReachOut = lattice.NewBitVector(1)
	entry.ReachOut.Insert(0)

	output = PrintFunction(f)
	assert.Contains(t, output, "; reach.in  = {}")
	assert.Contains(t, output, "; reach.out = {0}")
}
