package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/QiuFeng54321/compiler-backend/internal/diag"
	"github.com/QiuFeng54321/compiler-backend/internal/ir"
	"github.com/QiuFeng54321/compiler-backend/internal/reach"
)

// lowerSource parses and lowers a program, failing the test on any error.
func lowerSource(t *testing.T, source string) *ir.Program {
	t.Helper()
	file, errs := ParseSource("test.tir", source)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	prog, errs := Lower(file)
	if len(errs) > 0 {
		t.Fatalf("lower errors: %v", errs)
	}
	return prog
}

// lowerExpectingErrors parses and lowers a program that must produce
// build errors.
func lowerExpectingErrors(t *testing.T, source string) []diag.BuildError {
	t.Helper()
	file, errs := ParseSource("test.tir", source)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	_, errs = Lower(file)
	if len(errs) == 0 {
		t.Fatal("expected lower errors, got none")
	}
	return errs
}

func TestLowerGlobalAndFunction(t *testing.T) {
	prog := lowerSource(t, `
global g: i64

fn main() {
entry:
    x := g + 1
    end
}`)

	_, _, ok := prog.LookupGlobal("g")
	assert.True(t, ok)

	_, f := prog.LookupOrInsertFunction("main")
	assert.True(t, f.Declared)
	assert.True(t, f.Defined)

	_, ok = f.Locals.GetNameID("x")
	assert.True(t, ok, "The assignment target becomes an implicit local")
}

func TestLowerParams(t *testing.T) {
	prog := lowerSource(t, `
fn add(a: i64, b: i64): i64 {
entry:
    c := a + b
    ret c
}`)

	_, f := prog.LookupOrInsertFunction("add")
	assert.Len(t, f.Params, 2)
	assert.Equal(t, "i64", f.ReturnType.String())

	a, ok := f.Locals.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "i64", a.Signature.DeclaredType().String())
}

func TestLowerGlobalAggregate(t *testing.T) {
	prog := lowerSource(t, `global arr: [3]i64`)

	_, space, ok := prog.LookupGlobal("arr")
	assert.True(t, ok)
	assert.Len(t, space.Signature.MemberIDs(), 3)
}

func TestLowerLiteralOperandsShareConstants(t *testing.T) {
	prog := lowerSource(t, `
fn main() {
entry:
    a := x + 1
    b := y + 1
    end
}`)

	id, space := prog.LookupOrInsertConstant(&ir.IntType{}, ir.IntValue{Value: 1})
	v, ok := space.Value.Value()
	assert.True(t, ok)
	assert.Equal(t, ir.IntValue{Value: 1}, v)

	// Interning again returns the same space; only one constant exists
	// for the literal 1.
	again, _ := prog.LookupOrInsertConstant(&ir.IntType{}, ir.IntValue{Value: 1})
	assert.Equal(t, id, again)
}

func TestLowerFoldsConstantExpressions(t *testing.T) {
	prog := lowerSource(t, `
fn main() {
entry:
    a := 2 + 3
    b := 10 < 4
    end
}`)

	// Both right-hand sides fold at build time into interned constants.
	_, space := prog.LookupOrInsertConstant(&ir.IntType{}, ir.IntValue{Value: 5})
	v, ok := space.Value.Value()
	assert.True(t, ok)
	assert.Equal(t, ir.IntValue{Value: 5}, v)

	_, space = prog.LookupOrInsertConstant(&ir.BoolType{}, ir.BoolValue{Value: false})
	v, ok = space.Value.Value()
	assert.True(t, ok)
	assert.Equal(t, ir.BoolValue{Value: false}, v)
}

func TestLowerReportsDivisionByZero(t *testing.T) {
	errs := lowerExpectingErrors(t, `
fn main() {
entry:
    a := 1 / 0
    end
}`)

	assert.Len(t, errs, 1)
	assert.Equal(t, diag.ErrDivisionByZero, errs[0].Code)
	assert.Equal(t, 4, errs[0].Position.Line)
}

func TestLowerReportsLiteralTypeMismatch(t *testing.T) {
	errs := lowerExpectingErrors(t, `
fn main() {
entry:
    a := 1 + 2.5
    end
}`)

	assert.Len(t, errs, 1)
	assert.Equal(t, diag.ErrTypeMismatch, errs[0].Code)
}

func TestLowerReportsDanglingLabel(t *testing.T) {
	errs := lowerExpectingErrors(t, `
fn main() {
entry:
    jmp nowhere
}`)

	assert.Len(t, errs, 1)
	assert.Equal(t, diag.ErrDanglingLabel, errs[0].Code)
	assert.Contains(t, errs[0].Message, "nowhere")
}

func TestLowerReportsDuplicateDefinition(t *testing.T) {
	errs := lowerExpectingErrors(t, `
fn main() {
entry:
    end
}

fn main() {
entry:
    end
}`)

	assert.Len(t, errs, 1)
	assert.Equal(t, diag.ErrDuplicateBinding, errs[0].Code)
}

func TestLowerReportsUndefinedFunction(t *testing.T) {
	errs := lowerExpectingErrors(t, `
fn main() {
entry:
    x := call missing
    end
}`)

	assert.Len(t, errs, 1)
	assert.Equal(t, diag.ErrUndefinedFunction, errs[0].Code)
	assert.Contains(t, errs[0].Message, "missing")
}

func TestLowerEmptyFunctionBody(t *testing.T) {
	prog := lowerSource(t, `
fn empty() {}

fn main() {
entry:
    end
}`)

	_, f := prog.LookupOrInsertFunction("empty")
	assert.True(t, f.Defined)

	assert.NotPanics(t, func() { reach.Analyze(f) },
		"Analyzing a function with no blocks must not crash")
	assert.Equal(t, 0, reach.Analyze(f))
}

func TestLowerExternThenDefineKeepsOneParamSet(t *testing.T) {
	prog := lowerSource(t, `
extern fn p(v: i64)

fn p(v: i64) {
entry:
    x := v + 1
    end
}`)

	_, f := prog.LookupOrInsertFunction("p")
	assert.True(t, f.Defined)
	assert.Len(t, f.Params, 1,
		"The defining declaration must not re-declare the parameters")

	id, ok := f.Locals.GetNameID("v")
	assert.True(t, ok)
	assert.Equal(t, f.Params[0], id, "The parameter name resolves to the declared space")
}

func TestLowerReportsDuplicateGlobal(t *testing.T) {
	errs := lowerExpectingErrors(t, `
global g: i64
global g: f64
`)

	assert.Len(t, errs, 1)
	assert.Equal(t, diag.ErrDuplicateBinding, errs[0].Code)
	assert.Contains(t, errs[0].Message, "g")
	assert.Equal(t, 3, errs[0].Position.Line, "The second declaration is the offending one")
}

func TestLowerExternFunctionNeedsNoBody(t *testing.T) {
	prog := lowerSource(t, `
extern fn print(v: i64)

fn main() {
entry:
    x := call print
    end
}`)

	_, f := prog.LookupOrInsertFunction("print")
	assert.True(t, f.Declared)
	assert.True(t, f.Extern)
	assert.False(t, f.Defined)
}

func TestLowerLocalShadowsGlobal(t *testing.T) {
	prog := lowerSource(t, `
global x: i64

fn main(x: f64) {
entry:
    y := x
    end
}`)

	gID, _, _ := prog.LookupGlobal("x")
	_, f := prog.LookupOrInsertFunction("main")
	lID, _ := f.Locals.GetNameID("x")
	assert.NotEqual(t, gID, lID)
}

func TestLoweredProgramAnalyzesEndToEnd(t *testing.T) {
	prog := lowerSource(t, `
fn main() {
entry:
    x := a + b
    c := x < 10
    br c, loop, done
loop:
    x := x * x
    jmp entry2
entry2:
    br c, loop, done
done:
    end
}`)

	_, f := prog.LookupOrInsertFunction("main")
	visits := reach.Analyze(f)
	assert.Greater(t, visits, 0)

	for _, id := range f.BlockOrder() {
		block, _ := f.Blocks.Pool().Get(id)
		assert.NotNil(t, block.ReachIn, "Every block gets converged facts")
		assert.NotNil(t, block.ReachOut)
	}

	entryNode := f.EntryNode()
	assert.Equal(t, 0, entryNode.Block.ReachIn.Count(),
		"Nothing reaches the function entry")
}
