package frontend

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/QiuFeng54321/compiler-backend/internal/diag"
	"github.com/QiuFeng54321/compiler-backend/internal/ir"
)

// lowerer translates a parsed file into builder calls against the core
// model. All name resolution beyond local/global shadowing lives here,
// not in the model.
type lowerer struct {
	prog *ir.Program
	errs []diag.BuildError

	// first call site per function name, for undefined-function errors
	callSites map[string]diag.Position
}

// Lower builds a program from a parsed file. The returned errors are
// recoverable build errors; the program reflects everything that did
// lower.
func Lower(file *File) (*ir.Program, []diag.BuildError) {
	l := &lowerer{
		prog:      ir.NewProgram(),
		callSites: make(map[string]diag.Position),
	}
	for _, decl := range file.Decls {
		switch {
		case decl.Global != nil:
			l.lowerGlobal(decl.Global)
		case decl.Fn != nil:
			l.lowerFn(decl.Fn)
		}
	}
	l.checkUndefinedFunctions()
	return l.prog, l.errs
}

func lowerType(ref *TypeRef) ir.DataType {
	switch {
	case ref == nil:
		return nil
	case ref.Array != nil:
		return &ir.ArrayType{Elem: lowerType(ref.Array.Elem), Len: ref.Array.Len}
	case ref.Struct != nil:
		members := make([]ir.DataType, len(ref.Struct.Members))
		for i, m := range ref.Struct.Members {
			members[i] = lowerType(m)
		}
		return &ir.StructType{Members: members}
	case ref.Name == "f64":
		return &ir.FloatType{}
	case ref.Name == "bool":
		return &ir.BoolType{}
	case ref.Name == "void":
		return &ir.VoidType{}
	default:
		return &ir.IntType{}
	}
}

// lowerGlobal declares a named global. Rebinding a global name would
// orphan the first space, so a second declaration is rejected.
func (l *lowerer) lowerGlobal(decl *GlobalDecl) {
	if _, _, ok := l.prog.LookupGlobal(decl.Name); ok {
		l.errs = append(l.errs, diag.NewError(diag.ErrDuplicateBinding,
			fmt.Sprintf("global '%s' is declared twice", decl.Name), position(decl.Pos)).
			WithLength(len(decl.Name)).
			Build())
		return
	}
	l.prog.DeclareGlobal(decl.Name, lowerType(decl.Type))
}

func (l *lowerer) lowerFn(decl *FnDecl) {
	_, f := l.prog.LookupOrInsertFunction(decl.Name)
	if f.Defined && decl.Body != nil {
		l.errs = append(l.errs, diag.NewError(diag.ErrDuplicateBinding,
			fmt.Sprintf("function '%s' is defined twice", decl.Name), position(decl.Pos)).
			WithLength(len(decl.Name)).
			Build())
		return
	}
	// An extern declaration followed by a definition names the same
	// function twice; the parameters were already declared the first time.
	if !f.Declared {
		for _, param := range decl.Params {
			id, _ := f.DeclareLocal(param.Name, lowerType(param.Type))
			f.Params = append(f.Params, id)
		}
	}
	f.Declared = true
	f.Extern = decl.Extern
	if decl.Return != nil {
		f.ReturnType = lowerType(decl.Return)
	}
	if decl.Body == nil {
		return
	}

	for _, block := range decl.Body.Blocks {
		f.Label(block.Label)
		for _, stmt := range block.Stmts {
			l.lowerStmt(f, stmt)
		}
	}
	l.errs = append(l.errs, f.Finalize()...)
}

func (l *lowerer) lowerStmt(f *ir.Function, stmt *Stmt) {
	switch {
	case stmt.Store != nil:
		dest, _ := f.LookupOrInsertSpace(stmt.Store.Dest)
		f.EmitStore(dest, l.atomSpace(f, stmt.Store.Src))
	case stmt.Jump != nil:
		f.EmitJump(f.Marker(stmt.Jump.Target, position(stmt.Jump.Pos)))
	case stmt.Branch != nil:
		f.EmitBranch(l.atomSpace(f, stmt.Branch.Cond),
			f.Marker(stmt.Branch.True, position(stmt.Branch.Pos)),
			f.Marker(stmt.Branch.False, position(stmt.Branch.Pos)))
	case stmt.Ret != nil:
		f.EmitRet(l.atomSpace(f, stmt.Ret.Value))
	case stmt.End:
		f.EmitEnd()
	case stmt.Assign != nil:
		l.lowerAssign(f, stmt.Assign)
	}
}

func (l *lowerer) lowerAssign(f *ir.Function, assign *AssignStmt) {
	dest, _ := f.LookupOrInsertSpace(assign.Dest)
	rhs := assign.Rhs
	switch {
	case rhs.Call != nil:
		name := rhs.Call.Function
		if _, seen := l.callSites[name]; !seen {
			l.callSites[name] = position(rhs.Call.Pos)
		}
		fn, _ := l.prog.LookupOrInsertFunction(name)
		f.EmitCall(dest, fn)
	case rhs.Unary != nil:
		op := ir.Not
		if rhs.Unary.Op == "-" {
			op = ir.Neg
		}
		if v, ok := atomLiteral(rhs.Unary.Operand); ok {
			if folded, err := ir.EvalUnary(op, v); err == nil {
				f.EmitUnary(dest, ir.Unit, l.constantSpace(folded))
				return
			}
		}
		f.EmitUnary(dest, op, l.atomSpace(f, rhs.Unary.Operand))
	case rhs.Bin != nil:
		if rhs.Bin.Op == "" {
			f.EmitUnary(dest, ir.Unit, l.atomSpace(f, rhs.Bin.Left))
			return
		}
		if l.foldBinary(f, dest, assign) {
			return
		}
		left := l.atomSpace(f, rhs.Bin.Left)
		right := l.atomSpace(f, rhs.Bin.Right)
		if cmp, ok := compareOps[rhs.Bin.Op]; ok {
			f.EmitCompare(dest, cmp, left, right)
			return
		}
		f.EmitBinary(dest, binaryOps[rhs.Bin.Op], left, right)
	}
}

// foldBinary evaluates a binary right-hand side whose operands are both
// literals, routing the result through the constant pool. It reports
// whether the assignment was fully handled, which includes the case where
// evaluation failed and a diagnostic was recorded.
func (l *lowerer) foldBinary(f *ir.Function, dest ir.SpaceID, assign *AssignStmt) bool {
	bin := assign.Rhs.Bin
	lv, ok := atomLiteral(bin.Left)
	if !ok {
		return false
	}
	rv, ok := atomLiteral(bin.Right)
	if !ok {
		return false
	}

	var folded ir.Value
	var err error
	if cmp, isCmp := compareOps[bin.Op]; isCmp {
		var result bool
		result, err = ir.EvalCompare(cmp, lv, rv)
		folded = ir.BoolValue{Value: result}
	} else {
		folded, err = ir.EvalBinary(binaryOps[bin.Op], lv, rv)
	}
	if err != nil {
		code := diag.ErrTypeMismatch
		if errors.Is(err, ir.ErrDivisionByZero) {
			code = diag.ErrDivisionByZero
		}
		l.errs = append(l.errs, diag.NewError(code, err.Error(), position(assign.Pos)).
			WithLength(len(assign.Dest)).
			Build())
		return true
	}
	f.EmitUnary(dest, ir.Unit, l.constantSpace(folded))
	return true
}

var binaryOps = map[string]ir.BinaryOp{
	"+": ir.Add,
	"-": ir.Sub,
	"*": ir.Mul,
	"/": ir.Div,
	"&": ir.And,
	"|": ir.Or,
	"^": ir.Xor,
}

var compareOps = map[string]ir.CompareType{
	"<":  ir.Less,
	">":  ir.Greater,
	"==": ir.Eq,
	"!=": ir.NotEq,
	"<=": ir.LessEq,
	">=": ir.GreaterEq,
}

// atomLiteral extracts the literal value of an atom, when it is one.
func atomLiteral(atom *Atom) (ir.Value, bool) {
	switch {
	case atom.Float != nil:
		return ir.FloatValue{Value: *atom.Float}, true
	case atom.Int != nil:
		return ir.IntValue{Value: *atom.Int}, true
	case atom.True:
		return ir.BoolValue{Value: true}, true
	case atom.False:
		return ir.BoolValue{Value: false}, true
	}
	return nil, false
}

// constantSpace interns a literal in the program constant pool.
func (l *lowerer) constantSpace(v ir.Value) ir.SpaceID {
	id, _ := l.prog.LookupOrInsertConstant(v.Type(), v)
	return id
}

// atomSpace resolves an operand to a space id: identifiers through scope
// resolution, literals through the constant pool.
func (l *lowerer) atomSpace(f *ir.Function, atom *Atom) ir.SpaceID {
	if v, ok := atomLiteral(atom); ok {
		return l.constantSpace(v)
	}
	id, _ := f.LookupOrInsertSpace(*atom.Name)
	return id
}

func (l *lowerer) checkUndefinedFunctions() {
	for _, id := range l.prog.Functions.IDs() {
		f := l.prog.FunctionPool.MustGet(id)
		if f.Declared {
			continue
		}
		pos := l.callSites[f.Name]
		l.errs = append(l.errs, diag.NewError(diag.ErrUndefinedFunction,
			fmt.Sprintf("call to undefined function '%s'", f.Name), pos).
			WithLength(len(f.Name)).
			WithHelp("define the function or declare it extern").
			Build())
	}
}

func position(pos lexer.Position) diag.Position {
	return diag.Position{Filename: pos.Filename, Line: pos.Line, Column: pos.Column}
}
