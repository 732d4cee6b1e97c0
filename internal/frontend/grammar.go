// Package frontend parses the textual IR and drives the builder API. It
// is the external collaborator of the core model: nothing under ir or the
// analysis packages depends on it.
package frontend

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/QiuFeng54321/compiler-backend/internal/diag"
)

var tirLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Float", Pattern: `[0-9]+\.[0-9]+`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Operator", Pattern: `:=|<=|>=|==|!=|[-+*/&|^<>!]`},
		{Name: "Punct", Pattern: `[{}\[\]():,]`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	},
})

// File is the root of a .tir source file: globals and functions in any
// order.
type File struct {
	Decls []*Decl `parser:"@@*"`
}

type Decl struct {
	Global *GlobalDecl `parser:"  @@"`
	Fn     *FnDecl     `parser:"| @@"`
}

type GlobalDecl struct {
	Pos  lexer.Position
	Name string   `parser:"\"global\" @Ident \":\""`
	Type *TypeRef `parser:"@@"`
}

type TypeRef struct {
	Array  *ArrayTypeRef  `parser:"  @@"`
	Struct *StructTypeRef `parser:"| @@"`
	Name   string         `parser:"| @(\"i64\" | \"f64\" | \"bool\" | \"void\")"`
}

type ArrayTypeRef struct {
	Len  int      `parser:"\"[\" @Int \"]\""`
	Elem *TypeRef `parser:"@@"`
}

type StructTypeRef struct {
	Members []*TypeRef `parser:"\"{\" @@ (\",\" @@)* \"}\""`
}

type FnDecl struct {
	Pos    lexer.Position
	Extern bool     `parser:"@\"extern\"?"`
	Name   string   `parser:"\"fn\" @Ident"`
	Params []*Param `parser:"\"(\" (@@ (\",\" @@)*)? \")\""`
	Return *TypeRef `parser:"(\":\" @@)?"`
	Body   *FnBody  `parser:"@@?"`
}

type FnBody struct {
	Blocks []*BlockDecl `parser:"\"{\" @@* \"}\""`
}

type Param struct {
	Name string   `parser:"@Ident \":\""`
	Type *TypeRef `parser:"@@"`
}

type BlockDecl struct {
	Pos   lexer.Position
	Label string  `parser:"@Ident \":\""`
	Stmts []*Stmt `parser:"@@*"`
}

type Stmt struct {
	Store  *StoreStmt  `parser:"  @@"`
	Jump   *JumpStmt   `parser:"| @@"`
	Branch *BranchStmt `parser:"| @@"`
	Ret    *RetStmt    `parser:"| @@"`
	End    bool        `parser:"| @\"end\""`
	Assign *AssignStmt `parser:"| @@"`
}

type StoreStmt struct {
	Pos  lexer.Position
	Dest string `parser:"\"store\" @Ident \",\""`
	Src  *Atom  `parser:"@@"`
}

type JumpStmt struct {
	Pos    lexer.Position
	Target string `parser:"\"jmp\" @Ident"`
}

type BranchStmt struct {
	Pos   lexer.Position
	Cond  *Atom  `parser:"\"br\" @@ \",\""`
	True  string `parser:"@Ident \",\""`
	False string `parser:"@Ident"`
}

type RetStmt struct {
	Pos   lexer.Position
	Value *Atom `parser:"\"ret\" @@"`
}

type AssignStmt struct {
	Pos  lexer.Position
	Dest string `parser:"@Ident \":=\""`
	Rhs  *Rhs   `parser:"@@"`
}

type Rhs struct {
	Call  *CallExpr  `parser:"  @@"`
	Unary *UnaryExpr `parser:"| @@"`
	Bin   *BinExpr   `parser:"| @@"`
}

type CallExpr struct {
	Pos      lexer.Position
	Function string `parser:"\"call\" @Ident"`
}

type UnaryExpr struct {
	Op      string `parser:"@(\"!\" | \"-\")"`
	Operand *Atom  `parser:"@@"`
}

// BinExpr with no operator is a plain copy.
type BinExpr struct {
	Left  *Atom  `parser:"@@"`
	Op    string `parser:"(@(\"+\" | \"-\" | \"*\" | \"/\" | \"&\" | \"|\" | \"^\" | \"<\" | \">\" | \"<=\" | \">=\" | \"==\" | \"!=\")"`
	Right *Atom  `parser:" @@)?"`
}

type Atom struct {
	Pos   lexer.Position
	Float *float64 `parser:"  @Float"`
	Int   *int64   `parser:"| @Int"`
	True  bool     `parser:"| @\"true\""`
	False bool     `parser:"| @\"false\""`
	Name  *string  `parser:"| @Ident"`
}

var parser = participle.MustBuild[File](
	participle.Lexer(tirLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// ParseSource parses textual IR into its syntax tree.
func ParseSource(filename, source string) (*File, []diag.BuildError) {
	file, err := parser.ParseString(filename, source)
	if err == nil {
		return file, nil
	}
	if pe, ok := err.(participle.Error); ok {
		pos := pe.Position()
		return nil, []diag.BuildError{
			diag.NewError(diag.ErrSyntax, pe.Message(), diag.Position{
				Filename: pos.Filename,
				Line:     pos.Line,
				Column:   pos.Column,
			}).Build(),
		}
	}
	return nil, []diag.BuildError{
		diag.NewError(diag.ErrSyntax, err.Error(), diag.Position{Filename: filename}).Build(),
	}
}
