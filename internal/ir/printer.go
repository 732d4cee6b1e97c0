package ir

import (
	"fmt"
	"strings"
)

// Printer renders a program for debugging. The output is for humans, not
// for parsing back.
type Printer struct {
	indent int
	output strings.Builder
}

func NewPrinter() *Printer {
	return &Printer{}
}

// Print returns the string representation of a program.
func Print(program *Program) string {
	p := NewPrinter()
	p.printProgram(program)
	return p.output.String()
}

// PrintFunction returns the string representation of one function.
func PrintFunction(f *Function) string {
	p := NewPrinter()
	p.printFunction(f)
	return p.output.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printProgram(program *Program) {
	for _, id := range program.Globals.IDs() {
		space := program.SpacePool.MustGet(id)
		if name, ok := program.Globals.NameOf(id); ok {
			p.writeLine("global %s: %s  ; s%d", name, space.Signature, id)
		}
	}
	for _, id := range program.Constants.IDs() {
		space := program.SpacePool.MustGet(id)
		if value, ok := space.Value.Value(); ok {
			p.writeLine("const s%d = %s: %s", id, value, space.Signature)
		}
	}
	p.writeLine("")
	for _, id := range program.Functions.IDs() {
		p.printFunction(program.FunctionPool.MustGet(id))
		p.writeLine("")
	}
}

func (p *Printer) printFunction(f *Function) {
	var params []string
	for _, id := range f.Params {
		name := fmt.Sprintf("s%d", id)
		if bound, ok := f.Locals.NameOf(id); ok {
			name = fmt.Sprintf("%s(s%d)", bound, id)
		}
		params = append(params, name)
	}
	p.writeLine("fn %s(%s): %s {", f.Name, strings.Join(params, ", "), f.ReturnType)
	p.indent++
	for _, id := range f.BlockOrder() {
		p.printBlock(f, f.Blocks.Pool().MustGet(id))
	}
	p.indent--
	p.writeLine("}")
}

func (p *Printer) printBlock(f *Function, block *CodeBlock) {
	label := fmt.Sprintf("b%d", block.ID)
	if name, ok := f.Blocks.NameOf(block.ID); ok {
		label = name
	}
	p.writeLine("%s:  ; b%d %s", label, block.ID, block.Kind)
	p.indent++
	if block.ReachIn != nil {
		p.writeLine("; reach.in  = %s", block.ReachIn)
	}
	for _, instr := range block.Instrs {
		info := instr.Information()
		if info.Declaration != NoDeclaration {
			p.writeLine("%s  ; d%d", instr, info.Declaration)
		} else {
			p.writeLine("%s", instr)
		}
	}
	p.writeLine("%s", block.Term)
	if block.ReachOut != nil {
		p.writeLine("; reach.out = %s", block.ReachOut)
	}
	p.indent--
}
