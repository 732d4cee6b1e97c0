package ir

import "fmt"

// AddressMarker is an indirection to a block by logical id. Markers are
// created the moment a jump is emitted, possibly before the target block's
// body exists; Function.Finalize verifies every marker resolves to a
// declared label.
type AddressMarker struct {
	Block BlockID
}

func (m *AddressMarker) String() string {
	return fmt.Sprintf("b%d", m.Block)
}

// Operation is the right-hand side of an assignment. All operands are
// space logical ids.
type Operation interface {
	Operands() []SpaceID
	String() string
}

type BinaryOperation struct {
	Op    BinaryOp
	Left  SpaceID
	Right SpaceID
}

type UnaryOperation struct {
	Op      UnaryOp
	Operand SpaceID
}

type CompareOperation struct {
	Cmp   CompareType
	Left  SpaceID
	Right SpaceID
}

type CallOperation struct {
	Function FuncID
}

func (o BinaryOperation) Operands() []SpaceID  { return []SpaceID{o.Left, o.Right} }
func (o UnaryOperation) Operands() []SpaceID   { return []SpaceID{o.Operand} }
func (o CompareOperation) Operands() []SpaceID { return []SpaceID{o.Left, o.Right} }
func (o CallOperation) Operands() []SpaceID    { return nil }

func (o BinaryOperation) String() string {
	return fmt.Sprintf("s%d %s s%d", o.Left, o.Op, o.Right)
}

func (o UnaryOperation) String() string {
	return fmt.Sprintf("%ss%d", o.Op, o.Operand)
}

func (o CompareOperation) String() string {
	return fmt.Sprintf("s%d %s s%d", o.Left, o.Cmp, o.Right)
}

func (o CallOperation) String() string {
	return fmt.Sprintf("call f%d", o.Function)
}

// JumpOperation is the control-transfer payload of a block terminator.
type JumpOperation interface {
	// Targets returns the markers this jump may transfer to. Next and
	// End have none; Next falls through to the block declared after the
	// current one.
	Targets() []*AddressMarker
	String() string
}

type UnconditionalJump struct {
	Target *AddressMarker
}

type BranchJump struct {
	Cond  SpaceID
	True  *AddressMarker
	False *AddressMarker
}

// NextJump falls through to the next declared block. It is the placeholder
// terminator of every freshly created block.
type NextJump struct{}

// EndJump exits the function without a value.
type EndJump struct{}

type RetJump struct {
	Value SpaceID
}

func (j UnconditionalJump) Targets() []*AddressMarker { return []*AddressMarker{j.Target} }
func (j BranchJump) Targets() []*AddressMarker        { return []*AddressMarker{j.True, j.False} }
func (NextJump) Targets() []*AddressMarker            { return nil }
func (EndJump) Targets() []*AddressMarker             { return nil }
func (RetJump) Targets() []*AddressMarker             { return nil }

func (j UnconditionalJump) String() string {
	return fmt.Sprintf("jmp %s", j.Target)
}

func (j BranchJump) String() string {
	return fmt.Sprintf("s%d ? %s : %s", j.Cond, j.True, j.False)
}

func (NextJump) String() string { return "next" }
func (EndJump) String() string  { return "end" }

func (j RetJump) String() string {
	return fmt.Sprintf("ret s%d", j.Value)
}

// CommandOperation is a side-effecting instruction that is neither an
// assignment nor a jump.
type CommandOperation interface {
	String() string
}

type StoreCommand struct {
	Dest SpaceID
	Src  SpaceID
}

func (c StoreCommand) String() string {
	return fmt.Sprintf("store s%d, s%d", c.Dest, c.Src)
}

// Info carries per-instruction analysis metadata. Declaration is the dense
// index used as the bit position for reaching-definitions facts; it is
// only ever assigned to assignment instructions.
type Info struct {
	Declaration int
}

func NewInfo() Info {
	return Info{Declaration: NoDeclaration}
}

func (i Info) String() string {
	if i.Declaration == NoDeclaration {
		return "{}"
	}
	return fmt.Sprintf("{DECL = %d}", i.Declaration)
}

// Instr is one IR instruction.
type Instr interface {
	Information() *Info
	String() string
}

type AssignInstr struct {
	Dest SpaceID
	Op   Operation
	Info Info
}

type JumpInstr struct {
	Op   JumpOperation
	Info Info
}

type CommandInstr struct {
	Op   CommandOperation
	Info Info
}

func (i *AssignInstr) Information() *Info  { return &i.Info }
func (i *JumpInstr) Information() *Info    { return &i.Info }
func (i *CommandInstr) Information() *Info { return &i.Info }

func (i *AssignInstr) String() string {
	return fmt.Sprintf("s%d = %s", i.Dest, i.Op)
}

func (i *JumpInstr) String() string {
	return i.Op.String()
}

func (i *CommandInstr) String() string {
	return i.Op.String()
}
