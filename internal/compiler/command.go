package compiler

// Instruction is a single car action.
type Instruction string

const (
	Drive        Instruction = "DRIVE"
	TurnLeft     Instruction = "TURN LEFT"
	TurnRight    Instruction = "TURN RIGHT"
	PickUpCredit Instruction = "PICK UP CREDIT"
	Stop         Instruction = "STOP"
)

// Condition names a car sensor.
type Condition string

const (
	OnCredit  Condition = "ON CREDIT"
	OnFinish  Condition = "ON FINISH"
	WallAhead Condition = "WALL AHEAD"
)

// Control is the keyword introducing a conditional or a loop.
type Control string

const (
	If     Control = "IF"
	Unless Control = "UNLESS"
	While  Control = "WHILE"
	Until  Control = "UNTIL"
)

// IsLoop reports whether the control re-checks its condition after running.
func (c Control) IsLoop() bool {
	return c == While || c == Until
}

// Inverts reports whether the condition is negated before use.
func (c Control) Inverts() bool {
	return c == Unless || c == Until
}

var (
	instructions = []Instruction{Drive, TurnLeft, TurnRight, PickUpCredit, Stop}
	conditions   = []Condition{OnCredit, OnFinish, WallAhead}
	controls     = []Control{If, Unless, While, Until}
)

// Meta records where a command came from.
type Meta struct {
	// Line is the 1-based line of the command's opening token.
	Line int
	// Text is the normalized (trimmed, upper-cased) source line.
	Text string
}

func (m Meta) meta() Meta { return m }

// Command is one node of a parsed program: *Simple, *Conditional or *Block.
type Command interface {
	meta() Meta
}

// MetaOf returns the source information of any command.
func MetaOf(c Command) Meta {
	return c.meta()
}

// Simple is an unconditional instruction.
type Simple struct {
	Meta
	Instruction Instruction
}

// Conditional is a one-line guarded instruction.
type Conditional struct {
	Meta
	Control     Control
	Condition   Condition
	Instruction Instruction
}

// Block is a guarded, END-terminated list of commands.
type Block struct {
	Meta
	Control   Control
	Condition Condition
	Children  []Command
}

// Program is the top-level command sequence.
type Program []Command

// blockEnd stands in for an END line while a block is being parsed. It is
// never part of a returned Program.
type blockEnd struct {
	Meta
}
