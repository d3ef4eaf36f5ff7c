// Package op defines opcodes used by the compiler and virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint8

const (
	Invalid Code = 0

	// Load
	Constant Code = 1

	// Arithmetic
	Add      Code = 10
	Subtract Code = 11
	Multiply Code = 12
	Divide   Code = 13
	Negate   Code = 14

	// Execution
	Return Code = 20
)

// Info contains information about an opcode.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op    Code
		name  string
		count int
	}
	ops := []opInfo{
		{Add, "OP_ADD", 0},
		{Constant, "OP_CONSTANT", 1},
		{Divide, "OP_DIVIDE", 0},
		{Multiply, "OP_MULTIPLY", 0},
		{Negate, "OP_NEGATE", 0},
		{Return, "OP_RETURN", 0},
		{Subtract, "OP_SUBTRACT", 0},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Name:         o.name,
			Code:         o.op,
			OperandCount: o.count,
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	return infos[op]
}

// String returns the mnemonic of the opcode, or "OP_UNKNOWN" for codes that
// are not defined.
func (c Code) String() string {
	if name := infos[c].Name; name != "" {
		return name
	}
	return "OP_UNKNOWN"
}

// IsBinary returns true for opcodes that pop two operands and push one result.
func (c Code) IsBinary() bool {
	switch c {
	case Add, Subtract, Multiply, Divide:
		return true
	default:
		return false
	}
}
