package bytecode

import (
	"fmt"

	"github.com/deepnoodle-ai/loxvm/op"
)

// Instruction is one decoded instruction. Operand is only meaningful for
// opcodes with an operand, i.e. the constant pool index of OP_CONSTANT.
type Instruction struct {
	Op      op.Code
	Operand int
}

// Constant returns an OP_CONSTANT instruction referring to the given index
// in the constant pool.
func Constant(index int) Instruction {
	return Instruction{Op: op.Constant, Operand: index}
}

// Simple returns an instruction without an operand.
func Simple(code op.Code) Instruction {
	return Instruction{Op: code}
}

// String returns a short representation such as "OP_CONSTANT 0" or "OP_ADD".
func (i Instruction) String() string {
	if op.GetInfo(i.Op).OperandCount > 0 {
		return fmt.Sprintf("%s %d", i.Op, i.Operand)
	}
	return i.Op.String()
}

// Chunk holds the bytecode for one compiled unit: the instruction sequence,
// the constant pool, and a run-length encoded line table.
//
// A Chunk has a single writer (the compiler) until Finalize is called, after
// which it is read-only and may be handed to a virtual machine.
type Chunk struct {
	name         string
	instructions []Instruction
	constants    []Value
	lines        lineTable
	finalized    bool
}

// NewChunk returns an empty chunk with the given name. The name is only used
// for diagnostics.
func NewChunk(name string) *Chunk {
	return &Chunk{name: name}
}

// Name returns the name of this chunk.
func (c *Chunk) Name() string {
	return c.name
}

// Write appends an instruction that was produced from the given source line.
// It panics if the chunk has already been finalized.
func (c *Chunk) Write(instr Instruction, line int) {
	if c.finalized {
		panic(fmt.Sprintf("bytecode: write to finalized chunk %q", c.name))
	}
	c.lines.add(len(c.instructions), line)
	c.instructions = append(c.instructions, instr)
}

// AddConstant appends a value to the constant pool and returns its index.
// Equal values are not deduplicated.
func (c *Chunk) AddConstant(value Value) int {
	c.constants = append(c.constants, value)
	return len(c.constants) - 1
}

// Finalize closes the line run in progress. It must be called once all
// instructions have been written and before the chunk is executed.
// Calling it more than once has no further effect.
func (c *Chunk) Finalize() {
	if c.finalized {
		return
	}
	c.lines.close()
	c.finalized = true
}

// Finalized returns true once Finalize has been called.
func (c *Chunk) Finalized() bool {
	return c.finalized
}

// Len returns the number of instructions.
func (c *Chunk) Len() int {
	return len(c.instructions)
}

// InstructionAt returns the instruction at the given index.
func (c *Chunk) InstructionAt(index int) Instruction {
	return c.instructions[index]
}

// ConstantCount returns the number of constants.
func (c *Chunk) ConstantCount() int {
	return len(c.constants)
}

// ConstantAt returns the constant at the given index.
func (c *Chunk) ConstantAt(index int) Value {
	return c.constants[index]
}

// LineFor returns the source line of the instruction at the given index, or
// 0 if no closed run covers it.
func (c *Chunk) LineFor(index int) int {
	return c.lines.lineFor(index)
}

// Lines returns a copy of the closed line runs, ordered by start index.
func (c *Chunk) Lines() []LineRun {
	return copyRuns(c.lines.runs)
}

// Stats returns statistics about this chunk.
func (c *Chunk) Stats() Stats {
	return Stats{
		InstructionCount: len(c.instructions),
		ConstantCount:    len(c.constants),
		LineRunCount:     len(c.lines.runs),
	}
}
