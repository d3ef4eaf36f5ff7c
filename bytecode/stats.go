package bytecode

// Stats contains statistics about a compiled chunk.
type Stats struct {
	// InstructionCount is the total number of instructions.
	InstructionCount int

	// ConstantCount is the number of constants in the constant pool.
	ConstantCount int

	// LineRunCount is the number of closed runs in the line table.
	LineRunCount int
}
