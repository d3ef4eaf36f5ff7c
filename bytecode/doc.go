// Package bytecode provides the compiled representation of a program.
//
// A [Chunk] is the output of compilation: an ordered sequence of
// [Instruction] values, a constant pool of [Value] literals, and a line table
// mapping instructions back to the source lines they were produced from.
//
// # Line Table
//
// Source lines are stored run-length encoded. Consecutive instructions from
// the same line share one [LineRun], so a typical one-line expression costs a
// single entry no matter how many instructions it compiles to:
//
//	chunk := bytecode.NewChunk("example")
//	chunk.Write(bytecode.Constant(chunk.AddConstant(1)), 1)
//	chunk.Write(bytecode.Constant(chunk.AddConstant(2)), 1)
//	chunk.Write(bytecode.Simple(op.Add), 1)
//	chunk.Write(bytecode.Simple(op.Return), 2)
//	chunk.Finalize()
//
//	chunk.Lines()     // [{0 2 1} {3 3 2}]
//	chunk.LineFor(3)  // 2
//
// # Lifecycle
//
// A Chunk is written by exactly one compiler and then finalized. Finalize
// closes the run in progress; only after that is every instruction covered
// by the line table. Writing to a finalized chunk panics. A finalized chunk
// is read-only and may be shared between virtual machines.
//
// Index-based access is used for all collections:
//
//	chunk.InstructionAt(0)
//	chunk.ConstantAt(i)
package bytecode
