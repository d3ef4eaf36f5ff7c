package bytecode

import (
	"math"
	"testing"

	"github.com/deepnoodle-ai/loxvm/op"
	"github.com/stretchr/testify/require"
)

func TestLineRuns(t *testing.T) {
	chunk := NewChunk("test")
	for _, line := range []int{1, 1, 1, 2, 2} {
		chunk.Write(Simple(op.Add), line)
	}
	chunk.Finalize()

	require.Equal(t, []LineRun{
		{Start: 0, End: 2, Line: 1},
		{Start: 3, End: 4, Line: 2},
	}, chunk.Lines())
	require.Equal(t, 1, chunk.LineFor(0))
	require.Equal(t, 1, chunk.LineFor(2))
	require.Equal(t, 2, chunk.LineFor(3))
	require.Equal(t, 2, chunk.LineFor(4))
}

func TestLineForOutOfRange(t *testing.T) {
	chunk := NewChunk("test")
	chunk.Write(Simple(op.Return), 7)
	chunk.Finalize()
	require.Equal(t, 7, chunk.LineFor(0))
	require.Equal(t, 0, chunk.LineFor(1))
	require.Equal(t, 0, chunk.LineFor(-1))
}

func TestOpenRunNotVisibleUntilFinalized(t *testing.T) {
	chunk := NewChunk("test")
	chunk.Write(Simple(op.Add), 1)
	chunk.Write(Simple(op.Add), 2)
	chunk.Write(Simple(op.Add), 2)

	// The first run is closed by the line change; the tail is still open.
	require.Equal(t, []LineRun{{Start: 0, End: 0, Line: 1}}, chunk.Lines())
	require.Equal(t, 1, chunk.LineFor(0))
	require.Equal(t, 0, chunk.LineFor(2))
	require.False(t, chunk.Finalized())

	chunk.Finalize()
	require.True(t, chunk.Finalized())
	require.Equal(t, 2, chunk.LineFor(2))
	require.Len(t, chunk.Lines(), 2)
}

func TestReturningToEarlierLineStartsNewRun(t *testing.T) {
	chunk := NewChunk("test")
	for _, line := range []int{1, 2, 1, 1} {
		chunk.Write(Simple(op.Negate), line)
	}
	chunk.Finalize()
	require.Equal(t, []LineRun{
		{Start: 0, End: 0, Line: 1},
		{Start: 1, End: 1, Line: 2},
		{Start: 2, End: 3, Line: 1},
	}, chunk.Lines())
}

func TestRunsCoverEveryInstruction(t *testing.T) {
	chunk := NewChunk("test")
	lines := []int{3, 3, 4, 9, 9, 9, 10, 3}
	for _, line := range lines {
		chunk.Write(Simple(op.Add), line)
	}
	chunk.Finalize()
	runs := chunk.Lines()
	next := 0
	for _, run := range runs {
		require.Equal(t, next, run.Start)
		require.GreaterOrEqual(t, run.End, run.Start)
		next = run.End + 1
	}
	require.Equal(t, len(lines), next)
	for i, line := range lines {
		require.Equal(t, line, chunk.LineFor(i))
	}
}

func TestFinalizeTwice(t *testing.T) {
	chunk := NewChunk("test")
	chunk.Write(Simple(op.Return), 1)
	chunk.Finalize()
	chunk.Finalize()
	require.Len(t, chunk.Lines(), 1)
}

func TestWriteAfterFinalizePanics(t *testing.T) {
	chunk := NewChunk("test")
	chunk.Finalize()
	require.Panics(t, func() {
		chunk.Write(Simple(op.Return), 1)
	})
}

func TestEmptyChunk(t *testing.T) {
	chunk := NewChunk("empty")
	chunk.Finalize()
	require.Equal(t, 0, chunk.Len())
	require.Nil(t, chunk.Lines())
	require.Equal(t, 0, chunk.LineFor(0))
}

func TestConstants(t *testing.T) {
	chunk := NewChunk("test")
	require.Equal(t, 0, chunk.AddConstant(1.5))
	require.Equal(t, 1, chunk.AddConstant(2))
	// Duplicates get their own slot
	require.Equal(t, 2, chunk.AddConstant(1.5))
	require.Equal(t, 3, chunk.ConstantCount())
	require.Equal(t, Value(1.5), chunk.ConstantAt(0))
	require.Equal(t, Value(2), chunk.ConstantAt(1))
	require.Equal(t, Value(1.5), chunk.ConstantAt(2))
}

func TestChunkAccessors(t *testing.T) {
	chunk := NewChunk("main")
	idx := chunk.AddConstant(42)
	chunk.Write(Constant(idx), 1)
	chunk.Write(Simple(op.Return), 1)
	chunk.Finalize()

	require.Equal(t, "main", chunk.Name())
	require.Equal(t, 2, chunk.Len())
	require.Equal(t, Instruction{Op: op.Constant, Operand: 0}, chunk.InstructionAt(0))
	require.Equal(t, Instruction{Op: op.Return}, chunk.InstructionAt(1))
	require.Equal(t, Stats{InstructionCount: 2, ConstantCount: 1, LineRunCount: 1}, chunk.Stats())
}

func TestLinesReturnsCopy(t *testing.T) {
	chunk := NewChunk("test")
	chunk.Write(Simple(op.Return), 1)
	chunk.Finalize()
	runs := chunk.Lines()
	runs[0].Line = 99
	require.Equal(t, 1, chunk.LineFor(0))
}

func TestInstructionString(t *testing.T) {
	require.Equal(t, "OP_CONSTANT 3", Constant(3).String())
	require.Equal(t, "OP_ADD", Simple(op.Add).String())
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{14, "14"},
		{-5, "-5"},
		{2.5, "2.5"},
		{0.1, "0.1"},
		{1e21, "1e+21"},
		{Value(math.Inf(1)), "inf"},
		{Value(math.Inf(-1)), "-inf"},
		{Value(math.NaN()), "nan"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.value.String())
	}
}

func TestLineRunString(t *testing.T) {
	run := LineRun{Start: 0, End: 2, Line: 1}
	require.Equal(t, "0-2:1", run.String())
	require.True(t, run.Contains(2))
	require.False(t, run.Contains(3))
}
