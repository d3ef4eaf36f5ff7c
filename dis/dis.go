// Package dis supports analysis of bytecode chunks by disassembling them.
// This works with the opcodes defined in the `op` package and the Chunk type
// from the `bytecode` package.
package dis

import (
	"fmt"
	"io"
	"strconv"

	"github.com/deepnoodle-ai/loxvm/bytecode"
	"github.com/deepnoodle-ai/loxvm/op"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Instruction represents a single bytecode instruction and its source line.
type Instruction struct {
	Offset int
	Line   int

	// SameLine is true if the instruction came from the same source line as
	// the one before it.
	SameLine bool

	Name   string
	Opcode op.Code

	// Operand is set for opcodes that take one.
	Operand    int
	HasOperand bool

	// Constant is the value loaded by OP_CONSTANT.
	Constant    bytecode.Value
	HasConstant bool
}

// Disassemble returns a parsed representation of the given chunk. It fails
// if an OP_CONSTANT refers outside the constant pool.
func Disassemble(chunk *bytecode.Chunk) ([]Instruction, error) {
	instructions := make([]Instruction, 0, chunk.Len())
	for offset := 0; offset < chunk.Len(); offset++ {
		instr := chunk.InstructionAt(offset)
		info := op.GetInfo(instr.Op)
		line := chunk.LineFor(offset)
		row := Instruction{
			Offset:     offset,
			Line:       line,
			SameLine:   offset > 0 && line == instructions[offset-1].Line,
			Name:       instr.Op.String(),
			Opcode:     instr.Op,
			Operand:    instr.Operand,
			HasOperand: info.OperandCount > 0,
		}
		if instr.Op == op.Constant {
			if instr.Operand < 0 || instr.Operand >= chunk.ConstantCount() {
				return nil, fmt.Errorf("constant index %d out of range at offset %d (pool size %d)",
					instr.Operand, offset, chunk.ConstantCount())
			}
			row.Constant = chunk.ConstantAt(instr.Operand)
			row.HasConstant = true
		}
		instructions = append(instructions, row)
	}
	return instructions, nil
}

// Fprint writes the classic listing of the given instructions: a header
// followed by one row per instruction with offset, line, opcode, and for
// OP_CONSTANT the pool index and value. A line equal to the previous row's
// is shown as "|".
func Fprint(w io.Writer, name string, instructions []Instruction) error {
	if _, err := fmt.Fprintf(w, "== %s ==\n", name); err != nil {
		return err
	}
	for _, instr := range instructions {
		if _, err := fmt.Fprintln(w, formatRow(instr)); err != nil {
			return err
		}
	}
	return nil
}

func formatRow(instr Instruction) string {
	line := fmt.Sprintf("%4d", instr.Line)
	if instr.SameLine {
		line = "   |"
	}
	if instr.HasConstant {
		return fmt.Sprintf("%04d %s %-16s %4d '%s'", instr.Offset, line, instr.Name, instr.Operand, instr.Constant)
	}
	if instr.HasOperand {
		return fmt.Sprintf("%04d %s %-16s %4d", instr.Offset, line, instr.Name, instr.Operand)
	}
	return fmt.Sprintf("%04d %s %s", instr.Offset, line, instr.Name)
}

// PrintTable writes the given instructions as a table. Colors follow
// color.NoColor.
func PrintTable(w io.Writer, instructions []Instruction) {
	bold := color.New(color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"OFFSET", "LINE", "OPCODE", "OPERAND", "INFO"})
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})
	for _, instr := range instructions {
		line := strconv.Itoa(instr.Line)
		if instr.SameLine {
			line = faint("|")
		}
		var operand, info string
		if instr.HasOperand {
			operand = strconv.Itoa(instr.Operand)
		}
		if instr.HasConstant {
			info = yellow(instr.Constant.String())
		}
		table.Append([]string{
			strconv.Itoa(instr.Offset),
			line,
			bold(instr.Name),
			operand,
			info,
		})
	}
	table.Render()
}
