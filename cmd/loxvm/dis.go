package main

import (
	"fmt"

	"github.com/deepnoodle-ai/loxvm"
	"github.com/deepnoodle-ai/loxvm/dis"
	"github.com/spf13/cobra"
)

func newDisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [file]",
		Short: "Disassemble compiled bytecode",
		Long: `Compile the input and print the resulting bytecode.

A chunk that failed to compile is still printed after the errors, since it
shows how far the compiler got.`,
		Args: usageArgs,
		RunE: disHandler,
	}
	cmd.Flags().Bool("table", false, "render the listing as a table")
	return cmd
}

func disHandler(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	source, name, err := getSource(cmd, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	chunk, compileErr := loxvm.Compile(source, loxvm.WithName(name), loxvm.WithLogger(logger))
	if compileErr != nil {
		fmt.Fprint(cmd.ErrOrStderr(), red(formatCompileError(compileErr)))
	}
	instructions, err := dis.Disassemble(chunk)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	table, _ := cmd.Flags().GetBool("table")
	switch {
	case outputFormat() == "json":
		rows := make([]disRowJSON, 0, len(instructions))
		for _, instr := range instructions {
			rows = append(rows, newDisRowJSON(instr))
		}
		if err := writeJSON(out, rows); err != nil {
			return err
		}
	case table:
		dis.PrintTable(out, instructions)
	default:
		if err := dis.Fprint(out, chunk.Name(), instructions); err != nil {
			return err
		}
	}

	if compileErr != nil {
		return &exitError{code: exitDataErr, err: compileErr, silent: true}
	}
	return nil
}

type disRowJSON struct {
	Offset   int    `json:"offset"`
	Line     int    `json:"line"`
	Opcode   string `json:"opcode"`
	Operand  *int   `json:"operand,omitempty"`
	Constant any    `json:"constant,omitempty"`
}

func newDisRowJSON(instr dis.Instruction) disRowJSON {
	row := disRowJSON{
		Offset: instr.Offset,
		Line:   instr.Line,
		Opcode: instr.Name,
	}
	if instr.HasOperand {
		operand := instr.Operand
		row.Operand = &operand
	}
	if instr.HasConstant {
		row.Constant = jsonValue(instr.Constant)
	}
	return row
}
