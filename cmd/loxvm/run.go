package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/deepnoodle-ai/loxvm"
	"github.com/deepnoodle-ai/loxvm/bytecode"
	"github.com/deepnoodle-ai/loxvm/errz"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func runHandler(cmd *cobra.Command, args []string) error {
	if err := checkOutputFormat(); err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	if shouldRunRepl(cmd, args, isTerminalIO()) {
		return runRepl(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
	}

	source, name, err := getSource(cmd, args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	return execute(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), source, name, logger)
}

// execute compiles and runs source, then prints the result to out and any
// diagnostics to errOut. The returned error carries the exit code.
func execute(ctx context.Context, out, errOut io.Writer, source, name string, logger zerolog.Logger) error {
	result := loxvm.Interpret(ctx, source, loxvm.WithName(name), loxvm.WithLogger(logger))

	if outputFormat() == "json" {
		if err := writeJSON(out, newResultJSON(result)); err != nil {
			return err
		}
	} else {
		printResult(out, errOut, result)
	}

	switch result.Status {
	case loxvm.StatusCompileError:
		return &exitError{code: exitDataErr, err: result.Err, silent: true}
	case loxvm.StatusRuntimeError:
		return &exitError{code: exitSoftware, err: result.Err, silent: true}
	}
	return nil
}

func printResult(out, errOut io.Writer, result loxvm.Result) {
	switch result.Status {
	case loxvm.StatusCompileError:
		fmt.Fprint(errOut, red(formatCompileError(result.Err)))
	case loxvm.StatusRuntimeError:
		fmt.Fprintln(errOut, red(result.Err.Error()))
	default:
		if result.HasValue {
			fmt.Fprintln(out, result.Value)
		}
	}
}

// formatCompileError lists each compile error with the line it occurred on.
func formatCompileError(err error) string {
	errs := errz.CompileErrors(err)
	if len(errs) == 0 {
		return err.Error() + "\n"
	}
	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString(e.FriendlyErrorMessage())
	}
	return sb.String()
}

type resultJSON struct {
	Status string   `json:"status"`
	Value  any      `json:"value,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func newResultJSON(result loxvm.Result) resultJSON {
	r := resultJSON{Status: result.Status.String()}
	if result.HasValue {
		r.Value = jsonValue(result.Value)
	}
	if result.Err != nil {
		if errs := errz.CompileErrors(result.Err); len(errs) > 0 {
			for _, e := range errs {
				r.Errors = append(r.Errors, e.Error())
			}
		} else {
			r.Errors = []string{result.Err.Error()}
		}
	}
	return r
}

// jsonValue returns v as a number, or as a string for values JSON cannot
// represent.
func jsonValue(v bytecode.Value) any {
	f := float64(v)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return v.String()
	}
	return f
}
