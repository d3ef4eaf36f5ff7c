// Package errz defines the errors produced while scanning, compiling and
// running programs.
//
// There are three disjoint failure kinds. Lexical and syntax errors are
// reported by the compiler as *CompileError values; runtime errors are
// reported by the virtual machine as *RuntimeError values.
package errz

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/loxvm/op"
	"github.com/hashicorp/go-multierror"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrLexical indicates the scanner could not classify the input.
	ErrLexical ErrorKind = iota
	// ErrSyntax indicates the compiler found an unexpected token.
	ErrSyntax
	// ErrRuntime indicates the virtual machine could not execute an instruction.
	ErrRuntime
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrLexical:
		return "lexical error"
	case ErrSyntax:
		return "syntax error"
	case ErrRuntime:
		return "runtime error"
	default:
		return "error"
	}
}

var (
	// ErrCompile matches any *CompileError with errors.Is.
	ErrCompile = errors.New("compile error")

	// ErrStackUnderflow is reported when an instruction pops an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrBadConstant is reported when OP_CONSTANT refers outside the pool.
	ErrBadConstant = errors.New("constant index out of range")

	// ErrUnknownOpcode is reported for an opcode the VM does not implement.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrChunkNotFinalized is reported when running a chunk that is still
	// being written.
	ErrChunkNotFinalized = errors.New("chunk is not finalized")
)

// CompileError is a lexical or syntax error found while compiling.
type CompileError struct {
	Kind ErrorKind

	// Message describes what was expected, e.g. "Expect expression.".
	Message string

	// Line is the 1-based source line of the offending token.
	Line int

	// Where locates the error within the line: " at end", " at '+'", or
	// empty for lexical errors whose message already says what went wrong.
	Where string

	// SourceLine is the text of the offending line, when known.
	SourceLine string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

// Is reports whether target is ErrCompile.
func (e *CompileError) Is(target error) bool {
	return target == ErrCompile
}

// FriendlyErrorMessage returns the error followed by the offending source line.
func (e *CompileError) FriendlyErrorMessage() string {
	var msg bytes.Buffer
	msg.WriteString(e.Error())
	msg.WriteString("\n")
	if e.SourceLine != "" {
		fmt.Fprintf(&msg, " %4d | %s\n", e.Line, e.SourceLine)
	}
	return msg.String()
}

// RuntimeError is an error raised while executing an instruction.
type RuntimeError struct {
	// Op is the instruction that failed.
	Op op.Code

	// IP is the index of the failed instruction.
	IP int

	// Line is the source line of the failed instruction, or 0 if unknown.
	Line int

	// Err is the underlying cause, e.g. ErrStackUnderflow.
	Err error
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %v in %s\n[line %d] in script", ErrRuntime, e.Err, e.Op, e.Line)
	}
	return fmt.Sprintf("%s: %v in %s", ErrRuntime, e.Err, e.Op)
}

// Unwrap returns the underlying cause of the error.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a RuntimeError for the instruction at ip.
func NewRuntimeError(code op.Code, ip, line int, err error) *RuntimeError {
	return &RuntimeError{Op: code, IP: ip, Line: line, Err: err}
}

// FormatErrors formats a multierror as one error per line, in the order the
// errors were recorded. It is used as the multierror.ErrorFormatFunc for
// compile errors.
func FormatErrors(errs []error) string {
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}

// CompileErrors extracts every *CompileError contained in err, which may be
// a single error or a multierror.
func CompileErrors(err error) []*CompileError {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		var result []*CompileError
		for _, e := range merr.Errors {
			var ce *CompileError
			if errors.As(e, &ce) {
				result = append(result, ce)
			}
		}
		return result
	}
	var ce *CompileError
	if errors.As(err, &ce) {
		return []*CompileError{ce}
	}
	return nil
}
