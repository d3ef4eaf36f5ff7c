// Package loxvm compiles and runs arithmetic expressions on a small stack
// based virtual machine.
//
// Source text is compiled in a single pass into a [bytecode.Chunk], which a
// [vm.VirtualMachine] then executes:
//
//	result := loxvm.Interpret(ctx, "2 + 3 * 4")
//	if result.Status == loxvm.StatusOK && result.HasValue {
//		fmt.Println(result.Value) // 14
//	}
package loxvm

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/loxvm/bytecode"
	"github.com/deepnoodle-ai/loxvm/compiler"
	"github.com/deepnoodle-ai/loxvm/vm"
)

// Status is the outcome of interpreting a program.
type Status int

const (
	// StatusOK means the program compiled and ran to completion.
	StatusOK Status = iota
	// StatusCompileError means the source did not compile. No VM was run.
	StatusCompileError
	// StatusRuntimeError means the VM stopped on an instruction it could
	// not execute.
	StatusRuntimeError
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCompileError:
		return "compile error"
	case StatusRuntimeError:
		return "runtime error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result describes the outcome of Run or Interpret.
type Result struct {
	Status Status

	// Value is the value returned by the program. It is only meaningful
	// when HasValue is true.
	Value    bytecode.Value
	HasValue bool

	// Err holds the compile or runtime error, if any.
	Err error
}

// Compile compiles source code into a finalized chunk. On failure the
// returned error holds every *errz.CompileError that was reported, and the
// chunk must not be run.
func Compile(source string, opts ...Option) (*bytecode.Chunk, error) {
	o := collectOptions(opts...)
	return compiler.Compile(source, o.compilerOpts()...)
}

// Run executes a compiled chunk in a new VM.
func Run(ctx context.Context, chunk *bytecode.Chunk, opts ...Option) Result {
	o := collectOptions(opts...)
	value, ok, err := vm.Run(ctx, chunk, o.vmOpts()...)
	if err != nil {
		return Result{Status: StatusRuntimeError, Err: err}
	}
	return Result{Status: StatusOK, Value: value, HasValue: ok}
}

// Interpret compiles and runs source code. A compile failure is reported
// without running anything.
func Interpret(ctx context.Context, source string, opts ...Option) Result {
	chunk, err := Compile(source, opts...)
	if err != nil {
		return Result{Status: StatusCompileError, Err: err}
	}
	return Run(ctx, chunk, opts...)
}
