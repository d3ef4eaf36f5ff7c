// Package vm provides a VirtualMachine that executes compiled chunks.
package vm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/deepnoodle-ai/loxvm/bytecode"
	"github.com/deepnoodle-ai/loxvm/errz"
	"github.com/deepnoodle-ai/loxvm/op"
	"github.com/rs/zerolog"
)

const (
	// DefaultStackSize is the initial capacity of the value stack. The stack
	// grows beyond it as needed.
	DefaultStackSize = 256

	// DefaultContextCheckInterval is the number of instructions between
	// deterministic checks of ctx.Done(). Set to 0 to disable.
	DefaultContextCheckInterval = 1000
)

var (
	// ErrAlreadyRunning is returned when Interpret is called on a VM that is
	// in the middle of another run.
	ErrAlreadyRunning = errors.New("vm is already running")

	// ErrHalted is returned when an observer stops execution.
	ErrHalted = errors.New("execution halted by observer")
)

// State is the lifecycle state of a VirtualMachine.
type State int

const (
	// StateIdle is the state of a VM that has never run.
	StateIdle State = iota
	// StateRunning is the state during Interpret.
	StateRunning
	// StateHalted is the state after a run ended, successfully or not.
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type VirtualMachine struct {
	ip        int // instruction pointer
	stack     []bytecode.Value
	chunk     *bytecode.Chunk
	result    bytecode.Value
	hasResult bool
	state     State
	running   bool
	runMutex  sync.Mutex
	logger    zerolog.Logger

	// contextCheckInterval is the number of instructions between deterministic
	// checks of ctx.Done(). A value of 0 disables the check.
	contextCheckInterval int

	// observer receives a callback for each step selected by its config.
	// If nil, no callbacks are made.
	observer       Observer
	observerConfig ObserverConfig
}

// New creates a new Virtual Machine. The same VM may be used to interpret
// any number of chunks, one at a time.
func New(options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		stack:                make([]bytecode.Value, 0, DefaultStackSize),
		logger:               zerolog.Nop(),
		contextCheckInterval: DefaultContextCheckInterval,
	}
	for _, opt := range options {
		opt(vm)
	}
	if vm.observer != nil {
		vm.observerConfig = NormalizeConfig(vm.observer.Config())
	}
	return vm
}

func (vm *VirtualMachine) start(chunk *bytecode.Chunk) error {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	if vm.running {
		return ErrAlreadyRunning
	}
	vm.running = true
	vm.state = StateRunning

	// Nothing carries over from a previous run.
	vm.chunk = chunk
	vm.ip = 0
	vm.stack = vm.stack[:0]
	vm.result = 0
	vm.hasResult = false
	return nil
}

func (vm *VirtualMachine) stop() {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	vm.running = false
	vm.state = StateHalted
}

// Interpret runs the chunk from its first instruction until it executes
// OP_RETURN or runs out of instructions. On success the value popped by
// OP_RETURN, if any, is available from Result.
//
// A failed instruction stops the run immediately with an *errz.RuntimeError.
// Only finalized chunks are accepted.
func (vm *VirtualMachine) Interpret(ctx context.Context, chunk *bytecode.Chunk) (err error) {
	if chunk == nil {
		return errors.New("vm: nil chunk")
	}
	if !chunk.Finalized() {
		return fmt.Errorf("%w: %s", errz.ErrChunkNotFinalized, chunk.Name())
	}

	// Set up some guarantees:
	// 1. It is an error to call Interpret on a VM that is already running
	// 2. The running flag will always be set to false when Interpret returns
	// 3. Any panics are translated to errors and the VM is stopped
	if err := vm.start(chunk); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		vm.stop()
	}()

	err = vm.eval(ctx)
	vm.logger.Debug().
		Str("chunk", chunk.Name()).
		Int("ip", vm.ip).
		Bool("has_result", vm.hasResult).
		Err(err).
		Msg("interpreted chunk")
	return err
}

func (vm *VirtualMachine) eval(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Instruction counter for deterministic context checking
	var instructionCount int
	checkInterval := vm.contextCheckInterval
	doneChan := ctx.Done()

	// Used by StepSampled and StepOnLine observers
	var stepCount, lastLine int

	for vm.ip < vm.chunk.Len() {

		if checkInterval > 0 && doneChan != nil {
			instructionCount++
			if instructionCount >= checkInterval {
				instructionCount = 0
				select {
				case <-doneChan:
					return ctx.Err()
				default:
				}
			}
		}

		ip := vm.ip
		instr := vm.chunk.InstructionAt(ip)
		vm.trace(ip, instr)

		if vm.observer != nil {
			line := vm.chunk.LineFor(ip)
			if vm.shouldStep(stepCount, line, lastLine) {
				event := StepEvent{
					IP:         ip,
					Opcode:     instr.Op,
					OpcodeName: instr.Op.String(),
					Operand:    instr.Operand,
					Line:       line,
					StackDepth: len(vm.stack),
				}
				if !vm.observer.OnStep(event) {
					return ErrHalted
				}
			}
			stepCount++
			lastLine = line
		}

		// Advance the instruction pointer before executing the instruction.
		vm.ip++

		switch instr.Op {
		case op.Constant:
			if instr.Operand < 0 || instr.Operand >= vm.chunk.ConstantCount() {
				return vm.runtimeError(instr.Op, ip, errz.ErrBadConstant)
			}
			vm.push(vm.chunk.ConstantAt(instr.Operand))
		case op.Add, op.Subtract, op.Multiply, op.Divide:
			if len(vm.stack) < 2 {
				return vm.runtimeError(instr.Op, ip, errz.ErrStackUnderflow)
			}
			b := vm.pop()
			a := vm.pop()
			vm.push(arithmetic(instr.Op, a, b))
		case op.Negate:
			if len(vm.stack) < 1 {
				return vm.runtimeError(instr.Op, ip, errz.ErrStackUnderflow)
			}
			vm.push(-vm.pop())
		case op.Return:
			if len(vm.stack) > 0 {
				vm.result = vm.pop()
				vm.hasResult = true
			}
			return nil
		default:
			return vm.runtimeError(instr.Op, ip, errz.ErrUnknownOpcode)
		}
	}
	return nil
}

// arithmetic applies a binary operator. Division by zero produces an
// infinity or NaN as IEEE-754 prescribes.
func arithmetic(code op.Code, a, b bytecode.Value) bytecode.Value {
	switch code {
	case op.Add:
		return a + b
	case op.Subtract:
		return a - b
	case op.Multiply:
		return a * b
	default:
		return a / b
	}
}

func (vm *VirtualMachine) shouldStep(count, line, lastLine int) bool {
	switch vm.observerConfig.StepMode {
	case StepNone:
		return false
	case StepSampled:
		return count%vm.observerConfig.SampleInterval == 0
	case StepOnLine:
		return count == 0 || line != lastLine
	default:
		return true
	}
}

// trace logs the stack and the instruction about to execute.
func (vm *VirtualMachine) trace(ip int, instr bytecode.Instruction) {
	e := vm.logger.Trace()
	if !e.Enabled() {
		return
	}
	e.Str("chunk", vm.chunk.Name()).
		Int("ip", ip).
		Int("line", vm.chunk.LineFor(ip)).
		Str("op", instr.Op.String())
	if op.GetInfo(instr.Op).OperandCount > 0 {
		e.Int("operand", instr.Operand)
	}
	e.Str("stack", formatStack(vm.stack)).Msg("step")
}

func formatStack(stack []bytecode.Value) string {
	var sb strings.Builder
	for _, v := range stack {
		sb.WriteString("[ ")
		sb.WriteString(v.String())
		sb.WriteString(" ]")
	}
	return sb.String()
}

// Result returns the value popped by OP_RETURN during the last run. The bool
// is false if the run has not finished, failed before returning, or
// returned with an empty stack.
func (vm *VirtualMachine) Result() (bytecode.Value, bool) {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	if vm.running {
		return 0, false
	}
	return vm.result, vm.hasResult
}

// State returns the lifecycle state of the VM.
func (vm *VirtualMachine) State() State {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	return vm.state
}

// IP returns the instruction pointer. After a run it indexes the instruction
// following the last one executed.
func (vm *VirtualMachine) IP() int {
	return vm.ip
}

// StackDepth returns the number of values on the stack.
func (vm *VirtualMachine) StackDepth() int {
	return len(vm.stack)
}

func (vm *VirtualMachine) pop() bytecode.Value {
	top := len(vm.stack) - 1
	v := vm.stack[top]
	vm.stack = vm.stack[:top]
	return v
}

func (vm *VirtualMachine) push(v bytecode.Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VirtualMachine) runtimeError(code op.Code, ip int, err error) *errz.RuntimeError {
	rerr := errz.NewRuntimeError(code, ip, vm.chunk.LineFor(ip), err)
	vm.logger.Debug().Err(rerr).Str("chunk", vm.chunk.Name()).Msg("runtime error")
	return rerr
}
