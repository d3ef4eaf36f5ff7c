package vm

import "github.com/rs/zerolog"

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithLogger sets the logger for the VM. At trace level every instruction is
// logged together with the stack it is about to operate on.
func WithLogger(logger zerolog.Logger) Option {
	return func(vm *VirtualMachine) {
		vm.logger = logger
	}
}

// WithContextCheckInterval sets how often the VM checks ctx.Done() during
// execution. The interval is specified in number of instructions. A value of 0
// disables the check. The default is DefaultContextCheckInterval (1000).
func WithContextCheckInterval(interval int) Option {
	return func(vm *VirtualMachine) {
		vm.contextCheckInterval = interval
	}
}

// WithObserver sets an observer for VM execution events.
// Returning false from OnStep halts execution with ErrHalted.
func WithObserver(observer Observer) Option {
	return func(vm *VirtualMachine) {
		vm.observer = observer
	}
}
