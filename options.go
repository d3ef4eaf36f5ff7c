package loxvm

import (
	"github.com/deepnoodle-ai/loxvm/compiler"
	"github.com/deepnoodle-ai/loxvm/vm"
	"github.com/rs/zerolog"
)

// Option configures a compilation or execution.
type Option func(*options)

type options struct {
	name     string
	logger   *zerolog.Logger
	observer vm.Observer
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) compilerOpts() []compiler.Option {
	var opts []compiler.Option
	if o.name != "" {
		opts = append(opts, compiler.WithName(o.name))
	}
	if o.logger != nil {
		opts = append(opts, compiler.WithLogger(*o.logger))
	}
	return opts
}

func (o *options) vmOpts() []vm.Option {
	var opts []vm.Option
	if o.logger != nil {
		opts = append(opts, vm.WithLogger(*o.logger))
	}
	if o.observer != nil {
		opts = append(opts, vm.WithObserver(o.observer))
	}
	return opts
}

// WithName sets the name of the chunk, used in disassembly and logs.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger passed to the compiler and the VM. The token
// dump is logged at debug level and every executed instruction at trace
// level.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithObserver sets an observer for VM execution events.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}
