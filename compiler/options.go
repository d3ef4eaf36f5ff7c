package compiler

import "github.com/rs/zerolog"

const (
	// DefaultName is the chunk name used when none is given.
	DefaultName = "script"

	// DefaultMaxDepth is the default maximum nesting depth for expressions.
	DefaultMaxDepth = 500
)

// Option is a configuration function for a Compiler.
type Option func(*Compiler)

// WithName sets the name of the chunk being compiled.
func WithName(name string) Option {
	return func(c *Compiler) {
		c.name = name
	}
}

// WithLogger sets the logger used for the debug token dump and for
// reporting compile errors as they are recorded. The default logger
// discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithMaxDepth sets the maximum nesting depth for expressions.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(c *Compiler) {
		c.maxDepth = depth
	}
}
