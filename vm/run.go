package vm

import (
	"context"

	"github.com/deepnoodle-ai/loxvm/bytecode"
)

// Run the given chunk in a new Virtual Machine and return the result.
// The bool is false if the chunk returned with an empty stack.
func Run(ctx context.Context, chunk *bytecode.Chunk, options ...Option) (bytecode.Value, bool, error) {
	machine := New(options...)
	if err := machine.Interpret(ctx, chunk); err != nil {
		return 0, false, err
	}
	result, ok := machine.Result()
	return result, ok, nil
}
