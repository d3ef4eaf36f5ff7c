// Package compiler turns source code into bytecode in a single pass.
//
// There is no syntax tree. The compiler pulls tokens from the scanner one at
// a time and emits instructions into a [bytecode.Chunk] as soon as it has
// recognised the construct they belong to.
//
// # Pratt Parsing
//
// Expressions are parsed by precedence climbing. Every token type may have a
// prefix parse function (for tokens that start an expression, such as a
// number or an opening parenthesis), an infix parse function (for tokens that
// continue one, such as a binary operator), and an infix precedence.
//
// parsePrecedence(p) runs the prefix function of the token just consumed and
// then keeps absorbing infix operators for as long as the next operator binds
// at least as tightly as p. A left-associative operator parses its right
// operand at one level above its own, so in
//
//	2 + 3 * 4
//
// the right operand of + is parsed at factor precedence, which still admits
// the *, and the result is 2 + (3 * 4).
//
// # Error Recovery
//
// The first error puts the compiler into panic mode, in which further errors
// are not reported until the next synchronization point. In an expression
// grammar the only synchronization point is the end of input. The compiler
// keeps going after an error so that it can finish the chunk, but a chunk
// produced alongside an error must not be executed.
package compiler

import (
	"errors"
	"strings"

	"github.com/deepnoodle-ai/loxvm/bytecode"
	"github.com/deepnoodle-ai/loxvm/errz"
	"github.com/deepnoodle-ai/loxvm/internal/scanner"
	"github.com/deepnoodle-ai/loxvm/op"
	"github.com/deepnoodle-ai/loxvm/token"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

const (
	msgExpectExpression = "Expect expression."
	msgExpectRParen     = "Expect ')' after expression."
	msgExpectEnd        = "Expect end of expression."
	msgTooDeep          = "Expression nests too deeply."
)

// ErrAlreadyCompiled is returned when Compile is called twice on the same
// Compiler.
var ErrAlreadyCompiled = errors.New("compiler has already been used")

type (
	prefixParseFn func()
	infixParseFn  func()
)

// Compiler holds the state of one compilation. It should be used once, by
// calling Compile.
type Compiler struct {
	// the source being compiled
	source string

	// source split into lines, built on the first error
	lines []string

	// s is our scanner
	s *scanner.Scanner

	// previous holds the token most recently consumed.
	previous token.Info

	// current holds the next token to be consumed.
	current token.Info

	// the chunk being written
	chunk *bytecode.Chunk

	// errors recorded so far
	errs *multierror.Error

	// sticky for the whole compilation
	hadError bool

	// suppresses further errors until the next synchronization point
	panicking bool

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int

	name     string
	logger   zerolog.Logger
	compiled bool
}

// Compile compiles the given source into a finalized chunk. This is
// shorthand for creating a Compiler and calling Compile on it.
//
// If compilation fails, the returned error contains every reported
// *errz.CompileError and the returned chunk, although finalized, must not be
// executed. It is only useful for disassembly.
func Compile(source string, options ...Option) (*bytecode.Chunk, error) {
	return New(source, options...).Compile()
}

// New returns a Compiler for the given source.
func New(source string, options ...Option) *Compiler {
	c := &Compiler{
		source:         source,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
		name:           DefaultName,
		logger:         zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	c.s = scanner.New(source)
	c.chunk = bytecode.NewChunk(c.name)

	// Register prefix-functions
	c.registerPrefix(token.NUMBER, c.number)
	c.registerPrefix(token.LPAREN, c.grouping)
	c.registerPrefix(token.MINUS, c.unary)

	// Register infix functions
	c.registerInfix(token.PLUS, c.binary)
	c.registerInfix(token.MINUS, c.binary)
	c.registerInfix(token.ASTERISK, c.binary)
	c.registerInfix(token.SLASH, c.binary)
	return c
}

func (c *Compiler) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	c.prefixParseFns[tokenType] = fn
}

func (c *Compiler) registerInfix(tokenType token.Type, fn infixParseFn) {
	c.infixParseFns[tokenType] = fn
}

// Compile runs the compilation and returns the finalized chunk.
func (c *Compiler) Compile() (*bytecode.Chunk, error) {
	if c.compiled {
		return nil, ErrAlreadyCompiled
	}
	c.compiled = true

	if c.logger.Debug().Enabled() {
		c.debugScan()
	}

	c.advance()
	c.expression()
	c.synchronize()
	c.consume(token.EOF, msgExpectEnd)
	c.endCompiler()

	if c.hadError {
		return c.chunk, c.errs.ErrorOrNil()
	}
	return c.chunk, nil
}

// HadError returns true if any error was recorded.
func (c *Compiler) HadError() bool {
	return c.hadError
}

// debugScan dumps every token of the source using a throwaway scanner.
func (c *Compiler) debugScan() {
	for tok := range scanner.New(c.source, scanner.WithComments()).Tokens() {
		c.logger.Debug().
			Str("chunk", c.name).
			Int("line", tok.Line).
			Str("type", string(tok.Type)).
			Str("lexeme", tok.Lexeme).
			Msg("scanned token")
	}
}

// advance shifts current into previous and reads the next token, reporting
// and skipping any error tokens along the way.
func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.s.Next()
		switch c.current.Type {
		case token.COMMENT:
			continue
		case token.ERROR:
			c.errorAtCurrent(c.current.Literal)
			continue
		}
		return
	}
}

// consume advances past the current token if it has the expected type, and
// otherwise records an error without advancing.
func (c *Compiler) consume(expected token.Type, message string) {
	if c.current.Type == expected {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// synchronize leaves panic mode. The end of input is the only place where
// parsing can resume with confidence, so any tokens left over after an error
// are skipped.
func (c *Compiler) synchronize() {
	if !c.panicking {
		return
	}
	for c.current.Type != token.EOF {
		c.advance()
	}
	c.panicking = false
}

func (c *Compiler) endCompiler() {
	c.emit(bytecode.Simple(op.Return), c.previous.Line)
	c.chunk.Finalize()
	stats := c.chunk.Stats()
	c.logger.Debug().
		Str("chunk", c.name).
		Int("instructions", stats.InstructionCount).
		Int("constants", stats.ConstantCount).
		Int("line_runs", stats.LineRunCount).
		Bool("ok", !c.hadError).
		Msg("compiled chunk")
}

func (c *Compiler) emit(instr bytecode.Instruction, line int) {
	c.chunk.Write(instr, line)
}

func (c *Compiler) emitConstant(value bytecode.Value, line int) {
	c.emit(bytecode.Constant(c.chunk.AddConstant(value)), line)
}

func (c *Compiler) error(message string) {
	c.errorAt(c.previous, message)
}

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) errorAt(tok token.Info, message string) {
	if c.panicking {
		return
	}
	c.panicking = true
	c.hadError = true

	err := &errz.CompileError{
		Kind:       errz.ErrSyntax,
		Message:    message,
		Line:       tok.Line,
		SourceLine: c.sourceLine(tok.Line),
	}
	switch tok.Type {
	case token.EOF:
		err.Where = " at end"
	case token.ERROR:
		err.Kind = errz.ErrLexical
	default:
		err.Where = " at '" + tok.Lexeme + "'"
	}
	if c.errs == nil {
		c.errs = &multierror.Error{ErrorFormat: errz.FormatErrors}
	}
	c.errs = multierror.Append(c.errs, err)
	c.logger.Debug().Err(err).Str("chunk", c.name).Msg("compile error")
}

func (c *Compiler) sourceLine(line int) string {
	if c.lines == nil {
		c.lines = strings.Split(c.source, "\n")
	}
	if line < 1 || line > len(c.lines) {
		return ""
	}
	return strings.TrimRight(c.lines[line-1], "\r")
}
