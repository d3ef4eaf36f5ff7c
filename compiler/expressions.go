package compiler

import (
	"github.com/deepnoodle-ai/loxvm/bytecode"
	"github.com/deepnoodle-ai/loxvm/op"
	"github.com/deepnoodle-ai/loxvm/token"
)

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(precedence Precedence) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.maxDepth {
		c.errorAtCurrent(msgTooDeep)
		return
	}

	c.advance()
	prefix := c.prefixParseFns[c.previous.Type]
	if prefix == nil {
		c.error(msgExpectExpression)
		return
	}
	prefix()

	for precedence <= precedenceOf(c.current.Type) {
		c.advance()
		infix := c.infixParseFns[c.previous.Type]
		infix()
	}
}

func (c *Compiler) number() {
	c.emitConstant(bytecode.Value(c.previous.Number), c.previous.Line)
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(token.RPAREN, msgExpectRParen)
}

func (c *Compiler) unary() {
	operator := c.previous

	// Compile the operand.
	c.parsePrecedence(PrecUnary)

	switch operator.Type {
	case token.MINUS:
		c.emit(bytecode.Simple(op.Negate), operator.Line)
	}
}

func (c *Compiler) binary() {
	operator := c.previous

	// Compile the right operand. Binary operators are left-associative, so
	// the right operand may only contain operators that bind tighter.
	c.parsePrecedence(precedenceOf(operator.Type) + 1)

	switch operator.Type {
	case token.PLUS:
		c.emit(bytecode.Simple(op.Add), operator.Line)
	case token.MINUS:
		c.emit(bytecode.Simple(op.Subtract), operator.Line)
	case token.ASTERISK:
		c.emit(bytecode.Simple(op.Multiply), operator.Line)
	case token.SLASH:
		c.emit(bytecode.Simple(op.Divide), operator.Line)
	}
}
