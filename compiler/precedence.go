package compiler

import "github.com/deepnoodle-ai/loxvm/token"

// Precedence is the binding power of an operator. Higher binds tighter.
type Precedence int

// Precedence order for operators, lowest to highest
const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary
)

// Infix precedences for each token type. Token types that are absent have
// no infix rule and stop an expression.
var precedences = map[token.Type]Precedence{
	token.PLUS:     PrecTerm,
	token.MINUS:    PrecTerm,
	token.ASTERISK: PrecFactor,
	token.SLASH:    PrecFactor,
}

func precedenceOf(typ token.Type) Precedence {
	return precedences[typ]
}
