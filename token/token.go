// Package token defines language keywords and tokens produced when scanning
// source code.
package token

import (
	"fmt"
	"strconv"
)

// Type describes the type of a token as a string.
type Type string

// Token represents one token scanned from the input source code.
type Token struct {
	Type Type

	// Lexeme is the exact source text the token was scanned from.
	Lexeme string

	// Literal carries the payload of IDENT (the name), STRING (the contents
	// without quotes), COMMENT (the comment text) and ERROR (the message).
	Literal string

	// Number is the value of a NUMBER token.
	Number float64
}

// Info pairs a Token with the 1-based source line on which it started.
type Info struct {
	Token
	Line int
}

// String returns a debug representation such as `NUMBER(1)` or `PLUS`.
func (t Token) String() string {
	switch t.Type {
	case NUMBER:
		return fmt.Sprintf("%s(%s)", t.Type, strconv.FormatFloat(t.Number, 'g', -1, 64))
	case IDENT, STRING, ERROR, COMMENT:
		return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
	default:
		return string(t.Type)
	}
}

// Token types
const (
	// Single-character tokens.
	LPAREN    Type = "("
	RPAREN    Type = ")"
	LBRACE    Type = "{"
	RBRACE    Type = "}"
	COMMA     Type = ","
	PERIOD    Type = "."
	MINUS     Type = "-"
	PLUS      Type = "+"
	SEMICOLON Type = ";"
	SLASH     Type = "/"
	ASTERISK  Type = "*"

	// One or two character tokens.
	BANG      Type = "!"
	NOT_EQ    Type = "!="
	ASSIGN    Type = "="
	EQ        Type = "=="
	GT        Type = ">"
	GT_EQUALS Type = ">="
	LT        Type = "<"
	LT_EQUALS Type = "<="

	// Literals.
	IDENT  Type = "IDENT"
	STRING Type = "STRING"
	NUMBER Type = "NUMBER"

	// Keywords.
	AND    Type = "AND"
	CLASS  Type = "CLASS"
	ELSE   Type = "ELSE"
	FALSE  Type = "FALSE"
	FOR    Type = "FOR"
	FUN    Type = "FUN"
	IF     Type = "IF"
	NIL    Type = "NIL"
	OR     Type = "OR"
	PRINT  Type = "PRINT"
	RETURN Type = "RETURN"
	SUPER  Type = "SUPER"
	THIS   Type = "THIS"
	TRUE   Type = "TRUE"
	VAR    Type = "VAR"
	WHILE  Type = "WHILE"

	COMMENT Type = "COMMENT"
	ERROR   Type = "ERROR"
	EOF     Type = "EOF"
)

// Reserved keywords
var keywords = map[string]Type{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// LookupIdentifier reports whether identifier is a keyword, returning IDENT
// when it is not.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the type is one of the reserved keywords.
func (t Type) IsKeyword() bool {
	for _, kw := range keywords {
		if kw == t {
			return true
		}
	}
	return false
}
