// Package scanner converts source text into a stream of tokens.
//
// A Scanner is created with New and then drained one token at a time by
// calling Next until an EOF token is returned. A Scanner cannot be rewound;
// create a new one to scan the same source again.
package scanner

import (
	"iter"
	"strconv"
	"unicode/utf8"

	"github.com/deepnoodle-ai/loxvm/token"
)

const (
	msgUnexpectedChar     = "Unexpected character."
	msgUnterminatedString = "Unterminated string."
)

// Option is a configuration function for a Scanner.
type Option func(*Scanner)

// WithComments makes the Scanner emit COMMENT tokens for line comments
// instead of discarding them.
func WithComments() Option {
	return func(s *Scanner) {
		s.comments = true
	}
}

// Scanner holds our object-state.
type Scanner struct {
	// the source being scanned
	source string

	// start of the token currently being scanned
	start int

	// position of the next unread byte
	current int

	// current line number (1-based)
	line int

	// line on which the current token started
	startLine int

	// emit COMMENT tokens
	comments bool

	// set once EOF has been returned
	done bool
}

// New creates a Scanner for the given source.
func New(source string, options ...Option) *Scanner {
	s := &Scanner{source: source, line: 1}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Scan drains a throwaway Scanner over source and returns every token,
// including the final EOF.
func Scan(source string, options ...Option) []token.Info {
	var tokens []token.Info
	for tok := range New(source, options...).Tokens() {
		tokens = append(tokens, tok)
	}
	return tokens
}

// Tokens returns the remaining tokens as a sequence that ends after the
// first EOF token.
func (s *Scanner) Tokens() iter.Seq[token.Info] {
	return func(yield func(token.Info) bool) {
		for !s.done {
			if !yield(s.Next()) {
				return
			}
		}
	}
}

// Done returns true once the EOF token has been produced.
func (s *Scanner) Done() bool {
	return s.done
}

// Next scans and returns the next token. Once the input is exhausted every
// call returns an EOF token.
func (s *Scanner) Next() token.Info {
	for {
		s.skipWhitespace()
		s.start = s.current
		s.startLine = s.line

		if s.isAtEnd() {
			s.done = true
			return s.newToken(token.EOF)
		}

		c := s.advance()
		switch {
		case isAlpha(c):
			return s.identifier()
		case isDigit(c):
			return s.number()
		}

		switch c {
		case '(':
			return s.newToken(token.LPAREN)
		case ')':
			return s.newToken(token.RPAREN)
		case '{':
			return s.newToken(token.LBRACE)
		case '}':
			return s.newToken(token.RBRACE)
		case ';':
			return s.newToken(token.SEMICOLON)
		case ',':
			return s.newToken(token.COMMA)
		case '.':
			return s.newToken(token.PERIOD)
		case '-':
			return s.newToken(token.MINUS)
		case '+':
			return s.newToken(token.PLUS)
		case '*':
			return s.newToken(token.ASTERISK)
		case '/':
			if s.match('/') {
				comment := s.lineComment()
				if s.comments {
					return comment
				}
				continue
			}
			return s.newToken(token.SLASH)
		case '!':
			return s.newToken(s.pick('=', token.NOT_EQ, token.BANG))
		case '=':
			return s.newToken(s.pick('=', token.EQ, token.ASSIGN))
		case '<':
			return s.newToken(s.pick('=', token.LT_EQUALS, token.LT))
		case '>':
			return s.newToken(s.pick('=', token.GT_EQUALS, token.GT))
		case '"':
			return s.string()
		}

		// Consume the rest of a multi-byte character so the error lexeme is
		// the whole rune.
		if c >= utf8.RuneSelf {
			_, size := utf8.DecodeRuneInString(s.source[s.start:])
			s.current = s.start + size
		}
		return s.errorToken(msgUnexpectedChar)
	}
}

func (s *Scanner) skipWhitespace() {
	for !s.isAtEnd() {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.current++
		case '\n':
			s.line++
			s.current++
		default:
			return
		}
	}
}

// lineComment consumes a comment up to, but not including, the next newline.
func (s *Scanner) lineComment() token.Info {
	for !s.isAtEnd() && s.peek() != '\n' {
		s.current++
	}
	tok := s.newToken(token.COMMENT)
	tok.Literal = s.source[s.start+2 : s.current]
	return tok
}

func (s *Scanner) identifier() token.Info {
	for !s.isAtEnd() && (isAlpha(s.peek()) || isDigit(s.peek())) {
		s.current++
	}
	text := s.source[s.start:s.current]
	tok := s.newToken(token.LookupIdentifier(text))
	if tok.Type == token.IDENT {
		tok.Literal = text
	}
	return tok
}

func (s *Scanner) number() token.Info {
	for !s.isAtEnd() && isDigit(s.peek()) {
		s.current++
	}
	// A fractional part needs at least one digit after the dot.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.current++
		for !s.isAtEnd() && isDigit(s.peek()) {
			s.current++
		}
	}
	text := s.source[s.start:s.current]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return s.errorToken(err.Error())
	}
	tok := s.newToken(token.NUMBER)
	tok.Number = value
	return tok
}

func (s *Scanner) string() token.Info {
	for !s.isAtEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.current++
	}
	if s.isAtEnd() {
		return s.errorToken(msgUnterminatedString)
	}
	s.current++ // closing quote
	tok := s.newToken(token.STRING)
	tok.Literal = s.source[s.start+1 : s.current-1]
	return tok
}

func (s *Scanner) newToken(typ token.Type) token.Info {
	return token.Info{
		Token: token.Token{
			Type:   typ,
			Lexeme: s.source[s.start:s.current],
		},
		Line: s.startLine,
	}
}

func (s *Scanner) errorToken(message string) token.Info {
	tok := s.newToken(token.ERROR)
	tok.Literal = message
	return tok
}

// pick consumes the next byte and returns matched if it equals expected,
// otherwise it returns otherwise without consuming anything.
func (s *Scanner) pick(expected byte, matched, otherwise token.Type) token.Type {
	if s.match(expected) {
		return matched
	}
	return otherwise
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
