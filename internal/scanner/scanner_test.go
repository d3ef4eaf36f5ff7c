package scanner

import (
	"testing"

	"github.com/deepnoodle-ai/loxvm/token"
	"github.com/stretchr/testify/require"
)

func types(tokens []token.Info) []token.Type {
	var result []token.Type
	for _, tok := range tokens {
		result = append(result, tok.Type)
	}
	return result
}

func TestSimpleExpression(t *testing.T) {
	tokens := Scan("1 + 2;")
	require.Equal(t, []token.Type{
		token.NUMBER,
		token.PLUS,
		token.NUMBER,
		token.SEMICOLON,
		token.EOF,
	}, types(tokens))
	require.Equal(t, float64(1), tokens[0].Number)
	require.Equal(t, float64(2), tokens[2].Number)
}

func TestNextToken(t *testing.T) {
	input := "(){};,.-+/* ! != = == > >= < <="

	tests := []struct {
		expectedType   token.Type
		expectedLexeme string
	}{
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.SEMICOLON, ";"},
		{token.COMMA, ","},
		{token.PERIOD, "."},
		{token.MINUS, "-"},
		{token.PLUS, "+"},
		{token.SLASH, "/"},
		{token.ASTERISK, "*"},
		{token.BANG, "!"},
		{token.NOT_EQ, "!="},
		{token.ASSIGN, "="},
		{token.EQ, "=="},
		{token.GT, ">"},
		{token.GT_EQUALS, ">="},
		{token.LT, "<"},
		{token.LT_EQUALS, "<="},
		{token.EOF, ""},
	}
	s := New(input)
	for i, tt := range tests {
		tok := s.Next()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - Lexeme wrong, expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestTwoCharOperatorsWithoutSpaces(t *testing.T) {
	require.Equal(t, []token.Type{
		token.NOT_EQ,
		token.EQ,
		token.ASSIGN,
		token.LT_EQUALS,
		token.ASSIGN,
		token.EOF,
	}, types(Scan("!====<==")))
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "and class else false for fun if nil or print return super this true var while foo _bar x1 classy"
	tokens := Scan(input)
	require.Equal(t, []token.Type{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FOR, token.FUN,
		token.IF, token.NIL, token.OR, token.PRINT, token.RETURN, token.SUPER,
		token.THIS, token.TRUE, token.VAR, token.WHILE,
		token.IDENT, token.IDENT, token.IDENT, token.IDENT,
		token.EOF,
	}, types(tokens))
	require.Equal(t, "foo", tokens[16].Literal)
	require.Equal(t, "_bar", tokens[17].Literal)
	require.Equal(t, "x1", tokens[18].Literal)
	require.Equal(t, "classy", tokens[19].Literal)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.14", 3.14},
		{"0.5", 0.5},
		{"1234567.125", 1234567.125},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Scan(tt.input)
			require.Len(t, tokens, 2)
			require.Equal(t, token.NUMBER, tokens[0].Type)
			require.Equal(t, tt.expected, tokens[0].Number)
			require.Equal(t, tt.input, tokens[0].Lexeme)
		})
	}
}

func TestNumberTrailingDot(t *testing.T) {
	tokens := Scan("1.")
	require.Equal(t, []token.Type{token.NUMBER, token.PERIOD, token.EOF}, types(tokens))
	require.Equal(t, float64(1), tokens[0].Number)

	tokens = Scan(".5")
	require.Equal(t, []token.Type{token.PERIOD, token.NUMBER, token.EOF}, types(tokens))
}

func TestString(t *testing.T) {
	tokens := Scan(`"test"`)
	require.Len(t, tokens, 2)
	require.Equal(t, token.STRING, tokens[0].Type)
	require.Equal(t, "test", tokens[0].Literal)
	require.Equal(t, `"test"`, tokens[0].Lexeme)
	require.Equal(t, token.EOF, tokens[1].Type)
}

func TestUnterminatedString(t *testing.T) {
	tokens := Scan(`"abc`)
	require.Len(t, tokens, 2)
	require.Equal(t, token.ERROR, tokens[0].Type)
	require.Equal(t, "Unterminated string.", tokens[0].Literal)
	require.Equal(t, token.EOF, tokens[1].Type)
}

func TestMultilineStringLines(t *testing.T) {
	tokens := Scan("\"a\nb\nc\" 1")
	require.Equal(t, token.STRING, tokens[0].Type)
	require.Equal(t, "a\nb\nc", tokens[0].Literal)
	require.Equal(t, 1, tokens[0].Line)
	require.Equal(t, token.NUMBER, tokens[1].Type)
	require.Equal(t, 3, tokens[1].Line)
}

func TestUnexpectedCharacter(t *testing.T) {
	tokens := Scan("1 @ 2")
	require.Equal(t, []token.Type{token.NUMBER, token.ERROR, token.NUMBER, token.EOF}, types(tokens))
	require.Equal(t, "Unexpected character.", tokens[1].Literal)
	require.Equal(t, "@", tokens[1].Lexeme)
}

func TestUnexpectedMultiByteCharacter(t *testing.T) {
	tokens := Scan("世 1")
	require.Equal(t, []token.Type{token.ERROR, token.NUMBER, token.EOF}, types(tokens))
	require.Equal(t, "世", tokens[0].Lexeme)
}

func TestLineCounting(t *testing.T) {
	tokens := Scan("1\n+\r\n\t2\n\n")
	require.Equal(t, []token.Type{token.NUMBER, token.PLUS, token.NUMBER, token.EOF}, types(tokens))
	require.Equal(t, 1, tokens[0].Line)
	require.Equal(t, 2, tokens[1].Line)
	require.Equal(t, 3, tokens[2].Line)
	require.Equal(t, 5, tokens[3].Line)
}

func TestCommentsDiscarded(t *testing.T) {
	tokens := Scan("1 // one\n+ 2 // two")
	require.Equal(t, []token.Type{token.NUMBER, token.PLUS, token.NUMBER, token.EOF}, types(tokens))
	require.Equal(t, 2, tokens[1].Line)
}

func TestCommentsRetained(t *testing.T) {
	tokens := Scan("1 // one\n2", WithComments())
	require.Equal(t, []token.Type{token.NUMBER, token.COMMENT, token.NUMBER, token.EOF}, types(tokens))
	require.Equal(t, " one", tokens[1].Literal)
	require.Equal(t, 1, tokens[1].Line)
}

func TestCommentAtEndOfInput(t *testing.T) {
	tokens := Scan("//", WithComments())
	require.Equal(t, []token.Type{token.COMMENT, token.EOF}, types(tokens))
	require.Equal(t, "", tokens[0].Literal)
}

func TestEmptyInput(t *testing.T) {
	tokens := Scan("")
	require.Len(t, tokens, 1)
	require.Equal(t, token.EOF, tokens[0].Type)
	require.Equal(t, 1, tokens[0].Line)
}

func TestNextAfterEOF(t *testing.T) {
	s := New("1")
	require.Equal(t, token.NUMBER, s.Next().Type)
	require.False(t, s.Done())
	require.Equal(t, token.EOF, s.Next().Type)
	require.True(t, s.Done())
	require.Equal(t, token.EOF, s.Next().Type)
}

func TestTokensStopsEarly(t *testing.T) {
	s := New("1 2 3")
	var seen int
	for range s.Tokens() {
		seen++
		if seen == 2 {
			break
		}
	}
	require.Equal(t, 2, seen)
	require.Equal(t, token.NUMBER, s.Next().Type)
	require.Equal(t, token.EOF, s.Next().Type)
}

func TestDeterministic(t *testing.T) {
	inputs := []string{
		"1 + 2;",
		"(1 + 2) * 3",
		"var x = \"hello\"; // greet\nprint x;",
		"a != b >= c",
	}
	for _, input := range inputs {
		require.Equal(t, Scan(input), Scan(input))
	}
}
