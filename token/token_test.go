package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test looking up values succeeds, then fails
func TestLookup(t *testing.T) {
	for key, val := range keywords {

		// Obviously this will pass.
		if LookupIdentifier(key) != val {
			t.Errorf("Lookup of %s failed", key)
		}

		// Once the keywords are uppercase they'll no longer
		// match - so we find them as identifiers.
		if LookupIdentifier(strings.ToUpper(key)) != IDENT {
			t.Errorf("Lookup of %s failed", key)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	require.True(t, WHILE.IsKeyword())
	require.True(t, PRINT.IsKeyword())
	require.False(t, IDENT.IsKeyword())
	require.False(t, PLUS.IsKeyword())
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{Token{Type: NUMBER, Lexeme: "1", Number: 1}, "NUMBER(1)"},
		{Token{Type: NUMBER, Lexeme: "2.5", Number: 2.5}, "NUMBER(2.5)"},
		{Token{Type: STRING, Lexeme: `"hi"`, Literal: "hi"}, `STRING("hi")`},
		{Token{Type: IDENT, Lexeme: "foo", Literal: "foo"}, `IDENT("foo")`},
		{Token{Type: PLUS, Lexeme: "+"}, "+"},
		{Token{Type: EOF}, "EOF"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.tok.String())
	}
}

func TestInfoEmbedsToken(t *testing.T) {
	info := Info{Token: Token{Type: IDENT, Lexeme: "foo", Literal: "foo"}, Line: 3}
	require.Equal(t, IDENT, info.Type)
	require.Equal(t, "foo", info.Literal)
	require.Equal(t, 3, info.Line)
}
