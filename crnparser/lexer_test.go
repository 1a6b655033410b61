package crnparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer([]byte(src))
	var tokens []Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	return tokens
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerPunctuation(t *testing.T) {
	tokens := collectTokens(t, "=> + , .")
	assert.Equal(t, []TokenKind{TokenArrow, TokenPlus, TokenComma, TokenDot, TokenEOF}, kinds(tokens))
	assert.Equal(t, "=>", tokens[0].Literal)
}

func TestLexerWords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"a", TokenIdentifier},
		{"next_value", TokenIdentifier},
		{"_x", TokenIdentifier},
		{"Plan123", TokenIdentifier},
		{"2a", TokenIdentifier},
		{"0", TokenInteger},
		{"42", TokenInteger},
		{"007", TokenInteger},
	}
	for _, tt := range tests {
		tokens := collectTokens(t, tt.input)
		require.Len(t, tokens, 2, "input: %s", tt.input)
		assert.Equal(t, tt.kind, tokens[0].Kind, "input: %s", tt.input)
		assert.Equal(t, tt.input, tokens[0].Literal, "input: %s", tt.input)
	}
}

func TestLexerDottedName(t *testing.T) {
	tokens := collectTokens(t, "destruct.done.partial.0")
	assert.Equal(t, []TokenKind{
		TokenIdentifier, TokenDot, TokenIdentifier, TokenDot,
		TokenIdentifier, TokenDot, TokenInteger, TokenEOF,
	}, kinds(tokens))
}

func TestLexerNewlinesAreTokens(t *testing.T) {
	tokens := collectTokens(t, "a\n\nb\r\n")
	assert.Equal(t, []TokenKind{
		TokenIdentifier, TokenNewline, TokenNewline, TokenIdentifier, TokenNewline, TokenEOF,
	}, kinds(tokens))
}

func TestLexerSkipsComments(t *testing.T) {
	tokens := collectTokens(t, "# header\na => b,1, # trailing\n#last")
	assert.Equal(t, []TokenKind{
		TokenNewline,
		TokenIdentifier, TokenArrow, TokenIdentifier, TokenComma, TokenInteger, TokenComma, TokenNewline,
		TokenEOF,
	}, kinds(tokens))
}

func TestLexerPositions(t *testing.T) {
	tokens := collectTokens(t, "a => b,1,\n  2 c")

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Pos)
	assert.Equal(t, Position{Line: 1, Column: 3, Offset: 2}, tokens[1].Pos) // =>
	assert.Equal(t, Position{Line: 1, Column: 6, Offset: 5}, tokens[2].Pos) // b

	last := tokens[len(tokens)-2]
	assert.Equal(t, "c", last.Literal)
	assert.Equal(t, 2, last.Pos.Line)
	assert.Equal(t, 5, last.Pos.Column)
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	lex := NewLexer([]byte("a b"))

	first, err := lex.Peek()
	require.NoError(t, err)
	again, err := lex.Peek()
	require.NoError(t, err)
	assert.Equal(t, first, again)

	next, err := lex.Next()
	require.NoError(t, err)
	assert.Equal(t, first, next)

	second, err := lex.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", second.Literal)
}

func TestLexerEOFRepeats(t *testing.T) {
	lex := NewLexer([]byte("a"))
	_, err := lex.Next()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		tok, err := lex.Next()
		require.NoError(t, err)
		assert.Equal(t, TokenEOF, tok.Kind)
		assert.Equal(t, 2, tok.Pos.Column)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
		column  int
	}{
		{"a = b", "unexpected character '='", 3},
		{"a,-5,", "negative numbers are not allowed", 3},
		{"a - b", "unexpected character '-'", 3},
		{"a;", "unexpected character ';'", 2},
	}
	for _, tt := range tests {
		lex := NewLexer([]byte(tt.input))
		var err error
		for err == nil {
			var tok Token
			tok, err = lex.Next()
			if tok.Kind == TokenEOF && err == nil {
				break
			}
		}
		require.Error(t, err, "input: %s", tt.input)
		var le *LexError
		require.ErrorAs(t, err, &le, "input: %s", tt.input)
		assert.Equal(t, tt.message, le.Message, "input: %s", tt.input)
		assert.Equal(t, tt.column, le.Pos.Column, "input: %s", tt.input)
		assert.Contains(t, err.Error(), "line 1", "input: %s", tt.input)
	}
}
