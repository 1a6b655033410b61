package crnparser

import "fmt"

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF        TokenKind = iota
	TokenNewline              // \n
	TokenIdentifier           // [A-Za-z0-9_]+ with at least one non-digit
	TokenInteger              // [0-9]+
	TokenArrow                // =>
	TokenPlus                 // +
	TokenComma                // ,
	TokenDot                  // .
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenNewline:    "end of line",
	TokenIdentifier: "identifier",
	TokenInteger:    "integer",
	TokenArrow:      "'=>'",
	TokenPlus:       "'+'",
	TokenComma:      "','",
	TokenDot:        "'.'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     Position
}

// describe renders the token for the Got field of a SyntaxError.
func (t Token) describe() string {
	if t.Kind == TokenIdentifier || t.Kind == TokenInteger {
		return fmt.Sprintf("%s %q", t.Kind, t.Literal)
	}
	return t.Kind.String()
}
