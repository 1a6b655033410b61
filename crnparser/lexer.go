package crnparser

import "fmt"

// Lexer splits reaction network source into tokens, one line of notation at
// a time. A line ends in TokenNewline, so reactions and declarations never
// span lines. Runs of [A-Za-z0-9_] become TokenInteger when they hold only
// digits and TokenIdentifier otherwise, so "2a" is a name while "2 a" is a
// coefficient and a name. "=>" is the only two-byte token. A '-' before a
// digit is rejected outright since counts and rates are never negative.
// Spaces, tabs, carriage returns and '#' comments produce no tokens.
type Lexer struct {
	src    []byte
	pos    int // current byte offset
	line   int // current line (1-based)
	col    int // current column (1-based)
	peeked *Token
}

// NewLexer returns a Lexer positioned at line 1, column 1 of src.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Peek returns the next token without consuming it. The parser relies on a
// single token of lookahead to tell a declaration ("a,") from a reaction
// ("a +" or "a =>").
func (l *Lexer) Peek() (Token, error) {
	if l.peeked == nil {
		tok, err := l.scan()
		if err != nil {
			return Token{}, err
		}
		l.peeked = &tok
	}
	return *l.peeked, nil
}

// Next consumes and returns the next token. After TokenEOF every call
// returns TokenEOF again.
func (l *Lexer) Next() (Token, error) {
	tok, err := l.Peek()
	if err != nil {
		return Token{}, err
	}
	l.peeked = nil
	return tok, nil
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) skipBlanksAndComments() {
	for !l.atEnd() {
		switch ch := l.peek(); {
		case ch == ' ' || ch == '\t' || ch == '\r':
			l.advance()
		case ch == '#':
			// Comment runs to end of line; the newline itself is a token.
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scan() (Token, error) {
	l.skipBlanksAndComments()

	if l.atEnd() {
		return Token{Kind: TokenEOF, Pos: l.currentPos()}, nil
	}

	pos := l.currentPos()
	ch := l.peek()

	switch ch {
	case '\n':
		l.advance()
		return Token{Kind: TokenNewline, Literal: "\n", Pos: pos}, nil
	case ',':
		l.advance()
		return Token{Kind: TokenComma, Literal: ",", Pos: pos}, nil
	case '+':
		l.advance()
		return Token{Kind: TokenPlus, Literal: "+", Pos: pos}, nil
	case '.':
		l.advance()
		return Token{Kind: TokenDot, Literal: ".", Pos: pos}, nil
	case '=':
		if l.peekAt(1) == '>' {
			l.advance()
			l.advance()
			return Token{Kind: TokenArrow, Literal: "=>", Pos: pos}, nil
		}
	case '-':
		if isDigit(l.peekAt(1)) {
			l.advance()
			return Token{}, &LexError{ParseError{
				Message: "negative numbers are not allowed",
				Pos:     pos,
			}}
		}
	}

	if isWordPart(ch) {
		return l.scanWord(), nil
	}

	l.advance()
	return Token{}, &LexError{ParseError{
		Message: fmt.Sprintf("unexpected character %q", ch),
		Pos:     pos,
	}}
}

// scanWord consumes a run of word characters. A run made only of digits is
// an integer; anything else is an identifier.
func (l *Lexer) scanWord() Token {
	pos := l.currentPos()
	start := l.pos
	digits := true

	for !l.atEnd() && isWordPart(l.peek()) {
		if !isDigit(l.advance()) {
			digits = false
		}
	}

	literal := string(l.src[start:l.pos])
	if digits {
		return Token{Kind: TokenInteger, Literal: literal, Pos: pos}
	}
	return Token{Kind: TokenIdentifier, Literal: literal, Pos: pos}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWordPart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || isDigit(ch)
}
