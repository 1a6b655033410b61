package crnparser

import (
	"errors"
	"fmt"
)

// ParseError is the base error type for all crnparser errors.
type ParseError struct {
	Message string
	Pos     Position
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// LexError represents a lexer-level error (unexpected character). The parser
// reports it as the Cause of a *SyntaxError naming the rule being matched.
type LexError struct{ ParseError }

// SyntaxError represents a grammar-level error. Rule names the grammar rule
// being matched when the unexpected token was found.
type SyntaxError struct {
	ParseError
	Rule     string
	Expected string
	Got      string
}

func (e *SyntaxError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s: expected %s, got %s", e.Pos.Line, e.Pos.Column, e.Rule, e.Expected, e.Got)
	}
	return fmt.Sprintf("%s: expected %s, got %s", e.Rule, e.Expected, e.Got)
}

// LoweringKind classifies a LoweringError.
type LoweringKind int

const (
	// Malformed means a term has no species name.
	Malformed LoweringKind = iota
	// UnparsableNumber means a coefficient or rate is not a valid Count.
	UnparsableNumber
	// IncompleteReaction means a reaction lacks reactants, products, or a rate.
	IncompleteReaction
	// IncompleteDeclaration means a species count lacks its name or count.
	IncompleteDeclaration
	// UnexpectedNode means a node kind appeared where the grammar cannot
	// produce it.
	UnexpectedNode
)

func (k LoweringKind) String() string {
	switch k {
	case Malformed:
		return "malformed term"
	case UnparsableNumber:
		return "unparsable number"
	case IncompleteReaction:
		return "incomplete reaction"
	case IncompleteDeclaration:
		return "incomplete declaration"
	case UnexpectedNode:
		return "unexpected node"
	default:
		return fmt.Sprintf("LoweringKind(%d)", int(k))
	}
}

// LoweringError reports a parse tree that is well formed but cannot be turned
// into a network. Text holds the offending literal for UnparsableNumber.
type LoweringError struct {
	ParseError
	Kind LoweringKind
	Text string
}

// ParserErrorKind distinguishes failures of the parser from failures of the
// layer that obtains source text for it.
type ParserErrorKind int

const (
	// ParseFailed means the source did not parse or lower.
	ParseFailed ParserErrorKind = iota
	// UnsupportedExt means no grammar is registered for the source format.
	UnsupportedExt
	// InvalidFile means no source could be obtained at all.
	InvalidFile
)

func (k ParserErrorKind) String() string {
	switch k {
	case ParseFailed:
		return "parse failed"
	case UnsupportedExt:
		return "unsupported extension"
	case InvalidFile:
		return "invalid file"
	default:
		return fmt.Sprintf("ParserErrorKind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against a *ParserError of the same kind.
var (
	ErrParseFailed    = errors.New(ParseFailed.String())
	ErrUnsupportedExt = errors.New(UnsupportedExt.String())
	ErrInvalidFile    = errors.New(InvalidFile.String())
)

// ParserError is the error returned across the parser boundary. Cause holds
// the underlying *SyntaxError, *LoweringError, or I/O error.
type ParserError struct {
	Kind   ParserErrorKind
	Detail string
	Cause  error
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *ParserError) Unwrap() error { return e.Cause }

func (e *ParserError) Is(target error) bool {
	switch e.Kind {
	case ParseFailed:
		return target == ErrParseFailed
	case UnsupportedExt:
		return target == ErrUnsupportedExt
	case InvalidFile:
		return target == ErrInvalidFile
	}
	return false
}

func parseFailed(err error) *ParserError {
	return &ParserError{Kind: ParseFailed, Detail: err.Error(), Cause: err}
}
