package crnparser

import "errors"

// Parse parses reaction network source text into a ParseTree.
// Returns a *SyntaxError on failure. When the input could not be tokenized,
// the *LexError is kept as the SyntaxError's Cause.
func Parse(src string) (*ParseTree, error) {
	p := &parser{lex: NewLexer([]byte(src))}
	return p.parseNetwork()
}

type parser struct {
	lex *Lexer
}

// peek and next name the rule being matched and what it expects, so that a
// lexer failure is reported in grammar terms.
func (p *parser) peek(rule, expected string) (Token, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return Token{}, inRule(err, rule, expected)
	}
	return tok, nil
}

func (p *parser) next(rule, expected string) (Token, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Token{}, inRule(err, rule, expected)
	}
	return tok, nil
}

func (p *parser) expect(kind TokenKind, rule string) (Token, error) {
	tok, err := p.next(rule, kind.String())
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, unexpected(tok, rule, kind.String())
	}
	return tok, nil
}

func inRule(err error, rule, expected string) error {
	var le *LexError
	if !errors.As(err, &le) {
		return err
	}
	return &SyntaxError{
		ParseError: ParseError{Pos: le.Pos, Cause: le},
		Rule:       rule,
		Expected:   expected,
		Got:        le.Message,
	}
}

func unexpected(tok Token, rule, expected string) *SyntaxError {
	return &SyntaxError{
		ParseError: ParseError{Pos: tok.Pos},
		Rule:       rule,
		Expected:   expected,
		Got:        tok.describe(),
	}
}

const statementStart = "reaction, species count, or blank line"

// reaction_network := (reaction | species_count | blank_line)* EOF
func (p *parser) parseNetwork() (*ParseTree, error) {
	tree := &ParseTree{}
	for {
		tok, err := p.peek("reaction_network", statementStart)
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case TokenEOF:
			return tree, nil

		case TokenNewline:
			// Blank or comment-only line.
			_, _ = p.next("reaction_network", statementStart)

		case TokenComma:
			sep, err := p.parseSeparator()
			if err != nil {
				return nil, err
			}
			tree.Lines = append(tree.Lines, sep)

		case TokenIdentifier, TokenInteger:
			line, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			tree.Lines = append(tree.Lines, line)

		default:
			return nil, unexpected(tok, "reaction_network", statementStart)
		}
	}
}

// parseSeparator parses a line holding only commas.
func (p *parser) parseSeparator() (*SeparatorNode, error) {
	tok, _ := p.peek("blank_line", "','")
	if err := p.endOfLine("blank_line"); err != nil {
		return nil, err
	}
	return &SeparatorNode{Pos: tok.Pos}, nil
}

// parseStatement disambiguates between a reaction and a species count.
// A leading integer can only start a term; a leading name followed by ','
// is a declaration.
func (p *parser) parseStatement() (Line, error) {
	tok, _ := p.peek("reaction_network", statementStart)

	if tok.Kind == TokenInteger {
		first, err := p.parseTerm("reactants", "'=>'")
		if err != nil {
			return nil, err
		}
		return p.parseReaction(first)
	}

	name, err := p.parseName("reaction", "'+', '=>' or ','")
	if err != nil {
		return nil, err
	}

	next, err := p.peek("reaction", "'+', '=>' or ','")
	if err != nil {
		return nil, err
	}
	if next.Kind == TokenComma {
		return p.parseSpeciesCount(name)
	}
	if next.Kind != TokenPlus && next.Kind != TokenArrow {
		return nil, unexpected(next, "reaction", "'+', '=>' or ','")
	}
	return p.parseReaction(&TermNode{Name: name, Pos: name.Pos})
}

// species_count := name "," coefficient ","
func (p *parser) parseSpeciesCount(name *NameNode) (*SpeciesCountNode, error) {
	if _, err := p.expect(TokenComma, "species_count"); err != nil {
		return nil, err
	}
	count, err := p.expect(TokenInteger, "coefficient")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenComma, "species_count"); err != nil {
		return nil, err
	}
	if err := p.endOfLine("species_count"); err != nil {
		return nil, err
	}
	return &SpeciesCountNode{
		Name:  name,
		Count: &CoefficientNode{Text: count.Literal, Pos: count.Pos},
		Pos:   name.Pos,
	}, nil
}

// reaction := reactants "=>" products "," reaction_rate ","
func (p *parser) parseReaction(first *TermNode) (*ReactionNode, error) {
	reactants, err := p.parseTermsAfter(first, "reactants", "'=>'")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenArrow, "reactants"); err != nil {
		return nil, err
	}

	head, err := p.parseTerm("products", "','")
	if err != nil {
		return nil, err
	}
	products, err := p.parseTermsAfter(head, "products", "','")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenComma, "reaction"); err != nil {
		return nil, err
	}
	rate, err := p.expect(TokenInteger, "reaction_rate")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenComma, "reaction"); err != nil {
		return nil, err
	}
	if err := p.endOfLine("reaction"); err != nil {
		return nil, err
	}

	return &ReactionNode{
		Reactants: reactants,
		Products:  products,
		Rate:      &RateNode{Text: rate.Literal, Pos: rate.Pos},
		Pos:       first.Pos,
	}, nil
}

// parseTermsAfter parses ("+" term)* following an already parsed term.
// follow is the token that ends the side.
func (p *parser) parseTermsAfter(first *TermNode, rule, follow string) ([]*TermNode, error) {
	terms := []*TermNode{first}
	for {
		tok, err := p.peek(rule, "'+' or "+follow)
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenPlus {
			return terms, nil
		}
		_, _ = p.next(rule, "'+'") // consume +

		term, err := p.parseTerm(rule, follow)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
}

// term := [coefficient WS] name
func (p *parser) parseTerm(rule, follow string) (*TermNode, error) {
	tok, err := p.peek(rule, "term")
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case TokenInteger:
		_, _ = p.next(rule, "term")
		name, err := p.parseName(rule, "'+' or "+follow)
		if err != nil {
			return nil, err
		}
		return &TermNode{
			Coefficient: &CoefficientNode{Text: tok.Literal, Pos: tok.Pos},
			Name:        name,
			Pos:         tok.Pos,
		}, nil

	case TokenIdentifier:
		name, err := p.parseName(rule, "'+' or "+follow)
		if err != nil {
			return nil, err
		}
		return &TermNode{Name: name, Pos: name.Pos}, nil

	default:
		return nil, unexpected(tok, rule, "term")
	}
}

// name := identifier ("." identifier)*
//
// Segments after the first may be all digits. A name is a single word, so
// no whitespace may surround its dots. rule and follow describe what the
// enclosing rule expects once the name is complete.
func (p *parser) parseName(rule, follow string) (*NameNode, error) {
	first, err := p.expect(TokenIdentifier, "name")
	if err != nil {
		return nil, err
	}

	text := first.Literal
	end := first.Pos.Offset + len(first.Literal)
	for {
		dot, err := p.peek(rule, follow)
		if err != nil {
			return nil, err
		}
		if dot.Kind != TokenDot || dot.Pos.Offset != end {
			break
		}
		_, _ = p.next("name", "'.'") // consume .

		seg, err := p.next("name", "identifier after '.'")
		if err != nil {
			return nil, err
		}
		if (seg.Kind != TokenIdentifier && seg.Kind != TokenInteger) || seg.Pos.Offset != dot.Pos.Offset+1 {
			return nil, unexpected(seg, "name", "identifier after '.'")
		}
		text += "." + seg.Literal
		end = seg.Pos.Offset + len(seg.Literal)
	}

	return &NameNode{Text: text, Pos: first.Pos}, nil
}

// endOfLine consumes any trailing empty fields and the line terminator.
func (p *parser) endOfLine(rule string) error {
	for {
		tok, err := p.next(rule, "end of line")
		if err != nil {
			return err
		}
		switch tok.Kind {
		case TokenComma:
			continue
		case TokenNewline, TokenEOF:
			return nil
		default:
			return unexpected(tok, rule, "end of line")
		}
	}
}
