package crnparser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/martinemde/marlea/crn"
)

// ParseNetwork parses and lowers src in one step. Every failure is returned
// as a *ParserError of kind ParseFailed wrapping the underlying *SyntaxError
// or *LoweringError.
func ParseNetwork(src string) (*crn.Network, error) {
	tree, err := Parse(src)
	if err != nil {
		return nil, parseFailed(err)
	}
	net, err := Lower(tree)
	if err != nil {
		return nil, parseFailed(err)
	}
	return net, nil
}

// Lower walks tree once, in source order, and builds a network.
//
// Reactions are added to the set, so duplicate lines collapse. Every species
// a reaction mentions gets a zero count unless it already has one. A species
// count line always sets its entry, so the last declaration of a name wins
// wherever it appears relative to the reactions that use it.
func Lower(tree *ParseTree) (*crn.Network, error) {
	net := crn.NewNetwork()
	if tree == nil {
		return net, nil
	}

	for _, line := range tree.Lines {
		switch n := line.(type) {
		case *ReactionNode:
			r, err := lowerReaction(n)
			if err != nil {
				return nil, err
			}
			net.Reactions.Add(r)
			for _, name := range r.Species() {
				net.Solution.Ensure(name)
			}

		case *SpeciesCountNode:
			name, count, err := lowerSpeciesCount(n)
			if err != nil {
				return nil, err
			}
			net.Solution.Set(name, count)

		case *SeparatorNode:

		default:
			return nil, unexpectedNode(line, "reaction, species count, or separator")
		}
	}
	return net, nil
}

func lowerReaction(n *ReactionNode) (crn.Reaction, error) {
	if n == nil {
		n = &ReactionNode{}
	}
	var missing string
	switch {
	case len(n.Reactants) == 0:
		missing = "reactants"
	case len(n.Products) == 0:
		missing = "products"
	case n.Rate == nil:
		missing = "reaction_rate"
	}
	if missing != "" {
		return crn.Reaction{}, &LoweringError{
			ParseError: ParseError{
				Message: fmt.Sprintf("%s: reaction has no %s", IncompleteReaction, missing),
				Pos:     n.Pos,
			},
			Kind: IncompleteReaction,
		}
	}

	reactants, err := lowerTerms(n.Reactants, n.Pos)
	if err != nil {
		return crn.Reaction{}, err
	}
	products, err := lowerTerms(n.Products, n.Pos)
	if err != nil {
		return crn.Reaction{}, err
	}
	rate, err := lowerCount(n.Rate.Text, n.Rate.Pos, "reaction_rate")
	if err != nil {
		return crn.Reaction{}, err
	}

	return crn.Reaction{Reactants: reactants, Products: products, Rate: rate}, nil
}

// lowerTerms lowers one side of a reaction. Repeated species are folded into
// their first occurrence, so "b + b" and "2 b" lower to the same term. A nil
// term is reported at the reaction's position.
func lowerTerms(nodes []*TermNode, reactionPos Position) ([]crn.Term, error) {
	terms := make([]crn.Term, 0, len(nodes))
	seen := make(map[crn.Name]int, len(nodes))
	for _, n := range nodes {
		if n == nil {
			n = &TermNode{Pos: reactionPos}
		}
		t, err := lowerTerm(n)
		if err != nil {
			return nil, err
		}
		i, ok := seen[t.Species]
		if !ok {
			seen[t.Species] = len(terms)
			terms = append(terms, t)
			continue
		}
		sum := terms[i].Coefficient + t.Coefficient
		if sum < t.Coefficient {
			literal := "1"
			if n.Coefficient != nil {
				literal = n.Coefficient.Text
			}
			return nil, &LoweringError{
				ParseError: ParseError{
					Message: fmt.Sprintf("%s: coefficients of %s overflow", UnparsableNumber, t.Species),
					Pos:     n.Pos,
				},
				Kind: UnparsableNumber,
				Text: literal,
			}
		}
		terms[i].Coefficient = sum
	}
	return terms, nil
}

func lowerTerm(n *TermNode) (crn.Term, error) {
	if n.Name == nil {
		return crn.Term{}, &LoweringError{
			ParseError: ParseError{
				Message: fmt.Sprintf("%s: term has no species name", Malformed),
				Pos:     n.Pos,
			},
			Kind: Malformed,
		}
	}

	term := crn.NewTerm(lowerName(n.Name))
	if n.Coefficient != nil {
		c, err := lowerCount(n.Coefficient.Text, n.Coefficient.Pos, "coefficient")
		if err != nil {
			return crn.Term{}, err
		}
		term.Coefficient = c
	}
	return term, nil
}

func lowerName(n *NameNode) crn.Name {
	return crn.Name(n.Text)
}

func lowerSpeciesCount(n *SpeciesCountNode) (crn.Name, crn.Count, error) {
	if n == nil {
		n = &SpeciesCountNode{}
	}
	var missing string
	switch {
	case n.Name == nil:
		missing = "name"
	case n.Count == nil:
		missing = "coefficient"
	}
	if missing != "" {
		return "", 0, &LoweringError{
			ParseError: ParseError{
				Message: fmt.Sprintf("%s: species count has no %s", IncompleteDeclaration, missing),
				Pos:     n.Pos,
			},
			Kind: IncompleteDeclaration,
		}
	}

	count, err := lowerCount(n.Count.Text, n.Count.Pos, "coefficient")
	if err != nil {
		return "", 0, err
	}
	return lowerName(n.Name), count, nil
}

// lowerCount converts a digit literal into a Count. The grammar admits only
// digits, so in practice this fails only on overflow.
func lowerCount(text string, pos Position, rule string) (crn.Count, error) {
	valid := text != ""
	for i := 0; valid && i < len(text); i++ {
		valid = isDigit(text[i])
	}

	var err error
	var n uint64
	if valid {
		n, err = strconv.ParseUint(text, 10, 64)
	} else {
		err = errors.New("not a non-negative integer")
	}
	if err != nil {
		return 0, &LoweringError{
			ParseError: ParseError{
				Message: fmt.Sprintf("%s: invalid %s %q", UnparsableNumber, rule, text),
				Pos:     pos,
				Cause:   err,
			},
			Kind: UnparsableNumber,
			Text: text,
		}
	}
	return crn.Count(n), nil
}

func unexpectedNode(n Node, expected string) *LoweringError {
	var pos Position
	if n != nil {
		pos = n.Position()
	}
	return &LoweringError{
		ParseError: ParseError{
			Message: fmt.Sprintf("%s: expected %s, got %T", UnexpectedNode, expected, n),
			Pos:     pos,
		},
		Kind: UnexpectedNode,
	}
}
