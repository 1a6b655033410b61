package crn

import (
	"strconv"
	"strings"
)

// Name identifies a chemical species.
type Name string

// Count is a non-negative quantity: a molecule count, a term coefficient,
// or a reaction rate constant.
type Count uint64

// Term is Coefficient copies of Species on one side of a reaction.
type Term struct {
	Species     Name  `json:"species" yaml:"species"`
	Coefficient Count `json:"coefficient" yaml:"coefficient"`
}

// NewTerm returns a term with the default coefficient of 1.
func NewTerm(species Name) Term {
	return Term{Species: species, Coefficient: 1}
}

// String renders the term in source notation ("2 a", or "a" for a
// coefficient of 1).
func (t Term) String() string {
	if t.Coefficient == 1 {
		return string(t.Species)
	}
	return strconv.FormatUint(uint64(t.Coefficient), 10) + " " + string(t.Species)
}

// Reaction transforms its reactants into its products at Rate.
// Term order is significant: a + b => c and b + a => c are distinct.
type Reaction struct {
	Reactants []Term `json:"reactants" yaml:"reactants"`
	Products  []Term `json:"products" yaml:"products"`
	Rate      Count  `json:"rate" yaml:"rate"`
}

// Equal reports whether r and other have the same reactants, products, and
// rate, in the same order.
func (r Reaction) Equal(other Reaction) bool {
	return r.Rate == other.Rate &&
		termsEqual(r.Reactants, other.Reactants) &&
		termsEqual(r.Products, other.Products)
}

// Key returns a canonical encoding of the reaction. Two reactions have the
// same key exactly when Equal reports true.
func (r Reaction) Key() string {
	var b strings.Builder
	writeKeyTerms(&b, r.Reactants)
	b.WriteByte('>')
	writeKeyTerms(&b, r.Products)
	b.WriteByte('@')
	b.WriteString(strconv.FormatUint(uint64(r.Rate), 10))
	return b.String()
}

// String renders the reaction as a line of source notation, e.g.
// "2 a => b + b,5,".
func (r Reaction) String() string {
	var b strings.Builder
	writeSide(&b, r.Reactants)
	b.WriteString(" => ")
	writeSide(&b, r.Products)
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(uint64(r.Rate), 10))
	b.WriteByte(',')
	return b.String()
}

// Species returns every species named by the reaction, reactants first,
// in term order. A species appearing more than once is listed once.
func (r Reaction) Species() []Name {
	seen := make(map[Name]bool, len(r.Reactants)+len(r.Products))
	var names []Name
	for _, side := range [][]Term{r.Reactants, r.Products} {
		for _, t := range side {
			if !seen[t.Species] {
				seen[t.Species] = true
				names = append(names, t.Species)
			}
		}
	}
	return names
}

func (r Reaction) clone() Reaction {
	return Reaction{
		Reactants: append([]Term(nil), r.Reactants...),
		Products:  append([]Term(nil), r.Products...),
		Rate:      r.Rate,
	}
}

func termsEqual(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Names never contain '*', '+', '>' or '@', so the key is unambiguous.
func writeKeyTerms(b *strings.Builder, terms []Term) {
	for i, t := range terms {
		if i > 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.FormatUint(uint64(t.Coefficient), 10))
		b.WriteByte('*')
		b.WriteString(string(t.Species))
	}
}

func writeSide(b *strings.Builder, terms []Term) {
	for i, t := range terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(t.String())
	}
}
