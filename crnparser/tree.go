package crnparser

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// Node is implemented by every parse tree node. The set of implementations
// is closed to this package.
type Node interface {
	Position() Position
	node()
}

// Line is a top-level node: one source line.
type Line interface {
	Node
	line()
}

// ParseTree is the concrete syntax of a source file. Blank and comment-only
// lines are dropped; every other source line yields one Line.
type ParseTree struct {
	Lines []Line
}

// ReactionNode is a reaction line: reactants "=>" products "," rate ",".
type ReactionNode struct {
	Reactants []*TermNode
	Products  []*TermNode
	Rate      *RateNode
	Pos       Position
}

// SpeciesCountNode is a declaration line: name "," count ",".
type SpeciesCountNode struct {
	Name  *NameNode
	Count *CoefficientNode
	Pos   Position
}

// SeparatorNode is a line holding only commas. It carries no meaning.
type SeparatorNode struct {
	Pos Position
}

// TermNode is one term of a reaction side. Coefficient is nil when the
// source omits it.
type TermNode struct {
	Coefficient *CoefficientNode
	Name        *NameNode
	Pos         Position
}

// NameNode is a dot-segmented species name, e.g. destruct.done.partial.0.
type NameNode struct {
	Text string
	Pos  Position
}

// CoefficientNode is the literal multiplier of a term or the count of a
// species declaration.
type CoefficientNode struct {
	Text string
	Pos  Position
}

// RateNode is the literal rate constant of a reaction.
type RateNode struct {
	Text string
	Pos  Position
}

func (n *ReactionNode) Position() Position     { return n.Pos }
func (n *SpeciesCountNode) Position() Position { return n.Pos }
func (n *SeparatorNode) Position() Position    { return n.Pos }
func (n *TermNode) Position() Position         { return n.Pos }
func (n *NameNode) Position() Position         { return n.Pos }
func (n *CoefficientNode) Position() Position  { return n.Pos }
func (n *RateNode) Position() Position         { return n.Pos }

func (*ReactionNode) node()     {}
func (*SpeciesCountNode) node() {}
func (*SeparatorNode) node()    {}
func (*TermNode) node()         {}
func (*NameNode) node()         {}
func (*CoefficientNode) node()  {}
func (*RateNode) node()         {}

func (*ReactionNode) line()     {}
func (*SpeciesCountNode) line() {}
func (*SeparatorNode) line()    {}
