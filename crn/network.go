package crn

import (
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// ReactionSet is a set of reactions keyed by content. Iteration follows
// insertion order.
type ReactionSet struct {
	index map[string]int
	items []Reaction
}

// NewReactionSet returns an empty set.
func NewReactionSet() *ReactionSet {
	return &ReactionSet{index: make(map[string]int)}
}

// Add inserts r and reports whether it was new. Adding a reaction equal to
// one already present is a no-op.
func (s *ReactionSet) Add(r Reaction) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	key := r.Key()
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.items)
	s.items = append(s.items, r.clone())
	return true
}

// Contains reports whether a reaction equal to r is in the set.
func (s *ReactionSet) Contains(r Reaction) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[r.Key()]
	return ok
}

// Len returns the number of distinct reactions.
func (s *ReactionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// All returns a copy of the reactions in insertion order.
func (s *ReactionSet) All() []Reaction {
	if s == nil {
		return nil
	}
	out := make([]Reaction, len(s.items))
	for i, r := range s.items {
		out[i] = r.clone()
	}
	return out
}

// Equal reports whether both sets hold the same reactions, irrespective of
// insertion order.
func (s *ReactionSet) Equal(other *ReactionSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	if s == nil {
		return true
	}
	for _, r := range s.items {
		if !other.Contains(r) {
			return false
		}
	}
	return true
}

func (s *ReactionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.list())
}

func (s *ReactionSet) UnmarshalJSON(data []byte) error {
	var reactions []Reaction
	if err := json.Unmarshal(data, &reactions); err != nil {
		return err
	}
	s.reset(reactions)
	return nil
}

func (s *ReactionSet) MarshalYAML() (any, error) {
	return s.list(), nil
}

func (s *ReactionSet) UnmarshalYAML(node *yaml.Node) error {
	var reactions []Reaction
	if err := node.Decode(&reactions); err != nil {
		return err
	}
	s.reset(reactions)
	return nil
}

// list never returns nil so an empty set encodes as [] rather than null.
func (s *ReactionSet) list() []Reaction {
	if s.Len() == 0 {
		return []Reaction{}
	}
	return s.items
}

func (s *ReactionSet) reset(reactions []Reaction) {
	s.index = make(map[string]int, len(reactions))
	s.items = nil
	for _, r := range reactions {
		s.Add(r)
	}
}

// Solution maps each species to its initial count.
type Solution map[Name]Count

// Ensure records name with a count of zero unless it already has an entry.
func (s Solution) Ensure(name Name) {
	if _, ok := s[name]; !ok {
		s[name] = 0
	}
}

// Set records count for name, replacing any previous entry.
func (s Solution) Set(name Name, count Count) {
	s[name] = count
}

// Get returns the count for name and whether it has an entry.
func (s Solution) Get(name Name) (Count, bool) {
	c, ok := s[name]
	return c, ok
}

// Names returns every species in the solution, sorted.
func (s Solution) Names() []Name {
	names := make([]Name, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Equal reports whether both solutions hold the same entries.
func (s Solution) Equal(other Solution) bool {
	if len(s) != len(other) {
		return false
	}
	for n, c := range s {
		if oc, ok := other[n]; !ok || oc != c {
			return false
		}
	}
	return true
}

// Network is a complete reaction network: the reactions and the initial
// solution they act on.
type Network struct {
	Reactions *ReactionSet
	Solution  Solution
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{
		Reactions: NewReactionSet(),
		Solution:  make(Solution),
	}
}

// Equal reports whether both networks have the same reaction set and the
// same solution.
func (n *Network) Equal(other *Network) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.Reactions.Equal(other.Reactions) && n.Solution.Equal(other.Solution)
}

// Species returns every species in the network, sorted.
func (n *Network) Species() []Name {
	return n.Solution.Names()
}

// networkDoc is the encoded form of a Network.
type networkDoc struct {
	Reactions *ReactionSet `json:"reactions" yaml:"reactions"`
	Solution  Solution     `json:"solution" yaml:"solution"`
}

func (n *Network) doc() networkDoc {
	d := networkDoc{Reactions: n.Reactions, Solution: n.Solution}
	if d.Reactions == nil {
		d.Reactions = NewReactionSet()
	}
	if d.Solution == nil {
		d.Solution = Solution{}
	}
	return d
}

func (n *Network) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.doc())
}

func (n *Network) UnmarshalJSON(data []byte) error {
	d := networkDoc{Reactions: NewReactionSet(), Solution: make(Solution)}
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	n.adopt(d)
	return nil
}

func (n *Network) MarshalYAML() (any, error) {
	return n.doc(), nil
}

func (n *Network) UnmarshalYAML(node *yaml.Node) error {
	d := networkDoc{Reactions: NewReactionSet(), Solution: make(Solution)}
	if err := node.Decode(&d); err != nil {
		return err
	}
	n.adopt(d)
	return nil
}

// adopt takes the decoded collections, replacing explicit nulls with empty
// ones.
func (n *Network) adopt(d networkDoc) {
	n.Reactions, n.Solution = d.Reactions, d.Solution
	if n.Reactions == nil {
		n.Reactions = NewReactionSet()
	}
	if n.Solution == nil {
		n.Solution = make(Solution)
	}
}
