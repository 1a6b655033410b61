package crnparser

import "github.com/martinemde/marlea/crn"

// Grammar turns source text in one notation into a network.
// Implementations hold no state and are safe for concurrent use.
type Grammar interface {
	Name() string
	ParseNetwork(src string) (*crn.Network, error)
}

// CSV is the comma-delimited reaction notation.
type CSV struct{}

func (CSV) Name() string { return "csv" }

func (CSV) ParseNetwork(src string) (*crn.Network, error) {
	return ParseNetwork(src)
}
