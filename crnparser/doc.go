// Package crnparser implements a parser for the comma-delimited chemical
// reaction network notation.
//
// Each line is a reaction, a species count, or a separator:
//
//	# comment
//	a => b,1,
//	2 a => b + b,5,
//	c,10,
//	,,
//
// A reaction lists reactant terms, "=>", product terms, then the rate, with
// a trailing comma. A term is an optional integer coefficient, a space, and a
// dot-segmented species name (destruct.done.partial.0). A species count line
// sets the initial count of one species. A line of only commas is ignored.
// A species repeated on one side of a reaction adds up, so "b + b" and "2 b"
// describe the same products.
//
// The parser is structured as a hand-rolled recursive-descent parser with
// three layers:
//
//   - Lexer: converts raw bytes into a token stream, stripping comments and
//     whitespace but keeping newlines.
//   - Parser: consumes tokens line by line and builds a ParseTree whose nodes
//     all carry source positions.
//   - Lower: walks the tree once and builds a crn.Network, resolving
//     duplicate reactions and repeated species declarations.
//
// Usage:
//
//	net, err := crnparser.ParseNetwork(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(net.Reactions.Len(), len(net.Solution))
//
// # Thread Safety
//
// Parse, Lower, and ParseNetwork keep all state local to the call and may be
// used concurrently on different inputs.
package crnparser
