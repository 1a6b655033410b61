// Package crn defines the reaction network model handed to the simulator.
//
// A Network pairs a set of reactions with a Solution, the initial count of
// every species known to the network:
//
//   - Name: a species identifier, compared by exact string value.
//   - Count: a non-negative molecule count, coefficient, or rate constant.
//   - Term: Count copies of a species on one side of a reaction.
//   - Reaction: ordered reactant and product terms plus a rate.
//   - ReactionSet: reactions deduplicated by content, kept in insertion order.
//   - Solution: species -> initial count.
//
// Equality throughout is content based, so two networks built from the same
// source compare equal and encode to identical bytes.
package crn
