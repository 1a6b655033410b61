package crnparser

import (
	"strconv"
	"strings"

	"github.com/martinemde/marlea/crn"
)

// Format renders net as canonical source: reactions in set order, then a
// species count line for every species whose count is not implied by the
// reactions (a non-zero count, or a species no reaction mentions).
// Parsing the result yields a network equal to net.
func Format(net *crn.Network) string {
	var b strings.Builder

	referenced := make(map[crn.Name]bool)
	for _, r := range net.Reactions.All() {
		b.WriteString(r.String())
		b.WriteByte('\n')
		for _, name := range r.Species() {
			referenced[name] = true
		}
	}

	var decls []string
	for _, name := range net.Solution.Names() {
		count := net.Solution[name]
		if count == 0 && referenced[name] {
			continue
		}
		decls = append(decls, string(name)+","+strconv.FormatUint(uint64(count), 10)+",")
	}

	if len(decls) > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		for _, d := range decls {
			b.WriteString(d)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
