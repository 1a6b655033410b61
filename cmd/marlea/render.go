package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/martinemde/marlea/crn"
	"github.com/martinemde/marlea/crnparser"
)

// renderNetwork writes net to w in the named format.
func renderNetwork(w io.Writer, net *crn.Network, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		return renderYAML(w, net)
	case "json":
		return renderJSON(w, net)
	case "table":
		return renderTable(w, net)
	case "crn", "csv":
		_, err := io.WriteString(w, crnparser.Format(net))
		return err
	default:
		return fmt.Errorf("unknown output format %q (want yaml, json, table, or crn)", format)
	}
}

func renderYAML(w io.Writer, net *crn.Network) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(net); err != nil {
		return err
	}
	return enc.Close()
}

func renderJSON(w io.Writer, net *crn.Network) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(net)
}

func renderTable(w io.Writer, net *crn.Network) error {
	reactions := table.NewWriter()
	reactions.SetOutputMirror(w)
	reactions.SetStyle(table.StyleLight)
	reactions.AppendHeader(table.Row{"#", "Reactants", "Products", "Rate"})
	for i, r := range net.Reactions.All() {
		reactions.AppendRow(table.Row{i + 1, side(r.Reactants), side(r.Products), r.Rate})
	}
	reactions.Render()
	_, _ = fmt.Fprintf(w, "(%d reactions)\n\n", net.Reactions.Len())

	species := table.NewWriter()
	species.SetOutputMirror(w)
	species.SetStyle(table.StyleLight)
	species.AppendHeader(table.Row{"Species", "Initial"})
	for _, name := range net.Species() {
		species.AppendRow(table.Row{name, net.Solution[name]})
	}
	species.Render()
	_, err := fmt.Fprintf(w, "(%d species)\n", len(net.Solution))
	return err
}

func side(terms []crn.Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}
