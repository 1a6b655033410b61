package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinemde/marlea/crnparser"
)

const sampleSource = "a => b,1,\n2 a => b + b,5,\na => b,1,\nc,10,\n"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeNetwork(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommandJSON(t *testing.T) {
	path := writeNetwork(t, "net.csv", sampleSource)

	out, _, err := execute(t, "parse", "--format", "json", path)
	require.NoError(t, err)

	var doc struct {
		Reactions []json.RawMessage `json:"reactions"`
		Solution  map[string]uint64 `json:"solution"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Reactions, 2)
	assert.Equal(t, map[string]uint64{"a": 0, "b": 0, "c": 10}, doc.Solution)
}

func TestParseCommandYAML(t *testing.T) {
	path := writeNetwork(t, "net.csv", sampleSource)

	out, _, err := execute(t, "parse", "--format", "yaml", path)
	require.NoError(t, err)
	assert.Contains(t, out, "reactions:")
	assert.Contains(t, out, "solution:")
	assert.Contains(t, out, "c: 10")
}

func TestParseCommandSyntaxError(t *testing.T) {
	path := writeNetwork(t, "bad.csv", "a => ,1,\n")

	_, stderr, err := execute(t, "parse", "--format", "yaml", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, crnparser.ErrParseFailed)
	assert.Contains(t, stderr, "line 1, col 6: products")
}

func TestParseCommandUnsupportedExtension(t *testing.T) {
	path := writeNetwork(t, "net.rs", sampleSource)

	_, _, err := execute(t, "parse", "--format", "yaml", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, crnparser.ErrUnsupportedExt)
}

func TestParseCommandUnknownFormat(t *testing.T) {
	path := writeNetwork(t, "net.csv", sampleSource)

	_, _, err := execute(t, "parse", "--format", "xml", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)
}

func TestFmtCommand(t *testing.T) {
	path := writeNetwork(t, "net.csv", sampleSource)

	out, _, err := execute(t, "fmt", "--write=false", path)
	require.NoError(t, err)
	assert.Equal(t, "a => b,1,\n2 a => 2 b,5,\n\nc,10,\n", out)
}

func TestFmtCommandWrite(t *testing.T) {
	path := writeNetwork(t, "net.csv", "# comment\na => b,1,\n,,\na => b,1,\n")

	out, _, err := execute(t, "fmt", "--write", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a => b,1,\n", string(data))
}

func TestCheckCommand(t *testing.T) {
	good := writeNetwork(t, "good.csv", sampleSource)
	bad := writeNetwork(t, "bad.csv", "a => b,1,\nb =>\n")

	out, _, err := execute(t, "check", "--jobs", "2", good, bad)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 file(s) failed", err.Error())

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ok   "+good+" (2 reactions, 3 species)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "FAIL parse failed: "+bad+": line 2, col 5: products"), lines[1])
}

func TestCheckCommandAllPass(t *testing.T) {
	good := writeNetwork(t, "good.csv", sampleSource)

	_, _, err := execute(t, "check", "--jobs", "1", good)
	require.NoError(t, err)
}

func TestRenderTable(t *testing.T) {
	net, err := crnparser.ParseNetwork(sampleSource)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderNetwork(&buf, net, "table"))
	out := buf.String()
	assert.Contains(t, out, "REACTANTS")
	assert.Contains(t, out, "2 b")
	assert.Contains(t, out, "(2 reactions)")
	assert.Contains(t, out, "(3 species)")
}

func TestRenderCRN(t *testing.T) {
	net, err := crnparser.ParseNetwork(sampleSource)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderNetwork(&buf, net, "crn"))
	assert.Equal(t, crnparser.Format(net), buf.String())
}
