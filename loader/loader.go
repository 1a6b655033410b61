// Package loader reads reaction network files from disk and dispatches them
// to the grammar registered for their extension.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/martinemde/marlea/crn"
	"github.com/martinemde/marlea/crnparser"
)

// Registry maps file extensions to grammars.
type Registry struct {
	grammars map[string]crnparser.Grammar
	logger   *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		grammars: make(map[string]crnparser.Grammar),
		logger:   logger,
	}
}

// NewDefaultRegistry creates a registry with the built-in grammars: the
// comma-delimited notation for ".csv".
func NewDefaultRegistry(logger *slog.Logger) *Registry {
	r := NewRegistry(logger)
	r.Register(".csv", crnparser.CSV{})
	return r
}

// Register adds or replaces the grammar for ext. The extension is matched
// case-insensitively, with or without its leading dot.
func (r *Registry) Register(ext string, g crnparser.Grammar) {
	r.grammars[normalizeExt(ext)] = g
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.grammars))
	for ext := range r.grammars {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Resolve returns the grammar for path's extension.
func (r *Registry) Resolve(path string) (crnparser.Grammar, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &crnparser.ParserError{Kind: crnparser.InvalidFile, Detail: "no path given"}
	}
	ext := filepath.Ext(path)
	if ext == "" || ext == "." {
		return nil, &crnparser.ParserError{
			Kind:   crnparser.InvalidFile,
			Detail: fmt.Sprintf("%s: file has no extension", path),
		}
	}
	g, ok := r.grammars[normalizeExt(ext)]
	if !ok {
		return nil, &crnparser.ParserError{
			Kind:   crnparser.UnsupportedExt,
			Detail: fmt.Sprintf("%s: no grammar registered for %q", path, ext),
		}
	}
	return g, nil
}

// LoadFile reads path and parses it with the grammar for its extension.
func (r *Registry) LoadFile(path string) (*crn.Network, error) {
	g, err := r.Resolve(path)
	if err != nil {
		return nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &crnparser.ParserError{
			Kind:   crnparser.InvalidFile,
			Detail: fmt.Sprintf("%s: %v", path, err),
			Cause:  err,
		}
	}

	start := time.Now()
	net, err := g.ParseNetwork(string(src))
	if err != nil {
		r.logger.Debug("parse failed", "path", path, "grammar", g.Name(), "error", err)
		return nil, withPath(path, err)
	}

	r.logger.Debug("parsed network",
		"path", path,
		"grammar", g.Name(),
		"bytes", len(src),
		"reactions", net.Reactions.Len(),
		"species", len(net.Solution),
		"elapsed", time.Since(start),
	)
	return net, nil
}

// Result is the outcome of loading one file.
type Result struct {
	Path    string
	Network *crn.Network
	Err     error
}

// LoadAll loads every path concurrently, at most limit at a time (no limit
// when limit <= 0). Results are in the order of paths; per-file failures are
// reported in Result.Err. The returned error is non-nil only when ctx ends
// before every file is loaded.
func (r *Registry) LoadAll(ctx context.Context, paths []string, limit int) ([]Result, error) {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			net, err := r.LoadFile(path)
			results[i] = Result{Path: path, Network: net, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// withPath prefixes a parse failure's detail with the file it came from.
func withPath(path string, err error) error {
	var pe *crnparser.ParserError
	if errors.As(err, &pe) {
		return &crnparser.ParserError{
			Kind:   pe.Kind,
			Detail: path + ": " + pe.Detail,
			Cause:  pe.Cause,
		}
	}
	return &crnparser.ParserError{
		Kind:   crnparser.ParseFailed,
		Detail: fmt.Sprintf("%s: %v", path, err),
		Cause:  err,
	}
}
