// Package export runs the scan → build → layout pipeline for a directory and
// writes the result as an Excalidraw scene, a Mermaid flowchart or JSON.
package export

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lonelycodes/excali-script/internal/excalidraw"
	"github.com/lonelycodes/excali-script/internal/graph"
	"github.com/lonelycodes/excali-script/internal/layout"
)

// Options configures one pipeline run.
type Options struct {
	Discover    graph.DiscoverOptions
	Probe       []string // resolver probe extensions; nil is strict mode
	Concurrency int
	Layout      layout.Config
	NewID       layout.IDFunc // arrow ids; nil uses random UUIDs
	OnProgress  func(graph.ProgressEvent)
	Logger      *log.Logger
	// Parser overrides the tree-sitter parser, mainly for tests.
	Parser graph.Parser
}

// DefaultOptions returns options with the standard discovery, probing and
// diagram settings.
func DefaultOptions() Options {
	return Options{
		Discover: graph.DiscoverOptions{RespectGitignore: true},
		Probe:    graph.DefaultProbeExtensions,
		Layout:   layout.DefaultConfig(),
	}
}

// Result is everything a run produced.
type Result struct {
	Root     string
	Files    []string // discovered files, sorted
	Build    *graph.BuildResult
	Document *excalidraw.Document
}

// Graph returns the built dependency graph.
func (r *Result) Graph() *graph.DependencyGraph {
	if r == nil || r.Build == nil {
		return nil
	}
	return r.Build.Graph
}

// Stats returns the graph summary.
func (r *Result) Stats() graph.GraphStats {
	return r.Graph().Stats()
}

// Analyze discovers the source files under root and builds their dependency
// graph. Skipped files are reported in the result, not as an error.
func Analyze(ctx context.Context, root string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	files, err := graph.Discover(ctx, abs, opts.Discover)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	logger.Debug("discovered files", "root", abs, "count", len(files))

	parser := opts.Parser
	if parser == nil {
		ts := graph.NewTreeSitterParser()
		defer ts.Close()
		parser = ts
	}

	builder := graph.NewBuilder(parser, graph.NewResolver(opts.Probe), graph.BuildOptions{
		Concurrency: opts.Concurrency,
		OnProgress:  opts.OnProgress,
		Logger:      logger,
	})
	build, err := builder.Build(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	return &Result{Root: abs, Files: files, Build: build}, nil
}

// Render runs Analyze and lays the graph out as an Excalidraw document.
func Render(ctx context.Context, root string, opts Options) (*Result, error) {
	res, err := Analyze(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	doc := layout.Diagram(res.Graph(), opts.Layout, opts.NewID)
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("diagram: %w", err)
	}
	res.Document = doc
	return res, nil
}
