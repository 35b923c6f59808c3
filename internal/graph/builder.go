package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// DiagnosticKind classifies a per-file failure.
type DiagnosticKind string

const (
	DiagnosticSyntax      DiagnosticKind = "syntax"
	DiagnosticIO          DiagnosticKind = "io"
	DiagnosticUnsupported DiagnosticKind = "unsupported"
	// DiagnosticDuplicate marks a file whose canonical path was already
	// scanned under another name (a symlink or a case-folded alias).
	DiagnosticDuplicate DiagnosticKind = "duplicate"
)

// Diagnostic records a scanned file that was skipped.
type Diagnostic struct {
	Path string         `json:"path"`
	Kind DiagnosticKind `json:"kind"`
	Err  error          `json:"-"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %v", d.Kind, d.Path, d.Err)
}

// UnresolvedImport records a specifier that became a leaf node.
type UnresolvedImport struct {
	From      string `json:"from"` // canonical path of the importing file
	Specifier string `json:"specifier"`
	Reason    Reason `json:"reason"`
}

// BuildResult is the outcome of Builder.Build.
type BuildResult struct {
	Graph       *DependencyGraph
	Diagnostics []Diagnostic
	Unresolved  []UnresolvedImport
}

// Skipped returns the paths of files left out of the graph.
func (r *BuildResult) Skipped() []string {
	out := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		out = append(out, d.Path)
	}
	return out
}

// ProgressStatus is the state of one file in a build.
type ProgressStatus string

const (
	ProgressParsed  ProgressStatus = "parsed"
	ProgressSkipped ProgressStatus = "skipped"
)

// ProgressEvent is emitted once per file when its processing finishes.
type ProgressEvent struct {
	Path   string
	Status ProgressStatus
	Done   int
	Total  int
}

// BuildOptions tunes a Builder.
type BuildOptions struct {
	// Concurrency caps the number of files parsed at once. <= 0 means no limit.
	Concurrency int
	// OnProgress is called from worker goroutines; it may be nil.
	OnProgress func(ProgressEvent)
	// Logger receives per-file debug output; nil discards it.
	Logger *log.Logger
}

// Builder aggregates per-file parser and resolver output into a DependencyGraph.
type Builder struct {
	parser   Parser
	resolver *Resolver
	opts     BuildOptions
	logger   *log.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(parser Parser, resolver *Resolver, opts BuildOptions) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Builder{parser: parser, resolver: resolver, opts: opts, logger: logger}
}

// fileResult is the outcome for one scanned file. Exactly one of entry and
// diag is set.
type fileResult struct {
	entry      *Entry
	diag       *Diagnostic
	unresolved []UnresolvedImport
}

// Build parses every file, resolves its imports and returns the finalized
// graph. A file that cannot be read or parsed is skipped with a diagnostic;
// only context cancellation aborts the build.
//
// Files are processed in parallel, but results are collected by input index
// and the graph is sorted only after every worker has returned, so the
// result does not depend on completion order.
func (b *Builder) Build(ctx context.Context, files []string) (*BuildResult, error) {
	results := make([]fileResult, len(files))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	if b.opts.Concurrency > 0 {
		g.SetLimit(b.opts.Concurrency)
	}

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := b.buildFile(gctx, path)
			if err != nil {
				return err
			}
			results[i] = res

			status := ProgressParsed
			if res.diag != nil {
				status = ProgressSkipped
			}
			b.emit(ProgressEvent{
				Path:   path,
				Status: status,
				Done:   int(done.Add(1)),
				Total:  len(files),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &BuildResult{}
	entries := make([]Entry, 0, len(files))
	firstPath := make(map[string]string, len(files))
	for i, res := range results {
		if res.diag != nil {
			out.Diagnostics = append(out.Diagnostics, *res.diag)
			continue
		}
		key := res.entry.File.CanonicalPath
		if first, dup := firstPath[key]; dup {
			b.logger.Debug("skipping duplicate file", "path", files[i], "same_as", first)
			out.Diagnostics = append(out.Diagnostics, Diagnostic{
				Path: files[i],
				Kind: DiagnosticDuplicate,
				Err:  fmt.Errorf("same file as %s", first),
			})
			continue
		}
		firstPath[key] = files[i]
		entries = append(entries, *res.entry)
		out.Unresolved = append(out.Unresolved, res.unresolved...)
	}

	sort.Slice(out.Diagnostics, func(i, j int) bool {
		return out.Diagnostics[i].Path < out.Diagnostics[j].Path
	})
	sort.SliceStable(out.Unresolved, func(i, j int) bool {
		return out.Unresolved[i].From < out.Unresolved[j].From
	})

	out.Graph = NewDependencyGraph(entries)
	return out, nil
}

// buildFile handles one file. The returned error is reserved for context
// cancellation; per-file failures come back as a diagnostic.
func (b *Builder) buildFile(ctx context.Context, path string) (fileResult, error) {
	skip := func(kind DiagnosticKind, err error) (fileResult, error) {
		b.logger.Debug("skipping file", "path", path, "kind", kind, "err", err)
		return fileResult{diag: &Diagnostic{Path: path, Kind: kind, Err: err}}, nil
	}

	lang, ok := LanguageFor(path)
	if !ok {
		return skip(DiagnosticUnsupported, fmt.Errorf("unsupported file extension %q", filepath.Ext(path)))
	}

	node, err := b.resolver.FileNodeFor(path)
	if err != nil {
		return skip(DiagnosticIO, fmt.Errorf("canonicalize: %w", err))
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return skip(DiagnosticIO, fmt.Errorf("read: %w", err))
	}

	specifiers, err := b.parser.Imports(ctx, path, source, lang)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fileResult{}, ctxErr
		}
		var syntaxErr *SyntaxError
		if errors.As(err, &syntaxErr) {
			return skip(DiagnosticSyntax, err)
		}
		return skip(DiagnosticIO, fmt.Errorf("parse: %w", err))
	}

	dir := filepath.Dir(path)
	entry := &Entry{File: node, Dependencies: make([]FileNode, 0, len(specifiers))}
	var unresolved []UnresolvedImport
	for _, spec := range specifiers {
		res := b.resolver.Lookup(dir, spec)
		entry.Dependencies = append(entry.Dependencies, res.Node)
		if !res.Node.Resolved {
			b.logger.Debug("unresolved import", "from", node.CanonicalPath, "specifier", spec, "reason", res.Reason)
			unresolved = append(unresolved, UnresolvedImport{
				From:      node.CanonicalPath,
				Specifier: spec,
				Reason:    res.Reason,
			})
		}
	}

	return fileResult{entry: entry, unresolved: unresolved}, nil
}

// emit sends a progress event if a callback is registered.
func (b *Builder) emit(ev ProgressEvent) {
	if b.opts.OnProgress != nil {
		b.opts.OnProgress(ev)
	}
}

// LanguageFor returns the grammar for path based on its extension.
func LanguageFor(path string) (Language, bool) {
	lang, ok := extToLanguage[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}
