package mcptools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lonelycodes/excali-script/internal/export"
	"github.com/lonelycodes/excali-script/internal/graph"
)

// StoreFactory opens an empty graph store for a new scan.
type StoreFactory func() (graph.Store, error)

// MemStoreFactory returns in-process stores.
func MemStoreFactory() (graph.Store, error) {
	return graph.NewMemStore(), nil
}

// errNoGraph is returned by queries issued before any scan.
var errNoGraph = errors.New("no graph built yet; call build_graph or render_diagram first")

// DiagramService holds the pipeline settings and the graph of the most
// recent scan. Each scan replaces the previous store.
type DiagramService struct {
	opts     export.Options
	newStore StoreFactory
	logger   *log.Logger

	mu    sync.Mutex
	store graph.Store
	root  string
}

// NewDiagramService creates a DiagramService. A nil newStore uses
// MemStoreFactory; a nil logger discards output.
func NewDiagramService(opts export.Options, newStore StoreFactory, logger *log.Logger) *DiagramService {
	if newStore == nil {
		newStore = MemStoreFactory
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts.Logger = logger
	return &DiagramService{opts: opts, newStore: newStore, logger: logger}
}

// Close releases the current store.
func (s *DiagramService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

// options applies per-call overrides to the service defaults.
func (s *DiagramService) options(excludeDirs []string, strict bool) export.Options {
	opts := s.opts
	if len(excludeDirs) > 0 {
		opts.Discover.ExcludeDirs = excludeDirs
	}
	if strict {
		opts.Probe = nil
	}
	return opts
}

// replaceStore closes the current store, then loads res into a fresh one.
// The previous store is released first so file-backed factories can reuse
// their path.
func (s *DiagramService) replaceStore(ctx context.Context, res *export.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("closing previous store", "err", err)
		}
		s.store, s.root = nil, ""
	}

	store, err := s.newStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if err := graph.Load(ctx, store, res.Graph()); err != nil {
		store.Close()
		return fmt.Errorf("load graph: %w", err)
	}
	s.store, s.root = store, res.Root
	return nil
}

// BuildGraph scans a directory and loads its dependency graph into the store.
func (s *DiagramService) BuildGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuildGraphInput,
) (*mcp.CallToolResult, BuildGraphOutput, error) {
	if input.RootPath == "" {
		return nil, BuildGraphOutput{}, fmt.Errorf("rootPath is required")
	}

	res, err := export.Analyze(ctx, input.RootPath, s.options(input.ExcludeDirs, input.Strict))
	if err != nil {
		return nil, BuildGraphOutput{}, err
	}
	if err := s.replaceStore(ctx, res); err != nil {
		return nil, BuildGraphOutput{}, err
	}

	exp := export.ExportGraph(res)
	s.logger.Info("graph built", "root", res.Root, "files", exp.Stats.FileCount, "edges", exp.Stats.EdgeCount)
	return nil, BuildGraphOutput{
		Stats:      exp.Stats,
		Skipped:    exp.Skipped,
		Unresolved: exp.Unresolved,
	}, nil
}

// RenderDiagram scans a directory, lays out its graph and either writes the
// diagram to OutputPath or returns it inline.
func (s *DiagramService) RenderDiagram(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenderDiagramInput,
) (*mcp.CallToolResult, RenderDiagramOutput, error) {
	if input.RootPath == "" {
		return nil, RenderDiagramOutput{}, fmt.Errorf("rootPath is required")
	}
	switch input.Format {
	case "", export.FormatExcalidraw, export.FormatMermaid, export.FormatJSON:
	default:
		return nil, RenderDiagramOutput{}, fmt.Errorf("unknown format %q", input.Format)
	}

	res, err := export.Render(ctx, input.RootPath, s.options(input.ExcludeDirs, input.Strict))
	if err != nil {
		return nil, RenderDiagramOutput{}, err
	}
	if err := s.replaceStore(ctx, res); err != nil {
		return nil, RenderDiagramOutput{}, err
	}

	exp := export.ExportGraph(res)
	out := RenderDiagramOutput{
		Stats:    exp.Stats,
		Elements: len(res.Document.Elements),
		Skipped:  exp.Skipped,
	}

	if input.OutputPath != "" {
		if err := export.WriteFile(input.OutputPath, input.Format, res); err != nil {
			return nil, RenderDiagramOutput{}, err
		}
		out.OutputPath = input.OutputPath
		return nil, out, nil
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, input.Format, res); err != nil {
		return nil, RenderDiagramOutput{}, err
	}
	out.Content = buf.String()
	return nil, out, nil
}

// GetDependencies traverses the graph of the last scan from a given node.
func (s *DiagramService) GetDependencies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDependenciesInput,
) (*mcp.CallToolResult, GetDependenciesOutput, error) {
	if input.NodeID == "" {
		return nil, GetDependenciesOutput{}, fmt.Errorf("nodeId is required")
	}

	direction := graph.DirectionDownstream
	if strings.EqualFold(input.Direction, string(graph.DirectionUpstream)) {
		direction = graph.DirectionUpstream
	}

	maxDepth := input.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 5
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil, GetDependenciesOutput{}, errNoGraph
	}

	nodeID, err := s.lookupNode(ctx, input.NodeID)
	if err != nil {
		return nil, GetDependenciesOutput{}, err
	}

	chains, err := s.store.GetDependencies(ctx, nodeID, direction, maxDepth)
	if err != nil {
		return nil, GetDependenciesOutput{}, fmt.Errorf("get dependencies: %w", err)
	}
	if chains == nil {
		chains = []graph.DependencyChain{}
	}
	return nil, GetDependenciesOutput{NodeID: nodeID, Chains: chains}, nil
}

// lookupNode maps a user-supplied id to a stored canonical path. Callers
// hold s.mu.
func (s *DiagramService) lookupNode(ctx context.Context, id string) (string, error) {
	candidates := []string{id}
	if !filepath.IsAbs(id) && s.root != "" {
		if c, err := graph.NewResolver(nil).Canonicalize(filepath.Join(s.root, id)); err == nil {
			candidates = append(candidates, c)
		}
	}
	for _, c := range candidates {
		f, err := s.store.GetFile(ctx, c)
		if err != nil {
			return "", fmt.Errorf("get file: %w", err)
		}
		if f != nil {
			return f.CanonicalPath, nil
		}
	}
	return "", fmt.Errorf("node %q not found in graph", id)
}
