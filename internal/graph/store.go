package graph

import (
	"context"
	"fmt"
	"io"
)

// Store holds a dependency graph for querying after a run.
// Implementations: KuzuStore (persistent, cgo), MemStore (in-process).
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations. AddImport requires both endpoints to exist.
	AddFile(ctx context.Context, node FileNode) error
	AddImport(ctx context.Context, from, to string) error

	// Read operations.
	GetFile(ctx context.Context, canonicalPath string) (*FileNode, error)
	GetDependencies(ctx context.Context, nodeID string, direction Direction, maxDepth int) ([]DependencyChain, error)

	// Stats.
	Stats(ctx context.Context) (*StoreStats, error)
}

// Direction controls dependency traversal direction.
type Direction string

const (
	DirectionDownstream Direction = "downstream" // what does this file import?
	DirectionUpstream   Direction = "upstream"   // what imports this file?
)

// StoreStats counts what a Store holds.
type StoreStats struct {
	FileCount int `json:"fileCount"`
	EdgeCount int `json:"edgeCount"`
}

// Load copies every node and edge of g into store, in graph order.
func Load(ctx context.Context, store Store, g *DependencyGraph) error {
	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	for _, n := range g.Nodes() {
		if err := store.AddFile(ctx, n); err != nil {
			return fmt.Errorf("add file %s: %w", n.CanonicalPath, err)
		}
	}
	for _, e := range g.Entries() {
		for _, dep := range e.Dependencies {
			if err := store.AddImport(ctx, e.File.CanonicalPath, dep.CanonicalPath); err != nil {
				return fmt.Errorf("add import %s->%s: %w", e.File.CanonicalPath, dep.CanonicalPath, err)
			}
		}
	}
	return nil
}
