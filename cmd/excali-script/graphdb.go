//go:build cgo

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lonelycodes/excali-script/internal/graph"
	"github.com/lonelycodes/excali-script/internal/mcptools"
)

// persistGraph replaces the KuzuDB database at path with the contents of g.
func persistGraph(ctx context.Context, path string, g *graph.DependencyGraph) error {
	// Remove old graph to avoid stale data.
	if err := os.RemoveAll(path); err != nil {
		return err
	}

	store, err := graph.NewKuzuFileStore(path)
	if err != nil {
		return fmt.Errorf("open file store: %w", err)
	}
	defer store.Close()

	return graph.Load(ctx, store, g)
}

// openGraphDB opens an existing database written by persistGraph.
func openGraphDB(path string) (graph.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no graph found at %s; run with --graph-db first: %w", path, err)
	}
	store, err := graph.NewKuzuFileStore(path)
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	return store, nil
}

// graphDBFactory makes the MCP server keep its graph in a KuzuDB database
// at path, recreated on every scan.
func graphDBFactory(path string) mcptools.StoreFactory {
	return func() (graph.Store, error) {
		if err := os.RemoveAll(path); err != nil {
			return nil, err
		}
		return graph.NewKuzuFileStore(path)
	}
}
