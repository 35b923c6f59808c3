package graph

import (
	"context"
	"fmt"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

type importEdge struct {
	from, to string
}

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu    sync.RWMutex
	files map[string]FileNode
	edges []importEdge
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string]FileNode)}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddFile stores a node keyed by its canonical path.
func (m *MemStore) AddFile(_ context.Context, node FileNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[node.CanonicalPath] = node
	return nil
}

// AddImport appends an edge. Duplicate edges are kept.
func (m *MemStore) AddImport(_ context.Context, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[from]; !ok {
		return fmt.Errorf("unknown file %s", from)
	}
	if _, ok := m.files[to]; !ok {
		return fmt.Errorf("unknown file %s", to)
	}
	m.edges = append(m.edges, importEdge{from: from, to: to})
	return nil
}

// GetFile returns the node for the given path, or nil if not found.
func (m *MemStore) GetFile(_ context.Context, canonicalPath string) (*FileNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[canonicalPath]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// GetDependencies performs a BFS on edges from nodeID in the given direction,
// up to maxDepth hops. It returns one DependencyChain per reachable node.
func (m *MemStore) GetDependencies(_ context.Context, nodeID string, direction Direction, maxDepth int) ([]DependencyChain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if maxDepth <= 0 {
		return nil, nil
	}

	// BFS state: each entry tracks the path from nodeID to the current node.
	type bfsEntry struct {
		id   string
		path []string
	}

	visited := map[string]bool{nodeID: true}
	queue := []bfsEntry{{id: nodeID, path: []string{nodeID}}}
	var chains []DependencyChain

	for depth := 0; depth < maxDepth && len(queue) > 0; depth++ {
		var nextQueue []bfsEntry
		for _, entry := range queue {
			for _, nb := range m.neighbors(entry.id, direction) {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				newPath := make([]string, len(entry.path), len(entry.path)+1)
				copy(newPath, entry.path)
				newPath = append(newPath, nb)
				chains = append(chains, DependencyChain{
					Nodes: newPath,
					Depth: len(newPath) - 1,
				})
				nextQueue = append(nextQueue, bfsEntry{id: nb, path: newPath})
			}
		}
		queue = nextQueue
	}

	return chains, nil
}

// neighbors returns IDs reachable from id in one hop, in insertion order.
func (m *MemStore) neighbors(id string, direction Direction) []string {
	var result []string
	for _, e := range m.edges {
		switch direction {
		case DirectionDownstream:
			if e.from == id {
				result = append(result, e.to)
			}
		case DirectionUpstream:
			if e.to == id {
				result = append(result, e.from)
			}
		}
	}
	return result
}

// Stats returns node and edge counts.
func (m *MemStore) Stats(_ context.Context) (*StoreStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &StoreStats{
		FileCount: len(m.files),
		EdgeCount: len(m.edges),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
