package graph

import "sort"

// --- Enums ---

// Language identifies the grammar used to parse a source file.
type Language string

const (
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangJavaScript Language = "javascript"
)

// extToLanguage maps scanned file extensions to their grammar.
var extToLanguage = map[string]Language{
	".ts":  LangTypeScript,
	".mts": LangTypeScript,
	".cts": LangTypeScript,
	".tsx": LangTSX,
	".js":  LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".jsx": LangJavaScript,
}

// DefaultExtensions are the file extensions picked up by Discover.
var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// Reason explains why an import did not resolve to a file on disk.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonBare     Reason = "bare"
	ReasonNotFound Reason = "not_found"
	ReasonAccess   Reason = "access"
)

// --- Models ---

// FileNode is a node of the dependency graph. Identity is CanonicalPath only;
// Name is the display label.
//
// An unresolved import keeps its raw specifier as CanonicalPath and has
// Resolved set to false.
type FileNode struct {
	Name          string `json:"name"`
	CanonicalPath string `json:"canonicalPath"`
	Resolved      bool   `json:"resolved"`
}

// Same reports whether n and other denote the same graph node.
func (n FileNode) Same(other FileNode) bool {
	return n.CanonicalPath == other.CanonicalPath
}

// Entry is one scanned file and the dependencies it imports, in declaration order.
type Entry struct {
	File         FileNode   `json:"file"`
	Dependencies []FileNode `json:"dependencies"`
}

// DependencyGraph maps the canonical path of every scanned file to the
// ordered list of nodes it imports. Entries are kept sorted by canonical path;
// that order drives layout and routing.
type DependencyGraph struct {
	entries []Entry
	index   map[string]int
}

// NewDependencyGraph finalizes entries into a graph. Entries are sorted by
// canonical path; when two entries share a path the first one wins.
func NewDependencyGraph(entries []Entry) *DependencyGraph {
	g := &DependencyGraph{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if _, dup := g.index[e.File.CanonicalPath]; dup {
			continue
		}
		g.index[e.File.CanonicalPath] = len(g.entries)
		g.entries = append(g.entries, e)
	}

	sort.SliceStable(g.entries, func(i, j int) bool {
		return g.entries[i].File.CanonicalPath < g.entries[j].File.CanonicalPath
	})
	for i, e := range g.entries {
		g.index[e.File.CanonicalPath] = i
	}
	return g
}

// Entries returns the graph entries in canonical path order. The slice must
// not be modified.
func (g *DependencyGraph) Entries() []Entry {
	if g == nil {
		return nil
	}
	return g.entries
}

// Len returns the number of scanned files (keys).
func (g *DependencyGraph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}

// Lookup returns the entry keyed by canonicalPath.
func (g *DependencyGraph) Lookup(canonicalPath string) (Entry, bool) {
	if g == nil {
		return Entry{}, false
	}
	i, ok := g.index[canonicalPath]
	if !ok {
		return Entry{}, false
	}
	return g.entries[i], true
}

// Keys returns the canonical paths of the scanned files in order.
func (g *DependencyGraph) Keys() []string {
	keys := make([]string, 0, g.Len())
	for _, e := range g.Entries() {
		keys = append(keys, e.File.CanonicalPath)
	}
	return keys
}

// EdgeCount returns the number of (source, dependency) pairs, duplicates and
// self-edges included.
func (g *DependencyGraph) EdgeCount() int {
	n := 0
	for _, e := range g.Entries() {
		n += len(e.Dependencies)
	}
	return n
}

// Nodes returns every distinct node of the graph: the scanned files in key
// order, then each dependency target the first time it is seen.
func (g *DependencyGraph) Nodes() []FileNode {
	seen := make(map[string]bool)
	var out []FileNode
	for _, e := range g.Entries() {
		if !seen[e.File.CanonicalPath] {
			seen[e.File.CanonicalPath] = true
			out = append(out, e.File)
		}
	}
	for _, e := range g.Entries() {
		for _, dep := range e.Dependencies {
			if !seen[dep.CanonicalPath] {
				seen[dep.CanonicalPath] = true
				out = append(out, dep)
			}
		}
	}
	return out
}

// GraphStats summarizes a dependency graph.
type GraphStats struct {
	FileCount       int `json:"fileCount"`
	NodeCount       int `json:"nodeCount"`
	EdgeCount       int `json:"edgeCount"`
	UnresolvedCount int `json:"unresolvedCount"`
}

// Stats computes summary counts for g.
func (g *DependencyGraph) Stats() GraphStats {
	nodes := g.Nodes()
	unresolved := 0
	for _, n := range nodes {
		if !n.Resolved {
			unresolved++
		}
	}
	return GraphStats{
		FileCount:       g.Len(),
		NodeCount:       len(nodes),
		EdgeCount:       g.EdgeCount(),
		UnresolvedCount: unresolved,
	}
}

// DependencyChain is an ordered sequence of nodes forming a dependency path.
type DependencyChain struct {
	Nodes []string `json:"nodes"` // canonical paths in order
	Depth int      `json:"depth"`
}
