package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lonelycodes/excali-script/internal/graph"
)

// GenerateMermaid produces a Mermaid graph TD diagram from a dependency graph.
// Scanned files are grouped by directory, labelled relative to root (a
// canonical path; empty keeps absolute labels). Unresolved imports are drawn
// as rounded nodes outside any group. Every import becomes one arrow.
func GenerateMermaid(g *graph.DependencyGraph, root string) string {
	nodes := g.Nodes()

	// Mermaid node ids are alphanumeric, assigned in layout order.
	nodeIDs := make(map[string]string, len(nodes))
	for i, n := range nodes {
		nodeIDs[n.CanonicalPath] = fmt.Sprintf("N%d", i)
	}

	dirs := make(map[string][]graph.FileNode)
	var external []graph.FileNode
	for _, n := range nodes {
		if !n.Resolved {
			external = append(external, n)
			continue
		}
		dir := filepath.ToSlash(filepath.Dir(n.CanonicalPath))
		dirs[dir] = append(dirs[dir], n)
	}
	dirNames := make([]string, 0, len(dirs))
	for d := range dirs {
		dirNames = append(dirNames, d)
	}
	sort.Strings(dirNames)

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, d := range dirNames {
		sb.WriteString(fmt.Sprintf("  subgraph D%d[\"%s\"]\n", i, escapeLabel(dirLabel(root, d))))
		for _, n := range dirs[d] {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeIDs[n.CanonicalPath], escapeLabel(n.Name)))
		}
		sb.WriteString("  end\n")
	}
	for _, n := range external {
		sb.WriteString(fmt.Sprintf("  %s([\"%s\"])\n", nodeIDs[n.CanonicalPath], escapeLabel(n.Name)))
	}

	for _, e := range g.Entries() {
		src := nodeIDs[e.File.CanonicalPath]
		for _, dep := range e.Dependencies {
			sb.WriteString(fmt.Sprintf("  %s --> %s\n", src, nodeIDs[dep.CanonicalPath]))
		}
	}

	return sb.String()
}

// dirLabel names dir relative to root. Directories outside root keep their
// full path.
func dirLabel(root, dir string) string {
	if root == "" {
		return dir
	}
	rel, err := filepath.Rel(filepath.FromSlash(root), filepath.FromSlash(dir))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return dir
	}
	return filepath.ToSlash(rel)
}

// canonicalRoot returns root in the same form as the graph's keys.
func canonicalRoot(root string) string {
	if root == "" {
		return ""
	}
	canonical, err := graph.NewResolver(nil).Canonicalize(root)
	if err != nil {
		return root
	}
	return canonical
}

// escapeLabel makes s safe inside a quoted Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
