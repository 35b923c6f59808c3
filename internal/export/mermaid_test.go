package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lonelycodes/excali-script/internal/graph"
)

func TestGenerateMermaid(t *testing.T) {
	a := graph.FileNode{Name: "a.ts", CanonicalPath: "/p/a.ts", Resolved: true}
	b := graph.FileNode{Name: "b.ts", CanonicalPath: "/p/lib/b.ts", Resolved: true}
	pad := graph.FileNode{Name: "left-pad", CanonicalPath: "left-pad"}

	g := graph.NewDependencyGraph([]graph.Entry{
		{File: b},
		{File: a, Dependencies: []graph.FileNode{b, pad}},
	})

	want := `graph TD
  subgraph D0["."]
    N0["a.ts"]
  end
  subgraph D1["lib"]
    N1["b.ts"]
  end
  N2(["left-pad"])
  N0 --> N1
  N0 --> N2
`
	assert.Equal(t, want, GenerateMermaid(g, "/p"))
}

func TestGenerateMermaid_Empty(t *testing.T) {
	assert.Equal(t, "graph TD\n", GenerateMermaid(graph.NewDependencyGraph(nil), ""))
}

func TestDirLabel(t *testing.T) {
	tests := []struct {
		name string
		root string
		dir  string
		want string
	}{
		{"root itself", "/p", "/p", "."},
		{"nested", "/p", "/p/src/components", "src/components"},
		{"sibling of root", "/p", "/q/src", "/q/src"},
		{"name sharing a prefix", "/p", "/p2/src", "/p2/src"},
		{"no root", "", "/p/src", "/p/src"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dirLabel(tt.root, tt.dir))
		})
	}
}

func TestEscapeLabel(t *testing.T) {
	assert.Equal(t, "say #quot;hi#quot;", escapeLabel(`say "hi"`))
}
