package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonelycodes/excali-script/internal/excalidraw"
	"github.com/lonelycodes/excali-script/internal/graph"
)

const fixtureRoot = "../../testdata/fixtures/ts_project"

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return root
}

func testOptions() Options {
	opts := DefaultOptions()
	n := 0
	opts.NewID = func() string {
		n++
		return fmt.Sprintf("arrow-%d", n)
	}
	return opts
}

func render(t *testing.T, root string) *Result {
	t.Helper()
	res, err := Render(context.Background(), root, testOptions())
	require.NoError(t, err)
	require.NotNil(t, res.Document)
	return res
}

func labels(doc *excalidraw.Document) []string {
	var out []string
	for _, txt := range doc.Texts() {
		out = append(out, txt.Text)
	}
	return out
}

func TestRender_EmptyDirectory(t *testing.T) {
	res := render(t, t.TempDir())

	assert.Empty(t, res.Document.Elements)
	data, err := excalidraw.Marshal(res.Document)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"elements": []`)
}

func TestRender_SingleRelativeImport(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts": `import { b } from "./b";` + "\n",
		"b.ts": "export const b = 1;\n",
	})

	doc := render(t, root).Document

	assert.Equal(t, []string{"a.ts", "b.ts"}, labels(doc))
	require.Len(t, doc.Arrows(), 1)
	arrow := doc.Arrows()[0]
	assert.Equal(t, doc.Texts()[0].ID, arrow.StartBinding.ElementID)
	assert.Equal(t, doc.Texts()[1].ID, arrow.EndBinding.ElementID)
	assert.Equal(t, doc.Texts()[0].Anchor, arrow.Anchor)
	points := arrow.AbsolutePoints()
	assert.Equal(t, doc.Texts()[1].Anchor, points[len(points)-1])
}

func TestRender_OffsetsIncrease(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts": "import { b } from \"./b\";\nimport { c } from \"./c\";\n",
		"b.ts": "export const b = 1;\n",
		"c.ts": "export const c = 1;\n",
	})

	doc := render(t, root).Document

	assert.Len(t, doc.Texts(), 3)
	require.Len(t, doc.Arrows(), 2)
	first := -doc.Arrows()[0].Points[1].X
	second := -doc.Arrows()[1].Points[1].X
	assert.Greater(t, second, first)
}

func TestRender_BareSpecifier(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts": `import leftPad from "left-pad";` + "\n",
	})

	res := render(t, root)

	assert.Equal(t, []string{"a.ts", "left-pad"}, labels(res.Document))
	assert.Len(t, res.Document.Arrows(), 1)

	require.Len(t, res.Build.Unresolved, 1)
	assert.Equal(t, graph.ReasonBare, res.Build.Unresolved[0].Reason)
	nodes := res.Graph().Nodes()
	require.Len(t, nodes, 2)
	assert.False(t, nodes[1].Resolved)
	assert.Equal(t, "left-pad", nodes[1].CanonicalPath)
}

func TestRender_Fixture(t *testing.T) {
	res := render(t, fixtureRoot)

	assert.Len(t, res.Files, 5, "ignored.ts and node_modules are excluded")
	require.Len(t, res.Build.Diagnostics, 1)
	assert.Equal(t, "broken.ts", filepath.Base(res.Build.Diagnostics[0].Path))
	assert.Equal(t, graph.DiagnosticSyntax, res.Build.Diagnostics[0].Kind)

	assert.Equal(t, graph.GraphStats{
		FileCount:       4,
		NodeCount:       5,
		EdgeCount:       5,
		UnresolvedCount: 1,
	}, res.Stats())
	assert.Len(t, res.Document.Texts(), 5)
	assert.Len(t, res.Document.Arrows(), 5)
	assert.Equal(t, []string{"Widget.tsx", "greet.ts", "index.ts", "format.js", "left-pad"}, labels(res.Document))
}

func TestRender_Deterministic(t *testing.T) {
	first, err := excalidraw.Marshal(render(t, fixtureRoot).Document)
	require.NoError(t, err)

	opts := testOptions()
	opts.Concurrency = 1
	res, err := Render(context.Background(), fixtureRoot, opts)
	require.NoError(t, err)
	second, err := excalidraw.Marshal(res.Document)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRender_StrictMode(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ts": `import { b } from "./b";` + "\n",
		"b.ts": "export const b = 1;\n",
	})
	opts := testOptions()
	opts.Probe = nil

	res, err := Render(context.Background(), root, opts)
	require.NoError(t, err)

	require.Len(t, res.Build.Unresolved, 1)
	assert.Equal(t, graph.ReasonNotFound, res.Build.Unresolved[0].Reason)
	assert.Equal(t, []string{"a.ts", "b.ts", "b"}, labels(res.Document))
}

func TestRender_Errors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		_, err := Render(context.Background(), filepath.Join(t.TempDir(), "nope"), testOptions())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("file root", func(t *testing.T) {
		root := writeTree(t, map[string]string{"a.ts": ""})
		_, err := Render(context.Background(), filepath.Join(root, "a.ts"), testOptions())
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Render(ctx, fixtureRoot, testOptions())
		assert.ErrorIs(t, err, context.Canceled)
	})
}
