package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonelycodes/excali-script/internal/excalidraw"
	"github.com/lonelycodes/excali-script/internal/graph"
)

func TestDiagram_Cycle(t *testing.T) {
	g := graph.NewDependencyGraph([]graph.Entry{
		entry(file("A.ts"), file("B.ts")),
		entry(file("B.ts"), file("A.ts")),
	})

	doc := Diagram(g, DefaultConfig(), counter())

	require.Len(t, doc.Texts(), 2)
	require.Len(t, doc.Arrows(), 2)
	require.NoError(t, doc.Validate())

	fwd, back := doc.Arrows()[0], doc.Arrows()[1]
	assert.Equal(t, "/p/A.ts", fwd.StartBinding.ElementID)
	assert.Equal(t, "/p/B.ts", back.StartBinding.ElementID)
	assert.Equal(t, excalidraw.Point{X: 0, Y: 50}, back.Anchor)
}

func TestDiagram_TextsBeforeArrows(t *testing.T) {
	g := graph.NewDependencyGraph([]graph.Entry{entry(file("a.ts"), bare("left-pad"))})

	doc := Diagram(g, DefaultConfig(), counter())

	require.Len(t, doc.Elements, 3)
	assert.Equal(t, excalidraw.TypeText, doc.Elements[0].ElementType())
	assert.Equal(t, excalidraw.TypeText, doc.Elements[1].ElementType())
	assert.Equal(t, excalidraw.TypeArrow, doc.Elements[2].ElementType())
	assert.Equal(t, "left-pad", doc.Texts()[1].Text)
	assert.Equal(t, "#ffffff", doc.AppState.ViewBackgroundColor)
}

func TestDiagram_StableBytes(t *testing.T) {
	g := graph.NewDependencyGraph([]graph.Entry{
		entry(file("a.ts"), file("b.ts"), bare("x")),
		entry(file("b.ts"), file("a.ts")),
	})

	first, err := excalidraw.Marshal(Diagram(g, DefaultConfig(), counter()))
	require.NoError(t, err)
	second, err := excalidraw.Marshal(Diagram(g, DefaultConfig(), counter()))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	doc, err := excalidraw.Parse(first)
	require.NoError(t, err)
	again, err := excalidraw.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(again))
}
