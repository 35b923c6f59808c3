package layout

import (
	"github.com/lonelycodes/excali-script/internal/excalidraw"
	"github.com/lonelycodes/excali-script/internal/graph"
)

// Diagram lays out g and routes its edges into a new document: all text
// elements first, then all arrows.
func Diagram(g *graph.DependencyGraph, cfg Config, newID IDFunc) *excalidraw.Document {
	p, texts := Layout(g, cfg)
	arrows := Route(g, p, cfg, newID)

	doc := excalidraw.NewDocument(cfg.BackgroundColor)
	for _, t := range texts {
		doc.Add(t)
	}
	for _, a := range arrows {
		doc.Add(a)
	}
	return doc
}
