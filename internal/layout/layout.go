package layout

import (
	"github.com/lonelycodes/excali-script/internal/excalidraw"
	"github.com/lonelycodes/excali-script/internal/graph"
)

// Placement maps each graph node's canonical path to its anchor point.
// It is read-only once returned by Layout.
type Placement struct {
	points map[string]excalidraw.Point
	order  []string
}

// Lookup returns the anchor of the node with the given canonical path.
func (p *Placement) Lookup(canonicalPath string) (excalidraw.Point, bool) {
	if p == nil {
		return excalidraw.Point{}, false
	}
	pt, ok := p.points[canonicalPath]
	return pt, ok
}

// Len returns the number of placed nodes.
func (p *Placement) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}

// Order returns the canonical paths in slot order.
func (p *Placement) Order() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.order...)
}

// Layout assigns every distinct node of g a slot on the vertical column and
// returns one text element per node, in slot order.
//
// Scanned files take the first slots in canonical path order; dependency
// targets follow in first-seen order. The result depends only on g and cfg.
func Layout(g *graph.DependencyGraph, cfg Config) (*Placement, []*excalidraw.TextElement) {
	nodes := g.Nodes()
	p := &Placement{
		points: make(map[string]excalidraw.Point, len(nodes)),
		order:  make([]string, 0, len(nodes)),
	}
	texts := make([]*excalidraw.TextElement, 0, len(nodes))

	for slot, n := range nodes {
		anchor := excalidraw.Point{X: 0, Y: float64(slot) * cfg.YIncrement}
		p.points[n.CanonicalPath] = anchor
		p.order = append(p.order, n.CanonicalPath)

		texts = append(texts, &excalidraw.TextElement{
			ID:          n.CanonicalPath,
			Anchor:      anchor,
			Width:       cfg.TextWidth,
			Height:      cfg.TextHeight,
			Text:        n.Name,
			StrokeColor: cfg.TextColor,
			FontFamily:  cfg.FontFamily,
			FontSize:    cfg.FontSize,
		})
	}
	return p, texts
}
