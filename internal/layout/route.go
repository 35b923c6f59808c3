package layout

import (
	"math"

	"github.com/google/uuid"

	"github.com/lonelycodes/excali-script/internal/excalidraw"
	"github.com/lonelycodes/excali-script/internal/graph"
)

// IDFunc produces arrow element ids.
type IDFunc func() string

// Route builds one arrow per edge of g, walking entries in key order and
// each dependency list in recorded order. A nil newID uses random UUIDs.
//
// The n-th edge (counted across the whole graph) leaves its source to the
// left, runs vertically at cfg.offset(n) and enters the target from the
// left. Every arrow is anchored at its source node; points are relative to
// that anchor. Edges whose endpoints are missing from p are skipped.
func Route(g *graph.DependencyGraph, p *Placement, cfg Config, newID IDFunc) []*excalidraw.ArrowElement {
	if newID == nil {
		newID = uuid.NewString
	}

	arrows := make([]*excalidraw.ArrowElement, 0, g.EdgeCount())
	edge := 0
	for i, e := range g.Entries() {
		start, ok := p.Lookup(e.File.CanonicalPath)
		if !ok {
			edge += len(e.Dependencies)
			continue
		}
		color := cfg.arrowColor(i)
		for _, dep := range e.Dependencies {
			end, ok := p.Lookup(dep.CanonicalPath)
			if !ok {
				edge++
				continue
			}
			arrows = append(arrows, arrow(newID(), start, end, cfg.offset(edge), color,
				e.File.CanonicalPath, dep.CanonicalPath))
			edge++
		}
	}
	return arrows
}

func arrow(id string, start, end excalidraw.Point, offset float64, color, from, to string) *excalidraw.ArrowElement {
	abs := []excalidraw.Point{
		start,
		{X: start.X - offset, Y: start.Y},
		{X: end.X - offset, Y: end.Y},
		end,
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	rel := make([]excalidraw.Point, len(abs))
	for i, pt := range abs {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		rel[i] = pt.Sub(start)
	}

	return &excalidraw.ArrowElement{
		ID:           id,
		Anchor:       start,
		Width:        maxX - minX,
		Height:       maxY - minY,
		Points:       rel,
		StrokeColor:  color,
		StartBinding: excalidraw.Binding{ElementID: from},
		EndBinding:   excalidraw.Binding{ElementID: to},
	}
}
