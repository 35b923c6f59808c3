package export

import (
	"bytes"
	"encoding/json"

	"github.com/lonelycodes/excali-script/internal/graph"
)

// GraphExport is the top-level JSON export structure.
type GraphExport struct {
	Root       string                   `json:"root"`
	Stats      graph.GraphStats         `json:"stats"`
	Files      []graph.Entry            `json:"files"`
	Skipped    []SkippedExport          `json:"skipped,omitempty"`
	Unresolved []graph.UnresolvedImport `json:"unresolved,omitempty"`
}

// SkippedExport describes one file left out of the graph.
type SkippedExport struct {
	Path  string               `json:"path"`
	Kind  graph.DiagnosticKind `json:"kind"`
	Error string               `json:"error"`
}

// ExportGraph builds a GraphExport from a pipeline result.
func ExportGraph(res *Result) *GraphExport {
	export := &GraphExport{
		Root:  res.Root,
		Stats: res.Stats(),
		Files: append([]graph.Entry{}, res.Graph().Entries()...),
	}
	if res.Build == nil {
		return export
	}
	for _, d := range res.Build.Diagnostics {
		msg := ""
		if d.Err != nil {
			msg = d.Err.Error()
		}
		export.Skipped = append(export.Skipped, SkippedExport{Path: d.Path, Kind: d.Kind, Error: msg})
	}
	export.Unresolved = res.Build.Unresolved
	return export
}

// MarshalGraph renders an export as indented JSON with a trailing newline.
func MarshalGraph(export *GraphExport) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
