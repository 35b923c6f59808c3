package mcptools

import (
	"github.com/lonelycodes/excali-script/internal/export"
	"github.com/lonelycodes/excali-script/internal/graph"
)

// --- MCP Tool Input Types ---
// The MCP Go SDK generates each tool's JSON schema from these struct tags.

// BuildGraphInput is the input for the build_graph MCP tool.
type BuildGraphInput struct {
	RootPath    string   `json:"rootPath" jsonschema:"the absolute path of the directory to scan"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directory names to skip (default: .git, node_modules)"`
	Strict      bool     `json:"strict,omitempty" jsonschema:"resolve relative imports only by their exact path, without trying .ts/.tsx/.js/.jsx"`
}

// BuildGraphOutput is the result of the build_graph MCP tool.
type BuildGraphOutput struct {
	Stats      graph.GraphStats         `json:"stats"`
	Skipped    []export.SkippedExport   `json:"skipped,omitempty"`
	Unresolved []graph.UnresolvedImport `json:"unresolved,omitempty"`
}

// RenderDiagramInput is the input for the render_diagram MCP tool.
type RenderDiagramInput struct {
	RootPath    string   `json:"rootPath" jsonschema:"the absolute path of the directory to scan"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directory names to skip (default: .git, node_modules)"`
	Strict      bool     `json:"strict,omitempty" jsonschema:"resolve relative imports only by their exact path, without trying .ts/.tsx/.js/.jsx"`
	OutputPath  string   `json:"outputPath,omitempty" jsonschema:"file to write; when empty the diagram is returned inline"`
	Format      string   `json:"format,omitempty" jsonschema:"excalidraw (default), mermaid or json"`
}

// RenderDiagramOutput is the result of the render_diagram MCP tool.
type RenderDiagramOutput struct {
	Stats      graph.GraphStats       `json:"stats"`
	Elements   int                    `json:"elements"`
	OutputPath string                 `json:"outputPath,omitempty"`
	Content    string                 `json:"content,omitempty"`
	Skipped    []export.SkippedExport `json:"skipped,omitempty"`
}

// GetDependenciesInput is the input for the get_dependencies MCP tool.
type GetDependenciesInput struct {
	NodeID    string `json:"nodeId" jsonschema:"canonical file path, a path relative to the scanned root, or a bare import specifier"`
	Direction string `json:"direction,omitempty" jsonschema:"downstream (what it imports) or upstream (what imports it). Default: downstream"`
	MaxDepth  int    `json:"maxDepth,omitempty" jsonschema:"maximum traversal depth (default: 5)"`
}

// GetDependenciesOutput is the result of the get_dependencies MCP tool.
type GetDependenciesOutput struct {
	NodeID string                  `json:"nodeId"`
	Chains []graph.DependencyChain `json:"chains"`
}
