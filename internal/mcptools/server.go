package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewDiagramMCPServer creates an MCP server with the build_graph,
// render_diagram and get_dependencies tools registered.
func NewDiagramMCPServer(svc *DiagramService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "excali-script",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_graph",
		Description: "Scan a directory of JavaScript/TypeScript sources, parse their static imports with tree-sitter and build the file dependency graph. Returns graph statistics, skipped files and unresolved imports.",
	}, svc.BuildGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_diagram",
		Description: "Scan a directory and render its file dependency graph as an Excalidraw scene (or Mermaid / JSON). Writes to outputPath or returns the document inline.",
	}, svc.RenderDiagram)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dependencies",
		Description: "Traverse the dependency graph of the last scan downstream (imports) or upstream (importers) from a file. Returns dependency chains up to the specified depth.",
	}, svc.GetDependencies)

	return server
}

// RunMCPServer starts an HTTP server exposing the MCP tools.
func RunMCPServer(ctx context.Context, svc *DiagramService, addr string) error {
	server := NewDiagramMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, svc *DiagramService) error {
	return NewDiagramMCPServer(svc).Run(ctx, &mcp.StdioTransport{})
}
