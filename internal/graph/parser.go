package graph

import (
	"context"
	"fmt"
)

// Parser extracts the static import specifiers of a single source file.
// Implementations: TreeSitterParser (production), stub parsers in tests.
type Parser interface {
	// Imports returns the literal source specifier of every import
	// declaration in source, in declaration order. It fails with a
	// *SyntaxError when source does not parse.
	Imports(ctx context.Context, path string, source []byte, lang Language) ([]string, error)

	// SupportedLanguages returns the languages this parser can handle.
	SupportedLanguages() []Language

	// Close releases parser resources (Tree-sitter C memory).
	Close() error
}

// SyntaxError reports a source file that failed to parse. Line and Column
// are 1-based and point at the first error node.
type SyntaxError struct {
	Path   string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %s at %d:%d", e.Path, e.Line, e.Column)
}
