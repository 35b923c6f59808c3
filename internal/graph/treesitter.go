package graph

import (
	"context"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// extractor pulls import specifiers out of a parsed tree-sitter AST.
type extractor interface {
	Extract(root *tree_sitter.Node, source []byte) []string
}

// TreeSitterParser implements the Parser interface using tree-sitter grammars.
// A new tree-sitter parser is created per Imports call, so one
// TreeSitterParser can be shared by concurrent callers.
type TreeSitterParser struct {
	languages  map[Language]*tree_sitter.Language
	extractors map[Language]extractor
}

// NewTreeSitterParser creates a TreeSitterParser with the TypeScript, TSX
// and JavaScript grammars registered.
func NewTreeSitterParser() *TreeSitterParser {
	langs := map[Language]*tree_sitter.Language{
		LangTypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		LangTSX:        tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
		LangJavaScript: tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
	}

	// The three grammars share the ESTree-shaped import_statement node.
	imports := &importExtractor{}
	extractors := map[Language]extractor{
		LangTypeScript: imports,
		LangTSX:        imports,
		LangJavaScript: imports,
	}

	return &TreeSitterParser{
		languages:  langs,
		extractors: extractors,
	}
}

// Imports parses source and returns its import specifiers in declaration order.
func (p *TreeSitterParser) Imports(ctx context.Context, path string, source []byte, lang Language) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tsLang, ok := p.languages[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	ext, ok := p.extractors[lang]
	if !ok {
		return nil, fmt.Errorf("no extractor for language: %s", lang)
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tsLang); err != nil {
		return nil, fmt.Errorf("set language %s: %w", lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned nil tree for %s", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, newSyntaxError(path, root)
	}

	return ext.Extract(root, source), nil
}

// SupportedLanguages returns the languages this parser can handle.
func (p *TreeSitterParser) SupportedLanguages() []Language {
	langs := make([]Language, 0, len(p.languages))
	for l := range p.languages {
		langs = append(langs, l)
	}
	return langs
}

// Close is a no-op because parsers are created per Imports call.
func (p *TreeSitterParser) Close() error {
	return nil
}

// newSyntaxError locates the first ERROR or MISSING node below root.
func newSyntaxError(path string, root *tree_sitter.Node) *SyntaxError {
	node := firstErrorNode(root)
	if node == nil {
		node = root
	}
	pos := node.StartPosition()
	return &SyntaxError{
		Path:   path,
		Line:   int(pos.Row) + 1,
		Column: int(pos.Column) + 1,
	}
}

func firstErrorNode(node *tree_sitter.Node) *tree_sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if found := firstErrorNode(child); found != nil {
			return found
		}
	}
	return nil
}
