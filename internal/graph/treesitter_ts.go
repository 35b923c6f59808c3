package graph

import (
	"strconv"
	"strings"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// importExtractor collects the source specifier of every top-level
// import_statement. Dynamic import() calls and re-exports are ignored.
type importExtractor struct{}

func (e *importExtractor) Extract(root *tree_sitter.Node, source []byte) []string {
	var specifiers []string
	for i := uint(0); i < root.NamedChildCount(); i++ {
		node := root.NamedChild(i)
		if node == nil || node.Kind() != "import_statement" {
			continue
		}
		if spec, ok := e.extractImport(node, source); ok {
			specifiers = append(specifiers, spec)
		}
	}
	return specifiers
}

func (e *importExtractor) extractImport(node *tree_sitter.Node, source []byte) (string, bool) {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		// Fall back: look for a string child.
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child != nil && child.Kind() == "string" {
				sourceNode = child
				break
			}
		}
	}
	if sourceNode == nil {
		// import x = require("y") has no source field.
		return "", false
	}

	// An empty specifier names no module and has no node to point at.
	spec := stringValue(sourceNode, source)
	if spec == "" {
		return "", false
	}
	return spec, true
}

// stringValue returns the decoded contents of a string literal node.
func stringValue(node *tree_sitter.Node, source []byte) string {
	var b strings.Builder
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "string_fragment":
			b.WriteString(child.Utf8Text(source))
		case "escape_sequence":
			b.WriteString(decodeEscape(child.Utf8Text(source)))
		}
	}
	return b.String()
}

// decodeEscape decodes a single ECMAScript escape sequence such as \n,
// \x41, \u0041 or \u{1F600}. Unknown escapes yield the escaped character.
func decodeEscape(esc string) string {
	if len(esc) < 2 || esc[0] != '\\' {
		return esc
	}
	body := esc[1:]
	switch body[0] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		if len(body) == 1 {
			return "\x00"
		}
	case '\n', '\r':
		// Line continuation.
		return ""
	case 'x', 'u':
		hex := strings.TrimSuffix(strings.TrimPrefix(body[1:], "{"), "}")
		if r, err := strconv.ParseUint(hex, 16, 32); err == nil && utf8.ValidRune(rune(r)) {
			return string(rune(r))
		}
		return body
	}
	return body
}
