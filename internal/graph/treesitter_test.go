package graph

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// readFixture reads a test fixture file relative to the project root.
// Tests run from internal/graph/, so the relative path is ../../testdata/...
func readFixture(t *testing.T, relPath string) []byte {
	t.Helper()
	data, err := os.ReadFile("../../" + relPath)
	require.NoError(t, err, "reading fixture %s", relPath)
	return data
}

// ---------------------------------------------------------------------------
// TestTreeSitterParser_SupportedLanguages
// ---------------------------------------------------------------------------

func TestTreeSitterParser_SupportedLanguages(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	langs := p.SupportedLanguages()
	assert.ElementsMatch(t, []Language{LangTypeScript, LangTSX, LangJavaScript}, langs)
}

// ---------------------------------------------------------------------------
// TestTreeSitterParser_Imports
// ---------------------------------------------------------------------------

func TestTreeSitterParser_Imports(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()
	ctx := context.Background()

	tests := []struct {
		name   string
		lang   Language
		source string
		want   []string
	}{
		{
			name: "declaration order is kept",
			lang: LangTypeScript,
			source: `import a from "./a";
import { b } from './b';
import * as c from "c";
import "./side-effect";
`,
			want: []string{"./a", "./b", "c", "./side-effect"},
		},
		{
			name: "type-only import",
			lang: LangTypeScript,
			source: `import type { T } from "./types";
export type U = T;
`,
			want: []string{"./types"},
		},
		{
			name: "dynamic import and re-export are ignored",
			lang: LangTypeScript,
			source: `export { a } from "./a";
const lazy = import("./lazy");
`,
			want: nil,
		},
		{
			name:   "duplicate imports are kept",
			lang:   LangJavaScript,
			source: "import x from './x';\nimport { y } from './x';\n",
			want:   []string{"./x", "./x"},
		},
		{
			name:   "escape sequences are decoded",
			lang:   LangTypeScript,
			source: "import a from \"./a\\u002Eb\";\nimport c from './it\\'s';\nimport d from \"./\\x64\";\n",
			want:   []string{"./a.b", "./it's", "./d"},
		},
		{
			name:   "empty specifier is not an import",
			lang:   LangJavaScript,
			source: "import \"\";\nimport \"./kept\";\n",
			want:   []string{"./kept"},
		},
		{
			name:   "no imports",
			lang:   LangJavaScript,
			source: "export const answer = 42;\n",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Imports(ctx, "mod", []byte(tt.source), tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeEscape(t *testing.T) {
	tests := []struct {
		esc  string
		want string
	}{
		{`\n`, "\n"},
		{`\\`, `\`},
		{`\"`, `"`},
		{`\x41`, "A"},
		{`\u00e9`, "é"},
		{`\u{1F600}`, "😀"},
		{`\0`, "\x00"},
		{"\\\n", ""},
		{`\q`, "q"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, decodeEscape(tt.esc), tt.esc)
	}
}

func TestTreeSitterParser_Fixtures(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()
	ctx := context.Background()

	t.Run("index.ts", func(t *testing.T) {
		src := readFixture(t, "testdata/fixtures/ts_project/src/index.ts")
		got, err := p.Imports(ctx, "index.ts", src, LangTypeScript)
		require.NoError(t, err)
		assert.Equal(t, []string{"./greet", "./components/Widget", "left-pad"}, got)
	})

	t.Run("Widget.tsx", func(t *testing.T) {
		src := readFixture(t, "testdata/fixtures/ts_project/src/components/Widget.tsx")
		got, err := p.Imports(ctx, "Widget.tsx", src, LangTSX)
		require.NoError(t, err)
		assert.Equal(t, []string{"../greet"}, got)
	})

	t.Run("format.js", func(t *testing.T) {
		src := readFixture(t, "testdata/fixtures/ts_project/src/util/format.js")
		got, err := p.Imports(ctx, "format.js", src, LangJavaScript)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestTreeSitterParser_SyntaxError(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	src := readFixture(t, "testdata/fixtures/ts_project/src/broken.ts")
	_, err := p.Imports(context.Background(), "broken.ts", src, LangTypeScript)
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr), "expected *SyntaxError, got %T", err)
	assert.Equal(t, "broken.ts", syntaxErr.Path)
	assert.GreaterOrEqual(t, syntaxErr.Line, 1)
	assert.Contains(t, err.Error(), "broken.ts")
}

func TestTreeSitterParser_UnsupportedLanguage(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	_, err := p.Imports(context.Background(), "main.go", []byte("package main"), Language("go"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")
}

func TestTreeSitterParser_CanceledContext(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Imports(ctx, "a.ts", []byte("import './b';"), LangTypeScript)
	assert.ErrorIs(t, err, context.Canceled)
}
