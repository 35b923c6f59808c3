package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonelycodes/excali-script/internal/export"
	"github.com/lonelycodes/excali-script/internal/graph"
	"github.com/lonelycodes/excali-script/internal/layout"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	return dir
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)

	assert.Equal(t, export.FormatExcalidraw, cfg.OutputFormat())
	assert.Equal(t, graph.DefaultProbeExtensions, cfg.Probe())
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers())
	assert.Equal(t, layout.DefaultConfig(), cfg.Layout())
	assert.True(t, cfg.Discover().RespectGitignore)

	opts := cfg.Options()
	assert.Equal(t, cfg.Workers(), opts.Concurrency)
	assert.Equal(t, graph.DefaultProbeExtensions, opts.Probe)
}

func TestLoad_FullFile(t *testing.T) {
	dir := writeConfig(t, "excali.yml", `
output: deps.excalidraw
format: excalidraw
excludeDirs: [dist, node_modules]
extensions: [.ts]
probeExtensions: [.ts]
concurrency: 3
respectGitignore: false
diagram:
  yIncrement: 80
  baseOffset: 10
  offsetStep: 1
  backgroundColor: "#101010"
  textColor: "#eeeeee"
  arrowColors: ["#ff0000"]
  fontSize: 16
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "deps.excalidraw", cfg.OutputPath("/some/root"))
	assert.Equal(t, 3, cfg.Workers())
	assert.Equal(t, []string{".ts"}, cfg.Probe())

	opts := cfg.Discover()
	assert.Equal(t, []string{"dist", "node_modules"}, opts.ExcludeDirs)
	assert.Equal(t, []string{".ts"}, opts.Extensions)
	assert.False(t, opts.RespectGitignore)

	lc := cfg.Layout()
	assert.Equal(t, 80.0, lc.YIncrement)
	assert.Equal(t, 10.0, lc.BaseOffset)
	assert.Equal(t, 1.0, lc.OffsetStep)
	assert.Equal(t, "#101010", lc.BackgroundColor)
	assert.Equal(t, "#eeeeee", lc.TextColor)
	assert.Equal(t, []string{"#ff0000"}, lc.ArrowColors)
	assert.Equal(t, 16.0, lc.FontSize)
	assert.Equal(t, 3, lc.FontFamily, "unset fields keep defaults")
}

func TestLoad_YAMLExtension(t *testing.T) {
	dir := writeConfig(t, "excali.yaml", "strict: true\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Nil(t, cfg.Probe())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", "output: [unterminated\n"},
		{"unknown format", "format: svg\n"},
		{"negative concurrency", "concurrency: -1\n"},
		{"negative spacing", "diagram:\n  yIncrement: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "excali.yml", tt.body))
			assert.Error(t, err)
		})
	}
}

func TestOutputPath_Defaults(t *testing.T) {
	cfg := &ProjectConfig{}
	assert.Equal(t, "web.excalidraw", cfg.OutputPath("/src/web"))
	assert.Equal(t, "web.excalidraw", cfg.OutputPath("/src/web/"))

	cfg.Format = export.FormatMermaid
	assert.Equal(t, "web.mmd", cfg.OutputPath("/src/web"))

	cfg.Format = export.FormatJSON
	assert.Equal(t, "web.json", cfg.OutputPath("/src/web"))
}
