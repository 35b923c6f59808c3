package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/lonelycodes/excali-script/internal/export"
	"github.com/lonelycodes/excali-script/internal/graph"
	"github.com/lonelycodes/excali-script/internal/layout"
)

// FileNames are the config file names looked up by Load, in order.
var FileNames = []string{"excali.yml", "excali.yaml"}

// ProjectConfig holds project-level settings loaded from excali.yml.
// Zero values select the defaults.
type ProjectConfig struct {
	Output           string   `yaml:"output,omitempty"`
	Format           string   `yaml:"format,omitempty"`
	ExcludeDirs      []string `yaml:"excludeDirs,omitempty"`
	Extensions       []string `yaml:"extensions,omitempty"`
	ProbeExtensions  []string `yaml:"probeExtensions,omitempty"`
	Strict           bool     `yaml:"strict,omitempty"`
	Concurrency      int      `yaml:"concurrency,omitempty"`
	RespectGitignore *bool    `yaml:"respectGitignore,omitempty"`
	Diagram          Diagram  `yaml:"diagram,omitempty"`
}

// Diagram overrides layout.Config fields.
type Diagram struct {
	YIncrement      float64  `yaml:"yIncrement,omitempty"`
	BaseOffset      float64  `yaml:"baseOffset,omitempty"`
	OffsetStep      float64  `yaml:"offsetStep,omitempty"`
	BackgroundColor string   `yaml:"backgroundColor,omitempty"`
	TextColor       string   `yaml:"textColor,omitempty"`
	ArrowColors     []string `yaml:"arrowColors,omitempty"`
	TextWidth       float64  `yaml:"textWidth,omitempty"`
	TextHeight      float64  `yaml:"textHeight,omitempty"`
	FontFamily      int      `yaml:"fontFamily,omitempty"`
	FontSize        float64  `yaml:"fontSize,omitempty"`
}

// Load attempts to read excali.yml or excali.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range FileNames {
		cfg, err := LoadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return &ProjectConfig{}, nil
}

// LoadFile reads one config file.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects values no run could use.
func (c *ProjectConfig) Validate() error {
	switch c.Format {
	case "", export.FormatExcalidraw, export.FormatMermaid, export.FormatJSON:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.Diagram.YIncrement < 0 || c.Diagram.BaseOffset < 0 || c.Diagram.OffsetStep < 0 {
		return errors.New("diagram spacing must not be negative")
	}
	return nil
}

// OutputFormat returns the configured format, excalidraw by default.
func (c *ProjectConfig) OutputFormat() string {
	if c.Format == "" {
		return export.FormatExcalidraw
	}
	return c.Format
}

// OutputPath returns the configured output path, or <root-name>.<ext> in
// the working directory.
func (c *ProjectConfig) OutputPath(root string) string {
	if c.Output != "" {
		return c.Output
	}
	name := filepath.Base(filepath.Clean(root))
	if name == "." || name == string(filepath.Separator) {
		name = "diagram"
	}
	switch c.OutputFormat() {
	case export.FormatMermaid:
		return name + ".mmd"
	case export.FormatJSON:
		return name + ".json"
	default:
		return name + ".excalidraw"
	}
}

// Workers returns the parser concurrency, GOMAXPROCS by default.
func (c *ProjectConfig) Workers() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// Probe returns the resolver probe extensions. Strict mode disables probing.
func (c *ProjectConfig) Probe() []string {
	if c.Strict {
		return nil
	}
	if len(c.ProbeExtensions) > 0 {
		return c.ProbeExtensions
	}
	return graph.DefaultProbeExtensions
}

// Discover maps the config onto discovery options. .gitignore is honoured
// unless respectGitignore is explicitly false.
func (c *ProjectConfig) Discover() graph.DiscoverOptions {
	respect := true
	if c.RespectGitignore != nil {
		respect = *c.RespectGitignore
	}
	return graph.DiscoverOptions{
		Extensions:       c.Extensions,
		ExcludeDirs:      c.ExcludeDirs,
		RespectGitignore: respect,
	}
}

// Options maps the config onto pipeline options.
func (c *ProjectConfig) Options() export.Options {
	return export.Options{
		Discover:    c.Discover(),
		Probe:       c.Probe(),
		Concurrency: c.Workers(),
		Layout:      c.Layout(),
	}
}

// Layout returns layout.DefaultConfig with the diagram overrides applied.
func (c *ProjectConfig) Layout() layout.Config {
	out := layout.DefaultConfig()
	d := c.Diagram
	if d.YIncrement > 0 {
		out.YIncrement = d.YIncrement
	}
	if d.BaseOffset > 0 {
		out.BaseOffset = d.BaseOffset
	}
	if d.OffsetStep > 0 {
		out.OffsetStep = d.OffsetStep
	}
	if d.BackgroundColor != "" {
		out.BackgroundColor = d.BackgroundColor
	}
	if d.TextColor != "" {
		out.TextColor = d.TextColor
	}
	if len(d.ArrowColors) > 0 {
		out.ArrowColors = d.ArrowColors
	}
	if d.TextWidth > 0 {
		out.TextWidth = d.TextWidth
	}
	if d.TextHeight > 0 {
		out.TextHeight = d.TextHeight
	}
	if d.FontFamily > 0 {
		out.FontFamily = d.FontFamily
	}
	if d.FontSize > 0 {
		out.FontSize = d.FontSize
	}
	return out
}
