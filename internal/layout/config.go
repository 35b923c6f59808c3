// Package layout places dependency graph nodes on a single vertical column
// and routes one comb-shaped arrow per import edge.
package layout

// Config holds the diagram geometry and styling. It is passed explicitly
// to Layout and Route; there are no package-level diagram constants.
type Config struct {
	// YIncrement is the vertical distance between two consecutive nodes.
	YIncrement float64
	// BaseOffset is the horizontal offset of the first arrow's vertical run.
	BaseOffset float64
	// OffsetStep widens the offset per edge: BaseOffset * (1 + i*OffsetStep).
	OffsetStep float64

	BackgroundColor string
	TextColor       string
	// ArrowColors is cycled per source file. Empty means TextColor.
	ArrowColors []string

	TextWidth  float64
	TextHeight float64
	FontFamily int
	FontSize   float64
}

// DefaultConfig returns the standard diagram settings.
func DefaultConfig() Config {
	return Config{
		YIncrement:      50,
		BaseOffset:      20,
		OffsetStep:      0.5,
		BackgroundColor: "#ffffff",
		TextColor:       "#000000",
		ArrowColors: []string{
			"#e03131",
			"#2f9e44",
			"#1971c2",
			"#f08c00",
			"#9c36b5",
			"#0c8599",
		},
		TextWidth:  1,
		TextHeight: 1,
		FontFamily: 3,
		FontSize:   20,
	}
}

// arrowColor returns the palette color for the n-th source file.
func (c Config) arrowColor(n int) string {
	if len(c.ArrowColors) == 0 {
		return c.TextColor
	}
	return c.ArrowColors[n%len(c.ArrowColors)]
}

// offset returns the fan-out distance of the edge at index i.
func (c Config) offset(i int) float64 {
	return c.BaseOffset * (1 + float64(i)*c.OffsetStep)
}
