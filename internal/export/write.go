package export

import (
	"fmt"
	"io"
	"os"

	"github.com/lonelycodes/excali-script/internal/excalidraw"
)

// Output formats.
const (
	FormatExcalidraw = "excalidraw"
	FormatMermaid    = "mermaid"
	FormatJSON       = "json"
)

// Stdout is the output path that selects standard output.
const Stdout = "-"

// Encode writes res to w in the given format.
func Encode(w io.Writer, format string, res *Result) error {
	switch format {
	case "", FormatExcalidraw:
		if res.Document == nil {
			return fmt.Errorf("no diagram rendered")
		}
		return excalidraw.Encode(w, res.Document)
	case FormatMermaid:
		_, err := io.WriteString(w, GenerateMermaid(res.Graph(), canonicalRoot(res.Root)))
		return err
	case FormatJSON:
		data, err := MarshalGraph(ExportGraph(res))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteFile writes res to path, or to standard output when path is Stdout.
// Errors are wrapped with the destination path.
func WriteFile(path, format string, res *Result) (err error) {
	if path == Stdout {
		return Encode(os.Stdout, format, res)
	}
	if format == "" || format == FormatExcalidraw {
		if res.Document == nil {
			return fmt.Errorf("write diagram %s: no diagram rendered", path)
		}
		if err := excalidraw.Write(path, res.Document); err != nil {
			return fmt.Errorf("write diagram %s: %w", path, err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write diagram %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write diagram %s: %w", path, cerr)
		}
	}()
	if err := Encode(f, format, res); err != nil {
		return fmt.Errorf("write diagram %s: %w", path, err)
	}
	return nil
}
