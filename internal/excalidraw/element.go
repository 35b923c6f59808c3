package excalidraw

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Element types on the wire.
const (
	TypeText  = "text"
	TypeArrow = "arrow"
)

// Element is one drawable item of a Document: *TextElement or *ArrowElement.
type Element interface {
	ElementID() string
	ElementType() string
}

// Binding attaches an arrow endpoint to an element. An empty ElementID
// means the endpoint is unbound.
type Binding struct {
	ElementID string  `json:"elementId"`
	Focus     float64 `json:"focus"`
	Gap       float64 `json:"gap"`
}

// Bound reports whether the binding references an element.
func (b Binding) Bound() bool {
	return b.ElementID != ""
}

// boundElement is the entry type of boundElements. excali-script never
// fills it, but it keeps the schema typed.
type boundElement struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// TextElement is a labelled node.
type TextElement struct {
	ID          string
	Anchor      Point
	Width       float64
	Height      float64
	Text        string
	StrokeColor string
	FontFamily  int
	FontSize    float64
}

func (t *TextElement) ElementID() string   { return t.ID }
func (t *TextElement) ElementType() string { return TypeText }

// textWire fixes the field order of a text element.
type textWire struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	X             float64        `json:"x"`
	Y             float64        `json:"y"`
	Width         float64        `json:"width"`
	Height        float64        `json:"height"`
	Text          string         `json:"text"`
	StrokeColor   string         `json:"strokeColor"`
	BoundElements []boundElement `json:"boundElements"`
	Points        []Point        `json:"points"`
	StartBinding  Binding        `json:"startBinding"`
	EndBinding    Binding        `json:"endBinding"`
	FontFamily    int            `json:"fontFamily"`
	FontSize      float64        `json:"fontSize"`
}

// MarshalJSON implements json.Marshaler.
func (t *TextElement) MarshalJSON() ([]byte, error) {
	return marshal(textWire{
		ID:            t.ID,
		Type:          TypeText,
		X:             t.Anchor.X,
		Y:             t.Anchor.Y,
		Width:         t.Width,
		Height:        t.Height,
		Text:          t.Text,
		StrokeColor:   t.StrokeColor,
		BoundElements: []boundElement{},
		Points:        []Point{},
		FontFamily:    t.FontFamily,
		FontSize:      t.FontSize,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TextElement) UnmarshalJSON(data []byte) error {
	var w textWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type != TypeText {
		return fmt.Errorf("text element %q: unexpected type %q", w.ID, w.Type)
	}
	*t = TextElement{
		ID:          w.ID,
		Anchor:      Point{X: w.X, Y: w.Y},
		Width:       w.Width,
		Height:      w.Height,
		Text:        w.Text,
		StrokeColor: w.StrokeColor,
		FontFamily:  w.FontFamily,
		FontSize:    w.FontSize,
	}
	return nil
}

// ArrowElement is a routed connector. Points are relative to Anchor, which
// is how the viewer interprets them.
type ArrowElement struct {
	ID           string
	Anchor       Point
	Width        float64
	Height       float64
	Points       []Point
	StrokeColor  string
	StartBinding Binding
	EndBinding   Binding
}

func (a *ArrowElement) ElementID() string   { return a.ID }
func (a *ArrowElement) ElementType() string { return TypeArrow }

// AbsolutePoints returns the polyline in diagram space.
func (a *ArrowElement) AbsolutePoints() []Point {
	out := make([]Point, len(a.Points))
	for i, p := range a.Points {
		out[i] = a.Anchor.Add(p)
	}
	return out
}

// arrowWire fixes the field order of an arrow element.
type arrowWire struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	X             float64        `json:"x"`
	Y             float64        `json:"y"`
	Width         float64        `json:"width"`
	Height        float64        `json:"height"`
	Text          string         `json:"text"`
	StrokeColor   string         `json:"strokeColor"`
	BoundElements []boundElement `json:"boundElements"`
	Points        []Point        `json:"points"`
	StartBinding  Binding        `json:"startBinding"`
	EndBinding    Binding        `json:"endBinding"`
}

// MarshalJSON implements json.Marshaler.
func (a *ArrowElement) MarshalJSON() ([]byte, error) {
	points := a.Points
	if points == nil {
		points = []Point{}
	}
	return marshal(arrowWire{
		ID:            a.ID,
		Type:          TypeArrow,
		X:             a.Anchor.X,
		Y:             a.Anchor.Y,
		Width:         a.Width,
		Height:        a.Height,
		StrokeColor:   a.StrokeColor,
		BoundElements: []boundElement{},
		Points:        points,
		StartBinding:  a.StartBinding,
		EndBinding:    a.EndBinding,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *ArrowElement) UnmarshalJSON(data []byte) error {
	var w arrowWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Type != TypeArrow {
		return fmt.Errorf("arrow element %q: unexpected type %q", w.ID, w.Type)
	}
	*a = ArrowElement{
		ID:           w.ID,
		Anchor:       Point{X: w.X, Y: w.Y},
		Width:        w.Width,
		Height:       w.Height,
		Points:       w.Points,
		StrokeColor:  w.StrokeColor,
		StartBinding: w.StartBinding,
		EndBinding:   w.EndBinding,
	}
	return nil
}

// decodeElement picks the element variant from the "type" discriminator.
func decodeElement(data []byte) (Element, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case TypeText:
		t := &TextElement{}
		return t, t.UnmarshalJSON(data)
	case TypeArrow:
		a := &ArrowElement{}
		return a, a.UnmarshalJSON(data)
	default:
		return nil, fmt.Errorf("unsupported element type %q", head.Type)
	}
}

// marshal encodes v without HTML escaping and without a trailing newline.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
