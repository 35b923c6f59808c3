package excalidraw

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Document header values.
const (
	DocumentType           = "excalidraw"
	DocumentVersion        = "2.0.0"
	DocumentSource         = "https://excalidraw.com"
	DefaultBackgroundColor = "#ffffff"
)

// AppState carries viewer settings.
type AppState struct {
	ViewBackgroundColor string `json:"viewBackgroundColor"`
}

// Document is a complete Excalidraw scene.
type Document struct {
	Type     string
	Version  string
	Source   string
	Elements []Element
	AppState AppState
}

// NewDocument returns an empty document with the standard header. An empty
// backgroundColor selects DefaultBackgroundColor.
func NewDocument(backgroundColor string) *Document {
	if backgroundColor == "" {
		backgroundColor = DefaultBackgroundColor
	}
	return &Document{
		Type:     DocumentType,
		Version:  DocumentVersion,
		Source:   DocumentSource,
		Elements: []Element{},
		AppState: AppState{ViewBackgroundColor: backgroundColor},
	}
}

// Add appends elements in order.
func (d *Document) Add(elems ...Element) {
	d.Elements = append(d.Elements, elems...)
}

// Texts returns the text elements in document order.
func (d *Document) Texts() []*TextElement {
	var out []*TextElement
	for _, e := range d.Elements {
		if t, ok := e.(*TextElement); ok {
			out = append(out, t)
		}
	}
	return out
}

// Arrows returns the arrow elements in document order.
func (d *Document) Arrows() []*ArrowElement {
	var out []*ArrowElement
	for _, e := range d.Elements {
		if a, ok := e.(*ArrowElement); ok {
			out = append(out, a)
		}
	}
	return out
}

// Find returns the element with the given id.
func (d *Document) Find(id string) (Element, bool) {
	for _, e := range d.Elements {
		if e.ElementID() == id {
			return e, true
		}
	}
	return nil, false
}

// ErrDuplicateID is returned by Validate when two elements share an id.
var ErrDuplicateID = errors.New("duplicate element id")

// Validate checks element ids are non-empty and unique, and that every bound
// arrow endpoint references an element of the document.
func (d *Document) Validate() error {
	ids := make(map[string]bool, len(d.Elements))
	for i, e := range d.Elements {
		if e == nil {
			return fmt.Errorf("element %d is nil", i)
		}
		id := e.ElementID()
		if id == "" {
			return fmt.Errorf("element %d: empty id", i)
		}
		if ids[id] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		ids[id] = true
	}
	for _, a := range d.Arrows() {
		for _, b := range []Binding{a.StartBinding, a.EndBinding} {
			if b.Bound() && !ids[b.ElementID] {
				return fmt.Errorf("arrow %q: binding to unknown element %q", a.ID, b.ElementID)
			}
		}
	}
	return nil
}

// documentWire fixes the top-level field order.
type documentWire struct {
	Type     string            `json:"type"`
	Version  string            `json:"version"`
	Source   string            `json:"source"`
	Elements []json.RawMessage `json:"elements"`
	AppState AppState          `json:"appState"`
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	w := documentWire{
		Type:     d.Type,
		Version:  d.Version,
		Source:   d.Source,
		Elements: make([]json.RawMessage, 0, len(d.Elements)),
		AppState: d.AppState,
	}
	for i, e := range d.Elements {
		raw, err := marshal(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		w.Elements = append(w.Elements, raw)
	}
	return marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var w documentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	doc := Document{
		Type:     w.Type,
		Version:  w.Version,
		Source:   w.Source,
		Elements: make([]Element, 0, len(w.Elements)),
		AppState: w.AppState,
	}
	for i, raw := range w.Elements {
		e, err := decodeElement(raw)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		doc.Elements = append(doc.Elements, e)
	}
	*d = doc
	return nil
}
