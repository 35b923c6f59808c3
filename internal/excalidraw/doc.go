// Package excalidraw models the Excalidraw scene file written by
// excali-script and serializes it through one writer.
//
// A Document holds an ordered list of elements. Two element variants exist:
// TextElement (one per graph node) and ArrowElement (one per import edge).
// Field order on the wire is fixed by the wire structs in this package, so
// Marshal output is byte-stable: Marshal(Parse(Marshal(doc))) == Marshal(doc).
package excalidraw
