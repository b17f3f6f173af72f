// Package model provides the structured rich-text document model: a tree of
// block/inline elements and text runs, addressed by paths, plus the canonical
// editing command set and a reference command engine.
package model

import "github.com/google/uuid"

// Key uniquely identifies a node across renders. Keys are assigned lazily and
// survive content mutations, which is what lets the binding layer keep a
// bidirectional index between model nodes and host nodes.
type Key string

// NewKey returns a fresh node key.
func NewKey() Key {
	return Key(uuid.NewString())
}

// Node is either an *Element or a *Text.
type Node interface {
	Key() Key
	clone() Node
}

// Element is an interior node: a block or inline container with children.
type Element struct {
	key Key

	// Type names the element kind ("paragraph", "quote", "image", ...).
	Type string

	// Void marks elements whose content is opaque to text editing. Voids are
	// rendered with a non-editable placeholder child.
	Void bool

	// Inline marks elements that flow inside a block rather than stacking.
	Inline bool

	Children []Node
}

// Text is a leaf node: a run of text with formatting marks.
type Text struct {
	key Key

	Text  string
	Marks map[string]bool
}

// Key returns the element's identity key, assigning one on first use.
func (e *Element) Key() Key {
	if e.key == "" {
		e.key = NewKey()
	}
	return e.key
}

// Key returns the text run's identity key, assigning one on first use.
func (t *Text) Key() Key {
	if t.key == "" {
		t.key = NewKey()
	}
	return t.key
}

// HasMark reports whether the given mark is set on the text run.
func (t *Text) HasMark(name string) bool {
	return t.Marks[name]
}

func (e *Element) clone() Node {
	children := make([]Node, len(e.Children))
	for i, c := range e.Children {
		children[i] = c.clone()
	}
	return &Element{Type: e.Type, Void: e.Void, Inline: e.Inline, Children: children}
}

func (t *Text) clone() Node {
	var marks map[string]bool
	if len(t.Marks) > 0 {
		marks = make(map[string]bool, len(t.Marks))
		for k, v := range t.Marks {
			marks[k] = v
		}
	}
	return &Text{Text: t.Text, Marks: marks}
}

// Clone deep-copies a node. The copy gets fresh identity keys; clones are new
// content, not aliases of the original.
func Clone(n Node) Node {
	return n.clone()
}

// CloneNodes deep-copies a slice of nodes.
func CloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.clone()
	}
	return out
}

// NewElement builds an element with the given children.
func NewElement(typ string, children ...Node) *Element {
	return &Element{Type: typ, Children: children}
}

// NewVoid builds a void element. Voids still carry one empty text child so
// that every element has a text leaf for selection purposes.
func NewVoid(typ string) *Element {
	return &Element{Type: typ, Void: true, Children: []Node{NewText("")}}
}

// NewText builds a text run.
func NewText(s string, marks ...string) *Text {
	t := &Text{Text: s}
	if len(marks) > 0 {
		t.Marks = make(map[string]bool, len(marks))
		for _, m := range marks {
			t.Marks[m] = true
		}
	}
	return t
}

// Equal reports structural equality of two nodes, ignoring identity keys.
func Equal(a, b Node) bool {
	switch an := a.(type) {
	case *Element:
		bn, ok := b.(*Element)
		if !ok || an.Type != bn.Type || an.Void != bn.Void || an.Inline != bn.Inline {
			return false
		}
		if len(an.Children) != len(bn.Children) {
			return false
		}
		for i := range an.Children {
			if !Equal(an.Children[i], bn.Children[i]) {
				return false
			}
		}
		return true
	case *Text:
		bn, ok := b.(*Text)
		if !ok || an.Text != bn.Text {
			return false
		}
		if len(an.Marks) != len(bn.Marks) {
			return false
		}
		for k, v := range an.Marks {
			if bn.Marks[k] != v {
				return false
			}
		}
		return true
	}
	return false
}

// EqualNodes reports structural equality of two node slices.
func EqualNodes(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
