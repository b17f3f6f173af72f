package model

import "fmt"

// Get resolves a path to a node under root.
func Get(root *Element, p Path) (Node, error) {
	var n Node = root
	for depth, idx := range p {
		el, ok := n.(*Element)
		if !ok {
			return nil, fmt.Errorf("path %v: node at depth %d is a text leaf", p, depth)
		}
		if idx < 0 || idx >= len(el.Children) {
			return nil, fmt.Errorf("path %v: index %d out of bounds at depth %d", p, idx, depth)
		}
		n = el.Children[idx]
	}
	return n, nil
}

// Leaf resolves a path to a text leaf.
func Leaf(root *Element, p Path) (*Text, error) {
	n, err := Get(root, p)
	if err != nil {
		return nil, err
	}
	t, ok := n.(*Text)
	if !ok {
		return nil, fmt.Errorf("path %v: not a text leaf", p)
	}
	return t, nil
}

// Parent resolves the parent element of the node at p.
func Parent(root *Element, p Path) (*Element, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("root has no parent")
	}
	n, err := Get(root, p[:len(p)-1])
	if err != nil {
		return nil, err
	}
	el, ok := n.(*Element)
	if !ok {
		return nil, fmt.Errorf("path %v: parent is not an element", p)
	}
	return el, nil
}

// TextEntry pairs a text leaf with its path.
type TextEntry struct {
	Text *Text
	Path Path
}

// Texts returns all text leaves under root in document order.
func Texts(root *Element) []TextEntry {
	var out []TextEntry
	var walk func(el *Element, p Path)
	walk = func(el *Element, p Path) {
		for i, c := range el.Children {
			cp := append(p.Copy(), i)
			switch n := c.(type) {
			case *Element:
				walk(n, cp)
			case *Text:
				out = append(out, TextEntry{Text: n, Path: cp})
			}
		}
	}
	walk(root, nil)
	return out
}

// FirstText returns the first text leaf under root.
func FirstText(root *Element) (TextEntry, bool) {
	ts := Texts(root)
	if len(ts) == 0 {
		return TextEntry{}, false
	}
	return ts[0], true
}

// LastText returns the last text leaf under root.
func LastText(root *Element) (TextEntry, bool) {
	ts := Texts(root)
	if len(ts) == 0 {
		return TextEntry{}, false
	}
	return ts[len(ts)-1], true
}

// IsEmpty reports whether the document is a single empty text run. This is the
// state in which the binding synthesizes a placeholder decoration.
func IsEmpty(root *Element) bool {
	ts := Texts(root)
	return len(ts) == 1 && ts[0].Text.Text == ""
}

// Start returns the first point of the document.
func Start(root *Element) (Point, bool) {
	e, ok := FirstText(root)
	if !ok {
		return Point{}, false
	}
	return Point{Path: e.Path, Offset: 0}, true
}

// End returns the last point of the document.
func End(root *Element) (Point, bool) {
	e, ok := LastText(root)
	if !ok {
		return Point{}, false
	}
	return Point{Path: e.Path, Offset: len([]rune(e.Text.Text))}, true
}

// BlockPath returns the path of the closest non-inline element containing the
// node at p.
func BlockPath(root *Element, p Path) (Path, error) {
	for q := p; len(q) > 0; q = q[:len(q)-1] {
		n, err := Get(root, q)
		if err != nil {
			return nil, err
		}
		if el, ok := n.(*Element); ok && !el.Inline {
			return q.Copy(), nil
		}
	}
	return Path{}, nil
}

// VoidPath returns the path of the closest void element containing the node at
// p, if any.
func VoidPath(root *Element, p Path) (Path, bool) {
	for q := p; len(q) > 0; q = q[:len(q)-1] {
		n, err := Get(root, q)
		if err != nil {
			return nil, false
		}
		if el, ok := n.(*Element); ok && el.Void {
			return q.Copy(), true
		}
	}
	return nil, false
}

// leafIndex locates p among the document's text leaves. Returns -1 when p does
// not resolve to a leaf.
func leafIndex(entries []TextEntry, p Path) int {
	for i, e := range entries {
		if e.Path.Equal(p) {
			return i
		}
	}
	return -1
}

// PrevPoint returns the point one leaf-hop before p: the end of the previous
// text leaf, or p itself at the document start.
func PrevPoint(root *Element, p Point) (Point, bool) {
	entries := Texts(root)
	i := leafIndex(entries, p.Path)
	if i <= 0 {
		return p, false
	}
	prev := entries[i-1]
	return Point{Path: prev.Path, Offset: len([]rune(prev.Text.Text))}, true
}

// NextPoint returns the point one leaf-hop after p: the start of the next text
// leaf, or p itself at the document end.
func NextPoint(root *Element, p Point) (Point, bool) {
	entries := Texts(root)
	i := leafIndex(entries, p.Path)
	if i < 0 || i >= len(entries)-1 {
		return p, false
	}
	next := entries[i+1]
	return Point{Path: next.Path, Offset: 0}, true
}

// ValidatePoint reports whether p resolves to a text leaf with the offset in
// bounds.
func ValidatePoint(root *Element, p Point) bool {
	t, err := Leaf(root, p.Path)
	if err != nil {
		return false
	}
	return p.Offset >= 0 && p.Offset <= len([]rune(t.Text))
}

// ValidateRange reports whether both endpoints of r resolve to text leaves.
func ValidateRange(root *Element, r Range) bool {
	return ValidatePoint(root, r.Anchor) && ValidatePoint(root, r.Focus)
}
