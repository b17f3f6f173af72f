package model

import "fmt"

// Path addresses a node by child indices from the document root.
type Path []int

// Equal reports whether two paths are identical.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Compare orders paths in document order. An ancestor compares equal to its
// descendants, which is the useful convention when deciding whether a subtree
// lies inside a range.
func (p Path) Compare(q Path) int {
	n := min(len(p), len(q))
	for i := 0; i < n; i++ {
		if p[i] < q[i] {
			return -1
		}
		if p[i] > q[i] {
			return 1
		}
	}
	return 0
}

// IsAncestorOf reports whether p strictly contains q.
func (p Path) IsAncestorOf(q Path) bool {
	if len(p) >= len(q) {
		return false
	}
	return p.Equal(q[:len(p)])
}

// Copy returns an independent copy of the path.
func (p Path) Copy() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

func (p Path) String() string {
	return fmt.Sprint([]int(p))
}

// Point is a location in the document: a path to a text leaf plus a rune
// offset within it.
type Point struct {
	Path   Path
	Offset int
}

// Equal reports whether two points are identical.
func (p Point) Equal(q Point) bool {
	return p.Offset == q.Offset && p.Path.Equal(q.Path)
}

// Compare orders points in document order.
func (p Point) Compare(q Point) int {
	if c := p.Path.Compare(q.Path); c != 0 {
		return c
	}
	switch {
	case p.Offset < q.Offset:
		return -1
	case p.Offset > q.Offset:
		return 1
	default:
		return 0
	}
}

func (p Point) String() string {
	return fmt.Sprintf("%v:%d", p.Path, p.Offset)
}

// Range is a model selection: an anchor/focus pair of points. Anchor is where
// the selection started, focus is where it ends; focus before anchor means the
// selection is backward.
type Range struct {
	Anchor Point
	Focus  Point
}

// IsCollapsed reports whether anchor and focus are the same point.
func (r Range) IsCollapsed() bool {
	return r.Anchor.Equal(r.Focus)
}

// IsBackward reports whether the focus precedes the anchor.
func (r Range) IsBackward() bool {
	return r.Focus.Compare(r.Anchor) < 0
}

// Edges returns the range endpoints in document order.
func (r Range) Edges() (start, end Point) {
	if r.IsBackward() {
		return r.Focus, r.Anchor
	}
	return r.Anchor, r.Focus
}

// Equal reports whether two ranges have identical anchor and focus.
func (r Range) Equal(o Range) bool {
	return r.Anchor.Equal(o.Anchor) && r.Focus.Equal(o.Focus)
}

// Collapsed builds a collapsed range at the given point.
func Collapsed(p Point) Range {
	return Range{Anchor: p, Focus: p}
}

func (r Range) String() string {
	return fmt.Sprintf("%v..%v", r.Anchor, r.Focus)
}
