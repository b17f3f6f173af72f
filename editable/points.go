package editable

import (
	"github.com/emilford/bindery/model"
	"github.com/emilford/bindery/surface"
)

// Conversion between model locations and native positions. Failures are
// never surfaced as errors: a location that cannot be converted is treated
// as "no selection" by every caller.

// caretText returns the native text node carrying the leaf's content: the
// child of its string span, or of its zero-width filler for empty runs.
// Placeholder decorations are skipped.
func caretText(wrapper *surface.Node) *surface.Node {
	var out *surface.Node
	wrapper.Walk(func(n *surface.Node) bool {
		if out != nil {
			return false
		}
		if n.HasAttr(surface.AttrPlaceholder) {
			return false
		}
		if n.Kind == surface.TextNode {
			p := n.Parent()
			if p != nil && (p.HasAttr(surface.AttrString) || p.HasAttr(surface.AttrZeroWidth)) {
				out = n
			}
			return false
		}
		return true
	})
	return out
}

// toNativePoint converts a model point to a native position.
func (e *Editor) toNativePoint(p model.Point) (surface.Position, bool) {
	leaf, err := model.Leaf(e.doc.Root(), p.Path)
	if err != nil {
		return surface.Position{}, false
	}
	wrapper, ok := e.index.nodeOf(leaf.Key())
	if !ok {
		return surface.Position{}, false
	}
	text := caretText(wrapper)
	if text == nil {
		return surface.Position{}, false
	}
	off := p.Offset
	if text.Parent().HasAttr(surface.AttrZeroWidth) {
		off = 0
	} else if l := text.Length(); off > l {
		off = l
	}
	if off < 0 {
		off = 0
	}
	return surface.Position{Container: text, Offset: off}, true
}

// toModelPoint converts a native position to a model point by walking up to
// the enclosing text wrapper and resolving its key through the index.
func (e *Editor) toModelPoint(pos surface.Position) (model.Point, bool) {
	if pos.Container == nil {
		return model.Point{}, false
	}
	wrapper := pos.Container.Closest(func(n *surface.Node) bool {
		return n.Attr(surface.AttrNode) == "text"
	})
	if wrapper == nil {
		return model.Point{}, false
	}
	key, ok := e.index.keyOf(wrapper)
	if !ok {
		return model.Point{}, false
	}
	p, ok := e.index.pathOf(key)
	if !ok {
		return model.Point{}, false
	}
	off := 0
	if pos.Container.Kind == surface.TextNode {
		parent := pos.Container.Parent()
		if parent != nil && parent.HasAttr(surface.AttrZeroWidth) {
			off = 0
		} else {
			off = pos.Offset
		}
	}
	leaf, err := model.Leaf(e.doc.Root(), p)
	if err != nil {
		return model.Point{}, false
	}
	if l := len([]rune(leaf.Text)); off > l {
		off = l
	}
	if off < 0 {
		off = 0
	}
	return model.Point{Path: p, Offset: off}, true
}

// toNativeRange converts a model range, preserving direction: the anchor
// maps to the start position and the focus to the end. Native range equality
// is swap-insensitive, so direction survives the round trip without the host
// caring.
func (e *Editor) toNativeRange(r model.Range) (*surface.Range, bool) {
	start, ok := e.toNativePoint(r.Anchor)
	if !ok {
		return nil, false
	}
	end, ok := e.toNativePoint(r.Focus)
	if !ok {
		return nil, false
	}
	return &surface.Range{Start: start, End: end}, true
}

// toModelRange converts a native range back to a model range.
func (e *Editor) toModelRange(r surface.Range) (*model.Range, bool) {
	anchor, ok := e.toModelPoint(r.Start)
	if !ok {
		return nil, false
	}
	focus, ok := e.toModelPoint(r.End)
	if !ok {
		return nil, false
	}
	return &model.Range{Anchor: anchor, Focus: focus}, true
}
