// Package surface abstracts the host editable surface: the native node tree
// the user actually interacts with, its selection and range representation,
// the raw event stream, and the platform capability/scheduling quirks the
// binding layer has to reconcile.
package surface

import "strings"

// Attribute names tagging native nodes with their role in the rendered
// document. The binding layer reads these to classify targets, convert
// locations and clean clipboard clones.
const (
	// AttrNode marks a rendered model node; value "element" or "text".
	AttrNode = "data-bindery-node"
	// AttrKey carries the model node key for identity lookups.
	AttrKey = "data-bindery-key"
	// AttrLeaf marks the wrapper of a rendered text run.
	AttrLeaf = "data-bindery-leaf"
	// AttrString marks a node that carries actual document text.
	AttrString = "data-bindery-string"
	// AttrZeroWidth marks a zero-width filler; value "n" when it stands in
	// for a newline (empty block), "z" for plain empty text.
	AttrZeroWidth = "data-bindery-zero-width"
	// AttrVoid marks the rendered wrapper of a void element.
	AttrVoid = "data-bindery-void"
	// AttrSpacer marks the non-editable placeholder inside a void.
	AttrSpacer = "data-bindery-spacer"
	// AttrFragment carries the encoded fragment payload on a clipboard clone.
	AttrFragment = "data-bindery-fragment"
	// AttrPlaceholder marks the rendered placeholder decoration.
	AttrPlaceholder = "data-bindery-placeholder"
	// AttrEditable is the host's editability switch; "false" disables
	// editing for a subtree.
	AttrEditable = "contenteditable"
)

// ZeroWidthRune is the filler character rendered for empty text runs so the
// host surface always has a caret target.
const ZeroWidthRune = "\ufeff"

// NodeKind distinguishes element containers from raw text nodes.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
)

// Node is a node in the host surface tree. Element nodes have a tag,
// attributes and children; text nodes carry only text.
type Node struct {
	Kind     NodeKind
	Tag      string
	Attrs    map[string]string
	Children []*Node
	Text     string

	parent *Node
}

// NewElementNode builds an element node.
func NewElementNode(tag string) *Node {
	return &Node{Kind: ElementNode, Tag: tag, Attrs: map[string]string{}}
}

// NewTextNode builds a text node.
func NewTextNode(text string) *Node {
	return &Node{Kind: TextNode, Text: text}
}

// Parent returns the node's parent, or nil at a root.
func (n *Node) Parent() *Node { return n.parent }

// Append adds children, reparenting them to n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// SetAttr sets an attribute, allocating the map on first use.
func (n *Node) SetAttr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	n.Attrs[name] = value
	return n
}

// Attr returns the attribute value, or "" if absent.
func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attrs[name]
	return ok
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Closest walks from n upward and returns the first node for which pred is
// true, or nil.
func (n *Node) Closest(pred func(*Node) bool) *Node {
	for p := n; p != nil; p = p.parent {
		if pred(p) {
			return p
		}
	}
	return nil
}

// Editable reports whether n sits inside an editable region: no ancestor may
// carry contenteditable=false.
func (n *Node) Editable() bool {
	return n.Closest(func(p *Node) bool {
		return p.Attr(AttrEditable) == "false"
	}) == nil
}

// Walk visits n and its descendants in document order. Returning false from
// visit skips the node's children.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Clone deep-copies the subtree rooted at n. The clone has no parent.
func (n *Node) Clone() *Node {
	out := &Node{Kind: n.Kind, Tag: n.Tag, Text: n.Text}
	if n.Attrs != nil {
		out.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			out.Attrs[k] = v
		}
	}
	for _, c := range n.Children {
		cc := c.Clone()
		cc.parent = out
		out.Children = append(out.Children, cc)
	}
	return out
}

// TextContent concatenates the text of all text nodes under n.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Kind == TextNode {
			sb.WriteString(c.Text)
		}
		return true
	})
	return sb.String()
}

// Length returns the addressable length of the node for range offsets: rune
// count for text nodes, child count for elements.
func (n *Node) Length() int {
	if n.Kind == TextNode {
		return len([]rune(n.Text))
	}
	return len(n.Children)
}

// RemoveChild detaches a direct child.
func (n *Node) RemoveChild(c *Node) {
	for i, x := range n.Children {
		if x == c {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// ReplaceChild swaps a direct child for another node.
func (n *Node) ReplaceChild(old, repl *Node) {
	for i, x := range n.Children {
		if x == old {
			repl.parent = n
			n.Children[i] = repl
			old.parent = nil
			return
		}
	}
}
