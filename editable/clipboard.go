package editable

import (
	"sort"
	"strings"

	"github.com/emilford/bindery/internal/log"
	"github.com/emilford/bindery/internal/pubsub"
	"github.com/emilford/bindery/model"
	"github.com/emilford/bindery/surface"
)

// Clipboard fragment codec. Copy, cut and drag-start all funnel into
// writeFragment, which writes three payload mirrors onto the transfer
// object: the structured fragment encoding (sufficient alone for lossless
// reconstruction), a markup mirror and a plain-text mirror for targets that
// do not understand the model.

// writeFragment encodes the current selection onto t. Returns false when
// there is nothing to write: no selection, or a collapsed selection not
// anchored at a void node.
func (e *Editor) writeFragment(t *surface.Transfer) bool {
	if t == nil {
		return false
	}
	sel := e.doc.Selection()
	if sel == nil {
		return false
	}
	root := e.doc.Root()
	if sel.IsCollapsed() {
		if _, ok := model.VoidPath(root, sel.Anchor.Path); !ok {
			return false
		}
	}

	nodes, err := model.Fragment(root, *sel)
	if err != nil || len(nodes) == 0 {
		return false
	}
	encoded, err := model.EncodeFragment(nodes)
	if err != nil {
		log.ErrorErr(log.CatClipboard, "encode failed", err)
		return false
	}

	rng, ok := e.toNativeRange(*sel)
	if !ok {
		return false
	}

	// A selection ending inside a void must carry the void's full rendered
	// content, not only its spacer, so the markup mirror is meaningful.
	if v := closestVoid(rng.End.Container); v != nil {
		if last := lastTextUnder(v); last != nil {
			rng.End = surface.Position{Container: last, Offset: last.Length()}
		}
	}

	clone := e.cloneRange(*rng)
	if clone == nil || len(clone.Children) == 0 {
		return false
	}
	stripZeroWidth(clone)

	attach := clone.Children[0]
	// Plain wrapper nodes are dropped silently by many hosts; a selection
	// starting inside a void attaches to the void's spacer marker instead.
	if closestVoid(rng.Start.Container) != nil {
		if sp := findByAttr(clone, surface.AttrSpacer); sp != nil {
			attach = sp
		}
	}
	if attach.Kind == surface.TextNode {
		wrap := surface.NewElementNode("span")
		if p := attach.Parent(); p != nil {
			p.ReplaceChild(attach, wrap)
		}
		wrap.Append(attach)
		attach = wrap
	}
	attach.SetAttr(surface.AttrFragment, encoded)

	plain := plainText(clone)
	t.Set(model.TransferTypeFragment, encoded)
	t.Set(model.TransferTypeMarkup, serializeMarkup(clone))
	t.Set(model.TransferTypePlain, plain)

	log.Debug(log.CatClipboard, "fragment written", "blocks", len(nodes), "plain_len", len(plain))
	e.broker.Publish(pubsub.ClipboardWrittenEvent, plain)
	return true
}

// HandleCopy writes the selected fragment to the transfer object.
func (e *Editor) HandleCopy(ev *surface.ClipboardEvent) {
	if h := e.opts.Handlers.OnCopy; h != nil {
		h(ev)
	}
	if ev.Handled() || !e.hasTarget(ev.Target) {
		return
	}
	if e.writeFragment(ev.Transfer) {
		ev.PreventDefault()
	}
}

// HandleCut writes the fragment and removes the selected content.
func (e *Editor) HandleCut(ev *surface.ClipboardEvent) {
	if h := e.opts.Handlers.OnCut; h != nil {
		h(ev)
	}
	if ev.Handled() || e.opts.ReadOnly || !e.hasEditableTarget(ev.Target) {
		return
	}
	if !e.writeFragment(ev.Transfer) {
		return
	}
	ev.PreventDefault()
	if sel := e.doc.Selection(); sel != nil && !sel.IsCollapsed() {
		e.execute(model.DeleteFragment{})
	}
}

// HandlePaste inserts the transfer contents. On hosts with low-level input
// events the paste arrives as an insertFromPaste input event instead, and
// this handler stays out of the way.
func (e *Editor) HandlePaste(ev *surface.ClipboardEvent) {
	if h := e.opts.Handlers.OnPaste; h != nil {
		h(ev)
	}
	if ev.Handled() || e.opts.ReadOnly || !e.hasEditableTarget(ev.Target) {
		return
	}
	if e.caps.SupportsBeforeInput {
		return
	}
	ev.PreventDefault()
	if ev.Transfer != nil && !ev.Transfer.IsEmpty() {
		e.execute(model.InsertData{Data: ev.Transfer})
	}
}

// HandleDragStart writes the selected fragment onto the drag transfer.
func (e *Editor) HandleDragStart(ev *surface.DragEvent) {
	if h := e.opts.Handlers.OnDragStart; h != nil {
		h(ev)
	}
	if ev.Handled() || !e.hasTarget(ev.Target) {
		return
	}
	e.writeFragment(ev.Transfer)
}

// HandleDragOver keeps the surface a valid drop target.
func (e *Editor) HandleDragOver(ev *surface.DragEvent) {
	if h := e.opts.Handlers.OnDragOver; h != nil {
		h(ev)
	}
	if ev.Handled() || !e.hasTarget(ev.Target) {
		return
	}
	ev.PreventDefault()
}

// HandleDrop moves the selection to the drop position and inserts the
// transfer contents there.
func (e *Editor) HandleDrop(ev *surface.DragEvent) {
	if h := e.opts.Handlers.OnDrop; h != nil {
		h(ev)
	}
	if ev.Handled() || e.opts.ReadOnly || !e.hasEditableTarget(ev.Target) {
		return
	}
	ev.PreventDefault()
	if ev.Position != nil {
		if p, ok := e.toModelPoint(*ev.Position); ok {
			e.execute(model.Select{Range: model.Collapsed(p)})
		}
	}
	if ev.Transfer != nil && !ev.Transfer.IsEmpty() {
		e.execute(model.InsertData{Data: ev.Transfer})
	}
}

// HandleClick selects a void element when its rendering is clicked; void
// content is opaque to the caret, so the click is the only way in.
func (e *Editor) HandleClick(ev *surface.ClickEvent) {
	if h := e.opts.Handlers.OnClick; h != nil {
		h(ev)
	}
	if ev.Handled() || e.opts.ReadOnly || !e.hasTarget(ev.Target) {
		return
	}
	v := closestVoid(ev.Target)
	if v == nil {
		return
	}
	key, ok := e.index.keyOf(v)
	if !ok {
		return
	}
	vp, ok := e.index.pathOf(key)
	if !ok {
		return
	}
	for _, entry := range model.Texts(e.doc.Root()) {
		if vp.IsAncestorOf(entry.Path) {
			ev.PreventDefault()
			e.execute(model.Select{Range: model.Collapsed(model.Point{Path: entry.Path})})
			return
		}
	}
}

// closestVoid returns the nearest enclosing rendered void wrapper, or nil.
func closestVoid(n *surface.Node) *surface.Node {
	if n == nil {
		return nil
	}
	return n.Closest(func(p *surface.Node) bool {
		return p.HasAttr(surface.AttrVoid)
	})
}

// findByAttr returns the first descendant carrying the attribute.
func findByAttr(n *surface.Node, attr string) *surface.Node {
	var out *surface.Node
	n.Walk(func(c *surface.Node) bool {
		if out != nil {
			return false
		}
		if c.HasAttr(attr) {
			out = c
			return false
		}
		return true
	})
	return out
}

// lastTextUnder returns the last native text node in the subtree.
func lastTextUnder(n *surface.Node) *surface.Node {
	var out *surface.Node
	n.Walk(func(c *surface.Node) bool {
		if c.Kind == surface.TextNode {
			out = c
		}
		return true
	})
	return out
}

// cloneRange deep-copies the native content spanned by r into a detached
// container, trimming boundary text nodes to the range offsets. Elements
// with no retained text are dropped.
func (e *Editor) cloneRange(r surface.Range) *surface.Node {
	root := e.surf.Root()
	if root == nil {
		return nil
	}

	var texts []*surface.Node
	root.Walk(func(n *surface.Node) bool {
		if n.Kind == surface.TextNode {
			texts = append(texts, n)
		}
		return true
	})
	pos := func(p surface.Position) (int, int) {
		c := p.Container
		if c.Kind != surface.TextNode {
			if t := firstTextUnder(c); t != nil {
				c = t
			}
		}
		for i, t := range texts {
			if t == c {
				return i, p.Offset
			}
		}
		return -1, 0
	}
	si, so := pos(r.Start)
	ei, eo := pos(r.End)
	if si < 0 || ei < 0 {
		return nil
	}
	if si > ei || (si == ei && so > eo) {
		si, ei = ei, si
		so, eo = eo, so
	}
	keep := map[*surface.Node]bool{}
	for i := si; i <= ei; i++ {
		keep[texts[i]] = true
	}

	var build func(n *surface.Node) *surface.Node
	build = func(n *surface.Node) *surface.Node {
		if n.Kind == surface.TextNode {
			if !keep[n] {
				return nil
			}
			runes := []rune(n.Text)
			lo, hi := 0, len(runes)
			if n == texts[ei] && eo < hi {
				hi = eo
			}
			if n == texts[si] {
				lo = so
				if lo > hi {
					lo = hi
				}
			}
			return surface.NewTextNode(string(runes[lo:hi]))
		}
		var kids []*surface.Node
		for _, c := range n.Children {
			if k := build(c); k != nil {
				kids = append(kids, k)
			}
		}
		if len(kids) == 0 {
			return nil
		}
		out := surface.NewElementNode(n.Tag)
		for k, v := range n.Attrs {
			out.SetAttr(k, v)
		}
		out.Append(kids...)
		return out
	}

	container := surface.NewElementNode("div")
	for _, c := range root.Children {
		if k := build(c); k != nil {
			container.Append(k)
		}
	}
	return container
}

// firstTextUnder returns the first native text node in the subtree.
func firstTextUnder(n *surface.Node) *surface.Node {
	var out *surface.Node
	n.Walk(func(c *surface.Node) bool {
		if out != nil {
			return false
		}
		if c.Kind == surface.TextNode {
			out = c
			return false
		}
		return true
	})
	return out
}

// stripZeroWidth removes zero-width fillers from a clone, substituting a
// literal newline for fillers tagged as newline stand-ins.
func stripZeroWidth(n *surface.Node) {
	for i := 0; i < len(n.Children); {
		c := n.Children[i]
		if role := c.Attr(surface.AttrZeroWidth); role != "" {
			if role == "n" {
				n.ReplaceChild(c, surface.NewTextNode("\n"))
				i++
			} else {
				n.RemoveChild(c)
			}
			continue
		}
		stripZeroWidth(c)
		i++
	}
}

// plainText derives the plain-text mirror: concatenated text with a line
// break at each block-level boundary or hard-break element.
func plainText(container *surface.Node) string {
	var sb strings.Builder
	var walk func(n *surface.Node)
	walk = func(n *surface.Node) {
		if n.Kind == surface.TextNode {
			sb.WriteString(n.Text)
			return
		}
		if n.Tag == "br" {
			sb.WriteString("\n")
			return
		}
		if n.Tag == "div" && sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, c := range container.Children {
		walk(c)
	}
	return sb.String()
}

// serializeMarkup renders a clone as markup for non-model-aware targets.
// Attributes are emitted in sorted order so the mirror is deterministic.
func serializeMarkup(n *surface.Node) string {
	var sb strings.Builder
	var walk func(n *surface.Node)
	walk = func(n *surface.Node) {
		if n.Kind == surface.TextNode {
			sb.WriteString(escapeMarkup(n.Text))
			return
		}
		sb.WriteString("<")
		sb.WriteString(n.Tag)
		names := make([]string, 0, len(n.Attrs))
		for name := range n.Attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(" ")
			sb.WriteString(name)
			sb.WriteString(`="`)
			sb.WriteString(escapeMarkup(n.Attrs[name]))
			sb.WriteString(`"`)
		}
		sb.WriteString(">")
		for _, c := range n.Children {
			walk(c)
		}
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteString(">")
	}
	for _, c := range n.Children {
		walk(c)
	}
	return sb.String()
}

func escapeMarkup(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
