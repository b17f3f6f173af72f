package editable

import (
	"github.com/emilford/bindery/model"
	"github.com/emilford/bindery/surface"
)

// objectReplacement stands in for a void element's opaque content.
const objectReplacement = "￼"

// mountable is implemented by surfaces that take a freshly rendered root.
type mountable interface {
	Mount(*surface.Node)
}

// render rebuilds the native tree from the document model and rebuilds the
// identity index. The previous tree is discarded wholesale; node identity is
// carried by model keys, not by native node reuse.
func (e *Editor) render() {
	if !e.mounted {
		return
	}
	e.index.clear()

	docRoot := e.doc.Root()
	root := surface.NewElementNode("div")
	root.SetAttr(surface.AttrNode, "value")
	if e.opts.ReadOnly {
		root.SetAttr(surface.AttrEditable, "false")
	} else {
		root.SetAttr(surface.AttrEditable, "true")
	}

	showPlaceholder := e.opts.Placeholder != "" && model.IsEmpty(docRoot)
	for i, c := range docRoot.Children {
		root.Append(e.renderNode(c, model.Path{i}, docRoot, showPlaceholder))
	}

	if m, ok := e.surf.(mountable); ok {
		m.Mount(root)
	}
}

func (e *Editor) renderNode(n model.Node, p model.Path, parent *model.Element, placeholder bool) *surface.Node {
	switch n := n.(type) {
	case *model.Element:
		return e.renderElement(n, p, placeholder)
	case *model.Text:
		return e.renderLeaf(n, p, parent, placeholder)
	}
	return surface.NewTextNode("")
}

func (e *Editor) renderElement(el *model.Element, p model.Path, placeholder bool) *surface.Node {
	tag := "div"
	if el.Inline {
		tag = "span"
	}
	node := surface.NewElementNode(tag)
	node.SetAttr(surface.AttrNode, "element")
	node.SetAttr(surface.AttrKey, string(el.Key()))
	e.index.put(el.Key(), p, node)

	if el.Void {
		node.SetAttr(surface.AttrVoid, "true")
		// The spacer carries the void's selection leaf so the caret has
		// somewhere to land; the opaque content renders after it, which is
		// what lets a range ending at the spacer be extended over the whole
		// void for clipboard clones.
		spacer := surface.NewElementNode("span")
		spacer.SetAttr(surface.AttrSpacer, "true")
		for i, c := range el.Children {
			spacer.Append(e.renderNode(c, append(p.Copy(), i), el, false))
		}
		node.Append(spacer)

		content := surface.NewElementNode("span")
		content.SetAttr(surface.AttrEditable, "false")
		content.Append(surface.NewTextNode(objectReplacement))
		node.Append(content)
	} else {
		for i, c := range el.Children {
			node.Append(e.renderNode(c, append(p.Copy(), i), el, placeholder))
		}
	}

	if e.opts.RenderElement != nil {
		e.opts.RenderElement(el, node)
	}
	return node
}

func (e *Editor) renderLeaf(t *model.Text, p model.Path, parent *model.Element, placeholder bool) *surface.Node {
	wrapper := surface.NewElementNode("span")
	wrapper.SetAttr(surface.AttrNode, "text")
	wrapper.SetAttr(surface.AttrKey, string(t.Key()))
	e.index.put(t.Key(), p, wrapper)

	leaf := surface.NewElementNode("span")
	leaf.SetAttr(surface.AttrLeaf, "true")
	for m := range t.Marks {
		if t.Marks[m] {
			leaf.SetAttr("data-mark-"+m, "true")
		}
	}

	if placeholder {
		ph := surface.NewElementNode("span")
		ph.SetAttr(surface.AttrPlaceholder, "true")
		ph.SetAttr(surface.AttrEditable, "false")
		ph.Append(surface.NewTextNode(e.opts.Placeholder))
		leaf.Append(ph)
	}

	if t.Text == "" {
		// An empty run still needs a caret target. The filler's tagged role
		// tells the clipboard cleaner whether it stands in for a newline.
		role := "z"
		if parent != nil && !parent.Void && len(parent.Children) == 1 {
			role = "n"
		}
		zw := surface.NewElementNode("span")
		zw.SetAttr(surface.AttrZeroWidth, role)
		zw.Append(surface.NewTextNode(surface.ZeroWidthRune))
		leaf.Append(zw)
	} else {
		str := surface.NewElementNode("span")
		str.SetAttr(surface.AttrString, "true")
		str.Append(surface.NewTextNode(t.Text))
		leaf.Append(str)
	}

	if e.opts.RenderLeaf != nil {
		e.opts.RenderLeaf(t, leaf)
	}
	wrapper.Append(leaf)
	return wrapper
}
