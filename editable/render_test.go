package editable_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emilford/bindery/editable"
	"github.com/emilford/bindery/model"
	"github.com/emilford/bindery/surface"
)

func findAttr(root *surface.Node, attr string) []*surface.Node {
	var out []*surface.Node
	root.Walk(func(n *surface.Node) bool {
		if n.HasAttr(attr) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func TestRenderEmptyDocumentPlaceholder(t *testing.T) {
	root := model.NewElement("root", model.NewElement("paragraph", model.NewText("")))
	f := newFixture(root, surface.PlatformModern, editable.Options{Placeholder: "Write something…"})
	defer f.ed.Close()

	phs := findAttr(f.surf.Root(), surface.AttrPlaceholder)
	require.Len(t, phs, 1)
	require.Equal(t, "Write something…", phs[0].TextContent())
	require.False(t, phs[0].Editable(), "placeholder must not be an editable target")

	zws := findAttr(f.surf.Root(), surface.AttrZeroWidth)
	require.Len(t, zws, 1)
	require.Equal(t, "n", zws[0].Attr(surface.AttrZeroWidth),
		"the empty block's filler stands in for a newline")
	require.Equal(t, surface.ZeroWidthRune, zws[0].TextContent())
}

func TestRenderPlaceholderClearedAfterInsert(t *testing.T) {
	root := model.NewElement("root", model.NewElement("paragraph", model.NewText("")))
	f := newFixture(root, surface.PlatformModern, editable.Options{Placeholder: "hint"})
	defer f.ed.Close()
	collapseAt(f, model.Path{0, 0}, 0)

	f.ed.HandleInput(&surface.InputEvent{Type: surface.InsertText, Target: f.surf.Root(), Data: "hi"})

	require.Empty(t, findAttr(f.surf.Root(), surface.AttrPlaceholder))
	strs := findAttr(f.surf.Root(), surface.AttrString)
	require.Len(t, strs, 1)
	require.Equal(t, "hi", strs[0].TextContent())
}

func TestRenderVoidElement(t *testing.T) {
	root := model.NewElement("root",
		model.NewElement("paragraph", model.NewText("ab")),
		model.NewVoid("divider"),
	)
	f := newFixture(root, surface.PlatformModern, editable.Options{})
	defer f.ed.Close()

	voids := findAttr(f.surf.Root(), surface.AttrVoid)
	require.Len(t, voids, 1)
	spacers := findAttr(voids[0], surface.AttrSpacer)
	require.Len(t, spacers, 1)

	// The void's opaque content must not be an editable target; its spacer
	// leaf must be.
	var nonEditable *surface.Node
	voids[0].Walk(func(n *surface.Node) bool {
		if n.Attr(surface.AttrEditable) == "false" {
			nonEditable = n
			return false
		}
		return true
	})
	require.NotNil(t, nonEditable)

	zw := findAttr(spacers[0], surface.AttrZeroWidth)
	require.Len(t, zw, 1)
	require.Equal(t, "z", zw[0].Attr(surface.AttrZeroWidth),
		"a void's empty leaf is plain empty text, not a newline stand-in")
}

func TestRenderReadOnlyRoot(t *testing.T) {
	f := newFixture(twoLeafDoc(), surface.PlatformModern, editable.Options{ReadOnly: true})
	defer f.ed.Close()

	require.Equal(t, "false", f.surf.Root().Attr(surface.AttrEditable))
	require.False(t, f.surf.Root().Editable())
}

func TestRenderMarksAndHooks(t *testing.T) {
	var hookLeaves []string
	opts := editable.Options{
		RenderLeaf: func(tx *model.Text, n *surface.Node) {
			hookLeaves = append(hookLeaves, tx.Text)
		},
	}
	f := newFixture(twoLeafDoc(), surface.PlatformModern, opts)
	defer f.ed.Close()

	require.Equal(t, []string{"ab", "cd"}, hookLeaves)

	leaves := findAttr(f.surf.Root(), surface.AttrLeaf)
	require.Len(t, leaves, 2)
	require.Equal(t, "true", leaves[1].Attr("data-mark-em"))
	require.False(t, leaves[0].HasAttr("data-mark-em"))
}

func TestVoidClickSelectsVoid(t *testing.T) {
	root := model.NewElement("root",
		model.NewElement("paragraph", model.NewText("ab")),
		model.NewVoid("image"),
	)
	f := newFixture(root, surface.PlatformModern, editable.Options{})
	defer f.ed.Close()
	f.rec.reset()

	voids := findAttr(f.surf.Root(), surface.AttrVoid)
	require.Len(t, voids, 1)
	target := voids[0].Children[0]

	ev := &surface.ClickEvent{Target: target}
	f.ed.HandleClick(ev)

	require.True(t, ev.DefaultPrevented())
	require.Equal(t, []string{"select"}, f.rec.names())
	sel := f.rec.cmds[0].(model.Select)
	require.True(t, sel.Range.IsCollapsed())
	require.True(t, sel.Range.Anchor.Path.Equal(model.Path{1, 0}))
}

func TestDecorationsIncludeSynthesizedPlaceholder(t *testing.T) {
	root := model.NewElement("root", model.NewElement("paragraph", model.NewText("")))
	decorated := false
	opts := editable.Options{
		Placeholder: "hint",
		Decorate: func(r *model.Element) []model.Range {
			decorated = true
			return nil
		},
	}
	f := newFixture(root, surface.PlatformModern, opts)
	defer f.ed.Close()

	ds := f.ed.Decorations()
	require.True(t, decorated)
	require.Len(t, ds, 1)
	require.True(t, ds[0].IsCollapsed())
	require.True(t, ds[0].Anchor.Path.Equal(model.Path{0, 0}))
}
