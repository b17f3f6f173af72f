package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rivo/uniseg"

	"github.com/emilford/bindery/surface"
)

// run is one renderable text node with the style accumulated from its
// ancestors.
type run struct {
	node      *surface.Node
	style     lipgloss.Style
	zeroWidth bool
}

// View implements tea.Model.
func (m Model) View() string {
	root := m.surf.Root()
	if root == nil {
		return ""
	}

	sel, caret := m.selectionSpans(root)
	focused := m.editor.Focused()

	lines := make([]string, 0, len(root.Children))
	for _, block := range root.Children {
		lines = append(lines, m.renderBlock(block, sel, caret, focused))
	}

	top := m.surf.ScrollTop()
	if top > len(lines) {
		top = len(lines)
	}
	bottom := top + m.contentHeight()
	if bottom > len(lines) {
		bottom = len(lines)
	}
	body := zone.Mark(zoneEditor, strings.Join(lines[top:bottom], "\n"))

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, body, m.statusView()))
}

func (m Model) statusView() string {
	if m.opts.ReadOnly {
		return ReadOnlyBadgeStyle.Render("read-only") + StatusStyle.Render(" · ctrl+c quit")
	}
	return StatusStyle.Render("ctrl+c quit · ctrl+z undo · ctrl+y redo · alt+c copy · alt+x cut")
}

// renderBlock renders one top-level block as a single soft-wrapped line.
func (m Model) renderBlock(block *surface.Node, sel map[*surface.Node][2]int, caret *surface.Position, focused bool) string {
	runs := flatten(block, TextStyle, nil)

	lastVisible := -1
	for i, r := range runs {
		if !r.zeroWidth {
			lastVisible = i
		}
	}

	var b strings.Builder
	for i, r := range runs {
		if r.zeroWidth {
			// A zero-width filler renders nothing unless the caret sits on
			// it, which happens in empty blocks.
			if focused && caret != nil && caret.Container == r.node {
				b.WriteString(CursorStyle.Render(" "))
			}
			continue
		}
		b.WriteString(m.renderRun(r, sel, caret, focused, i == lastVisible))
	}

	line := b.String()
	if m.width > 0 {
		line = wordwrap.String(line, m.width)
	}
	return line
}

// flatten walks a block and returns its text nodes in document order, each
// carrying the style its ancestors imply.
func flatten(n *surface.Node, st lipgloss.Style, out []run) []run {
	if n.Kind == surface.TextNode {
		return append(out, run{node: n, style: st, zeroWidth: n.Parent() != nil && n.Parent().Attr(surface.AttrZeroWidth) != ""})
	}

	switch {
	case n.Attr(surface.AttrPlaceholder) == "true":
		st = PlaceholderStyle
	case n.Attr(surface.AttrEditable) == "false" && n.Closest(func(a *surface.Node) bool {
		return a.Attr(surface.AttrVoid) == "true"
	}) != nil:
		st = VoidStyle
	case n.Attr(surface.AttrLeaf) == "true":
		if n.Attr("data-mark-strong") == "true" {
			st = st.Bold(true)
		}
		if n.Attr("data-mark-em") == "true" {
			st = st.Italic(true)
		}
		if n.Attr("data-mark-code") == "true" {
			st = st.Foreground(CodeColor)
		}
	}

	for _, c := range n.Children {
		out = flatten(c, st, out)
	}
	return out
}

// renderRun renders one text node cluster by cluster, applying selection
// background and the caret's reverse video.
func (m Model) renderRun(r run, sel map[*surface.Node][2]int, caret *surface.Position, focused, lastInBlock bool) string {
	span, selected := sel[r.node]
	caretHere := focused && caret != nil && caret.Container == r.node

	var b strings.Builder
	offset := 0
	rest := r.node.Text
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)

		st := r.style
		if selected && offset >= span[0] && offset < span[1] {
			st = st.Background(SelectionBgColor)
		}
		if caretHere && caret.Offset == offset {
			st = st.Reverse(true)
		}
		b.WriteString(st.Render(cluster))
		offset += len([]rune(cluster))
	}

	// A caret past the last cluster is drawn as a reversed cell, but only at
	// the end of the block; elsewhere it coincides with the next run's first
	// cluster.
	if caretHere && caret.Offset >= offset && lastInBlock {
		b.WriteString(CursorStyle.Render(" "))
	}
	return b.String()
}

// selectionSpans projects the native selection onto per-text-node rune spans
// and, for a collapsed selection, the caret position.
func (m Model) selectionSpans(root *surface.Node) (map[*surface.Node][2]int, *surface.Position) {
	rng := m.surf.Selection().Range()
	if rng == nil {
		return nil, nil
	}
	if rng.Collapsed() {
		p := rng.Start
		return nil, &p
	}

	texts := textNodes(root, nil)
	index := make(map[*surface.Node]int, len(texts))
	for i, t := range texts {
		index[t] = i
	}
	si, sok := index[rng.Start.Container]
	ei, eok := index[rng.End.Container]
	if !sok || !eok {
		return nil, nil
	}

	start, end := rng.Start, rng.End
	if si > ei || (si == ei && start.Offset > end.Offset) {
		si, ei = ei, si
		start, end = end, start
	}

	spans := make(map[*surface.Node][2]int)
	for i := si; i <= ei; i++ {
		node := texts[i]
		from, to := 0, len([]rune(node.Text))
		if i == si {
			from = start.Offset
		}
		if i == ei {
			to = end.Offset
		}
		if from < to {
			spans[node] = [2]int{from, to}
		}
	}
	return spans, nil
}

func textNodes(n *surface.Node, out []*surface.Node) []*surface.Node {
	if n.Kind == surface.TextNode {
		return append(out, n)
	}
	for _, c := range n.Children {
		out = textNodes(c, out)
	}
	return out
}

// positionAt maps a viewport cell (document row, display column) to a native
// position: the row picks the block, the column walks its rendered clusters
// by display width.
func (m Model) positionAt(row, col int) (surface.Position, bool) {
	root := m.surf.Root()
	if root == nil || len(root.Children) == 0 {
		return surface.Position{}, false
	}
	if row < 0 {
		row = 0
	}
	if row >= len(root.Children) {
		row = len(root.Children) - 1
	}

	runs := flatten(root.Children[row], TextStyle, nil)

	var fallback *surface.Node
	var last *surface.Node
	lastEnd := 0
	acc := 0
	for _, r := range runs {
		if r.zeroWidth {
			if fallback == nil {
				fallback = r.node
			}
			continue
		}
		if r.node.Parent() != nil && r.node.Parent().Attr(surface.AttrPlaceholder) == "true" {
			continue
		}

		offset := 0
		rest := r.node.Text
		state := -1
		for len(rest) > 0 {
			var cluster string
			cluster, rest, _, state = uniseg.StepString(rest, state)
			w := runewidth.StringWidth(cluster)
			if col < acc+w {
				return surface.Position{Container: r.node, Offset: offset}, true
			}
			acc += w
			offset += len([]rune(cluster))
		}
		last = r.node
		lastEnd = offset
	}

	if last != nil {
		return surface.Position{Container: last, Offset: lastEnd}, true
	}
	if fallback != nil {
		return surface.Position{Container: fallback, Offset: 0}, true
	}
	return surface.Position{}, false
}
