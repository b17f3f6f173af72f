package model

import (
	"fmt"
	"strings"

	"github.com/emilford/bindery/internal/grapheme"
)

// Engine is the reference command engine: it owns a document root plus the
// current selection and interprets the canonical command set. Undo and redo
// are snapshot-based; the binding layer only ever forwards the intent.
type Engine struct {
	root *Element
	sel  *Range

	undo []snapshot
	redo []snapshot
}

type snapshot struct {
	root *Element
	sel  *Range
}

// maxHistory bounds the undo stack.
const maxHistory = 100

// NewEngine builds an engine around the given root. A nil root yields a
// single empty paragraph.
func NewEngine(root *Element) *Engine {
	if root == nil {
		root = NewElement("", NewElement("paragraph", NewText("")))
	}
	return &Engine{root: root}
}

// Root returns the document root.
func (e *Engine) Root() *Element { return e.root }

// Selection returns the current model selection, or nil when there is none.
func (e *Engine) Selection() *Range { return e.sel }

// Execute interprets a canonical command. Unknown or inapplicable commands
// return an error; the document is left untouched in that case.
func (e *Engine) Execute(cmd Command) error {
	switch c := cmd.(type) {
	case Select:
		return e.doSelect(c.Range)
	case Deselect:
		e.sel = nil
		return nil
	case DeleteFragment:
		return e.mutate(func() error { return e.deleteFragment() })
	case DeleteBackward:
		return e.mutate(func() error { return e.deleteUnit(c.Unit, true) })
	case DeleteForward:
		return e.mutate(func() error { return e.deleteUnit(c.Unit, false) })
	case InsertBreak:
		return e.mutate(func() error { return e.insertBreak() })
	case InsertText:
		return e.mutate(func() error { return e.insertText(c.Text) })
	case InsertData:
		return e.mutate(func() error { return e.insertData(c.Data) })
	case Undo:
		return e.doUndo()
	case Redo:
		return e.doRedo()
	case Move:
		return e.move(c)
	default:
		return fmt.Errorf("engine: unknown command %T", cmd)
	}
}

// mutate snapshots the document, runs fn, and drops the snapshot again when
// fn fails or reports no change.
func (e *Engine) mutate(fn func() error) error {
	snap := e.snapshot()
	if err := fn(); err != nil {
		e.restore(snap)
		return err
	}
	e.undo = append(e.undo, snap)
	if len(e.undo) > maxHistory {
		e.undo = e.undo[1:]
	}
	e.redo = nil
	return nil
}

func (e *Engine) snapshot() snapshot {
	s := snapshot{root: Clone(e.root).(*Element)}
	if e.sel != nil {
		r := *e.sel
		s.sel = &r
	}
	return s
}

func (e *Engine) restore(s snapshot) {
	e.root = s.root
	e.sel = s.sel
}

func (e *Engine) doUndo() error {
	if len(e.undo) == 0 {
		return nil
	}
	e.redo = append(e.redo, e.snapshot())
	last := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.restore(last)
	return nil
}

func (e *Engine) doRedo() error {
	if len(e.redo) == 0 {
		return nil
	}
	e.undo = append(e.undo, e.snapshot())
	last := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.restore(last)
	return nil
}

func (e *Engine) doSelect(r Range) error {
	if !ValidateRange(e.root, r) {
		return fmt.Errorf("engine: select %v does not resolve to text leaves", r)
	}
	e.sel = &r
	return nil
}

// point returns the focus point of the current selection.
func (e *Engine) point() (Point, error) {
	if e.sel == nil {
		return Point{}, fmt.Errorf("engine: no selection")
	}
	return e.sel.Focus, nil
}

// ----------------------------------------------------------------------------
// Deletion

func (e *Engine) deleteFragment() error {
	if e.sel == nil || e.sel.IsCollapsed() {
		return nil
	}
	return e.deleteRange(*e.sel)
}

// deleteRange removes everything between the range edges, joining the
// boundary blocks when the range crosses blocks, and collapses the selection
// to the range start.
func (e *Engine) deleteRange(r Range) error {
	start, end := r.Edges()
	if start.Equal(end) {
		e.sel = &Range{Anchor: start, Focus: start}
		return nil
	}
	entries := Texts(e.root)
	si := leafIndex(entries, start.Path)
	ei := leafIndex(entries, end.Path)
	if si < 0 || ei < 0 {
		return fmt.Errorf("engine: delete range %v does not resolve", r)
	}

	if si == ei {
		leaf := entries[si].Text
		runes := []rune(leaf.Text)
		lo := clamp(start.Offset, 0, len(runes))
		hi := clamp(end.Offset, 0, len(runes))
		leaf.Text = string(runes[:lo]) + string(runes[hi:])
		p := Point{Path: start.Path, Offset: lo}
		e.sel = &Range{Anchor: p, Focus: p}
		return nil
	}

	startLeaf := entries[si].Text
	endLeaf := entries[ei].Text
	sr := []rune(startLeaf.Text)
	er := []rune(endLeaf.Text)
	startLeaf.Text = string(sr[:clamp(start.Offset, 0, len(sr))])
	endLeaf.Text = string(er[clamp(end.Offset, 0, len(er)):])

	removed := make(map[*Text]bool, ei-si)
	for i := si + 1; i < ei; i++ {
		removed[entries[i].Text] = true
	}
	pruneRemoved(e.root, removed)

	startBlock := topBlockOf(e.root, startLeaf)
	endBlock := topBlockOf(e.root, endLeaf)
	if startBlock != endBlock && startBlock != nil && endBlock != nil {
		// Voids never merge: a void boundary block disappears entirely.
		if startBlock.Void {
			e.replaceVoid(startBlock)
			startBlock = topBlockOf(e.root, startLeaf)
		} else if endBlock.Void {
			removeChild(e.root, endBlock)
		} else {
			startBlock.Children = append(startBlock.Children, endBlock.Children...)
			removeChild(e.root, endBlock)
		}
	}
	if len(e.root.Children) == 0 {
		e.root.Children = []Node{NewElement("paragraph", NewText(""))}
	}

	var p Point
	if path, ok := leafPath(e.root, startLeaf); ok {
		p = Point{Path: path, Offset: len([]rune(startLeaf.Text))}
	} else {
		p, _ = Start(e.root)
	}
	e.sel = &Range{Anchor: p, Focus: p}
	return nil
}

// deleteUnit deletes one unit next to a collapsed selection. An expanded
// selection is not special-cased here: the normalizer has already turned that
// into delete_fragment.
func (e *Engine) deleteUnit(unit Unit, backward bool) error {
	if e.sel != nil && !e.sel.IsCollapsed() {
		return e.deleteRange(*e.sel)
	}
	p, err := e.point()
	if err != nil {
		return err
	}
	target, ok := e.unitTarget(p, unit, backward)
	if !ok {
		return nil
	}
	if backward {
		return e.deleteRange(Range{Anchor: target, Focus: p})
	}
	return e.deleteRange(Range{Anchor: p, Focus: target})
}

// unitTarget computes the point one unit away from p in the given direction.
func (e *Engine) unitTarget(p Point, unit Unit, backward bool) (Point, bool) {
	leaf, err := Leaf(e.root, p.Path)
	if err != nil {
		return Point{}, false
	}
	switch unit {
	case UnitCharacter:
		if backward {
			if p.Offset > 0 {
				return Point{Path: p.Path, Offset: grapheme.PrevCluster(leaf.Text, p.Offset)}, true
			}
			return PrevPoint(e.root, p)
		}
		if p.Offset < len([]rune(leaf.Text)) {
			return Point{Path: p.Path, Offset: grapheme.NextCluster(leaf.Text, p.Offset)}, true
		}
		return NextPoint(e.root, p)
	case UnitWord:
		if backward {
			if p.Offset > 0 {
				return Point{Path: p.Path, Offset: grapheme.PrevWord(leaf.Text, p.Offset)}, true
			}
			return PrevPoint(e.root, p)
		}
		if p.Offset < len([]rune(leaf.Text)) {
			return Point{Path: p.Path, Offset: grapheme.NextWord(leaf.Text, p.Offset)}, true
		}
		return NextPoint(e.root, p)
	case UnitLine, UnitBlock:
		return e.blockEdge(p, backward)
	default:
		return Point{}, false
	}
}

// blockEdge returns the first or last point of the block containing p.
func (e *Engine) blockEdge(p Point, start bool) (Point, bool) {
	bp, err := BlockPath(e.root, p.Path)
	if err != nil {
		return Point{}, false
	}
	n, err := Get(e.root, bp)
	if err != nil {
		return Point{}, false
	}
	block, ok := n.(*Element)
	if !ok {
		return Point{}, false
	}
	if start {
		t, ok := FirstText(block)
		if !ok {
			return Point{}, false
		}
		return Point{Path: append(bp.Copy(), t.Path...), Offset: 0}, true
	}
	t, ok := LastText(block)
	if !ok {
		return Point{}, false
	}
	return Point{Path: append(bp.Copy(), t.Path...), Offset: len([]rune(t.Text.Text))}, true
}

// ----------------------------------------------------------------------------
// Insertion

func (e *Engine) insertText(s string) error {
	if s == "" {
		return nil
	}
	if e.sel != nil && !e.sel.IsCollapsed() {
		if err := e.deleteRange(*e.sel); err != nil {
			return err
		}
	}
	p, err := e.point()
	if err != nil {
		return err
	}
	leaf, err := Leaf(e.root, p.Path)
	if err != nil {
		return err
	}
	runes := []rune(leaf.Text)
	off := clamp(p.Offset, 0, len(runes))
	leaf.Text = string(runes[:off]) + s + string(runes[off:])
	np := Point{Path: p.Path, Offset: off + len([]rune(s))}
	e.sel = &Range{Anchor: np, Focus: np}
	return nil
}

func (e *Engine) insertBreak() error {
	if e.sel != nil && !e.sel.IsCollapsed() {
		if err := e.deleteRange(*e.sel); err != nil {
			return err
		}
	}
	p, err := e.point()
	if err != nil {
		return err
	}
	leaf, err := Leaf(e.root, p.Path)
	if err != nil {
		return err
	}
	block := topBlockOf(e.root, leaf)
	if block == nil || block.Void {
		return nil
	}

	runes := []rune(leaf.Text)
	off := clamp(p.Offset, 0, len(runes))
	trailing := NewText(string(runes[off:]))
	if len(leaf.Marks) > 0 {
		trailing.Marks = make(map[string]bool, len(leaf.Marks))
		for k, v := range leaf.Marks {
			trailing.Marks[k] = v
		}
	}
	leaf.Text = string(runes[:off])

	// Everything after the split leaf moves to the new block. When the leaf
	// sits inside an inline wrapper the split happens after the wrapper.
	carrier := carrierChild(block, leaf)
	idx := childIndex(block, carrier)
	newChildren := []Node{Node(trailing)}
	newChildren = append(newChildren, block.Children[idx+1:]...)
	block.Children = block.Children[:idx+1]

	newBlock := &Element{Type: block.Type, Children: newChildren}
	bi := childIndex(e.root, block)
	e.root.Children = append(e.root.Children[:bi+1],
		append([]Node{Node(newBlock)}, e.root.Children[bi+1:]...)...)

	path, ok := leafPath(e.root, trailing)
	if !ok {
		return fmt.Errorf("engine: lost split point")
	}
	np := Point{Path: path, Offset: 0}
	e.sel = &Range{Anchor: np, Focus: np}
	return nil
}

func (e *Engine) insertData(data TransferData) error {
	if data == nil {
		return nil
	}
	if enc := data.Get(TransferTypeFragment); enc != "" {
		nodes, err := DecodeFragment(enc)
		if err == nil {
			return e.insertFragment(nodes)
		}
		// Fall through to plain text: malformed payloads are not fatal.
	}
	if plain := data.Get(TransferTypePlain); plain != "" {
		lines := strings.Split(plain, "\n")
		for i, line := range lines {
			if i > 0 {
				if err := e.insertBreak(); err != nil {
					return err
				}
			}
			if err := e.insertText(line); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) insertFragment(nodes []Node) error {
	if len(nodes) == 0 {
		return nil
	}
	if e.sel != nil && !e.sel.IsCollapsed() {
		if err := e.deleteRange(*e.sel); err != nil {
			return err
		}
	}
	// Single-block fragments splice inline.
	if len(nodes) == 1 {
		return e.insertText(NodeString(nodes[0]))
	}
	// Multi-block: split at the point, splice the first block's text into the
	// first half, the last block's text into the second half, and insert the
	// middle blocks whole.
	if err := e.insertBreak(); err != nil {
		return err
	}
	after, err := e.point()
	if err != nil {
		return err
	}
	afterLeaf, err := Leaf(e.root, after.Path)
	if err != nil {
		return err
	}
	prev, ok := PrevPoint(e.root, after)
	if !ok {
		return fmt.Errorf("engine: lost insertion point")
	}
	e.sel = &Range{Anchor: prev, Focus: prev}
	if err := e.insertText(NodeString(nodes[0])); err != nil {
		return err
	}

	middle := CloneNodes(nodes[1 : len(nodes)-1])
	if len(middle) > 0 {
		p, _ := e.point()
		bp, err := BlockPath(e.root, p.Path)
		if err != nil {
			return err
		}
		bi := bp[0]
		e.root.Children = append(e.root.Children[:bi+1],
			append(middle, e.root.Children[bi+1:]...)...)
	}

	// Prepend the last block's text to the trailing half and land the caret
	// after it.
	last := NodeString(nodes[len(nodes)-1])
	afterLeaf.Text = last + afterLeaf.Text
	path, ok := leafPath(e.root, afterLeaf)
	if !ok {
		return fmt.Errorf("engine: lost insertion point")
	}
	np := Point{Path: path, Offset: len([]rune(last))}
	e.sel = &Range{Anchor: np, Focus: np}
	return nil
}

// ----------------------------------------------------------------------------
// Movement

func (e *Engine) move(c Move) error {
	if e.sel == nil {
		return nil
	}
	sel := *e.sel
	moveOne := func(p Point) Point {
		np, ok := e.unitTarget(p, c.Unit, c.Reverse)
		if !ok {
			return p
		}
		return np
	}
	switch c.Edge {
	case EdgeBoth:
		sel.Anchor = moveOne(sel.Anchor)
		sel.Focus = moveOne(sel.Focus)
	case EdgeAnchor:
		sel.Anchor = moveOne(sel.Anchor)
	case EdgeFocus:
		sel.Focus = moveOne(sel.Focus)
	case EdgeStart:
		start, end := sel.Edges()
		sel = Range{Anchor: moveOne(start), Focus: end}
	case EdgeEnd:
		start, end := sel.Edges()
		sel = Range{Anchor: start, Focus: moveOne(end)}
	}
	e.sel = &sel
	return nil
}

// ----------------------------------------------------------------------------
// Tree surgery helpers

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pruneRemoved drops the given text leaves and any element emptied by their
// removal.
func pruneRemoved(el *Element, removed map[*Text]bool) {
	kept := make([]Node, 0, len(el.Children))
	for _, c := range el.Children {
		switch n := c.(type) {
		case *Element:
			pruneRemoved(n, removed)
			if len(n.Children) == 0 {
				continue
			}
		case *Text:
			if removed[n] {
				continue
			}
		}
		kept = append(kept, c)
	}
	el.Children = kept
}

// topBlockOf returns the root-level block containing the given leaf.
func topBlockOf(root *Element, leaf *Text) *Element {
	for _, c := range root.Children {
		el, ok := c.(*Element)
		if !ok {
			continue
		}
		if containsLeaf(el, leaf) {
			return el
		}
	}
	return nil
}

func containsLeaf(el *Element, leaf *Text) bool {
	for _, c := range el.Children {
		switch n := c.(type) {
		case *Element:
			if containsLeaf(n, leaf) {
				return true
			}
		case *Text:
			if n == leaf {
				return true
			}
		}
	}
	return false
}

// carrierChild returns the direct child of block on the path down to leaf.
func carrierChild(block *Element, leaf *Text) Node {
	for _, c := range block.Children {
		switch n := c.(type) {
		case *Element:
			if containsLeaf(n, leaf) {
				return c
			}
		case *Text:
			if n == leaf {
				return c
			}
		}
	}
	return nil
}

func childIndex(el *Element, child Node) int {
	for i, c := range el.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func removeChild(el *Element, child Node) {
	i := childIndex(el, child)
	if i < 0 {
		return
	}
	el.Children = append(el.Children[:i], el.Children[i+1:]...)
}

// replaceVoid swaps a void block for an empty paragraph so the document keeps
// a selectable point where the void used to be.
func (e *Engine) replaceVoid(block *Element) {
	i := childIndex(e.root, block)
	if i < 0 {
		return
	}
	e.root.Children[i] = NewElement("paragraph", NewText(""))
}

// leafPath locates the given leaf pointer in the tree.
func leafPath(root *Element, leaf *Text) (Path, bool) {
	for _, entry := range Texts(root) {
		if entry.Text == leaf {
			return entry.Path, true
		}
	}
	return nil, false
}
