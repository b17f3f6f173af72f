package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func paragraphs(texts ...string) *Element {
	var blocks []Node
	for _, s := range texts {
		blocks = append(blocks, NewElement("paragraph", NewText(s)))
	}
	return NewElement("root", blocks...)
}

func docText(e *Engine) string {
	return FragmentString(e.Root().Children)
}

func selectAt(t *testing.T, e *Engine, p Path, off int) {
	t.Helper()
	require.NoError(t, e.Execute(Select{Range: Collapsed(Point{Path: p, Offset: off})}))
}

func TestEngineNewDefaultsToEmptyParagraph(t *testing.T) {
	e := NewEngine(nil)
	require.True(t, IsEmpty(e.Root()))
	require.Nil(t, e.Selection())
}

func TestEngineSelectValidates(t *testing.T) {
	e := NewEngine(paragraphs("ab"))

	require.Error(t, e.Execute(Select{Range: Collapsed(Point{Path: Path{3, 0}})}))
	require.Nil(t, e.Selection())

	sel := Collapsed(Point{Path: Path{0, 0}, Offset: 1})
	require.NoError(t, e.Execute(Select{Range: sel}))
	require.True(t, e.Selection().Equal(sel))

	require.NoError(t, e.Execute(Deselect{}))
	require.Nil(t, e.Selection())
}

func TestEngineInsertText(t *testing.T) {
	e := NewEngine(paragraphs("ab"))
	selectAt(t, e, Path{0, 0}, 2)

	require.NoError(t, e.Execute(InsertText{Text: "X"}))
	require.Equal(t, "abX", docText(e))
	require.Equal(t, 3, e.Selection().Focus.Offset)
}

func TestEngineInsertTextReplacesExpanded(t *testing.T) {
	root := NewElement("root",
		NewElement("paragraph", NewText("ab"), NewText("cd")),
	)
	e := NewEngine(root)
	require.NoError(t, e.Execute(Select{Range: Range{
		Anchor: Point{Path: Path{0, 0}, Offset: 1},
		Focus:  Point{Path: Path{0, 1}, Offset: 1},
	}}))

	require.NoError(t, e.Execute(InsertText{Text: "Z"}))
	require.Equal(t, "aZd", docText(e))
}

func TestEngineDeleteBackwardCharacter(t *testing.T) {
	e := NewEngine(paragraphs("ab"))
	selectAt(t, e, Path{0, 0}, 2)

	require.NoError(t, e.Execute(DeleteBackward{Unit: UnitCharacter}))
	require.Equal(t, "a", docText(e))
	require.Equal(t, 1, e.Selection().Focus.Offset)
}

func TestEngineDeleteBackwardGraphemeCluster(t *testing.T) {
	// The thumbs-up with modifier is one cluster of two runes; a single
	// backward delete removes all of it.
	e := NewEngine(paragraphs("a👍🏽"))
	end := len([]rune("a👍🏽"))
	selectAt(t, e, Path{0, 0}, end)

	require.NoError(t, e.Execute(DeleteBackward{Unit: UnitCharacter}))
	require.Equal(t, "a", docText(e))
}

func TestEngineDeleteBackwardMergesBlocks(t *testing.T) {
	e := NewEngine(paragraphs("ab", "cd"))
	selectAt(t, e, Path{1, 0}, 0)

	require.NoError(t, e.Execute(DeleteBackward{Unit: UnitCharacter}))
	require.Equal(t, "abcd", docText(e))
	require.Len(t, e.Root().Children, 1)
	require.True(t, e.Selection().Focus.Equal(Point{Path: Path{0, 0}, Offset: 2}))
}

func TestEngineDeleteForwardCharacter(t *testing.T) {
	e := NewEngine(paragraphs("ab"))
	selectAt(t, e, Path{0, 0}, 0)

	require.NoError(t, e.Execute(DeleteForward{Unit: UnitCharacter}))
	require.Equal(t, "b", docText(e))
	require.Equal(t, 0, e.Selection().Focus.Offset)
}

func TestEngineDeleteWordForward(t *testing.T) {
	e := NewEngine(paragraphs("hello world"))
	selectAt(t, e, Path{0, 0}, 0)

	require.NoError(t, e.Execute(DeleteForward{Unit: UnitWord}))
	require.Equal(t, " world", docText(e))
}

func TestEngineDeleteLineBackward(t *testing.T) {
	e := NewEngine(paragraphs("hello world"))
	selectAt(t, e, Path{0, 0}, 6)

	require.NoError(t, e.Execute(DeleteBackward{Unit: UnitLine}))
	require.Equal(t, "world", docText(e))
	require.Equal(t, 0, e.Selection().Focus.Offset)
}

func TestEngineDeleteFragmentAcrossBlocks(t *testing.T) {
	e := NewEngine(paragraphs("ab", "cd"))
	require.NoError(t, e.Execute(Select{Range: Range{
		Anchor: Point{Path: Path{0, 0}, Offset: 1},
		Focus:  Point{Path: Path{1, 0}, Offset: 1},
	}}))

	require.NoError(t, e.Execute(DeleteFragment{}))
	require.Equal(t, "ad", docText(e))
	require.Len(t, e.Root().Children, 1)
	require.True(t, e.Selection().IsCollapsed())
	require.Equal(t, 1, e.Selection().Focus.Offset)
}

func TestEngineDeleteFragmentCollapsedIsNoop(t *testing.T) {
	e := NewEngine(paragraphs("ab"))
	selectAt(t, e, Path{0, 0}, 1)

	require.NoError(t, e.Execute(DeleteFragment{}))
	require.Equal(t, "ab", docText(e))
}

func TestEngineDeleteRangeEndingInVoid(t *testing.T) {
	root := NewElement("root",
		NewElement("paragraph", NewText("ab")),
		NewVoid("image"),
	)
	e := NewEngine(root)
	require.NoError(t, e.Execute(Select{Range: Range{
		Anchor: Point{Path: Path{0, 0}, Offset: 1},
		Focus:  Point{Path: Path{1, 0}, Offset: 0},
	}}))

	require.NoError(t, e.Execute(DeleteFragment{}))
	require.Equal(t, "a", docText(e))
	require.Len(t, e.Root().Children, 1, "a void at the range end is removed whole")
}

func TestEngineInsertBreak(t *testing.T) {
	e := NewEngine(paragraphs("hello"))
	selectAt(t, e, Path{0, 0}, 2)

	require.NoError(t, e.Execute(InsertBreak{}))
	require.Equal(t, "he\nllo", docText(e))
	require.True(t, e.Selection().Focus.Equal(Point{Path: Path{1, 0}, Offset: 0}))
}

func TestEngineInsertBreakCarriesMarks(t *testing.T) {
	root := NewElement("root",
		NewElement("paragraph", NewText("bold", "strong")),
	)
	e := NewEngine(root)
	selectAt(t, e, Path{0, 0}, 2)

	require.NoError(t, e.Execute(InsertBreak{}))
	trailing, err := Leaf(e.Root(), Path{1, 0})
	require.NoError(t, err)
	require.Equal(t, "ld", trailing.Text)
	require.True(t, trailing.HasMark("strong"))
}

func TestEngineInsertBreakInVoidIsNoop(t *testing.T) {
	root := NewElement("root", NewVoid("image"))
	e := NewEngine(root)
	selectAt(t, e, Path{0, 0}, 0)

	require.NoError(t, e.Execute(InsertBreak{}))
	require.Len(t, e.Root().Children, 1)
}

func TestEngineUndoRedo(t *testing.T) {
	e := NewEngine(paragraphs("ab"))
	selectAt(t, e, Path{0, 0}, 2)

	require.NoError(t, e.Execute(InsertText{Text: "X"}))
	require.Equal(t, "abX", docText(e))

	require.NoError(t, e.Execute(Undo{}))
	require.Equal(t, "ab", docText(e))

	require.NoError(t, e.Execute(Redo{}))
	require.Equal(t, "abX", docText(e))

	// Undo with an empty stack forwards the intent and does nothing.
	require.NoError(t, e.Execute(Undo{}))
	require.NoError(t, e.Execute(Undo{}))
	require.Equal(t, "ab", docText(e))
}

func TestEngineFailedCommandLeavesStateUntouched(t *testing.T) {
	e := NewEngine(paragraphs("ab"))

	// No selection: insert has no point to work from.
	require.Error(t, e.Execute(InsertText{Text: "X"}))
	require.Equal(t, "ab", docText(e))

	require.NoError(t, e.Execute(Undo{}))
	require.Equal(t, "ab", docText(e), "failed mutations must not enter history")
}

type mapTransfer map[string]string

func (m mapTransfer) Get(typ string) string { return m[typ] }
func (m mapTransfer) Types() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestEngineInsertDataPlainMultiline(t *testing.T) {
	e := NewEngine(paragraphs("ab"))
	selectAt(t, e, Path{0, 0}, 1)

	require.NoError(t, e.Execute(InsertData{Data: mapTransfer{
		TransferTypePlain: "x\ny",
	}}))
	require.Equal(t, "ax\nyb", docText(e))
}

func TestEngineInsertDataPrefersFragment(t *testing.T) {
	enc, err := EncodeFragment([]Node{NewElement("paragraph", NewText("XY"))})
	require.NoError(t, err)

	e := NewEngine(paragraphs("ab"))
	selectAt(t, e, Path{0, 0}, 1)

	require.NoError(t, e.Execute(InsertData{Data: mapTransfer{
		TransferTypeFragment: enc,
		TransferTypePlain:    "ignored",
	}}))
	require.Equal(t, "aXYb", docText(e))
}

func TestEngineInsertDataMalformedFragmentFallsBack(t *testing.T) {
	e := NewEngine(paragraphs("ab"))
	selectAt(t, e, Path{0, 0}, 2)

	require.NoError(t, e.Execute(InsertData{Data: mapTransfer{
		TransferTypeFragment: "%%%not-base64%%%",
		TransferTypePlain:    "ok",
	}}))
	require.Equal(t, "abok", docText(e))
}

func TestEngineInsertFragmentMultiBlock(t *testing.T) {
	enc, err := EncodeFragment([]Node{
		NewElement("paragraph", NewText("A")),
		NewElement("paragraph", NewText("B")),
		NewElement("paragraph", NewText("C")),
	})
	require.NoError(t, err)

	e := NewEngine(paragraphs("ab"))
	selectAt(t, e, Path{0, 0}, 1)

	require.NoError(t, e.Execute(InsertData{Data: mapTransfer{TransferTypeFragment: enc}}))
	require.Equal(t, "aA\nB\nCb", docText(e))
	require.True(t, e.Selection().Focus.Equal(Point{Path: Path{2, 0}, Offset: 1}))
}

func TestEngineMoveCharacter(t *testing.T) {
	e := NewEngine(paragraphs("ab"))
	selectAt(t, e, Path{0, 0}, 0)

	require.NoError(t, e.Execute(Move{Unit: UnitCharacter}))
	require.True(t, e.Selection().IsCollapsed())
	require.Equal(t, 1, e.Selection().Focus.Offset)

	require.NoError(t, e.Execute(Move{Unit: UnitCharacter, Reverse: true}))
	require.Equal(t, 0, e.Selection().Focus.Offset)
}

func TestEngineMoveAcrossLeafBoundary(t *testing.T) {
	e := NewEngine(paragraphs("ab", "cd"))
	selectAt(t, e, Path{0, 0}, 2)

	require.NoError(t, e.Execute(Move{Unit: UnitCharacter}))
	require.True(t, e.Selection().Focus.Equal(Point{Path: Path{1, 0}, Offset: 0}))
}

func TestEngineMoveExtendsFocusEdge(t *testing.T) {
	e := NewEngine(paragraphs("abc"))
	selectAt(t, e, Path{0, 0}, 1)

	require.NoError(t, e.Execute(Move{Unit: UnitCharacter, Edge: EdgeFocus}))
	sel := e.Selection()
	require.False(t, sel.IsCollapsed())
	require.Equal(t, 1, sel.Anchor.Offset)
	require.Equal(t, 2, sel.Focus.Offset)
}

func TestEngineMoveLineEdges(t *testing.T) {
	e := NewEngine(paragraphs("hello"))
	selectAt(t, e, Path{0, 0}, 2)

	require.NoError(t, e.Execute(Move{Unit: UnitLine, Reverse: true, Edge: EdgeStart}))
	start, _ := e.Selection().Edges()
	require.Equal(t, 0, start.Offset)

	require.NoError(t, e.Execute(Move{Unit: UnitLine, Edge: EdgeEnd}))
	_, end := e.Selection().Edges()
	require.Equal(t, 5, end.Offset)
}
