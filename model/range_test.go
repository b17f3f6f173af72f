package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathCompare(t *testing.T) {
	cases := []struct {
		a, b Path
		want int
	}{
		{Path{0}, Path{1}, -1},
		{Path{1}, Path{0}, 1},
		{Path{0, 2}, Path{0, 2}, 0},
		{Path{0, 1}, Path{0, 2}, -1},
		// An ancestor compares equal to its descendants, which is what lets
		// range trimming keep boundary subtrees.
		{Path{0}, Path{0, 5}, 0},
		{Path{0, 5}, Path{0}, 0},
		{Path{1}, Path{0, 5}, 1},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.a.Compare(tc.b), "%v vs %v", tc.a, tc.b)
	}
}

func TestPathIsAncestorOf(t *testing.T) {
	require.True(t, Path{0}.IsAncestorOf(Path{0, 1}))
	require.True(t, Path{}.IsAncestorOf(Path{2}))
	require.False(t, Path{0}.IsAncestorOf(Path{0}), "a path is not its own ancestor")
	require.False(t, Path{0, 1}.IsAncestorOf(Path{0}))
	require.False(t, Path{1}.IsAncestorOf(Path{0, 1}))
}

func TestPathCopyIsIndependent(t *testing.T) {
	p := Path{0, 1}
	q := p.Copy()
	q[0] = 9
	require.Equal(t, Path{0, 1}, p)
}

func TestPointCompare(t *testing.T) {
	a := Point{Path: Path{0, 0}, Offset: 1}
	b := Point{Path: Path{0, 0}, Offset: 3}
	c := Point{Path: Path{1, 0}, Offset: 0}

	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(a))
	require.Equal(t, -1, b.Compare(c))
}

func TestRangeDirection(t *testing.T) {
	fwd := Range{
		Anchor: Point{Path: Path{0, 0}, Offset: 1},
		Focus:  Point{Path: Path{0, 0}, Offset: 3},
	}
	require.False(t, fwd.IsBackward())
	require.False(t, fwd.IsCollapsed())

	bwd := Range{Anchor: fwd.Focus, Focus: fwd.Anchor}
	require.True(t, bwd.IsBackward())

	start, end := bwd.Edges()
	require.Equal(t, 1, start.Offset)
	require.Equal(t, 3, end.Offset)

	col := Collapsed(fwd.Anchor)
	require.True(t, col.IsCollapsed())
	require.True(t, col.Anchor.Equal(col.Focus))
}

func TestValidateRange(t *testing.T) {
	root := NewElement("root", NewElement("paragraph", NewText("ab")))

	require.True(t, ValidateRange(root, Collapsed(Point{Path: Path{0, 0}, Offset: 2})))
	require.False(t, ValidateRange(root, Collapsed(Point{Path: Path{0, 0}, Offset: 3})), "offset past leaf end")
	require.False(t, ValidateRange(root, Collapsed(Point{Path: Path{0}})), "element, not a leaf")
	require.False(t, ValidateRange(root, Collapsed(Point{Path: Path{4, 0}})))
}

func TestTraverseTextsAndEdges(t *testing.T) {
	root := NewElement("root",
		NewElement("paragraph", NewText("ab"), NewText("cd")),
		NewElement("quote", NewElement("paragraph", NewText("ef"))),
	)

	ts := Texts(root)
	require.Len(t, ts, 3)
	require.Equal(t, Path{0, 0}, ts[0].Path)
	require.Equal(t, Path{1, 0, 0}, ts[2].Path)

	start, ok := Start(root)
	require.True(t, ok)
	require.True(t, start.Equal(Point{Path: Path{0, 0}, Offset: 0}))

	end, ok := End(root)
	require.True(t, ok)
	require.True(t, end.Equal(Point{Path: Path{1, 0, 0}, Offset: 2}))

	next, ok := NextPoint(root, Point{Path: Path{0, 0}, Offset: 2})
	require.True(t, ok)
	require.Equal(t, Path{0, 1}, next.Path)

	prev, ok := PrevPoint(root, Point{Path: Path{0, 0}})
	require.False(t, ok, "no leaf before the first")
	require.Equal(t, Path{0, 0}, prev.Path)
}

func TestBlockAndVoidPath(t *testing.T) {
	root := NewElement("root",
		NewElement("paragraph",
			NewText("a"),
			&Element{Type: "link", Inline: true, Children: []Node{NewText("b")}},
		),
		NewVoid("image"),
	)

	bp, err := BlockPath(root, Path{0, 1, 0})
	require.NoError(t, err)
	require.Equal(t, Path{0}, bp, "inline wrappers are skipped")

	_, ok := VoidPath(root, Path{0, 0})
	require.False(t, ok)

	vp, ok := VoidPath(root, Path{1, 0})
	require.True(t, ok)
	require.Equal(t, Path{1}, vp)
}
