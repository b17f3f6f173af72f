package model

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFragmentTrimsBoundaries(t *testing.T) {
	root := NewElement("root",
		NewElement("paragraph", NewText("hello")),
		NewElement("paragraph", NewText("world")),
	)
	nodes, err := Fragment(root, Range{
		Anchor: Point{Path: Path{0, 0}, Offset: 3},
		Focus:  Point{Path: Path{1, 0}, Offset: 2},
	})
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Equal(t, "lo\nwo", FragmentString(nodes))
}

func TestFragmentSingleLeafSlice(t *testing.T) {
	root := NewElement("root", NewElement("paragraph", NewText("hello")))
	nodes, err := Fragment(root, Range{
		Anchor: Point{Path: Path{0, 0}, Offset: 1},
		Focus:  Point{Path: Path{0, 0}, Offset: 4},
	})
	require.NoError(t, err)
	require.Equal(t, "ell", FragmentString(nodes))
}

func TestFragmentDoesNotMutateSource(t *testing.T) {
	root := NewElement("root", NewElement("paragraph", NewText("hello")))
	_, err := Fragment(root, Range{
		Anchor: Point{Path: Path{0, 0}, Offset: 1},
		Focus:  Point{Path: Path{0, 0}, Offset: 4},
	})
	require.NoError(t, err)
	leaf, err := Leaf(root, Path{0, 0})
	require.NoError(t, err)
	require.Equal(t, "hello", leaf.Text)
}

func TestFragmentInvalidRange(t *testing.T) {
	root := NewElement("root", NewElement("paragraph", NewText("ab")))
	_, err := Fragment(root, Collapsed(Point{Path: Path{7, 0}}))
	require.Error(t, err)
}

func TestEncodeDecodeLossless(t *testing.T) {
	nodes := []Node{
		NewElement("paragraph",
			NewText("plain"),
			NewText("styled", "strong", "em"),
			&Element{Type: "link", Inline: true, Children: []Node{NewText("go")}},
		),
		NewVoid("image"),
	}
	enc, err := EncodeFragment(nodes)
	require.NoError(t, err)

	decoded, err := DecodeFragment(enc)
	require.NoError(t, err)
	require.True(t, EqualNodes(nodes, decoded))
}

func TestEncodeIsURLSafe(t *testing.T) {
	enc, err := EncodeFragment([]Node{NewElement("paragraph", NewText("a?b&c=d ~"))})
	require.NoError(t, err)
	require.NotContains(t, enc, "+")
	require.NotContains(t, enc, "/")
	require.NotContains(t, enc, "=")
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := DecodeFragment("!!!")
	require.Error(t, err)

	// Valid base64, invalid structure.
	_, err = DecodeFragment("e30")
	require.Error(t, err)
}

func genNode(depth int) *rapid.Generator[Node] {
	text := rapid.Custom(func(t *rapid.T) Node {
		marks := rapid.SliceOfNDistinct(
			rapid.SampledFrom([]string{"strong", "em", "code"}), 0, 3,
			func(s string) string { return s },
		).Draw(t, "marks")
		return Node(NewText(rapid.StringMatching(`[ -~]{0,12}`).Draw(t, "text"), marks...))
	})
	if depth <= 0 {
		return text
	}
	element := rapid.Custom(func(t *rapid.T) Node {
		el := &Element{
			Type:   rapid.SampledFrom([]string{"paragraph", "quote", "link"}).Draw(t, "type"),
			Inline: rapid.Bool().Draw(t, "inline"),
		}
		for _, c := range rapid.SliceOfN(genNode(depth-1), 1, 3).Draw(t, "children") {
			el.Children = append(el.Children, c)
		}
		return Node(el)
	})
	return rapid.OneOf(text, element)
}

func TestEncodeDecodeRapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nodes := rapid.SliceOfN(genNode(2), 1, 4).Draw(t, "nodes")
		enc, err := EncodeFragment(nodes)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		decoded, err := DecodeFragment(enc)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !EqualNodes(nodes, decoded) {
			t.Fatalf("round trip mismatch:\n in: %s\nout: %s", FragmentString(nodes), FragmentString(decoded))
		}
	})
}

func TestNodeStringAndClone(t *testing.T) {
	el := NewElement("paragraph", NewText("ab"), NewText("cd"))
	require.Equal(t, "abcd", NodeString(el))

	clone := Clone(el).(*Element)
	require.True(t, Equal(el, clone))
	require.NotEqual(t, el.Key(), clone.Key(), "clones are new content, not aliases")

	clone.Children[0].(*Text).Text = "zz"
	require.Equal(t, "abcd", NodeString(el))
}
