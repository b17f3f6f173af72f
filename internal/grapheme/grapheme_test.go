package grapheme

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	require.Equal(t, 0, Count(""))
	require.Equal(t, 5, Count("hello"))
	require.Equal(t, 2, Count("a👍🏽"), "modifier sequences are one cluster")
	require.Equal(t, 1, Count("👨‍👩‍👧"), "ZWJ sequences are one cluster")
}

func TestWidth(t *testing.T) {
	require.Equal(t, 5, Width("hello"))
	require.Equal(t, 4, Width("日本"), "CJK is two cells per character")
}

func TestPrevNextCluster(t *testing.T) {
	s := "a👍🏽b" // runes: a(1) 👍(1) 🏽(1) b(1)

	require.Equal(t, 0, PrevCluster(s, 1))
	require.Equal(t, 1, PrevCluster(s, 3), "steps back over the whole emoji cluster")
	require.Equal(t, 3, PrevCluster(s, 4))
	require.Equal(t, 0, PrevCluster(s, 0))

	require.Equal(t, 1, NextCluster(s, 0))
	require.Equal(t, 3, NextCluster(s, 1), "steps forward over the whole emoji cluster")
	require.Equal(t, 3, NextCluster(s, 2), "offsets inside a cluster snap past it")
	require.Equal(t, 4, NextCluster(s, 3))
	require.Equal(t, 4, NextCluster(s, 4))
}

func TestPrevNextWord(t *testing.T) {
	s := "foo  bar_baz!"

	require.Equal(t, 0, PrevWord(s, 3))
	require.Equal(t, 0, PrevWord(s, 5), "whitespace before the offset is skipped first")
	require.Equal(t, 5, PrevWord(s, 12))
	require.Equal(t, 12, PrevWord(s, 13), "punctuation is its own word class")

	require.Equal(t, 3, NextWord(s, 0))
	require.Equal(t, 12, NextWord(s, 3), "whitespace after the offset is skipped first")
	require.Equal(t, 13, NextWord(s, 12))
	require.Equal(t, 13, NextWord(s, 13))
}

func TestClusters(t *testing.T) {
	require.Equal(t, []string{"a", "👍🏽", "b"}, Clusters("a👍🏽b"))
	require.Nil(t, Clusters(""))
}
