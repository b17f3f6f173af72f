// Package grapheme provides Unicode-aware text measurement helpers.
//
// The document model addresses text leaves by rune offset, but user-visible
// editing units are grapheme clusters: deleting "one character" must remove a
// whole cluster (e.g. an emoji ZWJ sequence), and terminal rendering needs the
// display width of a cluster, not its rune count. This package converts
// between the three units:
//
//  1. Runes: the unit of model offsets (Point.Offset).
//  2. Graphemes: the unit users perceive as a character.
//  3. Display columns: the width in terminal cells (ASCII = 1, CJK/emoji = 2).
package grapheme

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Character classes for word boundary detection.
const (
	classWhitespace = iota
	classWord
	classPunctuation
)

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// PrevCluster returns the rune offset of the start of the grapheme cluster
// that precedes runeOff. Returns 0 when runeOff is at or before the first
// cluster.
func PrevCluster(s string, runeOff int) int {
	prev := 0
	pos := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		n := len([]rune(cluster))
		if pos+n >= runeOff {
			return prev
		}
		prev = pos + n
		pos += n
		s = rest
		state = newState
	}
	return prev
}

// NextCluster returns the rune offset just past the grapheme cluster that
// starts at or spans runeOff. Returns the rune length of s when runeOff is at
// or past the end.
func NextCluster(s string, runeOff int) int {
	pos := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		n := len([]rune(cluster))
		if pos+n > runeOff {
			return pos + n
		}
		pos += n
		s = rest
		state = newState
	}
	return pos
}

// PrevWord returns the rune offset of the start of the word preceding runeOff,
// skipping any whitespace immediately before it.
func PrevWord(s string, runeOff int) int {
	runes := []rune(s)
	if runeOff > len(runes) {
		runeOff = len(runes)
	}
	i := runeOff
	for i > 0 && charClass(runes[i-1]) == classWhitespace {
		i--
	}
	if i == 0 {
		return 0
	}
	cls := charClass(runes[i-1])
	for i > 0 && charClass(runes[i-1]) == cls {
		i--
	}
	return i
}

// NextWord returns the rune offset just past the word following runeOff,
// skipping any whitespace immediately after it.
func NextWord(s string, runeOff int) int {
	runes := []rune(s)
	if runeOff < 0 {
		runeOff = 0
	}
	i := runeOff
	for i < len(runes) && charClass(runes[i]) == classWhitespace {
		i++
	}
	if i >= len(runes) {
		return len(runes)
	}
	cls := charClass(runes[i])
	for i < len(runes) && charClass(runes[i]) == cls {
		i++
	}
	return i
}

// Clusters returns the grapheme clusters of s in order.
func Clusters(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		out = append(out, cluster)
		s = rest
		state = newState
	}
	return out
}

// charClass classifies a rune for word boundary detection. Alphanumerics,
// underscore and non-ASCII letters/numbers are word characters; whitespace is
// its own class; everything else (including emoji) is punctuation.
func charClass(r rune) int {
	switch {
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return classWhitespace
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_':
		return classWord
	case unicode.IsLetter(r) || unicode.IsNumber(r):
		return classWord
	default:
		return classPunctuation
	}
}
