package model

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Fragment extracts a deep copy of the sub-tree spanned by r. The result is
// the list of top-level nodes covered by the range, with boundary text leaves
// trimmed to the range offsets.
func Fragment(root *Element, r Range) ([]Node, error) {
	if !ValidateRange(root, r) {
		return nil, fmt.Errorf("fragment: range %v does not resolve to text leaves", r)
	}
	start, end := r.Edges()
	clone := Clone(root).(*Element)
	trimToRange(clone, nil, start, end)
	return clone.Children, nil
}

// trimToRange prunes children of el outside [start, end] and trims boundary
// text leaves. Path comparison treats ancestors as equal to their descendants,
// so boundary subtrees are kept and recursed into.
func trimToRange(el *Element, p Path, start, end Point) {
	kept := make([]Node, 0, len(el.Children))
	for i, c := range el.Children {
		cp := append(p.Copy(), i)
		if cp.Compare(start.Path) < 0 || cp.Compare(end.Path) > 0 {
			continue
		}
		switch n := c.(type) {
		case *Element:
			trimToRange(n, cp, start, end)
		case *Text:
			runes := []rune(n.Text)
			lo, hi := 0, len(runes)
			if cp.Equal(end.Path) {
				hi = min(end.Offset, hi)
			}
			if cp.Equal(start.Path) {
				lo = min(start.Offset, hi)
			}
			n.Text = string(runes[lo:hi])
		}
		kept = append(kept, c)
	}
	el.Children = kept
}

// wireNode is the self-describing encoding of a node. Field names are kept
// short so encoded payloads stay compact.
type wireNode struct {
	Kind     string     `json:"k"` // "e" element, "t" text
	Type     string     `json:"y,omitempty"`
	Void     bool       `json:"v,omitempty"`
	Inline   bool       `json:"i,omitempty"`
	Text     string     `json:"x,omitempty"`
	Marks    []string   `json:"m,omitempty"`
	Children []wireNode `json:"c,omitempty"`
}

func toWire(n Node) wireNode {
	switch n := n.(type) {
	case *Element:
		w := wireNode{Kind: "e", Type: n.Type, Void: n.Void, Inline: n.Inline}
		for _, c := range n.Children {
			w.Children = append(w.Children, toWire(c))
		}
		return w
	case *Text:
		w := wireNode{Kind: "t", Text: n.Text}
		for m, set := range n.Marks {
			if set {
				w.Marks = append(w.Marks, m)
			}
		}
		sort.Strings(w.Marks)
		return w
	}
	return wireNode{}
}

func fromWire(w wireNode) (Node, error) {
	switch w.Kind {
	case "e":
		el := &Element{Type: w.Type, Void: w.Void, Inline: w.Inline}
		for _, c := range w.Children {
			n, err := fromWire(c)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, n)
		}
		return el, nil
	case "t":
		return NewText(w.Text, w.Marks...), nil
	default:
		return nil, fmt.Errorf("decode fragment: unknown node kind %q", w.Kind)
	}
}

// EncodeFragment serializes a fragment to a compact, URL-safe string. The
// encoding is self-describing: DecodeFragment reconstructs the fragment
// losslessly without any side channel.
func EncodeFragment(nodes []Node) (string, error) {
	wires := make([]wireNode, len(nodes))
	for i, n := range nodes {
		wires[i] = toWire(n)
	}
	raw, err := json.Marshal(wires)
	if err != nil {
		return "", fmt.Errorf("encode fragment: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeFragment reverses EncodeFragment.
func DecodeFragment(s string) ([]Node, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode fragment: %w", err)
	}
	var wires []wireNode
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, fmt.Errorf("decode fragment: %w", err)
	}
	nodes := make([]Node, len(wires))
	for i, w := range wires {
		n, err := fromWire(w)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

// NodeString returns the concatenated text content of a node.
func NodeString(n Node) string {
	switch n := n.(type) {
	case *Element:
		var sb strings.Builder
		for _, c := range n.Children {
			sb.WriteString(NodeString(c))
		}
		return sb.String()
	case *Text:
		return n.Text
	}
	return ""
}

// FragmentString returns the text content of a fragment, joining top-level
// blocks with newlines.
func FragmentString(nodes []Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, NodeString(n))
	}
	return strings.Join(parts, "\n")
}
