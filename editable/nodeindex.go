package editable

import (
	"github.com/emilford/bindery/model"
	"github.com/emilford/bindery/surface"
)

// nodeIndex is the non-owning, bidirectional lookup between model node
// identity and native node identity, plus the model path each key rendered
// at. It is rebuilt on every render pass and never used for lifecycle
// control.
type nodeIndex struct {
	byKey  map[model.Key]*surface.Node
	byNode map[*surface.Node]model.Key
	paths  map[model.Key]model.Path
}

func newNodeIndex() *nodeIndex {
	idx := &nodeIndex{}
	idx.clear()
	return idx
}

func (idx *nodeIndex) clear() {
	idx.byKey = map[model.Key]*surface.Node{}
	idx.byNode = map[*surface.Node]model.Key{}
	idx.paths = map[model.Key]model.Path{}
}

func (idx *nodeIndex) put(key model.Key, p model.Path, n *surface.Node) {
	idx.byKey[key] = n
	idx.byNode[n] = key
	idx.paths[key] = p.Copy()
}

// nodeOf returns the native node rendered for the model key.
func (idx *nodeIndex) nodeOf(key model.Key) (*surface.Node, bool) {
	n, ok := idx.byKey[key]
	return n, ok
}

// keyOf returns the model key a native node renders, if it renders one.
func (idx *nodeIndex) keyOf(n *surface.Node) (model.Key, bool) {
	k, ok := idx.byNode[n]
	return k, ok
}

// pathOf returns the model path the key rendered at.
func (idx *nodeIndex) pathOf(key model.Key) (model.Path, bool) {
	p, ok := idx.paths[key]
	return p, ok
}
