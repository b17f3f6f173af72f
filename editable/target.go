package editable

import "github.com/emilford/bindery/surface"

// Target classification. Both predicates are stateless and side-effect-free;
// every handler calls one of them first and no-ops on false.

// hasTarget reports whether the location lies inside the mounted root.
func (e *Editor) hasTarget(n *surface.Node) bool {
	root := e.surf.Root()
	return e.mounted && n != nil && root != nil && root.Contains(n)
}

// hasEditableTarget reports whether the location is inside the mounted root
// and not within a region marked non-editable. While the editor is
// read-only the root itself carries the non-editable mark, so this is false
// everywhere.
func (e *Editor) hasEditableTarget(n *surface.Node) bool {
	return e.hasTarget(n) && n.Editable()
}
