package editable

import "github.com/emilford/bindery/model"

// Decorations returns the ephemeral decoration list for the current render
// pass: the embedder's decorate output plus one synthesized placeholder
// decoration when the document is a single empty text run. Nothing here is
// retained between passes.
func (e *Editor) Decorations() []model.Range {
	root := e.doc.Root()
	var out []model.Range
	if e.opts.Decorate != nil {
		out = append(out, e.opts.Decorate(root)...)
	}
	if e.opts.Placeholder != "" && model.IsEmpty(root) {
		if start, ok := model.Start(root); ok {
			out = append(out, model.Collapsed(start))
		}
	}
	return out
}
