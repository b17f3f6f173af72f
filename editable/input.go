package editable

import (
	"github.com/emilford/bindery/internal/log"
	"github.com/emilford/bindery/model"
	"github.com/emilford/bindery/surface"
)

// HandleInput is the primary normalization path: low-level, pre-mutation
// input events on hosts that support them. Every recognized sub-type has its
// default action suppressed so the model, not the native surface, owns the
// mutation.
func (e *Editor) HandleInput(ev *surface.InputEvent) {
	if h := e.opts.Handlers.OnBeforeInput; h != nil {
		h(ev)
	}
	if ev.Handled() {
		return
	}
	if e.opts.ReadOnly || !e.hasEditableTarget(ev.Target) {
		return
	}

	if e.composing {
		if ev.Type.IsCompositionPassthrough() {
			// The IME owns these; they reach the host untouched.
			return
		}
		// Everything else is silenced until the session ends.
		ev.PreventDefault()
		return
	}

	ev.PreventDefault()
	log.Debug(log.CatInput, "beforeinput", "type", string(ev.Type))

	// Non-deletion sub-types honor an explicit target range by selecting it
	// first. Deletions skip this: the deletion command determines its own
	// range.
	if !ev.Type.IsDeletion() && ev.TargetRange != nil {
		if mr, ok := e.toModelRange(*ev.TargetRange); ok {
			if cur := e.doc.Selection(); cur == nil || !cur.Equal(*mr) {
				e.execute(model.Select{Range: *mr})
			}
		}
	}

	// An expanded selection turns any deletion into a fragment removal;
	// direction stops mattering once a non-collapsed range is replaced.
	if sel := e.doc.Selection(); sel != nil && !sel.IsCollapsed() && ev.Type.IsDeletion() {
		e.execute(model.DeleteFragment{})
		return
	}

	switch ev.Type {
	case surface.DeleteByComposition, surface.DeleteByCut, surface.DeleteByDrag:
		e.execute(model.DeleteFragment{})

	case surface.DeleteContent, surface.DeleteContentForward:
		e.execute(model.DeleteForward{Unit: model.UnitCharacter})
	case surface.DeleteContentBackward:
		e.execute(model.DeleteBackward{Unit: model.UnitCharacter})

	case surface.DeleteEntireSoftLine:
		e.execute(model.DeleteBackward{Unit: model.UnitLine})
		e.execute(model.DeleteForward{Unit: model.UnitLine})

	case surface.DeleteHardLineBackward:
		e.execute(model.DeleteBackward{Unit: model.UnitBlock})
	case surface.DeleteSoftLineBackward:
		e.execute(model.DeleteBackward{Unit: model.UnitLine})
	case surface.DeleteHardLineForward:
		e.execute(model.DeleteForward{Unit: model.UnitBlock})
	case surface.DeleteSoftLineForward:
		e.execute(model.DeleteForward{Unit: model.UnitLine})

	case surface.DeleteWordBackward:
		e.execute(model.DeleteBackward{Unit: model.UnitWord})
	case surface.DeleteWordForward:
		e.execute(model.DeleteForward{Unit: model.UnitWord})

	case surface.InsertLineBreak, surface.InsertParagraph:
		e.execute(model.InsertBreak{})

	case surface.InsertFromComposition, surface.InsertFromDrop,
		surface.InsertFromPaste, surface.InsertFromYank,
		surface.InsertReplacementText, surface.InsertText:
		switch {
		case ev.Transfer != nil && !ev.Transfer.IsEmpty():
			e.execute(model.InsertData{Data: ev.Transfer})
		case ev.Data != "":
			e.execute(model.InsertText{Text: ev.Data})
		}
	}
}

// HandleTextInsertion is the host's higher-level same-turn text
// notification, used on fallback hosts where key-level text is unreliable
// across layouts and IMEs.
func (e *Editor) HandleTextInsertion(ev *surface.TextInsertionEvent) {
	if h := e.opts.Handlers.OnTextInsertion; h != nil {
		h(ev)
	}
	if ev.Handled() || e.opts.ReadOnly || e.composing || !e.hasEditableTarget(ev.Target) {
		return
	}
	if ev.Text == "" {
		return
	}
	ev.PreventDefault()
	e.execute(model.InsertText{Text: ev.Text})
}
