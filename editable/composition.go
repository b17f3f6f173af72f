package editable

import (
	"github.com/emilford/bindery/internal/log"
	"github.com/emilford/bindery/model"
	"github.com/emilford/bindery/surface"
)

// Composition tracking. The session is a single flag; while it is set, the
// selection pull path and input normalization are suppressed so the IME can
// mutate the native surface freely.

// HandleCompositionStart marks a composition session active.
func (e *Editor) HandleCompositionStart(ev *surface.CompositionEvent) {
	if h := e.opts.Handlers.OnCompositionStart; h != nil {
		h(ev)
	}
	if ev.Handled() || !e.hasEditableTarget(ev.Target) {
		return
	}
	e.composing = true
	log.Debug(log.CatComposition, "start")
}

// HandleCompositionEnd closes the session. On platforms where the host does
// not deliver a reliable insert-from-composition signal, the committed text
// is inserted here immediately: the native surface has already been mutated
// out-of-band, and the model must catch up before the next render clobbers
// it.
func (e *Editor) HandleCompositionEnd(ev *surface.CompositionEvent) {
	if h := e.opts.Handlers.OnCompositionEnd; h != nil {
		h(ev)
	}
	if ev.Handled() {
		return
	}
	e.composing = false
	log.Debug(log.CatComposition, "end", "data_len", len(ev.Data))
	if !e.hasEditableTarget(ev.Target) || e.opts.ReadOnly {
		return
	}
	if !e.caps.ReliableCompositionInsert && ev.Data != "" {
		e.execute(model.InsertText{Text: ev.Data})
	}
}
