package editable

import (
	"github.com/emilford/bindery/internal/log"
	"github.com/emilford/bindery/model"
	"github.com/emilford/bindery/surface"
)

// Selection synchronization. Push moves the model selection onto the native
// surface after every model change; pull reads native selection changes back
// into the model, debounced so bursts coalesce and the native selection
// settles first.

// pushSelection applies the model selection to the native surface.
func (e *Editor) pushSelection() {
	if e.composing || !e.focused {
		return
	}
	native := e.surf.Selection()
	if native == nil {
		return
	}

	sel := e.doc.Selection()
	var rng *surface.Range
	if sel != nil {
		// Conversion failures collapse to "no selection".
		if r, ok := e.toNativeRange(*sel); ok {
			rng = r
		}
	}

	if rng == nil && native.IsEmpty() {
		return
	}
	if cur := native.Range(); cur != nil && rng != nil && cur.Equal(*rng) {
		return
	}

	// The range mutation below fires the host's selection-change
	// notification synchronously; the guard makes the pull path swallow it.
	// It clears on the next dispatch turn, not here, because the host keeps
	// processing the assignment after this handler returns.
	e.updatingSelection = true
	native.Clear()
	if rng != nil {
		native.SetRange(*rng)
		if !e.surf.InViewport(rng.Start) {
			e.surf.ScrollIntoView(rng.Start)
		}
	}
	e.surf.Scheduler().Defer(func() {
		e.updatingSelection = false
		if rng != nil && !e.caps.FocusFollowsSelection {
			e.surf.Focus()
		}
	})
	log.Debug(log.CatSelection, "push", "empty", rng == nil)
}

// HandleSelectionChange is the native selection-change notification. Each
// notification cancels and reschedules the pending pull.
func (e *Editor) HandleSelectionChange(ev *surface.SelectionChangeEvent) {
	if h := e.opts.Handlers.OnSelectionChange; h != nil {
		h(ev)
	}
	if ev.Handled() || !e.mounted {
		return
	}
	if e.updatingSelection || e.composing {
		return
	}
	e.surf.Scheduler().Debounce(selectionPullID, selectionPullDebounce, e.pullSelection)
}

// pullSelection reads the settled native selection into the model.
func (e *Editor) pullSelection() {
	if e.opts.ReadOnly || e.composing || e.updatingSelection {
		return
	}

	root := e.surf.Root()
	e.focused = root != nil && e.surf.ActiveElement() == root

	native := e.surf.Selection()
	if native == nil {
		return
	}
	rng := native.Range()
	if rng != nil && e.hasEditableTarget(rng.Start.Container) && e.hasEditableTarget(rng.End.Container) {
		if mr, ok := e.toModelRange(*rng); ok {
			if cur := e.doc.Selection(); cur == nil || !cur.Equal(*mr) {
				e.execute(model.Select{Range: *mr})
			}
			return
		}
	}
	if e.doc.Selection() != nil {
		e.execute(model.Deselect{})
	}
}

// HandleFocus tracks the surface gaining or losing focus.
func (e *Editor) HandleFocus(ev *surface.FocusEvent) {
	if ev.Focused {
		if h := e.opts.Handlers.OnFocus; h != nil {
			h(ev)
		}
	} else {
		if h := e.opts.Handlers.OnBlur; h != nil {
			h(ev)
		}
	}
	if ev.Handled() || !e.mounted {
		return
	}
	e.focused = ev.Focused
	e.latestElement = e.surf.ActiveElement()
	log.Debug(log.CatSelection, "focus", "focused", ev.Focused)
}
