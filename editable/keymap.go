package editable

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/emilford/bindery/internal/log"
	"github.com/emilford/bindery/model"
	"github.com/emilford/bindery/surface"
)

// KeyMap defines the fallback keybindings used on hosts without low-level
// input events. Plain character insertion is deliberately absent: it arrives
// through the host's text-insertion notification instead.
type KeyMap struct {
	// Caret movement
	MoveBackward     key.Binding
	MoveForward      key.Binding
	MoveWordBackward key.Binding
	MoveWordForward  key.Binding
	MoveLineUp       key.Binding
	MoveLineDown     key.Binding
	LineStart        key.Binding
	LineEnd          key.Binding

	// Selection extension
	ExtendBackward key.Binding
	ExtendForward  key.Binding

	// Deletion
	DeleteBackward     key.Binding
	DeleteForward      key.Binding
	DeleteWordBackward key.Binding
	DeleteWordForward  key.Binding
	DeleteLineBackward key.Binding
	DeleteLineForward  key.Binding

	// Structure
	InsertBreak key.Binding

	// History
	Undo key.Binding
	Redo key.Binding

	// Chords with no canonical command; swallowed so the host does not
	// mutate the surface on its own.
	Swallowed key.Binding
}

// DefaultKeyMap returns the default fallback keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		MoveBackward: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "move back"),
		),
		MoveForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "move forward"),
		),
		MoveWordBackward: key.NewBinding(
			key.WithKeys("alt+left", "alt+b"),
			key.WithHelp("alt+←", "word back"),
		),
		MoveWordForward: key.NewBinding(
			key.WithKeys("alt+right", "alt+f"),
			key.WithHelp("alt+→", "word forward"),
		),
		MoveLineUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "line up"),
		),
		MoveLineDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "line down"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("end", "line end"),
		),
		ExtendBackward: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "extend back"),
		),
		ExtendForward: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "extend forward"),
		),
		DeleteBackward: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete back"),
		),
		DeleteForward: key.NewBinding(
			key.WithKeys("delete", "ctrl+d"),
			key.WithHelp("del", "delete forward"),
		),
		DeleteWordBackward: key.NewBinding(
			key.WithKeys("alt+backspace", "ctrl+w"),
			key.WithHelp("alt+⌫", "delete word back"),
		),
		DeleteWordForward: key.NewBinding(
			key.WithKeys("alt+delete", "alt+d"),
			key.WithHelp("alt+del", "delete word forward"),
		),
		DeleteLineBackward: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "delete to line start"),
		),
		DeleteLineForward: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "delete to line end"),
		),
		InsertBreak: key.NewBinding(
			key.WithKeys("enter", "shift+enter"),
			key.WithHelp("enter", "insert break"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y", "ctrl+shift+z"),
			key.WithHelp("ctrl+y", "redo"),
		),
		Swallowed: key.NewBinding(
			key.WithKeys("ctrl+b", "ctrl+i", "ctrl+t"),
		),
	}
}

// HandleKey is the fallback normalization path: physical key chords mapped
// directly to canonical commands on hosts without low-level input events.
func (e *Editor) HandleKey(ev *surface.KeyEvent) {
	if h := e.opts.Handlers.OnKeyDown; h != nil {
		h(ev)
	}
	if ev.Handled() || e.opts.ReadOnly || e.composing || !e.hasEditableTarget(ev.Target) {
		return
	}

	km := DefaultKeyMap()
	msg := ev.Key
	log.Debug(log.CatInput, "keydown", "key", msg.String())

	expanded := false
	if sel := e.doc.Selection(); sel != nil && !sel.IsCollapsed() {
		expanded = true
	}

	switch {
	case key.Matches(msg, km.MoveBackward):
		ev.PreventDefault()
		e.execute(model.Move{Unit: model.UnitCharacter, Reverse: true})
	case key.Matches(msg, km.MoveForward):
		ev.PreventDefault()
		e.execute(model.Move{Unit: model.UnitCharacter})
	case key.Matches(msg, km.MoveWordBackward):
		ev.PreventDefault()
		e.execute(model.Move{Unit: model.UnitWord, Reverse: true})
	case key.Matches(msg, km.MoveWordForward):
		ev.PreventDefault()
		e.execute(model.Move{Unit: model.UnitWord})
	case key.Matches(msg, km.MoveLineUp):
		ev.PreventDefault()
		e.execute(model.Move{Unit: model.UnitLine, Reverse: true})
	case key.Matches(msg, km.MoveLineDown):
		ev.PreventDefault()
		e.execute(model.Move{Unit: model.UnitLine})
	case key.Matches(msg, km.LineStart):
		ev.PreventDefault()
		e.execute(model.Move{Unit: model.UnitLine, Reverse: true, Edge: model.EdgeStart})
	case key.Matches(msg, km.LineEnd):
		ev.PreventDefault()
		e.execute(model.Move{Unit: model.UnitLine, Edge: model.EdgeEnd})

	case key.Matches(msg, km.ExtendBackward):
		ev.PreventDefault()
		e.execute(model.Move{Unit: model.UnitCharacter, Reverse: true, Edge: model.EdgeFocus})
	case key.Matches(msg, km.ExtendForward):
		ev.PreventDefault()
		e.execute(model.Move{Unit: model.UnitCharacter, Edge: model.EdgeFocus})

	case key.Matches(msg, km.DeleteBackward):
		ev.PreventDefault()
		if expanded {
			e.execute(model.DeleteFragment{})
		} else {
			e.execute(model.DeleteBackward{Unit: model.UnitCharacter})
		}
	case key.Matches(msg, km.DeleteForward):
		ev.PreventDefault()
		if expanded {
			e.execute(model.DeleteFragment{})
		} else {
			e.execute(model.DeleteForward{Unit: model.UnitCharacter})
		}
	case key.Matches(msg, km.DeleteWordBackward):
		ev.PreventDefault()
		if expanded {
			e.execute(model.DeleteFragment{})
		} else {
			e.execute(model.DeleteBackward{Unit: model.UnitWord})
		}
	case key.Matches(msg, km.DeleteWordForward):
		ev.PreventDefault()
		if expanded {
			e.execute(model.DeleteFragment{})
		} else {
			e.execute(model.DeleteForward{Unit: model.UnitWord})
		}
	case key.Matches(msg, km.DeleteLineBackward):
		ev.PreventDefault()
		e.execute(model.DeleteBackward{Unit: model.UnitLine})
	case key.Matches(msg, km.DeleteLineForward):
		ev.PreventDefault()
		e.execute(model.DeleteForward{Unit: model.UnitLine})

	case key.Matches(msg, km.InsertBreak):
		ev.PreventDefault()
		e.execute(model.InsertBreak{})

	case key.Matches(msg, km.Undo):
		ev.PreventDefault()
		e.execute(model.Undo{})
	case key.Matches(msg, km.Redo):
		ev.PreventDefault()
		e.execute(model.Redo{})

	case key.Matches(msg, km.Swallowed):
		ev.PreventDefault()
	}
}
