package surface

import tea "github.com/charmbracelet/bubbletea"

// InputType identifies the sub-type of a low-level, pre-mutation input event.
// The names follow the host convention so event sources can pass them through
// unchanged.
type InputType string

const (
	DeleteByComposition    InputType = "deleteByComposition"
	DeleteByCut            InputType = "deleteByCut"
	DeleteByDrag           InputType = "deleteByDrag"
	DeleteContent          InputType = "deleteContent"
	DeleteContentBackward  InputType = "deleteContentBackward"
	DeleteContentForward   InputType = "deleteContentForward"
	DeleteEntireSoftLine   InputType = "deleteEntireSoftLine"
	DeleteHardLineBackward InputType = "deleteHardLineBackward"
	DeleteHardLineForward  InputType = "deleteHardLineForward"
	DeleteSoftLineBackward InputType = "deleteSoftLineBackward"
	DeleteSoftLineForward  InputType = "deleteSoftLineForward"
	DeleteWordBackward     InputType = "deleteWordBackward"
	DeleteWordForward      InputType = "deleteWordForward"
	InsertCompositionText  InputType = "insertCompositionText"
	DeleteCompositionText  InputType = "deleteCompositionText"
	InsertFromComposition  InputType = "insertFromComposition"
	InsertFromDrop         InputType = "insertFromDrop"
	InsertFromPaste        InputType = "insertFromPaste"
	InsertFromYank         InputType = "insertFromYank"
	InsertLineBreak        InputType = "insertLineBreak"
	InsertParagraph        InputType = "insertParagraph"
	InsertReplacementText  InputType = "insertReplacementText"
	InsertText             InputType = "insertText"
)

// IsDeletion reports whether the sub-type is any kind of deletion.
func (t InputType) IsDeletion() bool {
	switch t {
	case DeleteByComposition, DeleteByCut, DeleteByDrag,
		DeleteContent, DeleteContentBackward, DeleteContentForward,
		DeleteEntireSoftLine,
		DeleteHardLineBackward, DeleteHardLineForward,
		DeleteSoftLineBackward, DeleteSoftLineForward,
		DeleteWordBackward, DeleteWordForward:
		return true
	}
	return false
}

// IsCompositionPassthrough reports whether the sub-type belongs to an active
// composition session and must pass through the normalizer untouched.
func (t InputType) IsCompositionPassthrough() bool {
	return t == InsertCompositionText || t == DeleteCompositionText
}

// Event carries the handled state shared by every raw event. An event counts
// as handled once its default action is prevented or its propagation stopped;
// override handlers use this to claim events before normalization.
type Event struct {
	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault suppresses the host's native default action.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// StopPropagation stops the event from reaching further handlers.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// DefaultPrevented reports whether the default action was suppressed.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Handled reports whether a handler already claimed the event.
func (e *Event) Handled() bool { return e.defaultPrevented || e.propagationStopped }

// InputEvent is a low-level, pre-mutation editing event.
type InputEvent struct {
	Event
	Type InputType
	// Target is the surface location the event fired at.
	Target *Node
	// Data carries plain text for text-bearing sub-types.
	Data string
	// Transfer carries structured data for paste/drop-like sub-types.
	Transfer *Transfer
	// TargetRange is the explicit range the host intends to mutate, when it
	// provides one.
	TargetRange *Range
}

// CompositionEvent signals IME composition boundaries.
type CompositionEvent struct {
	Event
	Target *Node
	// Data is the committed text on composition end.
	Data string
}

// KeyEvent is a physical key chord, used on hosts without low-level input
// events.
type KeyEvent struct {
	Event
	Target *Node
	Key    tea.KeyMsg
}

// TextInsertionEvent is the host's higher-level same-turn text notification.
// On fallback hosts plain character insertion arrives here rather than via
// key events, because key-level text is unreliable across layouts and IMEs.
type TextInsertionEvent struct {
	Event
	Target *Node
	Text   string
}

// ClipboardEvent covers copy, cut and paste.
type ClipboardEvent struct {
	Event
	Target   *Node
	Transfer *Transfer
}

// DragEvent covers drag start, drag over and drop.
type DragEvent struct {
	Event
	Target   *Node
	Transfer *Transfer
	// Position is the surface location under the pointer, for drops.
	Position *Position
}

// ClickEvent is a pointer press inside the host window.
type ClickEvent struct {
	Event
	Target   *Node
	Position *Position
}

// FocusEvent signals the surface root gaining or losing focus.
type FocusEvent struct {
	Event
	Target  *Node
	Focused bool
}

// SelectionChangeEvent signals that the native selection moved.
type SelectionChangeEvent struct {
	Event
}
