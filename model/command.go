package model

// Unit is the granularity of a deletion or movement.
type Unit int

const (
	UnitCharacter Unit = iota
	UnitWord
	UnitLine
	UnitBlock
)

func (u Unit) String() string {
	switch u {
	case UnitCharacter:
		return "character"
	case UnitWord:
		return "word"
	case UnitLine:
		return "line"
	case UnitBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Edge selects which end of the selection a movement operates on.
type Edge int

const (
	// EdgeBoth moves anchor and focus together (the default).
	EdgeBoth Edge = iota
	EdgeAnchor
	EdgeFocus
	EdgeStart
	EdgeEnd
)

// Transfer payload types. The structured fragment payload alone reconstructs
// the copied sub-tree; markup and plain text exist for interoperability with
// targets that do not understand the model.
const (
	TransferTypeFragment = "application/x-bindery-fragment"
	TransferTypeMarkup   = "text/html"
	TransferTypePlain    = "text/plain"
)

// TransferData is the read side of a clipboard/drag transfer object. It is
// declared here rather than in the surface package so commands stay free of
// host types.
type TransferData interface {
	// Get returns the payload stored under the given type, or "" if absent.
	Get(payloadType string) string
	// Types lists the payload types present, in the order they were set.
	Types() []string
}

// Command is one of the canonical editing intents emitted by the binding
// layer. The set is closed: the normalizer reduces every raw host signal to
// one of these.
type Command interface {
	// Name returns the canonical command name, e.g. "delete_backward".
	Name() string
}

// Select sets the model selection.
type Select struct {
	Range Range
}

// Deselect clears the model selection.
type Deselect struct{}

// DeleteFragment removes the content spanned by the current expanded
// selection. Direction is irrelevant: a non-collapsed range is being replaced.
type DeleteFragment struct{}

// DeleteBackward deletes one unit before a collapsed selection.
type DeleteBackward struct {
	Unit Unit
}

// DeleteForward deletes one unit after a collapsed selection.
type DeleteForward struct {
	Unit Unit
}

// InsertBreak splits the current block at the selection.
type InsertBreak struct{}

// InsertText inserts plain text at the selection.
type InsertText struct {
	Text string
}

// InsertData inserts the contents of a transfer object at the selection.
type InsertData struct {
	Data TransferData
}

// Undo forwards undo intent to the command engine.
type Undo struct{}

// Redo forwards redo intent to the command engine.
type Redo struct{}

// Move adjusts the selection by the given unit.
type Move struct {
	Unit    Unit
	Reverse bool
	Edge    Edge
}

func (Select) Name() string         { return "select" }
func (Deselect) Name() string       { return "deselect" }
func (DeleteFragment) Name() string { return "delete_fragment" }
func (DeleteBackward) Name() string { return "delete_backward" }
func (DeleteForward) Name() string  { return "delete_forward" }
func (InsertBreak) Name() string    { return "insert_break" }
func (InsertText) Name() string     { return "insert_text" }
func (InsertData) Name() string     { return "insert_data" }
func (Undo) Name() string           { return "undo" }
func (Redo) Name() string           { return "redo" }
func (Move) Name() string           { return "move" }

// Executor is the single command-execution entry point the binding layer
// drives. The reference implementation is Engine; embedders may wrap or
// replace it.
type Executor interface {
	Execute(cmd Command) error
}

// DocumentReader exposes the read-side the binding layer needs from the model.
type DocumentReader interface {
	Root() *Element
	Selection() *Range
}
