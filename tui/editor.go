// Package tui presents a mounted editor in a bubbletea program: it renders
// the surface tree into styled terminal lines and translates terminal input
// into the raw events the binding layer normalizes.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/emilford/bindery/editable"
	"github.com/emilford/bindery/internal/log"
	"github.com/emilford/bindery/model"
	"github.com/emilford/bindery/surface"
)

// zoneEditor is the bubblezone ID wrapping the editable region, used to map
// mouse clicks back into surface coordinates.
const zoneEditor = "bindery:editor"

// tickInterval drives the surface scheduler: each tick runs one dispatch
// turn and advances the debounce clock.
const tickInterval = 50 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Options configure the terminal editor.
type Options struct {
	// Platform selects the capability profile (surface.Platform*).
	Platform string

	// Placeholder is shown while the document is empty.
	Placeholder string

	// ReadOnly disables every mutation path.
	ReadOnly bool

	// Executor overrides the command executor the binding drives; nil uses
	// the engine directly. The demo uses this to wrap the engine in a
	// tracing executor.
	Executor model.Executor
}

// ConfigReloadedMsg applies re-read configuration values that can change
// while the program runs.
type ConfigReloadedMsg struct {
	ReadOnly    bool
	Placeholder string
	Theme       Theme
}

// Model is the bubbletea model wrapping one mounted editor over the
// in-memory surface. It is usable as a program root; embedders that already
// call zone.Scan at their own root should wrap View accordingly.
type Model struct {
	editor *editable.Editor
	engine *model.Engine
	surf   *surface.MemorySurface
	opts   Options

	width  int
	height int
}

// New mounts an editor for the given engine over a fresh in-memory surface.
func New(engine *model.Engine, opts Options) Model {
	surf := surface.NewMemorySurface(surface.ResolveCapabilities(opts.Platform))
	exec := model.Executor(engine)
	if opts.Executor != nil {
		exec = opts.Executor
	}
	ed := editable.New(exec, engine, surf, editable.Options{
		ReadOnly:    opts.ReadOnly,
		Placeholder: opts.Placeholder,
	})
	m := Model{
		editor: ed,
		engine: engine,
		surf:   surf,
		opts:   opts,
		width:  80,
		height: 24,
	}
	ed.Mount()
	surf.Focus()
	ed.HandleFocus(&surface.FocusEvent{Target: surf.Root(), Focused: true})
	return m
}

// Editor returns the mounted binding instance.
func (m Model) Editor() *editable.Editor { return m.editor }

// Surface returns the in-memory surface the editor is mounted on.
func (m Model) Surface() *surface.MemorySurface { return m.surf }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// One dispatch turn per tick: deferred work first, then the
		// debounce clock.
		m.surf.Clock().Step()
		m.surf.Clock().Advance(tickInterval)
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.surf.SetViewport(m.surf.ScrollTop(), m.contentHeight())
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.handleKey(msg)
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.FocusMsg:
		m.surf.Focus()
		m.editor.HandleFocus(&surface.FocusEvent{Target: m.surf.Root(), Focused: true})
		return m, nil

	case tea.BlurMsg:
		m.editor.HandleFocus(&surface.FocusEvent{Target: m.surf.Root(), Focused: false})
		m.surf.Blur()
		return m, nil

	case ConfigReloadedMsg:
		m.opts.ReadOnly = msg.ReadOnly
		m.opts.Placeholder = msg.Placeholder
		m.editor.SetReadOnly(msg.ReadOnly)
		m.editor.SetPlaceholder(msg.Placeholder)
		if err := ApplyTheme(msg.Theme); err != nil {
			log.ErrorErr(log.CatConfig, "theme apply failed", err)
		}
		return m, nil
	}
	return m, nil
}

// contentHeight is the viewport height with the status line subtracted.
func (m Model) contentHeight() int {
	if m.height <= 1 {
		return 1
	}
	return m.height - 1
}

// eventTarget is the surface node raw events are reported at: the caret
// container when a selection exists, the root otherwise.
func (m Model) eventTarget() *surface.Node {
	if r := m.surf.Selection().Range(); r != nil && r.Start.Container != nil {
		return r.Start.Container
	}
	return m.surf.Root()
}

// handleKey routes one key press into the binding. Hosts with low-level
// input support get editing keys as input events; everything else, and every
// key on fallback hosts, goes through the key chord path. Plain characters on
// fallback hosts arrive via the text-insertion notification.
func (m Model) handleKey(msg tea.KeyMsg) {
	target := m.eventTarget()

	if msg.Paste {
		m.handlePasteKey(msg, target)
		return
	}

	// Terminals have no native clipboard events; these chords synthesize
	// them so copy and cut reach the fragment codec.
	switch msg.String() {
	case "alt+c":
		m.editor.HandleCopy(&surface.ClipboardEvent{Target: target, Transfer: surface.NewTransfer()})
		return
	case "alt+x":
		m.editor.HandleCut(&surface.ClipboardEvent{Target: target, Transfer: surface.NewTransfer()})
		return
	}

	if m.surf.Capabilities().SupportsBeforeInput {
		if ev, ok := inputEventFor(msg, target); ok {
			m.editor.HandleInput(ev)
			return
		}
		m.editor.HandleKey(&surface.KeyEvent{Target: target, Key: msg})
		return
	}

	kev := &surface.KeyEvent{Target: target, Key: msg}
	m.editor.HandleKey(kev)
	if !kev.Handled() && msg.Type == tea.KeyRunes && !msg.Alt {
		m.editor.HandleTextInsertion(&surface.TextInsertionEvent{
			Target: target,
			Text:   string(msg.Runes),
		})
	}
}

// handlePasteKey converts a bracketed paste into the path the platform
// supports: an insertFromPaste input event, or a clipboard paste event.
func (m Model) handlePasteKey(msg tea.KeyMsg, target *surface.Node) {
	tr := surface.NewTransfer()
	tr.Set(model.TransferTypePlain, string(msg.Runes))

	if m.surf.Capabilities().SupportsBeforeInput {
		m.editor.HandleInput(&surface.InputEvent{
			Type:     surface.InsertFromPaste,
			Target:   target,
			Transfer: tr,
		})
		return
	}
	m.editor.HandlePaste(&surface.ClipboardEvent{Target: target, Transfer: tr})
}

// inputEventFor translates an editing key chord into the low-level input
// event a modern host would deliver. Navigation, history and formatting
// chords are not input events; they return false and take the key path.
func inputEventFor(msg tea.KeyMsg, target *surface.Node) (*surface.InputEvent, bool) {
	mk := func(t surface.InputType) (*surface.InputEvent, bool) {
		return &surface.InputEvent{Type: t, Target: target}, true
	}

	switch msg.String() {
	case "enter":
		return mk(surface.InsertParagraph)
	case "shift+enter":
		return mk(surface.InsertLineBreak)
	case "backspace":
		return mk(surface.DeleteContentBackward)
	case "delete", "ctrl+d":
		return mk(surface.DeleteContentForward)
	case "alt+backspace", "ctrl+w":
		return mk(surface.DeleteWordBackward)
	case "alt+delete", "alt+d":
		return mk(surface.DeleteWordForward)
	case "ctrl+u":
		return mk(surface.DeleteSoftLineBackward)
	case "ctrl+k":
		return mk(surface.DeleteSoftLineForward)
	}

	if (msg.Type == tea.KeyRunes && !msg.Alt) || msg.Type == tea.KeySpace {
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		return &surface.InputEvent{
			Type:   surface.InsertText,
			Target: target,
			Data:   text,
		}, true
	}
	return nil, false
}

// handleMouse maps terminal mouse input onto the surface: wheel scrolls the
// viewport, a left press places the caret at the clicked cell.
func (m Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if top := m.surf.ScrollTop(); top > 0 {
			m.surf.SetViewport(top-1, m.contentHeight())
		}
		return
	case tea.MouseButtonWheelDown:
		m.surf.SetViewport(m.surf.ScrollTop()+1, m.contentHeight())
		return
	case tea.MouseButtonLeft:
	default:
		return
	}
	if msg.Action != tea.MouseActionPress {
		return
	}

	z := zone.Get(zoneEditor)
	if z == nil || !z.InBounds(msg) {
		return
	}
	x, y := z.Pos(msg)

	pos, ok := m.positionAt(y+m.surf.ScrollTop(), x)
	if !ok {
		return
	}

	m.surf.Focus()
	m.editor.HandleFocus(&surface.FocusEvent{Target: m.surf.Root(), Focused: true})

	ev := &surface.ClickEvent{Target: pos.Container, Position: &pos}
	m.editor.HandleClick(ev)
	if ev.Handled() {
		return
	}

	// Mimic a host placing the caret: mutate the native selection and let
	// the pull path synchronize the model.
	m.surf.Selection().SetRange(surface.Range{Start: pos, End: pos})
}
