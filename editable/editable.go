// Package editable binds a document model to a host surface: it keeps the
// model selection and the native selection synchronized, normalizes the
// host's raw input signals into canonical editing commands, tracks IME
// composition sessions and encodes clipboard fragments. It owns no document
// semantics; every mutation goes through the command engine it is given.
package editable

import (
	"context"
	"time"

	"github.com/emilford/bindery/internal/log"
	"github.com/emilford/bindery/internal/pubsub"
	"github.com/emilford/bindery/model"
	"github.com/emilford/bindery/surface"
)

// selectionPullDebounce coalesces bursts of native selection-change
// notifications and lets the native selection settle before it is read back.
const selectionPullDebounce = 100 * time.Millisecond

const selectionPullID = "selection-pull"

// Handlers are the embedder's optional per-event overrides. Each handler runs
// before normalization and may claim the event by preventing its default
// action or stopping propagation; a claimed event is not normalized.
type Handlers struct {
	OnBeforeInput      func(*surface.InputEvent)
	OnKeyDown          func(*surface.KeyEvent)
	OnTextInsertion    func(*surface.TextInsertionEvent)
	OnCompositionStart func(*surface.CompositionEvent)
	OnCompositionEnd   func(*surface.CompositionEvent)
	OnCopy             func(*surface.ClipboardEvent)
	OnCut              func(*surface.ClipboardEvent)
	OnPaste            func(*surface.ClipboardEvent)
	OnDragStart        func(*surface.DragEvent)
	OnDragOver         func(*surface.DragEvent)
	OnDrop             func(*surface.DragEvent)
	OnClick            func(*surface.ClickEvent)
	OnFocus            func(*surface.FocusEvent)
	OnBlur             func(*surface.FocusEvent)
	OnSelectionChange  func(*surface.SelectionChangeEvent)
}

// Options configure an Editor.
type Options struct {
	// ReadOnly disables every mutation path and renders the surface
	// non-editable.
	ReadOnly bool

	// Placeholder is rendered when the document is a single empty text run.
	Placeholder string

	// Decorate produces ephemeral ranges regenerated on every render pass.
	Decorate func(root *model.Element) []model.Range

	// Handlers are the embedder's per-event overrides.
	Handlers Handlers

	// RenderElement and RenderLeaf are pure presentation hooks, invoked with
	// the freshly built native node so embedders can style it.
	RenderElement func(el *model.Element, n *surface.Node)
	RenderLeaf    func(t *model.Text, n *surface.Node)
}

// Editor is one mounted binding instance. All methods must be called from the
// host's dispatch loop; the per-instance flags below are single-writer by
// serial dispatch and never locked.
type Editor struct {
	exec model.Executor
	doc  model.DocumentReader
	surf surface.Surface
	opts Options

	index *nodeIndex
	caps  surface.Capabilities

	// Session state. updatingSelection is the push guard: while set, the
	// pull path swallows the selection-change notification that the push's
	// own range mutation triggers.
	composing         bool
	updatingSelection bool
	focused           bool
	latestElement     *surface.Node

	mounted   bool
	listening bool
	broker    *pubsub.Broker[string]
}

// selectionListenable is implemented by surfaces that can deliver native
// selection-change notifications directly.
type selectionListenable interface {
	AddSelectionListener(func())
}

// New builds an Editor over the given engine and surface. The engine must
// also satisfy model.DocumentReader; the reference model.Engine does.
func New(exec model.Executor, doc model.DocumentReader, surf surface.Surface, opts Options) *Editor {
	return &Editor{
		exec:   exec,
		doc:    doc,
		surf:   surf,
		opts:   opts,
		caps:   surf.Capabilities(),
		index:  newNodeIndex(),
		broker: pubsub.NewBroker[string](),
	}
}

// Mount renders the document into the surface and starts listening for
// native selection changes. The identity index is rebuilt from scratch.
func (e *Editor) Mount() {
	e.mounted = true
	e.render()
	// Listener registration is once per editor; surfaces only append, so a
	// remount must not stack a duplicate.
	if l, ok := e.surf.(selectionListenable); ok && !e.listening {
		e.listening = true
		l.AddSelectionListener(func() {
			e.HandleSelectionChange(&surface.SelectionChangeEvent{})
		})
	}
	log.Debug(log.CatSurface, "mounted", "read_only", e.opts.ReadOnly)
}

// Unmount detaches from the surface and drops the identity index.
func (e *Editor) Unmount() {
	e.mounted = false
	e.focused = false
	e.latestElement = nil
	e.index.clear()
	e.surf.Scheduler().CancelDebounce(selectionPullID)
	log.Debug(log.CatSurface, "unmounted")
}

// Composing reports whether an IME composition session is active.
func (e *Editor) Composing() bool { return e.composing }

// Focused reports whether the surface root held focus at the last check.
func (e *Editor) Focused() bool { return e.focused }

// ReadOnly reports whether the editor rejects mutations.
func (e *Editor) ReadOnly() bool { return e.opts.ReadOnly }

// SetReadOnly flips the read-only gate at runtime and re-renders so the
// surface root's editability matches.
func (e *Editor) SetReadOnly(readOnly bool) {
	if e.opts.ReadOnly == readOnly {
		return
	}
	e.opts.ReadOnly = readOnly
	e.render()
	log.Debug(log.CatSurface, "read-only changed", "read_only", readOnly)
}

// SetPlaceholder replaces the empty-document placeholder and re-renders.
func (e *Editor) SetPlaceholder(placeholder string) {
	if e.opts.Placeholder == placeholder {
		return
	}
	e.opts.Placeholder = placeholder
	e.render()
}

// Events returns a listener for editor notifications: content changes,
// selection changes and clipboard writes.
func (e *Editor) Events(ctx context.Context) *pubsub.ContinuousListener[string] {
	return pubsub.NewContinuousListener(ctx, e.broker)
}

// Subscribe returns a raw event channel, for embedders outside a tea loop.
func (e *Editor) Subscribe(ctx context.Context) <-chan pubsub.Event[string] {
	return e.broker.Subscribe(ctx)
}

// Close releases the editor's event broker.
func (e *Editor) Close() {
	e.broker.Close()
}

// Execute runs a canonical command through the engine and synchronizes the
// surface afterward. This is the embedder's programmatic entry point; raw
// host events arrive through the Handle methods instead.
func (e *Editor) Execute(cmd model.Command) {
	if e.opts.ReadOnly {
		return
	}
	e.execute(cmd)
}

// execute runs one canonical command, re-renders and pushes the resulting
// model selection back to the surface.
func (e *Editor) execute(cmd model.Command) {
	if err := e.exec.Execute(cmd); err != nil {
		// Handler boundaries never propagate errors; a failed command leaves
		// the previous state untouched and the next cycle re-evaluates.
		log.ErrorErr(log.CatInput, "command failed", err, "command", cmd.Name())
		return
	}
	log.Debug(log.CatInput, "command", "name", cmd.Name())
	switch cmd.(type) {
	case model.Select, model.Deselect, model.Move:
		e.broker.Publish(pubsub.SelectionChangedEvent, cmd.Name())
	default:
		e.broker.Publish(pubsub.ContentChangedEvent, cmd.Name())
		e.render()
	}
	e.pushSelection()
}
