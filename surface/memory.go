package surface

// Surface is what the binding layer needs from a host: the mounted root, the
// native selection, focus control, viewport scrolling, the dispatch-loop
// scheduler and the platform capability flags.
type Surface interface {
	Root() *Node
	// Selection returns the host selection object, or nil when the host
	// cannot produce one right now.
	Selection() *Selection
	// ActiveElement returns the node that currently holds focus.
	ActiveElement() *Node
	// Focus moves focus to the surface root.
	Focus()
	// InViewport reports whether the position is currently visible.
	InViewport(Position) bool
	// ScrollIntoView scrolls the position's block into the viewport.
	ScrollIntoView(Position)
	Scheduler() Scheduler
	Capabilities() Capabilities
}

// MemorySurface is the reference Surface: an in-memory native tree with a
// deterministic scheduler. The terminal adapter presents it; tests drive it
// directly.
type MemorySurface struct {
	root    *Node
	sel     *Selection
	active  *Node
	focused bool
	sched   *StepScheduler
	caps    Capabilities

	scrollTop  int
	viewHeight int

	selectionListeners []func()
}

// NewMemorySurface builds a surface with the given capability profile.
func NewMemorySurface(caps Capabilities) *MemorySurface {
	s := &MemorySurface{
		sched:      NewStepScheduler(),
		caps:       caps,
		viewHeight: 24,
	}
	s.sel = &Selection{onChange: s.notifySelectionChange}
	return s
}

// Mount installs the editable root node. A focused surface keeps focus on
// the replacement root, matching hosts where re-rendering the editable
// region does not blur it.
func (s *MemorySurface) Mount(root *Node) {
	s.root = root
	if s.focused {
		s.active = root
	}
}

// Unmount removes the root and drops selection state.
func (s *MemorySurface) Unmount() {
	s.root = nil
	s.active = nil
	s.focused = false
	s.sel.rng = nil
}

// Root implements Surface.
func (s *MemorySurface) Root() *Node { return s.root }

// Selection implements Surface.
func (s *MemorySurface) Selection() *Selection { return s.sel }

// ActiveElement implements Surface.
func (s *MemorySurface) ActiveElement() *Node { return s.active }

// Focus implements Surface.
func (s *MemorySurface) Focus() {
	s.active = s.root
	s.focused = true
}

// Blur clears focus.
func (s *MemorySurface) Blur() {
	s.active = nil
	s.focused = false
}

// SetActive points focus at an arbitrary node, for tests simulating focus
// stolen by other widgets.
func (s *MemorySurface) SetActive(n *Node) {
	s.active = n
	s.focused = n != nil && s.root != nil && s.root.Contains(n)
}

// Scheduler implements Surface.
func (s *MemorySurface) Scheduler() Scheduler { return s.sched }

// Clock returns the deterministic scheduler for tests to drive.
func (s *MemorySurface) Clock() *StepScheduler { return s.sched }

// Capabilities implements Surface.
func (s *MemorySurface) Capabilities() Capabilities { return s.caps }

// SetViewport configures the visible row window.
func (s *MemorySurface) SetViewport(top, height int) {
	s.scrollTop = top
	s.viewHeight = height
}

// ScrollTop returns the first visible row.
func (s *MemorySurface) ScrollTop() int { return s.scrollTop }

// rowOf maps a position to the index of the top-level block containing it.
func (s *MemorySurface) rowOf(p Position) int {
	if s.root == nil || p.Container == nil {
		return 0
	}
	for i, c := range s.root.Children {
		if c.Contains(p.Container) {
			return i
		}
	}
	return 0
}

// InViewport implements Surface.
func (s *MemorySurface) InViewport(p Position) bool {
	row := s.rowOf(p)
	return row >= s.scrollTop && row < s.scrollTop+s.viewHeight
}

// ScrollIntoView implements Surface.
func (s *MemorySurface) ScrollIntoView(p Position) {
	row := s.rowOf(p)
	if row < s.scrollTop {
		s.scrollTop = row
	} else if row >= s.scrollTop+s.viewHeight {
		s.scrollTop = row - s.viewHeight + 1
	}
}

// AddSelectionListener registers a callback fired whenever the native
// selection mutates, including mutations performed by the binding itself.
func (s *MemorySurface) AddSelectionListener(fn func()) {
	s.selectionListeners = append(s.selectionListeners, fn)
}

func (s *MemorySurface) notifySelectionChange() {
	for _, fn := range s.selectionListeners {
		fn()
	}
}
