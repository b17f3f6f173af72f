package surface

import "fmt"

// Position is one endpoint of a native range: a container node plus an offset
// within it (runes for text nodes, child index for elements).
type Position struct {
	Container *Node
	Offset    int
}

// Equal reports whether two positions are identical.
func (p Position) Equal(q Position) bool {
	return p.Container == q.Container && p.Offset == q.Offset
}

func (p Position) String() string {
	if p.Container == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s@%d", p.Container.Tag, p.Offset)
}

// Range is the host-coordinate representation of a selection.
type Range struct {
	Start Position
	End   Position
}

// Collapsed reports whether the range spans nothing.
func (r Range) Collapsed() bool {
	return r.Start.Equal(r.End)
}

// Equal reports whether two ranges cover the same span: either identical or
// exactly endpoint-swapped. Hosts report direction inconsistently, so the
// swapped form must compare equal.
func (r Range) Equal(o Range) bool {
	if r.Start.Equal(o.Start) && r.End.Equal(o.End) {
		return true
	}
	return r.Start.Equal(o.End) && r.End.Equal(o.Start)
}

// Selection is the host surface's selection object. A nil *Selection models a
// host that cannot currently produce one. Mutations fire the host's
// selection-change notification, including mutations performed by the binding
// itself — that self-trigger is the reentrancy hazard the push guard exists
// for.
type Selection struct {
	rng      *Range
	onChange func()
}

// Range returns the current native range, or nil when the selection is empty.
func (s *Selection) Range() *Range {
	if s == nil {
		return nil
	}
	return s.rng
}

// IsEmpty reports whether no range is set.
func (s *Selection) IsEmpty() bool {
	return s == nil || s.rng == nil
}

// Clear removes any range.
func (s *Selection) Clear() {
	if s == nil {
		return
	}
	changed := s.rng != nil
	s.rng = nil
	if changed {
		s.notify()
	}
}

// SetRange replaces the selection with the given range.
func (s *Selection) SetRange(r Range) {
	if s == nil {
		return
	}
	s.rng = &r
	s.notify()
}

func (s *Selection) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
