package dock

// SplitPane lays out an ordered sequence of children along one axis with a
// fractional divider between each adjacent pair. Divider positions are only
// meaningful while the pane holds at least two children; insertion
// recomputes the affected divider from relative preferred sizes instead of
// splitting evenly.
type SplitPane struct {
	parent      ContentPane
	orientation Orientation
	items       []Node
	dividers    []float64 // len(items)-1 fractions in [0,1]
}

func (s *SplitPane) node() {}

// NewSplitPane creates a horizontal split pane holding the given children.
func NewSplitPane(children ...Node) *SplitPane {
	s := &SplitPane{}
	for _, child := range children {
		s.appendChild(child)
	}
	return s
}

// Orientation returns the axis children are laid out along.
func (s *SplitPane) Orientation() Orientation { return s.orientation }

// SetOrientation sets the layout axis. Callers re-nesting an already
// populated pane use the tree's dock operation instead; this only flips the
// axis in place.
func (s *SplitPane) SetOrientation(o Orientation) { s.orientation = o }

// Children returns the ordered child list.
func (s *SplitPane) Children() []Node { return s.items }

// Parent returns the enclosing container, nil at the root.
func (s *SplitPane) Parent() ContentPane { return s.parent }

// SetParent updates the non-owning parent back-reference.
func (s *SplitPane) SetParent(p ContentPane) { s.parent = p }

// DividerPositions returns a copy of the divider fractions.
func (s *SplitPane) DividerPositions() []float64 {
	out := make([]float64, len(s.dividers))
	copy(out, s.dividers)
	return out
}

// SetDividerPositions overwrites the divider fractions. Extra values are
// ignored; missing ones keep their current value.
func (s *SplitPane) SetDividerPositions(positions []float64) {
	for i, pos := range positions {
		if i >= len(s.dividers) {
			break
		}
		s.dividers[i] = pos
	}
}

func (s *SplitPane) indexOf(n Node) int {
	for i, item := range s.items {
		if item == n {
			return i
		}
	}
	return -1
}

// appendChild adds a child at the tail without the relative divider rule,
// used when building a pane wholesale (construction, restore).
func (s *SplitPane) appendChild(n Node) {
	s.items = append(s.items, n)
	if len(s.items) > 1 {
		s.dividers = append(s.dividers, 0.5)
	}
	if cp, ok := n.(ContentPane); ok {
		cp.SetParent(s)
	}
}

// insertAt splices a child in at idx together with the divider that forms
// its new boundary.
func (s *SplitPane) insertAt(idx int, n Node, dividerIdx int, dividerPos float64) {
	s.items = append(s.items, nil)
	copy(s.items[idx+1:], s.items[idx:])
	s.items[idx] = n

	if len(s.items) > 1 {
		if dividerIdx < 0 {
			dividerIdx = 0
		}
		if max := len(s.items) - 2; dividerIdx > max {
			dividerIdx = max
		}
		s.dividers = append(s.dividers, 0)
		copy(s.dividers[dividerIdx+1:], s.dividers[dividerIdx:])
		s.dividers[dividerIdx] = dividerPos
	}

	if cp, ok := n.(ContentPane); ok {
		cp.SetParent(s)
	}
}

// addRelative inserts node next to sibling per the dock position, weighting
// the new divider by preferred size so a small panel docked at an edge gets
// roughly its preferred share rather than an even split. A nil sibling (or
// the tree root passed through) targets the head or tail of the pane.
func (s *SplitPane) addRelative(root, sibling, node Node, pos DockPos) {
	var magnitude float64
	for _, item := range s.items {
		magnitude += preferredExtent(item, s.orientation)
	}
	extent := preferredExtent(node, s.orientation)

	switch pos {
	case Left, Top:
		idx := 0
		if sibling != nil && sibling != root {
			if i := s.indexOf(sibling); i >= 0 {
				idx = i
			}
		}
		s.insertAt(idx, node, idx, extent/(magnitude+extent))
	case Right, Bottom:
		idx := len(s.items)
		if sibling != nil && sibling != root {
			if i := s.indexOf(sibling); i >= 0 {
				idx = i + 1
			}
		}
		s.insertAt(idx, node, idx-1, 1-extent/(magnitude+extent))
	}
}

// RemoveChild removes a direct child by identity, dropping the divider that
// formed its boundary. Returns false when the node is not a direct child.
// The caller (the layout tree) collapses the pane when it ends up with
// fewer than two children.
func (s *SplitPane) RemoveChild(n Node) bool {
	idx := s.indexOf(n)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)

	if len(s.dividers) > 0 {
		d := idx
		if d > len(s.dividers)-1 {
			d = len(s.dividers) - 1
		}
		s.dividers = append(s.dividers[:d], s.dividers[d+1:]...)
	}

	if cp, ok := n.(ContentPane); ok && cp.Parent() == ContentPane(s) {
		cp.SetParent(nil)
	}
	return true
}

// Replace substitutes newChild for oldChild preserving position and the
// surrounding divider values.
func (s *SplitPane) Replace(oldChild, newChild Node) bool {
	idx := s.indexOf(oldChild)
	if idx < 0 {
		return false
	}
	s.items[idx] = newChild
	if cp, ok := newChild.(ContentPane); ok {
		cp.SetParent(s)
	}
	if cp, ok := oldChild.(ContentPane); ok && cp.Parent() == ContentPane(s) {
		cp.SetParent(nil)
	}
	return true
}
