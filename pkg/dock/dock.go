// Package dock implements a docking layout engine: a tree of split
// containers and tab containers holding host-owned panels. The engine is
// pure tree surgery; rendering, hit testing and drag recognition belong to
// the host, which calls Dock/Undock with an abstract position and sibling
// and re-reads the tree afterwards.
//
// All operations are synchronous and assume a single-threaded caller (the
// host UI loop). The engine performs no internal locking.
package dock

// Orientation indicates the axis a split pane lays its children along.
type Orientation int

const (
	Horizontal Orientation = iota // children side by side
	Vertical                      // children stacked top to bottom
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// DockPos indicates where a panel is placed relative to a sibling.
type DockPos int

const (
	Center DockPos = iota
	Left
	Right
	Top
	Bottom
)

// String returns the dock position name.
func (p DockPos) String() string {
	switch p {
	case Center:
		return "Center"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Top:
		return "Top"
	case Bottom:
		return "Bottom"
	default:
		return "Unknown"
	}
}

// orientation returns the split axis a directional dock requests.
// Center has no axis; callers handle it before asking.
func (p DockPos) orientation() Orientation {
	if p == Left || p == Right {
		return Horizontal
	}
	return Vertical
}

// Geometry is a screen-space rectangle for floating panels and the owning
// window. The engine never interprets it; it only round-trips through the
// layout document.
type Geometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is an offset applied when a panel starts floating.
type Point struct {
	X float64
	Y float64
}

// Node is an element of the layout tree: a *Panel leaf or one of the two
// container kinds (*SplitPane, *TabPane). The set is closed; tree-walking
// code switches on the concrete type.
type Node interface {
	node()
}

// ContentPane is the capability shared by the two container kinds.
type ContentPane interface {
	Node

	// Children returns the ordered child list. The returned slice is the
	// container's own; callers must not mutate it.
	Children() []Node

	// Parent returns the enclosing container, nil for the tree root.
	// The reference is non-owning; ownership flows root to leaves.
	Parent() ContentPane

	// SetParent updates the parent back-reference.
	SetParent(ContentPane)

	// Replace substitutes newChild for oldChild in place, preserving
	// position. Returns false when oldChild is not a direct child.
	Replace(oldChild, newChild Node) bool
}

// defaultPanelExtent stands in for a panel preferred size that was never
// set, so divider weighting stays well defined.
const defaultPanelExtent = 100.0

// preferredExtent computes the preferred size of a subtree along the given
// axis: panels report their preferred size, split panes sum along their own
// axis and take the max across it, tab panes take the max of their tabs.
func preferredExtent(n Node, o Orientation) float64 {
	switch c := n.(type) {
	case *Panel:
		w, h := c.PreferredSize()
		ext := w
		if o == Vertical {
			ext = h
		}
		if ext <= 0 {
			ext = defaultPanelExtent
		}
		return ext
	case *SplitPane:
		var sum, max float64
		for _, child := range c.items {
			ext := preferredExtent(child, o)
			sum += ext
			if ext > max {
				max = ext
			}
		}
		if c.orientation == o {
			return sum
		}
		return max
	case *TabPane:
		var max float64
		for _, tab := range c.tabs {
			if ext := preferredExtent(tab, o); ext > max {
				max = ext
			}
		}
		if max <= 0 {
			max = defaultPanelExtent
		}
		return max
	default:
		return defaultPanelExtent
	}
}
