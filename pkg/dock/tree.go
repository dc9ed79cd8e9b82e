package dock

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/docktree/docktree/internal/logging"
)

// LayoutTree owns a single root node and implements dock, undock and the
// container collapsing that keeps the tree valid after removals. Containers
// are owned exclusively by the tree; panels are attached and detached but
// outlive it. Parent back-references inside containers are non-owning.
//
// All mutations are synchronous tree walks bounded by tree depth, assumed
// to run on one logical UI thread. Failed operations leave the tree
// unmodified.
type LayoutTree struct {
	root Node

	// undocked tracks panels detached from the tree, including floating
	// ones. Feeds the floating-nodes record on save.
	undocked []*Panel

	logger zerolog.Logger
}

// NewLayoutTree creates an empty layout tree. The context supplies the
// logger the tree's operations report through.
func NewLayoutTree(ctx context.Context) *LayoutTree {
	log := logging.FromContext(ctx)
	return &LayoutTree{
		logger: log.With().Str("component", "layout-tree").Logger(),
	}
}

// Root returns the current root node: nil, a bare *Panel, or a container.
func (t *LayoutTree) Root() Node { return t.root }

// IsEmpty reports whether the tree holds no nodes.
func (t *LayoutTree) IsEmpty() bool { return t.root == nil }

// isRoot reports whether n is the tree's root node.
func (t *LayoutTree) isRoot(n Node) bool { return t.root != nil && t.root == n }

// Walk traverses the tree preorder calling fn for each node. Traversal
// stops early when fn returns false for a subtree.
func (t *LayoutTree) Walk(fn func(Node) bool) {
	walkNode(t.root, fn)
}

func walkNode(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	if cp, ok := n.(ContentPane); ok {
		for _, child := range cp.Children() {
			walkNode(child, fn)
		}
	}
}

// Panels returns every panel reachable from the root in traversal order.
func (t *LayoutTree) Panels() []*Panel {
	var panels []*Panel
	t.Walk(func(n Node) bool {
		if p, ok := n.(*Panel); ok {
			panels = append(panels, p)
		}
		return true
	})
	return panels
}

// Contains reports whether n is reachable from the root.
func (t *LayoutTree) Contains(n Node) bool {
	found := false
	t.Walk(func(cur Node) bool {
		if cur == n {
			found = true
			return false
		}
		return true
	})
	return found
}

// UndockedPanels returns the panels currently detached from the tree.
func (t *LayoutTree) UndockedPanels() []*Panel {
	out := make([]*Panel, len(t.undocked))
	copy(out, t.undocked)
	return out
}

// FloatingPanels returns the detached panels that are floating in their own
// windows.
func (t *LayoutTree) FloatingPanels() []*Panel {
	var out []*Panel
	for _, p := range t.undocked {
		if p.floating {
			out = append(out, p)
		}
	}
	return out
}

// siblingParent finds the container whose direct children include sibling,
// depth first from the root. Returns nil when sibling is not in the tree.
func (t *LayoutTree) siblingParent(sibling Node) ContentPane {
	rootPane, ok := t.root.(ContentPane)
	if !ok {
		return nil
	}

	var found ContentPane
	stack := []ContentPane{rootPane}
	for len(stack) > 0 {
		pane := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, child := range pane.Children() {
			if child == sibling {
				found = pane
			} else if cp, ok := child.(ContentPane); ok {
				stack = append(stack, cp)
			}
		}
	}
	return found
}

// Dock attaches node at the given position relative to sibling. A nil
// sibling, or the root itself, targets the whole tree. Center docking
// groups node with the sibling panel in a tab pane; directional docking
// splits along the requested axis, re-nesting locally around the affected
// sibling when the existing split runs the other way.
func (t *LayoutTree) Dock(node *Panel, pos DockPos, sibling Node) error {
	if node == nil {
		return ErrNilPanel
	}
	if t.Contains(node) {
		return fmt.Errorf("dock %q: %w", node.title, ErrAlreadyDocked)
	}

	// First panel: it becomes the root's only child.
	if t.root == nil {
		t.root = NewSplitPane(node)
		t.markDocked(node, pos, sibling)
		t.logger.Debug().Str("panel", node.title).Msg("docked as initial root")
		return nil
	}

	wholeRoot := sibling == nil || sibling == t.root
	var pane ContentPane
	if !wholeRoot {
		pane = t.siblingParent(sibling)
		if pane == nil {
			return fmt.Errorf("dock %q: %w", node.title, ErrSiblingNotFound)
		}
	}

	// A bare panel root (left by collapse) is re-wrapped so every dock
	// targets a container. The old root panel becomes the sibling.
	if rootPanel, ok := t.root.(*Panel); ok {
		wrapped := NewSplitPane(rootPanel)
		t.root = wrapped
		pane = wrapped
		sibling = rootPanel
		wholeRoot = false
	} else if wholeRoot {
		pane = t.root.(ContentPane)
		sibling = t.root
	}

	// The panel remembers the sibling resolved here; the reorient step
	// below may reassign sibling to an interposed container.
	dockedAgainst := sibling

	if pos == Center {
		if err := t.dockCenter(node, pane, sibling); err != nil {
			return err
		}
		t.markDocked(node, pos, dockedAgainst)
		return nil
	}

	requested := pos.orientation()
	var split *SplitPane

	switch c := pane.(type) {
	case *SplitPane:
		split, sibling = t.reorient(c, sibling, requested, wholeRoot)
	case *TabPane:
		// The whole tab pane is the unit being split.
		parent := c.Parent()
		if parent == nil {
			// Tab pane promoted to root by a previous collapse.
			wrapped := NewSplitPane(c)
			t.root = wrapped
			parent = wrapped
		}
		contentParent, ok := parent.(*SplitPane)
		if !ok {
			return fmt.Errorf("dock %q: tab pane parent is not a split pane: %w",
				node.title, ErrCenterTarget)
		}
		split, sibling = t.reorient(contentParent, Node(c), requested, false)
	}

	split.addRelative(t.root, sibling, node, pos)
	t.markDocked(node, pos, dockedAgainst)
	t.logger.Debug().
		Str("panel", node.title).
		Str("pos", pos.String()).
		Str("orientation", split.orientation.String()).
		Msg("docked")
	return nil
}

// dockCenter groups node with the sibling panel under a tab pane,
// preserving the surrounding split's divider positions. A sibling already
// inside a tab pane gains the node as another tab instead.
func (t *LayoutTree) dockCenter(node *Panel, pane ContentPane, sibling Node) error {
	if tp, ok := pane.(*TabPane); ok {
		tp.AddPanel(node)
		t.logger.Debug().Str("panel", node.title).Msg("docked into existing tab pane")
		return nil
	}

	split, ok := pane.(*SplitPane)
	if !ok {
		return fmt.Errorf("dock %q center: %w", node.title, ErrCenterTarget)
	}
	sibPanel, ok := sibling.(*Panel)
	if !ok {
		return fmt.Errorf("dock %q center: sibling is not a panel: %w",
			node.title, ErrCenterTarget)
	}

	dividers := split.DividerPositions()

	tab := NewTabPane()
	tab.AddPanel(sibPanel)
	tab.AddPanel(node)
	split.Replace(sibPanel, tab)
	split.SetDividerPositions(dividers)

	t.logger.Debug().
		Str("panel", node.title).
		Str("sibling", sibPanel.title).
		Msg("docked center into new tab pane")
	return nil
}

// reorient ensures a split pane running along the requested axis around the
// given unit. A pane with at least two children and the wrong axis gets a
// new split interposed around just the affected unit, so unrelated siblings
// at the outer level stay put; the whole pane is wrapped only when the dock
// targets the tree root. Returns the pane to insert into and the node the
// insertion is relative to.
func (t *LayoutTree) reorient(split *SplitPane, unit Node, requested Orientation, wholeRoot bool) (*SplitPane, Node) {
	if split.orientation == requested {
		return split, unit
	}
	if len(split.items) < 2 {
		split.orientation = requested
		return split, unit
	}

	wrapper := &SplitPane{orientation: requested}
	if t.isRoot(split) && wholeRoot {
		wrapper.appendChild(split)
		t.root = wrapper
		return wrapper, split
	}
	split.Replace(unit, wrapper)
	wrapper.appendChild(unit)
	return wrapper, unit
}

// Undock detaches node from the tree, dissolving a tab pane left with one
// tab and collapsing splits left with fewer than two children.
func (t *LayoutTree) Undock(node *Panel) error {
	if node == nil {
		return ErrNilPanel
	}

	// A bare panel root empties the tree.
	if t.root == Node(node) {
		t.root = nil
		t.markUndocked(node)
		t.logger.Debug().Str("panel", node.title).Msg("undocked root panel, tree empty")
		return nil
	}

	pane := t.siblingParent(node)
	if pane == nil {
		return fmt.Errorf("undock %q: %w", node.title, ErrNotDocked)
	}

	switch c := pane.(type) {
	case *SplitPane:
		c.RemoveChild(node)
	case *TabPane:
		c.RemovePanel(node)
	}
	t.collapse(pane)

	t.markUndocked(node)
	t.logger.Debug().Str("panel", node.title).Msg("undocked")
	return nil
}

// collapse restores the container invariants upward from pane: an empty
// container is removed from its parent (cascading), a split with a single
// child is replaced by that child, and a tab pane holding one panel is
// dissolved with the panel spliced into its place. Root containers elide
// down to a bare panel or an empty tree.
func (t *LayoutTree) collapse(pane ContentPane) {
	for pane != nil {
		parent := pane.Parent()

		switch c := pane.(type) {
		case *TabPane:
			switch len(c.tabs) {
			case 0:
				pane = t.removeEmpty(c, parent)
			case 1:
				remaining := c.tabs[0]
				remaining.tabbed = false
				if parent == nil {
					t.root = remaining
				} else {
					parent.Replace(c, remaining)
				}
				return
			default:
				return
			}
		case *SplitPane:
			switch len(c.items) {
			case 0:
				pane = t.removeEmpty(c, parent)
			case 1:
				child := c.items[0]
				if parent == nil {
					t.root = child
					if cp, ok := child.(ContentPane); ok {
						cp.SetParent(nil)
					}
				} else {
					parent.Replace(c, child)
				}
				return
			default:
				return
			}
		}
	}
}

// removeEmpty drops an empty container from its parent and hands the parent
// back for further collapsing. An empty root clears the tree.
func (t *LayoutTree) removeEmpty(pane ContentPane, parent ContentPane) ContentPane {
	if parent == nil {
		t.root = nil
		return nil
	}
	switch p := parent.(type) {
	case *SplitPane:
		p.RemoveChild(pane)
	case *TabPane:
		// Tab panes hold only panels; an empty container can never be a
		// direct child. Nothing to do.
	}
	return parent
}

func (t *LayoutTree) markDocked(node *Panel, pos DockPos, sibling Node) {
	node.docked = true
	node.tree = t
	node.lastDockPos = pos
	node.lastDockSibling = sibling

	for i, p := range t.undocked {
		if p == node {
			t.undocked = append(t.undocked[:i], t.undocked[i+1:]...)
			break
		}
	}
}

func (t *LayoutTree) markUndocked(node *Panel) {
	node.docked = false
	node.tabbed = false

	for _, p := range t.undocked {
		if p == node {
			return
		}
	}
	t.undocked = append(t.undocked, node)
}
