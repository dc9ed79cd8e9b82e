package dock

// Panel is a leaf of the layout tree: opaque host content plus identity and
// docking state. The title is the panel's identity and its persistence key;
// hosts must keep titles unique within one tree. The engine never constructs
// or destroys panel content, it only tracks docking state.
type Panel struct {
	title   string
	content any

	// State flags. Docked and floating are mutually exclusive over time
	// but transitions pass through intermediate states sequentially.
	docked    bool
	floating  bool
	tabbed    bool
	closed    bool
	maximized bool
	minimized bool

	// Capability flags, all true by default.
	closable    bool
	floatable   bool
	resizable   bool
	minimizable bool

	prefWidth  float64
	prefHeight float64

	// Floating geometry, meaningful only while floating.
	floatGeom Geometry

	// Last dock placement, kept so hosts can re-dock a closed panel where
	// it was. The sibling reference is non-owning.
	lastDockPos     DockPos
	lastDockSibling Node

	tree *LayoutTree
}

func (p *Panel) node() {}

// NewPanel creates a detached panel with the given title.
func NewPanel(title string) *Panel {
	return &Panel{
		title:       title,
		closable:    true,
		floatable:   true,
		resizable:   true,
		minimizable: true,
	}
}

// Title returns the panel's identity.
func (p *Panel) Title() string { return p.title }

// Content returns the host-owned content attached to this panel.
func (p *Panel) Content() any { return p.content }

// SetContent attaches host-owned content. The engine never inspects it.
func (p *Panel) SetContent(content any) { p.content = content }

// Docked reports whether the panel is attached to a layout tree.
func (p *Panel) Docked() bool { return p.docked }

// Floating reports whether the panel is detached into its own window.
func (p *Panel) Floating() bool { return p.floating }

// Tabbed reports whether the panel currently lives inside a tab pane.
func (p *Panel) Tabbed() bool { return p.tabbed }

// Closed reports whether the panel was closed by the host or user.
func (p *Panel) Closed() bool { return p.closed }

// Maximized reports the maximized flag.
func (p *Panel) Maximized() bool { return p.maximized }

// SetMaximized updates the maximized flag.
func (p *Panel) SetMaximized(maximized bool) { p.maximized = maximized }

// Minimized reports the minimized flag.
func (p *Panel) Minimized() bool { return p.minimized }

// SetMinimized updates the minimized flag.
func (p *Panel) SetMinimized(minimized bool) { p.minimized = minimized }

// Closable reports whether the host allows closing this panel.
func (p *Panel) Closable() bool { return p.closable }

// SetClosable updates the closable capability.
func (p *Panel) SetClosable(closable bool) { p.closable = closable }

// Floatable reports whether the host allows floating this panel.
func (p *Panel) Floatable() bool { return p.floatable }

// SetFloatable updates the floatable capability. Clearing it while the
// panel floats re-attaches the panel state immediately.
func (p *Panel) SetFloatable(floatable bool) {
	if !floatable && p.floating {
		p.SetFloating(false, nil)
	}
	p.floatable = floatable
}

// Resizable reports whether the host allows resizing this panel.
func (p *Panel) Resizable() bool { return p.resizable }

// SetResizable updates the resizable capability.
func (p *Panel) SetResizable(resizable bool) { p.resizable = resizable }

// Minimizable reports whether the host allows minimizing this panel.
func (p *Panel) Minimizable() bool { return p.minimizable }

// SetMinimizable updates the minimizable capability.
func (p *Panel) SetMinimizable(minimizable bool) { p.minimizable = minimizable }

// PreferredSize returns the preferred width and height used for divider
// weighting on insertion. Zero means unset.
func (p *Panel) PreferredSize() (width, height float64) {
	return p.prefWidth, p.prefHeight
}

// SetPreferredSize updates the preferred size.
func (p *Panel) SetPreferredSize(width, height float64) {
	p.prefWidth = width
	p.prefHeight = height
}

// FloatingGeometry returns the panel's screen rectangle while floating.
func (p *Panel) FloatingGeometry() Geometry { return p.floatGeom }

// SetFloatingGeometry updates the floating rectangle, typically after the
// user moves or resizes the floating window.
func (p *Panel) SetFloatingGeometry(g Geometry) { p.floatGeom = g }

// LastDockPos returns the position of the most recent successful dock.
func (p *Panel) LastDockPos() DockPos { return p.lastDockPos }

// LastDockSibling returns the sibling of the most recent successful dock.
// The reference is non-owning and may point at a node no longer in any
// tree.
func (p *Panel) LastDockSibling() Node { return p.lastDockSibling }

// Dock attaches the panel to a layout tree at the given position relative
// to sibling. A nil sibling docks relative to the tree root. A floating
// panel is un-floated first.
func (p *Panel) Dock(tree *LayoutTree, pos DockPos, sibling Node) error {
	if tree == nil {
		return ErrNotDocked
	}
	if p.floating {
		p.SetFloating(false, nil)
	}
	if err := tree.Dock(p, pos, sibling); err != nil {
		return err
	}
	p.tree = tree
	return nil
}

// Undock detaches the panel from its tree, collapsing containers left
// underfull by the removal.
func (p *Panel) Undock() error {
	if p.tree == nil {
		return ErrNotDocked
	}
	return p.tree.Undock(p)
}

// SetFloating toggles the floating state. Floating a docked panel undocks
// it first; the floating rectangle is seeded from the preferred size plus
// the optional offset.
func (p *Panel) SetFloating(floating bool, offset *Point) {
	if floating == p.floating {
		return
	}
	if floating {
		if p.docked && p.tree != nil {
			// Best effort: a panel missing from the tree floats anyway.
			_ = p.tree.Undock(p)
		}
		w, h := p.prefWidth, p.prefHeight
		if w <= 0 {
			w = defaultPanelExtent
		}
		if h <= 0 {
			h = defaultPanelExtent
		}
		g := Geometry{Width: w, Height: h}
		if offset != nil {
			g.X = offset.X
			g.Y = offset.Y
		}
		p.floatGeom = g
		p.floating = true
		return
	}
	p.floating = false
	p.floatGeom = Geometry{}
}

// Close detaches the panel (un-floating or undocking as needed) and marks
// it closed. Closing is distinct from hiding: a closed panel is expected to
// be re-docked explicitly by the host.
func (p *Panel) Close() {
	if p.floating {
		p.SetFloating(false, nil)
	} else if p.docked && p.tree != nil {
		_ = p.tree.Undock(p)
	}
	p.closed = true
}
