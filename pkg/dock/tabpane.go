package dock

// TabPane groups panels under mutually exclusive tabs with a tracked
// selection. Only panels can be tabs; nesting containers inside a tab pane
// is not part of the model.
type TabPane struct {
	parent   ContentPane
	tabs     []*Panel
	selected int
}

func (t *TabPane) node() {}

// NewTabPane creates an empty tab pane.
func NewTabPane() *TabPane {
	return &TabPane{selected: -1}
}

// Children returns the tabs as nodes in tab order.
func (t *TabPane) Children() []Node {
	out := make([]Node, len(t.tabs))
	for i, tab := range t.tabs {
		out[i] = tab
	}
	return out
}

// Panels returns the tabs in tab order.
func (t *TabPane) Panels() []*Panel { return t.tabs }

// Parent returns the enclosing container, nil at the root.
func (t *TabPane) Parent() ContentPane { return t.parent }

// SetParent updates the non-owning parent back-reference.
func (t *TabPane) SetParent(p ContentPane) { t.parent = p }

// SelectedIndex returns the index of the visible tab, -1 when empty.
func (t *TabPane) SelectedIndex() int { return t.selected }

// Select makes the tab at idx visible. Out-of-range indexes are clamped.
func (t *TabPane) Select(idx int) {
	if len(t.tabs) == 0 {
		t.selected = -1
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(t.tabs)-1 {
		idx = len(t.tabs) - 1
	}
	t.selected = idx
}

func (t *TabPane) indexOf(p *Panel) int {
	for i, tab := range t.tabs {
		if tab == p {
			return i
		}
	}
	return -1
}

// AddPanel appends a panel as the last tab, selects it and marks it tabbed.
func (t *TabPane) AddPanel(p *Panel) {
	t.tabs = append(t.tabs, p)
	t.selected = len(t.tabs) - 1
	p.tabbed = true
}

// RemovePanel removes a panel by identity. A panel that is not a tab is a
// no-op returning false; the caller decides whether that is a logic error.
// The selection is clamped to the remaining tabs. Dissolving the pane when
// one tab remains is the layout tree's job, not this container's.
func (t *TabPane) RemovePanel(p *Panel) bool {
	idx := t.indexOf(p)
	if idx < 0 {
		return false
	}
	t.tabs = append(t.tabs[:idx], t.tabs[idx+1:]...)
	if t.selected > len(t.tabs)-1 {
		t.selected = len(t.tabs) - 1
	}
	return true
}

// Replace substitutes newChild for oldChild preserving tab position, then
// selects the replaced tab. Both must be panels.
func (t *TabPane) Replace(oldChild, newChild Node) bool {
	oldPanel, ok := oldChild.(*Panel)
	if !ok {
		return false
	}
	newPanel, ok := newChild.(*Panel)
	if !ok {
		return false
	}
	idx := t.indexOf(oldPanel)
	if idx < 0 {
		return false
	}
	t.tabs[idx] = newPanel
	newPanel.tabbed = true
	t.selected = idx
	return true
}
