package dock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabPaneAddPanel(t *testing.T) {
	tab := NewTabPane()
	assert.Equal(t, -1, tab.SelectedIndex())

	a, b := NewPanel("a"), NewPanel("b")
	tab.AddPanel(a)
	assert.Equal(t, 0, tab.SelectedIndex())
	assert.True(t, a.Tabbed())

	tab.AddPanel(b)
	assert.Equal(t, 1, tab.SelectedIndex(), "newest tab is selected")
	require.Equal(t, []*Panel{a, b}, tab.Panels())
}

func TestTabPaneRemovePanel(t *testing.T) {
	a, b, c := NewPanel("a"), NewPanel("b"), NewPanel("c")
	tab := NewTabPane()
	tab.AddPanel(a)
	tab.AddPanel(b)
	tab.AddPanel(c)
	tab.Select(2)

	require.True(t, tab.RemovePanel(c))
	assert.Equal(t, 1, tab.SelectedIndex(), "selection clamps to the new tail")

	require.True(t, tab.RemovePanel(a))
	require.Equal(t, []*Panel{b}, tab.Panels())

	assert.False(t, tab.RemovePanel(NewPanel("absent")))
}

func TestTabPaneSelect(t *testing.T) {
	a, b := NewPanel("a"), NewPanel("b")
	tab := NewTabPane()
	tab.AddPanel(a)
	tab.AddPanel(b)

	tab.Select(0)
	assert.Equal(t, 0, tab.SelectedIndex())

	tab.Select(99)
	assert.Equal(t, 1, tab.SelectedIndex())

	tab.Select(-5)
	assert.Equal(t, 0, tab.SelectedIndex())
}

func TestTabPaneReplace(t *testing.T) {
	a, b := NewPanel("a"), NewPanel("b")
	tab := NewTabPane()
	tab.AddPanel(a)
	tab.AddPanel(b)

	c := NewPanel("c")
	require.True(t, tab.Replace(a, c))
	require.Equal(t, []*Panel{c, b}, tab.Panels())

	// Containers cannot live inside a tab pane.
	assert.False(t, tab.Replace(b, NewSplitPane()))
	assert.False(t, tab.Replace(NewPanel("absent"), NewPanel("new")))
}

func TestTabPaneChildren(t *testing.T) {
	a, b := NewPanel("a"), NewPanel("b")
	tab := NewTabPane()
	tab.AddPanel(a)
	tab.AddPanel(b)

	require.Equal(t, []Node{Node(a), Node(b)}, tab.Children())
}
