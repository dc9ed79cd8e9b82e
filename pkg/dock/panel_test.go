package dock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPanelDefaults(t *testing.T) {
	p := NewPanel("console")

	assert.Equal(t, "console", p.Title())
	assert.False(t, p.Docked())
	assert.False(t, p.Floating())
	assert.False(t, p.Tabbed())
	assert.False(t, p.Closed())
	assert.True(t, p.Closable())
	assert.True(t, p.Floatable())
	assert.True(t, p.Resizable())
	assert.True(t, p.Minimizable())
}

func TestPanelContent(t *testing.T) {
	p := NewPanel("viewer")
	assert.Nil(t, p.Content())

	payload := struct{ id int }{id: 7}
	p.SetContent(payload)
	assert.Equal(t, payload, p.Content())
}

func TestPanelFloating(t *testing.T) {
	t.Run("geometry seeded from preferred size and offset", func(t *testing.T) {
		p := NewPanel("tools")
		p.SetPreferredSize(320, 240)
		p.SetFloating(true, &Point{X: 40, Y: 60})

		require.True(t, p.Floating())
		assert.Equal(t, Geometry{X: 40, Y: 60, Width: 320, Height: 240}, p.FloatingGeometry())
	})

	t.Run("unset preferred size falls back to default extent", func(t *testing.T) {
		p := NewPanel("tools")
		p.SetFloating(true, nil)
		g := p.FloatingGeometry()
		assert.Equal(t, defaultPanelExtent, g.Width)
		assert.Equal(t, defaultPanelExtent, g.Height)
	})

	t.Run("floating a docked panel undocks it", func(t *testing.T) {
		tree := NewLayoutTree(context.Background())
		a, b := NewPanel("a"), NewPanel("b")
		require.NoError(t, tree.Dock(a, Left, nil))
		require.NoError(t, tree.Dock(b, Right, a))

		b.SetFloating(true, nil)
		assert.True(t, b.Floating())
		assert.False(t, b.Docked())
		assert.False(t, tree.Contains(b))
		assert.Contains(t, tree.FloatingPanels(), b)
	})

	t.Run("unfloating clears geometry", func(t *testing.T) {
		p := NewPanel("tools")
		p.SetFloating(true, &Point{X: 5, Y: 5})
		p.SetFloating(false, nil)
		assert.False(t, p.Floating())
		assert.Equal(t, Geometry{}, p.FloatingGeometry())
	})
}

func TestPanelFloatableCapability(t *testing.T) {
	p := NewPanel("locked")
	p.SetFloating(true, nil)
	require.True(t, p.Floating())

	// Revoking the capability lands the panel.
	p.SetFloatable(false)
	assert.False(t, p.Floating())
	assert.False(t, p.Floatable())
}

func TestPanelDockUndock(t *testing.T) {
	tree := NewLayoutTree(context.Background())
	a, b := NewPanel("a"), NewPanel("b")
	require.NoError(t, a.Dock(tree, Left, nil))
	require.NoError(t, b.Dock(tree, Right, a))

	assert.True(t, b.Docked())
	require.NoError(t, b.Undock())
	assert.False(t, b.Docked())

	require.ErrorIs(t, b.Undock(), ErrNotDocked)
}

func TestPanelDockWhileFloating(t *testing.T) {
	tree := NewLayoutTree(context.Background())
	a, b := NewPanel("a"), NewPanel("b")
	require.NoError(t, a.Dock(tree, Left, nil))

	b.SetFloating(true, nil)
	require.NoError(t, b.Dock(tree, Right, a))

	assert.True(t, b.Docked())
	assert.False(t, b.Floating(), "docking must land a floating panel")
}

func TestPanelClose(t *testing.T) {
	t.Run("docked panel is removed from the tree", func(t *testing.T) {
		tree := NewLayoutTree(context.Background())
		a, b := NewPanel("a"), NewPanel("b")
		require.NoError(t, a.Dock(tree, Left, nil))
		require.NoError(t, b.Dock(tree, Right, a))

		b.Close()
		assert.True(t, b.Closed())
		assert.False(t, tree.Contains(b))
	})

	t.Run("floating panel lands first", func(t *testing.T) {
		p := NewPanel("scratch")
		p.SetFloating(true, nil)
		p.Close()
		assert.True(t, p.Closed())
		assert.False(t, p.Floating())
	})
}

func TestPanelMinimizeMaximize(t *testing.T) {
	p := NewPanel("log")
	p.SetMaximized(true)
	assert.True(t, p.Maximized())
	p.SetMinimized(true)
	assert.True(t, p.Minimized())
	p.SetMaximized(false)
	assert.False(t, p.Maximized())
}
