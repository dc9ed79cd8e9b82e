package dock

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// buildSampleTree docks editor, console and outline into the layout used
// throughout the persistence tests:
//
//	H[ V[ Tab[editor, preview], console ], outline ]
func buildSampleTree(t *testing.T) (*LayoutTree, map[string]*Panel) {
	t.Helper()

	tree := NewLayoutTree(context.Background())
	panels := map[string]*Panel{
		"editor":  NewPanel("editor"),
		"preview": NewPanel("preview"),
		"console": NewPanel("console"),
		"outline": NewPanel("outline"),
	}
	require.NoError(t, tree.Dock(panels["editor"], Left, nil))
	require.NoError(t, tree.Dock(panels["outline"], Right, panels["editor"]))
	require.NoError(t, tree.Dock(panels["console"], Bottom, panels["editor"]))
	require.NoError(t, tree.Dock(panels["preview"], Center, panels["editor"]))
	return tree, panels
}

func TestSnapshot(t *testing.T) {
	tree, _ := buildSampleTree(t)
	window := Geometry{X: 10, Y: 20, Width: 1280, Height: 800}

	doc, err := Snapshot(tree, window)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	root := doc[RootRecordKey]
	require.NotNil(t, root)
	assert.Equal(t, RecordSplitPane, root.Type)
	assert.Equal(t, []float64{1280, 800}, root.Properties.Size)
	assert.Equal(t, []float64{10, 20}, root.Properties.Position)
	require.Equal(t, Horizontal, *root.Properties.Orientation)
	require.Equal(t, []string{"1", "outline"}, root.Children)

	inner := doc["1"]
	require.NotNil(t, inner)
	assert.Equal(t, RecordSplitPane, inner.Type)
	require.Equal(t, Vertical, *inner.Properties.Orientation)
	require.Equal(t, []string{"2", "console"}, inner.Children)

	tab := doc["2"]
	require.NotNil(t, tab)
	assert.Equal(t, RecordTabPane, tab.Type)
	require.Equal(t, []string{"editor", "preview"}, tab.Children)
	require.Equal(t, 1, *tab.Properties.SelectedIndex)

	fl := doc[FloatingNodesKey]
	require.NotNil(t, fl)
	assert.Equal(t, RecordCollection, fl.Type)
	assert.Empty(t, fl.Children)
}

func TestSnapshotFloating(t *testing.T) {
	tree, panels := buildSampleTree(t)
	scratch := NewPanel("scratch")
	scratch.tree = tree
	scratch.SetFloating(true, &Point{X: 50, Y: 75})
	scratch.SetFloatingGeometry(Geometry{X: 50, Y: 75, Width: 400, Height: 300})
	tree.undocked = append(tree.undocked, scratch)

	doc, err := Snapshot(tree, Geometry{Width: 1024, Height: 768})
	require.NoError(t, err)

	require.Equal(t, []string{"scratch"}, doc[FloatingNodesKey].Children)
	rec := doc["scratch"]
	require.NotNil(t, rec)
	assert.Equal(t, RecordFloatingNode, rec.Type)
	assert.Equal(t, "scratch", rec.Properties.Title)
	assert.Equal(t, []float64{400, 300}, rec.Properties.Size)
	assert.Equal(t, []float64{50, 75}, rec.Properties.Position)

	// Docked panels never leak into the floating collection.
	assert.NotContains(t, doc[FloatingNodesKey].Children, panels["editor"].Title())
}

func TestSnapshotEmptyTree(t *testing.T) {
	tree := NewLayoutTree(context.Background())
	doc, err := Snapshot(tree, Geometry{Width: 640, Height: 480})
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	root := doc[RootRecordKey]
	assert.Equal(t, RecordSplitPane, root.Type)
	assert.Empty(t, root.Children)
}

func TestSnapshotBarePanelRoot(t *testing.T) {
	tree := NewLayoutTree(context.Background())
	a, b := NewPanel("a"), NewPanel("b")
	require.NoError(t, tree.Dock(a, Left, nil))
	require.NoError(t, tree.Dock(b, Right, a))
	require.NoError(t, tree.Undock(b))
	require.IsType(t, &Panel{}, tree.Root())

	doc, err := Snapshot(tree, Geometry{})
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, doc[RootRecordKey].Children)
}

func TestRestoreRoundTrip(t *testing.T) {
	tree, panels := buildSampleTree(t)
	root := tree.Root().(*SplitPane)
	root.SetDividerPositions([]float64{0.7})
	inner := root.Children()[0].(*SplitPane)
	inner.SetDividerPositions([]float64{0.6})
	window := Geometry{X: 5, Y: 15, Width: 1600, Height: 900}

	doc, err := Snapshot(tree, window)
	require.NoError(t, err)

	// Through JSON, as the file store sees it.
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var decoded Document
	require.NoError(t, json.Unmarshal(raw, &decoded))

	fresh := map[string]*Panel{}
	for title := range panels {
		fresh[title] = NewPanel(title)
	}
	res, err := Restore(context.Background(), decoded, RestoreOptions{Panels: fresh})
	require.NoError(t, err)
	require.Empty(t, res.Missing)
	assert.Equal(t, window, res.Window)

	gotRoot, ok := res.Tree.Root().(*SplitPane)
	require.True(t, ok)
	assert.Equal(t, Horizontal, gotRoot.Orientation())
	assert.Equal(t, []float64{0.7}, gotRoot.DividerPositions())
	require.Len(t, gotRoot.Children(), 2)
	assert.Same(t, fresh["outline"], gotRoot.Children()[1])

	gotInner, ok := gotRoot.Children()[0].(*SplitPane)
	require.True(t, ok)
	assert.Equal(t, Vertical, gotInner.Orientation())
	assert.Equal(t, []float64{0.6}, gotInner.DividerPositions())
	assert.Same(t, fresh["console"], gotInner.Children()[1])

	gotTab, ok := gotInner.Children()[0].(*TabPane)
	require.True(t, ok)
	require.Equal(t, []*Panel{fresh["editor"], fresh["preview"]}, gotTab.Panels())
	assert.Equal(t, 1, gotTab.SelectedIndex())
	assert.True(t, fresh["editor"].Docked())
	assert.True(t, fresh["editor"].Tabbed())
	assert.True(t, fresh["console"].Docked())
	assert.False(t, fresh["console"].Tabbed())
	validateTree(t, res.Tree)

	// A second snapshot reproduces the document exactly.
	again, err := Snapshot(res.Tree, window)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestRestoreEmptyTree(t *testing.T) {
	t.Run("empty snapshot restores empty", func(t *testing.T) {
		tree := NewLayoutTree(context.Background())
		doc, err := Snapshot(tree, Geometry{Width: 800, Height: 600})
		require.NoError(t, err)

		res, err := Restore(context.Background(), doc, RestoreOptions{})
		require.NoError(t, err)
		assert.True(t, res.Tree.IsEmpty())
		assert.Nil(t, res.Tree.Root())
		assert.Equal(t, Geometry{Width: 800, Height: 600}, res.Window)
	})

	t.Run("all references unresolved restores empty", func(t *testing.T) {
		doc := Document{
			RootRecordKey: {
				Name:     RootRecordKey,
				Type:     RecordSplitPane,
				Children: []string{"ghost"},
			},
		}

		res, err := Restore(context.Background(), doc, RestoreOptions{})
		require.NoError(t, err)
		assert.True(t, res.Tree.IsEmpty())
		assert.Equal(t, []string{"ghost"}, res.Missing)
	})
}

func TestRestoreFloating(t *testing.T) {
	doc := Document{
		RootRecordKey: {
			Name:     RootRecordKey,
			Type:     RecordSplitPane,
			Children: []string{"editor"},
		},
		FloatingNodesKey: {
			Name:     FloatingNodesKey,
			Type:     RecordCollection,
			Children: []string{"scratch"},
		},
		"scratch": {
			Name: "scratch",
			Type: RecordFloatingNode,
			Properties: RecordProperties{
				Title:    "scratch",
				Size:     []float64{400, 300},
				Position: []float64{50, 75},
			},
		},
	}

	panels := map[string]*Panel{
		"editor":  NewPanel("editor"),
		"scratch": NewPanel("scratch"),
	}
	res, err := Restore(context.Background(), doc, RestoreOptions{Panels: panels})
	require.NoError(t, err)
	require.Empty(t, res.Missing)

	require.Equal(t, []*Panel{panels["scratch"]}, res.Floating)
	assert.True(t, panels["scratch"].Floating())
	assert.Equal(t, Geometry{X: 50, Y: 75, Width: 400, Height: 300},
		panels["scratch"].FloatingGeometry())
	assert.Contains(t, res.Tree.FloatingPanels(), panels["scratch"])
}

// panelOpener doubles the host-side delayed open hook.
type panelOpener struct {
	mock.Mock
}

func (m *panelOpener) Open(title string) (*Panel, error) {
	args := m.Called(title)
	if p := args.Get(0); p != nil {
		return p.(*Panel), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRestoreResolver(t *testing.T) {
	doc := Document{
		RootRecordKey: {
			Name:     RootRecordKey,
			Type:     RecordSplitPane,
			Children: []string{"known", "lazy", "gone"},
			Properties: RecordProperties{
				DividerPositions: []float64{0.3, 0.6},
			},
		},
	}

	lazy := NewPanel("lazy")
	opener := &panelOpener{}
	opener.On("Open", "lazy").Return(lazy, nil).Once()
	opener.On("Open", "gone").Return(nil, errors.New("no such panel")).Once()

	res, err := Restore(context.Background(), doc, RestoreOptions{
		Panels:   map[string]*Panel{"known": NewPanel("known")},
		Resolver: opener.Open,
	})
	require.NoError(t, err)
	opener.AssertExpectations(t)

	assert.Equal(t, []string{"gone"}, res.Missing)
	root := res.Tree.Root().(*SplitPane)
	require.Len(t, root.Children(), 2, "unresolved reference is dropped")
	assert.Same(t, lazy, root.Children()[1])
	assert.True(t, lazy.Docked())
}

func TestDocumentValidate(t *testing.T) {
	t.Run("missing root record", func(t *testing.T) {
		err := Document{}.Validate()
		require.ErrorIs(t, err, ErrMissingRootRecord)
	})

	t.Run("root of wrong type", func(t *testing.T) {
		doc := Document{
			RootRecordKey: {Name: RootRecordKey, Type: RecordCollection},
		}
		require.ErrorIs(t, doc.Validate(), ErrUnknownRecordType)
	})

	t.Run("unknown record type", func(t *testing.T) {
		doc := Document{
			RootRecordKey: {Name: RootRecordKey, Type: RecordSplitPane},
			"bad":         {Name: "bad", Type: RecordType("Carousel")},
		}
		require.ErrorIs(t, doc.Validate(), ErrUnknownRecordType)
	})

	t.Run("divider count mismatch", func(t *testing.T) {
		doc := Document{
			RootRecordKey: {
				Name:     RootRecordKey,
				Type:     RecordSplitPane,
				Children: []string{"a", "b", "c"},
				Properties: RecordProperties{
					DividerPositions: []float64{0.5},
				},
			},
		}
		require.Error(t, doc.Validate())
	})

	t.Run("restore refuses an invalid document", func(t *testing.T) {
		_, err := Restore(context.Background(), Document{}, RestoreOptions{})
		require.ErrorIs(t, err, ErrMissingRootRecord)
	})
}
