package dock

import (
	"context"
	"fmt"
	"strconv"

	"github.com/docktree/docktree/internal/logging"
)

// RecordType names the kinds of records a layout document holds.
type RecordType string

const (
	RecordSplitPane    RecordType = "SplitPane"
	RecordTabPane      RecordType = "TabPane"
	RecordFloatingNode RecordType = "FloatingNode"
	RecordCollection   RecordType = "Collection"
)

// Document keys with fixed meanings.
const (
	// RootRecordKey names the root container record, which also carries
	// the owning window's geometry.
	RootRecordKey = "0"

	// FloatingNodesKey names the collection record enumerating panels
	// floating in their own windows.
	FloatingNodesKey = "_FloatingNodes"
)

// RecordProperties is the per-record property bag. Which fields are set
// depends on the record type: split panes carry orientation and divider
// positions, tab panes a selected index, floating nodes a title and
// geometry, and the root record additionally the window geometry.
type RecordProperties struct {
	Orientation      *Orientation `json:"orientation,omitempty"`
	DividerPositions []float64    `json:"divider_positions,omitempty"`
	SelectedIndex    *int         `json:"selected_index,omitempty"`
	Title            string       `json:"title,omitempty"`
	Size             []float64    `json:"size,omitempty"`     // [width, height]
	Position         []float64    `json:"position,omitempty"` // [x, y]
}

// ContentRecord is one node of the persisted layout: a container, a
// floating panel, or a collection. Children reference either another
// record by name or a panel by title.
type ContentRecord struct {
	Name       string           `json:"name"`
	Type       RecordType       `json:"type"`
	Properties RecordProperties `json:"properties"`
	Children   []string         `json:"children,omitempty"`
}

// Document is a complete persisted layout, keyed by record name. Container
// records are numbered depth first from "0". Panel titles share this key
// space: a child reference resolves as a container when its key holds a
// container record, else as a panel title. Hosts must therefore not title
// panels with bare record numbers.
type Document map[string]*ContentRecord

// containerRecord returns the container record a child reference resolves
// to, or nil when the reference names a panel.
func (d Document) containerRecord(ref string) *ContentRecord {
	rec, ok := d[ref]
	if !ok {
		return nil
	}
	if rec.Type == RecordSplitPane || rec.Type == RecordTabPane {
		return rec
	}
	return nil
}

// Validate checks the document's structural soundness: a root record of a
// container type, known record types throughout, and divider counts that
// match the child counts they separate.
func (d Document) Validate() error {
	root, ok := d[RootRecordKey]
	if !ok {
		return ErrMissingRootRecord
	}
	if root.Type != RecordSplitPane && root.Type != RecordTabPane {
		return fmt.Errorf("root record has type %q: %w", root.Type, ErrUnknownRecordType)
	}

	for name, rec := range d {
		switch rec.Type {
		case RecordSplitPane:
			if n := len(rec.Properties.DividerPositions); len(rec.Children) > 1 && n != len(rec.Children)-1 {
				return fmt.Errorf("record %q: %d dividers for %d children", name, n, len(rec.Children))
			}
		case RecordTabPane, RecordFloatingNode, RecordCollection:
		default:
			return fmt.Errorf("record %q has type %q: %w", name, rec.Type, ErrUnknownRecordType)
		}
	}
	return nil
}

// Snapshot walks the tree depth first and produces its document form:
// numbered container records, panel references by title, a collection of
// floating panels with their geometry, and the window geometry on the root
// record. The tree is not modified.
func Snapshot(t *LayoutTree, window Geometry) (Document, error) {
	doc := Document{}

	floating := &ContentRecord{Name: FloatingNodesKey, Type: RecordCollection}
	doc[FloatingNodesKey] = floating
	for _, p := range t.FloatingPanels() {
		g := p.FloatingGeometry()
		doc[p.title] = &ContentRecord{
			Name: p.title,
			Type: RecordFloatingNode,
			Properties: RecordProperties{
				Title:    p.title,
				Size:     []float64{g.Width, g.Height},
				Position: []float64{g.X, g.Y},
			},
		}
		floating.Children = append(floating.Children, p.title)
	}

	counter := 0
	switch root := t.root.(type) {
	case nil:
		doc[RootRecordKey] = &ContentRecord{Name: RootRecordKey, Type: RecordSplitPane}
	case *Panel:
		// A bare panel root persists as its initial single-child split.
		doc[RootRecordKey] = &ContentRecord{
			Name:     RootRecordKey,
			Type:     RecordSplitPane,
			Children: []string{root.title},
		}
	case ContentPane:
		snapshotPane(doc, root, &counter)
	}

	rootRec := doc[RootRecordKey]
	rootRec.Properties.Size = []float64{window.Width, window.Height}
	rootRec.Properties.Position = []float64{window.X, window.Y}
	return doc, nil
}

func snapshotPane(doc Document, pane ContentPane, counter *int) string {
	name := strconv.Itoa(*counter)
	*counter++

	rec := &ContentRecord{Name: name}
	doc[name] = rec

	switch c := pane.(type) {
	case *SplitPane:
		rec.Type = RecordSplitPane
		o := c.Orientation()
		rec.Properties.Orientation = &o
		rec.Properties.DividerPositions = c.DividerPositions()
	case *TabPane:
		rec.Type = RecordTabPane
		idx := c.SelectedIndex()
		rec.Properties.SelectedIndex = &idx
	}

	for _, child := range pane.Children() {
		switch n := child.(type) {
		case *Panel:
			rec.Children = append(rec.Children, n.title)
		case ContentPane:
			rec.Children = append(rec.Children, snapshotPane(doc, n, counter))
		}
	}
	return name
}

// PanelResolver supplies a panel for a persisted title that no currently
// known panel matches — the delayed-open hook. Returning an error (or a nil
// panel) makes the reference count as missing without failing the restore.
type PanelResolver func(title string) (*Panel, error)

// RestoreOptions configures Restore.
type RestoreOptions struct {
	// Panels are the host's currently known panels keyed by title.
	Panels map[string]*Panel

	// Resolver is consulted for titles absent from Panels. Optional.
	Resolver PanelResolver
}

// RestoreResult is a rebuilt layout. Missing lists the panel titles that
// could not be resolved; their references were dropped, not fatal.
type RestoreResult struct {
	Tree     *LayoutTree
	Window   Geometry
	Floating []*Panel
	Missing  []string
}

// Restore rebuilds a layout tree from its document form, top down from the
// root record. Panel references resolve against the known panels first,
// then the resolver; unresolved references are skipped and reported.
func Restore(ctx context.Context, doc Document, opts RestoreOptions) (*RestoreResult, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)

	tree := NewLayoutTree(ctx)
	result := &RestoreResult{Tree: tree}

	rootRec := doc[RootRecordKey]
	if len(rootRec.Properties.Size) == 2 {
		result.Window.Width = rootRec.Properties.Size[0]
		result.Window.Height = rootRec.Properties.Size[1]
	}
	if len(rootRec.Properties.Position) == 2 {
		result.Window.X = rootRec.Properties.Position[0]
		result.Window.Y = rootRec.Properties.Position[1]
	}

	r := &restorer{doc: doc, opts: opts, tree: tree, result: result}

	if fl, ok := doc[FloatingNodesKey]; ok {
		for _, title := range fl.Children {
			p := r.resolvePanel(title)
			if p == nil {
				continue
			}
			p.tree = tree
			p.SetFloating(true, nil)
			if rec, ok := doc[title]; ok {
				g := Geometry{}
				if len(rec.Properties.Position) == 2 {
					g.X = rec.Properties.Position[0]
					g.Y = rec.Properties.Position[1]
				}
				if len(rec.Properties.Size) == 2 {
					g.Width = rec.Properties.Size[0]
					g.Height = rec.Properties.Size[1]
				}
				p.SetFloatingGeometry(g)
			}
			tree.undocked = append(tree.undocked, p)
			result.Floating = append(result.Floating, p)
		}
	}

	root := r.buildPane(rootRec)
	if cp, ok := root.(ContentPane); ok && len(cp.Children()) == 0 {
		// A childless root record restores to an empty tree, the same
		// shape it was snapshotted from.
		root = nil
	}
	tree.root = root

	for _, title := range result.Missing {
		log.Warn().Str("panel", title).Msg("persisted panel reference not resolvable, dropped")
	}
	return result, nil
}

// restorer carries the shared state of one Restore call.
type restorer struct {
	doc    Document
	opts   RestoreOptions
	tree   *LayoutTree
	result *RestoreResult
}

// resolvePanel finds or lazily opens the panel a reference names. Records
// a miss and returns nil when neither source can supply it.
func (r *restorer) resolvePanel(title string) *Panel {
	if p, ok := r.opts.Panels[title]; ok && p != nil {
		return p
	}
	if r.opts.Resolver != nil {
		if p, err := r.opts.Resolver(title); err == nil && p != nil {
			return p
		}
	}
	r.result.Missing = append(r.result.Missing, title)
	return nil
}

func (r *restorer) buildPane(rec *ContentRecord) Node {
	switch rec.Type {
	case RecordSplitPane:
		split := NewSplitPane()
		if rec.Properties.Orientation != nil {
			split.orientation = *rec.Properties.Orientation
		}
		for _, ref := range rec.Children {
			if childRec := r.doc.containerRecord(ref); childRec != nil {
				if child := r.buildPane(childRec); child != nil {
					split.appendChild(child)
				}
				continue
			}
			p := r.resolvePanel(ref)
			if p == nil {
				continue
			}
			p.tabbed = false
			p.docked = true
			p.tree = r.tree
			split.appendChild(p)
		}
		split.SetDividerPositions(rec.Properties.DividerPositions)
		return split

	case RecordTabPane:
		tab := NewTabPane()
		for _, ref := range rec.Children {
			p := r.resolvePanel(ref)
			if p == nil {
				continue
			}
			p.docked = true
			p.tree = r.tree
			tab.AddPanel(p)
		}
		if rec.Properties.SelectedIndex != nil {
			tab.Select(*rec.Properties.SelectedIndex)
		}
		return tab

	default:
		return nil
	}
}
