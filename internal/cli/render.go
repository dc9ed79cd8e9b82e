package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/docktree/docktree/pkg/dock"
)

// renderDocument rebuilds the layout from a document with placeholder
// panels and renders it as indented text.
func renderDocument(ctx context.Context, doc dock.Document) (string, error) {
	res, err := dock.Restore(ctx, doc, dock.RestoreOptions{
		Resolver: func(title string) (*dock.Panel, error) {
			return dock.NewPanel(title), nil
		},
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	w := res.Window
	fmt.Fprintf(&b, "window %gx%g at (%g, %g)\n", w.Width, w.Height, w.X, w.Y)

	if res.Tree.IsEmpty() {
		b.WriteString("(empty layout)\n")
	} else {
		renderNode(&b, res.Tree.Root(), 0)
	}

	for _, p := range res.Floating {
		g := p.FloatingGeometry()
		fmt.Fprintf(&b, "floating %q %gx%g at (%g, %g)\n",
			p.Title(), g.Width, g.Height, g.X, g.Y)
	}
	return b.String(), nil
}

func renderNode(b *strings.Builder, n dock.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch c := n.(type) {
	case *dock.SplitPane:
		fmt.Fprintf(b, "%ssplit %s", indent, strings.ToLower(c.Orientation().String()))
		if d := c.DividerPositions(); len(d) > 0 {
			fmt.Fprintf(b, " dividers=%v", d)
		}
		b.WriteByte('\n')
		for _, child := range c.Children() {
			renderNode(b, child, depth+1)
		}
	case *dock.TabPane:
		fmt.Fprintf(b, "%stabs selected=%d\n", indent, c.SelectedIndex())
		for _, child := range c.Children() {
			renderNode(b, child, depth+1)
		}
	case *dock.Panel:
		fmt.Fprintf(b, "%spanel %q\n", indent, c.Title())
	}
}
