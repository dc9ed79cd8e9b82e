package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docktree/docktree/internal/persistence"
	"github.com/docktree/docktree/pkg/dock"
)

var inspectWatch bool

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Render a layout document as an indented tree",
	Long: `Load a layout JSON file and print its container tree: splits with
orientation and divider positions, tab groups with their selection, and
floating panels with geometry. With --watch the file is re-rendered
every time it changes on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVarP(&inspectWatch, "watch", "w", false, "re-render on file change")
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx, _, err := cmdContext()
	if err != nil {
		return err
	}
	path := args[0]
	store := persistence.NewFileStore()

	render := func(doc dock.Document) error {
		out, err := renderDocument(ctx, doc)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	doc, err := store.Load(ctx, path)
	if err != nil {
		return err
	}
	if err := render(doc); err != nil {
		return err
	}
	if !inspectWatch {
		return nil
	}

	watcher := persistence.NewWatcher(store, path)
	watcher.OnChange(func(doc dock.Document) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n-- %s changed --\n", path)
		if err := render(doc); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "render: %v\n", err)
		}
	})
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
