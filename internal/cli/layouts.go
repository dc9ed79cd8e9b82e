package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/docktree/docktree/internal/config"
	"github.com/docktree/docktree/internal/persistence"
	"github.com/docktree/docktree/internal/persistence/sqlite"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "Manage the named layout library",
	Long: `Keep a library of named layouts in a local database: import layout
files under a name, export them back to files, list what is stored.`,
}

var layoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored layouts",
	Args:  cobra.NoArgs,
	RunE:  runLayoutsList,
}

var layoutsImportCmd = &cobra.Command{
	Use:   "import NAME FILE",
	Short: "Store a layout file under a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runLayoutsImport,
}

var layoutsExportCmd = &cobra.Command{
	Use:   "export NAME FILE",
	Short: "Write a stored layout to a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runLayoutsExport,
}

var layoutsDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Remove a stored layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutsDelete,
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
	layoutsCmd.AddCommand(layoutsListCmd)
	layoutsCmd.AddCommand(layoutsImportCmd)
	layoutsCmd.AddCommand(layoutsExportCmd)
	layoutsCmd.AddCommand(layoutsDeleteCmd)
}

// openRepository connects to the configured layout database.
func openRepository(ctx context.Context, cfg *config.Config) (*sqlite.LayoutRepository, *sql.DB, error) {
	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return sqlite.NewLayoutRepository(db), db, nil
}

func runLayoutsList(cmd *cobra.Command, _ []string) error {
	ctx, cfg, err := cmdContext()
	if err != nil {
		return err
	}
	repo, db, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sqlite.Close(db) }()

	infos, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no layouts stored")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPANES\tUPDATED")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%d\t%s\n",
			info.Name, info.Panes, info.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func runLayoutsImport(_ *cobra.Command, args []string) error {
	ctx, cfg, err := cmdContext()
	if err != nil {
		return err
	}
	name, path := args[0], args[1]

	doc, err := persistence.NewFileStore().Load(ctx, path)
	if err != nil {
		return err
	}

	repo, db, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sqlite.Close(db) }()

	if err := repo.Save(ctx, name, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "imported %s as %q\n", path, name)
	return nil
}

func runLayoutsExport(_ *cobra.Command, args []string) error {
	ctx, cfg, err := cmdContext()
	if err != nil {
		return err
	}
	name, path := args[0], args[1]

	repo, db, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sqlite.Close(db) }()

	doc, err := repo.Get(ctx, name)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("no layout stored under %q", name)
	}

	if err := persistence.NewFileStore().Save(ctx, path, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "exported %q to %s\n", name, path)
	return nil
}

func runLayoutsDelete(_ *cobra.Command, args []string) error {
	ctx, cfg, err := cmdContext()
	if err != nil {
		return err
	}
	repo, db, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sqlite.Close(db) }()

	if err := repo.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "deleted %q\n", args[0])
	return nil
}
