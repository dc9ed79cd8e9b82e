package cli

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/docktree/docktree/internal/config"
	"github.com/docktree/docktree/pkg/dock"
)

var schemaConfig bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the layout document JSON schema",
	Long: `Print the JSON schema of the layout document format, for editors and
external validators. With --config the dockctl configuration schema is
printed instead.`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().BoolVar(&schemaConfig, "config", false, "print the configuration schema")
}

func runSchema(cmd *cobra.Command, _ []string) error {
	var data []byte
	var err error

	if schemaConfig {
		data, err = config.ConfigSchema()
	} else {
		data, err = documentSchema()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
	return nil
}

func documentSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&dock.ContentRecord{})

	schema.ID = "https://github.com/docktree/docktree/layout.schema.json"
	schema.Title = "docktree layout record"
	schema.Description = "One record of a docktree layout document; a document is a map of these keyed by record name"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal layout schema: %w", err)
	}
	return data, nil
}
