package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-lvglgen/pkg/schemaexport"
)

func (a *app) newSchemaCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the GUI configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := schemaexport.JSON()
			if err != nil {
				return fmt.Errorf("schema: %w", err)
			}
			data = append(data, '\n')
			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("schema: write %s: %w", output, err)
			}
			a.log.WithField("path", output).Info("schema written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "File receiving the schema (stdout if empty)")
	return cmd
}
