package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-lvglgen/pkg/scaffold"
)

func (a *app) newInitCmd() *cobra.Command {
	var (
		output string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively scaffold a GUI configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != "" && !force {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("init: %s already exists, use --force to overwrite", output)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("init: %w", err)
				}
			}

			s := scaffold.New(
				scaffold.WithPromptDriver(a.newDriver(cmd.ErrOrStderr())),
				scaffold.WithLogger(a.log),
			)
			data, err := s.Run(cmd.Context())
			if err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("init: write %s: %w", output, err)
			}
			reportSuccess(cmd.OutOrStdout(), output, "run `lvglgen generate "+output+"` next")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "File receiving the configuration (stdout if empty)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")
	return cmd
}
