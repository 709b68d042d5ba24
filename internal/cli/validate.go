package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-lvglgen/pkg/orchestrator"
)

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate GUI configurations",
		Long: `Validate one or more GUI configurations without generating code. Every
problem of every file is reported. Use "-" to read from standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := orchestrator.New(orchestrator.WithLogger(a.log))
			failed := 0
			for _, arg := range args {
				src, err := sourceFor(cmd, arg)
				if err != nil {
					return err
				}
				doc, err := o.Validate(cmd.Context(), orchestrator.Request{Source: src})
				if err != nil {
					failed++
					reportFailure(cmd.ErrOrStderr(), src.Location(), err)
					continue
				}
				reportSuccess(cmd.OutOrStdout(), src.Location(), fmt.Sprintf("%s on %s, %d widgets", doc.ID, doc.DisplayID, doc.Count()))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files invalid: %w", failed, len(args), errReported)
			}
			return nil
		},
	}
}
