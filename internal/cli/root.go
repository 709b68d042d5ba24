// Package cli implements the lvglgen command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-lvglgen/internal/logging"
	"github.com/goliatone/go-lvglgen/pkg/config"
	"github.com/goliatone/go-lvglgen/pkg/scaffold"
)

type app struct {
	verbose   bool
	logFormat string
	log       *logrus.Entry

	// newDriver builds the prompt driver of `init`.
	newDriver func(out io.Writer) scaffold.PromptDriver
}

// NewRootCommand builds the command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	return newApp().root(out, errOut)
}

func newApp() *app {
	return &app{
		log:       logging.Discard(),
		newDriver: scaffold.NewSurveyDriver,
	}
}

func (a *app) root(out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lvglgen",
		Short: "Generate LVGL firmware code from a GUI configuration",
		Long: `lvglgen validates a declarative GUI configuration (widgets, styles and
their display binding) and generates the C++ setup code, lv_conf.h and
PlatformIO build settings that render it with LVGL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logging.New(logging.Options{
				Verbose: a.verbose,
				Format:  a.logFormat,
				Out:     cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", logging.FormatText, "Log format: text or json")

	cmd.AddCommand(a.newValidateCmd())
	cmd.AddCommand(a.newGenerateCmd())
	cmd.AddCommand(a.newSchemaCmd())
	cmd.AddCommand(a.newInitCmd())
	cmd.AddCommand(a.newVersionCmd())
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			reportFailure(os.Stderr, "", err)
		}
		return 1
	}
	return 0
}

// sourceFor maps a command line argument to a document source. "-" reads
// standard input.
func sourceFor(cmd *cobra.Command, arg string) (config.Source, error) {
	if arg != "-" {
		return config.SourceFromFile(arg), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return config.SourceFromBytes("<stdin>", data), nil
}
