package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-lvglgen/pkg/codegen"
	"github.com/goliatone/go-lvglgen/pkg/config"
	"github.com/goliatone/go-lvglgen/pkg/emit"
	"github.com/goliatone/go-lvglgen/pkg/orchestrator"
	"github.com/goliatone/go-lvglgen/pkg/themes"
)

type generateFlags struct {
	output       string
	settingsPath string
	templateDir  string
	copyright    string
	themePath    string
	themeName    string
	variant      string

	namespace   string
	lvglVersion string
	confPath    string
	colorDepth  int
	lvglLog     bool
}

func (a *app) newGenerateCmd() *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate FILE",
		Short: "Generate LVGL code and build settings",
		Long: `Generate main.cpp, lv_conf.h, platformio.ini and a JSON manifest from a
GUI configuration. Without --output only main.cpp is printed.

Settings are read from --settings and then overridden by explicit flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := f.settings(cmd)
			if err != nil {
				return err
			}
			opts := []orchestrator.Option{
				orchestrator.WithSettings(settings),
				orchestrator.WithLogger(a.log),
			}
			if f.templateDir != "" || f.copyright != "" {
				renderer, err := emit.New(
					emit.WithTemplateDir(f.templateDir),
					emit.WithCopyright(f.copyright),
					emit.WithSettings(settings),
					emit.WithLogger(a.log),
				)
				if err != nil {
					return err
				}
				opts = append(opts, orchestrator.WithRenderer(renderer))
			}
			if f.themePath != "" {
				manifest, err := themes.LoadManifest(f.themePath)
				if err != nil {
					return err
				}
				opts = append(opts, orchestrator.WithTransformers(
					themes.Transformer(themes.NewSelector(manifest), f.themeName, f.variant, ""),
				))
			}

			src, err := sourceFor(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := orchestrator.New(opts...).Generate(cmd.Context(), orchestrator.Request{Source: src})
			if err != nil {
				reportFailure(cmd.ErrOrStderr(), src.Location(), err)
				return errReported
			}

			if f.output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), res.Artifacts.MainCpp)
				return err
			}
			if err := res.Artifacts.WriteDir(f.output); err != nil {
				return err
			}
			files := res.Artifacts.Files()
			names := make([]string, 0, len(files))
			for name := range files {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				reportSuccess(cmd.OutOrStdout(), name, fmt.Sprintf("%d bytes", len(files[name])))
			}
			return nil
		},
	}

	defaults := codegen.DefaultSettings()
	flags := cmd.Flags()
	flags.StringVarP(&f.output, "output", "o", "", "Directory receiving the generated files")
	flags.StringVar(&f.settingsPath, "settings", "", "YAML settings file")
	flags.StringVar(&f.templateDir, "template-dir", "", "Directory with template overrides")
	flags.StringVar(&f.copyright, "copyright", "", "Copyright line prepended to the generated C and C++ files")
	flags.StringVar(&f.themePath, "theme", "", "Theme manifest applied as the default style")
	flags.StringVar(&f.themeName, "theme-name", "", "Theme to select from the manifest")
	flags.StringVar(&f.variant, "variant", "", "Theme variant")
	flags.StringVar(&f.namespace, "namespace", defaults.Namespace, "C++ namespace of the generated classes")
	flags.StringVar(&f.lvglVersion, "lvgl-version", defaults.LibraryVersion, "LVGL library version requirement")
	flags.StringVar(&f.confPath, "conf-path", defaults.ConfPath, "Path of the generated lv_conf.h")
	flags.IntVar(&f.colorDepth, "color-depth", defaults.ColorDepth, "LV_COLOR_DEPTH of the display")
	flags.BoolVar(&f.lvglLog, "lvgl-log", defaults.Log, "Enable LVGL logging")
	return cmd
}

// settings loads the settings file and applies the flags set explicitly.
func (f *generateFlags) settings(cmd *cobra.Command) (codegen.Settings, error) {
	s, err := config.LoadSettings(f.settingsPath)
	if err != nil {
		return codegen.Settings{}, err
	}
	changed := cmd.Flags().Changed
	if changed("namespace") {
		s.Namespace = f.namespace
	}
	if changed("lvgl-version") {
		s.LibraryVersion = f.lvglVersion
	}
	if changed("conf-path") {
		s.ConfPath = f.confPath
	}
	if changed("color-depth") {
		s.ColorDepth = f.colorDepth
	}
	if changed("lvgl-log") {
		s.Log = f.lvglLog
	}
	if err := s.Validate(); err != nil {
		return codegen.Settings{}, err
	}
	return s, nil
}
